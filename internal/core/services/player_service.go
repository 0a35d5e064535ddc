package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bce-online/bce_backend/internal/apperrors"
	"github.com/bce-online/bce_backend/internal/core/domain"
	portsrepo "github.com/bce-online/bce_backend/internal/core/ports/repositories"
	portssvc "github.com/bce-online/bce_backend/internal/core/ports/services"
	"github.com/bce-online/bce_backend/internal/dto"
	"github.com/bce-online/bce_backend/internal/middleware"
	"github.com/bce-online/bce_backend/internal/platform/config"
	"github.com/bce-online/bce_backend/internal/utils"
	"github.com/bce-online/bce_backend/pkg/retry"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// refreshTokenBytes is the entropy of the opaque refresh token before hex encoding.
const refreshTokenBytes = 32

// PlayerService covers registration, login and session lifecycle. Registration
// is the bootstrap workflow: one transaction creates the player row, state row,
// ledger account, wallet, initial grant entry and first session, or none of them.
type PlayerService struct {
	playerRepo  portsrepo.PlayerRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	sessionRepo portsrepo.SessionRepositoryFacade
	txManager   portsrepo.TransactionManager
	cfg         *config.Config
	retryCfg    retry.Config
	analytics   *utils.PosthogClientWrapper
}

var _ portssvc.PlayerSvcFacade = (*PlayerService)(nil)

// NewPlayerService creates a new PlayerService.
func NewPlayerService(repos portsrepo.RepositoryProvider, cfg *config.Config, retryCfg retry.Config, analytics *utils.PosthogClientWrapper) *PlayerService {
	return &PlayerService{
		playerRepo:  repos.PlayerRepo,
		ledgerRepo:  repos.LedgerRepo,
		sessionRepo: repos.SessionRepo,
		txManager:   repos.TxManager,
		cfg:         cfg,
		retryCfg:    retryCfg,
		analytics:   analytics,
	}
}

// RegisterPlayer runs the full bootstrap workflow. Any failure, including the
// initial grant transfer, rolls the whole sequence back so a player either
// exists fully funded with a live session or not at all.
func (s *PlayerService) RegisterPlayer(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	player := domain.Player{
		PlayerID:     uuid.NewString(),
		Username:     req.Username,
		PasswordHash: passwordHash,
	}

	resp, err := s.bootstrapPlayer(ctx, player, req.District)
	if err != nil {
		return nil, err
	}

	logger.Info("Player registered", slog.String("player_id", player.PlayerID), slog.String("username", player.Username))
	s.analytics.Enqueue(player.PlayerID, "player_registered", map[string]any{"method": "password"})
	return resp, nil
}

// bootstrapPlayer performs the shared registration transaction for both
// password and Google sign-up. The retry wrapper re-runs the whole
// transaction on serialization conflicts; the callback has no side effects
// outside the transaction, so re-running it is safe.
func (s *PlayerService) bootstrapPlayer(ctx context.Context, player domain.Player, district string) (*dto.AuthResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if player.CreatedAt.IsZero() {
		player.CreatedAt = time.Now().UTC()
	}

	var session domain.Session
	var rawRefreshToken string

	err := retry.Do(ctx, s.retryCfg, logger, "register_player", func(ctx context.Context) error {
		return s.txManager.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			taken, err := s.playerRepo.UsernameExistsInTx(ctx, tx, player.Username)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.NewConflictError(fmt.Sprintf("username %q is already taken", player.Username))
			}

			if err := s.playerRepo.CreatePlayerInTx(ctx, tx, player); err != nil {
				return err
			}

			if err := s.playerRepo.CreatePlayerStateInTx(ctx, tx, domain.PlayerState{
				PlayerID:  player.PlayerID,
				Vigor:     domain.DefaultStartingVigor,
				District:  district,
				UpdatedAt: player.CreatedAt,
			}); err != nil {
				return err
			}

			accountID, err := s.ledgerRepo.CreateAccountInTx(ctx, tx, domain.LedgerAccount{
				OwnerType: domain.OwnerTypePlayer,
				OwnerID:   &player.PlayerID,
				Currency:  domain.CurrencyBCE,
			})
			if err != nil {
				return err
			}

			if err := s.ledgerRepo.CreateWalletInTx(ctx, tx, domain.PlayerWallet{
				PlayerID:  player.PlayerID,
				AccountID: accountID,
			}); err != nil {
				return err
			}

			grantSource, err := s.ledgerRepo.FindSystemAccountInTx(ctx, tx, domain.SystemAccountInitialGrant)
			if err != nil {
				return err
			}

			if err := s.ledgerRepo.TransferCents(ctx, tx, domain.TransferParams{
				FromAccount: grantSource.AccountID,
				ToAccount:   accountID,
				AmountCents: s.cfg.StartingGrantCents,
				EntryType:   domain.EntryTypeInitialGrant,
			}); err != nil {
				return err
			}

			session, rawRefreshToken, err = s.newSessionForPlayer(player.PlayerID)
			if err != nil {
				return err
			}
			return s.sessionRepo.CreateSessionInTx(ctx, tx, session)
		})
	})
	if err != nil {
		return nil, err
	}

	return s.buildAuthResponse(player, session, rawRefreshToken)
}

// Login verifies credentials and issues a fresh session and token pair.
// Unknown username, wrong password and password-less Google accounts all
// produce the same response.
func (s *PlayerService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	player, err := s.playerRepo.FindPlayerByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalidCredentialsError()
		}
		return nil, err
	}

	if player.PasswordHash == "" || !utils.CheckPasswordHash(req.Password, player.PasswordHash) {
		logger.Warn("Login failed", slog.String("username", req.Username))
		return nil, invalidCredentialsError()
	}

	resp, err := s.issueSession(ctx, *player)
	if err != nil {
		return nil, err
	}

	s.analytics.Enqueue(player.PlayerID, "player_logged_in", map[string]any{"method": "password"})
	return resp, nil
}

// RefreshSession rotates the refresh token: the presented session is deleted
// and replaced, so a stolen token stops working the moment the legitimate
// client refreshes.
func (s *PlayerService) RefreshSession(ctx context.Context, rawRefreshToken string) (*dto.AuthResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	session, err := s.sessionRepo.FindSessionByTokenHash(ctx, utils.HashRefreshToken(rawRefreshToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid refresh token", nil)
		}
		return nil, err
	}

	if session.IsExpired(time.Now().UTC()) {
		if delErr := s.sessionRepo.DeleteSession(ctx, session.SessionID); delErr != nil {
			logger.Warn("Failed to delete expired session", slog.String("session_id", session.SessionID), slog.String("error", delErr.Error()))
		}
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "refresh token has expired", nil)
	}

	player, err := s.playerRepo.FindPlayerByID(ctx, session.PlayerID)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.DeleteSession(ctx, session.SessionID); err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	newSession, rawToken, err := s.newSessionForPlayer(player.PlayerID)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.CreateSession(ctx, newSession); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(*player, newSession, rawToken)
}

// Logout deletes the session behind the given refresh token. An unknown token
// is treated as already logged out.
func (s *PlayerService) Logout(ctx context.Context, rawRefreshToken string) error {
	session, err := s.sessionRepo.FindSessionByTokenHash(ctx, utils.HashRefreshToken(rawRefreshToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.sessionRepo.DeleteSession(ctx, session.SessionID)
}

// GetPlayerByID retrieves a player profile.
func (s *PlayerService) GetPlayerByID(ctx context.Context, playerID string) (*domain.Player, error) {
	return s.playerRepo.FindPlayerByID(ctx, playerID)
}

// issueSession creates a session for an existing player and stamps the login.
func (s *PlayerService) issueSession(ctx context.Context, player domain.Player) (*dto.AuthResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	session, rawToken, err := s.newSessionForPlayer(player.PlayerID)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	if err := s.playerRepo.UpdateLastLogin(ctx, player.PlayerID, time.Now().UTC()); err != nil {
		// Login still succeeds; the stamp is advisory.
		logger.Warn("Failed to update last login", slog.String("player_id", player.PlayerID), slog.String("error", err.Error()))
	}

	return s.buildAuthResponse(player, session, rawToken)
}

// newSessionForPlayer mints an opaque refresh token and the session row
// storing its hash. The expiry is computed here and carried as a value, never
// left to the database clock.
func (s *PlayerService) newSessionForPlayer(playerID string) (domain.Session, string, error) {
	rawToken, err := utils.GenerateSecureRandomString(refreshTokenBytes)
	if err != nil {
		return domain.Session{}, "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now().UTC()
	session := domain.Session{
		SessionID:        uuid.NewString(),
		PlayerID:         playerID,
		RefreshTokenHash: utils.HashRefreshToken(rawToken),
		ExpiresAt:        now.Add(s.cfg.SessionExpiryDuration),
		CreatedAt:        now,
	}
	return session, rawToken, nil
}

func (s *PlayerService) buildAuthResponse(player domain.Player, session domain.Session, rawRefreshToken string) (*dto.AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(player.PlayerID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &dto.AuthResponse{
		PlayerID:     player.PlayerID,
		Username:     player.Username,
		SessionID:    session.SessionID,
		AccessToken:  accessToken,
		RefreshToken: rawRefreshToken,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

func invalidCredentialsError() *apperrors.AppError {
	return apperrors.NewAppError(http.StatusUnauthorized, "invalid username or password", nil)
}
