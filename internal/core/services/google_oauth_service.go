package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bce-online/bce_backend/internal/apperrors"
	"github.com/bce-online/bce_backend/internal/core/domain"
	portsrepo "github.com/bce-online/bce_backend/internal/core/ports/repositories"
	portssvc "github.com/bce-online/bce_backend/internal/core/ports/services"
	"github.com/bce-online/bce_backend/internal/dto"
	"github.com/bce-online/bce_backend/internal/middleware"
	"github.com/bce-online/bce_backend/internal/platform/config"
	"github.com/bce-online/bce_backend/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleUserInfo is the subset of the userinfo payload the backend uses.
type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleOAuthService exchanges Google authorization codes for sessions. A
// first-time Google account goes through the same bootstrap transaction as
// password registration, grant included.
type GoogleOAuthService struct {
	oauthConfig   *oauth2.Config
	playerRepo    portsrepo.PlayerRepositoryFacade
	playerService *PlayerService
	analytics     *utils.PosthogClientWrapper
}

var _ portssvc.GoogleOAuthSvcFacade = (*GoogleOAuthService)(nil)

// NewGoogleOAuthService creates a new GoogleOAuthService. Sign-in is disabled
// when the client ID is not configured.
func NewGoogleOAuthService(cfg *config.Config, playerRepo portsrepo.PlayerRepositoryFacade, playerService *PlayerService, analytics *utils.PosthogClientWrapper) *GoogleOAuthService {
	var oauthConfig *oauth2.Config
	if cfg.GoogleClientID != "" {
		oauthConfig = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}
	return &GoogleOAuthService{
		oauthConfig:   oauthConfig,
		playerRepo:    playerRepo,
		playerService: playerService,
		analytics:     analytics,
	}
}

// ExchangeCode trades the authorization code for Google identity and returns
// a session for the matching player, bootstrapping one on first sign-in.
func (s *GoogleOAuthService) ExchangeCode(ctx context.Context, code string) (*dto.AuthResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.oauthConfig == nil {
		return nil, apperrors.NewAppError(http.StatusServiceUnavailable, "Google sign-in is not configured", nil)
	}

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		logger.Warn("Google code exchange failed", slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid authorization code", err)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "Google returned no subject for this code", nil)
	}

	player, err := s.playerRepo.FindPlayerByGoogleID(ctx, info.ID)
	if err == nil {
		resp, err := s.playerService.issueSession(ctx, *player)
		if err != nil {
			return nil, err
		}
		s.analytics.Enqueue(player.PlayerID, "player_logged_in", map[string]any{"method": "google"})
		return resp, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	return s.bootstrapFromGoogle(ctx, info)
}

// bootstrapFromGoogle registers a new player for an unseen Google subject.
// The account has no password; only the Google link can sign it in.
func (s *GoogleOAuthService) bootstrapFromGoogle(ctx context.Context, info *googleUserInfo) (*dto.AuthResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	username, err := s.availableUsername(ctx, usernameFromEmail(info.Email))
	if err != nil {
		return nil, err
	}

	player := domain.Player{
		PlayerID: uuid.NewString(),
		Username: username,
		GoogleID: &info.ID,
	}

	resp, err := s.playerService.bootstrapPlayer(ctx, player, "")
	if err != nil {
		return nil, err
	}

	logger.Info("Player registered via Google", slog.String("player_id", player.PlayerID), slog.String("username", username))
	s.analytics.Enqueue(player.PlayerID, "player_registered", map[string]any{"method": "google"})
	return resp, nil
}

func (s *GoogleOAuthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google userinfo: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, apperrors.NewAppError(http.StatusBadGateway, fmt.Sprintf("Google userinfo returned status %d", res.StatusCode), nil)
	}

	info := &googleUserInfo{}
	if err := json.NewDecoder(res.Body).Decode(info); err != nil {
		return nil, fmt.Errorf("failed to decode Google userinfo: %w", err)
	}
	return info, nil
}

// availableUsername returns base, or base with a random suffix when base is
// already taken. The bootstrap transaction still re-checks uniqueness.
func (s *GoogleOAuthService) availableUsername(ctx context.Context, base string) (string, error) {
	_, err := s.playerRepo.FindPlayerByUsername(ctx, base)
	if errors.Is(err, apperrors.ErrNotFound) {
		return base, nil
	}
	if err != nil {
		return "", err
	}

	suffix, err := utils.GenerateSecureRandomString(2)
	if err != nil {
		return "", err
	}
	return base + "_" + suffix, nil
}

// usernameFromEmail derives a starter username from the address's local part.
func usernameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, local)
	if len(cleaned) < 3 {
		cleaned = "player_" + cleaned
	}
	if len(cleaned) > 24 {
		cleaned = cleaned[:24]
	}
	return cleaned
}
