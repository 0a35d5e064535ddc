package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bce-online/bce_backend/internal/apperrors"
	"github.com/bce-online/bce_backend/internal/core/domain"
	portsrepo "github.com/bce-online/bce_backend/internal/core/ports/repositories"
	"github.com/bce-online/bce_backend/internal/core/services"
	"github.com/bce-online/bce_backend/internal/dto"
	"github.com/bce-online/bce_backend/internal/platform/config"
	"github.com/bce-online/bce_backend/internal/utils"
	"github.com/bce-online/bce_backend/pkg/retry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PlayerServiceTestSuite struct {
	suite.Suite
	mockPlayerRepo  *MockPlayerRepository
	mockLedgerRepo  *MockLedgerRepository
	mockSessionRepo *MockSessionRepository
	txManager       *passthroughTxManager
	cfg             *config.Config
	service         *services.PlayerService
	grantAccount    *domain.LedgerAccount
}

func (suite *PlayerServiceTestSuite) SetupTest() {
	suite.mockPlayerRepo = new(MockPlayerRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.txManager = &passthroughTxManager{}

	suite.cfg = &config.Config{
		StartingGrantCents:    50000,
		JWTSecret:             "test-secret",
		JWTExpiryDuration:     time.Hour,
		JWTIssuer:             "bce-backend-test",
		SessionExpiryDuration: 24 * time.Hour,
	}

	repos := portsrepo.RepositoryProvider{
		PlayerRepo:  suite.mockPlayerRepo,
		LedgerRepo:  suite.mockLedgerRepo,
		SessionRepo: suite.mockSessionRepo,
		TxManager:   suite.txManager,
	}
	retryCfg := retry.Config{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
	suite.service = services.NewPlayerService(repos, suite.cfg, retryCfg, nil)

	grantName := domain.SystemAccountInitialGrant
	suite.grantAccount = &domain.LedgerAccount{AccountID: 1, OwnerType: domain.OwnerTypeSystem, SystemName: &grantName, Currency: domain.CurrencyBCE}
}

func (suite *PlayerServiceTestSuite) TestRegisterPlayer_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "newplayer", Password: "password123", District: "harbor"}
	const newAccountID = int64(42)

	var createdSession domain.Session

	suite.mockPlayerRepo.On("UsernameExistsInTx", ctx, nil, "newplayer").Return(false, nil).Once()
	suite.mockPlayerRepo.On("CreatePlayerInTx", ctx, nil, mock.MatchedBy(func(p domain.Player) bool {
		return p.Username == "newplayer" && p.PasswordHash != "" && p.PasswordHash != "password123"
	})).Return(nil).Once()
	suite.mockPlayerRepo.On("CreatePlayerStateInTx", ctx, nil, mock.MatchedBy(func(s domain.PlayerState) bool {
		return s.Vigor == domain.DefaultStartingVigor && s.District == "harbor"
	})).Return(nil).Once()
	suite.mockLedgerRepo.On("CreateAccountInTx", ctx, nil, mock.MatchedBy(func(a domain.LedgerAccount) bool {
		return a.OwnerType == domain.OwnerTypePlayer && a.OwnerID != nil && a.Currency == domain.CurrencyBCE
	})).Return(newAccountID, nil).Once()
	suite.mockLedgerRepo.On("CreateWalletInTx", ctx, nil, mock.MatchedBy(func(w domain.PlayerWallet) bool {
		return w.AccountID == newAccountID
	})).Return(nil).Once()
	suite.mockLedgerRepo.On("FindSystemAccountInTx", ctx, nil, domain.SystemAccountInitialGrant).Return(suite.grantAccount, nil).Once()
	suite.mockLedgerRepo.On("TransferCents", ctx, nil, mock.MatchedBy(func(p domain.TransferParams) bool {
		return p.FromAccount == suite.grantAccount.AccountID &&
			p.ToAccount == newAccountID &&
			p.AmountCents == suite.cfg.StartingGrantCents &&
			p.EntryType == domain.EntryTypeInitialGrant
	})).Return(nil).Once()
	suite.mockSessionRepo.On("CreateSessionInTx", ctx, nil, mock.MatchedBy(func(s domain.Session) bool {
		createdSession = s
		return s.PlayerID != "" && s.RefreshTokenHash != ""
	})).Return(nil).Once()

	resp, err := suite.service.RegisterPlayer(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal("newplayer", resp.Username)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)

	// The stored session holds only the hash of the returned raw token.
	suite.Equal(createdSession.RefreshTokenHash, utils.HashRefreshToken(resp.RefreshToken))
	suite.NotEqual(createdSession.RefreshTokenHash, resp.RefreshToken)

	// The access token is a valid JWT for the new player.
	claims, err := utils.ParseAndValidateJWT(resp.AccessToken, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(resp.PlayerID, claims.Subject)

	suite.mockPlayerRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *PlayerServiceTestSuite) TestRegisterPlayer_UsernameTaken() {
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "taken", Password: "password123"}

	suite.mockPlayerRepo.On("UsernameExistsInTx", ctx, nil, "taken").Return(true, nil).Once()

	resp, err := suite.service.RegisterPlayer(ctx, req)

	suite.Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockPlayerRepo.AssertNotCalled(suite.T(), "CreatePlayerInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.Equal(1, suite.txManager.Calls)
}

func (suite *PlayerServiceTestSuite) TestRegisterPlayer_GrantFailureAbortsBootstrap() {
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "unlucky", Password: "password123"}
	grantErr := errors.New("insert failed")

	suite.mockPlayerRepo.On("UsernameExistsInTx", ctx, nil, "unlucky").Return(false, nil).Once()
	suite.mockPlayerRepo.On("CreatePlayerInTx", ctx, nil, mock.Anything).Return(nil).Once()
	suite.mockPlayerRepo.On("CreatePlayerStateInTx", ctx, nil, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("CreateAccountInTx", ctx, nil, mock.Anything).Return(int64(42), nil).Once()
	suite.mockLedgerRepo.On("CreateWalletInTx", ctx, nil, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("FindSystemAccountInTx", ctx, nil, domain.SystemAccountInitialGrant).Return(suite.grantAccount, nil).Once()
	suite.mockLedgerRepo.On("TransferCents", ctx, nil, mock.Anything).Return(grantErr).Once()

	resp, err := suite.service.RegisterPlayer(ctx, req)

	suite.ErrorIs(err, grantErr)
	suite.Nil(resp)
	// The whole unit aborts: no session is created once the grant fails.
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "CreateSessionInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PlayerServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	playerID := uuid.NewString()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)

	player := &domain.Player{PlayerID: playerID, Username: "veteran", PasswordHash: hash}

	suite.mockPlayerRepo.On("FindPlayerByUsername", ctx, "veteran").Return(player, nil).Once()
	suite.mockSessionRepo.On("CreateSession", ctx, mock.MatchedBy(func(s domain.Session) bool {
		return s.PlayerID == playerID
	})).Return(nil).Once()
	suite.mockPlayerRepo.On("UpdateLastLogin", ctx, playerID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "veteran", Password: "password123"})

	suite.Require().NoError(err)
	suite.Equal(playerID, resp.PlayerID)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)

	claims, err := utils.ParseAndValidateJWT(resp.AccessToken, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(playerID, claims.Subject)
}

func (suite *PlayerServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)

	player := &domain.Player{PlayerID: uuid.NewString(), Username: "veteran", PasswordHash: hash}
	suite.mockPlayerRepo.On("FindPlayerByUsername", ctx, "veteran").Return(player, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "veteran", Password: "wrong-password"})

	suite.Error(err)
	suite.Nil(resp)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(401, appErr.Code)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "CreateSession", mock.Anything, mock.Anything)
}

func (suite *PlayerServiceTestSuite) TestLogin_UnknownUsername() {
	ctx := context.Background()
	suite.mockPlayerRepo.On("FindPlayerByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "whatever"})

	suite.Error(err)
	suite.Nil(resp)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(401, appErr.Code)
}

func (suite *PlayerServiceTestSuite) TestLogin_GoogleOnlyAccountRejected() {
	ctx := context.Background()
	googleID := "google-sub-123"
	player := &domain.Player{PlayerID: uuid.NewString(), Username: "gplayer", GoogleID: &googleID}

	suite.mockPlayerRepo.On("FindPlayerByUsername", ctx, "gplayer").Return(player, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "gplayer", Password: "anything"})

	suite.Error(err)
	suite.Nil(resp)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(401, appErr.Code)
}

func (suite *PlayerServiceTestSuite) TestRefreshSession_RotatesToken() {
	ctx := context.Background()
	playerID := uuid.NewString()
	rawToken := "old-refresh-token"
	oldSession := &domain.Session{
		SessionID:        uuid.NewString(),
		PlayerID:         playerID,
		RefreshTokenHash: utils.HashRefreshToken(rawToken),
		ExpiresAt:        time.Now().UTC().Add(time.Hour),
	}
	player := &domain.Player{PlayerID: playerID, Username: "veteran"}

	suite.mockSessionRepo.On("FindSessionByTokenHash", ctx, oldSession.RefreshTokenHash).Return(oldSession, nil).Once()
	suite.mockPlayerRepo.On("FindPlayerByID", ctx, playerID).Return(player, nil).Once()
	suite.mockSessionRepo.On("DeleteSession", ctx, oldSession.SessionID).Return(nil).Once()
	suite.mockSessionRepo.On("CreateSession", ctx, mock.MatchedBy(func(s domain.Session) bool {
		return s.PlayerID == playerID && s.SessionID != oldSession.SessionID
	})).Return(nil).Once()

	resp, err := suite.service.RefreshSession(ctx, rawToken)

	suite.Require().NoError(err)
	suite.NotEqual(rawToken, resp.RefreshToken)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *PlayerServiceTestSuite) TestRefreshSession_Expired() {
	ctx := context.Background()
	rawToken := "stale-token"
	expired := &domain.Session{
		SessionID:        uuid.NewString(),
		PlayerID:         uuid.NewString(),
		RefreshTokenHash: utils.HashRefreshToken(rawToken),
		ExpiresAt:        time.Now().UTC().Add(-time.Minute),
	}

	suite.mockSessionRepo.On("FindSessionByTokenHash", ctx, expired.RefreshTokenHash).Return(expired, nil).Once()
	suite.mockSessionRepo.On("DeleteSession", ctx, expired.SessionID).Return(nil).Once()

	resp, err := suite.service.RefreshSession(ctx, rawToken)

	suite.Error(err)
	suite.Nil(resp)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(401, appErr.Code)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "CreateSession", mock.Anything, mock.Anything)
}

func (suite *PlayerServiceTestSuite) TestLogout_UnknownTokenIsNoop() {
	ctx := context.Background()
	suite.mockSessionRepo.On("FindSessionByTokenHash", ctx, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.Logout(ctx, "never-issued")

	suite.NoError(err)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "DeleteSession", mock.Anything, mock.Anything)
}

func TestPlayerService(t *testing.T) {
	suite.Run(t, new(PlayerServiceTestSuite))
}
