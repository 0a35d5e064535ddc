package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bce-online/bce_backend/internal/apperrors"
	"github.com/bce-online/bce_backend/internal/core/domain"
	portssvc "github.com/bce-online/bce_backend/internal/core/ports/services"
	"github.com/bce-online/bce_backend/internal/dto"
	"github.com/bce-online/bce_backend/internal/handlers"
	"github.com/bce-online/bce_backend/internal/platform/config"
	"github.com/bce-online/bce_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) GetPlayerBalance(ctx context.Context, playerID string) (int64, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) GetAccountBalance(ctx context.Context, accountID int64) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) ListPlayerEntries(ctx context.Context, playerID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, playerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerService) EarnWage(ctx context.Context, playerID string, amountCents int64, actionID, memo *string) error {
	args := m.Called(ctx, playerID, amountCents, actionID, memo)
	return args.Error(0)
}

func (m *MockLedgerService) PayRent(ctx context.Context, playerID string, amountCents int64, actionID, memo *string) error {
	args := m.Called(ctx, playerID, amountCents, actionID, memo)
	return args.Error(0)
}

// --- Mock PlayerService ---
type MockPlayerService struct {
	mock.Mock
}

var _ portssvc.PlayerSvcFacade = (*MockPlayerService)(nil)

func (m *MockPlayerService) RegisterPlayer(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockPlayerService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockPlayerService) RefreshSession(ctx context.Context, rawRefreshToken string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, rawRefreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockPlayerService) Logout(ctx context.Context, rawRefreshToken string) error {
	args := m.Called(ctx, rawRefreshToken)
	return args.Error(0)
}

func (m *MockPlayerService) GetPlayerByID(ctx context.Context, playerID string) (*domain.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

var _ portssvc.GoogleOAuthSvcFacade = (*MockGoogleOAuthService)(nil)

func (m *MockGoogleOAuthService) ExchangeCode(ctx context.Context, code string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

type ActionsHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	mockPlayerService *MockPlayerService
	cfg               *config.Config
	playerID          string
}

func (suite *ActionsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.cfg = &config.Config{
		IsProduction:           true, // skip swagger wiring in tests
		JWTSecret:              "test-secret-key-that-is-long-enough",
		JWTExpiryDuration:      time.Hour,
		JWTIssuer:              "bce-backend-test",
		SessionExpiryDuration:  24 * time.Hour,
		RefreshTokenCookieName: "rtid",
		RefreshTokenCookiePath: "/auth",
	}

	suite.mockLedgerService = new(MockLedgerService)
	suite.mockPlayerService = new(MockPlayerService)

	services := &portssvc.ServiceContainer{
		Player:      suite.mockPlayerService,
		Ledger:      suite.mockLedgerService,
		GoogleOAuth: new(MockGoogleOAuthService),
	}
	handlers.RegisterRoutes(suite.router, suite.cfg, services)

	suite.playerID = uuid.NewString()
}

func (suite *ActionsHandlerTestSuite) authedRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	token, err := utils.GenerateJWT(suite.playerID, suite.cfg.JWTSecret, suite.cfg.JWTExpiryDuration, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ActionsHandlerTestSuite) TestEarnWage_Success() {
	suite.mockLedgerService.On("EarnWage", mock.Anything, suite.playerID, int64(1500), (*string)(nil), (*string)(nil)).Return(nil).Once()
	suite.mockLedgerService.On("GetPlayerBalance", mock.Anything, suite.playerID).Return(int64(51500), nil).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/me/actions/wage", dto.WageRequest{AmountCents: 1500})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(51500), resp.AmountCents)
	suite.Equal("515.00", resp.Formatted)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *ActionsHandlerTestSuite) TestEarnWage_RejectsNonPositiveAmount() {
	w := suite.authedRequest(http.MethodPost, "/api/v1/me/actions/wage", dto.WageRequest{AmountCents: -5})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "EarnWage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ActionsHandlerTestSuite) TestPayRent_InsufficientFunds() {
	suite.mockLedgerService.On("PayRent", mock.Anything, suite.playerID, int64(99999), (*string)(nil), (*string)(nil)).
		Return(apperrors.NewAppError(http.StatusUnprocessableEntity, "cannot cover rent", apperrors.ErrInsufficientFunds)).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/me/actions/rent", dto.RentRequest{AmountCents: 99999})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Insufficient funds", resp.Error)
}

func (suite *ActionsHandlerTestSuite) TestPayRent_RequiresAuth() {
	body, _ := json.Marshal(dto.RentRequest{AmountCents: 100})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/actions/rent", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "PayRent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ActionsHandlerTestSuite) TestGetBalance() {
	suite.mockLedgerService.On("GetPlayerBalance", mock.Anything, suite.playerID).Return(int64(50000), nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/me/balance", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(50000), resp.AmountCents)
	suite.Equal(domain.CurrencyBCE, resp.Currency)
}

func (suite *ActionsHandlerTestSuite) TestListEntries_PassesCursor() {
	entries := []domain.LedgerEntry{
		{EntryID: 9, FromAccount: 2, ToAccount: 42, AmountCents: 1500, EntryType: domain.EntryTypeWage, CreatedAt: time.Now().UTC()},
	}
	suite.mockLedgerService.On("ListPlayerEntries", mock.Anything, suite.playerID, 5, mock.MatchedBy(func(tok *string) bool {
		return tok != nil && *tok == "cursor123"
	})).Return(entries, "cursor456", nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/me/ledger/entries?limit=5&nextToken=cursor123", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("cursor456", *resp.NextToken)
}

func TestActionsHandler(t *testing.T) {
	suite.Run(t, new(ActionsHandlerTestSuite))
}
