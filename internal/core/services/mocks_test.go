package services_test

import (
	"context"
	"time"

	"github.com/bce-online/bce_backend/internal/core/domain"
	portsrepo "github.com/bce-online/bce_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

// Ensure MockLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) GetAccountBalance(ctx context.Context, accountID int64) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) GetPlayerBalance(ctx context.Context, playerID string) (int64, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) FindWalletByPlayerID(ctx context.Context, playerID string) (*domain.PlayerWallet, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlayerWallet), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccountID(ctx context.Context, accountID int64, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
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

func (m *MockLedgerRepository) CreateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.LedgerAccount) (int64, error) {
	args := m.Called(ctx, tx, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) CreateWalletInTx(ctx context.Context, tx pgx.Tx, wallet domain.PlayerWallet) error {
	args := m.Called(ctx, tx, wallet)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindSystemAccountInTx(ctx context.Context, tx pgx.Tx, name string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, tx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerRepository) FindWalletByPlayerIDInTx(ctx context.Context, tx pgx.Tx, playerID string) (*domain.PlayerWallet, error) {
	args := m.Called(ctx, tx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlayerWallet), args.Error(1)
}

func (m *MockLedgerRepository) GetAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID int64) (int64, error) {
	args := m.Called(ctx, tx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) TransferCents(ctx context.Context, tx pgx.Tx, params domain.TransferParams) error {
	args := m.Called(ctx, tx, params)
	return args.Error(0)
}

// --- Mock PlayerRepository ---
type MockPlayerRepository struct {
	mock.Mock
}

var _ portsrepo.PlayerRepositoryFacade = (*MockPlayerRepository)(nil)

func (m *MockPlayerRepository) FindPlayerByID(ctx context.Context, playerID string) (*domain.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockPlayerRepository) FindPlayerByUsername(ctx context.Context, username string) (*domain.Player, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockPlayerRepository) FindPlayerByGoogleID(ctx context.Context, googleID string) (*domain.Player, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockPlayerRepository) UpdateLastLogin(ctx context.Context, playerID string, at time.Time) error {
	args := m.Called(ctx, playerID, at)
	return args.Error(0)
}

func (m *MockPlayerRepository) UsernameExistsInTx(ctx context.Context, tx pgx.Tx, username string) (bool, error) {
	args := m.Called(ctx, tx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlayerRepository) CreatePlayerInTx(ctx context.Context, tx pgx.Tx, player domain.Player) error {
	args := m.Called(ctx, tx, player)
	return args.Error(0)
}

func (m *MockPlayerRepository) CreatePlayerStateInTx(ctx context.Context, tx pgx.Tx, state domain.PlayerState) error {
	args := m.Called(ctx, tx, state)
	return args.Error(0)
}

// --- Mock SessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

var _ portsrepo.SessionRepositoryFacade = (*MockSessionRepository)(nil)

func (m *MockSessionRepository) CreateSession(ctx context.Context, session domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) CreateSessionInTx(ctx context.Context, tx pgx.Tx, session domain.Session) error {
	args := m.Called(ctx, tx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// --- Pass-through TransactionManager ---

// passthroughTxManager invokes the callback directly with a nil transaction.
// The mocks above ignore the tx handle, so the services' transactional
// composition can be exercised without a database. Calls counts invocations,
// which retry tests assert on.
type passthroughTxManager struct {
	BeginErr error
	Calls    int
}

var _ portsrepo.TransactionManager = (*passthroughTxManager)(nil)

func (m *passthroughTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	m.Calls++
	if m.BeginErr != nil {
		return m.BeginErr
	}
	return fn(ctx, nil)
}
