package repositories

import (
	"context"

	"github.com/bce-online/bce_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerReader defines read operations over accounts, wallets and entries.
// Balances are always derived from the entry history, never read from a column.
type LedgerReader interface {
	// GetAccountBalance derives the balance of an account as credits minus
	// debits over all of its entries. An account with no entries has balance 0.
	GetAccountBalance(ctx context.Context, accountID int64) (int64, error)

	// GetPlayerBalance resolves the player's wallet and derives its account
	// balance. A player without a wallet yields 0, not an error.
	GetPlayerBalance(ctx context.Context, playerID string) (int64, error)

	// FindWalletByPlayerID retrieves the wallet join row for a player.
	FindWalletByPlayerID(ctx context.Context, playerID string) (*domain.PlayerWallet, error)

	// ListEntriesByAccountID retrieves a cursor-paginated page of entries
	// touching the account, newest first. It returns the entries, a token for
	// the next page (nil when exhausted), and an error.
	ListEntriesByAccountID(ctx context.Context, accountID int64, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerTransactionSupport defines the operations that must run inside an
// already-open transaction scope. None of these opens its own transaction.
type LedgerTransactionSupport interface {
	// CreateAccountInTx inserts a new ledger account and returns its ID.
	CreateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.LedgerAccount) (int64, error)

	// CreateWalletInTx inserts the player->account wallet join row.
	CreateWalletInTx(ctx context.Context, tx pgx.Tx, wallet domain.PlayerWallet) error

	// FindSystemAccountInTx resolves a fixed system account by name.
	FindSystemAccountInTx(ctx context.Context, tx pgx.Tx, name string) (*domain.LedgerAccount, error)

	// FindWalletByPlayerIDInTx retrieves the wallet join row within the transaction.
	FindWalletByPlayerIDInTx(ctx context.Context, tx pgx.Tx, playerID string) (*domain.PlayerWallet, error)

	// GetAccountBalanceInTx derives an account balance within the transaction,
	// so affordability checks see the same snapshot as the transfer they gate.
	GetAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID int64) (int64, error)

	// TransferCents appends exactly one immutable entry moving cents between
	// two distinct accounts. Preconditions (positive amount, distinct
	// endpoints) fail before any write.
	TransferCents(ctx context.Context, tx pgx.Tx, params domain.TransferParams) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerTransactionSupport
}
