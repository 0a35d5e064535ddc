package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bce-online/bce_backend/internal/apperrors"
	"github.com/bce-online/bce_backend/internal/core/domain"
	portsrepo "github.com/bce-online/bce_backend/internal/core/ports/repositories"
	"github.com/bce-online/bce_backend/internal/models"
	"github.com/bce-online/bce_backend/internal/utils/mapping"
	"github.com/bce-online/bce_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger accounts, entries and wallets.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// balanceQuery folds an account's entries into its derived balance: credits
// (entries into the account) minus debits (entries out of it). There is no
// balance column anywhere to drift out of sync with this sum.
const balanceQuery = `
	SELECT COALESCE(SUM(CASE WHEN to_account = $1 THEN amount_cents ELSE -amount_cents END), 0)::bigint
	FROM ledger_entries
	WHERE to_account = $1 OR from_account = $1;
`

// GetAccountBalance derives the account's current balance. An account with no
// entries yet has balance 0.
func (r *PgxLedgerRepository) GetAccountBalance(ctx context.Context, accountID int64) (int64, error) {
	return r.accountBalance(ctx, r.Pool, accountID)
}

// GetAccountBalanceInTx derives the balance inside an open transaction, so an
// affordability check shares its snapshot with the transfer it gates.
func (r *PgxLedgerRepository) GetAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID int64) (int64, error) {
	return r.accountBalance(ctx, tx, accountID)
}

func (r *PgxLedgerRepository) accountBalance(ctx context.Context, q Querier, accountID int64) (int64, error) {
	var balance int64
	if err := q.QueryRow(ctx, balanceQuery, accountID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to derive balance for account %d: %w", accountID, err)
	}
	return balance, nil
}

// GetPlayerBalance resolves the player's wallet and derives its balance. A
// player without a wallet yields 0; in correct operation every player has one,
// so the caller may treat that as a data-integrity signal, not a failure.
func (r *PgxLedgerRepository) GetPlayerBalance(ctx context.Context, playerID string) (int64, error) {
	wallet, err := r.FindWalletByPlayerID(ctx, playerID)
	if err != nil {
		return 0, err
	}
	if wallet == nil {
		return 0, nil
	}
	return r.GetAccountBalance(ctx, wallet.AccountID)
}

// FindWalletByPlayerID retrieves the wallet join row, or nil when the player
// has none.
func (r *PgxLedgerRepository) FindWalletByPlayerID(ctx context.Context, playerID string) (*domain.PlayerWallet, error) {
	return r.findWallet(ctx, r.Pool, playerID)
}

// FindWalletByPlayerIDInTx retrieves the wallet join row within the transaction.
func (r *PgxLedgerRepository) FindWalletByPlayerIDInTx(ctx context.Context, tx pgx.Tx, playerID string) (*domain.PlayerWallet, error) {
	return r.findWallet(ctx, tx, playerID)
}

func (r *PgxLedgerRepository) findWallet(ctx context.Context, q Querier, playerID string) (*domain.PlayerWallet, error) {
	query := `
		SELECT player_id, account_id
		FROM player_wallets
		WHERE player_id = $1;
	`
	wallet, err := QueryOne[models.PlayerWallet](ctx, q, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find wallet for player %s: %w", playerID, err)
	}
	if wallet == nil {
		return nil, nil
	}
	d := mapping.ToDomainPlayerWallet(*wallet)
	return &d, nil
}

// CreateAccountInTx inserts a new ledger account and returns its generated ID.
func (r *PgxLedgerRepository) CreateAccountInTx(ctx context.Context, tx pgx.Tx, account domain.LedgerAccount) (int64, error) {
	modelAcc := mapping.ToModelLedgerAccount(account)
	query := `
		INSERT INTO ledger_accounts (owner_type, owner_id, system_name, currency)
		VALUES ($1, $2, $3, $4)
		RETURNING account_id;
	`
	var accountID int64
	err := tx.QueryRow(ctx, query,
		modelAcc.OwnerType,
		modelAcc.OwnerID,
		modelAcc.SystemName,
		modelAcc.Currency,
	).Scan(&accountID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return 0, apperrors.NewConflictError("ledger account already exists for this owner and currency")
		}
		return 0, fmt.Errorf("failed to create ledger account: %w", err)
	}
	return accountID, nil
}

// CreateWalletInTx inserts the player->account wallet join row.
func (r *PgxLedgerRepository) CreateWalletInTx(ctx context.Context, tx pgx.Tx, wallet domain.PlayerWallet) error {
	query := `
		INSERT INTO player_wallets (player_id, account_id)
		VALUES ($1, $2);
	`
	if _, err := tx.Exec(ctx, query, wallet.PlayerID, wallet.AccountID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("player " + wallet.PlayerID + " already has a wallet")
		}
		return fmt.Errorf("failed to create wallet for player %s: %w", wallet.PlayerID, err)
	}
	return nil
}

// FindSystemAccountInTx resolves a pre-provisioned system account by name.
func (r *PgxLedgerRepository) FindSystemAccountInTx(ctx context.Context, tx pgx.Tx, name string) (*domain.LedgerAccount, error) {
	query := `
		SELECT account_id, owner_type, owner_id, system_name, currency, created_at
		FROM ledger_accounts
		WHERE owner_type = $1 AND system_name = $2;
	`
	acc, err := QueryOne[models.LedgerAccount](ctx, tx, query, models.OwnerTypeSystem, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find system account %s: %w", name, err)
	}
	if acc == nil {
		// System accounts are seeded by migration; a miss means broken provisioning.
		return nil, apperrors.NewNotFoundError("system account " + name + " not found")
	}
	d := mapping.ToDomainLedgerAccount(*acc)
	return &d, nil
}

// TransferCents appends exactly one immutable entry moving cents between two
// distinct accounts. It is callable only inside an already-open transaction
// scope and never begins its own: composing several transfers (or a transfer
// with other state changes) into one atomic unit is the caller's job.
//
// Both preconditions fail fast before any write; the same constraints exist
// redundantly as CHECKs on the entry table.
func (r *PgxLedgerRepository) TransferCents(ctx context.Context, tx pgx.Tx, params domain.TransferParams) error {
	if err := params.Validate(); err != nil {
		return apperrors.NewAppError(400, "invalid transfer", err)
	}

	query := `
		INSERT INTO ledger_entries (from_account, to_account, amount_cents, entry_type, action_id, memo)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := tx.Exec(ctx, query,
		params.FromAccount,
		params.ToAccount,
		params.AmountCents,
		params.EntryType,
		params.ActionID,
		params.Memo,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23514": // check_violation: amount or endpoint CHECK tripped
				return apperrors.NewAppError(400, "transfer violates ledger constraints", err)
			case "23503": // foreign_key_violation: unknown account
				return apperrors.NewValidationFailedError("transfer references an unknown account")
			}
		}
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

// ListEntriesByAccountID retrieves a cursor-paginated page of entries touching
// the account, newest first. The (created_at, entry_id) pair gives a stable
// cursor even when entries share a timestamp.
func (r *PgxLedgerRepository) ListEntriesByAccountID(ctx context.Context, accountID int64, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT entry_id, from_account, to_account, amount_cents, entry_type, action_id, memo, created_at
		FROM ledger_entries
		WHERE (to_account = $1 OR from_account = $1)
	`
	orderByClause := `ORDER BY created_at DESC, entry_id DESC`

	args := []any{accountID}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastEntryID, decodeErr := pagination.DecodeEntryToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison is concise and efficient in Postgres
		query += ` AND (created_at, entry_id) < ($2, $3) `
		args = append(args, lastCreatedAt, lastEntryID)
	}

	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	modelEntries, err := Query[models.LedgerEntry](ctx, r.Pool, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for account %d: %w", accountID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1] // the actual last item of the current page
		token := pagination.EncodeEntryToken(last.CreatedAt, last.EntryID)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	return mapping.ToDomainLedgerEntrySlice(results), nextTokenVal, nil
}
