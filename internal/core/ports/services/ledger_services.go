package services

import (
	"context"

	"github.com/bce-online/bce_backend/internal/core/domain"
)

// LedgerSvcFacade is the only surface through which other subsystems read
// balances or move currency.
type LedgerSvcFacade interface {
	// GetPlayerBalance derives the player's current balance in cents.
	// An unbootstrapped player yields 0.
	GetPlayerBalance(ctx context.Context, playerID string) (int64, error)

	// GetAccountBalance derives the balance of an arbitrary account.
	GetAccountBalance(ctx context.Context, accountID int64) (int64, error)

	// ListPlayerEntries returns a cursor-paginated page of the player's entry
	// history, newest first.
	ListPlayerEntries(ctx context.Context, playerID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// EarnWage transfers amountCents from the city treasury to the player.
	EarnWage(ctx context.Context, playerID string, amountCents int64, actionID, memo *string) error

	// PayRent transfers amountCents from the player to the rent sink after an
	// affordability check inside the same transaction.
	PayRent(ctx context.Context, playerID string, amountCents int64, actionID, memo *string) error
}
