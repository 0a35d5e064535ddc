package models

import "time"

// OwnerType mirrors domain.OwnerType for DB storage.
type OwnerType string

const (
	OwnerTypePlayer OwnerType = "player"
	OwnerTypeSystem OwnerType = "system"
)

// LedgerAccount is the persisted shape of a ledger account. There is no
// balance column by design.
type LedgerAccount struct {
	AccountID  int64     `db:"account_id"`
	OwnerType  OwnerType `db:"owner_type"`
	OwnerID    *string   `db:"owner_id"`    // Nullable: NULL for system accounts
	SystemName *string   `db:"system_name"` // Nullable: NULL for player accounts
	Currency   string    `db:"currency"`
	CreatedAt  time.Time `db:"created_at"`
}

// LedgerEntry is the persisted shape of one immutable entry row.
type LedgerEntry struct {
	EntryID     int64     `db:"entry_id"`
	FromAccount int64     `db:"from_account"`
	ToAccount   int64     `db:"to_account"`
	AmountCents int64     `db:"amount_cents"`
	EntryType   string    `db:"entry_type"`
	ActionID    *string   `db:"action_id"` // Nullable
	Memo        *string   `db:"memo"`      // Nullable
	CreatedAt   time.Time `db:"created_at"`
}

// PlayerWallet joins a player to its ledger account.
type PlayerWallet struct {
	PlayerID  string `db:"player_id"`
	AccountID int64  `db:"account_id"`
}
