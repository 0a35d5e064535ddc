package domain

import (
	"errors"
	"time"
)

// CurrencyBCE is the single in-game currency. The schema is currency-aware so
// a second currency could be introduced without a migration of the entry table.
const CurrencyBCE = "BCE"

// OwnerType distinguishes player accounts from fixed system accounts.
type OwnerType string

const (
	OwnerTypePlayer OwnerType = "player"
	OwnerTypeSystem OwnerType = "system"
)

// System account names, pre-provisioned by migration. System accounts are the
// sources and sinks of all circulating currency; the grant source legitimately
// runs at a negative derived balance.
const (
	SystemAccountInitialGrant = "initial_grant"
	SystemAccountCityTreasury = "city_treasury"
	SystemAccountRentSink     = "rent_sink"
)

// Well-known entry type tags. The column is free-form text; these are the tags
// the backend itself writes.
const (
	EntryTypeInitialGrant = "initial_grant"
	EntryTypeWage         = "wage"
	EntryTypeRent         = "rent"
)

// LedgerAccount is a holder of currency. It carries no balance column; the
// balance is always derived from the entry history.
type LedgerAccount struct {
	AccountID  int64     `json:"accountID"`
	OwnerType  OwnerType `json:"ownerType"`
	OwnerID    *string   `json:"ownerID"`    // player ID; nil for system accounts
	SystemName *string   `json:"systemName"` // fixed name; nil for player accounts
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LedgerEntry is one immutable, directed movement of cents between two
// accounts. Entries are never updated or deleted.
type LedgerEntry struct {
	EntryID     int64     `json:"entryID"`
	FromAccount int64     `json:"fromAccount"`
	ToAccount   int64     `json:"toAccount"`
	AmountCents int64     `json:"amountCents"`
	EntryType   string    `json:"entryType"`
	ActionID    *string   `json:"actionID"` // correlation key to an originating game action
	Memo        *string   `json:"memo"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PlayerWallet links a player identity to its ledger account. It bears no
// value itself.
type PlayerWallet struct {
	PlayerID  string `json:"playerID"`
	AccountID int64  `json:"accountID"`
}

var (
	ErrNonPositiveAmount = errors.New("transfer amount must be a positive number of cents")
	ErrSelfTransfer      = errors.New("transfer endpoints must be distinct accounts")
	ErrMissingEntryType  = errors.New("transfer entry type is required")
)

// TransferParams describes one requested movement of cents.
type TransferParams struct {
	FromAccount int64
	ToAccount   int64
	AmountCents int64
	EntryType   string
	ActionID    *string
	Memo        *string
}

// Validate enforces the ledger invariants that hold for every entry,
// independent of any caller-level affordability logic.
func (p TransferParams) Validate() error {
	if p.AmountCents <= 0 {
		return ErrNonPositiveAmount
	}
	if p.FromAccount == p.ToAccount {
		return ErrSelfTransfer
	}
	if p.EntryType == "" {
		return ErrMissingEntryType
	}
	return nil
}
