package dto

import (
	"time"

	"github.com/bce-online/bce_backend/internal/core/domain"
	"github.com/bce-online/bce_backend/internal/utils"
)

// BalanceResponse reports a derived account balance.
type BalanceResponse struct {
	PlayerID    string `json:"playerID"`
	AmountCents int64  `json:"amountCents"`
	Formatted   string `json:"formatted"`
	Currency    string `json:"currency"`
}

// ToBalanceResponse builds a BalanceResponse from a derived cents amount.
func ToBalanceResponse(playerID string, amountCents int64) BalanceResponse {
	return BalanceResponse{
		PlayerID:    playerID,
		AmountCents: amountCents,
		Formatted:   utils.FormatCents(amountCents),
		Currency:    domain.CurrencyBCE,
	}
}

// EntryResponse is one ledger entry in an account history listing.
type EntryResponse struct {
	EntryID     int64     `json:"entryID"`
	FromAccount int64     `json:"fromAccount"`
	ToAccount   int64     `json:"toAccount"`
	AmountCents int64     `json:"amountCents"`
	EntryType   string    `json:"entryType"`
	ActionID    *string   `json:"actionID,omitempty"`
	Memo        *string   `json:"memo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListEntriesParams defines query parameters for listing ledger entries.
type ListEntriesParams struct {
	Limit     int    `form:"limit,default=20"`
	NextToken string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries with the cursor for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToListEntriesResponse converts a page of domain entries to the response DTO.
func ToListEntriesResponse(entries []domain.LedgerEntry, nextToken *string) ListEntriesResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = EntryResponse{
			EntryID:     e.EntryID,
			FromAccount: e.FromAccount,
			ToAccount:   e.ToAccount,
			AmountCents: e.AmountCents,
			EntryType:   e.EntryType,
			ActionID:    e.ActionID,
			Memo:        e.Memo,
			CreatedAt:   e.CreatedAt,
		}
	}
	return ListEntriesResponse{Entries: out, NextToken: nextToken}
}

// WageRequest credits the player from the city treasury for completed work.
type WageRequest struct {
	AmountCents int64   `json:"amountCents" binding:"required,gt=0"`
	ActionID    *string `json:"actionID" binding:"omitempty,uuid"`
	Memo        *string `json:"memo" binding:"omitempty,max=256"`
}

// RentRequest debits the player towards the rent sink.
type RentRequest struct {
	AmountCents int64   `json:"amountCents" binding:"required,gt=0"`
	ActionID    *string `json:"actionID" binding:"omitempty,uuid"`
	Memo        *string `json:"memo" binding:"omitempty,max=256"`
}
