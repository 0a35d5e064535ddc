package mapping

import (
	"github.com/bce-online/bce_backend/internal/core/domain"
	"github.com/bce-online/bce_backend/internal/models"
)

// ToModelLedgerAccount converts domain.LedgerAccount to models.LedgerAccount.
func ToModelLedgerAccount(d domain.LedgerAccount) models.LedgerAccount {
	return models.LedgerAccount{
		AccountID:  d.AccountID,
		OwnerType:  models.OwnerType(d.OwnerType),
		OwnerID:    d.OwnerID,
		SystemName: d.SystemName,
		Currency:   d.Currency,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainLedgerAccount converts models.LedgerAccount to domain.LedgerAccount.
func ToDomainLedgerAccount(m models.LedgerAccount) domain.LedgerAccount {
	return domain.LedgerAccount{
		AccountID:  m.AccountID,
		OwnerType:  domain.OwnerType(m.OwnerType),
		OwnerID:    m.OwnerID,
		SystemName: m.SystemName,
		Currency:   m.Currency,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainLedgerEntry converts models.LedgerEntry to domain.LedgerEntry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     m.EntryID,
		FromAccount: m.FromAccount,
		ToAccount:   m.ToAccount,
		AmountCents: m.AmountCents,
		EntryType:   m.EntryType,
		ActionID:    m.ActionID,
		Memo:        m.Memo,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainLedgerEntrySlice converts a slice of models.LedgerEntry to domain form.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}

// ToDomainPlayerWallet converts models.PlayerWallet to domain.PlayerWallet.
func ToDomainPlayerWallet(m models.PlayerWallet) domain.PlayerWallet {
	return domain.PlayerWallet{
		PlayerID:  m.PlayerID,
		AccountID: m.AccountID,
	}
}
