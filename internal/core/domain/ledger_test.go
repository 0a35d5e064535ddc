package domain_test

import (
	"testing"
	"time"

	"github.com/bce-online/bce_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTransferParams_Validate(t *testing.T) {
	actionID := "7f8c2f4e-1111-4222-8333-444455556666"

	tests := []struct {
		name    string
		params  domain.TransferParams
		wantErr error
	}{
		{
			name: "valid transfer",
			params: domain.TransferParams{
				FromAccount: 1,
				ToAccount:   42,
				AmountCents: 50000,
				EntryType:   domain.EntryTypeInitialGrant,
				ActionID:    &actionID,
			},
			wantErr: nil,
		},
		{
			name: "zero amount",
			params: domain.TransferParams{
				FromAccount: 1,
				ToAccount:   42,
				AmountCents: 0,
				EntryType:   domain.EntryTypeWage,
			},
			wantErr: domain.ErrNonPositiveAmount,
		},
		{
			name: "negative amount",
			params: domain.TransferParams{
				FromAccount: 1,
				ToAccount:   42,
				AmountCents: -500,
				EntryType:   domain.EntryTypeWage,
			},
			wantErr: domain.ErrNonPositiveAmount,
		},
		{
			name: "self transfer",
			params: domain.TransferParams{
				FromAccount: 42,
				ToAccount:   42,
				AmountCents: 100,
				EntryType:   domain.EntryTypeRent,
			},
			wantErr: domain.ErrSelfTransfer,
		},
		{
			name: "missing entry type",
			params: domain.TransferParams{
				FromAccount: 1,
				ToAccount:   42,
				AmountCents: 100,
			},
			wantErr: domain.ErrMissingEntryType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSession_IsExpired(t *testing.T) {
	now := time.Now()
	s := domain.Session{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, s.IsExpired(now))
	assert.True(t, s.IsExpired(now.Add(2*time.Hour)))
}
