package utils_test

import (
	"testing"

	"github.com/bce-online/bce_backend/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		name        string
		amountCents int64
		want        string
	}{
		{name: "zero", amountCents: 0, want: "0.00"},
		{name: "whole amount", amountCents: 50000, want: "500.00"},
		{name: "sub-unit amount", amountCents: 7, want: "0.07"},
		{name: "mixed amount", amountCents: 123456, want: "1234.56"},
		{name: "negative system balance", amountCents: -50000, want: "-500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.FormatCents(tt.amountCents))
		})
	}
}

func TestFormatCentsWithCurrency(t *testing.T) {
	assert.Equal(t, "500.00 BCE", utils.FormatCentsWithCurrency(50000, ""))
	assert.Equal(t, "0.01 BCE", utils.FormatCentsWithCurrency(1, "BCE"))
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("hunter2-but-longer")
	assert.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("hunter2-but-longer", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
}

func TestRefreshTokenHash(t *testing.T) {
	token, err := utils.GenerateSecureRandomString(32)
	assert.NoError(t, err)
	assert.Len(t, token, 64)

	hash := utils.HashRefreshToken(token)
	assert.True(t, utils.CompareRefreshTokenHash(token, hash))
	assert.False(t, utils.CompareRefreshTokenHash("other", hash))
}
