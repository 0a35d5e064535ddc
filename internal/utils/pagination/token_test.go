package pagination_test

import (
	"testing"
	"time"

	"github.com/bce-online/bce_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)

	token := pagination.EncodeEntryToken(createdAt, 9001)

	gotTime, gotID, err := pagination.DecodeEntryToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, int64(9001), gotID)
}

func TestDecodeEntryToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "not base64", token: "%%%"},
		{name: "missing separator", token: "bm8tc2VwYXJhdG9y"},           // "no-separator"
		{name: "bad time", token: "bm90LWEtdGltZXw1"},                    // "not-a-time|5"
		{name: "bad id", token: "MjAyNi0wMy0xNFQwOToyNjo1M1p8YWJj"},      // "2026-03-14T09:26:53Z|abc"
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := pagination.DecodeEntryToken(tt.token)
			assert.Error(t, err)
		})
	}
}
