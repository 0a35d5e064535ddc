package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bce-online/bce_backend/pkg/retry"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(maxRetries int) retry.Config {
	return retry.Config{
		MaxRetries: maxRetries,
		BaseDelay:  time.Millisecond,
		MaxDelay:   4 * time.Millisecond,
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	attempts := 0
	err := retry.Do(context.Background(), fastConfig(4), nil, "op", func(ctx context.Context) error {
		attempts++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_TransientErrorExhaustsRetries(t *testing.T) {
	serializationFailure := &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
	attempts := 0

	err := retry.Do(context.Background(), fastConfig(4), nil, "op", func(ctx context.Context) error {
		attempts++
		return serializationFailure
	})

	// maxRetries re-attempts after the first try, original error preserved.
	assert.Equal(t, 5, attempts)
	require.Error(t, err)
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "40001", pgErr.Code)
}

func TestDo_FatalErrorNotRetried(t *testing.T) {
	fatal := errors.New("amount must be positive")
	attempts := 0

	err := retry.Do(context.Background(), fastConfig(4), nil, "op", func(ctx context.Context) error {
		attempts++
		return fatal
	})

	assert.Equal(t, 1, attempts)
	assert.Same(t, fatal, err)
}

func TestDo_RecoversAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := retry.Do(context.Background(), fastConfig(4), nil, "op", func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return &pgconn.PgError{Code: "40P01"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := retry.Config{MaxRetries: 4, BaseDelay: time.Minute, MaxDelay: time.Minute}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	attempts := 0
	err := retry.Do(ctx, cfg, nil, "op", func(ctx context.Context) error {
		attempts++
		return &pgconn.PgError{Code: "08006"}
	})

	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: true},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: true},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, want: true},
		{name: "cannot connect now", err: &pgconn.PgError{Code: "57P03"}, want: true},
		{name: "too many connections", err: &pgconn.PgError{Code: "53300"}, want: true},
		{name: "unique violation is fatal", err: &pgconn.PgError{Code: "23505"}, want: false},
		{name: "check violation is fatal", err: &pgconn.PgError{Code: "23514"}, want: false},
		{name: "wrapped transient", err: errors.Join(errors.New("tx failed"), &pgconn.PgError{Code: "40001"}), want: true},
		{name: "plain error is fatal", err: errors.New("self transfer"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retry.IsTransient(tt.err))
		})
	}
}
