package repositories

import (
	"context"

	"github.com/bce-online/bce_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SessionRepositoryFacade manages server-side login sessions.
type SessionRepositoryFacade interface {
	// CreateSession inserts a session row outside any caller transaction (login).
	CreateSession(ctx context.Context, session domain.Session) error

	// CreateSessionInTx inserts a session row inside the bootstrap transaction.
	CreateSessionInTx(ctx context.Context, tx pgx.Tx, session domain.Session) error

	// FindSessionByTokenHash retrieves a session by refresh token hash, or apperrors.ErrNotFound.
	FindSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)

	// DeleteSession removes a session row (logout). Missing rows are not an error.
	DeleteSession(ctx context.Context, sessionID string) error

	// DeleteExpiredSessions removes all sessions past their expiry and returns
	// the number of rows deleted.
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}
