package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/bce-online/bce_backend/internal/apperrors"
	"github.com/bce-online/bce_backend/internal/core/domain"
	portsrepo "github.com/bce-online/bce_backend/internal/core/ports/repositories"
	"github.com/bce-online/bce_backend/internal/models"
	"github.com/bce-online/bce_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSessionRepository struct {
	BaseRepository
}

// newPgxSessionRepository creates a new repository for login sessions.
func newPgxSessionRepository(pool *pgxpool.Pool) portsrepo.SessionRepositoryFacade {
	return &PgxSessionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSessionRepository implements portsrepo.SessionRepositoryFacade
var _ portsrepo.SessionRepositoryFacade = (*PgxSessionRepository)(nil)

// The session expiry is computed in Go and bound as a parameter; no interval
// literal is ever built into the SQL text.
const insertSessionQuery = `
	INSERT INTO sessions (session_id, player_id, refresh_token_hash, expires_at, created_at)
	VALUES ($1, $2, $3, $4, $5);
`

// CreateSession inserts a session row using the pool (login path).
func (r *PgxSessionRepository) CreateSession(ctx context.Context, session domain.Session) error {
	return r.insertSession(ctx, r.Pool, session)
}

// CreateSessionInTx inserts a session row inside the bootstrap transaction.
func (r *PgxSessionRepository) CreateSessionInTx(ctx context.Context, tx pgx.Tx, session domain.Session) error {
	return r.insertSession(ctx, tx, session)
}

func (r *PgxSessionRepository) insertSession(ctx context.Context, q Querier, session domain.Session) error {
	modelSession := mapping.ToModelSession(session)
	_, err := q.Exec(ctx, insertSessionQuery,
		modelSession.SessionID,
		modelSession.PlayerID,
		modelSession.RefreshTokenHash,
		modelSession.ExpiresAt,
		modelSession.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session %s: %w", session.SessionID, err)
	}
	return nil
}

// FindSessionByTokenHash retrieves a session by its refresh token hash.
func (r *PgxSessionRepository) FindSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	query := `
		SELECT session_id, player_id, refresh_token_hash, expires_at, created_at
		FROM sessions
		WHERE refresh_token_hash = $1;
	`
	session, err := QueryOne[models.Session](ctx, r.Pool, query, tokenHash)
	if err != nil {
		return nil, fmt.Errorf("failed to query session by token hash: %w", err)
	}
	if session == nil {
		return nil, apperrors.ErrNotFound
	}
	d := mapping.ToDomainSession(*session)
	return &d, nil
}

// DeleteSession removes a session row. Deleting a missing session is a no-op.
func (r *PgxSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	query := `DELETE FROM sessions WHERE session_id = $1;`
	if _, err := Execute(ctx, r.Pool, query, sessionID); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}

// DeleteExpiredSessions removes all sessions past their expiry.
func (r *PgxSessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at < $1;`
	affected, err := Execute(ctx, r.Pool, query, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return affected, nil
}
