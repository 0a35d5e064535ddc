package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bce-online/bce_backend/internal/apperrors"
	"github.com/bce-online/bce_backend/internal/core/domain"
	portsrepo "github.com/bce-online/bce_backend/internal/core/ports/repositories"
	"github.com/bce-online/bce_backend/internal/models"
	"github.com/bce-online/bce_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPlayerRepository struct {
	BaseRepository
}

// newPgxPlayerRepository creates a new repository for player data.
func newPgxPlayerRepository(pool *pgxpool.Pool) portsrepo.PlayerRepositoryFacade {
	return &PgxPlayerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPlayerRepository implements portsrepo.PlayerRepositoryFacade
var _ portsrepo.PlayerRepositoryFacade = (*PgxPlayerRepository)(nil)

const playerSelectColumns = `player_id, username, password_hash, google_id, created_at, last_login_at`

func (r *PgxPlayerRepository) findPlayer(ctx context.Context, filterQuery string, args ...any) (*domain.Player, error) {
	query := `SELECT ` + playerSelectColumns + ` FROM players ` + filterQuery
	player, err := QueryOne[models.Player](ctx, r.Pool, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query player: %w", err)
	}
	if player == nil {
		return nil, apperrors.ErrNotFound
	}
	d := mapping.ToDomainPlayer(*player)
	return &d, nil
}

// FindPlayerByID retrieves a player by its ID.
func (r *PgxPlayerRepository) FindPlayerByID(ctx context.Context, playerID string) (*domain.Player, error) {
	return r.findPlayer(ctx, `WHERE player_id = $1;`, playerID)
}

// FindPlayerByUsername retrieves a player by username.
func (r *PgxPlayerRepository) FindPlayerByUsername(ctx context.Context, username string) (*domain.Player, error) {
	return r.findPlayer(ctx, `WHERE username = $1;`, username)
}

// FindPlayerByGoogleID retrieves a player linked to a Google subject.
func (r *PgxPlayerRepository) FindPlayerByGoogleID(ctx context.Context, googleID string) (*domain.Player, error) {
	return r.findPlayer(ctx, `WHERE google_id = $1;`, googleID)
}

// UpdateLastLogin stamps the player's last successful login.
func (r *PgxPlayerRepository) UpdateLastLogin(ctx context.Context, playerID string, at time.Time) error {
	query := `
		UPDATE players
		SET last_login_at = $2
		WHERE player_id = $1;
	`
	affected, err := Execute(ctx, r.Pool, query, playerID, at)
	if err != nil {
		return fmt.Errorf("failed to update last login for player %s: %w", playerID, err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("player " + playerID + " not found for update")
	}
	return nil
}

// UsernameExistsInTx checks username uniqueness within the registration
// transaction. The unique constraint on the column stays as defense-in-depth
// against a concurrent registration racing past this check.
func (r *PgxPlayerRepository) UsernameExistsInTx(ctx context.Context, tx pgx.Tx, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM players WHERE username = $1);`
	var exists bool
	if err := tx.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check username %s: %w", username, err)
	}
	return exists, nil
}

// CreatePlayerInTx inserts the player row.
func (r *PgxPlayerRepository) CreatePlayerInTx(ctx context.Context, tx pgx.Tx, player domain.Player) error {
	modelPlayer := mapping.ToModelPlayer(player)
	query := `
		INSERT INTO players (player_id, username, password_hash, google_id, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := tx.Exec(ctx, query,
		modelPlayer.PlayerID,
		modelPlayer.Username,
		modelPlayer.PasswordHash,
		modelPlayer.GoogleID,
		modelPlayer.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("username " + player.Username + " is already taken")
		}
		return fmt.Errorf("failed to create player %s: %w", player.PlayerID, err)
	}
	return nil
}

// CreatePlayerStateInTx inserts the auxiliary player-state row.
func (r *PgxPlayerRepository) CreatePlayerStateInTx(ctx context.Context, tx pgx.Tx, state domain.PlayerState) error {
	modelState := mapping.ToModelPlayerState(state)
	query := `
		INSERT INTO player_states (player_id, vigor, district, updated_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := tx.Exec(ctx, query,
		modelState.PlayerID,
		modelState.Vigor,
		modelState.District,
		modelState.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create player state for %s: %w", state.PlayerID, err)
	}
	return nil
}
