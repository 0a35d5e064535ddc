package repositories

import (
	"context"
	"time"

	"github.com/bce-online/bce_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PlayerReader defines read operations for player data.
type PlayerReader interface {
	// FindPlayerByID retrieves a player by ID, or apperrors.ErrNotFound.
	FindPlayerByID(ctx context.Context, playerID string) (*domain.Player, error)

	// FindPlayerByUsername retrieves a player by username, or apperrors.ErrNotFound.
	FindPlayerByUsername(ctx context.Context, username string) (*domain.Player, error)

	// FindPlayerByGoogleID retrieves a player linked to a Google subject, or apperrors.ErrNotFound.
	FindPlayerByGoogleID(ctx context.Context, googleID string) (*domain.Player, error)
}

// PlayerWriter defines write operations for player data.
type PlayerWriter interface {
	// UpdateLastLogin stamps the player's last successful login.
	UpdateLastLogin(ctx context.Context, playerID string, at time.Time) error
}

// PlayerTransactionSupport defines the bootstrap inserts that compose with
// the ledger writes inside a single registration transaction.
type PlayerTransactionSupport interface {
	// UsernameExistsInTx checks username uniqueness within the transaction.
	UsernameExistsInTx(ctx context.Context, tx pgx.Tx, username string) (bool, error)

	// CreatePlayerInTx inserts the player row.
	CreatePlayerInTx(ctx context.Context, tx pgx.Tx, player domain.Player) error

	// CreatePlayerStateInTx inserts the auxiliary player-state row.
	CreatePlayerStateInTx(ctx context.Context, tx pgx.Tx, state domain.PlayerState) error
}

// PlayerRepositoryFacade combines all player repository interfaces.
type PlayerRepositoryFacade interface {
	PlayerReader
	PlayerWriter
	PlayerTransactionSupport
}
