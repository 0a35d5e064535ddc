package pgsql

import (
	portsrepo "github.com/bce-online/bce_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	playerRepo := newPgxPlayerRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	sessionRepo := newPgxSessionRepository(dbPool)

	return portsrepo.RepositoryProvider{
		PlayerRepo:  playerRepo,
		LedgerRepo:  ledgerRepo,
		SessionRepo: sessionRepo,
		TxManager:   &BaseRepository{Pool: dbPool},
	}
}
