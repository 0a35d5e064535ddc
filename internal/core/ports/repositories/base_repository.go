package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager scopes a unit of work to one pooled connection. The
// callback's transaction commits only if the callback returns nil; any error
// rolls the whole unit back and propagates to the caller unchanged.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}
