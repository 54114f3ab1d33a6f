package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager exposes storage-transaction control so services can
// compose several repository writes into one atomic unit.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// RepositoryProvider bundles every repository implementation for wiring.
type RepositoryProvider struct {
	UserRepo       UserRepositoryFacade
	LedgerRepo     LedgerRepositoryWithTx
	DraftRepo      DraftRepositoryWithTx
	CardRepo       CardRepositoryFacade
	VoteRepo       VoteRepositoryFacade
	ProductRepo    ProductRepositoryFacade
	EmploymentRepo EmploymentRepositoryFacade
}
