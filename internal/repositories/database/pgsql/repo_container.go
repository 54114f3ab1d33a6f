package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/schoolstate/sas_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	draftRepo := newPgxDraftRepository(dbPool)
	cardRepo := newPgxCardRepository(dbPool)
	voteRepo := newPgxVoteRepository(dbPool)
	productRepo := newPgxProductRepository(dbPool)
	employmentRepo := newPgxEmploymentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:       userRepo,
		LedgerRepo:     ledgerRepo,
		DraftRepo:      draftRepo,
		CardRepo:       cardRepo,
		VoteRepo:       voteRepo,
		ProductRepo:    productRepo,
		EmploymentRepo: employmentRepo,
	}
}
