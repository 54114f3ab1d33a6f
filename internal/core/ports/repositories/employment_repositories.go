package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// EmploymentRepositoryFacade persists employments and recorded worktimes.
type EmploymentRepositoryFacade interface {
	// SaveEmployment inserts a new employment.
	SaveEmployment(ctx context.Context, employment domain.Employment) error

	// FindEmploymentByID retrieves an employment.
	FindEmploymentByID(ctx context.Context, employmentID string) (*domain.Employment, error)

	// SaveWorktime records a worked shift.
	SaveWorktime(ctx context.Context, worktime domain.Worktime) error

	// FindWorktimeByID retrieves a worktime.
	FindWorktimeByID(ctx context.Context, worktimeID string) (*domain.Worktime, error)

	// MarkWorktimePaidInTx links a worktime to its salary transaction within
	// the caller's storage transaction. Fails when the worktime was already
	// paid, which keeps a shift from being paid out twice.
	MarkWorktimePaidInTx(ctx context.Context, tx pgx.Tx, worktimeID, transactionID string) error
}
