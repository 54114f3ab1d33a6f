package services

import (
	"context"

	"github.com/schoolstate/sas_backend/internal/core/domain"
	"github.com/schoolstate/sas_backend/internal/dto"
)

// AccountReaderSvc defines read operations over bank accounts and the
// transaction log.
type AccountReaderSvc interface {
	// GetAccount retrieves a user's bank account. Callers may read their
	// own account; the BANK role may read any.
	GetAccount(ctx context.Context, caller, owner domain.UserSignature) (*domain.BankAccount, error)

	// ListTransactions retrieves the transactions a user appears in, under
	// the same visibility rule as GetAccount.
	ListTransactions(ctx context.Context, caller, owner domain.UserSignature) ([]domain.Transaction, error)
}

// MoneyMoverSvc defines the direct (non-draft) money-moving operations.
type MoneyMoverSvc interface {
	// TransferMoney moves value from the calling user to a receiver and
	// appends a TransferTransaction. Guests are restricted on both sides;
	// companies cannot send transfers.
	TransferMoney(ctx context.Context, sender domain.UserSignature, req dto.TransferRequest) (*domain.TransferTransaction, error)

	// ChargeCustoms debits a user into the state treasury and appends a
	// CustomsTransaction. Requires BORDER_CONTROL.
	ChargeCustoms(ctx context.Context, caller domain.UserSignature, req dto.CustomsRequest) (*domain.CustomsTransaction, error)

	// PaySalary settles shift pay or a bonus from the employing company to
	// the employed citizen and appends a SalaryTransaction. Requires BANK
	// or being the employing company.
	PaySalary(ctx context.Context, caller domain.UserSignature, req dto.SalaryRequest) (*domain.SalaryTransaction, error)
}

// EmploymentSvc manages employments and recorded worktimes.
type EmploymentSvc interface {
	// CreateEmployment hires a citizen for a company. Requires ADMIN or
	// being the employing company.
	CreateEmployment(ctx context.Context, caller domain.UserSignature, req dto.CreateEmploymentRequest) (*domain.Employment, error)

	// RecordWorktime records a worked shift for an employment.
	RecordWorktime(ctx context.Context, caller domain.UserSignature, req dto.RecordWorktimeRequest) (*domain.Worktime, error)
}

// BankSvcFacade combines all banking service interfaces.
type BankSvcFacade interface {
	AccountReaderSvc
	MoneyMoverSvc
	EmploymentSvc
}
