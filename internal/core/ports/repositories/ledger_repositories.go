package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// AccountReader defines read operations for bank accounts.
type AccountReader interface {
	// FindAccountByID retrieves a bank account by its id.
	FindAccountByID(ctx context.Context, accountID string) (*domain.BankAccount, error)

	// FindAccountByOwner retrieves the single account owned by a user.
	FindAccountByOwner(ctx context.Context, owner domain.UserSignature) (*domain.BankAccount, error)
}

// FundsMover applies balance deltas and appends the corresponding immutable
// transaction record atomically. No transaction row is ever written without
// its balance mutation, and vice versa.
type FundsMover interface {
	// MoveFunds runs the mutation in its own storage transaction.
	// It re-reads every debited balance under a row lock and fails with
	// BALANCE_TOO_LOW if any leg would go negative.
	MoveFunds(ctx context.Context, deltas []domain.AccountDelta, txn domain.Transaction) error

	// MoveFundsInTx is MoveFunds composed into a caller-owned storage
	// transaction, so draft consumption or worktime marking can settle in
	// the same atomic unit.
	MoveFundsInTx(ctx context.Context, tx pgx.Tx, deltas []domain.AccountDelta, txn domain.Transaction) error
}

// TransactionReader defines read operations over the append-only log.
type TransactionReader interface {
	// ListTransactionsForUser retrieves every transaction a user appears in,
	// newest first.
	ListTransactionsForUser(ctx context.Context, user domain.UserSignature) ([]domain.Transaction, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces.
type LedgerRepositoryFacade interface {
	AccountReader
	FundsMover
	TransactionReader
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with storage
// transaction control.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
