package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind discriminates the ledger transaction variants.
type TransactionKind string

const (
	KindTransfer TransactionKind = "TRANSFER"
	KindChange   TransactionKind = "CHANGE"
	KindPurchase TransactionKind = "PURCHASE"
	KindCustoms  TransactionKind = "CUSTOMS"
	KindSalary   TransactionKind = "SALARY"
)

// Transaction is the sealed set of immutable ledger records. Exactly one
// variant exists per kind; each carries disjoint fields and shares only the
// id/date/kind discriminant. Records are append-only: never mutated or
// deleted after creation.
type Transaction interface {
	TransactionID() string
	Kind() TransactionKind
	Date() time.Time
}

// TransactionBase carries the fields shared by every transaction kind.
type TransactionBase struct {
	ID        string    `json:"id"` // Primary key (UUID)
	CreatedAt time.Time `json:"date"`
}

func (b TransactionBase) TransactionID() string { return b.ID }
func (b TransactionBase) Date() time.Time       { return b.CreatedAt }

// TransferTransaction records money sent from one user to another.
type TransferTransaction struct {
	TransactionBase
	Sender   UserSignature   `json:"sender"`
	Receiver UserSignature   `json:"receiver"`
	Value    decimal.Decimal `json:"value"`
	Purpose  string          `json:"purpose"`
}

func (TransferTransaction) Kind() TransactionKind { return KindTransfer }

// ChangeDirection tells which way a currency change moved.
type ChangeDirection string

const (
	VirtualToReal ChangeDirection = "VIRTUAL_TO_REAL"
	RealToVirtual ChangeDirection = "REAL_TO_VIRTUAL"
)

// ChangeTransaction records a currency exchange settled on a single
// account. Virtual to real debits the balance and credits the redemption
// balance; real to virtual only credits the balance, since the real money
// changes hands physically.
type ChangeTransaction struct {
	TransactionBase
	User         UserSignature   `json:"user"`
	Direction    ChangeDirection `json:"direction"`
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	FromValue    decimal.Decimal `json:"fromValue"`
	ToValue      decimal.Decimal `json:"toValue"`
}

func (ChangeTransaction) Kind() TransactionKind { return KindChange }

// PurchaseItem is one line of a purchase: a product at a fixed revision
// bought some number of times.
type PurchaseItem struct {
	ProductID       string          `json:"productID"`
	ProductRevision string          `json:"productRevision"`
	Amount          int             `json:"amount"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
}

// PurchaseTransaction records a customer buying a company's products.
type PurchaseTransaction struct {
	TransactionBase
	Customer   UserSignature   `json:"customer"`
	CompanyID  string          `json:"companyID"`
	GrossPrice decimal.Decimal `json:"grossPrice"`
	NetPrice   decimal.Decimal `json:"netPrice"`
	Discount   decimal.Decimal `json:"discount"`
	Items      []PurchaseItem  `json:"items"`
}

func (PurchaseTransaction) Kind() TransactionKind { return KindPurchase }

// CustomsTransaction records a customs charge collected by border control
// from a user into the state treasury.
type CustomsTransaction struct {
	TransactionBase
	User   UserSignature   `json:"user"`
	Amount decimal.Decimal `json:"amount"`
}

func (CustomsTransaction) Kind() TransactionKind { return KindCustoms }

// SalaryTransaction records a company paying an employed citizen.
// WorktimeID is set for shift pay and nil for a flat bonus.
type SalaryTransaction struct {
	TransactionBase
	EmploymentID string          `json:"employmentID"`
	WorktimeID   *string         `json:"worktimeID,omitempty"`
	GrossValue   decimal.Decimal `json:"grossValue"`
	NetValue     decimal.Decimal `json:"netValue"`
}

func (SalaryTransaction) Kind() TransactionKind { return KindSalary }
