package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// AccountResponse is the API representation of a bank account.
type AccountResponse struct {
	AccountID         string          `json:"accountID"`
	Owner             SignatureRef    `json:"owner"`
	Balance           decimal.Decimal `json:"balance"`
	RedemptionBalance decimal.Decimal `json:"redemptionBalance"`
}

// ToAccountResponse maps a domain bank account to its API representation.
func ToAccountResponse(a *domain.BankAccount) AccountResponse {
	return AccountResponse{
		AccountID:         a.AccountID,
		Owner:             SignatureRef{Type: a.Owner.Type, ID: a.Owner.ID},
		Balance:           a.Balance,
		RedemptionBalance: a.RedemptionBalance,
	}
}

// TransferRequest moves money from the calling user to a receiver.
type TransferRequest struct {
	Receiver SignatureRef    `json:"receiver" binding:"required"`
	Value    decimal.Decimal `json:"value" binding:"required"`
	Purpose  string          `json:"purpose" binding:"required,min=1,max=200"`
}

// CustomsRequest charges customs from a user into the state treasury.
type CustomsRequest struct {
	User   SignatureRef    `json:"user" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// SalaryRequest pays an employed citizen. WorktimeID selects shift pay;
// BonusValue selects a flat bonus. Exactly one must be set.
type SalaryRequest struct {
	EmploymentID string           `json:"employmentID" binding:"required"`
	WorktimeID   *string          `json:"worktimeID,omitempty"`
	BonusValue   *decimal.Decimal `json:"bonusValue,omitempty"`
}

// CreateEmploymentRequest hires a citizen for a company.
type CreateEmploymentRequest struct {
	CompanyID  string          `json:"companyID" binding:"required"`
	CitizenID  string          `json:"citizenID" binding:"required"`
	HourlyWage decimal.Decimal `json:"hourlyWage" binding:"required"`
}

// RecordWorktimeRequest records a worked shift for an employment.
type RecordWorktimeRequest struct {
	EmploymentID string    `json:"employmentID" binding:"required"`
	Start        time.Time `json:"start" binding:"required"`
	End          time.Time `json:"end" binding:"required"`
}

// TransactionResponse is the API representation of one ledger record.
// Kind-specific fields are populated per variant; the rest stay empty.
type TransactionResponse struct {
	ID   string                 `json:"id"`
	Kind domain.TransactionKind `json:"kind"`
	Date time.Time              `json:"date"`

	Sender   *SignatureRef `json:"sender,omitempty"`
	Receiver *SignatureRef `json:"receiver,omitempty"`
	User     *SignatureRef `json:"user,omitempty"`
	Customer *SignatureRef `json:"customer,omitempty"`

	Value        *decimal.Decimal       `json:"value,omitempty"`
	Purpose      string                 `json:"purpose,omitempty"`
	Direction    domain.ChangeDirection `json:"direction,omitempty"`
	FromCurrency string                 `json:"fromCurrency,omitempty"`
	ToCurrency   string                 `json:"toCurrency,omitempty"`
	FromValue    *decimal.Decimal       `json:"fromValue,omitempty"`
	ToValue      *decimal.Decimal       `json:"toValue,omitempty"`
	CompanyID    string                 `json:"companyID,omitempty"`
	GrossPrice   *decimal.Decimal       `json:"grossPrice,omitempty"`
	NetPrice     *decimal.Decimal       `json:"netPrice,omitempty"`
	Discount     *decimal.Decimal       `json:"discount,omitempty"`
	Items        []PurchaseItemRef      `json:"items,omitempty"`
	Amount       *decimal.Decimal       `json:"amount,omitempty"`
	EmploymentID string                 `json:"employmentID,omitempty"`
	WorktimeID   *string                `json:"worktimeID,omitempty"`
	GrossValue   *decimal.Decimal       `json:"grossValue,omitempty"`
	NetValue     *decimal.Decimal       `json:"netValue,omitempty"`
}

// PurchaseItemRef is one purchase line in requests and responses.
type PurchaseItemRef struct {
	ProductID       string          `json:"productID" binding:"required"`
	ProductRevision string          `json:"productRevision,omitempty"`
	Amount          int             `json:"amount" binding:"required,min=1"`
	UnitPrice       decimal.Decimal `json:"unitPrice,omitempty"`
}

func sigRef(s domain.UserSignature) *SignatureRef {
	return &SignatureRef{Type: s.Type, ID: s.ID}
}

// ToTransactionResponse maps any ledger transaction variant.
func ToTransactionResponse(txn domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:   txn.TransactionID(),
		Kind: txn.Kind(),
		Date: txn.Date(),
	}
	switch t := txn.(type) {
	case domain.TransferTransaction:
		resp.Sender = sigRef(t.Sender)
		resp.Receiver = sigRef(t.Receiver)
		resp.Value = &t.Value
		resp.Purpose = t.Purpose
	case domain.ChangeTransaction:
		resp.User = sigRef(t.User)
		resp.Direction = t.Direction
		resp.FromCurrency = t.FromCurrency
		resp.ToCurrency = t.ToCurrency
		resp.FromValue = &t.FromValue
		resp.ToValue = &t.ToValue
	case domain.PurchaseTransaction:
		resp.Customer = sigRef(t.Customer)
		resp.CompanyID = t.CompanyID
		resp.GrossPrice = &t.GrossPrice
		resp.NetPrice = &t.NetPrice
		resp.Discount = &t.Discount
		resp.Items = toPurchaseItemRefs(t.Items)
	case domain.CustomsTransaction:
		resp.User = sigRef(t.User)
		resp.Amount = &t.Amount
	case domain.SalaryTransaction:
		resp.EmploymentID = t.EmploymentID
		resp.WorktimeID = t.WorktimeID
		resp.GrossValue = &t.GrossValue
		resp.NetValue = &t.NetValue
	}
	return resp
}

// ToTransactionResponses maps a slice of ledger transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	resp := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		resp[i] = ToTransactionResponse(txn)
	}
	return resp
}

func toPurchaseItemRefs(items []domain.PurchaseItem) []PurchaseItemRef {
	refs := make([]PurchaseItemRef, len(items))
	for i, item := range items {
		refs[i] = PurchaseItemRef{
			ProductID:       item.ProductID,
			ProductRevision: item.ProductRevision,
			Amount:          item.Amount,
			UnitPrice:       item.UnitPrice,
		}
	}
	return refs
}
