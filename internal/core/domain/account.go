package domain

import (
	"github.com/shopspring/decimal"
)

// BankAccount holds a user's spendable play-currency balance and the
// real-currency credit accrued from exchanges. Both balances are invariant
// non-negative; they are mutated exclusively inside a single storage
// transaction that also appends the corresponding ledger transaction.
type BankAccount struct {
	AccountID         string          `json:"accountID"` // Primary key (UUID)
	Owner             UserSignature   `json:"owner"`     // 1:1 with its owning user
	Balance           decimal.Decimal `json:"balance"`
	RedemptionBalance decimal.Decimal `json:"redemptionBalance"`
	AuditFields
}

// BalanceLeg selects which of the two balances an account delta applies to.
type BalanceLeg string

const (
	LegBalance    BalanceLeg = "BALANCE"
	LegRedemption BalanceLeg = "REDEMPTION"
)

// AccountDelta is one signed balance change applied by the ledger.
// Negative amounts are debits and are re-checked against the current
// balance inside the storage transaction before being applied.
type AccountDelta struct {
	AccountID string
	Leg       BalanceLeg
	Amount    decimal.Decimal
}
