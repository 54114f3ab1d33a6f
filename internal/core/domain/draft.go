package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DraftKind discriminates the pending-settlement variants.
type DraftKind string

const (
	DraftChange   DraftKind = "CHANGE"
	DraftPurchase DraftKind = "PURCHASE"
)

// Draft is a computed-but-unsettled monetary operation. A draft never moves
// money; it is consumed exactly once when paid, or silently abandoned.
// Drafts are never edited: an invalid or stale draft is discarded and a new
// one is created.
type Draft interface {
	DraftID() string
	Kind() DraftKind
}

// DraftBase carries the fields shared by both draft kinds.
type DraftBase struct {
	ID        string    `json:"id"` // Primary key (UUID)
	CreatedAt time.Time `json:"createdAt"`
}

func (b DraftBase) DraftID() string { return b.ID }

// ChangeDraft is a pending currency exchange for a single user.
type ChangeDraft struct {
	DraftBase
	User         UserSignature   `json:"user"` // The party that must authorize payment
	Direction    ChangeDirection `json:"direction"`
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	FromValue    decimal.Decimal `json:"fromValue"`
	ToValue      decimal.Decimal `json:"toValue"`
}

func (ChangeDraft) Kind() DraftKind { return DraftChange }

// PurchaseDraft is a pending purchase created by the selling company.
// The paying customer is unknown until settlement: whoever confirms with
// valid credentials becomes the customer.
type PurchaseDraft struct {
	DraftBase
	CompanyID  string          `json:"companyID"`
	Items      []PurchaseItem  `json:"items"`
	GrossPrice decimal.Decimal `json:"grossPrice"`
	NetPrice   decimal.Decimal `json:"netPrice"`
	Discount   decimal.Decimal `json:"discount"`
}

func (PurchaseDraft) Kind() DraftKind { return DraftPurchase }
