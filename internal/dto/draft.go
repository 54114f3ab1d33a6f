package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// CreateChangeDraftRequest computes a pending currency exchange for the
// calling user. The target amount is derived from the configured rate table.
type CreateChangeDraftRequest struct {
	FromCurrency string          `json:"fromCurrency" binding:"required"`
	FromValue    decimal.Decimal `json:"fromValue" binding:"required"`
	ToCurrency   string          `json:"toCurrency" binding:"required"`
}

// CreatePurchaseDraftRequest computes a pending purchase for the calling
// company. Discount is an absolute reduction of the gross price.
type CreatePurchaseDraftRequest struct {
	Items    []PurchaseItemRef `json:"items" binding:"required,min=1,dive"`
	Discount decimal.Decimal   `json:"discount"`
}

// PayDraftRequest confirms a draft with fresh credentials.
type PayDraftRequest struct {
	Credentials Credentials `json:"credentials" binding:"required"`
}

// ChangeDraftResponse is the API representation of a pending exchange.
type ChangeDraftResponse struct {
	ID           string                 `json:"id"`
	User         SignatureRef           `json:"user"`
	Direction    domain.ChangeDirection `json:"direction"`
	FromCurrency string                 `json:"fromCurrency"`
	ToCurrency   string                 `json:"toCurrency"`
	FromValue    decimal.Decimal        `json:"fromValue"`
	ToValue      decimal.Decimal        `json:"toValue"`
	CreatedAt    time.Time              `json:"createdAt"`
}

// ToChangeDraftResponse maps a domain change draft.
func ToChangeDraftResponse(d *domain.ChangeDraft) ChangeDraftResponse {
	return ChangeDraftResponse{
		ID:           d.ID,
		User:         SignatureRef{Type: d.User.Type, ID: d.User.ID},
		Direction:    d.Direction,
		FromCurrency: d.FromCurrency,
		ToCurrency:   d.ToCurrency,
		FromValue:    d.FromValue,
		ToValue:      d.ToValue,
		CreatedAt:    d.CreatedAt,
	}
}

// PurchaseDraftResponse is the API representation of a pending purchase.
type PurchaseDraftResponse struct {
	ID         string            `json:"id"`
	CompanyID  string            `json:"companyID"`
	Items      []PurchaseItemRef `json:"items"`
	GrossPrice decimal.Decimal   `json:"grossPrice"`
	NetPrice   decimal.Decimal   `json:"netPrice"`
	Discount   decimal.Decimal   `json:"discount"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// ToPurchaseDraftResponse maps a domain purchase draft.
func ToPurchaseDraftResponse(d *domain.PurchaseDraft) PurchaseDraftResponse {
	return PurchaseDraftResponse{
		ID:         d.ID,
		CompanyID:  d.CompanyID,
		Items:      toPurchaseItemRefs(d.Items),
		GrossPrice: d.GrossPrice,
		NetPrice:   d.NetPrice,
		Discount:   d.Discount,
		CreatedAt:  d.CreatedAt,
	}
}
