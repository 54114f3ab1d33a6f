package domain

import "github.com/shopspring/decimal"

// Product is an item a company sells. Price changes bump the revision so
// that a purchase draft computed against a stale price fails instead of
// silently charging the new one.
type Product struct {
	ProductID string          `json:"productID"` // Primary key (UUID)
	CompanyID string          `json:"companyID"` // Owning company
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Revision  string          `json:"revision"` // Bumped on every price/name change
	Deleted   bool            `json:"deleted"`  // Soft delete; deleted products cannot be sold
	AuditFields
}
