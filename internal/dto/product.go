package dto

import (
	"github.com/shopspring/decimal"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// CreateProductRequest adds a product to the calling company's listing.
type CreateProductRequest struct {
	Name  string          `json:"name" binding:"required,min=1,max=100"`
	Price decimal.Decimal `json:"price" binding:"required"`
}

// UpdateProductRequest changes name and/or price; either change bumps the
// product revision so stale purchase drafts fail instead of mischarging.
type UpdateProductRequest struct {
	Name  *string          `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// ProductResponse is the API representation of a product.
type ProductResponse struct {
	ProductID string          `json:"productID"`
	CompanyID string          `json:"companyID"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Revision  string          `json:"revision"`
}

// ToProductResponse maps a domain product.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID: p.ProductID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		Price:     p.Price,
		Revision:  p.Revision,
	}
}

// ToProductResponses maps a slice of domain products.
func ToProductResponses(products []domain.Product) []ProductResponse {
	resp := make([]ProductResponse, len(products))
	for i := range products {
		resp[i] = ToProductResponse(&products[i])
	}
	return resp
}
