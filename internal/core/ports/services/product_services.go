package services

import (
	"context"

	"github.com/schoolstate/sas_backend/internal/core/domain"
	"github.com/schoolstate/sas_backend/internal/dto"
)

// ProductSvcFacade manages company product listings.
type ProductSvcFacade interface {
	// CreateProduct adds a product to the calling company's listing.
	CreateProduct(ctx context.Context, caller domain.UserSignature, req dto.CreateProductRequest) (*domain.Product, error)

	// UpdateProduct changes name/price, bumping the revision.
	// Only the owning company may update.
	UpdateProduct(ctx context.Context, caller domain.UserSignature, productID string, req dto.UpdateProductRequest) (*domain.Product, error)

	// DeleteProduct soft-deletes a product. Only the owning company.
	DeleteProduct(ctx context.Context, caller domain.UserSignature, productID string) error

	// GetProduct retrieves a single non-deleted product.
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a company's non-deleted products.
	ListProducts(ctx context.Context, companyID string) ([]domain.Product, error)
}
