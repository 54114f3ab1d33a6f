package repositories

import (
	"context"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// ProductRepositoryFacade persists company products.
type ProductRepositoryFacade interface {
	// SaveProduct inserts a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// FindProductByID retrieves a product, including soft-deleted ones so
	// the caller can distinguish "deleted" from "never existed".
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindProductsByIDs retrieves multiple products keyed by id.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	// ListProductsByCompany retrieves a company's non-deleted products.
	ListProductsByCompany(ctx context.Context, companyID string) ([]domain.Product, error)

	// UpdateProduct updates name/price and stores the bumped revision.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// SoftDeleteProduct marks a product deleted so it can no longer be sold.
	SoftDeleteProduct(ctx context.Context, productID string, deletedBy string) error
}
