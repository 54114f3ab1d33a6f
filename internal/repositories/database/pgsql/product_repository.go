package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	portsrepo "github.com/schoolstate/sas_backend/internal/core/ports/repositories"
)

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for products.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `product_id, company_id, name, price, revision, deleted, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ProductID, &p.CompanyID, &p.Name, &p.Price, &p.Revision, &p.Deleted,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (product_id, company_id, name, price, revision, deleted, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, false, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		product.ProductID, product.CompanyID, product.Name, product.Price, product.Revision,
		product.CreatedAt, product.CreatedBy, product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.Internal("failed to insert product", err)
	}
	return nil
}

// FindProductByID returns the product even when soft-deleted, so callers
// can tell "deleted" apart from "never existed".
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	product, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.CodeProductNotFound, "product %s not found", productID)
		}
		return nil, apperrors.Internal("failed to find product", err)
	}
	return product, nil
}

func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, productIDs)
	if err != nil {
		return nil, apperrors.Internal("failed to query products", err)
	}
	defer rows.Close()

	products := make(map[string]domain.Product, len(productIDs))
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.Internal("failed to scan product row", err)
		}
		products[product.ProductID] = *product
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal("failed to iterate product rows", err)
	}
	return products, nil
}

func (r *PgxProductRepository) ListProductsByCompany(ctx context.Context, companyID string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND NOT deleted ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.Internal("failed to list products", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.Internal("failed to scan product row", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal("failed to iterate product rows", err)
	}
	return products, nil
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products SET name = $2, price = $3, revision = $4, last_updated_at = $5, last_updated_by = $6
		WHERE product_id = $1 AND NOT deleted;
	`
	tag, err := r.Pool.Exec(ctx, query,
		product.ProductID, product.Name, product.Price, product.Revision,
		product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.Internal("failed to update product", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Newf(apperrors.CodeProductNotFound, "product %s not found", product.ProductID)
	}
	return nil
}

func (r *PgxProductRepository) SoftDeleteProduct(ctx context.Context, productID string, deletedBy string) error {
	query := `
		UPDATE products SET deleted = true, last_updated_at = $2, last_updated_by = $3
		WHERE product_id = $1 AND NOT deleted;
	`
	tag, err := r.Pool.Exec(ctx, query, productID, time.Now(), deletedBy)
	if err != nil {
		return apperrors.Internal("failed to delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Newf(apperrors.CodeProductNotFound, "product %s not found", productID)
	}
	return nil
}
