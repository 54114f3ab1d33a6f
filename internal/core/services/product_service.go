package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	portsrepo "github.com/schoolstate/sas_backend/internal/core/ports/repositories"
	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/dto"
)

// productService manages company product listings. Every edit stores a new
// revision id; purchase drafts pin the revision they were priced against.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
	identity    portssvc.IdentitySvc
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

// NewProductService creates a new product service.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, identity portssvc.IdentitySvc) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo, identity: identity}
}

func (s *productService) CreateProduct(ctx context.Context, caller domain.UserSignature, req dto.CreateProductRequest) (*domain.Product, error) {
	if _, err := s.identity.RequireType(ctx, caller, domain.UserCompany); err != nil {
		return nil, err
	}
	if !req.Price.IsPositive() {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "price must be positive")
	}

	now := time.Now()
	product := domain.Product{
		ProductID: uuid.NewString(),
		CompanyID: caller.ID,
		Name:      req.Name,
		Price:     req.Price,
		Revision:  uuid.NewString(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.ID,
		},
	}
	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ownedProduct loads a product and checks the caller owns it. Admins may
// act on any listing.
func (s *productService) ownedProduct(ctx context.Context, caller domain.UserSignature, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Deleted {
		return nil, apperrors.Newf(apperrors.CodeProductNotFound, "product %s not found", productID)
	}
	if caller.Type == domain.UserCompany && caller.ID == product.CompanyID {
		return product, nil
	}
	if _, err := s.identity.RequireRole(ctx, caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, caller domain.UserSignature, productID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.ownedProduct(ctx, caller, productID)
	if err != nil {
		return nil, err
	}
	if req.Name == nil && req.Price == nil {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "nothing to update")
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, apperrors.New(apperrors.CodeBadUserInput, "price must be positive")
		}
		product.Price = *req.Price
	}
	product.Revision = uuid.NewString()
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = caller.ID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, caller domain.UserSignature, productID string) error {
	if _, err := s.ownedProduct(ctx, caller, productID); err != nil {
		return err
	}
	return s.productRepo.SoftDeleteProduct(ctx, productID, caller.ID)
}

func (s *productService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Deleted {
		return nil, apperrors.Newf(apperrors.CodeProductNotFound, "product %s not found", productID)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, companyID string) ([]domain.Product, error) {
	return s.productRepo.ListProductsByCompany(ctx, companyID)
}
