package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/core/services"
	"github.com/schoolstate/sas_backend/internal/dto"
)

type ProductServiceTestSuite struct {
	suite.Suite
	mockProductRepo *MockProductRepository
	mockIdentity    *MockIdentitySvc
	service         portssvc.ProductSvcFacade
	ctx             context.Context

	company domain.UserSignature
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockIdentity = new(MockIdentitySvc)
	suite.service = services.NewProductService(suite.mockProductRepo, suite.mockIdentity)
	suite.ctx = context.Background()
	suite.company = domain.UserSignature{Type: domain.UserCompany, ID: "company-1"}
}

func (suite *ProductServiceTestSuite) expectCompany() {
	suite.mockIdentity.On("RequireType", suite.ctx, suite.company, []domain.UserType{domain.UserCompany}).
		Return(&domain.User{UserID: suite.company.ID, Type: domain.UserCompany}, nil).Once()
}

func (suite *ProductServiceTestSuite) storedProduct() *domain.Product {
	return &domain.Product{
		ProductID: "prod-1",
		CompanyID: suite.company.ID,
		Name:      "Waffle",
		Price:     decimal.RequireFromString("2.5"),
		Revision:  "rev-1",
	}
}

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	suite.expectCompany()
	suite.mockProductRepo.On("SaveProduct", suite.ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.CompanyID == suite.company.ID && p.Name == "Waffle" && p.Revision != ""
	})).Return(nil).Once()

	req := dto.CreateProductRequest{Name: "Waffle", Price: decimal.RequireFromString("2.5")}
	product, err := suite.service.CreateProduct(suite.ctx, suite.company, req)

	suite.Require().NoError(err)
	suite.NotEmpty(product.ProductID)
	suite.NotEmpty(product.Revision)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_NonPositivePrice() {
	suite.expectCompany()

	req := dto.CreateProductRequest{Name: "Waffle", Price: decimal.Zero}
	product, err := suite.service.CreateProduct(suite.ctx, suite.company, req)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.True(apperrors.IsCode(err, apperrors.CodeBadUserInput))
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_BumpsRevision() {
	suite.mockProductRepo.On("FindProductByID", suite.ctx, "prod-1").Return(suite.storedProduct(), nil).Once()
	newPrice := decimal.RequireFromString("3")
	suite.mockProductRepo.On("UpdateProduct", suite.ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.Price.Equal(newPrice) && p.Revision != "rev-1" && p.Revision != ""
	})).Return(nil).Once()

	req := dto.UpdateProductRequest{Price: &newPrice}
	product, err := suite.service.UpdateProduct(suite.ctx, suite.company, "prod-1", req)

	suite.Require().NoError(err)
	suite.NotEqual("rev-1", product.Revision)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_NothingToUpdate() {
	suite.mockProductRepo.On("FindProductByID", suite.ctx, "prod-1").Return(suite.storedProduct(), nil).Once()

	product, err := suite.service.UpdateProduct(suite.ctx, suite.company, "prod-1", dto.UpdateProductRequest{})

	suite.Require().Error(err)
	suite.Nil(product)
	suite.True(apperrors.IsCode(err, apperrors.CodeBadUserInput))
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_ForeignCompanyNeedsAdmin() {
	other := domain.UserSignature{Type: domain.UserCompany, ID: "company-2"}
	suite.mockProductRepo.On("FindProductByID", suite.ctx, "prod-1").Return(suite.storedProduct(), nil).Once()
	suite.mockIdentity.On("RequireRole", suite.ctx, other, []domain.Role{domain.RoleAdmin}).
		Return(nil, apperrors.ErrPermissionDenied).Once()

	name := "Stolen waffle"
	product, err := suite.service.UpdateProduct(suite.ctx, other, "prod-1", dto.UpdateProductRequest{Name: &name})

	suite.Require().Error(err)
	suite.Nil(product)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "UpdateProduct", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestDeleteProduct_Success() {
	suite.mockProductRepo.On("FindProductByID", suite.ctx, "prod-1").Return(suite.storedProduct(), nil).Once()
	suite.mockProductRepo.On("SoftDeleteProduct", suite.ctx, "prod-1", suite.company.ID).Return(nil).Once()

	err := suite.service.DeleteProduct(suite.ctx, suite.company, "prod-1")

	suite.Require().NoError(err)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestGetProduct_DeletedHidden() {
	deleted := suite.storedProduct()
	deleted.Deleted = true
	suite.mockProductRepo.On("FindProductByID", suite.ctx, "prod-1").Return(deleted, nil).Once()

	product, err := suite.service.GetProduct(suite.ctx, "prod-1")

	suite.Require().Error(err)
	suite.Nil(product)
	suite.True(apperrors.IsCode(err, apperrors.CodeProductNotFound))
}

func (suite *ProductServiceTestSuite) TestListProducts() {
	listing := []domain.Product{*suite.storedProduct()}
	suite.mockProductRepo.On("ListProductsByCompany", suite.ctx, suite.company.ID).Return(listing, nil).Once()

	products, err := suite.service.ListProducts(suite.ctx, suite.company.ID)

	suite.Require().NoError(err)
	suite.Len(products, 1)
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
