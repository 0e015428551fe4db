package service

import (
	"encoding/json"
	"errors"

	"marketplace_api/internal/domain/product/model"
	"marketplace_api/internal/domain/product/repository"
	shopRepo "marketplace_api/internal/domain/shop/repository"
	"marketplace_api/pkg/apperrors"
	"marketplace_api/pkg/utils"

	"gorm.io/gorm"
)

type ProductInput struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Description string          `json:"description"`
	Price       int64           `json:"price" binding:"required,gt=0"`
	Stock       int             `json:"stock" binding:"gte=0"`
	Images      json.RawMessage `json:"images"`
	CategoryIDs []string        `json:"categoryIds"`
}

type CategoryInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type ProductService interface {
	CreateProduct(userID string, input ProductInput) (*model.Product, error)
	GetProductByID(id string) (*model.Product, error)
	ListProducts(p *utils.Pagination, shopID, categoryID string) (*utils.PageResult, error)
	// ListAllProducts ignores the active-only filter of the public listing.
	ListAllProducts(p *utils.Pagination, status string) (*utils.PageResult, error)
	UpdateProduct(userID, productID string, input ProductInput) (*model.Product, error)
	DeleteProduct(userID, productID string) error
	SetProductStatus(userID, productID, status string) error

	CreateCategory(input CategoryInput) (*model.Category, error)
	ListCategories() ([]model.Category, error)
}

type productService struct {
	repo  repository.ProductRepository
	shops shopRepo.ShopRepository
}

func NewProductService(repo repository.ProductRepository, shops shopRepo.ShopRepository) ProductService {
	return &productService{repo: repo, shops: shops}
}

// ownShop resolves the caller's shop or rejects the request.
func (s *productService) ownShop(userID string) (string, error) {
	shop, err := s.shops.GetByOwnerID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NotAcceptable("You do not own a shop")
		}
		return "", err
	}
	return shop.ID, nil
}

func (s *productService) CreateProduct(userID string, input ProductInput) (*model.Product, error) {
	shopID, err := s.ownShop(userID)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		ShopID:      shopID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Status:      model.ProductActive,
		Images:      input.Images,
	}
	product.CreatedBy = userID
	for _, id := range input.CategoryIDs {
		category := model.Category{}
		category.ID = id
		product.Categories = append(product.Categories, category)
	}

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProductByID(id string) (*model.Product, error) {
	return s.repo.GetByID(id)
}

func (s *productService) ListProducts(p *utils.Pagination, shopID, categoryID string) (*utils.PageResult, error) {
	offset, limit := p.GetPageOffset()
	products, total, err := s.repo.GetList(offset, limit, shopID, categoryID)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(products, total, p)
	return &result, nil
}

func (s *productService) ListAllProducts(p *utils.Pagination, status string) (*utils.PageResult, error) {
	offset, limit := p.GetPageOffset()
	products, total, err := s.repo.GetListAdmin(offset, limit, status)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(products, total, p)
	return &result, nil
}

func (s *productService) UpdateProduct(userID, productID string, input ProductInput) (*model.Product, error) {
	product, err := s.ownProduct(userID, productID)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	if input.Images != nil {
		product.Images = input.Images
	}
	product.UpdatedBy = userID

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) DeleteProduct(userID, productID string) error {
	product, err := s.ownProduct(userID, productID)
	if err != nil {
		return err
	}
	return s.repo.Delete(product)
}

func (s *productService) SetProductStatus(userID, productID, status string) error {
	if status != model.ProductActive && status != model.ProductDeactivated {
		return apperrors.BadRequest("Invalid product status")
	}

	product, err := s.ownProduct(userID, productID)
	if err != nil {
		return err
	}
	product.Status = status
	product.UpdatedBy = userID
	return s.repo.Update(product)
}

func (s *productService) ownProduct(userID, productID string) (*model.Product, error) {
	shopID, err := s.ownShop(userID)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotAcceptable("Product not found")
		}
		return nil, err
	}
	if product.ShopID != shopID {
		return nil, apperrors.NotAcceptable("Product does not belong to your shop")
	}
	return product, nil
}

func (s *productService) CreateCategory(input CategoryInput) (*model.Category, error) {
	category := &model.Category{
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
	}
	if err := s.repo.CreateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *productService) ListCategories() ([]model.Category, error) {
	return s.repo.GetCategories()
}
