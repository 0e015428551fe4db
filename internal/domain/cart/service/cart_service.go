package service

import (
	"errors"

	"marketplace_api/internal/domain/cart/model"
	"marketplace_api/internal/domain/cart/repository"
	productModel "marketplace_api/internal/domain/product/model"
	productRepo "marketplace_api/internal/domain/product/repository"
	"marketplace_api/pkg/apperrors"

	"gorm.io/gorm"
)

type CartItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CartService interface {
	GetCart(userID string) (*model.Cart, error)
	// AddItem puts a product in the cart, summing quantities when the line
	// already exists.
	AddItem(userID string, input CartItemInput) (*model.Cart, error)
	UpdateItem(userID string, input CartItemInput) (*model.Cart, error)
	RemoveItem(userID, productID string) (*model.Cart, error)
	ClearCart(userID string) error
}

type cartService struct {
	repo     repository.CartRepository
	products productRepo.ProductRepository
}

func NewCartService(repo repository.CartRepository, products productRepo.ProductRepository) CartService {
	return &cartService{repo: repo, products: products}
}

func (s *cartService) GetCart(userID string) (*model.Cart, error) {
	return s.repo.GetOrCreateByUser(userID)
}

func (s *cartService) AddItem(userID string, input CartItemInput) (*model.Cart, error) {
	product, err := s.checkProduct(input.ProductID)
	if err != nil {
		return nil, err
	}

	cart, err := s.repo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	detail, err := s.repo.GetDetail(cart.ID, input.ProductID)
	switch {
	case err == nil:
		detail.Quantity += input.Quantity
		if detail.Quantity > product.Stock {
			return nil, apperrors.NotAcceptable("Not enough stock for the requested quantity")
		}
		if err := s.repo.UpdateDetail(detail); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if input.Quantity > product.Stock {
			return nil, apperrors.NotAcceptable("Not enough stock for the requested quantity")
		}
		if err := s.repo.CreateDetail(&model.CartDetail{
			CartID:    cart.ID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
		}); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.repo.GetOrCreateByUser(userID)
}

func (s *cartService) UpdateItem(userID string, input CartItemInput) (*model.Cart, error) {
	product, err := s.checkProduct(input.ProductID)
	if err != nil {
		return nil, err
	}
	if input.Quantity > product.Stock {
		return nil, apperrors.NotAcceptable("Not enough stock for the requested quantity")
	}

	cart, err := s.repo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	detail, err := s.repo.GetDetail(cart.ID, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotAcceptable("Product is not in the cart")
		}
		return nil, err
	}

	detail.Quantity = input.Quantity
	if err := s.repo.UpdateDetail(detail); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreateByUser(userID)
}

func (s *cartService) RemoveItem(userID, productID string) (*model.Cart, error) {
	cart, err := s.repo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteDetail(cart.ID, productID); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreateByUser(userID)
}

func (s *cartService) ClearCart(userID string) error {
	cart, err := s.repo.GetOrCreateByUser(userID)
	if err != nil {
		return err
	}
	return s.repo.ClearCart(cart.ID)
}

func (s *cartService) checkProduct(productID string) (*productModel.Product, error) {
	product, err := s.products.GetByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotAcceptable("Product not found")
		}
		return nil, err
	}
	if product.Status != productModel.ProductActive {
		return nil, apperrors.NotAcceptable("Product is not available")
	}
	return product, nil
}
