package service

import (
	"errors"

	productRepo "marketplace_api/internal/domain/product/repository"
	"marketplace_api/internal/domain/wishlist/model"
	"marketplace_api/internal/domain/wishlist/repository"
	"marketplace_api/pkg/apperrors"
	"marketplace_api/pkg/utils"

	"gorm.io/gorm"
)

type WishlistService interface {
	Add(userID, productID string) error
	Remove(userID, productID string) error
	List(userID string, p *utils.Pagination) (*utils.PageResult, error)
}

type wishlistService struct {
	repo     repository.WishlistRepository
	products productRepo.ProductRepository
}

func NewWishlistService(repo repository.WishlistRepository, products productRepo.ProductRepository) WishlistService {
	return &wishlistService{repo: repo, products: products}
}

func (s *wishlistService) Add(userID, productID string) error {
	if _, err := s.products.GetByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotAcceptable("Product not found")
		}
		return err
	}

	exists, err := s.repo.Exists(userID, productID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NotAcceptable("Product is already in the wishlist")
	}

	item := &model.WishListItem{UserID: userID, ProductID: productID}
	item.CreatedBy = userID
	return s.repo.Add(item)
}

func (s *wishlistService) Remove(userID, productID string) error {
	return s.repo.Remove(userID, productID)
}

func (s *wishlistService) List(userID string, p *utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.GetPageOffset()
	items, total, err := s.repo.GetListByUser(userID, offset, limit)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(items, total, p)
	return &result, nil
}
