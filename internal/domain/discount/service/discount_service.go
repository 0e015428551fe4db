package service

import (
	"encoding/json"
	"errors"
	"time"

	"marketplace_api/internal/domain/discount/model"
	"marketplace_api/internal/domain/discount/repository"
	shopRepo "marketplace_api/internal/domain/shop/repository"
	"marketplace_api/pkg/apperrors"
	"marketplace_api/pkg/utils"

	"gorm.io/gorm"
)

type DiscountInput struct {
	Code               string          `json:"code" binding:"required,max=64"`
	Description        string          `json:"description"`
	Campaign           string          `json:"campaign"`
	DiscountPercentage int             `json:"discountPercentage" binding:"required,gt=0,lte=100"`
	Quantity           *int            `json:"quantity"`
	Conditions         json.RawMessage `json:"conditions"`
	ValidUntil         time.Time       `json:"validUntil" binding:"required"`
}

type DiscountService interface {
	// CreateShopDiscount creates a code scoped to the shopkeeper's shop.
	CreateShopDiscount(userID string, input DiscountInput) (*model.Discount, error)
	// CreatePlatformDiscount creates an unscoped code (admin).
	CreatePlatformDiscount(input DiscountInput) (*model.Discount, error)
	GetByCode(code string) (*model.Discount, error)
	ListShopDiscounts(userID, status string, p *utils.Pagination) (*utils.PageResult, error)
	ListPlatformDiscounts(status string, p *utils.Pagination) (*utils.PageResult, error)
	DeactivateShopDiscount(userID, discountID string) error
	// CheckUsable reports whether the user can still apply the code.
	CheckUsable(userID, code string) (*model.Discount, error)
}

type discountService struct {
	repo  repository.DiscountRepository
	shops shopRepo.ShopRepository
}

func NewDiscountService(repo repository.DiscountRepository, shops shopRepo.ShopRepository) DiscountService {
	return &discountService{repo: repo, shops: shops}
}

func (s *discountService) CreateShopDiscount(userID string, input DiscountInput) (*model.Discount, error) {
	shop, err := s.shops.GetByOwnerID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotAcceptable("You do not own a shop")
		}
		return nil, err
	}

	discount := s.build(input)
	discount.ShopID = &shop.ID
	discount.CreatedBy = userID

	if err := s.create(discount); err != nil {
		return nil, err
	}
	return discount, nil
}

func (s *discountService) CreatePlatformDiscount(input DiscountInput) (*model.Discount, error) {
	discount := s.build(input)
	if err := s.create(discount); err != nil {
		return nil, err
	}
	return discount, nil
}

func (s *discountService) build(input DiscountInput) *model.Discount {
	return &model.Discount{
		Code:               input.Code,
		Description:        input.Description,
		Campaign:           input.Campaign,
		DiscountPercentage: input.DiscountPercentage,
		Quantity:           input.Quantity,
		Status:             model.DiscountActive,
		Conditions:         input.Conditions,
		ValidUntil:         input.ValidUntil,
	}
}

func (s *discountService) create(discount *model.Discount) error {
	if _, err := s.repo.GetByCode(discount.Code); err == nil {
		return apperrors.NotAcceptable("Discount code already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.repo.Create(discount)
}

func (s *discountService) GetByCode(code string) (*model.Discount, error) {
	discount, err := s.repo.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Discount not found")
		}
		return nil, err
	}
	return discount, nil
}

func (s *discountService) ListShopDiscounts(userID, status string, p *utils.Pagination) (*utils.PageResult, error) {
	shop, err := s.shops.GetByOwnerID(userID)
	if err != nil {
		return nil, apperrors.NotAcceptable("You do not own a shop")
	}

	offset, limit := p.GetPageOffset()
	discounts, total, err := s.repo.GetList(offset, limit, status, &shop.ID)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(discounts, total, p)
	return &result, nil
}

func (s *discountService) ListPlatformDiscounts(status string, p *utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.GetPageOffset()
	platform := ""
	discounts, total, err := s.repo.GetList(offset, limit, status, &platform)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(discounts, total, p)
	return &result, nil
}

func (s *discountService) DeactivateShopDiscount(userID, discountID string) error {
	shop, err := s.shops.GetByOwnerID(userID)
	if err != nil {
		return apperrors.NotAcceptable("You do not own a shop")
	}

	discount, err := s.repo.GetByID(discountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotAcceptable("Discount not found")
		}
		return err
	}
	if discount.ShopID == nil || *discount.ShopID != shop.ID {
		return apperrors.NotAcceptable("Discount does not belong to your shop")
	}

	discount.Status = model.DiscountInactive
	discount.UpdatedBy = userID
	return s.repo.Update(discount)
}

func (s *discountService) CheckUsable(userID, code string) (*model.Discount, error) {
	discount, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}

	if discount.Status != model.DiscountActive {
		return nil, apperrors.NotAcceptable("Discount is no longer available")
	}
	if discount.ValidUntil.Before(time.Now()) {
		return nil, apperrors.NotAcceptable("Discount has expired")
	}
	if discount.Quantity != nil && discount.Used >= *discount.Quantity {
		return nil, apperrors.NotAcceptable("Discount is no longer available")
	}

	consumed, err := s.repo.HasUserConsumed(userID, discount.ID)
	if err != nil {
		return nil, err
	}
	if consumed {
		return nil, apperrors.NotAcceptable("Discount has already been used")
	}

	return discount, nil
}
