package service

import (
	"errors"
	"fmt"

	notificationService "marketplace_api/internal/domain/notification/service"
	"marketplace_api/internal/domain/shop/model"
	"marketplace_api/internal/domain/shop/repository"
	userModel "marketplace_api/internal/domain/user/model"
	userRepo "marketplace_api/internal/domain/user/repository"
	"marketplace_api/pkg/apperrors"
	"marketplace_api/pkg/utils"

	"gorm.io/gorm"
)

type ShopInput struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type ShopService interface {
	// CreateShop registers a storefront for the user. Approval promotes the
	// owner to Shopkeeper; until then the shop stays Pending.
	CreateShop(userID string, input ShopInput) (*model.Shop, error)
	GetShopByID(id string) (*model.Shop, error)
	GetMyShop(userID string) (*model.Shop, error)
	ListShops(p *utils.Pagination, status string) (*utils.PageResult, error)
	UpdateShop(userID string, input ShopInput) (*model.Shop, error)
	// ReviewShop is the admin approval step.
	ReviewShop(shopID, status string) (*model.Shop, error)
}

type shopService struct {
	repo          repository.ShopRepository
	users         userRepo.UserRepository
	notifications notificationService.NotificationService
}

func NewShopService(repo repository.ShopRepository, users userRepo.UserRepository, notifications notificationService.NotificationService) ShopService {
	return &shopService{repo: repo, users: users, notifications: notifications}
}

func (s *shopService) CreateShop(userID string, input ShopInput) (*model.Shop, error) {
	if _, err := s.repo.GetByOwnerID(userID); err == nil {
		return nil, apperrors.NotAcceptable("You already own a shop")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	shop := &model.Shop{
		OwnerID:     userID,
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		Status:      model.ShopPending,
	}
	shop.CreatedBy = userID

	if err := s.repo.Create(shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *shopService) GetShopByID(id string) (*model.Shop, error) {
	return s.repo.GetByID(id)
}

func (s *shopService) GetMyShop(userID string) (*model.Shop, error) {
	shop, err := s.repo.GetByOwnerID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("You do not own a shop")
		}
		return nil, err
	}
	return shop, nil
}

func (s *shopService) ListShops(p *utils.Pagination, status string) (*utils.PageResult, error) {
	offset, limit := p.GetPageOffset()
	shops, total, err := s.repo.GetList(offset, limit, status)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(shops, total, p)
	return &result, nil
}

func (s *shopService) UpdateShop(userID string, input ShopInput) (*model.Shop, error) {
	shop, err := s.repo.GetByOwnerID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotAcceptable("You do not own a shop")
		}
		return nil, err
	}

	shop.Name = input.Name
	shop.Description = input.Description
	if input.Image != "" {
		shop.Image = input.Image
	}
	shop.UpdatedBy = userID

	if err := s.repo.Update(shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *shopService) ReviewShop(shopID, status string) (*model.Shop, error) {
	if status != model.ShopActive && status != model.ShopRejected && status != model.ShopDeactivated {
		return nil, apperrors.BadRequest("Invalid shop status")
	}

	shop, err := s.repo.GetByID(shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotAcceptable("Shop not found")
		}
		return nil, err
	}

	shop.Status = status
	if err := s.repo.Update(shop); err != nil {
		return nil, err
	}

	// First approval upgrades the owner's role.
	if status == model.ShopActive {
		owner, err := s.users.GetByID(shop.OwnerID)
		if err == nil && owner.Role == userModel.RoleUser {
			owner.Role = userModel.RoleShopkeeper
			if err := s.users.Update(owner); err != nil {
				return nil, err
			}
		}
	}

	s.notifications.Notify(shop.OwnerID,
		"Shop review result",
		fmt.Sprintf("Your shop %s is now %s", shop.Name, status),
		"/shopkeeper/shop")

	return shop, nil
}
