package repository

import (
	"marketplace_api/internal/domain/wishlist/model"

	"gorm.io/gorm"
)

type WishlistRepository interface {
	Add(item *model.WishListItem) error
	Remove(userID, productID string) error
	Exists(userID, productID string) (bool, error)
	GetListByUser(userID string, offset, limit int) ([]model.WishListItem, int64, error)
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Add(item *model.WishListItem) error {
	return r.db.Create(item).Error
}

func (r *wishlistRepository) Remove(userID, productID string) error {
	return r.db.Unscoped().
		Delete(&model.WishListItem{}, "user_id = ? AND product_id = ?", userID, productID).Error
}

func (r *wishlistRepository) Exists(userID, productID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.WishListItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *wishlistRepository) GetListByUser(userID string, offset, limit int) ([]model.WishListItem, int64, error) {
	var items []model.WishListItem
	var total int64

	query := r.db.Model(&model.WishListItem{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Product").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
