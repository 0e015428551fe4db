package repository

import (
	"errors"

	"marketplace_api/internal/domain/cart/model"

	"gorm.io/gorm"
)

type CartRepository interface {
	// GetOrCreateByUser returns the user's cart, creating the row on first
	// touch.
	GetOrCreateByUser(userID string) (*model.Cart, error)
	GetDetail(cartID, productID string) (*model.CartDetail, error)
	CreateDetail(detail *model.CartDetail) error
	UpdateDetail(detail *model.CartDetail) error
	DeleteDetail(cartID, productID string) error
	ClearCart(cartID string) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetOrCreateByUser(userID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.
		Preload("Details").
		Preload("Details.Product").
		First(&cart, "user_id = ?", userID).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = model.Cart{UserID: userID}
	if err := r.db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) GetDetail(cartID, productID string) (*model.CartDetail, error) {
	var detail model.CartDetail
	err := r.db.First(&detail, "cart_id = ? AND product_id = ?", cartID, productID).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *cartRepository) CreateDetail(detail *model.CartDetail) error {
	return r.db.Create(detail).Error
}

func (r *cartRepository) UpdateDetail(detail *model.CartDetail) error {
	return r.db.Save(detail).Error
}

func (r *cartRepository) DeleteDetail(cartID, productID string) error {
	return r.db.Unscoped().
		Delete(&model.CartDetail{}, "cart_id = ? AND product_id = ?", cartID, productID).Error
}

func (r *cartRepository) ClearCart(cartID string) error {
	return r.db.Unscoped().Delete(&model.CartDetail{}, "cart_id = ?", cartID).Error
}
