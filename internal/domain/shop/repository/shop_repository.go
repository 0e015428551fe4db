package repository

import (
	"marketplace_api/internal/domain/shop/model"

	"gorm.io/gorm"
)

type ShopRepository interface {
	Create(shop *model.Shop) error
	GetByID(id string) (*model.Shop, error)
	GetByOwnerID(ownerID string) (*model.Shop, error)
	GetList(offset, limit int, status string) ([]model.Shop, int64, error)
	Update(shop *model.Shop) error
}

type shopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) Create(shop *model.Shop) error {
	return r.db.Create(shop).Error
}

func (r *shopRepository) GetByID(id string) (*model.Shop, error) {
	var shop model.Shop
	if err := r.db.First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepository) GetByOwnerID(ownerID string) (*model.Shop, error) {
	var shop model.Shop
	if err := r.db.First(&shop, "owner_id = ?", ownerID).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepository) GetList(offset, limit int, status string) ([]model.Shop, int64, error) {
	var shops []model.Shop
	var total int64

	query := r.db.Model(&model.Shop{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Find(&shops).Error; err != nil {
		return nil, 0, err
	}
	return shops, total, nil
}

func (r *shopRepository) Update(shop *model.Shop) error {
	return r.db.Save(shop).Error
}
