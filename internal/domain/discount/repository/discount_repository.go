package repository

import (
	"marketplace_api/internal/domain/discount/model"
	"marketplace_api/pkg/apperrors"

	"gorm.io/gorm"
)

type DiscountRepository interface {
	Create(discount *model.Discount) error
	GetByID(id string) (*model.Discount, error)
	GetByCode(code string) (*model.Discount, error)
	GetList(offset, limit int, status string, shopID *string) ([]model.Discount, int64, error)
	Update(discount *model.Discount) error
	Delete(discount *model.Discount) error
	// Consume increments the used counter, guarded against the quantity cap,
	// expiry and shop scope in the same statement. Pass the checkout
	// transaction handle, or nil.
	Consume(tx *gorm.DB, discountID, shopID string) error
	HasUserConsumed(userID, discountID string) (bool, error)
	CreateUserDiscount(tx *gorm.DB, userDiscount *model.UserDiscount) error
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(discount *model.Discount) error {
	return r.db.Create(discount).Error
}

func (r *discountRepository) GetByID(id string) (*model.Discount, error) {
	var discount model.Discount
	if err := r.db.First(&discount, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) GetByCode(code string) (*model.Discount, error) {
	var discount model.Discount
	if err := r.db.First(&discount, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) GetList(offset, limit int, status string, shopID *string) ([]model.Discount, int64, error) {
	var discounts []model.Discount
	var total int64

	query := r.db.Model(&model.Discount{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if shopID != nil {
		if *shopID == "" {
			// Platform-wide discounts only.
			query = query.Where("shop_id IS NULL")
		} else {
			query = query.Where("shop_id = ?", *shopID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Order("valid_until DESC").Find(&discounts).Error; err != nil {
		return nil, 0, err
	}
	return discounts, total, nil
}

func (r *discountRepository) Update(discount *model.Discount) error {
	return r.db.Save(discount).Error
}

func (r *discountRepository) Delete(discount *model.Discount) error {
	return r.db.Delete(discount).Error
}

func (r *discountRepository) Consume(tx *gorm.DB, discountID, shopID string) error {
	db := r.db
	if tx != nil {
		db = tx
	}

	result := db.Model(&model.Discount{}).
		Where("id = ? AND status = ? AND valid_until > now() AND (shop_id IS NULL OR shop_id = ?) AND (quantity IS NULL OR used < quantity)",
			discountID, model.DiscountActive, shopID).
		UpdateColumn("used", gorm.Expr("used + 1"))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotAcceptable("Discount is no longer available")
	}
	return nil
}

func (r *discountRepository) HasUserConsumed(userID, discountID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.UserDiscount{}).
		Where("user_id = ? AND discount_id = ?", userID, discountID).
		Count(&count).Error
	return count > 0, err
}

func (r *discountRepository) CreateUserDiscount(tx *gorm.DB, userDiscount *model.UserDiscount) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.Create(userDiscount).Error
}
