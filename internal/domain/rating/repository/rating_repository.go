package repository

import (
	orderModel "marketplace_api/internal/domain/order/model"
	"marketplace_api/internal/domain/rating/model"

	"gorm.io/gorm"
)

type RatingRepository interface {
	Upsert(rating *model.Rating) error
	GetByUserAndProduct(userID, productID string) (*model.Rating, error)
	GetListByProduct(productID string, offset, limit int) ([]model.Rating, int64, error)
	AverageByProduct(productID string) (float64, error)
	// HasPurchased reports whether the user has a completed order containing
	// the product; only buyers who received the item may rate it.
	HasPurchased(userID, productID string) (bool, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Upsert(rating *model.Rating) error {
	return r.db.Save(rating).Error
}

func (r *ratingRepository) GetByUserAndProduct(userID, productID string) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.First(&rating, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetListByProduct(productID string, offset, limit int) ([]model.Rating, int64, error) {
	var ratings []model.Rating
	var total int64

	query := r.db.Model(&model.Rating{}).Where("product_id = ?", productID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

func (r *ratingRepository) AverageByProduct(productID string) (float64, error) {
	var avg float64
	err := r.db.Model(&model.Rating{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(stars), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *ratingRepository) HasPurchased(userID, productID string) (bool, error) {
	var count int64
	err := r.db.Model(&orderModel.OrderDetail{}).
		Joins("JOIN orders ON orders.id = order_details.order_id").
		Where("orders.user_id = ? AND order_details.product_id = ? AND orders.order_status = ?",
			userID, productID, orderModel.OrderCompleted).
		Count(&count).Error
	return count > 0, err
}
