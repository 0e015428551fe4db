package repository

import (
	orderModel "marketplace_api/internal/domain/order/model"
	"marketplace_api/internal/domain/refund/model"

	"gorm.io/gorm"
)

type RefundRepository interface {
	// CreateWithOrder inserts the refund request and stamps the order's
	// refund/order status in the same transaction. Either both land or
	// neither does.
	CreateWithOrder(request *model.RefundRequest, orderStatus orderModel.OrderStatus) error

	GetByID(id string) (*model.RefundRequest, error)
	GetListByUser(userID string, offset, limit int) ([]model.RefundRequest, int64, error)
	GetListByShop(shopID string, offset, limit int, status string) ([]model.RefundRequest, int64, error)

	// UpdateWithOrder persists the refund request and, when orderStatus is
	// non-empty, cascades it onto the order in the same transaction.
	UpdateWithOrder(request *model.RefundRequest, orderStatus orderModel.OrderStatus) error

	Delete(request *model.RefundRequest) error
}

type refundRepository struct {
	db *gorm.DB
}

func NewRefundRepository(db *gorm.DB) RefundRepository {
	return &refundRepository{db: db}
}

func (r *refundRepository) CreateWithOrder(request *model.RefundRequest, orderStatus orderModel.OrderStatus) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(request).Error; err != nil {
			return err
		}
		return tx.Model(&orderModel.Order{}).
			Where("id = ?", request.OrderID).
			UpdateColumns(map[string]interface{}{
				"order_status":  orderStatus,
				"refund_status": string(request.Status),
			}).Error
	})
}

func (r *refundRepository) GetByID(id string) (*model.RefundRequest, error) {
	var request model.RefundRequest
	if err := r.db.First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *refundRepository) GetListByUser(userID string, offset, limit int) ([]model.RefundRequest, int64, error) {
	var requests []model.RefundRequest
	var total int64

	query := r.db.Model(&model.RefundRequest{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *refundRepository) GetListByShop(shopID string, offset, limit int, status string) ([]model.RefundRequest, int64, error) {
	var requests []model.RefundRequest
	var total int64

	query := r.db.Model(&model.RefundRequest{}).
		Joins("JOIN orders ON orders.id = refund_requests.order_id").
		Where("orders.shop_id = ?", shopID)
	if status != "" {
		query = query.Where("refund_requests.status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("refund_requests.created_at DESC").Offset(offset).Limit(limit).Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *refundRepository) UpdateWithOrder(request *model.RefundRequest, orderStatus orderModel.OrderStatus) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(request).Error; err != nil {
			return err
		}
		if orderStatus == "" {
			return nil
		}
		return tx.Model(&orderModel.Order{}).
			Where("id = ?", request.OrderID).
			UpdateColumns(map[string]interface{}{
				"order_status":  orderStatus,
				"refund_status": string(request.Status),
			}).Error
	})
}

func (r *refundRepository) Delete(request *model.RefundRequest) error {
	return r.db.Delete(request).Error
}
