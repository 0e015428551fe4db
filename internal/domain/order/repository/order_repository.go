package repository

import (
	"marketplace_api/internal/domain/order/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	// CreateOrder persists the order header and its detail rows in one
	// transaction. prepare runs first inside the same transaction; checkout
	// uses it for the stock decrements and discount consumption so an
	// out-of-stock line item rolls back everything.
	CreateOrder(order *model.Order, details []model.OrderDetail, prepare func(tx *gorm.DB) error) error

	GetByID(id string) (*model.Order, error)
	GetByOrderPaymentID(orderPaymentID string) (*model.Order, error)
	GetListByUser(userID string, offset, limit int) ([]model.Order, int64, error)
	GetListByShop(shopID string, offset, limit int, status string) ([]model.Order, int64, error)
	UpdateStatus(orderID string, status model.OrderStatus) error
	SetOrderPaymentID(orderID, orderPaymentID string) error
	// MarkPaid flips payment status to Paid at most once. Returns false when
	// the order was already Paid, which is how duplicate provider callbacks
	// become no-ops.
	MarkPaid(orderPaymentID string) (bool, error)

	GetPaymentMethod(id string) (*model.PaymentMethod, error)
	GetShippingMethod(id string) (*model.ShippingMethod, error)
	ListPaymentMethods() ([]model.PaymentMethod, error)
	ListShippingMethods() ([]model.ShippingMethod, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(order *model.Order, details []model.OrderDetail, prepare func(tx *gorm.DB) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if prepare != nil {
			if err := prepare(tx); err != nil {
				return err
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range details {
			details[i].OrderID = order.ID
		}
		return tx.Create(&details).Error
	})
}

func (r *orderRepository) GetByID(id string) (*model.Order, error) {
	var order model.Order
	err := r.db.
		Preload("Discount").
		Preload("OrderDetails").
		Preload("OrderDetails.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByOrderPaymentID(orderPaymentID string) (*model.Order, error) {
	var order model.Order
	if err := r.db.First(&order, "order_payment_id = ?", orderPaymentID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetListByUser(userID string, offset, limit int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	query := r.db.Model(&model.Order{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("OrderDetails").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) GetListByShop(shopID string, offset, limit int, status string) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	query := r.db.Model(&model.Order{}).Where("shop_id = ?", shopID)
	if status != "" {
		query = query.Where("order_status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("OrderDetails").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) UpdateStatus(orderID string, status model.OrderStatus) error {
	return r.db.Model(&model.Order{}).
		Where("id = ?", orderID).
		UpdateColumn("order_status", status).Error
}

func (r *orderRepository) SetOrderPaymentID(orderID, orderPaymentID string) error {
	return r.db.Model(&model.Order{}).
		Where("id = ?", orderID).
		UpdateColumn("order_payment_id", orderPaymentID).Error
}

func (r *orderRepository) MarkPaid(orderPaymentID string) (bool, error) {
	result := r.db.Model(&model.Order{}).
		Where("order_payment_id = ? AND payment_status <> ?", orderPaymentID, model.PaymentPaid).
		UpdateColumn("payment_status", model.PaymentPaid)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepository) GetPaymentMethod(id string) (*model.PaymentMethod, error) {
	var method model.PaymentMethod
	if err := r.db.First(&method, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *orderRepository) GetShippingMethod(id string) (*model.ShippingMethod, error) {
	var method model.ShippingMethod
	if err := r.db.First(&method, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *orderRepository) ListPaymentMethods() ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod
	if err := r.db.Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *orderRepository) ListShippingMethods() ([]model.ShippingMethod, error) {
	var methods []model.ShippingMethod
	if err := r.db.Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}
