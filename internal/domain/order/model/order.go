package model

import (
	discountModel "marketplace_api/internal/domain/discount/model"
	productModel "marketplace_api/internal/domain/product/model"
	baseModel "marketplace_api/pkg/model"
)

// OrderStatus is the buyer/seller-visible fulfillment state.
type OrderStatus string

const (
	OrderWaitingVerify   OrderStatus = "Waiting_Verify"
	OrderWaitingGet      OrderStatus = "Waiting_Get"
	OrderWaitingDelivery OrderStatus = "Waiting_Delivery"
	OrderInDelivery      OrderStatus = "In_Delivery"
	OrderDeliveryFailed  OrderStatus = "Delivery_Failed"
	OrderCompleted       OrderStatus = "Completed"
	OrderCancelled       OrderStatus = "cancelled"

	// Refund-driven statuses, set as side effects of the refund workflow;
	// they are never targets of the fulfillment transition table.
	OrderRefund          OrderStatus = "Refund"
	OrderRefundCompleted OrderStatus = "Refund_Completed"
	OrderRefundRejected  OrderStatus = "Refund_Rejected"
	OrderRefundFailed    OrderStatus = "Refund_Failed"
)

// PaymentStatus of an order, driven by the gateway callbacks.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "Unpaid"
	PaymentPaid   PaymentStatus = "Paid"
)

// OrderStatusTransitions is the fulfillment state machine: current status ->
// allowed next statuses, self-loops included. Completed is terminal.
var OrderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderWaitingVerify:   {OrderWaitingVerify, OrderWaitingGet},
	OrderWaitingGet:      {OrderWaitingGet, OrderWaitingDelivery},
	OrderWaitingDelivery: {OrderWaitingDelivery, OrderInDelivery},
	OrderInDelivery:      {OrderInDelivery, OrderDeliveryFailed, OrderCompleted, OrderCancelled},
	OrderDeliveryFailed:  {OrderDeliveryFailed, OrderInDelivery, OrderCancelled},
	OrderCompleted:       {OrderCompleted},
}

// CanTransition reports whether current -> next is a declared edge. Unknown
// current statuses (including the refund-driven ones) have no outgoing edges.
func CanTransition(current, next OrderStatus) bool {
	for _, allowed := range OrderStatusTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is the checkout result. Soft lifecycle only: rows are never hard
// deleted, all mutation goes through the status machines.
type Order struct {
	baseModel.BaseModel
	UserID           string        `gorm:"type:uuid;index;not null" json:"userId"`
	ShopID           string        `gorm:"type:uuid;index;not null" json:"shopId"`
	PaymentMethodID  string        `gorm:"type:uuid;not null" json:"paymentMethodId"`
	ShippingMethodID string        `gorm:"type:uuid;not null" json:"shippingMethodId"`
	AddressID        string        `gorm:"type:uuid;not null" json:"addressId"`
	DiscountID       *string       `gorm:"type:uuid" json:"discountId,omitempty"`
	ShippingFee      int64         `gorm:"not null" json:"shippingFee"`
	TotalAmount      int64         `gorm:"not null" json:"totalAmount"`
	OrderStatus      OrderStatus   `gorm:"type:varchar(32);default:'Waiting_Verify';index" json:"orderStatus"`
	RefundStatus     *string       `gorm:"type:varchar(32)" json:"refundStatus,omitempty"`
	PaymentStatus    PaymentStatus `gorm:"type:varchar(16);default:'Unpaid'" json:"paymentStatus"`
	// OrderPaymentID correlates provider callbacks with this order.
	OrderPaymentID string `gorm:"type:varchar(64);index" json:"orderPaymentId"`

	Discount     *discountModel.Discount `gorm:"foreignKey:DiscountID" json:"discount,omitempty"`
	OrderDetails []OrderDetail           `gorm:"foreignKey:OrderID" json:"orderDetails,omitempty"`
}

// OrderDetail is one line item: quantity and the price snapshot at purchase
// time, decoupled from the live product price. Immutable after creation.
type OrderDetail struct {
	baseModel.BaseModel
	OrderID   string `gorm:"type:uuid;index;not null" json:"orderId"`
	ProductID string `gorm:"type:uuid;index;not null" json:"productId"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	Price     int64  `gorm:"not null" json:"price"`

	Product *productModel.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// PaymentMethod is a checkout option (COD, Momo, ZaloPay, ...).
type PaymentMethod struct {
	baseModel.BaseModel
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`
}

// Shipping types.
const (
	ShippingLocal         = "Local"
	ShippingInternational = "International"
)

// ShippingMethod is a delivery option with a base fee.
type ShippingMethod struct {
	baseModel.BaseModel
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Type        string `gorm:"type:varchar(32);default:'Local'" json:"type"`
	Description string `gorm:"type:varchar(255)" json:"description"`
	Fee         int64  `gorm:"not null" json:"fee"`
}
