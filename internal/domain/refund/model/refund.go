package model

import (
	"encoding/json"
	"time"

	baseModel "marketplace_api/pkg/model"
)

// RefundStatus tracks a refund request independently of the order, with its
// own transition table.
type RefundStatus string

const (
	RefundPending    RefundStatus = "Pending"
	RefundProcessing RefundStatus = "Processing"
	RefundAccepted   RefundStatus = "Accepted"
	RefundRejected   RefundStatus = "Rejected"
	RefundCompleted  RefundStatus = "Completed"
	RefundFailed     RefundStatus = "Failed"
)

// RefundStatusTransitions: current status -> allowed next statuses.
// Rejected, Completed and Failed are terminal (self-loop only), so settled
// requests cannot be resurrected.
var RefundStatusTransitions = map[RefundStatus][]RefundStatus{
	RefundPending:    {RefundPending, RefundProcessing, RefundAccepted, RefundRejected},
	RefundProcessing: {RefundProcessing, RefundCompleted, RefundFailed},
	RefundAccepted:   {RefundAccepted, RefundCompleted, RefundFailed},
	RefundRejected:   {RefundRejected},
	RefundCompleted:  {RefundCompleted},
	RefundFailed:     {RefundFailed},
}

// CanTransition reports whether current -> next is a declared edge.
func CanTransition(current, next RefundStatus) bool {
	for _, allowed := range RefundStatusTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RefundRequest is a buyer's claim against one product of one order.
type RefundRequest struct {
	baseModel.BaseModel
	UserID          string          `gorm:"type:uuid;index;not null" json:"userId"`
	OrderID         string          `gorm:"type:uuid;index;not null" json:"orderId"`
	ProductID       string          `gorm:"type:uuid;not null" json:"productId"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	Price           int64           `gorm:"not null" json:"price"`
	RefundReason    string          `gorm:"type:text;not null" json:"refundReason"`
	Images          json.RawMessage `gorm:"type:jsonb" json:"images,omitempty"`
	ShopkeeperReply *string         `gorm:"type:text" json:"shopkeeperReply,omitempty"`
	RequestDate     *time.Time      `json:"requestDate,omitempty"`
	ApprovalDate    *time.Time      `json:"approvalDate,omitempty"`
	Status          RefundStatus    `gorm:"type:varchar(32);default:'Pending';index" json:"status"`
}
