package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	notificationService "marketplace_api/internal/domain/notification/service"
	orderModel "marketplace_api/internal/domain/order/model"
	orderRepo "marketplace_api/internal/domain/order/repository"
	"marketplace_api/internal/domain/refund/model"
	"marketplace_api/internal/domain/refund/repository"
	shopRepo "marketplace_api/internal/domain/shop/repository"
	userModel "marketplace_api/internal/domain/user/model"
	"marketplace_api/pkg/apperrors"
	"marketplace_api/pkg/utils"

	"gorm.io/gorm"
)

type CreateRefundInput struct {
	OrderID      string          `json:"orderId" binding:"required"`
	ProductID    string          `json:"productId" binding:"required"`
	Quantity     int             `json:"quantity" binding:"required,gt=0"`
	RefundReason string          `json:"refundReason" binding:"required"`
	Images       json.RawMessage `json:"images"`
}

type UpdateRefundInput struct {
	Status          string  `json:"status" binding:"required"`
	ShopkeeperReply *string `json:"shopkeeperReply"`
}

type RefundService interface {
	CreateRefund(userID string, input CreateRefundInput) (*model.RefundRequest, error)
	// UpdateRefundStatus moves a refund along its workflow and cascades the
	// terminal outcomes onto the order.
	UpdateRefundStatus(actorUserID, refundID string, input UpdateRefundInput) (*model.RefundRequest, error)
	GetRefundByID(actorUserID, actorRole, refundID string) (*model.RefundRequest, error)
	GetRefundsByUser(userID string, p *utils.Pagination) (*utils.PageResult, error)
	GetRefundsByShopkeeper(actorUserID, status string, p *utils.Pagination) (*utils.PageResult, error)

	// DeleteRefund soft-deletes a settled request from the shop's list.
	DeleteRefund(actorUserID, refundID string) error
}

type refundService struct {
	repo          repository.RefundRepository
	orders        orderRepo.OrderRepository
	shops         shopRepo.ShopRepository
	notifications notificationService.NotificationService
}

func NewRefundService(
	repo repository.RefundRepository,
	orders orderRepo.OrderRepository,
	shops shopRepo.ShopRepository,
	notifications notificationService.NotificationService,
) RefundService {
	return &refundService{
		repo:          repo,
		orders:        orders,
		shops:         shops,
		notifications: notifications,
	}
}

// orderStatusFor maps a refund status onto the order status it cascades to.
// Intermediate refund states leave the order parked at Refund.
func orderStatusFor(status model.RefundStatus) orderModel.OrderStatus {
	switch status {
	case model.RefundCompleted:
		return orderModel.OrderRefundCompleted
	case model.RefundRejected:
		return orderModel.OrderRefundRejected
	case model.RefundFailed:
		return orderModel.OrderRefundFailed
	default:
		return orderModel.OrderRefund
	}
}

func (s *refundService) CreateRefund(userID string, input CreateRefundInput) (*model.RefundRequest, error) {
	order, err := s.orders.GetByID(input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotAcceptable("Order not found")
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NotAcceptable("You are not owner of this order")
	}
	if order.RefundStatus != nil &&
		*order.RefundStatus != string(model.RefundRejected) &&
		*order.RefundStatus != string(model.RefundFailed) {
		return nil, apperrors.NotAcceptable("A refund has already been requested for this order")
	}

	var line *orderModel.OrderDetail
	for i := range order.OrderDetails {
		if order.OrderDetails[i].ProductID == input.ProductID {
			line = &order.OrderDetails[i]
			break
		}
	}
	if line == nil {
		return nil, apperrors.NotAcceptable("Product does not belong to this order")
	}
	if input.Quantity > line.Quantity {
		return nil, apperrors.NotAcceptable("Refund quantity exceeds the ordered quantity")
	}

	now := time.Now()
	request := &model.RefundRequest{
		UserID:       userID,
		OrderID:      order.ID,
		ProductID:    input.ProductID,
		Quantity:     input.Quantity,
		Price:        line.Price,
		RefundReason: input.RefundReason,
		Images:       input.Images,
		RequestDate:  &now,
		Status:       model.RefundPending,
	}
	request.CreatedBy = userID

	if err := s.repo.CreateWithOrder(request, orderModel.OrderRefund); err != nil {
		return nil, err
	}

	if shop, err := s.shops.GetByID(order.ShopID); err == nil {
		s.notifications.Notify(shop.OwnerID,
			"Refund requested",
			fmt.Sprintf("A refund has been requested for order %s", order.ID),
			fmt.Sprintf("/shopkeeper/refunds/%s", request.ID))
	}

	return request, nil
}

func (s *refundService) UpdateRefundStatus(actorUserID, refundID string, input UpdateRefundInput) (*model.RefundRequest, error) {
	request, err := s.repo.GetByID(refundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotAcceptable("Refund request not found")
		}
		return nil, err
	}

	order, err := s.orders.GetByID(request.OrderID)
	if err != nil {
		return nil, err
	}
	shop, err := s.shops.GetByOwnerID(actorUserID)
	if err != nil || shop.ID != order.ShopID {
		return nil, apperrors.NotAcceptable("You are not owner of this order")
	}

	newStatus := model.RefundStatus(input.Status)
	if !model.CanTransition(request.Status, newStatus) {
		return nil, apperrors.NotAcceptable(fmt.Sprintf("Can not update refund status to %s", newStatus))
	}

	request.Status = newStatus
	if input.ShopkeeperReply != nil {
		request.ShopkeeperReply = input.ShopkeeperReply
	}
	if newStatus == model.RefundCompleted {
		now := time.Now()
		request.ApprovalDate = &now
	}
	request.UpdatedBy = actorUserID

	if err := s.repo.UpdateWithOrder(request, orderStatusFor(newStatus)); err != nil {
		return nil, err
	}

	s.notifications.Notify(request.UserID,
		"Refund status updated",
		fmt.Sprintf("Your refund request for order %s is now %s", request.OrderID, newStatus),
		fmt.Sprintf("/refunds/%s", request.ID))

	return request, nil
}

func (s *refundService) DeleteRefund(actorUserID, refundID string) error {
	request, err := s.repo.GetByID(refundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Refund request not found")
		}
		return err
	}

	order, err := s.orders.GetByID(request.OrderID)
	if err != nil {
		return err
	}
	shop, err := s.shops.GetByOwnerID(actorUserID)
	if err != nil || shop.ID != order.ShopID {
		return apperrors.NotAcceptable("You are not owner of this order")
	}

	return s.repo.Delete(request)
}

func (s *refundService) GetRefundByID(actorUserID, actorRole, refundID string) (*model.RefundRequest, error) {
	request, err := s.repo.GetByID(refundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotAcceptable("Refund request not found")
		}
		return nil, err
	}

	if actorRole == userModel.RoleAdmin || actorRole == userModel.RoleSuperAdmin {
		return request, nil
	}
	if request.UserID == actorUserID {
		return request, nil
	}

	order, err := s.orders.GetByID(request.OrderID)
	if err != nil {
		return nil, err
	}
	shop, err := s.shops.GetByOwnerID(actorUserID)
	if err != nil || shop.ID != order.ShopID {
		return nil, apperrors.Forbidden("Permission denied")
	}
	return request, nil
}

func (s *refundService) GetRefundsByUser(userID string, p *utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.GetPageOffset()
	requests, total, err := s.repo.GetListByUser(userID, offset, limit)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(requests, total, p)
	return &result, nil
}

func (s *refundService) GetRefundsByShopkeeper(actorUserID, status string, p *utils.Pagination) (*utils.PageResult, error) {
	shop, err := s.shops.GetByOwnerID(actorUserID)
	if err != nil {
		return nil, apperrors.NotAcceptable("You do not own a shop")
	}

	offset, limit := p.GetPageOffset()
	requests, total, err := s.repo.GetListByShop(shop.ID, offset, limit, status)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(requests, total, p)
	return &result, nil
}
