package service

import (
	"context"
	"errors"
	"fmt"

	notificationService "marketplace_api/internal/domain/notification/service"
	orderModel "marketplace_api/internal/domain/order/model"
	orderRepo "marketplace_api/internal/domain/order/repository"
	"marketplace_api/internal/domain/payment/gateway"
	shopRepo "marketplace_api/internal/domain/shop/repository"
	"marketplace_api/pkg/apperrors"
	"marketplace_api/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService interface {
	// Initiate creates a provider payment for the order and returns the URL
	// the buyer is redirected to.
	Initiate(ctx context.Context, userID, orderID, provider string) (string, error)

	// HandleCallback verifies and applies a provider callback. The update is
	// idempotent; a replayed callback verifies fine but mutates nothing.
	HandleCallback(provider string, body []byte) error

	CheckStatus(ctx context.Context, userID, orderID, provider string) (map[string]interface{}, error)
}

type paymentService struct {
	orders        orderRepo.OrderRepository
	shops         shopRepo.ShopRepository
	gateways      map[string]gateway.Gateway
	notifications notificationService.NotificationService
}

func NewPaymentService(
	orders orderRepo.OrderRepository,
	shops shopRepo.ShopRepository,
	notifications notificationService.NotificationService,
	gateways ...gateway.Gateway,
) PaymentService {
	byName := make(map[string]gateway.Gateway, len(gateways))
	for _, g := range gateways {
		byName[g.Name()] = g
	}
	return &paymentService{
		orders:        orders,
		shops:         shops,
		gateways:      byName,
		notifications: notifications,
	}
}

func (s *paymentService) Initiate(ctx context.Context, userID, orderID, provider string) (string, error) {
	g, ok := s.gateways[provider]
	if !ok {
		return "", apperrors.NotAcceptable("Unsupported payment provider")
	}

	order, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.NotAcceptable("Order not found")
		}
		return "", err
	}
	if order.UserID != userID {
		return "", apperrors.NotAcceptable("You are not owner of this order")
	}
	if order.PaymentStatus == orderModel.PaymentPaid {
		return "", apperrors.NotAcceptable("Order has already been paid")
	}

	result, err := g.CreatePayment(ctx, order.ID, order.TotalAmount,
		fmt.Sprintf("Payment for order %s", order.ID))
	if err != nil {
		return "", err
	}

	if err := s.orders.SetOrderPaymentID(order.ID, result.OrderPaymentID); err != nil {
		return "", err
	}
	return result.PayURL, nil
}

func (s *paymentService) HandleCallback(provider string, body []byte) error {
	g, ok := s.gateways[provider]
	if !ok {
		return apperrors.NotAcceptable("Unsupported payment provider")
	}

	// Signature check comes first. A forged or tampered body must not touch
	// the order.
	result, err := g.VerifyCallback(body)
	if err != nil {
		return err
	}

	if !result.Success {
		logger.Log.Warn("payment failed at provider",
			zap.String("provider", provider),
			zap.String("orderPaymentId", result.OrderPaymentID))
		return nil
	}

	first, err := s.orders.MarkPaid(result.OrderPaymentID)
	if err != nil {
		return err
	}
	if !first {
		// Duplicate delivery of the same callback. Acknowledge, do nothing.
		logger.Log.Info("duplicate payment callback ignored",
			zap.String("provider", provider),
			zap.String("orderPaymentId", result.OrderPaymentID))
		return nil
	}

	order, err := s.orders.GetByOrderPaymentID(result.OrderPaymentID)
	if err != nil {
		return err
	}

	s.notifications.Notify(order.UserID,
		"Payment received",
		fmt.Sprintf("Your payment for order %s has been confirmed", order.ID),
		fmt.Sprintf("/orders/%s", order.ID))

	if shop, err := s.shops.GetByID(order.ShopID); err == nil {
		s.notifications.Notify(shop.OwnerID,
			"Order paid",
			fmt.Sprintf("Order %s has been paid", order.ID),
			fmt.Sprintf("/shopkeeper/orders/%s", order.ID))
	}

	return nil
}

func (s *paymentService) CheckStatus(ctx context.Context, userID, orderID, provider string) (map[string]interface{}, error) {
	g, ok := s.gateways[provider]
	if !ok {
		return nil, apperrors.NotAcceptable("Unsupported payment provider")
	}

	order, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotAcceptable("Order not found")
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NotAcceptable("You are not owner of this order")
	}
	if order.OrderPaymentID == "" {
		return nil, apperrors.NotAcceptable("Order has no pending payment")
	}

	return g.QueryStatus(ctx, order.OrderPaymentID)
}
