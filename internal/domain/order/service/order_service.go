package service

import (
	"errors"
	"fmt"
	"time"

	discountModel "marketplace_api/internal/domain/discount/model"
	discountRepo "marketplace_api/internal/domain/discount/repository"
	notificationService "marketplace_api/internal/domain/notification/service"
	"marketplace_api/internal/domain/order/model"
	"marketplace_api/internal/domain/order/repository"
	productModel "marketplace_api/internal/domain/product/model"
	productRepo "marketplace_api/internal/domain/product/repository"
	shopRepo "marketplace_api/internal/domain/shop/repository"
	userModel "marketplace_api/internal/domain/user/model"
	"marketplace_api/pkg/apperrors"
	"marketplace_api/pkg/utils"

	"gorm.io/gorm"
)

// totalTolerance absorbs client-side rounding of the discounted subtotal.
const totalTolerance = 1

type OrderLineInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Price     int64  `json:"price" binding:"required,gt=0"`
}

type CreateOrderInput struct {
	PaymentMethodID  string           `json:"paymentMethodId" binding:"required"`
	ShippingMethodID string           `json:"shippingMethodId" binding:"required"`
	AddressID        string           `json:"addressId" binding:"required"`
	DiscountID       *string          `json:"discountId"`
	ShopID           string           `json:"shopId" binding:"required"`
	ShippingFee      int64            `json:"shippingFee" binding:"gte=0"`
	TotalAmount      int64            `json:"totalAmount" binding:"required,gt=0"`
	OrderDetails     []OrderLineInput `json:"orderDetails" binding:"required,min=1,dive"`
}

type OrderService interface {
	CreateOrder(userID string, input CreateOrderInput) (*model.Order, error)
	// UpdateOrderStatus is the shopkeeper entry point: any edge of the
	// transition table, guarded by shop ownership.
	UpdateOrderStatus(actorUserID, orderID string, newStatus model.OrderStatus) (*model.Order, error)
	// CompleteOrder is the buyer entry point: forces the target to
	// Completed but runs through the same transition check.
	CompleteOrder(actorUserID, orderID string) (*model.Order, error)
	GetOrderByID(actorUserID, actorRole, orderID string) (*model.Order, error)
	GetOrdersByUser(userID string, p *utils.Pagination) (*utils.PageResult, error)
	GetOrdersByShopkeeper(actorUserID string, status string, p *utils.Pagination) (*utils.PageResult, error)
	ListPaymentMethods() ([]model.PaymentMethod, error)
	ListShippingMethods() ([]model.ShippingMethod, error)
}

type orderService struct {
	repo          repository.OrderRepository
	products      productRepo.ProductRepository
	discounts     discountRepo.DiscountRepository
	shops         shopRepo.ShopRepository
	addresses     AddressGetter
	notifications notificationService.NotificationService
}

// AddressGetter is the slice of the user repository checkout needs.
type AddressGetter interface {
	GetAddress(id string) (*userModel.Address, error)
}

func NewOrderService(
	repo repository.OrderRepository,
	products productRepo.ProductRepository,
	discounts discountRepo.DiscountRepository,
	shops shopRepo.ShopRepository,
	addresses AddressGetter,
	notifications notificationService.NotificationService,
) OrderService {
	return &orderService{
		repo:          repo,
		products:      products,
		discounts:     discounts,
		shops:         shops,
		addresses:     addresses,
		notifications: notifications,
	}
}

func (s *orderService) CreateOrder(userID string, input CreateOrderInput) (*model.Order, error) {
	if _, err := s.repo.GetPaymentMethod(input.PaymentMethodID); err != nil {
		return nil, notAcceptableIfMissing(err, "Payment method not found")
	}
	if _, err := s.repo.GetShippingMethod(input.ShippingMethodID); err != nil {
		return nil, notAcceptableIfMissing(err, "Shipping method not found")
	}
	if _, err := s.addresses.GetAddress(input.AddressID); err != nil {
		return nil, notAcceptableIfMissing(err, "Address not found")
	}

	shop, err := s.shops.GetByID(input.ShopID)
	if err != nil {
		return nil, notAcceptableIfMissing(err, "Shop not found")
	}

	var discount *discountDetails
	if input.DiscountID != nil {
		discount, err = s.checkDiscount(userID, input.ShopID, *input.DiscountID)
		if err != nil {
			return nil, err
		}
	}

	products, err := s.loadProducts(input.OrderDetails)
	if err != nil {
		return nil, err
	}

	subtotal := int64(0)
	details := make([]model.OrderDetail, 0, len(input.OrderDetails))
	for _, line := range input.OrderDetails {
		product := products[line.ProductID]

		// Price snapshots come from the client; they must match the live
		// price ledger or the order is stale.
		if line.Price != product.Price {
			return nil, apperrors.NotAcceptable(fmt.Sprintf("Price of product %s has changed", product.Name))
		}
		// Cheap precheck; the transaction below is the real guarantee.
		if product.Stock < line.Quantity {
			return nil, apperrors.NotAcceptable("Product is out of stock")
		}

		subtotal += line.Price * int64(line.Quantity)
		details = append(details, model.OrderDetail{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	if err := s.checkTotal(subtotal, input, discount); err != nil {
		return nil, err
	}

	order := &model.Order{
		UserID:           userID,
		ShopID:           input.ShopID,
		PaymentMethodID:  input.PaymentMethodID,
		ShippingMethodID: input.ShippingMethodID,
		AddressID:        input.AddressID,
		DiscountID:       input.DiscountID,
		ShippingFee:      input.ShippingFee,
		TotalAmount:      input.TotalAmount,
		OrderStatus:      model.OrderWaitingVerify,
		PaymentStatus:    model.PaymentUnpaid,
	}
	order.CreatedBy = userID

	err = s.repo.CreateOrder(order, details, func(tx *gorm.DB) error {
		for _, line := range input.OrderDetails {
			if err := s.products.DecrementStock(tx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		if discount != nil {
			if err := s.discounts.Consume(tx, discount.id, input.ShopID); err != nil {
				return err
			}
			userDiscount := &discountModel.UserDiscount{
				UserID:     userID,
				DiscountID: discount.id,
				Used:       true,
			}
			if err := s.discounts.CreateUserDiscount(tx, userDiscount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(shop.OwnerID,
		"New order",
		fmt.Sprintf("A new order %s has been placed in your shop", order.ID),
		fmt.Sprintf("/shopkeeper/orders/%s", order.ID))

	return order, nil
}

func (s *orderService) UpdateOrderStatus(actorUserID, orderID string, newStatus model.OrderStatus) (*model.Order, error) {
	order, err := s.repo.GetByID(orderID)
	if err != nil {
		return nil, notAcceptableIfMissing(err, "Order not found")
	}

	shop, err := s.shops.GetByOwnerID(actorUserID)
	if err != nil || shop.ID != order.ShopID {
		return nil, apperrors.NotAcceptable("You are not owner of this order")
	}

	return s.transition(order, newStatus)
}

func (s *orderService) CompleteOrder(actorUserID, orderID string) (*model.Order, error) {
	order, err := s.repo.GetByID(orderID)
	if err != nil {
		return nil, notAcceptableIfMissing(err, "Order not found")
	}

	if order.UserID != actorUserID {
		return nil, apperrors.NotAcceptable("You are not owner of this order")
	}

	return s.transition(order, model.OrderCompleted)
}

// transition validates the edge, persists the new status and notifies the
// buyer after the write, never before.
func (s *orderService) transition(order *model.Order, newStatus model.OrderStatus) (*model.Order, error) {
	if !model.CanTransition(order.OrderStatus, newStatus) {
		return nil, apperrors.NotAcceptable(fmt.Sprintf("Can not update order status to %s", newStatus))
	}

	if err := s.repo.UpdateStatus(order.ID, newStatus); err != nil {
		return nil, err
	}
	order.OrderStatus = newStatus

	s.notifications.Notify(order.UserID,
		"Order status updated",
		fmt.Sprintf("The order %s is now %s", order.ID, newStatus),
		fmt.Sprintf("/orders/%s", order.ID))

	return order, nil
}

func (s *orderService) GetOrderByID(actorUserID, actorRole, orderID string) (*model.Order, error) {
	order, err := s.repo.GetByID(orderID)
	if err != nil {
		return nil, notAcceptableIfMissing(err, "Order not found")
	}

	switch actorRole {
	case userModel.RoleAdmin, userModel.RoleSuperAdmin:
		// Unrestricted.
	case userModel.RoleShopkeeper:
		shop, err := s.shops.GetByOwnerID(actorUserID)
		if err != nil || shop.ID != order.ShopID {
			return nil, apperrors.NotAcceptable("You are not owner of this order")
		}
	default:
		if order.UserID != actorUserID {
			return nil, apperrors.Forbidden("Permission denied")
		}
	}

	return order, nil
}

func (s *orderService) GetOrdersByUser(userID string, p *utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.GetPageOffset()
	orders, total, err := s.repo.GetListByUser(userID, offset, limit)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(orders, total, p)
	return &result, nil
}

func (s *orderService) GetOrdersByShopkeeper(actorUserID string, status string, p *utils.Pagination) (*utils.PageResult, error) {
	shop, err := s.shops.GetByOwnerID(actorUserID)
	if err != nil {
		return nil, apperrors.NotAcceptable("You do not own a shop")
	}

	offset, limit := p.GetPageOffset()
	orders, total, err := s.repo.GetListByShop(shop.ID, offset, limit, status)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(orders, total, p)
	return &result, nil
}

func (s *orderService) ListPaymentMethods() ([]model.PaymentMethod, error) {
	return s.repo.ListPaymentMethods()
}

func (s *orderService) ListShippingMethods() ([]model.ShippingMethod, error) {
	return s.repo.ListShippingMethods()
}

type discountDetails struct {
	id         string
	percentage int
}

func (s *orderService) checkDiscount(userID, shopID, discountID string) (*discountDetails, error) {
	discount, err := s.discounts.GetByID(discountID)
	if err != nil {
		return nil, notAcceptableIfMissing(err, "Discount not found")
	}

	// Cheap prechecks; the conditional Consume inside the transaction is the
	// real guarantee.
	if time.Now().After(discount.ValidUntil) {
		return nil, apperrors.NotAcceptable("Discount has expired")
	}
	if discount.ShopID != nil && *discount.ShopID != shopID {
		return nil, apperrors.NotAcceptable("Discount does not apply to this shop")
	}

	consumed, err := s.discounts.HasUserConsumed(userID, discountID)
	if err != nil {
		return nil, err
	}
	if consumed {
		return nil, apperrors.NotAcceptable("Discount has already been used")
	}

	return &discountDetails{id: discount.ID, percentage: discount.DiscountPercentage}, nil
}

func (s *orderService) loadProducts(lines []OrderLineInput) (map[string]*productModel.Product, error) {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	products, err := s.products.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*productModel.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, line := range lines {
		if _, ok := byID[line.ProductID]; !ok {
			return nil, apperrors.NotAcceptable("Product not found")
		}
	}
	return byID, nil
}

// checkTotal recomputes the order total server-side instead of trusting the
// client's arithmetic.
func (s *orderService) checkTotal(subtotal int64, input CreateOrderInput, discount *discountDetails) error {
	expected := subtotal
	if discount != nil {
		expected -= subtotal * int64(discount.percentage) / 100
	}
	expected += input.ShippingFee

	diff := expected - input.TotalAmount
	if diff < -totalTolerance || diff > totalTolerance {
		return apperrors.NotAcceptable("Order total does not match the order lines")
	}
	return nil
}

func notAcceptableIfMissing(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotAcceptable(message)
	}
	return err
}
