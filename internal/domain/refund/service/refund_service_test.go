package service

import (
	"testing"

	orderModel "marketplace_api/internal/domain/order/model"
	"marketplace_api/internal/domain/refund/model"
	shopModel "marketplace_api/internal/domain/shop/model"
	userModel "marketplace_api/internal/domain/user/model"
	"marketplace_api/pkg/apperrors"
	baseModel "marketplace_api/pkg/model"
	"marketplace_api/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockRefundRepository is a mock of RefundRepository
type MockRefundRepository struct {
	mock.Mock
}

func (m *MockRefundRepository) CreateWithOrder(request *model.RefundRequest, orderStatus orderModel.OrderStatus) error {
	args := m.Called(request, orderStatus)
	return args.Error(0)
}

func (m *MockRefundRepository) GetByID(id string) (*model.RefundRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefundRequest), args.Error(1)
}

func (m *MockRefundRepository) GetListByUser(userID string, offset, limit int) ([]model.RefundRequest, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]model.RefundRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockRefundRepository) GetListByShop(shopID string, offset, limit int, status string) ([]model.RefundRequest, int64, error) {
	args := m.Called(shopID, offset, limit, status)
	return args.Get(0).([]model.RefundRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockRefundRepository) UpdateWithOrder(request *model.RefundRequest, orderStatus orderModel.OrderStatus) error {
	args := m.Called(request, orderStatus)
	return args.Error(0)
}

func (m *MockRefundRepository) Delete(request *model.RefundRequest) error {
	args := m.Called(request)
	return args.Error(0)
}

// MockOrderRepository is a mock of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(order *orderModel.Order, details []orderModel.OrderDetail, prepare func(tx *gorm.DB) error) error {
	args := m.Called(order, details, prepare)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(id string) (*orderModel.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderModel.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByOrderPaymentID(orderPaymentID string) (*orderModel.Order, error) {
	args := m.Called(orderPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderModel.Order), args.Error(1)
}

func (m *MockOrderRepository) GetListByUser(userID string, offset, limit int) ([]orderModel.Order, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]orderModel.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) GetListByShop(shopID string, offset, limit int, status string) ([]orderModel.Order, int64, error) {
	args := m.Called(shopID, offset, limit, status)
	return args.Get(0).([]orderModel.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) UpdateStatus(orderID string, status orderModel.OrderStatus) error {
	args := m.Called(orderID, status)
	return args.Error(0)
}

func (m *MockOrderRepository) SetOrderPaymentID(orderID, orderPaymentID string) error {
	args := m.Called(orderID, orderPaymentID)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkPaid(orderPaymentID string) (bool, error) {
	args := m.Called(orderPaymentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) GetPaymentMethod(id string) (*orderModel.PaymentMethod, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderModel.PaymentMethod), args.Error(1)
}

func (m *MockOrderRepository) GetShippingMethod(id string) (*orderModel.ShippingMethod, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderModel.ShippingMethod), args.Error(1)
}

func (m *MockOrderRepository) ListPaymentMethods() ([]orderModel.PaymentMethod, error) {
	args := m.Called()
	return args.Get(0).([]orderModel.PaymentMethod), args.Error(1)
}

func (m *MockOrderRepository) ListShippingMethods() ([]orderModel.ShippingMethod, error) {
	args := m.Called()
	return args.Get(0).([]orderModel.ShippingMethod), args.Error(1)
}

// MockShopRepository is a mock of ShopRepository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) Create(shop *shopModel.Shop) error {
	args := m.Called(shop)
	return args.Error(0)
}

func (m *MockShopRepository) GetByID(id string) (*shopModel.Shop, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopModel.Shop), args.Error(1)
}

func (m *MockShopRepository) GetByOwnerID(ownerID string) (*shopModel.Shop, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopModel.Shop), args.Error(1)
}

func (m *MockShopRepository) GetList(offset, limit int, status string) ([]shopModel.Shop, int64, error) {
	args := m.Called(offset, limit, status)
	return args.Get(0).([]shopModel.Shop), args.Get(1).(int64), args.Error(2)
}

func (m *MockShopRepository) Update(shop *shopModel.Shop) error {
	args := m.Called(shop)
	return args.Error(0)
}

// MockNotificationService is a mock of NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(assigneeID, title, content, actions string) {
	m.Called(assigneeID, title, content, actions)
}

func (m *MockNotificationService) List(assigneeID string, p *utils.Pagination) (*utils.PageResult, error) {
	args := m.Called(assigneeID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.PageResult), args.Error(1)
}

func (m *MockNotificationService) UnreadCount(assigneeID string) (int64, error) {
	args := m.Called(assigneeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) MarkRead(id, assigneeID string) error {
	args := m.Called(id, assigneeID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(assigneeID string) error {
	args := m.Called(assigneeID)
	return args.Error(0)
}

type refundFixture struct {
	repo          *MockRefundRepository
	orders        *MockOrderRepository
	shops         *MockShopRepository
	notifications *MockNotificationService
	service       RefundService
}

func newRefundFixture() *refundFixture {
	f := &refundFixture{
		repo:          new(MockRefundRepository),
		orders:        new(MockOrderRepository),
		shops:         new(MockShopRepository),
		notifications: new(MockNotificationService),
	}
	f.service = NewRefundService(f.repo, f.orders, f.shops, f.notifications)
	return f
}

func deliveredOrder() *orderModel.Order {
	return &orderModel.Order{
		BaseModel:   baseModel.BaseModel{ID: "order-1"},
		UserID:      "buyer-1",
		ShopID:      "shop-1",
		OrderStatus: orderModel.OrderCompleted,
		OrderDetails: []orderModel.OrderDetail{
			{OrderID: "order-1", ProductID: "prod-1", Quantity: 2, Price: 100000},
		},
	}
}

func ownShop() *shopModel.Shop {
	return &shopModel.Shop{
		BaseModel: baseModel.BaseModel{ID: "shop-1"},
		OwnerID:   "owner-1",
	}
}

func TestCreateRefund(t *testing.T) {
	input := CreateRefundInput{
		OrderID:      "order-1",
		ProductID:    "prod-1",
		Quantity:     1,
		RefundReason: "Damaged on arrival",
	}

	t.Run("Create refund parks the order at Refund", func(t *testing.T) {
		f := newRefundFixture()
		f.orders.On("GetByID", "order-1").Return(deliveredOrder(), nil)
		f.repo.On("CreateWithOrder", mock.AnythingOfType("*model.RefundRequest"), orderModel.OrderRefund).Return(nil)
		f.shops.On("GetByID", "shop-1").Return(ownShop(), nil)
		f.notifications.On("Notify", "owner-1", mock.Anything, mock.Anything, mock.Anything).Return()

		request, err := f.service.CreateRefund("buyer-1", input)

		assert.NoError(t, err)
		assert.Equal(t, model.RefundPending, request.Status)
		assert.Equal(t, int64(100000), request.Price)
		assert.NotNil(t, request.RequestDate)
		f.repo.AssertExpectations(t)
	})

	t.Run("Second open refund on the same order rejected", func(t *testing.T) {
		f := newRefundFixture()
		order := deliveredOrder()
		pending := string(model.RefundPending)
		order.RefundStatus = &pending
		f.orders.On("GetByID", "order-1").Return(order, nil)

		_, err := f.service.CreateRefund("buyer-1", input)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already been requested")
		f.repo.AssertNotCalled(t, "CreateWithOrder", mock.Anything, mock.Anything)
	})

	t.Run("New refund allowed after a rejected one", func(t *testing.T) {
		f := newRefundFixture()
		order := deliveredOrder()
		rejected := string(model.RefundRejected)
		order.RefundStatus = &rejected
		f.orders.On("GetByID", "order-1").Return(order, nil)
		f.repo.On("CreateWithOrder", mock.AnythingOfType("*model.RefundRequest"), orderModel.OrderRefund).Return(nil)
		f.shops.On("GetByID", "shop-1").Return(ownShop(), nil)
		f.notifications.On("Notify", "owner-1", mock.Anything, mock.Anything, mock.Anything).Return()

		_, err := f.service.CreateRefund("buyer-1", input)

		assert.NoError(t, err)
	})

	t.Run("Product outside the order rejected", func(t *testing.T) {
		f := newRefundFixture()
		f.orders.On("GetByID", "order-1").Return(deliveredOrder(), nil)

		foreign := input
		foreign.ProductID = "prod-2"
		_, err := f.service.CreateRefund("buyer-1", foreign)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not belong")
	})

	t.Run("Quantity above the ordered quantity rejected", func(t *testing.T) {
		f := newRefundFixture()
		f.orders.On("GetByID", "order-1").Return(deliveredOrder(), nil)

		tooMany := input
		tooMany.Quantity = 3
		_, err := f.service.CreateRefund("buyer-1", tooMany)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds")
	})

	t.Run("Foreign buyer rejected", func(t *testing.T) {
		f := newRefundFixture()
		f.orders.On("GetByID", "order-1").Return(deliveredOrder(), nil)

		_, err := f.service.CreateRefund("buyer-2", input)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not owner")
	})
}

func pendingRefund() *model.RefundRequest {
	return &model.RefundRequest{
		BaseModel: baseModel.BaseModel{ID: "refund-1"},
		UserID:    "buyer-1",
		OrderID:   "order-1",
		ProductID: "prod-1",
		Quantity:  1,
		Status:    model.RefundPending,
	}
}

func TestUpdateRefundStatus(t *testing.T) {
	t.Run("Accepting keeps the order parked at Refund", func(t *testing.T) {
		f := newRefundFixture()
		f.repo.On("GetByID", "refund-1").Return(pendingRefund(), nil)
		f.orders.On("GetByID", "order-1").Return(deliveredOrder(), nil)
		f.shops.On("GetByOwnerID", "owner-1").Return(ownShop(), nil)
		f.repo.On("UpdateWithOrder", mock.AnythingOfType("*model.RefundRequest"), orderModel.OrderRefund).Return(nil)
		f.notifications.On("Notify", "buyer-1", mock.Anything, mock.Anything, mock.Anything).Return()

		request, err := f.service.UpdateRefundStatus("owner-1", "refund-1", UpdateRefundInput{
			Status: string(model.RefundAccepted),
		})

		assert.NoError(t, err)
		assert.Equal(t, model.RefundAccepted, request.Status)
		assert.Nil(t, request.ApprovalDate)
		f.repo.AssertExpectations(t)
	})

	t.Run("Completing cascades Refund_Completed and stamps approval", func(t *testing.T) {
		f := newRefundFixture()
		refund := pendingRefund()
		refund.Status = model.RefundAccepted
		f.repo.On("GetByID", "refund-1").Return(refund, nil)
		f.orders.On("GetByID", "order-1").Return(deliveredOrder(), nil)
		f.shops.On("GetByOwnerID", "owner-1").Return(ownShop(), nil)
		f.repo.On("UpdateWithOrder", mock.AnythingOfType("*model.RefundRequest"), orderModel.OrderRefundCompleted).Return(nil)
		f.notifications.On("Notify", "buyer-1", mock.Anything, mock.Anything, mock.Anything).Return()

		request, err := f.service.UpdateRefundStatus("owner-1", "refund-1", UpdateRefundInput{
			Status: string(model.RefundCompleted),
		})

		assert.NoError(t, err)
		assert.NotNil(t, request.ApprovalDate)
		f.repo.AssertExpectations(t)
	})

	t.Run("Rejecting cascades Refund_Rejected", func(t *testing.T) {
		f := newRefundFixture()
		reply := "Item shows no defect"
		f.repo.On("GetByID", "refund-1").Return(pendingRefund(), nil)
		f.orders.On("GetByID", "order-1").Return(deliveredOrder(), nil)
		f.shops.On("GetByOwnerID", "owner-1").Return(ownShop(), nil)
		f.repo.On("UpdateWithOrder", mock.AnythingOfType("*model.RefundRequest"), orderModel.OrderRefundRejected).Return(nil)
		f.notifications.On("Notify", "buyer-1", mock.Anything, mock.Anything, mock.Anything).Return()

		request, err := f.service.UpdateRefundStatus("owner-1", "refund-1", UpdateRefundInput{
			Status:          string(model.RefundRejected),
			ShopkeeperReply: &reply,
		})

		assert.NoError(t, err)
		assert.Equal(t, &reply, request.ShopkeeperReply)
	})

	t.Run("Illegal transition rejected", func(t *testing.T) {
		f := newRefundFixture()
		f.repo.On("GetByID", "refund-1").Return(pendingRefund(), nil)
		f.orders.On("GetByID", "order-1").Return(deliveredOrder(), nil)
		f.shops.On("GetByOwnerID", "owner-1").Return(ownShop(), nil)

		_, err := f.service.UpdateRefundStatus("owner-1", "refund-1", UpdateRefundInput{
			Status: string(model.RefundCompleted),
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Can not update refund status")
		f.repo.AssertNotCalled(t, "UpdateWithOrder", mock.Anything, mock.Anything)
	})

	t.Run("Foreign shopkeeper rejected", func(t *testing.T) {
		f := newRefundFixture()
		f.repo.On("GetByID", "refund-1").Return(pendingRefund(), nil)
		f.orders.On("GetByID", "order-1").Return(deliveredOrder(), nil)
		f.shops.On("GetByOwnerID", "owner-2").Return(&shopModel.Shop{
			BaseModel: baseModel.BaseModel{ID: "shop-2"},
			OwnerID:   "owner-2",
		}, nil)

		_, err := f.service.UpdateRefundStatus("owner-2", "refund-1", UpdateRefundInput{
			Status: string(model.RefundAccepted),
		})

		assert.Error(t, err)
		f.repo.AssertNotCalled(t, "UpdateWithOrder", mock.Anything, mock.Anything)
	})
}

func TestGetRefundByID(t *testing.T) {
	t.Run("Owner reads own refund", func(t *testing.T) {
		f := newRefundFixture()
		f.repo.On("GetByID", "refund-1").Return(pendingRefund(), nil)

		request, err := f.service.GetRefundByID("buyer-1", userModel.RoleUser, "refund-1")

		assert.NoError(t, err)
		assert.Equal(t, "refund-1", request.ID)
	})

	t.Run("Unrelated user gets forbidden", func(t *testing.T) {
		f := newRefundFixture()
		f.repo.On("GetByID", "refund-1").Return(pendingRefund(), nil)
		f.orders.On("GetByID", "order-1").Return(deliveredOrder(), nil)
		f.shops.On("GetByOwnerID", "buyer-2").Return(nil, gorm.ErrRecordNotFound)

		_, err := f.service.GetRefundByID("buyer-2", userModel.RoleUser, "refund-1")

		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})

	t.Run("Admin bypasses ownership", func(t *testing.T) {
		f := newRefundFixture()
		f.repo.On("GetByID", "refund-1").Return(pendingRefund(), nil)

		_, err := f.service.GetRefundByID("admin-1", userModel.RoleAdmin, "refund-1")

		assert.NoError(t, err)
	})
}

func TestDeleteRefund(t *testing.T) {
	t.Run("Shop owner deletes", func(t *testing.T) {
		f := newRefundFixture()
		f.repo.On("GetByID", "refund-1").Return(pendingRefund(), nil)
		f.orders.On("GetByID", "order-1").Return(deliveredOrder(), nil)
		f.shops.On("GetByOwnerID", "owner-1").Return(ownShop(), nil)
		f.repo.On("Delete", mock.AnythingOfType("*model.RefundRequest")).Return(nil)

		err := f.service.DeleteRefund("owner-1", "refund-1")

		assert.NoError(t, err)
		f.repo.AssertExpectations(t)
	})

	t.Run("Foreign shopkeeper rejected", func(t *testing.T) {
		f := newRefundFixture()
		f.repo.On("GetByID", "refund-1").Return(pendingRefund(), nil)
		f.orders.On("GetByID", "order-1").Return(deliveredOrder(), nil)
		f.shops.On("GetByOwnerID", "owner-2").Return(nil, gorm.ErrRecordNotFound)

		err := f.service.DeleteRefund("owner-2", "refund-1")

		assert.Error(t, err)
		f.repo.AssertNotCalled(t, "Delete", mock.Anything)
	})
}
