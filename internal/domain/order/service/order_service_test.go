package service

import (
	"testing"
	"time"

	discountModel "marketplace_api/internal/domain/discount/model"
	"marketplace_api/internal/domain/order/model"
	productModel "marketplace_api/internal/domain/product/model"
	shopModel "marketplace_api/internal/domain/shop/model"
	userModel "marketplace_api/internal/domain/user/model"
	"marketplace_api/pkg/apperrors"
	baseModel "marketplace_api/pkg/model"
	"marketplace_api/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockOrderRepository is a mock of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(order *model.Order, details []model.OrderDetail, prepare func(tx *gorm.DB) error) error {
	args := m.Called(order, details, prepare)
	if err := args.Error(0); err != nil {
		return err
	}
	// Run prepare the way the real transaction does; its error aborts the
	// whole create.
	if prepare != nil {
		return prepare(nil)
	}
	return nil
}

func (m *MockOrderRepository) GetByID(id string) (*model.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByOrderPaymentID(orderPaymentID string) (*model.Order, error) {
	args := m.Called(orderPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetListByUser(userID string, offset, limit int) ([]model.Order, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) GetListByShop(shopID string, offset, limit int, status string) ([]model.Order, int64, error) {
	args := m.Called(shopID, offset, limit, status)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) UpdateStatus(orderID string, status model.OrderStatus) error {
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

func (m *MockOrderRepository) GetPaymentMethod(id string) (*model.PaymentMethod, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentMethod), args.Error(1)
}

func (m *MockOrderRepository) GetShippingMethod(id string) (*model.ShippingMethod, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShippingMethod), args.Error(1)
}

func (m *MockOrderRepository) ListPaymentMethods() ([]model.PaymentMethod, error) {
	args := m.Called()
	return args.Get(0).([]model.PaymentMethod), args.Error(1)
}

func (m *MockOrderRepository) ListShippingMethods() ([]model.ShippingMethod, error) {
	args := m.Called()
	return args.Get(0).([]model.ShippingMethod), args.Error(1)
}

// MockProductRepository is a mock of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(product *productModel.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(id string) (*productModel.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productModel.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ids []string) ([]productModel.Product, error) {
	args := m.Called(ids)
	return args.Get(0).([]productModel.Product), args.Error(1)
}

func (m *MockProductRepository) GetList(offset, limit int, shopID, categoryID string) ([]productModel.Product, int64, error) {
	args := m.Called(offset, limit, shopID, categoryID)
	return args.Get(0).([]productModel.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetListAdmin(offset, limit int, status string) ([]productModel.Product, int64, error) {
	args := m.Called(offset, limit, status)
	return args.Get(0).([]productModel.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Update(product *productModel.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(product *productModel.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(tx *gorm.DB, productID string, qty int) error {
	args := m.Called(tx, productID, qty)
	return args.Error(0)
}

func (m *MockProductRepository) RestoreStock(tx *gorm.DB, productID string, qty int) error {
	args := m.Called(tx, productID, qty)
	return args.Error(0)
}

func (m *MockProductRepository) CreateCategory(category *productModel.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockProductRepository) GetCategories() ([]productModel.Category, error) {
	args := m.Called()
	return args.Get(0).([]productModel.Category), args.Error(1)
}

// MockDiscountRepository is a mock of DiscountRepository
type MockDiscountRepository struct {
	mock.Mock
}

func (m *MockDiscountRepository) Create(discount *discountModel.Discount) error {
	args := m.Called(discount)
	return args.Error(0)
}

func (m *MockDiscountRepository) GetByID(id string) (*discountModel.Discount, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discountModel.Discount), args.Error(1)
}

func (m *MockDiscountRepository) GetByCode(code string) (*discountModel.Discount, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discountModel.Discount), args.Error(1)
}

func (m *MockDiscountRepository) GetList(offset, limit int, status string, shopID *string) ([]discountModel.Discount, int64, error) {
	args := m.Called(offset, limit, status, shopID)
	return args.Get(0).([]discountModel.Discount), args.Get(1).(int64), args.Error(2)
}

func (m *MockDiscountRepository) Update(discount *discountModel.Discount) error {
	args := m.Called(discount)
	return args.Error(0)
}

func (m *MockDiscountRepository) Delete(discount *discountModel.Discount) error {
	args := m.Called(discount)
	return args.Error(0)
}

func (m *MockDiscountRepository) Consume(tx *gorm.DB, discountID, shopID string) error {
	args := m.Called(tx, discountID, shopID)
	return args.Error(0)
}

func (m *MockDiscountRepository) HasUserConsumed(userID, discountID string) (bool, error) {
	args := m.Called(userID, discountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDiscountRepository) CreateUserDiscount(tx *gorm.DB, userDiscount *discountModel.UserDiscount) error {
	args := m.Called(tx, userDiscount)
	return args.Error(0)
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

// MockAddressGetter is a mock of AddressGetter
type MockAddressGetter struct {
	mock.Mock
}

func (m *MockAddressGetter) GetAddress(id string) (*userModel.Address, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userModel.Address), args.Error(1)
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

type orderServiceFixture struct {
	repo          *MockOrderRepository
	products      *MockProductRepository
	discounts     *MockDiscountRepository
	shops         *MockShopRepository
	addresses     *MockAddressGetter
	notifications *MockNotificationService
	service       OrderService
}

func newOrderServiceFixture() *orderServiceFixture {
	f := &orderServiceFixture{
		repo:          new(MockOrderRepository),
		products:      new(MockProductRepository),
		discounts:     new(MockDiscountRepository),
		shops:         new(MockShopRepository),
		addresses:     new(MockAddressGetter),
		notifications: new(MockNotificationService),
	}
	f.service = NewOrderService(f.repo, f.products, f.discounts, f.shops, f.addresses, f.notifications)
	return f
}

func testProduct(id string, price int64, stock int) productModel.Product {
	return productModel.Product{
		BaseModel: baseModel.BaseModel{ID: id},
		ShopID:    "shop-1",
		Name:      "Product " + id,
		Price:     price,
		Stock:     stock,
		Status:    productModel.ProductActive,
	}
}

func testShop(id, ownerID string) *shopModel.Shop {
	return &shopModel.Shop{
		BaseModel: baseModel.BaseModel{ID: id},
		OwnerID:   ownerID,
		Name:      "Test Shop",
	}
}

func baseCreateInput() CreateOrderInput {
	return CreateOrderInput{
		PaymentMethodID:  "pm-1",
		ShippingMethodID: "sm-1",
		AddressID:        "addr-1",
		ShopID:           "shop-1",
		ShippingFee:      30000,
		TotalAmount:      230000,
		OrderDetails: []OrderLineInput{
			{ProductID: "prod-1", Quantity: 2, Price: 100000},
		},
	}
}

// stubCheckoutLookups wires the method/address/shop lookups every checkout
// needs before it touches products.
func (f *orderServiceFixture) stubCheckoutLookups() {
	f.repo.On("GetPaymentMethod", "pm-1").Return(&model.PaymentMethod{}, nil)
	f.repo.On("GetShippingMethod", "sm-1").Return(&model.ShippingMethod{}, nil)
	f.addresses.On("GetAddress", "addr-1").Return(&userModel.Address{}, nil)
	f.shops.On("GetByID", "shop-1").Return(testShop("shop-1", "owner-1"), nil)
}

func TestCreateOrder(t *testing.T) {
	t.Run("Create order success", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.stubCheckoutLookups()
		f.products.On("GetByIDs", []string{"prod-1"}).
			Return([]productModel.Product{testProduct("prod-1", 100000, 5)}, nil)
		f.products.On("DecrementStock", mock.Anything, "prod-1", 2).Return(nil)
		f.repo.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.notifications.On("Notify", "owner-1", mock.Anything, mock.Anything, mock.Anything).Return()

		order, err := f.service.CreateOrder("buyer-1", baseCreateInput())

		assert.NoError(t, err)
		assert.Equal(t, model.OrderWaitingVerify, order.OrderStatus)
		assert.Equal(t, model.PaymentUnpaid, order.PaymentStatus)
		assert.Equal(t, int64(230000), order.TotalAmount)
		f.repo.AssertExpectations(t)
		f.products.AssertExpectations(t)
		f.notifications.AssertExpectations(t)
	})

	t.Run("Create order with discount consumes it", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.stubCheckoutLookups()
		discountID := "disc-1"
		discount := &discountModel.Discount{
			BaseModel:          baseModel.BaseModel{ID: discountID},
			DiscountPercentage: 10,
			ValidUntil:         time.Now().Add(24 * time.Hour),
		}
		f.discounts.On("GetByID", discountID).Return(discount, nil)
		f.discounts.On("HasUserConsumed", "buyer-1", discountID).Return(false, nil)
		f.discounts.On("Consume", mock.Anything, discountID, "shop-1").Return(nil)
		f.discounts.On("CreateUserDiscount", mock.Anything, mock.AnythingOfType("*model.UserDiscount")).Return(nil)
		f.products.On("GetByIDs", []string{"prod-1"}).
			Return([]productModel.Product{testProduct("prod-1", 100000, 5)}, nil)
		f.products.On("DecrementStock", mock.Anything, "prod-1", 2).Return(nil)
		f.repo.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.notifications.On("Notify", "owner-1", mock.Anything, mock.Anything, mock.Anything).Return()

		input := baseCreateInput()
		input.DiscountID = &discountID
		// 200000 - 10% + 30000 shipping.
		input.TotalAmount = 210000

		order, err := f.service.CreateOrder("buyer-1", input)

		assert.NoError(t, err)
		assert.Equal(t, &discountID, order.DiscountID)
		f.discounts.AssertExpectations(t)
	})

	t.Run("Discount already used", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.stubCheckoutLookups()
		discountID := "disc-1"
		f.discounts.On("GetByID", discountID).Return(&discountModel.Discount{
			BaseModel:          baseModel.BaseModel{ID: discountID},
			DiscountPercentage: 10,
			ValidUntil:         time.Now().Add(24 * time.Hour),
		}, nil)
		f.discounts.On("HasUserConsumed", "buyer-1", discountID).Return(true, nil)

		input := baseCreateInput()
		input.DiscountID = &discountID

		_, err := f.service.CreateOrder("buyer-1", input)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already been used")
		f.repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Expired discount rejected", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.stubCheckoutLookups()
		discountID := "disc-1"
		f.discounts.On("GetByID", discountID).Return(&discountModel.Discount{
			BaseModel:          baseModel.BaseModel{ID: discountID},
			DiscountPercentage: 10,
			ValidUntil:         time.Now().Add(-time.Hour),
		}, nil)

		input := baseCreateInput()
		input.DiscountID = &discountID

		_, err := f.service.CreateOrder("buyer-1", input)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "expired")
		f.repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Other shop's discount rejected", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.stubCheckoutLookups()
		discountID := "disc-1"
		otherShop := "shop-2"
		f.discounts.On("GetByID", discountID).Return(&discountModel.Discount{
			BaseModel:          baseModel.BaseModel{ID: discountID},
			DiscountPercentage: 10,
			ValidUntil:         time.Now().Add(24 * time.Hour),
			ShopID:             &otherShop,
		}, nil)

		input := baseCreateInput()
		input.DiscountID = &discountID

		_, err := f.service.CreateOrder("buyer-1", input)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not apply")
		f.repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Stale price rejected", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.stubCheckoutLookups()
		f.products.On("GetByIDs", []string{"prod-1"}).
			Return([]productModel.Product{testProduct("prod-1", 120000, 5)}, nil)

		_, err := f.service.CreateOrder("buyer-1", baseCreateInput())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "has changed")
		f.repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Out of stock rejected before any write", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.stubCheckoutLookups()
		f.products.On("GetByIDs", []string{"prod-1"}).
			Return([]productModel.Product{testProduct("prod-1", 100000, 1)}, nil)

		_, err := f.service.CreateOrder("buyer-1", baseCreateInput())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "out of stock")
		f.repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
		f.products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Concurrent sell-out aborts the transaction", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.stubCheckoutLookups()
		f.products.On("GetByIDs", []string{"prod-1"}).
			Return([]productModel.Product{testProduct("prod-1", 100000, 5)}, nil)
		f.products.On("DecrementStock", mock.Anything, "prod-1", 2).
			Return(apperrors.NotAcceptable("Product is out of stock"))
		f.repo.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := f.service.CreateOrder("buyer-1", baseCreateInput())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "out of stock")
		f.notifications.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Total mismatch rejected", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.stubCheckoutLookups()
		f.products.On("GetByIDs", []string{"prod-1"}).
			Return([]productModel.Product{testProduct("prod-1", 100000, 5)}, nil)

		input := baseCreateInput()
		input.TotalAmount = 199999

		_, err := f.service.CreateOrder("buyer-1", input)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not match")
		f.repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown product rejected", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.stubCheckoutLookups()
		f.products.On("GetByIDs", []string{"prod-1"}).
			Return([]productModel.Product{}, nil)

		_, err := f.service.CreateOrder("buyer-1", baseCreateInput())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Product not found")
	})

	t.Run("Unknown payment method rejected", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.repo.On("GetPaymentMethod", "pm-1").Return(nil, gorm.ErrRecordNotFound)

		_, err := f.service.CreateOrder("buyer-1", baseCreateInput())

		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindNotAcceptable))
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	order := func(status model.OrderStatus) *model.Order {
		return &model.Order{
			BaseModel:   baseModel.BaseModel{ID: "order-1"},
			UserID:      "buyer-1",
			ShopID:      "shop-1",
			OrderStatus: status,
		}
	}

	t.Run("Valid transition persists and notifies the buyer", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.repo.On("GetByID", "order-1").Return(order(model.OrderWaitingVerify), nil)
		f.shops.On("GetByOwnerID", "owner-1").Return(testShop("shop-1", "owner-1"), nil)
		f.repo.On("UpdateStatus", "order-1", model.OrderWaitingGet).Return(nil)
		f.notifications.On("Notify", "buyer-1", mock.Anything, mock.Anything, mock.Anything).Return()

		updated, err := f.service.UpdateOrderStatus("owner-1", "order-1", model.OrderWaitingGet)

		assert.NoError(t, err)
		assert.Equal(t, model.OrderWaitingGet, updated.OrderStatus)
		f.repo.AssertExpectations(t)
		f.notifications.AssertExpectations(t)
	})

	t.Run("Illegal transition rejected", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.repo.On("GetByID", "order-1").Return(order(model.OrderWaitingVerify), nil)
		f.shops.On("GetByOwnerID", "owner-1").Return(testShop("shop-1", "owner-1"), nil)

		_, err := f.service.UpdateOrderStatus("owner-1", "order-1", model.OrderCompleted)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Can not update order status")
		f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})

	t.Run("Completed is terminal", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.repo.On("GetByID", "order-1").Return(order(model.OrderCompleted), nil)
		f.shops.On("GetByOwnerID", "owner-1").Return(testShop("shop-1", "owner-1"), nil)

		_, err := f.service.UpdateOrderStatus("owner-1", "order-1", model.OrderCancelled)

		assert.Error(t, err)
		f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})

	t.Run("Foreign shopkeeper rejected", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.repo.On("GetByID", "order-1").Return(order(model.OrderWaitingVerify), nil)
		f.shops.On("GetByOwnerID", "owner-2").Return(testShop("shop-2", "owner-2"), nil)

		_, err := f.service.UpdateOrderStatus("owner-2", "order-1", model.OrderWaitingGet)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not owner")
		f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})
}

func TestCompleteOrder(t *testing.T) {
	t.Run("Buyer completes a delivered order", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.repo.On("GetByID", "order-1").Return(&model.Order{
			BaseModel:   baseModel.BaseModel{ID: "order-1"},
			UserID:      "buyer-1",
			ShopID:      "shop-1",
			OrderStatus: model.OrderInDelivery,
		}, nil)
		f.repo.On("UpdateStatus", "order-1", model.OrderCompleted).Return(nil)
		f.notifications.On("Notify", "buyer-1", mock.Anything, mock.Anything, mock.Anything).Return()

		updated, err := f.service.CompleteOrder("buyer-1", "order-1")

		assert.NoError(t, err)
		assert.Equal(t, model.OrderCompleted, updated.OrderStatus)
	})

	t.Run("Cannot complete before delivery", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.repo.On("GetByID", "order-1").Return(&model.Order{
			BaseModel:   baseModel.BaseModel{ID: "order-1"},
			UserID:      "buyer-1",
			OrderStatus: model.OrderWaitingVerify,
		}, nil)

		_, err := f.service.CompleteOrder("buyer-1", "order-1")

		assert.Error(t, err)
		f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})

	t.Run("Foreign buyer rejected", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.repo.On("GetByID", "order-1").Return(&model.Order{
			BaseModel:   baseModel.BaseModel{ID: "order-1"},
			UserID:      "buyer-1",
			OrderStatus: model.OrderInDelivery,
		}, nil)

		_, err := f.service.CompleteOrder("buyer-2", "order-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not owner")
	})
}

func TestGetOrderByID(t *testing.T) {
	order := &model.Order{
		BaseModel: baseModel.BaseModel{ID: "order-1"},
		UserID:    "buyer-1",
		ShopID:    "shop-1",
	}

	t.Run("Buyer reads own order", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.repo.On("GetByID", "order-1").Return(order, nil)

		got, err := f.service.GetOrderByID("buyer-1", userModel.RoleUser, "order-1")

		assert.NoError(t, err)
		assert.Equal(t, "order-1", got.ID)
	})

	t.Run("Foreign buyer gets forbidden", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.repo.On("GetByID", "order-1").Return(order, nil)

		_, err := f.service.GetOrderByID("buyer-2", userModel.RoleUser, "order-1")

		assert.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	})

	t.Run("Admin bypasses ownership", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.repo.On("GetByID", "order-1").Return(order, nil)

		got, err := f.service.GetOrderByID("admin-1", userModel.RoleAdmin, "order-1")

		assert.NoError(t, err)
		assert.Equal(t, "order-1", got.ID)
	})

	t.Run("Shopkeeper reads orders of own shop only", func(t *testing.T) {
		f := newOrderServiceFixture()
		f.repo.On("GetByID", "order-1").Return(order, nil)
		f.shops.On("GetByOwnerID", "owner-2").Return(testShop("shop-2", "owner-2"), nil)

		_, err := f.service.GetOrderByID("owner-2", userModel.RoleShopkeeper, "order-1")

		assert.Error(t, err)
	})
}
