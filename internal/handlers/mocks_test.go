package handlers

import (
	"context"

	"qrdine/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) orders(args mock.Arguments) ([]*models.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderService) order(args mock.Arguments) (*models.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	return m.order(m.Called(ctx, req))
}

func (m *MockOrderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	return m.order(m.Called(ctx, orderID))
}

func (m *MockOrderService) GetRestaurantOrder(ctx context.Context, restaurantID, orderID int64) (*models.Order, error) {
	return m.order(m.Called(ctx, restaurantID, orderID))
}

func (m *MockOrderService) ListOrders(ctx context.Context, restaurantID int64) ([]*models.Order, error) {
	return m.orders(m.Called(ctx, restaurantID))
}

func (m *MockOrderService) ListOrdersByStatus(ctx context.Context, restaurantID int64, status string) ([]*models.Order, error) {
	return m.orders(m.Called(ctx, restaurantID, status))
}

func (m *MockOrderService) ListActiveOrders(ctx context.Context, restaurantID int64) ([]*models.Order, error) {
	return m.orders(m.Called(ctx, restaurantID))
}

func (m *MockOrderService) ListTableOrders(ctx context.Context, restaurantID, tableID int64) ([]*models.Order, error) {
	return m.orders(m.Called(ctx, restaurantID, tableID))
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, restaurantID, orderID int64, status string) (*models.Order, error) {
	return m.order(m.Called(ctx, restaurantID, orderID, status))
}

type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) ListCategories(ctx context.Context, restaurantID int64) ([]*models.MenuCategory, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MenuCategory), args.Error(1)
}

func (m *MockMenuService) ListMenuItems(ctx context.Context, restaurantID, categoryID int64) ([]*models.MenuItem, error) {
	args := m.Called(ctx, restaurantID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MenuItem), args.Error(1)
}

func (m *MockMenuService) CustomerMenu(ctx context.Context, restaurantID int64) ([]*models.MenuCategoryWithItems, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MenuCategoryWithItems), args.Error(1)
}

type MockReorderService struct {
	mock.Mock
}

func (m *MockReorderService) ReorderCategories(ctx context.Context, restaurantID int64, categoryIDs []int64) error {
	return m.Called(ctx, restaurantID, categoryIDs).Error(0)
}

func (m *MockReorderService) ReorderMenuItems(ctx context.Context, restaurantID, categoryID int64, menuItemIDs []int64) error {
	return m.Called(ctx, restaurantID, categoryID, menuItemIDs).Error(0)
}

type MockTableService struct {
	mock.Mock
}

func (m *MockTableService) ResolveByCode(ctx context.Context, code string) (*models.Table, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Table), args.Error(1)
}

func (m *MockTableService) CreateTable(ctx context.Context, restaurantID int64, req *models.CreateTableRequest) (*models.Table, error) {
	args := m.Called(ctx, restaurantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Table), args.Error(1)
}

func (m *MockTableService) DeleteTable(ctx context.Context, restaurantID, tableID int64) (bool, error) {
	args := m.Called(ctx, restaurantID, tableID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTableService) QRCode(ctx context.Context, code string, size int) ([]byte, error) {
	args := m.Called(ctx, code, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Upload(ctx context.Context, restaurantID int64, data []byte) (string, error) {
	args := m.Called(ctx, restaurantID, data)
	return args.String(0), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockBucketChecker struct {
	mock.Mock
}

func (m *MockBucketChecker) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}
