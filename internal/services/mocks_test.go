package services

import (
	"context"
	"io"

	"qrdine/internal/models"
	"qrdine/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockStore hands out mock repositories and runs WithTx inline
type MockStore struct {
	tables     *MockTableRepository
	categories *MockCategoryRepository
	menuItems  *MockMenuItemRepository
	orders     *MockOrderRepository
	txCalls    int
}

func NewMockStore() *MockStore {
	return &MockStore{
		tables:     &MockTableRepository{},
		categories: &MockCategoryRepository{},
		menuItems:  &MockMenuItemRepository{},
		orders:     &MockOrderRepository{},
	}
}

func (m *MockStore) Tables() repositories.TableRepository { return m.tables }
func (m *MockStore) Categories() repositories.CategoryRepository { return m.categories }
func (m *MockStore) MenuItems() repositories.MenuItemRepository { return m.menuItems }
func (m *MockStore) Orders() repositories.OrderRepository { return m.orders }

func (m *MockStore) WithTx(ctx context.Context, fn func(repositories.Store) error) error {
	m.txCalls++
	return fn(m)
}

func (m *MockStore) AssertExpectations(t mock.TestingT) {
	m.tables.AssertExpectations(t)
	m.categories.AssertExpectations(t)
	m.menuItems.AssertExpectations(t)
	m.orders.AssertExpectations(t)
}

type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) GetByID(ctx context.Context, id int64) (*models.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Table), args.Error(1)
}

func (m *MockTableRepository) GetByCode(ctx context.Context, code string) (*models.Table, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Table), args.Error(1)
}

func (m *MockTableRepository) Create(ctx context.Context, table *models.Table) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func (m *MockTableRepository) HasOrders(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTableRepository) Deactivate(ctx context.Context, restaurantID, id int64) (bool, error) {
	args := m.Called(ctx, restaurantID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTableRepository) Delete(ctx context.Context, restaurantID, id int64) (bool, error) {
	args := m.Called(ctx, restaurantID, id)
	return args.Bool(0), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, restaurantID, id int64) (*models.MenuCategory, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuCategory), args.Error(1)
}

func (m *MockCategoryRepository) ListByRestaurant(ctx context.Context, restaurantID int64, activeOnly bool) ([]*models.MenuCategory, error) {
	args := m.Called(ctx, restaurantID, activeOnly)
	return args.Get(0).([]*models.MenuCategory), args.Error(1)
}

func (m *MockCategoryRepository) MemberIDs(ctx context.Context, restaurantID int64) ([]int64, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockCategoryRepository) ApplyOrder(ctx context.Context, restaurantID int64, ids []int64) (int64, error) {
	args := m.Called(ctx, restaurantID, ids)
	return args.Get(0).(int64), args.Error(1)
}

type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) GetByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) ListByCategory(ctx context.Context, categoryID int64, availableOnly bool) ([]*models.MenuItem, error) {
	args := m.Called(ctx, categoryID, availableOnly)
	return args.Get(0).([]*models.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) MemberIDs(ctx context.Context, categoryID int64) ([]int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockMenuItemRepository) ApplyOrder(ctx context.Context, categoryID int64, ids []int64) (int64, error) {
	args := m.Called(ctx, categoryID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMenuItemRepository) ListAddOns(ctx context.Context, menuItemIDs []int64, availableOnly bool) ([]*models.MenuItemAddOn, error) {
	args := m.Called(ctx, menuItemIDs, availableOnly)
	return args.Get(0).([]*models.MenuItemAddOn), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateItem(ctx context.Context, item *models.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateItemAddOn(ctx context.Context, addOn *models.OrderItemAddOn) error {
	args := m.Called(ctx, addOn)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]*models.Order, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByTable(ctx context.Context, restaurantID, tableID int64) ([]*models.Order, error) {
	args := m.Called(ctx, restaurantID, tableID)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStatus(ctx context.Context, restaurantID int64, statuses []models.OrderStatus) ([]*models.Order, error) {
	args := m.Called(ctx, restaurantID, statuses)
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) LoadItems(ctx context.Context, orders []*models.Order) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id int64, from, to models.OrderStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Backlog(ctx context.Context) ([]*models.KitchenBacklog, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.KitchenBacklog), args.Error(1)
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) AllowOrder(ctx context.Context, tableID int64) (bool, error) {
	args := m.Called(ctx, tableID)
	return args.Bool(0), args.Error(1)
}

type MockQRCodeCache struct {
	mock.Mock
}

func (m *MockQRCodeCache) GetQRCode(ctx context.Context, code string, size int) ([]byte, error) {
	args := m.Called(ctx, code, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockQRCodeCache) SetQRCode(ctx context.Context, code string, size int, png []byte) error {
	args := m.Called(ctx, code, size, png)
	return args.Error(0)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadObject(ctx context.Context, bucketName, objectName, contentType string, reader io.Reader, objectSize int64) error {
	args := m.Called(ctx, bucketName, objectName, contentType, reader, objectSize)
	return args.Error(0)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func (m *MockMinioService) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func stringPtr(s string) *string {
	return &s
}
