package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"qrdine/internal/common"
	"qrdine/internal/models"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OrderRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    OrderRepository
	context context.Context
	now     time.Time
}

func (suite *OrderRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewOrderRepo(mock)
	suite.context = context.Background()
	suite.now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func (suite *OrderRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}

func orderRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "table_id", "restaurant_id", "table_number", "status", "total_amount", "notes", "created_at", "updated_at"})
}

func stringPtr(s string) *string {
	return &s
}

func (suite *OrderRepoTestSuite) TestCreate_WritesTotalAsNumeric() {
	notes := stringPtr("no onions")
	order := &models.Order{TableID: 7, Status: models.OrderStatusReceived, TotalAmount: models.RequireMoney("25"), Notes: notes}

	suite.mock.ExpectQuery(`INSERT INTO orders \(table_id, status, total_amount, notes, created_at, updated_at\)`).
		WithArgs(int64(7), "Received", "25.00", notes).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(100), suite.now, suite.now))

	err := suite.repo.Create(suite.context, order)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(100), order.ID)
	assert.Equal(suite.T(), suite.now, order.CreatedAt)
}

func (suite *OrderRepoTestSuite) TestCreateItem() {
	item := &models.OrderItem{OrderID: 100, MenuItemID: 42, Quantity: 2, UnitPrice: models.RequireMoney("12.5")}

	suite.mock.ExpectQuery(`INSERT INTO order_items`).
		WithArgs(int64(100), int64(42), 2, "12.50", (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(500), suite.now))

	err := suite.repo.CreateItem(suite.context, item)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(500), item.ID)
}

func (suite *OrderRepoTestSuite) TestCreateItemAddOn() {
	addOn := &models.OrderItemAddOn{OrderItemID: 500, AddOnID: 5, Name: "Extra beef", Price: models.RequireMoney("3")}

	suite.mock.ExpectQuery(`INSERT INTO order_item_add_ons`).
		WithArgs(int64(500), int64(5), "Extra beef", "3.00").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(900)))

	require.NoError(suite.T(), suite.repo.CreateItemAddOn(suite.context, addOn))
	assert.Equal(suite.T(), int64(900), addOn.ID)
}

func (suite *OrderRepoTestSuite) TestGetByID_Success() {
	suite.mock.ExpectQuery(`o\.status, o\.total_amount::text, o\.notes.*FROM orders o\s+JOIN tables t ON t\.id = o\.table_id\s+WHERE o\.id = \$1`).
		WithArgs(int64(100)).
		WillReturnRows(orderRows().AddRow(int64(100), int64(7), int64(1), "T1", "Preparing", "25.00", nil, suite.now, suite.now))

	order, err := suite.repo.GetByID(suite.context, 100)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusPreparing, order.Status)
	assert.Equal(suite.T(), "T1", order.TableNumber)
	assert.Equal(suite.T(), "25.00", order.TotalAmount.StringFixed(2))
	assert.NotNil(suite.T(), order.OrderItems)
}

func (suite *OrderRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`FROM orders o`).
		WithArgs(int64(404)).
		WillReturnRows(orderRows())

	_, err := suite.repo.GetByID(suite.context, 404)
	assert.ErrorIs(suite.T(), err, common.ErrOrderNotFound)
}

func (suite *OrderRepoTestSuite) TestListByRestaurant_NewestFirst() {
	suite.mock.ExpectQuery(`WHERE t.restaurant_id = \$1\s+ORDER BY o.created_at DESC, o.id DESC`).
		WithArgs(int64(1)).
		WillReturnRows(orderRows().
			AddRow(int64(2), int64(7), int64(1), "T1", "Received", "10.00", nil, suite.now, suite.now).
			AddRow(int64(1), int64(7), int64(1), "T1", "Served", "5.00", nil, suite.now.Add(-time.Hour), suite.now))

	orders, err := suite.repo.ListByRestaurant(suite.context, 1)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), orders, 2)
	assert.Equal(suite.T(), int64(2), orders[0].ID)
}

func (suite *OrderRepoTestSuite) TestListByTable_EmptyIsNotAnError() {
	suite.mock.ExpectQuery(`WHERE t.restaurant_id = \$1 AND o.table_id = \$2`).
		WithArgs(int64(1), int64(7)).
		WillReturnRows(orderRows())

	orders, err := suite.repo.ListByTable(suite.context, 1, 7)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), orders)
	assert.Empty(suite.T(), orders)
}

func (suite *OrderRepoTestSuite) TestListByStatus_OldestFirst() {
	suite.mock.ExpectQuery(`o.status = ANY\(\$2\)\s+ORDER BY o.created_at ASC, o.id ASC`).
		WithArgs(int64(1), []string{"Received", "Preparing", "Ready"}).
		WillReturnRows(orderRows().AddRow(int64(1), int64(7), int64(1), "T1", "Received", "5.00", nil, suite.now, suite.now))

	orders, err := suite.repo.ListByStatus(suite.context, 1, models.ActiveOrderStatuses)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), orders, 1)
}

func (suite *OrderRepoTestSuite) TestLoadItems_AttachesItemsAndAddOns() {
	orders := []*models.Order{{ID: 100}, {ID: 101}}

	suite.mock.ExpectQuery(`SELECT oi\.id, oi\.order_id, oi\.menu_item_id, m\.name, oi\.quantity, oi\.unit_price::text, oi\.special_instructions, oi\.created_at\s+FROM order_items oi\s+JOIN menu_items m ON m\.id = oi\.menu_item_id`).
		WithArgs([]int64{100, 101}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_id", "menu_item_id", "name", "quantity", "unit_price", "special_instructions", "created_at"}).
			AddRow(int64(500), int64(100), int64(42), "Pho", 2, "15.50", nil, suite.now).
			AddRow(int64(501), int64(101), int64(43), "Banh mi", 1, "8.00", stringPtr("toasted"), suite.now))
	suite.mock.ExpectQuery(`SELECT id, order_item_id, add_on_id, name, price::text\s+FROM order_item_add_ons\s+WHERE order_item_id = ANY\(\$1\)`).
		WithArgs([]int64{500, 501}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_item_id", "add_on_id", "name", "price"}).
			AddRow(int64(900), int64(500), int64(5), "Extra beef", "3.00"))

	require.NoError(suite.T(), suite.repo.LoadItems(suite.context, orders))
	require.Len(suite.T(), orders[0].OrderItems, 1)
	require.Len(suite.T(), orders[1].OrderItems, 1)
	assert.Equal(suite.T(), "Pho", orders[0].OrderItems[0].MenuItemName)
	assert.Equal(suite.T(), "31.00", orders[0].OrderItems[0].LineTotal().StringFixed(2))
	require.Len(suite.T(), orders[0].OrderItems[0].AddOns, 1)
	assert.Equal(suite.T(), "Extra beef", orders[0].OrderItems[0].AddOns[0].Name)
	assert.Equal(suite.T(), "3.00", orders[0].OrderItems[0].AddOns[0].Price.StringFixed(2))
	assert.Empty(suite.T(), orders[1].OrderItems[0].AddOns)
}

func (suite *OrderRepoTestSuite) TestLoadItems_NoOrders() {
	assert.NoError(suite.T(), suite.repo.LoadItems(suite.context, nil))
}

func (suite *OrderRepoTestSuite) TestUpdateStatus_Guarded() {
	suite.mock.ExpectExec(`UPDATE orders\s+SET status = \$1, updated_at = NOW\(\)\s+WHERE id = \$2 AND status = \$3`).
		WithArgs("Preparing", int64(100), "Received").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ok, err := suite.repo.UpdateStatus(suite.context, 100, models.OrderStatusReceived, models.OrderStatusPreparing)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
}

func (suite *OrderRepoTestSuite) TestUpdateStatus_LostRace() {
	suite.mock.ExpectExec(`UPDATE orders`).
		WithArgs("Ready", int64(100), "Preparing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ok, err := suite.repo.UpdateStatus(suite.context, 100, models.OrderStatusPreparing, models.OrderStatusReady)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func (suite *OrderRepoTestSuite) TestBacklog() {
	suite.mock.ExpectQuery(`GROUP BY t.restaurant_id`).
		WithArgs([]string{"Received", "Preparing", "Ready"}).
		WillReturnRows(pgxmock.NewRows([]string{"restaurant_id", "count", "min"}).
			AddRow(int64(1), int64(4), suite.now))

	backlog, err := suite.repo.Backlog(suite.context)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), backlog, 1)
	assert.Equal(suite.T(), 4, backlog[0].ActiveOrders)
}

func (suite *OrderRepoTestSuite) TestBacklog_QueryError() {
	suite.mock.ExpectQuery(`GROUP BY t.restaurant_id`).
		WithArgs([]string{"Received", "Preparing", "Ready"}).
		WillReturnError(errors.New("connection reset"))

	_, err := suite.repo.Backlog(suite.context)
	assert.Error(suite.T(), err)
}
