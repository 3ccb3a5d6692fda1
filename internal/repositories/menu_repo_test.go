package repositories

import (
	"context"
	"testing"
	"time"

	"qrdine/internal/common"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MenuRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	categories CategoryRepository
	items      MenuItemRepository
	context    context.Context
	now        time.Time
}

func (suite *MenuRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.categories = NewCategoryRepo(mock)
	suite.items = NewMenuItemRepo(mock)
	suite.context = context.Background()
	suite.now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func (suite *MenuRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestMenuRepoTestSuite(t *testing.T) {
	suite.Run(t, new(MenuRepoTestSuite))
}

func (suite *MenuRepoTestSuite) menuItemRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "category_id", "restaurant_id", "name", "description", "price", "image_url", "is_available", "display_order", "created_at", "updated_at"})
}

func (suite *MenuRepoTestSuite) TestCategoryListByRestaurant_SortedByDisplayOrder() {
	desc := "Hot soups"
	suite.mock.ExpectQuery(`FROM menu_categories\s+WHERE restaurant_id = \$1 AND \(is_active OR NOT \$2\)\s+ORDER BY display_order, id`).
		WithArgs(int64(1), true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "restaurant_id", "name", "description", "display_order", "is_active", "created_at", "updated_at"}).
			AddRow(int64(3), int64(1), "Soups", &desc, 0, true, suite.now, suite.now).
			AddRow(int64(1), int64(1), "Mains", nil, 1, true, suite.now, suite.now))

	categories, err := suite.categories.ListByRestaurant(suite.context, 1, true)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), categories, 2)
	assert.Equal(suite.T(), int64(3), categories[0].ID)
	assert.Equal(suite.T(), "Hot soups", *categories[0].Description)
	assert.Nil(suite.T(), categories[1].Description)
}

func (suite *MenuRepoTestSuite) TestCategoryGetByID_NotFound() {
	suite.mock.ExpectQuery(`FROM menu_categories WHERE restaurant_id = \$1 AND id = \$2`).
		WithArgs(int64(1), int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "restaurant_id", "name", "description", "display_order", "is_active", "created_at", "updated_at"}))

	_, err := suite.categories.GetByID(suite.context, 1, 99)
	assert.ErrorIs(suite.T(), err, common.ErrCategoryNotFound)
}

func (suite *MenuRepoTestSuite) TestCategoryMemberIDs() {
	suite.mock.ExpectQuery(`SELECT id FROM menu_categories WHERE restaurant_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)).AddRow(int64(3)))

	ids, err := suite.categories.MemberIDs(suite.context, 1)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []int64{1, 2, 3}, ids)
}

func (suite *MenuRepoTestSuite) TestCategoryApplyOrder() {
	suite.mock.ExpectExec(`UPDATE menu_categories AS c\s+SET display_order = u.pos - 1, updated_at = NOW\(\)\s+FROM unnest\(\$1::bigint\[\]\) WITH ORDINALITY`).
		WithArgs([]int64{3, 1, 2}, int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	n, err := suite.categories.ApplyOrder(suite.context, 1, []int64{3, 1, 2})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), n)
}

func (suite *MenuRepoTestSuite) TestMenuItemGetByID_ParsesPrice() {
	suite.mock.ExpectQuery(`FROM menu_items m\s+JOIN menu_categories c ON c.id = m.category_id\s+WHERE m.id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(suite.menuItemRows().
			AddRow(int64(42), int64(3), int64(1), "Pho", nil, "12.50", nil, true, 0, suite.now, suite.now))

	item, err := suite.items.GetByID(suite.context, 42)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Pho", item.Name)
	assert.True(suite.T(), item.Price.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(suite.T(), int64(1), item.RestaurantID)
}

func (suite *MenuRepoTestSuite) TestMenuItemGetByID_NotFound() {
	suite.mock.ExpectQuery(`FROM menu_items m`).
		WithArgs(int64(999)).
		WillReturnRows(suite.menuItemRows())

	_, err := suite.items.GetByID(suite.context, 999)
	assert.ErrorIs(suite.T(), err, common.ErrMenuItemNotFound)
}

func (suite *MenuRepoTestSuite) TestMenuItemGetByID_BadNumeric() {
	suite.mock.ExpectQuery(`FROM menu_items m`).
		WithArgs(int64(42)).
		WillReturnRows(suite.menuItemRows().
			AddRow(int64(42), int64(3), int64(1), "Pho", nil, "not-a-number", nil, true, 0, suite.now, suite.now))

	_, err := suite.items.GetByID(suite.context, 42)
	assert.Error(suite.T(), err)
	assert.NotErrorIs(suite.T(), err, common.ErrMenuItemNotFound)
}

func (suite *MenuRepoTestSuite) TestMenuItemApplyOrder() {
	suite.mock.ExpectExec(`UPDATE menu_items AS m`).
		WithArgs([]int64{10, 11}, int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	n, err := suite.items.ApplyOrder(suite.context, 3, []int64{10, 11})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), n)
}

func (suite *MenuRepoTestSuite) TestListAddOns() {
	suite.mock.ExpectQuery(`FROM menu_item_add_ons\s+WHERE menu_item_id = ANY\(\$1\)`).
		WithArgs([]int64{42}, true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "menu_item_id", "name", "price", "is_available", "display_order"}).
			AddRow(int64(5), int64(42), "Extra beef", "3.00", true, 0).
			AddRow(int64(6), int64(42), "Egg", "1.25", true, 1))

	addOns, err := suite.items.ListAddOns(suite.context, []int64{42}, true)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), addOns, 2)
	assert.Equal(suite.T(), "1.25", addOns[1].Price.StringFixed(2))
}

func (suite *MenuRepoTestSuite) TestListAddOns_NoItemsSkipsQuery() {
	addOns, err := suite.items.ListAddOns(suite.context, nil, true)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), addOns)
}
