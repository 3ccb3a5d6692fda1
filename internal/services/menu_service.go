package services

import (
	"context"
	"errors"

	"qrdine/internal/common"
	"qrdine/internal/models"
	"qrdine/internal/repositories"
)

// MenuService is the read side of the catalog
type MenuService interface {
	ListCategories(ctx context.Context, restaurantID int64) ([]*models.MenuCategory, error)
	ListMenuItems(ctx context.Context, restaurantID, categoryID int64) ([]*models.MenuItem, error)
	// CustomerMenu returns active categories with their available items and add-ons
	CustomerMenu(ctx context.Context, restaurantID int64) ([]*models.MenuCategoryWithItems, error)
}

type menuService struct {
	store repositories.Store
}

func NewMenuService(store repositories.Store) MenuService {
	return &menuService{store: store}
}

func (s *menuService) ListCategories(ctx context.Context, restaurantID int64) ([]*models.MenuCategory, error) {
	categories, err := s.store.Categories().ListByRestaurant(ctx, restaurantID, false)
	if err != nil {
		return nil, common.SecureErrorMessage("list categories", err)
	}
	return categories, nil
}

func (s *menuService) ListMenuItems(ctx context.Context, restaurantID, categoryID int64) ([]*models.MenuItem, error) {
	if _, err := s.store.Categories().GetByID(ctx, restaurantID, categoryID); err != nil {
		if errors.Is(err, common.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, common.SecureErrorMessage("load category", err)
	}
	items, err := s.store.MenuItems().ListByCategory(ctx, categoryID, false)
	if err != nil {
		return nil, common.SecureErrorMessage("list menu items", err)
	}
	if err := s.attachAddOns(ctx, items, false); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *menuService) CustomerMenu(ctx context.Context, restaurantID int64) ([]*models.MenuCategoryWithItems, error) {
	categories, err := s.store.Categories().ListByRestaurant(ctx, restaurantID, true)
	if err != nil {
		return nil, common.SecureErrorMessage("list categories", err)
	}

	menu := make([]*models.MenuCategoryWithItems, 0, len(categories))
	for _, c := range categories {
		items, err := s.store.MenuItems().ListByCategory(ctx, c.ID, true)
		if err != nil {
			return nil, common.SecureErrorMessage("list menu items", err)
		}
		if err := s.attachAddOns(ctx, items, true); err != nil {
			return nil, err
		}
		menu = append(menu, &models.MenuCategoryWithItems{MenuCategory: *c, Items: items})
	}
	return menu, nil
}

func (s *menuService) attachAddOns(ctx context.Context, items []*models.MenuItem, availableOnly bool) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, len(items))
	byID := make(map[int64]*models.MenuItem, len(items))
	for i, item := range items {
		ids[i] = item.ID
		byID[item.ID] = item
	}
	addOns, err := s.store.MenuItems().ListAddOns(ctx, ids, availableOnly)
	if err != nil {
		return common.SecureErrorMessage("list add-ons", err)
	}
	for _, a := range addOns {
		if item, ok := byID[a.MenuItemID]; ok {
			item.AddOns = append(item.AddOns, a)
		}
	}
	return nil
}
