package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"qrdine/internal/common"
	"qrdine/internal/logger"
	"qrdine/internal/repositories"
)

// ValidatePermutation succeeds only when submitted is an exact permutation of
// members: same length, no duplicates, no ids outside the scope.
func ValidatePermutation(members, submitted []int64) error {
	if len(submitted) == 0 || len(submitted) != len(members) {
		return common.ErrReorderMismatch
	}
	scope := make(map[int64]bool, len(members))
	for _, id := range members {
		scope[id] = false
	}
	for _, id := range submitted {
		used, ok := scope[id]
		if !ok || used {
			return common.ErrReorderMismatch
		}
		scope[id] = true
	}
	return nil
}

// membership abstracts the two reorderable scopes
type membership interface {
	MemberIDs(ctx context.Context, scopeID int64) ([]int64, error)
	ApplyOrder(ctx context.Context, scopeID int64, ids []int64) (int64, error)
}

// ReorderService rewrites display_order for categories within a restaurant
// and for menu items within a category. Concurrent reorders of one scope are
// last writer wins.
type ReorderService interface {
	ReorderCategories(ctx context.Context, restaurantID int64, categoryIDs []int64) error
	ReorderMenuItems(ctx context.Context, restaurantID, categoryID int64, menuItemIDs []int64) error
}

type reorderService struct {
	store repositories.Store
	log   *logger.Logger
}

func NewReorderService(store repositories.Store, log *logger.Logger) ReorderService {
	if log == nil {
		log = logger.Nop()
	}
	return &reorderService{store: store, log: log}
}

func (s *reorderService) ReorderCategories(ctx context.Context, restaurantID int64, categoryIDs []int64) error {
	return s.reorder(ctx, "categories", restaurantID, categoryIDs, func(tx repositories.Store) membership {
		return tx.Categories()
	})
}

func (s *reorderService) ReorderMenuItems(ctx context.Context, restaurantID, categoryID int64, menuItemIDs []int64) error {
	// the category must belong to the caller's restaurant
	if _, err := s.store.Categories().GetByID(ctx, restaurantID, categoryID); err != nil {
		if errors.Is(err, common.ErrCategoryNotFound) {
			return err
		}
		return common.SecureErrorMessage("load category", err)
	}
	return s.reorder(ctx, "menu_items", categoryID, menuItemIDs, func(tx repositories.Store) membership {
		return tx.MenuItems()
	})
}

func (s *reorderService) reorder(ctx context.Context, scope string, scopeID int64, submitted []int64, pick func(repositories.Store) membership) error {
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		repo := pick(tx)
		members, err := repo.MemberIDs(ctx, scopeID)
		if err != nil {
			return err
		}
		if err := ValidatePermutation(members, submitted); err != nil {
			return err
		}
		n, err := repo.ApplyOrder(ctx, scopeID, submitted)
		if err != nil {
			return err
		}
		// a member deleted between read and write; roll back rather than leave a gap
		if n != int64(len(submitted)) {
			return fmt.Errorf("%w: %d of %d rows updated", common.ErrReorderMismatch, n, len(submitted))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrReorderMismatch) {
			s.log.Debug("reorder_rejected", common.GetRequestIDFromContext(ctx), "reorder ids do not match scope",
				slog.String("scope", scope), slog.Int64("scope_id", scopeID))
			return common.ErrReorderMismatch
		}
		return common.SecureErrorMessage("reorder "+scope, err)
	}
	s.log.Info("reordered", common.GetRequestIDFromContext(ctx), "display order rewritten",
		slog.String("scope", scope), slog.Int64("scope_id", scopeID), slog.Int("count", len(submitted)))
	return nil
}
