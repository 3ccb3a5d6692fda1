package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"qrdine/internal/common"
	"qrdine/internal/logger"
	"qrdine/internal/models"
	"qrdine/internal/repositories"

	"github.com/labstack/gommon/random"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	tableCodeLength   = 10
	tableCodeAttempts = 3
	maxTableCodeLen   = 64

	DefaultQRSize = 256
	MinQRSize     = 64
	MaxQRSize     = 1024
)

// QRCodeCache stores rendered QR images keyed by table code and size
type QRCodeCache interface {
	GetQRCode(ctx context.Context, code string, size int) ([]byte, error)
	SetQRCode(ctx context.Context, code string, size int, png []byte) error
}

type TableService interface {
	ResolveByCode(ctx context.Context, code string) (*models.Table, error)
	CreateTable(ctx context.Context, restaurantID int64, req *models.CreateTableRequest) (*models.Table, error)
	// DeleteTable reports whether the table was only deactivated
	DeleteTable(ctx context.Context, restaurantID, tableID int64) (bool, error)
	QRCode(ctx context.Context, code string, size int) ([]byte, error)
}

type tableService struct {
	store         repositories.Store
	cache         QRCodeCache
	publicMenuURL string
	newCode       func() string
	log           *logger.Logger
}

// NewTableService builds the table service. cache may be nil.
func NewTableService(store repositories.Store, cache QRCodeCache, publicMenuURL string, log *logger.Logger) TableService {
	return newTableService(store, cache, publicMenuURL, log, generateTableCode)
}

func newTableService(store repositories.Store, cache QRCodeCache, publicMenuURL string, log *logger.Logger, gen func() string) *tableService {
	if log == nil {
		log = logger.Nop()
	}
	return &tableService{
		store:         store,
		cache:         cache,
		publicMenuURL: strings.TrimRight(publicMenuURL, "/"),
		newCode:       gen,
		log:           log,
	}
}

func generateTableCode() string {
	return random.String(tableCodeLength, random.Uppercase+random.Numeric)
}

func validTableCode(code string) bool {
	if code == "" || len(code) > maxTableCodeLen {
		return false
	}
	for _, r := range code {
		if !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// ResolveByCode finds the active table a QR code points at
func (s *tableService) ResolveByCode(ctx context.Context, code string) (*models.Table, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !validTableCode(code) {
		return nil, common.ErrInvalidTableCode
	}
	table, err := s.store.Tables().GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, common.ErrTableNotFound) {
			return nil, err
		}
		return nil, common.SecureErrorMessage("resolve table", err)
	}
	if !table.IsActive {
		return nil, common.ErrTableNotFound
	}
	return table, nil
}

// CreateTable assigns a fresh immutable code, retrying on the rare collision
func (s *tableService) CreateTable(ctx context.Context, restaurantID int64, req *models.CreateTableRequest) (*models.Table, error) {
	table := &models.Table{
		RestaurantID: restaurantID,
		TableNumber:  strings.TrimSpace(req.TableNumber),
		Capacity:     req.Capacity,
	}

	for attempt := 1; attempt <= tableCodeAttempts; attempt++ {
		table.TableCode = s.newCode()
		err := s.store.Tables().Create(ctx, table)
		switch {
		case err == nil:
			s.log.Info("table_created", common.GetRequestIDFromContext(ctx), "table created",
				slog.Int64("restaurant_id", restaurantID), slog.Int64("table_id", table.ID))
			return table, nil
		case errors.Is(err, repositories.ErrTableCodeTaken):
			continue
		case errors.Is(err, common.ErrTableNumberTaken):
			return nil, err
		default:
			return nil, common.SecureErrorMessage("create table", err)
		}
	}
	return nil, common.SecureErrorMessage("create table", fmt.Errorf("no free table code after %d attempts", tableCodeAttempts))
}

// DeleteTable keeps tables with order history as inactive rows so past orders
// still resolve their table number; others are removed.
func (s *tableService) DeleteTable(ctx context.Context, restaurantID, tableID int64) (bool, error) {
	var soft bool
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		hasOrders, err := tx.Tables().HasOrders(ctx, tableID)
		if err != nil {
			return err
		}
		var found bool
		if hasOrders {
			found, err = tx.Tables().Deactivate(ctx, restaurantID, tableID)
		} else {
			found, err = tx.Tables().Delete(ctx, restaurantID, tableID)
		}
		if err != nil {
			return err
		}
		if !found {
			return common.ErrTableNotFound
		}
		soft = hasOrders
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrTableNotFound) {
			return false, err
		}
		return false, common.SecureErrorMessage("delete table", err)
	}
	return soft, nil
}

// QRCode renders a PNG that opens the customer menu for the table
func (s *tableService) QRCode(ctx context.Context, code string, size int) ([]byte, error) {
	table, err := s.ResolveByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if size < MinQRSize || size > MaxQRSize {
		size = DefaultQRSize
	}

	if s.cache != nil {
		if png, err := s.cache.GetQRCode(ctx, table.TableCode, size); err != nil {
			s.log.Warn("qr_cache_get", common.GetRequestIDFromContext(ctx), "qr cache read failed", slog.String("error", err.Error()))
		} else if png != nil {
			return png, nil
		}
	}

	png, err := qrcode.Encode(s.MenuURL(table.TableCode), qrcode.Medium, size)
	if err != nil {
		return nil, common.SecureErrorMessage("encode qr code", err)
	}

	if s.cache != nil {
		if err := s.cache.SetQRCode(ctx, table.TableCode, size, png); err != nil {
			s.log.Warn("qr_cache_set", common.GetRequestIDFromContext(ctx), "qr cache write failed", slog.String("error", err.Error()))
		}
	}
	return png, nil
}

// MenuURL is the address encoded into a table's QR code
func (s *tableService) MenuURL(code string) string {
	return s.publicMenuURL + "/t/" + code
}
