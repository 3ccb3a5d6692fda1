package caching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"qrdine/internal/logger"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "qrdine"
	orderWindow = time.Minute
	// table codes never change, so a rendered QR image stays valid
	qrCodeTTL = 24 * time.Hour
)

type CacheService interface {
	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	AllowOrder(ctx context.Context, tableID int64) (bool, error)

	// QR code images
	GetQRCode(ctx context.Context, code string, size int) ([]byte, error)
	SetQRCode(ctx context.Context, code string, size int, png []byte) error

	Ping(ctx context.Context) error
	Close() error
}

type redisCacheService struct {
	client         *redis.Client
	ordersPerTable int
}

func NewRedisCacheService(addr, password string, db, ordersPerTable int, log *logger.Logger) CacheService {
	if log == nil {
		log = logger.Nop()
	}

	// Parse Redis URL to extract host:port if protocol is included
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsedAddr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Warn("redis_ping", "", "redis ping failed on initialization",
			slog.String("address", parsedAddr), slog.String("error", pingErr.Error()))
	}

	return NewCacheServiceWithClient(client, ordersPerTable)
}

// NewCacheServiceWithClient wraps an existing client; ordersPerTable <= 0
// disables the order limit.
func NewCacheServiceWithClient(client *redis.Client, ordersPerTable int) CacheService {
	return &redisCacheService{client: client, ordersPerTable: ordersPerTable}
}

// IsRateLimited counts one hit against key and reports whether the window's
// limit is now exceeded. INCR and EXPIRE NX run in one MULTI so the counter
// can never be left without a TTL; NX keeps the window fixed from its first
// hit. Requires Redis 7 or newer.
func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("%s:ratelimit:%s", keyPrefix, key)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, cacheKey)
	pipe.ExpireNX(ctx, cacheKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}

	return incr.Val() > int64(limit), nil
}

func (r *redisCacheService) AllowOrder(ctx context.Context, tableID int64) (bool, error) {
	if r.ordersPerTable <= 0 {
		return true, nil
	}
	limited, err := r.IsRateLimited(ctx, fmt.Sprintf("orders:table:%d", tableID), r.ordersPerTable, orderWindow)
	if err != nil {
		return false, err
	}
	return !limited, nil
}

func qrKey(code string, size int) string {
	return fmt.Sprintf("%s:qr:%s:%d", keyPrefix, code, size)
}

// GetQRCode returns nil, nil on a cache miss
func (r *redisCacheService) GetQRCode(ctx context.Context, code string, size int) ([]byte, error) {
	data, err := r.client.Get(ctx, qrKey(code, size)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (r *redisCacheService) SetQRCode(ctx context.Context, code string, size int, png []byte) error {
	return r.client.Set(ctx, qrKey(code, size), png, qrCodeTTL).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCacheService) Close() error {
	return r.client.Close()
}
