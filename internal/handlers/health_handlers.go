package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by the pgx pool and the cache service
type Pinger interface {
	Ping(ctx context.Context) error
}

// BucketChecker is satisfied by the object storage client
type BucketChecker interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
}

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db        Pinger
	cache     Pinger
	storage   BucketChecker
	bucket    string
	version   string
	startedAt time.Time
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db, cache Pinger, storage BucketChecker, bucket, version string) *HealthHandlers {
	return &HealthHandlers{
		db:        db,
		cache:     cache,
		storage:   storage,
		bucket:    bucket,
		version:   version,
		startedAt: time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
}

const healthCheckTimeout = 3 * time.Second

var errBucketMissing = errors.New("bucket does not exist")

// HealthCheck reports every dependency. A failing dependency degrades the
// status but the endpoint still answers 200 family.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   h.version,
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
	}

	for name, check := range map[string]func(context.Context) error{
		"database": h.checkDatabase,
		"redis":    h.checkRedis,
		"storage":  h.checkStorage,
	} {
		if err := check(ctx); err != nil {
			health.Services[name] = "unhealthy"
			health.Status = "degraded"
		} else {
			health.Services[name] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}
	return c.JSON(statusCode, health)
}

func (h *HealthHandlers) checkDatabase(ctx context.Context) error {
	return h.db.Ping(ctx)
}

func (h *HealthHandlers) checkRedis(ctx context.Context) error {
	if h.cache == nil {
		return nil
	}
	return h.cache.Ping(ctx)
}

func (h *HealthHandlers) checkStorage(ctx context.Context) error {
	if h.storage == nil {
		return nil
	}
	exists, err := h.storage.BucketExists(ctx, h.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return errBucketMissing
	}
	return nil
}

// ReadinessCheck determines if the application is ready to serve traffic.
// Only the database is critical: redis failures fail open and images are
// optional.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.checkDatabase(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Critical services unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}
