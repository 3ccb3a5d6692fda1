package middleware

import (
	"log/slog"
	"net/http"

	"qrdine/internal/common"
	"qrdine/internal/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// RequestID assigns every request an id, reusing X-Request-ID when the caller
// sent one, and copies it onto the request context for service logs.
func RequestID() echo.MiddlewareFunc {
	return echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			c.SetRequest(c.Request().WithContext(common.WithRequestID(c.Request().Context(), id)))
		},
	})
}

// RequestLogger writes one structured line per request
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				log.Error("http_request", v.RequestID, "request failed", v.Error, attrs...)
				return nil
			}
			log.Info("http_request", v.RequestID, "request handled", attrs...)
			return nil
		},
	})
}
