package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"qrdine/internal/common"
	"qrdine/internal/logger"
	"qrdine/internal/models"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// StaffClaims is the token payload issued by the identity provider for staff
type StaffClaims struct {
	RestaurantID int64    `json:"restaurant_id"`
	Permissions  []string `json:"permissions"`
	jwt.RegisteredClaims
}

// AuthConfig selects how staff tokens are verified. KeyFunc wins over Secret
// when both are set.
type AuthConfig struct {
	Secret  string
	KeyFunc jwt.Keyfunc
}

// LoadJWKS fetches the provider's key set and keeps it refreshed in the
// background. Callers must call EndBackground on shutdown.
func LoadJWKS(url string, log *logger.Logger) (*keyfunc.JWKS, error) {
	jwks, err := keyfunc.Get(url, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Error("jwks_refresh", "", "failed to refresh jwks", err, slog.String("url", url))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("load jwks: %w", err)
	}
	return jwks, nil
}

// JWTAuth verifies the bearer token and stores the resulting StaffIdentity on
// the request context.
func JWTAuth(cfg AuthConfig) echo.MiddlewareFunc {
	jwtConfig := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(StaffClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return common.SendUnauthorizedError(c)
		},
	}
	if cfg.KeyFunc != nil {
		jwtConfig.KeyFunc = cfg.KeyFunc
	} else {
		jwtConfig.SigningKey = []byte(cfg.Secret)
	}

	verify := echojwt.WithConfig(jwtConfig)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(attachStaff(next))
	}
}

func attachStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return common.SendUnauthorizedError(c)
		}
		claims, ok := token.Claims.(*StaffClaims)
		if !ok || claims.RestaurantID <= 0 {
			return echo.NewHTTPError(http.StatusUnauthorized, "Missing restaurant_id in token")
		}

		staff := &models.StaffIdentity{
			UserID:       claims.Subject,
			RestaurantID: claims.RestaurantID,
			Permissions:  claims.Permissions,
		}
		c.SetRequest(c.Request().WithContext(common.WithStaff(c.Request().Context(), staff)))
		return next(c)
	}
}
