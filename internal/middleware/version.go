package middleware

import (
	"github.com/labstack/echo/v4"
)

// VersionMiddleware stamps responses with the API and build version
type VersionMiddleware struct {
	buildVersion string
}

func NewVersionMiddleware(buildVersion string) *VersionMiddleware {
	return &VersionMiddleware{buildVersion: buildVersion}
}

// VersionHeader adds version information to response headers
func (vm *VersionMiddleware) VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-API-Version", version)
			if vm.buildVersion != "" {
				c.Response().Header().Set("X-Service-Version", vm.buildVersion)
			}
			return next(c)
		}
	}
}

// VersionRoute creates a version-specific route group
func (vm *VersionMiddleware) VersionRoute(e *echo.Echo, version string) *echo.Group {
	group := e.Group("/" + version)
	group.Use(vm.VersionHeader(version))
	return group
}
