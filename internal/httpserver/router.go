package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/premium_service/internal/logging"
	"github.com/Skotchmaster/premium_service/internal/metrics"
	"github.com/Skotchmaster/premium_service/internal/middleware/auth"
	"github.com/Skotchmaster/premium_service/internal/middleware/jsonbody"
)

type Deps struct {
	Auth          *AuthHTTP
	Users         *UserHTTP
	Authenticator *auth.Authenticator
	Metrics       *metrics.Metrics
	Ready         func(ctx context.Context) error
	FaviconPath   string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/health/ready", readiness(d.Ready))
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}
	if d.FaviconPath != "" {
		e.File("/favicon.ico", d.FaviconPath)
	}

	e.POST("/auth/login", d.Auth.Login, jsonbody.Require)
	e.GET("/auth/verify", d.Auth.Verify, d.Authenticator.RequireLogin)

	e.GET("/user", d.Users.GetUsers, d.Authenticator.RequireAdmin)
	e.GET("/user/:id", d.Users.GetUser, d.Authenticator.RequireAdmin)
	e.PUT("/user/:id", d.Users.UpdateUser, jsonbody.Require, d.Authenticator.RequireAdmin)
	e.DELETE("/user/:id", d.Users.DeleteUser, d.Authenticator.RequireAdmin)

	e.GET("/count", d.Users.CountPremium, d.Authenticator.RequireLogin)
}

func readiness(ready func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ready == nil {
			return c.NoContent(http.StatusNoContent)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := ready(ctx); err != nil {
			logging.FromContext(ctx).Warn("readiness_failed", "status", 503, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
