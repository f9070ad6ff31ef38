package loggingmw

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/premium_service/internal/logging"
	"github.com/Skotchmaster/premium_service/internal/middleware/auth"
)

// RequestLogger puts a request scoped logger into the request context and
// writes one completion line per request. Errors are rendered here through
// the echo error handler so the logged status is the one the client got.
// The caller's id and role are added once the auth middleware accepted the
// token.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := base.With(requestAttrs(c)...)
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}

			res := c.Response()
			attrs := []any{
				"status", res.Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes", res.Size,
			}
			if claims, ok := auth.UserFrom(c); ok {
				attrs = append(attrs, "user_id", claims.UserID, "role", claims.Role)
			}
			if err != nil {
				attrs = append(attrs, "error", err.Error())
			}

			l.Log(c.Request().Context(), levelFor(res.Status), "request completed", attrs...)
			return nil
		}
	}
}

// requestAttrs also echoes the request id back to the client.
func requestAttrs(c echo.Context) []any {
	req := c.Request()
	attrs := []any{
		"method", req.Method,
		"path", c.Path(),
		"url", req.URL.Path,
		"remote_ip", c.RealIP(),
		"user_agent", req.UserAgent(),
	}

	rid := req.Header.Get(echo.HeaderXRequestID)
	if rid == "" {
		rid = c.Response().Header().Get(echo.HeaderXRequestID)
	}
	if rid != "" {
		c.Response().Header().Set(echo.HeaderXRequestID, rid)
		attrs = append(attrs, "request_id", rid)
	}
	return attrs
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
