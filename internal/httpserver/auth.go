package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/premium_service/internal/apperr"
	"github.com/Skotchmaster/premium_service/internal/authclient"
	"github.com/Skotchmaster/premium_service/internal/logging"
	"github.com/Skotchmaster/premium_service/internal/middleware/auth"
	"github.com/Skotchmaster/premium_service/internal/response"
	"github.com/Skotchmaster/premium_service/internal/service"
	"github.com/Skotchmaster/premium_service/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := decodeAndValidate(c, &req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	res, err := h.Svc.Login(ctx, *req.Username, *req.Password, callerOf(c.Request()))
	if err != nil {
		var rejected *service.RejectedError
		if errors.As(err, &rejected) {
			l.Warn("login_error", "status", rejected.Status, "reason", "gateway rejected login", "error", err)
			return apperr.Upstream(rejected.Status, rejected.Message)
		}
		l.Error("login_error", "status", 500, "reason", "cannot complete login", "error", err)
		return apperr.Internal(err)
	}

	l.Info("login_success")
	return c.JSONBlob(res.Status, res.Body)
}

func (h *AuthHTTP) Verify(c echo.Context) error {
	claims, ok := auth.UserFrom(c)
	if !ok {
		return apperr.Unauthorized("Invalid token")
	}
	return response.JSON(c, response.Success(claims))
}

func callerOf(r *http.Request) authclient.Caller {
	ip := r.Header.Get("X-Real-IP")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	return authclient.Caller{IP: ip, UserAgent: r.UserAgent()}
}
