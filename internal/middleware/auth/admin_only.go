package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/premium_service/internal/apperr"
	"github.com/Skotchmaster/premium_service/internal/tokens"
)

func (a *Authenticator) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return a.requireWithValidator(next, func(claims *tokens.Claims) error {
		if !claims.IsAdmin() {
			return apperr.Forbidden("Only admin can access this endpoint")
		}
		return nil
	})
}
