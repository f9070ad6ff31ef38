package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/premium_service/internal/apperr"
	"github.com/Skotchmaster/premium_service/internal/logging"
	"github.com/Skotchmaster/premium_service/internal/tokens"
)

type ValidatorFunc func(claims *tokens.Claims) error

// Authenticator checks bearer session tokens issued for one application.
type Authenticator struct {
	Codec *tokens.Codec
	AppID string
}

func New(codec *tokens.Codec, appID string) *Authenticator {
	return &Authenticator{Codec: codec, AppID: appID}
}

func (a *Authenticator) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return a.requireWithValidator(next, nil)
}

func (a *Authenticator) requireWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context())

		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			l.Warn("auth_error", "status", 401, "reason", "missing bearer token")
			return apperr.Unauthorized("Invalid token")
		}

		claims, err := a.Codec.Verify(raw)
		if err != nil {
			reason := tokens.Reason(err)
			l.Warn("auth_error", "status", 401, "reason", reason, "error", err)
			return apperr.AuthToken(reason, err)
		}

		if err := a.checkStatus(claims); err != nil {
			l.Warn("auth_error", "status", err.Status, "reason", err.Message, "user_id", claims.UserID)
			return err
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				l.Warn("auth_error", "reason", err.Error(), "user_id", claims.UserID)
				return err
			}
		}

		setUserContext(c, claims)
		return next(c)
	}
}

func (a *Authenticator) checkStatus(claims *tokens.Claims) *apperr.Error {
	if claims.AppID != a.AppID {
		return apperr.Forbidden("Access denied, invalid app_id")
	}
	if claims.IsBanned() {
		return apperr.Forbidden("User already banned")
	}
	if !claims.IsActive {
		return apperr.Unauthorized("User not active")
	}
	return nil
}
