package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/premium_service/internal/tokens"
)

const userKey = "user"

const bearerPrefix = "Bearer "

// bearerToken returns the part after the first space, so "Bearer a b"
// yields "a".
func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	raw := strings.TrimPrefix(header, bearerPrefix)
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		raw = raw[:i]
	}
	return raw, true
}

func setUserContext(c echo.Context, claims *tokens.Claims) {
	c.Set(userKey, claims)
}

// UserFrom returns the claims attached by RequireLogin or RequireAdmin.
func UserFrom(c echo.Context) (*tokens.Claims, bool) {
	claims, ok := c.Get(userKey).(*tokens.Claims)
	return claims, ok && claims != nil
}
