package loggingmw

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/premium_service/internal/logging"
	"github.com/Skotchmaster/premium_service/internal/middleware/auth"
	"github.com/Skotchmaster/premium_service/internal/tokens"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRequestLogger_InjectsLoggerAndLogsSuccess(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(ecM.RequestID(), RequestLogger(newLogger(&buf)))
	e.GET("/user/:id", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("inside_handler")
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	out := buf.String()
	assert.Contains(t, out, "inside_handler")
	assert.Contains(t, out, "path=/user/:id")
	assert.Contains(t, out, "url=/user/5")
	assert.Contains(t, out, "request_id=")
	assert.Contains(t, out, `msg="request completed"`)
	assert.Contains(t, out, "level=INFO")
}

func TestRequestLogger_RendersErrors(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(newLogger(&buf)))
	e.GET("/bad", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "nope")
	})
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("db down")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bad", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "db down")
}

func TestRequestLogger_AddsAuthenticatedUser(t *testing.T) {
	var buf bytes.Buffer
	codec := tokens.NewCodec([]byte("log-secret"))
	a := auth.New(codec, "app")

	e := echo.New()
	e.Use(RequestLogger(newLogger(&buf)))
	e.GET("/count", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, a.RequireLogin)

	token, err := codec.Sign(&tokens.Claims{
		UserID:   42,
		Username: "user_test",
		Role:     tokens.RoleMember,
		AppID:    "app",
		IsActive: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/count", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "user_id=42")
	assert.Contains(t, buf.String(), "role=member")

	buf.Reset()
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/count", nil))
	assert.Contains(t, buf.String(), `msg="request completed"`)
	assert.NotContains(t, buf.String(), "user_id=")
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, levelFor(http.StatusNoContent))
	assert.Equal(t, slog.LevelInfo, levelFor(http.StatusFound))
	assert.Equal(t, slog.LevelWarn, levelFor(http.StatusPaymentRequired))
	assert.Equal(t, slog.LevelError, levelFor(http.StatusBadGateway))
}
