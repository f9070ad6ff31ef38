package jsonbody

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/premium_service/internal/apperr"
)

func TestRequire_RejectsEmptyAndInvalid(t *testing.T) {
	e := echo.New()

	for _, body := range []string{"", "   ", "{", "not json", `{"a":1}{`} {
		t.Run(body, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			c := e.NewContext(req, httptest.NewRecorder())

			called := false
			err := Require(func(c echo.Context) error {
				called = true
				return nil
			})(c)

			require.Error(t, err)
			assert.False(t, called)
			ae, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, ae.Status)
			assert.Equal(t, "Invalid or empty JSON body", ae.Message)
		})
	}
}

func TestRequire_KeepsBody(t *testing.T) {
	e := echo.New()
	payload := `{"username":"user_test","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	c := e.NewContext(req, httptest.NewRecorder())

	err := Require(func(c echo.Context) error {
		assert.Equal(t, payload, string(Body(c)))

		again, err := io.ReadAll(c.Request().Body)
		require.NoError(t, err)
		assert.Equal(t, payload, string(again))
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
}

func TestRequire_AcceptsAnyJSONValue(t *testing.T) {
	e := echo.New()
	for _, body := range []string{`[]`, `"text"`, `0`, `null`} {
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), httptest.NewRecorder())
		err := Require(func(c echo.Context) error { return nil })(c)
		assert.NoError(t, err, body)
	}
}

func TestBody_NotSet(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Nil(t, Body(c))
}
