// Package jsonbody rejects requests whose body is not a JSON document.
package jsonbody

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/premium_service/internal/apperr"
	"github.com/Skotchmaster/premium_service/internal/logging"
)

const bodyKey = "json_body"

const invalidBody = "Invalid or empty JSON body"

// Require reads the whole body, checks it parses as JSON and keeps the raw
// bytes for Body. The request body is restored so Bind keeps working.
func Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context())

		req := c.Request()
		var raw []byte
		if req.Body != nil {
			b, err := io.ReadAll(req.Body)
			_ = req.Body.Close()
			if err != nil {
				l.Warn("json_body_error", "status", 400, "reason", "cannot read body", "error", err)
				return apperr.Validation(invalidBody)
			}
			raw = b
		}

		if len(bytes.TrimSpace(raw)) == 0 || !json.Valid(raw) {
			l.Warn("json_body_error", "status", 400, "reason", "body is empty or not json", "bytes", len(raw))
			return apperr.Validation(invalidBody)
		}

		req.Body = io.NopCloser(bytes.NewReader(raw))
		c.Set(bodyKey, raw)
		return next(c)
	}
}

// Body returns the bytes stored by Require, or nil.
func Body(c echo.Context) []byte {
	raw, _ := c.Get(bodyKey).([]byte)
	return raw
}
