// Package response builds the {status, message, data} body every endpoint returns.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Envelope struct {
	Status  int `json:"status"`
	Message any `json:"message,omitempty"`
	Data    any `json:"data,omitempty"`
}

func Success(data any) Envelope {
	return Envelope{Status: http.StatusOK, Data: data}
}

func Message(msg string) Envelope {
	return Envelope{Status: http.StatusOK, Message: msg}
}

func Failure(status int, msg any) Envelope {
	return Envelope{Status: status, Message: msg}
}

// JSON writes env with its own status as the HTTP status code.
func JSON(c echo.Context, env Envelope) error {
	return c.JSON(env.Status, env)
}
