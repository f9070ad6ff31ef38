package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/premium_service/internal/apperr"
	"github.com/Skotchmaster/premium_service/internal/logging"
	"github.com/Skotchmaster/premium_service/internal/response"
	"github.com/Skotchmaster/premium_service/internal/validation"
)

const (
	msgPageNotFound = "Page not found"
	msgInternal     = "Internal server error"
)

// ErrorHandler is the only place failures are turned into responses. In
// production the text of a 500 is hidden from the client.
func ErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := translate(err)
		if status >= http.StatusInternalServerError {
			req := c.Request()
			logging.FromContext(req.Context()).Error("internal_error",
				"method", req.Method, "path", req.URL.Path, "status", status, "error", err)
			if production {
				msg = msgInternal
			}
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = response.JSON(c, response.Failure(status, msg))
		}
		if werr != nil {
			logging.FromContext(c.Request().Context()).Error("write_error_response", "error", werr)
		}
	}
}

func translate(err error) (int, any) {
	if ae, ok := apperr.As(err); ok {
		return ae.Status, ae.Message
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest, map[string]string(verrs)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return http.StatusNotFound, msgPageNotFound
		}
		return he.Code, httpErrorMessage(he)
	}

	return http.StatusInternalServerError, err.Error()
}

func httpErrorMessage(he *echo.HTTPError) any {
	switch m := he.Message.(type) {
	case string:
		return m
	case error:
		return m.Error()
	case nil:
		return http.StatusText(he.Code)
	default:
		return fmt.Sprint(m)
	}
}
