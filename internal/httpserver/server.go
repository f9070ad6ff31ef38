package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/premium_service/internal/metrics"
	"github.com/Skotchmaster/premium_service/internal/middleware/common"
	loggingmw "github.com/Skotchmaster/premium_service/internal/middleware/logging"
	"github.com/Skotchmaster/premium_service/internal/validation"
)

type Options struct {
	Production  bool
	CORSOrigins []string
	BodyLimit   string
}

// NewEcho builds the server with the global middleware chain:
// recover, request id, metrics, request logger, then the edge chain.
func NewEcho(logger *slog.Logger, m *metrics.Metrics, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = ErrorHandler(opts.Production)

	e.Pre(ecM.RemoveTrailingSlash())
	e.Use(common.Common()...)
	if m != nil {
		e.Use(m.Middleware())
	}
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(common.Edge(common.Options{
		CORSOrigins: opts.CORSOrigins,
		BodyLimit:   opts.BodyLimit,
	})...)
	return e
}
