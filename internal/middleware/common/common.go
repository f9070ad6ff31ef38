package common

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"
)

const HeaderResponseTime = "X-Response-Time"

const DefaultBodyLimit = "1M"

type Options struct {
	CORSOrigins []string
	BodyLimit   string
}

// Common is the global chain that runs in front of the request logger.
func Common() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		ecM.Recover(),
		ecM.RequestID(),
	}
}

// Edge is the chain that runs after the request logger. It recovers
// handler panics again so they reach the logger as a 500.
func Edge(opts Options) []echo.MiddlewareFunc {
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	limit := opts.BodyLimit
	if limit == "" {
		limit = DefaultBodyLimit
	}

	return []echo.MiddlewareFunc{
		ecM.Recover(),
		Secure(),
		ecM.CORSWithConfig(ecM.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{"GET", "HEAD", "PUT", "POST", "DELETE", "PATCH"},
		}),
		ResponseTime(),
		ecM.BodyLimit(limit),
	}
}

func Secure() echo.MiddlewareFunc {
	return ecM.SecureWithConfig(ecM.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		HSTSMaxAge:         15552000,
		ReferrerPolicy:     "no-referrer",
	})
}

// ResponseTime sets X-Response-Time in milliseconds right before the
// headers are written.
func ResponseTime() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			res := c.Response()
			res.Before(func() {
				res.Header().Set(HeaderResponseTime, fmt.Sprintf("%dms", time.Since(start).Milliseconds()))
			})
			return next(c)
		}
	}
}
