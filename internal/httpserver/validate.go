package httpserver

import (
	"encoding/json"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/premium_service/internal/apperr"
	"github.com/Skotchmaster/premium_service/internal/middleware/jsonbody"
	"github.com/Skotchmaster/premium_service/internal/validation"
)

// decodeAndValidate reads the body kept by jsonbody.Require into dst and
// runs the echo validator on it.
func decodeAndValidate(c echo.Context, dst any) error {
	if err := json.Unmarshal(jsonbody.Body(c), dst); err != nil {
		return validationErr(validation.FromDecode(err, dst))
	}
	if err := c.Validate(dst); err != nil {
		return validationErr(err)
	}
	return nil
}

func validationErr(err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return apperr.Validation(map[string]string(verrs))
	}
	return apperr.Validation("Invalid or empty JSON body")
}
