package handler

import (
	"errors"
	"net/http"
	"strconv"

	"chocolate-storefront/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var validate = validator.New()

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func userID(c echo.Context) string {
	if id, ok := c.Get("user_id").(string); ok && id != "" {
		return id
	}
	return "guest"
}

// serviceError maps service-layer failures onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message; the handler chain logs it.
func serviceError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrDiscountExpired),
		errors.Is(err, service.ErrDiscountUsedUp):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	default:
		return err
	}
}
