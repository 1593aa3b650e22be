package handler

import (
	"net/http"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type AddressHandler struct {
	addresses service.AddressService
}

func NewAddressHandler(addresses service.AddressService) *AddressHandler {
	return &AddressHandler{
		addresses: addresses,
	}
}

func (h *AddressHandler) List(c echo.Context) error {
	addresses, err := h.addresses.List(c.Request().Context(), userID(c))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, addresses)
}

func (h *AddressHandler) Create(c echo.Context) error {
	var req dto.AddressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	address, err := h.addresses.Create(c.Request().Context(), userID(c), &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, address)
}

func (h *AddressHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.AddressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	address, err := h.addresses.Update(c.Request().Context(), userID(c), id, &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, address)
}

func (h *AddressHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.addresses.Delete(c.Request().Context(), userID(c), id); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AddressHandler) SetDefault(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.addresses.SetDefault(c.Request().Context(), userID(c), id); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusOK)
}
