package handler

import (
	"net/http"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	carts service.CartService
}

func NewCartHandler(carts service.CartService) *CartHandler {
	return &CartHandler{
		carts: carts,
	}
}

func (h *CartHandler) Get(c echo.Context) error {
	lines, subtotal, err := h.carts.Get(c.Request().Context(), userID(c))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":    lines,
		"subtotal": subtotal,
	})
}

func (h *CartHandler) Add(c echo.Context) error {
	var req dto.CartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.carts.Add(c.Request().Context(), userID(c), &req); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusCreated)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.carts.UpdateQuantity(c.Request().Context(), userID(c), id, req.Quantity); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *CartHandler) Remove(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.carts.Remove(c.Request().Context(), userID(c), id); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.carts.Clear(c.Request().Context(), userID(c)); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
