package handler

import (
	"net/http"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type CustomOrderHandler struct {
	customOrders service.CustomOrderService
}

func NewCustomOrderHandler(customOrders service.CustomOrderService) *CustomOrderHandler {
	return &CustomOrderHandler{
		customOrders: customOrders,
	}
}

func (h *CustomOrderHandler) Create(c echo.Context) error {
	var req dto.CustomOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.customOrders.Create(c.Request().Context(), &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *CustomOrderHandler) List(c echo.Context) error {
	orders, err := h.customOrders.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *CustomOrderHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.customOrders.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *CustomOrderHandler) UpdateStatus(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.OrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.customOrders.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *CustomOrderHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.customOrders.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
