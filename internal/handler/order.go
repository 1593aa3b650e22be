package handler

import (
	"net/http"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{
		orders: orders,
	}
}

func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.orders.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orders.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, order)
}

// Items returns the order's line items, reconstructed from metadata when no
// structured rows exist.
func (h *OrderHandler) Items(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.orders.ResolveItems(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}

	resp := make([]dto.OrderItemResponse, len(items))
	for i, item := range items {
		resp[i] = dto.OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Size:      item.Size,
			Type:      item.Type,
			Shape:     item.Shape,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.OrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.orders.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusOK)
}

// FixUpItems persists reconstructed items as real order_items rows.
func (h *OrderHandler) FixUpItems(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.orders.FixUpItems(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, items)
}
