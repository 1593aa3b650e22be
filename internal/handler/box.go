package handler

import (
	"net/http"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type BoxHandler struct {
	boxes service.BoxService
}

func NewBoxHandler(boxes service.BoxService) *BoxHandler {
	return &BoxHandler{
		boxes: boxes,
	}
}

func (h *BoxHandler) ListStock(c echo.Context) error {
	stock, err := h.boxes.ListStock(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, stock)
}

func (h *BoxHandler) CreateType(c echo.Context) error {
	var req dto.BoxTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	boxType, err := h.boxes.CreateType(c.Request().Context(), &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, boxType)
}

func (h *BoxHandler) UpdateType(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.BoxTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	boxType, err := h.boxes.UpdateType(c.Request().Context(), id, &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, boxType)
}

func (h *BoxHandler) DeleteType(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.boxes.DeleteType(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *BoxHandler) Adjust(c echo.Context) error {
	var req dto.BoxInventoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	entry, err := h.boxes.Adjust(c.Request().Context(), &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, entry)
}

func (h *BoxHandler) History(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	entries, err := h.boxes.History(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, entries)
}
