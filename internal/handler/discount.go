package handler

import (
	"net/http"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type DiscountHandler struct {
	discounts service.DiscountService
}

func NewDiscountHandler(discounts service.DiscountService) *DiscountHandler {
	return &DiscountHandler{
		discounts: discounts,
	}
}

func (h *DiscountHandler) List(c echo.Context) error {
	discounts, err := h.discounts.List(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, discounts)
}

func (h *DiscountHandler) Create(c echo.Context) error {
	var req dto.DiscountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	discount, err := h.discounts.Create(c.Request().Context(), &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, discount)
}

func (h *DiscountHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.DiscountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	discount, err := h.discounts.Update(c.Request().Context(), id, &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, discount)
}

func (h *DiscountHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.discounts.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *DiscountHandler) SetActive(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	discount, err := h.discounts.SetActive(c.Request().Context(), id, req.Active)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, discount)
}

func (h *DiscountHandler) Validate(c echo.Context) error {
	code := c.Param("code")

	discount, err := h.discounts.Validate(c.Request().Context(), code)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, discount)
}

// -------- post-purchase codes --------

func (h *DiscountHandler) CreatePostPurchase(c echo.Context) error {
	var req dto.PostPurchaseDiscountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	discount, err := h.discounts.CreatePostPurchase(c.Request().Context(), &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, discount)
}

func (h *DiscountHandler) ListPostPurchase(c echo.Context) error {
	discounts, err := h.discounts.ListPostPurchase(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, discounts)
}

func (h *DiscountHandler) RedeemPostPurchase(c echo.Context) error {
	code := c.Param("code")

	discount, err := h.discounts.RedeemPostPurchase(c.Request().Context(), code)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, discount)
}

func (h *DiscountHandler) DeletePostPurchase(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.discounts.DeletePostPurchase(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
