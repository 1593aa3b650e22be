package handler

import (
	"io"
	"log/slog"
	"net/http"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkout  service.CheckoutService
	discounts service.DiscountService
	logger    *slog.Logger
}

func NewCheckoutHandler(checkout service.CheckoutService, discounts service.DiscountService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout:  checkout,
		discounts: discounts,
		logger:    logger,
	}
}

func (h *CheckoutHandler) CreateSession(c echo.Context) error {
	var req dto.CheckoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.checkout.CreateSession(c.Request().Context(), userID(c), &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

// ApplyDiscount previews a code against an amount without consuming a use.
func (h *CheckoutHandler) ApplyDiscount(c echo.Context) error {
	var req dto.ApplyDiscountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	discount, err := h.discounts.Validate(c.Request().Context(), req.Code)
	if err != nil {
		return serviceError(err)
	}

	amount := h.discounts.ComputeDiscount(discount, nil, req.Amount)

	return c.JSON(http.StatusOK, dto.ApplyDiscountResponse{
		Code:           discount.Code,
		DiscountAmount: amount,
		Total:          req.Amount - amount,
	})
}

// Webhook always answers 200 so the processor does not retry; failures are
// logged instead.
func (h *CheckoutHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("read webhook body", "error", err)
		return c.NoContent(http.StatusOK)
	}

	sigHeader := c.Request().Header.Get("Stripe-Signature")
	if err := h.checkout.HandleWebhook(c.Request().Context(), payload, sigHeader); err != nil {
		h.logger.Error("process webhook", "error", err)
	}

	return c.NoContent(http.StatusOK)
}
