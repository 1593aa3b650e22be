package handler

import (
	"net/http"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type RedirectHandler struct {
	redirects service.RedirectService
}

func NewRedirectHandler(redirects service.RedirectService) *RedirectHandler {
	return &RedirectHandler{
		redirects: redirects,
	}
}

// Hit records the scan and 302s to the configured destination.
func (h *RedirectHandler) Hit(c echo.Context) error {
	req := c.Request()

	destination, err := h.redirects.Resolve(
		req.Context(),
		c.Param("slug"),
		req.UserAgent(),
		c.RealIP(),
		req.Referer(),
		c.QueryParams(),
	)
	if err != nil {
		return serviceError(err)
	}

	return c.Redirect(http.StatusFound, destination)
}

func (h *RedirectHandler) List(c echo.Context) error {
	redirects, err := h.redirects.List(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, redirects)
}

func (h *RedirectHandler) Create(c echo.Context) error {
	var req dto.RedirectURLRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	redirect, err := h.redirects.Create(c.Request().Context(), &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, redirect)
}

func (h *RedirectHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.RedirectURLRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	redirect, err := h.redirects.Update(c.Request().Context(), id, &req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, redirect)
}

func (h *RedirectHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.redirects.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *RedirectHandler) Stats(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	stats, err := h.redirects.Stats(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, stats)
}
