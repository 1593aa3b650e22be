package handler

import (
	"net/http"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type SiteHandler struct {
	site service.SiteService
}

func NewSiteHandler(site service.SiteService) *SiteHandler {
	return &SiteHandler{
		site: site,
	}
}

func (h *SiteHandler) List(c echo.Context) error {
	values, err := h.site.List(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, values)
}

func (h *SiteHandler) Get(c echo.Context) error {
	row, err := h.site.Get(c.Request().Context(), c.Param("key"))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, row)
}

func (h *SiteHandler) Set(c echo.Context) error {
	var req dto.SiteCustomizationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.site.Set(c.Request().Context(), req.Key, req.Value); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *SiteHandler) Delete(c echo.Context) error {
	if err := h.site.Delete(c.Request().Context(), c.Param("key")); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
