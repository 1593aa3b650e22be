package handler

import (
	"net/http"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type UploadHandler struct {
	uploads service.UploadService
}

func NewUploadHandler(uploads service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploads: uploads,
	}
}

func (h *UploadHandler) Multipart(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file field")
	}

	url, err := h.uploads.SaveMultipart(file)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, dto.UploadResponse{URL: url})
}

func (h *UploadHandler) Base64(c echo.Context) error {
	var req dto.Base64UploadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	url, err := h.uploads.SaveBase64(req.FileName, req.Data)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid base64 payload")
	}

	return c.JSON(http.StatusCreated, dto.UploadResponse{URL: url})
}
