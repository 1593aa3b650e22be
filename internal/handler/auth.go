package handler

import (
	"net/http"

	"chocolate-storefront/internal/dto"
	"chocolate-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{
		auth: auth,
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.AdminLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.auth.Login(req.Password)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, dto.AdminLoginResponse{Token: token})
}
