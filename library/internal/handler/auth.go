package handler

import (
	"net/http"

	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/labstack/echo/v4"
)

// Login
// @Summary  Exchange credentials for an access token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    payload  body      model.LoginRequest  true  "Credentials"
// @Success  200      {object}  model.AuthResponse
// @Failure  401      {object}  ErrorResponse
// @Router   /api/v1/auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := h.librarySvc.Login(c.Request().Context(), req)
	if err != nil {
		return fail(err, http.StatusUnauthorized)
	}
	return c.JSON(http.StatusOK, resp)
}
