package handler

import (
	"net/http"

	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/auth"
	"github.com/labstack/echo/v4"
)

// RegisterUser
// @Summary   Register a member
// @Tags      users
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     payload  body      model.RegisterRequest  true  "User"
// @Success   200      {object}  model.Created
// @Failure   400      {object}  ErrorResponse
// @Router    /api/v1/users [post]
func (h *Handler) RegisterUser(c echo.Context) error {
	return h.register(c, auth.RoleUser)
}

// RegisterLibrarian
// @Summary   Register a librarian
// @Tags      librarians
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     payload  body      model.RegisterRequest  true  "Librarian"
// @Success   200      {object}  model.Created
// @Failure   400      {object}  ErrorResponse
// @Router    /api/v1/librarians [post]
func (h *Handler) RegisterLibrarian(c echo.Context) error {
	return h.register(c, auth.RoleLibrarian)
}

func (h *Handler) register(c echo.Context, role string) error {
	var req model.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	created, err := h.librarySvc.RegisterUser(c.Request().Context(), req, role)
	if err != nil {
		return fail(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, created)
}

// ListUsers
// @Summary   List members
// @Tags      users
// @Security  Bearer
// @Produce   json
// @Success   200  {array}  model.UserProfile
// @Router    /api/v1/users [get]
func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.librarySvc.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUserRentHistory
// @Summary   Rent history of a member
// @Tags      users
// @Security  Bearer
// @Produce   json
// @Param     id   path      string  true  "User id"
// @Success   200  {array}   model.BookRentHistory
// @Failure   400  {object}  ErrorResponse
// @Router    /api/v1/users/{id}/history [get]
func (h *Handler) GetUserRentHistory(c echo.Context) error {
	return h.rentHistory(c, c.Param("id"))
}

func (h *Handler) rentHistory(c echo.Context, userID string) error {
	history, err := h.librarySvc.GetUserRentHistory(c.Request().Context(), userID)
	if err != nil {
		return fail(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, history)
}

// GetProfile
// @Summary   Profile of the caller
// @Tags      profile
// @Security  Bearer
// @Produce   json
// @Success   200  {object}  model.UserProfile
// @Failure   400  {object}  ErrorResponse
// @Router    /api/v1/profile [get]
func (h *Handler) GetProfile(c echo.Context) error {
	profile, err := h.librarySvc.GetProfile(c.Request().Context(), auth.UserID(c.Request().Context()))
	if err != nil {
		return fail(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile
// @Summary   Update details of the caller
// @Tags      profile
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     payload  body      model.UpdateUserRequest  true  "Details"
// @Success   200      {object}  model.Message
// @Failure   400      {object}  ErrorResponse
// @Router    /api/v1/profile/details [put]
func (h *Handler) UpdateProfile(c echo.Context) error {
	var req model.UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	msg, err := h.librarySvc.UpdateUserDetails(ctx, auth.UserID(ctx), req)
	if err != nil {
		return fail(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, msg)
}

// UpdatePassword
// @Summary   Change password of the caller
// @Tags      profile
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     payload  body      model.PasswordUpdateRequest  true  "Passwords"
// @Success   200      {object}  model.Message
// @Failure   400      {object}  ErrorResponse
// @Router    /api/v1/profile/password [put]
func (h *Handler) UpdatePassword(c echo.Context) error {
	var req model.PasswordUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	msg, err := h.librarySvc.UpdatePassword(ctx, auth.UserID(ctx), req)
	if err != nil {
		return fail(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, msg)
}

// GetProfileHistory
// @Summary   Rent history of the caller
// @Tags      profile
// @Security  Bearer
// @Produce   json
// @Success   200  {array}   model.BookRentHistory
// @Failure   400  {object}  ErrorResponse
// @Router    /api/v1/profile/history [get]
func (h *Handler) GetProfileHistory(c echo.Context) error {
	return h.rentHistory(c, auth.UserID(c.Request().Context()))
}
