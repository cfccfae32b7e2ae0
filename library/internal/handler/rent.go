package handler

import (
	"net/http"

	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/labstack/echo/v4"
)

// RentBook
// @Summary   Rent a book to a member
// @Tags      rents
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     payload  body      model.RentRequest  true  "Rent"
// @Success   200      {object}  model.Message
// @Failure   400      {object}  ErrorResponse
// @Router    /api/v1/rent-book [post]
func (h *Handler) RentBook(c echo.Context) error {
	var req model.RentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := h.librarySvc.RentBook(c.Request().Context(), req)
	if err != nil {
		return fail(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, msg)
}

// ReturnBook
// @Summary   Return a rented book
// @Tags      rents
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     payload  body      model.ReturnRequest  true  "Return"
// @Success   200      {object}  model.Message
// @Failure   400      {object}  ErrorResponse
// @Router    /api/v1/return-book [post]
func (h *Handler) ReturnBook(c echo.Context) error {
	var req model.ReturnRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := h.librarySvc.ReturnBook(c.Request().Context(), req)
	if err != nil {
		return fail(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, msg)
}
