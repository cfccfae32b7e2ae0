package handler

import (
	"net/http"

	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/labstack/echo/v4"
)

// CreateBook
// @Summary   Create book
// @Tags      books
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     payload  body      model.BookRequest  true  "Book"
// @Success   200      {object}  model.Created
// @Failure   400      {object}  ErrorResponse
// @Router    /api/v1/books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	var req model.BookRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	created, err := h.librarySvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return fail(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, created)
}

// ListBooks
// @Summary   List books
// @Tags      books
// @Security  Bearer
// @Produce   json
// @Success   200  {array}  model.BookResponse
// @Router    /api/v1/books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	books, err := h.librarySvc.ListBooks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// GetBook
// @Summary   Get book
// @Tags      books
// @Security  Bearer
// @Produce   json
// @Param     id   path      string  true  "Book id"
// @Success   200  {object}  model.BookResponse
// @Failure   404  {object}  ErrorResponse
// @Router    /api/v1/books/{id} [get]
func (h *Handler) GetBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	book, err := h.librarySvc.GetBook(c.Request().Context(), id)
	if err != nil {
		return fail(err, statusFor(err))
	}
	return c.JSON(http.StatusOK, book)
}

// UpdateBook
// @Summary   Update book
// @Tags      books
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id       path      string             true  "Book id"
// @Param     payload  body      model.BookRequest  true  "Book"
// @Success   200      {object}  model.Message
// @Failure   400      {object}  ErrorResponse
// @Router    /api/v1/books/{id} [put]
func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.BookRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	msg, err := h.librarySvc.UpdateBook(c.Request().Context(), id, req)
	if err != nil {
		return fail(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, msg)
}

// DeleteBook
// @Summary   Delete book
// @Tags      books
// @Security  Bearer
// @Produce   json
// @Param     id   path      string  true  "Book id"
// @Success   200  {object}  model.Message
// @Failure   400  {object}  ErrorResponse
// @Failure   404  {object}  ErrorResponse
// @Router    /api/v1/books/{id} [delete]
func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	msg, err := h.librarySvc.DeleteBook(c.Request().Context(), id)
	if err != nil {
		return fail(err, statusFor(err))
	}
	return c.JSON(http.StatusOK, msg)
}

// GetBookRentHistory
// @Summary   Rent history of a book
// @Tags      books
// @Security  Bearer
// @Produce   json
// @Param     id   path      string  true  "Book id"
// @Success   200  {array}   model.BookRentEntry
// @Failure   400  {object}  ErrorResponse
// @Router    /api/v1/books/{id}/history [get]
func (h *Handler) GetBookRentHistory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	history, err := h.librarySvc.GetRentHistoryForBook(c.Request().Context(), id)
	if err != nil {
		return fail(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, history)
}
