package handler

import (
	"net/http"

	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/labstack/echo/v4"
)

// CreateAuthor
// @Summary   Create author
// @Tags      authors
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     payload  body      model.AuthorRequest  true  "Author"
// @Success   200      {object}  model.Created
// @Failure   400      {object}  ErrorResponse
// @Router    /api/v1/authors [post]
func (h *Handler) CreateAuthor(c echo.Context) error {
	var req model.AuthorRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	created, err := h.librarySvc.CreateAuthor(c.Request().Context(), req)
	if err != nil {
		return fail(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, created)
}

// ListAuthors
// @Summary   List authors
// @Tags      authors
// @Security  Bearer
// @Produce   json
// @Success   200  {array}  model.Author
// @Router    /api/v1/authors [get]
func (h *Handler) ListAuthors(c echo.Context) error {
	authors, err := h.librarySvc.ListAuthors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authors)
}

// GetAuthor
// @Summary   Get author
// @Tags      authors
// @Security  Bearer
// @Produce   json
// @Param     id   path      string  true  "Author id"
// @Success   200  {object}  model.Author
// @Failure   404  {object}  ErrorResponse
// @Router    /api/v1/authors/{id} [get]
func (h *Handler) GetAuthor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	author, err := h.librarySvc.GetAuthor(c.Request().Context(), id)
	if err != nil {
		return fail(err, statusFor(err))
	}
	return c.JSON(http.StatusOK, author)
}

// UpdateAuthor
// @Summary   Update author
// @Tags      authors
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id       path      string               true  "Author id"
// @Param     payload  body      model.AuthorRequest  true  "Author"
// @Success   200      {object}  model.Message
// @Failure   400      {object}  ErrorResponse
// @Router    /api/v1/authors/{id} [put]
func (h *Handler) UpdateAuthor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.AuthorRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	msg, err := h.librarySvc.UpdateAuthor(c.Request().Context(), id, req)
	if err != nil {
		return fail(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, msg)
}

// DeleteAuthor
// @Summary   Delete author
// @Tags      authors
// @Security  Bearer
// @Produce   json
// @Param     id   path      string  true  "Author id"
// @Success   200  {object}  model.Message
// @Failure   400  {object}  ErrorResponse
// @Failure   404  {object}  ErrorResponse
// @Router    /api/v1/authors/{id} [delete]
func (h *Handler) DeleteAuthor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	msg, err := h.librarySvc.DeleteAuthor(c.Request().Context(), id)
	if err != nil {
		return fail(err, statusFor(err))
	}
	return c.JSON(http.StatusOK, msg)
}
