package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/amohooo/cv-app/internal/auth"
	"github.com/amohooo/cv-app/internal/errors"
	"github.com/amohooo/cv-app/internal/service"
)

// PageHandler handles page endpoints.
type PageHandler struct {
	pageService service.PageService
}

// NewPageHandler creates a new page handler.
func NewPageHandler(pageService service.PageService) *PageHandler {
	return &PageHandler{pageService: pageService}
}

// CreatePageRequest represents a page creation request. Slug is derived
// from the title when omitted.
type CreatePageRequest struct {
	Title       string `json:"title" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// UpdatePageRequest represents a partial page update.
type UpdatePageRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Slug        *string `json:"slug" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// List godoc
// @Summary List all pages with their sections, cards and owner summary
// @Tags pages
// @Produce json
// @Success 200 {array} model.Page
// @Failure 500 {object} errors.ErrorResponse
// @Router /pages [get]
func (h *PageHandler) List(c echo.Context) error {
	pages, err := h.pageService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, pages)
}

// GetBySlug godoc
// @Summary Get a page by slug
// @Tags pages
// @Produce json
// @Param slug path string true "Page slug"
// @Success 200 {object} model.Page
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /pages/slug/{slug} [get]
func (h *PageHandler) GetBySlug(c echo.Context) error {
	page, err := h.pageService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, page)
}

// GetByID godoc
// @Summary Get a page by ID
// @Tags pages
// @Produce json
// @Param id path int true "Page ID"
// @Success 200 {object} model.Page
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /pages/{id} [get]
func (h *PageHandler) GetByID(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	page, err := h.pageService.GetByID(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, page)
}

// Create godoc
// @Summary Create a page owned by the caller
// @Tags pages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePageRequest true "Page data"
// @Success 201 {object} model.Page
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /pages [post]
func (h *PageHandler) Create(c echo.Context) error {
	admin, err := auth.CurrentAdmin(c)
	if err != nil {
		return err
	}

	var req CreatePageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	page, err := h.pageService.Create(c.Request().Context(), admin, service.CreatePageInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Order:       req.Order,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, page)
}

// Update godoc
// @Summary Update a page (owner or master)
// @Tags pages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Page ID"
// @Param request body UpdatePageRequest true "Fields to update"
// @Success 200 {object} model.Page
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /pages/{id} [put]
func (h *PageHandler) Update(c echo.Context) error {
	admin, err := auth.CurrentAdmin(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req UpdatePageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	page, err := h.pageService.Update(c.Request().Context(), admin, id, service.UpdatePageInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Order:       req.Order,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, page)
}

// Delete godoc
// @Summary Delete a page and everything under it (owner or master)
// @Tags pages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Page ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /pages/{id} [delete]
func (h *PageHandler) Delete(c echo.Context) error {
	admin, err := auth.CurrentAdmin(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.pageService.Delete(c.Request().Context(), admin, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Page deleted successfully"})
}

// validationError wraps validator failures in the shared error shape so
// every 400 carries an {error, code} body.
func validationError(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: err.Error(),
		Code:  "VALIDATION",
	})
}

// parseIDParam parses the :id route parameter.
func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}
