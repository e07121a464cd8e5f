package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/amohooo/cv-app/internal/auth"
	"github.com/amohooo/cv-app/internal/errors"
	"github.com/amohooo/cv-app/internal/model"
	"github.com/amohooo/cv-app/internal/service"
)

// SectionHandler handles section endpoints.
type SectionHandler struct {
	sectionService service.SectionService
}

// NewSectionHandler creates a new section handler.
func NewSectionHandler(sectionService service.SectionService) *SectionHandler {
	return &SectionHandler{sectionService: sectionService}
}

// CreateSectionRequest represents a section creation request.
type CreateSectionRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	PageID      uint   `json:"pageId" validate:"required"`
}

// UpdateSectionRequest represents a partial section update.
type UpdateSectionRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

// SectionMutationResponse pairs the mutated section with the re-assembled
// page so the client replaces its whole local copy in one step.
type SectionMutationResponse struct {
	Section *model.Section `json:"section"`
	Page    *model.Page    `json:"page"`
}

// SectionDeleteResponse confirms a deletion alongside the re-assembled page.
type SectionDeleteResponse struct {
	Message string      `json:"message"`
	Page    *model.Page `json:"page"`
}

// ListByPage godoc
// @Summary List a page's sections with their cards, ordered
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param pageId path int true "Page ID"
// @Success 200 {array} model.Section
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sections/page/{pageId} [get]
func (h *SectionHandler) ListByPage(c echo.Context) error {
	pageID, err := strconv.ParseUint(c.Param("pageId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid page id",
			Code:  "INVALID_ID",
		})
	}

	sections, err := h.sectionService.ListByPage(c.Request().Context(), uint(pageID))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, sections)
}

// Create godoc
// @Summary Create a section under a page (owner or master)
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSectionRequest true "Section data"
// @Success 201 {object} SectionMutationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sections [post]
func (h *SectionHandler) Create(c echo.Context) error {
	admin, err := auth.CurrentAdmin(c)
	if err != nil {
		return err
	}

	var req CreateSectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	section, page, err := h.sectionService.Create(c.Request().Context(), admin, service.CreateSectionInput{
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
		PageID:      req.PageID,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, SectionMutationResponse{Section: section, Page: page})
}

// Update godoc
// @Summary Update a section (page owner or master)
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Param request body UpdateSectionRequest true "Fields to update"
// @Success 200 {object} SectionMutationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sections/{id} [put]
func (h *SectionHandler) Update(c echo.Context) error {
	admin, err := auth.CurrentAdmin(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateSectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	section, page, err := h.sectionService.Update(c.Request().Context(), admin, id, service.UpdateSectionInput{
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, SectionMutationResponse{Section: section, Page: page})
}

// Delete godoc
// @Summary Delete a section and its cards (page owner or master)
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Success 200 {object} SectionDeleteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sections/{id} [delete]
func (h *SectionHandler) Delete(c echo.Context) error {
	admin, err := auth.CurrentAdmin(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	page, err := h.sectionService.Delete(c.Request().Context(), admin, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, SectionDeleteResponse{
		Message: "Section deleted successfully",
		Page:    page,
	})
}
