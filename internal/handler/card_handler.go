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

// CardHandler handles card endpoints.
type CardHandler struct {
	cardService service.CardService
}

// NewCardHandler creates a new card handler.
func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// CreateCardRequest represents a card creation request.
type CreateCardRequest struct {
	Title        string  `json:"title" validate:"required"`
	Content      string  `json:"content"`
	ImageURL     *string `json:"imageUrl"`
	FileURL      *string `json:"fileUrl"`
	OriginalName *string `json:"originalName"`
	Order        int     `json:"order"`
	SectionID    uint    `json:"sectionId" validate:"required"`
}

// UpdateCardRequest represents a partial card update.
type UpdateCardRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=1"`
	Content      *string `json:"content"`
	ImageURL     *string `json:"imageUrl"`
	FileURL      *string `json:"fileUrl"`
	OriginalName *string `json:"originalName"`
	Order        *int    `json:"order"`
}

// CardMutationResponse pairs the mutated card with the re-assembled page.
type CardMutationResponse struct {
	Card *model.Card `json:"card"`
	Page *model.Page `json:"page"`
}

// CardDeleteResponse confirms a deletion alongside the re-assembled page.
type CardDeleteResponse struct {
	Message string      `json:"message"`
	Page    *model.Page `json:"page"`
}

// ListBySection godoc
// @Summary List a section's cards, ordered
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param sectionId path int true "Section ID"
// @Success 200 {array} model.Card
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cards/section/{sectionId} [get]
func (h *CardHandler) ListBySection(c echo.Context) error {
	sectionID, err := strconv.ParseUint(c.Param("sectionId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid section id",
			Code:  "INVALID_ID",
		})
	}

	cards, err := h.cardService.ListBySection(c.Request().Context(), uint(sectionID))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, cards)
}

// Create godoc
// @Summary Create a card under a section (page owner or master)
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCardRequest true "Card data"
// @Success 201 {object} CardMutationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cards [post]
func (h *CardHandler) Create(c echo.Context) error {
	admin, err := auth.CurrentAdmin(c)
	if err != nil {
		return err
	}

	var req CreateCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	card, page, err := h.cardService.Create(c.Request().Context(), admin, service.CreateCardInput{
		Title:        req.Title,
		Content:      req.Content,
		ImageURL:     req.ImageURL,
		FileURL:      req.FileURL,
		OriginalName: req.OriginalName,
		Order:        req.Order,
		SectionID:    req.SectionID,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, CardMutationResponse{Card: card, Page: page})
}

// Update godoc
// @Summary Update a card (page owner or master)
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Param request body UpdateCardRequest true "Fields to update"
// @Success 200 {object} CardMutationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cards/{id} [put]
func (h *CardHandler) Update(c echo.Context) error {
	admin, err := auth.CurrentAdmin(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	card, page, err := h.cardService.Update(c.Request().Context(), admin, id, service.UpdateCardInput{
		Title:        req.Title,
		Content:      req.Content,
		ImageURL:     req.ImageURL,
		FileURL:      req.FileURL,
		OriginalName: req.OriginalName,
		Order:        req.Order,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, CardMutationResponse{Card: card, Page: page})
}

// Delete godoc
// @Summary Delete a card (page owner or master)
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Success 200 {object} CardDeleteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cards/{id} [delete]
func (h *CardHandler) Delete(c echo.Context) error {
	admin, err := auth.CurrentAdmin(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	page, err := h.cardService.Delete(c.Request().Context(), admin, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, CardDeleteResponse{
		Message: "Card deleted successfully",
		Page:    page,
	})
}
