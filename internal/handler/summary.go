package handler

import (
	"smartnotes/internal/domain"
	"smartnotes/internal/dto"
	"smartnotes/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SummaryHandler handles summary and saved note HTTP requests
type SummaryHandler struct {
	service service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler instance
func NewSummaryHandler(service service.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		service: service,
	}
}

// Summarize godoc
// @Summary Summarize study text
// @Description Produces a structured summary in the requested style and persists it as a note
// @Tags summary
// @Accept json
// @Produce json
// @Param request body dto.SummaryRequest true "Text and summary options"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /summary [post]
func (h *SummaryHandler) Summarize(c *fiber.Ctx) error {
	var req dto.SummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.service.Summarize(c.Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetNote godoc
// @Summary Get a saved note
// @Description Returns a previously saved summary note by its ID
// @Tags summary
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} dto.NoteResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /notes/{id} [get]
func (h *SummaryHandler) GetNote(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return domain.NewInvalidInputError("note id is required")
	}

	resp, err := h.service.GetNote(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
