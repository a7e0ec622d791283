package handler

import (
	"smartnotes/internal/domain"
	"smartnotes/internal/dto"
	"smartnotes/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GenerationHandler exposes the raw text generation endpoint
type GenerationHandler struct {
	service service.GenerationService
}

// NewGenerationHandler creates a new GenerationHandler instance
func NewGenerationHandler(service service.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		service: service,
	}
}

// Generate godoc
// @Summary Generate text from a prompt
// @Description Sends the prompt through the generation provider chain and returns the model output
// @Tags generation
// @Accept json
// @Produce json
// @Param request body dto.GenerateRequest true "Prompt details"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /generate [post]
func (h *GenerationHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	result, err := h.service.Generate(c.Context(), domain.GenerationRequest{
		Prompt:    req.Prompt,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.GenerateResponse{
		Text:           result.Text,
		SourceProvider: string(result.SourceProvider),
		Usage:          result.Usage,
	})
}
