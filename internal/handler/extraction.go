package handler

import (
	"smartnotes/internal/domain"
	"smartnotes/internal/dto"
	"smartnotes/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ExtractionHandler handles document text extraction HTTP requests
type ExtractionHandler struct {
	service service.ExtractionService
}

// NewExtractionHandler creates a new ExtractionHandler instance
func NewExtractionHandler(service service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{
		service: service,
	}
}

// ExtractText godoc
// @Summary Extract text from an uploaded document
// @Description Runs the document through the OCR provider chain and returns the recognized text
// @Tags extraction
// @Accept json
// @Produce json
// @Param request body dto.ExtractRequest true "Base64 encoded document"
// @Success 200 {object} dto.ExtractResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /ocr [post]
func (h *ExtractionHandler) ExtractText(c *fiber.Ctx) error {
	var req dto.ExtractRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.service.Extract(c.Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
