package handler

import (
	"smartnotes/internal/domain"
	"smartnotes/internal/dto"
	"smartnotes/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz generation HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from study text
// @Description Builds a multiple-choice quiz whose size scales with the length of the text
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.QuizRequest true "Source text"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.service.GenerateQuiz(c.Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
