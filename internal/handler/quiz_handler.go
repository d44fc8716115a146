package handler

import (
	"cert-study/internal/domain"
	"cert-study/internal/dto"
	"cert-study/internal/middleware"
	"cert-study/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-practice HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

func filterFromQuery(c *fiber.Ctx) domain.Filter {
	return domain.Filter{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
	}
}

func questionIDFromLocals(c *fiber.Ctx) int64 {
	id, _ := c.Locals(middleware.LocalsQuestionID).(int64)
	return id
}

// GetQuestion godoc
// @Summary Get a question
// @Description Returns the question with the given id, or the first question matching the filter
// @Tags quiz
// @Produce json
// @Param id query int false "Question ID"
// @Param category query string false "Category"
// @Param subcategory query string false "Subcategory"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /question [get]
func (h *QuizHandler) GetQuestion(c *fiber.Ctx) error {
	q, err := h.service.GetQuestion(c.UserContext(), questionIDFromLocals(c), filterFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(q)
}

// NextQuestion godoc
// @Summary Get the next question
// @Description Returns the first matching question after current_id, or an end marker
// @Tags quiz
// @Produce json
// @Param current_id query int false "Current question ID"
// @Param category query string false "Category"
// @Param subcategory query string false "Subcategory"
// @Success 200 {object} dto.QuestionResponse
// @Success 200 {object} dto.EndResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /next [get]
func (h *QuizHandler) NextQuestion(c *fiber.Ctx) error {
	q, err := h.service.NextQuestion(c.UserContext(), questionIDFromLocals(c), filterFromQuery(c))
	if err != nil {
		return err
	}
	if q == nil {
		return c.JSON(dto.EndResponse{End: true, Message: service.EndOfQuestionsMessage})
	}
	return c.JSON(q)
}

// SubmitAnswer godoc
// @Summary Submit an answer
// @Description Records one attempt and reports whether the chosen label is correct
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.AnswerRequest true "Answer details"
// @Success 200 {object} dto.AnswerResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /answer [post]
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.LocalsBody).(*dto.AnswerRequest)
	if !ok {
		return domain.NewInvalidInputError("Request body is required")
	}
	resp, err := h.service.SubmitAnswer(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// WrongOnly godoc
// @Summary Wrong-answer notebook
// @Description Questions whose latest attempt by the user is incorrect, newest first
// @Tags notebook
// @Produce json
// @Param user_id query string false "User ID" default(default)
// @Param category query string false "Category"
// @Param subcategory query string false "Subcategory"
// @Success 200 {object} dto.QuestionListResponse
// @Router /wrong_only [get]
func (h *QuizHandler) WrongOnly(c *fiber.Ctx) error {
	resp, err := h.service.WrongOnly(c.UserContext(), c.Query("user_id"), filterFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ReviewAdd godoc
// @Summary Add a question to the notebook
// @Description Stores a review attempt without an answer
// @Tags notebook
// @Accept json
// @Produce json
// @Param request body dto.ReviewAddRequest true "Question to review"
// @Success 200 {object} dto.AttemptResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /review_add [post]
func (h *QuizHandler) ReviewAdd(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.LocalsBody).(*dto.ReviewAddRequest)
	if !ok {
		return domain.NewInvalidInputError("Request body is required")
	}
	resp, err := h.service.AddReview(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListAttempts godoc
// @Summary Attempt history
// @Tags notebook
// @Produce json
// @Param user_id query string false "User ID" default(default)
// @Success 200 {object} dto.AttemptListResponse
// @Router /attempts [get]
func (h *QuizHandler) ListAttempts(c *fiber.Ctx) error {
	resp, err := h.service.ListAttempts(c.UserContext(), c.Query("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetCategories godoc
// @Summary List categories
// @Description Category/subcategory pairs with their question counts
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoryListResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /categories [get]
func (h *QuizHandler) GetCategories(c *fiber.Ctx) error {
	resp, err := h.service.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
