package handler

import (
	"cert-study/internal/dto"
	"cert-study/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers the API, admin and health routes on app.
func SetupRoutes(app *fiber.App, quiz *QuizHandler, admin *AdminHandler) {
	vm := middleware.NewValidationMiddleware()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok"})
	})

	api := app.Group("/api")
	api.Get("/question", vm.ValidateIDQuery("id"), quiz.GetQuestion)
	api.Get("/next", vm.ValidateIDQuery("current_id"), quiz.NextQuestion)
	api.Post("/answer", vm.ValidateBody(func() interface{} { return &dto.AnswerRequest{} }), quiz.SubmitAnswer)
	api.Get("/wrong_only", quiz.WrongOnly)
	api.Post("/review_add", vm.ValidateBody(func() interface{} { return &dto.ReviewAddRequest{} }), quiz.ReviewAdd)
	api.Get("/attempts", quiz.ListAttempts)
	api.Get("/categories", quiz.GetCategories)

	if admin != nil {
		adminGroup := app.Group("/admin")
		adminGroup.Get("/upload", admin.UploadPage)
		adminGroup.Post("/upload", admin.Upload)
	}
}
