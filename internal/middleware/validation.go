package middleware

import (
	"strconv"

	"cert-study/internal/domain"
	"cert-study/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware.
const (
	LocalsQuestionID = "validated_question_id"
	LocalsBody       = "validated_body"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateIDQuery parses the optional query parameter name as a positive id and
// stores it under LocalsQuestionID (0 when absent).
func (vm *ValidationMiddleware) ValidateIDQuery(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id int64
		if raw := c.Query(name); raw != "" {
			parsed, err := parseID(raw)
			if err != nil {
				return domain.ValidationErrors{domain.NewInvalidFormatError(name, raw)}
			}
			id = parsed
		}
		c.Locals(LocalsQuestionID, id)
		return c.Next()
	}
}

// ValidateBody parses the JSON body into a fresh value from newBody, validates its
// struct tags and stores it under LocalsBody.
func (vm *ValidationMiddleware) ValidateBody(newBody func() interface{}) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := newBody()
		if err := c.BodyParser(body); err != nil {
			return domain.NewInvalidInputError("Request body is not valid JSON")
		}
		if err := vm.validator.ValidateStruct(body); err != nil {
			return err
		}
		c.Locals(LocalsBody, body)
		return c.Next()
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
