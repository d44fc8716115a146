package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cert-study/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(RequestLogger())
	return app
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v), string(body))
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"question not found", domain.NewQuestionNotFoundError(7), http.StatusNotFound, "QUESTION_NOT_FOUND"},
		{"generic not found", domain.NewNotFoundError("nothing"), http.StatusNotFound, "NOT_FOUND"},
		{"invalid upload", domain.NewInvalidUploadError("only .pdf files are accepted"), http.StatusBadRequest, "INVALID_UPLOAD"},
		{"invalid input", domain.NewInvalidInputError("bad"), http.StatusBadRequest, "INVALID_INPUT"},
		{"llm down", domain.NewLLMServiceError(errors.New("refused")), http.StatusServiceUnavailable, "LLM_SERVICE_ERROR"},
		{"ingest failed", domain.NewIngestError(errors.New("corrupt")), http.StatusInternalServerError, "INGEST_FAILED"},
		{"fiber error", fiber.NewError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp()
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var body ErrorResponse
			decode(t, resp, &body)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
		})
	}
}

func TestErrorHandler_DetailsAndValidation(t *testing.T) {
	app := newTestApp()
	app.Get("/q", func(c *fiber.Ctx) error { return domain.NewQuestionNotFoundError(42) })
	app.Get("/v", func(c *fiber.Ctx) error {
		return domain.ValidationErrors{domain.NewMissingFieldError("chosen")}
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/q", nil))
	require.NoError(t, err)
	var notFound ErrorResponse
	decode(t, resp, &notFound)
	assert.EqualValues(t, 42, notFound.Details["question_id"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/v", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var verr ValidationErrorResponse
	decode(t, resp, &verr)
	assert.Equal(t, string(domain.CodeValidation), verr.Code)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "chosen", verr.Errors[0].Field)
}

type bodyUnderTest struct {
	QuestionID int64  `json:"question_id" validate:"required,gt=0"`
	Chosen     string `json:"chosen" validate:"required"`
}

func TestValidationMiddleware(t *testing.T) {
	vm := NewValidationMiddleware()
	app := newTestApp()
	app.Get("/id", vm.ValidateIDQuery("id"), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": c.Locals(LocalsQuestionID).(int64)})
	})
	app.Post("/body", vm.ValidateBody(func() interface{} { return &bodyUnderTest{} }), func(c *fiber.Ctx) error {
		return c.JSON(c.Locals(LocalsBody).(*bodyUnderTest))
	})

	t.Run("id absent", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/id", nil))
		require.NoError(t, err)
		var body map[string]int64
		decode(t, resp, &body)
		assert.Equal(t, int64(0), body["id"])
	})

	for _, raw := range []string{"abc", "0", "-3"} {
		t.Run("bad id "+raw, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/id?id="+raw, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/body", strings.NewReader(`{"question_id":3,"chosen":"B"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/body", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var verr ValidationErrorResponse
		decode(t, resp, &verr)
		assert.Len(t, verr.Errors, 2)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/body", strings.NewReader(`{"question_id":`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		var body ErrorResponse
		decode(t, resp, &body)
		assert.Equal(t, "INVALID_INPUT", body.Code)
	})
}
