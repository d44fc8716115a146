package dto

import (
	"time"

	"cert-study/internal/domain"
)

// QuestionResponse represents a question in the API response. The answer is
// only revealed by the answer endpoint.
// @Description Question information
type QuestionResponse struct {
	ID          int64             `json:"id"`
	Stem        string            `json:"stem"`
	Options     map[string]string `json:"options"`
	Category    string            `json:"category"`
	Subcategory string            `json:"subcategory"`
	Source      string            `json:"source,omitempty"`
}

// NewQuestionResponse maps a domain question to its API form.
func NewQuestionResponse(q *domain.Question) *QuestionResponse {
	if q == nil {
		return nil
	}
	opts := map[string]string(q.Options)
	if opts == nil {
		opts = map[string]string{}
	}
	return &QuestionResponse{
		ID:          q.ID,
		Stem:        q.Stem,
		Options:     opts,
		Category:    q.Category,
		Subcategory: q.Subcategory,
		Source:      q.Source,
	}
}

// EndResponse is returned by /api/next when no question follows.
type EndResponse struct {
	End     bool   `json:"end"`
	Message string `json:"message"`
}

// AnswerRequest represents a user's answer in the API request
// @Description Request body for submitting an answer
type AnswerRequest struct {
	QuestionID int64  `json:"question_id" validate:"required,gt=0"`
	Chosen     string `json:"chosen" validate:"required"`
	UserID     string `json:"user_id,omitempty"`
}

// AnswerResponse reports whether the chosen label was right, plus similar questions.
type AnswerResponse struct {
	AttemptID   int64               `json:"attempt_id"`
	Correct     bool                `json:"correct"`
	Answer      string              `json:"answer"`
	Explanation string              `json:"explanation"`
	Category    string              `json:"category"`
	Subcategory string              `json:"subcategory"`
	Similar     []*QuestionResponse `json:"similar"`
}

// ReviewAddRequest adds a question to the user's notebook without answering it.
type ReviewAddRequest struct {
	QuestionID int64  `json:"question_id" validate:"required,gt=0"`
	UserID     string `json:"user_id,omitempty"`
}

// AttemptResponse represents a stored attempt
type AttemptResponse struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	QuestionID int64     `json:"question_id"`
	Chosen     string    `json:"chosen"`
	Correct    bool      `json:"correct"`
	NoteType   string    `json:"note_type"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewAttemptResponse(a *domain.Attempt) *AttemptResponse {
	if a == nil {
		return nil
	}
	return &AttemptResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		QuestionID: a.QuestionID,
		Chosen:     a.Chosen,
		Correct:    a.Correct,
		NoteType:   string(a.NoteType),
		CreatedAt:  a.CreatedAt,
	}
}

// QuestionListResponse is the wrong-answer notebook listing.
type QuestionListResponse struct {
	Count int                 `json:"count"`
	Items []*QuestionResponse `json:"items"`
}

// AttemptListResponse is a user's attempt history, newest first.
type AttemptListResponse struct {
	Count int                `json:"count"`
	Items []*AttemptResponse `json:"items"`
}

// CategoryListResponse lists category/subcategory pairs with question counts.
type CategoryListResponse struct {
	Count int                    `json:"count"`
	Items []domain.CategoryCount `json:"items"`
}

// UploadResponse summarises an ingestion triggered by an upload.
type UploadResponse struct {
	Message       string `json:"message"`
	Count         int    `json:"count"`
	RunID         string `json:"run_id"`
	Pages         int    `json:"pages"`
	SkippedChunks int    `json:"skipped_chunks"`
	ArtifactPath  string `json:"artifact_path,omitempty"`
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status string `json:"status"`
}
