package domain

import (
	"strings"
	"time"
)

// NoteType tags why an attempt was recorded.
type NoteType string

const (
	NoteWrong  NoteType = "wrong"
	NoteReview NoteType = "review"
)

// DefaultUserID is used when a request carries no user_id.
const DefaultUserID = "default"

// Attempt is one answer submission or review-add. Never updated.
type Attempt struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	QuestionID int64     `json:"question_id"`
	Chosen     string    `json:"chosen"`
	Correct    bool      `json:"correct"`
	NoteType   NoteType  `json:"note_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewAttempt builds an attempt against q. The chosen label is canonicalised
// and correctness is fixed here, at creation time.
func NewAttempt(q *Question, userID, chosen string, noteType NoteType) *Attempt {
	if strings.TrimSpace(userID) == "" {
		userID = DefaultUserID
	}
	if noteType == "" {
		noteType = NoteWrong
	}
	chosen = strings.TrimSpace(chosen)
	if label, ok := NormalizeLabel(chosen); ok && len([]rune(chosen)) == 1 {
		chosen = label
	}
	return &Attempt{
		UserID:     userID,
		QuestionID: q.ID,
		Chosen:     chosen,
		Correct:    chosen == q.Answer,
		NoteType:   noteType,
		CreatedAt:  time.Now().UTC(),
	}
}
