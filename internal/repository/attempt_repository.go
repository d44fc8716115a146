package repository

import (
	"context"
	"fmt"
	"time"

	"cert-study/internal/domain"
	"cert-study/internal/repository/models"
	"cert-study/internal/util"

	"github.com/jmoiron/sqlx"
)

const attemptColumns = "id, user_id, question_id, chosen, correct, note_type, created_at"

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db *sqlx.DB
}

// NewAttemptRepository creates an attempt repository on db.
func NewAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func toDomainAttempt(m *models.Attempt) *domain.Attempt {
	if m == nil {
		return nil
	}
	return &domain.Attempt{
		ID:         m.ID,
		UserID:     m.UserID,
		QuestionID: m.QuestionID,
		Chosen:     m.Chosen.String,
		Correct:    m.Correct,
		NoteType:   domain.NoteType(m.NoteType),
		CreatedAt:  m.CreatedAt,
	}
}

func fromDomainAttempt(a *domain.Attempt) *models.Attempt {
	if a == nil {
		return nil
	}
	return &models.Attempt{
		ID:         a.ID,
		UserID:     a.UserID,
		QuestionID: a.QuestionID,
		Chosen:     util.StringToNullString(a.Chosen),
		Correct:    a.Correct,
		NoteType:   string(a.NoteType),
		CreatedAt:  a.CreatedAt,
	}
}

func (r *sqlxAttemptRepository) Create(ctx context.Context, attempt *domain.Attempt) error {
	if attempt.UserID == "" {
		attempt.UserID = domain.DefaultUserID
	}
	if attempt.NoteType == "" {
		attempt.NoteType = domain.NoteWrong
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}
	m := fromDomainAttempt(attempt)

	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO attempts (user_id, question_id, chosen, correct, note_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
	var id int64
	if err := exec.QueryRowxContext(ctx, query,
		m.UserID, m.QuestionID, m.Chosen, m.Correct, m.NoteType, m.CreatedAt,
	).Scan(&id); err != nil {
		return fmt.Errorf("failed to create attempt for question %d: %w", attempt.QuestionID, err)
	}
	attempt.ID = id
	return nil
}

func (r *sqlxAttemptRepository) LatestIncorrect(ctx context.Context, userID string) ([]*domain.Attempt, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT a.id, a.user_id, a.question_id, a.chosen, a.correct, a.note_type, a.created_at
		FROM attempts a
		JOIN (SELECT question_id, MAX(id) AS max_id FROM attempts WHERE user_id = ? GROUP BY question_id) latest
			ON a.id = latest.max_id
		WHERE a.correct = ?
		ORDER BY a.id DESC`)
	return r.selectAttempts(ctx, exec, query, userID, false)
}

func (r *sqlxAttemptRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Attempt, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind("SELECT " + attemptColumns + " FROM attempts WHERE user_id = ? ORDER BY id DESC")
	return r.selectAttempts(ctx, exec, query, userID)
}

func (r *sqlxAttemptRepository) selectAttempts(ctx context.Context, exec DBTX, query string, args ...interface{}) ([]*domain.Attempt, error) {
	var rows []models.Attempt
	if err := exec.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	out := make([]*domain.Attempt, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainAttempt(&rows[i]))
	}
	return out, nil
}
