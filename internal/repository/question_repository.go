package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cert-study/internal/domain"
	"cert-study/internal/repository/models"
	"cert-study/internal/util"

	"github.com/jmoiron/sqlx"
)

const questionColumns = "id, stem, options, answer, explanation, category, subcategory, source, created_at"

// sqlxQuestionRepository implements domain.QuestionRepository using sqlx.
type sqlxQuestionRepository struct {
	db *sqlx.DB
}

// NewQuestionRepository creates a question repository on db. Queries are written
// with '?' placeholders and rebound for the driver.
func NewQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &sqlxQuestionRepository{db: db}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	opts := domain.Options(m.Options)
	if opts == nil {
		opts = domain.Options{}
	}
	return &domain.Question{
		ID:          m.ID,
		Stem:        m.Stem,
		Options:     opts,
		Answer:      m.Answer,
		Explanation: m.Explanation.String,
		Category:    m.Category,
		Subcategory: m.Subcategory,
		Source:      m.Source.String,
		CreatedAt:   m.CreatedAt,
	}
}

func fromDomainQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	category := q.Category
	if category == "" {
		category = domain.CategoryUnknown
	}
	subcategory := q.Subcategory
	if subcategory == "" {
		subcategory = domain.CategoryUnknown
	}
	return &models.Question{
		ID:          q.ID,
		Stem:        q.Stem,
		Options:     models.OptionMap(q.Options),
		Answer:      q.Answer,
		Explanation: util.StringToNullString(q.Explanation),
		Category:    category,
		Subcategory: subcategory,
		Source:      util.StringToNullString(q.Source),
		CreatedAt:   q.CreatedAt,
	}
}

func (r *sqlxQuestionRepository) InsertMany(ctx context.Context, questions []*domain.Question, source string) (int, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO questions (stem, options, answer, explanation, category, subcategory, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)

	inserted := 0
	for _, q := range questions {
		if q == nil {
			continue
		}
		if q.CreatedAt.IsZero() {
			q.CreatedAt = time.Now().UTC()
		}
		q.Source = source
		m := fromDomainQuestion(q)

		var id int64
		err := exec.QueryRowxContext(ctx, query,
			m.Stem, m.Options, m.Answer, m.Explanation, m.Category, m.Subcategory, m.Source, m.CreatedAt,
		).Scan(&id)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert question %d of %d: %w", inserted+1, len(questions), err)
		}
		q.ID = id
		q.Category = m.Category
		q.Subcategory = m.Subcategory
		inserted++
	}
	return inserted, nil
}

func (r *sqlxQuestionRepository) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	exec := GetExecutor(ctx, r.db)
	var m models.Question
	query := exec.Rebind("SELECT " + questionColumns + " FROM questions WHERE id = ?")
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %d: %w", id, err)
	}
	return toDomainQuestion(&m), nil
}

func (r *sqlxQuestionRepository) FirstMatching(ctx context.Context, filter domain.Filter) (*domain.Question, error) {
	return r.NextAfter(ctx, 0, filter)
}

func (r *sqlxQuestionRepository) NextAfter(ctx context.Context, id int64, filter domain.Filter) (*domain.Question, error) {
	exec := GetExecutor(ctx, r.db)
	clause, args := filterClause(filter, []interface{}{id})
	query := exec.Rebind("SELECT " + questionColumns + " FROM questions WHERE id > ?" + clause + " ORDER BY id LIMIT 1")

	var m models.Question
	if err := exec.GetContext(ctx, &m, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question after ID %d: %w", id, err)
	}
	return toDomainQuestion(&m), nil
}

func (r *sqlxQuestionRepository) ListByIDs(ctx context.Context, ids []int64, filter domain.Filter) ([]*domain.Question, error) {
	if len(ids) == 0 {
		return []*domain.Question{}, nil
	}
	exec := GetExecutor(ctx, r.db)
	clause, args := filterClause(filter, []interface{}{ids})
	query, inArgs, err := sqlx.In("SELECT "+questionColumns+" FROM questions WHERE id IN (?)"+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build IN query: %w", err)
	}

	var rows []models.Question
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), inArgs...); err != nil {
		return nil, fmt.Errorf("failed to list questions by IDs: %w", err)
	}

	byID := make(map[int64]*domain.Question, len(rows))
	for i := range rows {
		byID[rows[i].ID] = toDomainQuestion(&rows[i])
	}
	out := make([]*domain.Question, 0, len(rows))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			out = append(out, q)
			delete(byID, id)
		}
	}
	return out, nil
}

func (r *sqlxQuestionRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, r.db)
	clause, args := filterClause(filter, nil)
	query := exec.Rebind("SELECT " + questionColumns + " FROM questions WHERE 1=1" + clause + " ORDER BY id")

	var rows []models.Question
	if err := exec.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	out := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainQuestion(&rows[i]))
	}
	return out, nil
}

func (r *sqlxQuestionRepository) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	exec := GetExecutor(ctx, r.db)
	var out []domain.CategoryCount
	query := `SELECT category, subcategory, COUNT(*) AS count FROM questions
		GROUP BY category, subcategory ORDER BY category, subcategory`
	if err := exec.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if out == nil {
		out = []domain.CategoryCount{}
	}
	return out, nil
}
