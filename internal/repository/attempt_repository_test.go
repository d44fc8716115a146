package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"cert-study/internal/domain"
	"cert-study/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var attemptRowColumns = []string{"id", "user_id", "question_id", "chosen", "correct", "note_type", "created_at"}

func TestAttemptConverters(t *testing.T) {
	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	a := &domain.Attempt{ID: 3, UserID: "alice", QuestionID: 7, Chosen: "B", Correct: false, NoteType: domain.NoteReview, CreatedAt: created}

	m := fromDomainAttempt(a)
	require.NotNil(t, m)
	assert.Equal(t, "review", m.NoteType)
	assert.True(t, m.Chosen.Valid)

	back := toDomainAttempt(m)
	assert.Equal(t, a, back)

	empty := toDomainAttempt(&models.Attempt{ID: 4, NoteType: "wrong"})
	assert.Equal(t, domain.NoteWrong, empty.NoteType)
	assert.Empty(t, empty.Chosen)

	assert.Nil(t, toDomainAttempt(nil))
	assert.Nil(t, fromDomainAttempt(nil))
}

func TestAttemptRepository_Create(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAttemptRepository(db)

	t.Run("defaults user and note type", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attempts (user_id, question_id, chosen, correct, note_type, created_at)")).
			WithArgs(domain.DefaultUserID, int64(5), "B", false, domain.NoteWrong, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

		a := &domain.Attempt{QuestionID: 5, Chosen: "B"}
		err := repo.Create(context.Background(), a)

		require.NoError(t, err)
		assert.Equal(t, int64(42), a.ID)
		assert.Equal(t, domain.DefaultUserID, a.UserID)
		assert.False(t, a.CreatedAt.IsZero())
	})

	t.Run("review entry stores NULL choice", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO attempts").
			WithArgs("alice", int64(5), nil, false, domain.NoteReview, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(43)))

		err := repo.Create(context.Background(), &domain.Attempt{UserID: "alice", QuestionID: 5, NoteType: domain.NoteReview})
		assert.NoError(t, err)
	})

	t.Run("foreign key failure", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO attempts").WillReturnError(errors.New("FOREIGN KEY constraint failed"))

		err := repo.Create(context.Background(), &domain.Attempt{QuestionID: 999, Chosen: "A"})
		assert.ErrorContains(t, err, "question 999")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepository_LatestIncorrect(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAttemptRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`MAX\(id\) AS max_id FROM attempts WHERE user_id = \? GROUP BY question_id\) latest\s+ON a.id = latest.max_id\s+WHERE a.correct = \?\s+ORDER BY a.id DESC`).
		WithArgs("default", false).
		WillReturnRows(sqlmock.NewRows(attemptRowColumns).
			AddRow(int64(8), "default", int64(3), "C", false, "wrong", now).
			AddRow(int64(6), "default", int64(1), nil, false, "review", now))

	got, err := repo.LatestIncorrect(context.Background(), "default")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].QuestionID)
	assert.Equal(t, "C", got[0].Chosen)
	assert.Equal(t, "", got[1].Chosen)
	assert.Equal(t, domain.NoteReview, got[1].NoteType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepository_ListByUser(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewAttemptRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM attempts WHERE user_id = ? ORDER BY id DESC")).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(attemptRowColumns))

	got, err := repo.ListByUser(context.Background(), "bob")
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	mock.ExpectQuery("FROM attempts").WillReturnError(errors.New("no such table: attempts"))
	_, err = repo.ListByUser(context.Background(), "bob")
	assert.ErrorContains(t, err, "failed to list attempts")

	assert.NoError(t, mock.ExpectationsWereMet())
}
