package service

import (
	"context"

	"cert-study/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) InsertMany(ctx context.Context, questions []*domain.Question, source string) (int, error) {
	args := m.Called(ctx, questions, source)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) FirstMatching(ctx context.Context, filter domain.Filter) (*domain.Question, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) NextAfter(ctx context.Context, id int64, filter domain.Filter) (*domain.Question, error) {
	args := m.Called(ctx, id, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) ListByIDs(ctx context.Context, ids []int64, filter domain.Filter) ([]*domain.Question, error) {
	args := m.Called(ctx, ids, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.Question, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryCount), args.Error(1)
}

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *domain.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) LatestIncorrect(ctx context.Context, userID string) ([]*domain.Attempt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Attempt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Attempt), args.Error(1)
}

// --- MockSimilarityFinder ---
type MockSimilarityFinder struct {
	mock.Mock
}

func (m *MockSimilarityFinder) FindSimilar(ctx context.Context, q *domain.Question, k int) ([]*domain.Question, error) {
	args := m.Called(ctx, q, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

// --- MockPageResolver ---
type MockPageResolver struct {
	mock.Mock
}

func (m *MockPageResolver) Resolve(ctx context.Context, pdfPath string) ([]domain.PageText, error) {
	args := m.Called(ctx, pdfPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PageText), args.Error(1)
}

// --- MockStructurer ---
type MockStructurer struct {
	mock.Mock
}

func (m *MockStructurer) Structure(ctx context.Context, text string) ([]*domain.Question, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

// passthroughTM runs fn directly and counts calls.
type passthroughTM struct {
	calls int
}

func (t *passthroughTM) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}
