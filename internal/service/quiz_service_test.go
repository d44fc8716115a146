package service

import (
	"context"
	"errors"
	"testing"

	"cert-study/internal/config"
	"cert-study/internal/domain"
	"cert-study/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleQuestion(id int64, answer string) *domain.Question {
	return &domain.Question{
		ID:          id,
		Stem:        "Which service provides private connectivity?",
		Options:     domain.Options{"A": "VPN Gateway", "B": "ExpressRoute"},
		Answer:      answer,
		Explanation: "ExpressRoute is private.",
		Category:    "Networking",
		Subcategory: "Connectivity",
	}
}

func newTestQuizService(questions *MockQuestionRepository, attempts *MockAttemptRepository, similar domain.SimilarityFinder) QuizService {
	return NewQuizService(questions, attempts, similar, &config.Config{Similar: config.SimilarConfig{Limit: 2}})
}

func TestQuizService_SubmitAnswer_Correct(t *testing.T) {
	questions := new(MockQuestionRepository)
	attempts := new(MockAttemptRepository)
	similar := new(MockSimilarityFinder)
	svc := newTestQuizService(questions, attempts, similar)
	ctx := context.Background()

	q := sampleQuestion(1, "B")
	questions.On("GetByID", ctx, int64(1)).Return(q, nil)
	attempts.On("Create", ctx, mock.MatchedBy(func(a *domain.Attempt) bool {
		return a.QuestionID == 1 && a.Chosen == "B" && a.Correct && a.NoteType == domain.NoteWrong && a.UserID == domain.DefaultUserID
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Attempt).ID = 77
	}).Return(nil).Once()
	similar.On("FindSimilar", ctx, q, 2).Return([]*domain.Question{sampleQuestion(4, "A")}, nil)

	resp, err := svc.SubmitAnswer(ctx, &dto.AnswerRequest{QuestionID: 1, Chosen: "B"})

	require.NoError(t, err)
	assert.True(t, resp.Correct)
	assert.Equal(t, int64(77), resp.AttemptID)
	assert.Equal(t, "B", resp.Answer)
	assert.Equal(t, "ExpressRoute is private.", resp.Explanation)
	require.Len(t, resp.Similar, 1)
	assert.Equal(t, int64(4), resp.Similar[0].ID)
	attempts.AssertNumberOfCalls(t, "Create", 1)
	questions.AssertExpectations(t)
	similar.AssertExpectations(t)
}

func TestQuizService_SubmitAnswer_Incorrect(t *testing.T) {
	questions := new(MockQuestionRepository)
	attempts := new(MockAttemptRepository)
	svc := newTestQuizService(questions, attempts, nil)
	ctx := context.Background()

	questions.On("GetByID", ctx, int64(1)).Return(sampleQuestion(1, "B"), nil)
	attempts.On("Create", ctx, mock.MatchedBy(func(a *domain.Attempt) bool {
		return !a.Correct && a.Chosen == "A" && a.UserID == "alice"
	})).Return(nil).Once()

	// circled numeral ① is the same label as A
	resp, err := svc.SubmitAnswer(ctx, &dto.AnswerRequest{QuestionID: 1, Chosen: "①", UserID: "alice"})

	require.NoError(t, err)
	assert.False(t, resp.Correct)
	assert.NotNil(t, resp.Similar)
	assert.Empty(t, resp.Similar)
	attempts.AssertExpectations(t)
}

func TestQuizService_SubmitAnswer_UnknownQuestion(t *testing.T) {
	questions := new(MockQuestionRepository)
	attempts := new(MockAttemptRepository)
	svc := newTestQuizService(questions, attempts, nil)
	ctx := context.Background()

	questions.On("GetByID", ctx, int64(404)).Return(nil, nil)

	_, err := svc.SubmitAnswer(ctx, &dto.AnswerRequest{QuestionID: 404, Chosen: "A"})

	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.CodeQuestionNotFound, de.Code)
	attempts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuizService_SubmitAnswer_SimilarFailureIsNotFatal(t *testing.T) {
	questions := new(MockQuestionRepository)
	attempts := new(MockAttemptRepository)
	similar := new(MockSimilarityFinder)
	svc := newTestQuizService(questions, attempts, similar)
	ctx := context.Background()

	q := sampleQuestion(1, "A")
	questions.On("GetByID", ctx, int64(1)).Return(q, nil)
	attempts.On("Create", ctx, mock.Anything).Return(nil)
	similar.On("FindSimilar", ctx, q, 2).Return(nil, errors.New("db closed"))

	resp, err := svc.SubmitAnswer(ctx, &dto.AnswerRequest{QuestionID: 1, Chosen: "A"})

	require.NoError(t, err)
	assert.True(t, resp.Correct)
	assert.Empty(t, resp.Similar)
}

func TestQuizService_GetQuestion(t *testing.T) {
	ctx := context.Background()
	filter := domain.Filter{Category: "Networking"}

	t.Run("by id", func(t *testing.T) {
		questions := new(MockQuestionRepository)
		svc := newTestQuizService(questions, new(MockAttemptRepository), nil)
		questions.On("GetByID", ctx, int64(3)).Return(sampleQuestion(3, "A"), nil)

		resp, err := svc.GetQuestion(ctx, 3, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.ID)
		assert.Equal(t, map[string]string{"A": "VPN Gateway", "B": "ExpressRoute"}, resp.Options)
		questions.AssertNotCalled(t, "FirstMatching", mock.Anything, mock.Anything)
	})

	t.Run("first matching", func(t *testing.T) {
		questions := new(MockQuestionRepository)
		svc := newTestQuizService(questions, new(MockAttemptRepository), nil)
		questions.On("FirstMatching", ctx, filter).Return(sampleQuestion(1, "A"), nil)

		resp, err := svc.GetQuestion(ctx, 0, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("missing id is 404", func(t *testing.T) {
		questions := new(MockQuestionRepository)
		svc := newTestQuizService(questions, new(MockAttemptRepository), nil)
		questions.On("GetByID", ctx, int64(9)).Return(nil, nil)

		_, err := svc.GetQuestion(ctx, 9, domain.Filter{})
		var de *domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, domain.CodeQuestionNotFound, de.Code)
	})

	t.Run("empty bank is not found", func(t *testing.T) {
		questions := new(MockQuestionRepository)
		svc := newTestQuizService(questions, new(MockAttemptRepository), nil)
		questions.On("FirstMatching", ctx, domain.Filter{}).Return(nil, nil)

		_, err := svc.GetQuestion(ctx, 0, domain.Filter{})
		var de *domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, domain.CodeNotFound, de.Code)
	})

	t.Run("repository failure is internal", func(t *testing.T) {
		questions := new(MockQuestionRepository)
		svc := newTestQuizService(questions, new(MockAttemptRepository), nil)
		questions.On("GetByID", ctx, int64(1)).Return(nil, errors.New("boom"))

		_, err := svc.GetQuestion(ctx, 1, domain.Filter{})
		var de *domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, domain.CodeInternal, de.Code)
	})
}

func TestQuizService_NextQuestion(t *testing.T) {
	questions := new(MockQuestionRepository)
	svc := newTestQuizService(questions, new(MockAttemptRepository), nil)
	ctx := context.Background()

	questions.On("NextAfter", ctx, int64(1), domain.Filter{}).Return(sampleQuestion(2, "A"), nil)
	questions.On("NextAfter", ctx, int64(2), domain.Filter{}).Return(nil, nil)

	next, err := svc.NextQuestion(ctx, 1, domain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID)

	end, err := svc.NextQuestion(ctx, 2, domain.Filter{})
	assert.NoError(t, err)
	assert.Nil(t, end)
}

func TestQuizService_WrongOnly_UsesLatestAttemptPerQuestion(t *testing.T) {
	questions := new(MockQuestionRepository)
	attempts := new(MockAttemptRepository)
	svc := newTestQuizService(questions, attempts, nil)
	ctx := context.Background()
	filter := domain.Filter{Category: "Networking"}

	// q1 was answered wrong and later corrected, so the store reports only q3 and q2
	attempts.On("LatestIncorrect", ctx, "bob").Return([]*domain.Attempt{
		{ID: 9, QuestionID: 3, Chosen: "A"},
		{ID: 5, QuestionID: 2, Chosen: "B"},
	}, nil)
	questions.On("ListByIDs", ctx, []int64{3, 2}, filter).Return([]*domain.Question{
		sampleQuestion(3, "B"), sampleQuestion(2, "A"),
	}, nil)

	resp, err := svc.WrongOnly(ctx, "bob", filter)

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, int64(3), resp.Items[0].ID)
	assert.Equal(t, int64(2), resp.Items[1].ID)
	for _, item := range resp.Items {
		assert.NotEqual(t, int64(1), item.ID)
	}
}

func TestQuizService_WrongOnly_DefaultsUser(t *testing.T) {
	questions := new(MockQuestionRepository)
	attempts := new(MockAttemptRepository)
	svc := newTestQuizService(questions, attempts, nil)
	ctx := context.Background()

	attempts.On("LatestIncorrect", ctx, domain.DefaultUserID).Return([]*domain.Attempt{}, nil)
	questions.On("ListByIDs", ctx, []int64{}, domain.Filter{}).Return([]*domain.Question{}, nil)

	resp, err := svc.WrongOnly(ctx, "  ", domain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Items)
}

func TestQuizService_AddReview(t *testing.T) {
	questions := new(MockQuestionRepository)
	attempts := new(MockAttemptRepository)
	svc := newTestQuizService(questions, attempts, nil)
	ctx := context.Background()

	questions.On("GetByID", ctx, int64(1)).Return(sampleQuestion(1, "A"), nil)
	attempts.On("Create", ctx, mock.MatchedBy(func(a *domain.Attempt) bool {
		return a.NoteType == domain.NoteReview && a.Chosen == "" && !a.Correct
	})).Return(nil)

	resp, err := svc.AddReview(ctx, &dto.ReviewAddRequest{QuestionID: 1})

	require.NoError(t, err)
	assert.Equal(t, "review", resp.NoteType)
	assert.Equal(t, domain.DefaultUserID, resp.UserID)
	attempts.AssertExpectations(t)
}

func TestQuizService_ListAttemptsAndCategories(t *testing.T) {
	questions := new(MockQuestionRepository)
	attempts := new(MockAttemptRepository)
	svc := newTestQuizService(questions, attempts, nil)
	ctx := context.Background()

	attempts.On("ListByUser", ctx, "carol").Return([]*domain.Attempt{
		{ID: 2, UserID: "carol", QuestionID: 1, Chosen: "A", Correct: true, NoteType: domain.NoteWrong},
	}, nil)
	questions.On("Categories", ctx).Return(nil, errors.New("boom"))

	list, err := svc.ListAttempts(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.True(t, list.Items[0].Correct)

	_, err = svc.Categories(ctx)
	assert.Error(t, err)
}
