package service

import (
	"context"
	"strings"

	"cert-study/internal/config"
	"cert-study/internal/domain"
	"cert-study/internal/dto"
	"cert-study/internal/logger"

	"go.uber.org/zap"
)

// EndOfQuestionsMessage is reported by /api/next past the last matching question.
const EndOfQuestionsMessage = "No more questions"

// QuizService defines the interface for quiz-practice operations
type QuizService interface {
	// GetQuestion returns the question with id, or the first match of filter when id is 0.
	GetQuestion(ctx context.Context, id int64, filter domain.Filter) (*dto.QuestionResponse, error)
	// NextQuestion returns nil, nil when no question follows currentID.
	NextQuestion(ctx context.Context, currentID int64, filter domain.Filter) (*dto.QuestionResponse, error)
	SubmitAnswer(ctx context.Context, req *dto.AnswerRequest) (*dto.AnswerResponse, error)
	AddReview(ctx context.Context, req *dto.ReviewAddRequest) (*dto.AttemptResponse, error)
	// RecordAttempt stores one attempt against an existing question with its correctness fixed.
	RecordAttempt(ctx context.Context, userID string, questionID int64, chosen string, noteType domain.NoteType) (*domain.Attempt, *domain.Question, error)
	WrongOnly(ctx context.Context, userID string, filter domain.Filter) (*dto.QuestionListResponse, error)
	ListAttempts(ctx context.Context, userID string) (*dto.AttemptListResponse, error)
	Categories(ctx context.Context) (*dto.CategoryListResponse, error)
}

// quizService implements QuizService
type quizService struct {
	questions    domain.QuestionRepository
	attempts     domain.AttemptRepository
	similar      domain.SimilarityFinder
	similarLimit int
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	questions domain.QuestionRepository,
	attempts domain.AttemptRepository,
	similar domain.SimilarityFinder,
	cfg *config.Config,
) QuizService {
	limit := DefaultSimilarLimit
	if cfg != nil && cfg.Similar.Limit > 0 {
		limit = cfg.Similar.Limit
	}
	return &quizService{
		questions:    questions,
		attempts:     attempts,
		similar:      similar,
		similarLimit: limit,
	}
}

func userOrDefault(userID string) string {
	if u := strings.TrimSpace(userID); u != "" {
		return u
	}
	return domain.DefaultUserID
}

func (s *quizService) GetQuestion(ctx context.Context, id int64, filter domain.Filter) (*dto.QuestionResponse, error) {
	var (
		q   *domain.Question
		err error
	)
	if id > 0 {
		q, err = s.questions.GetByID(ctx, id)
	} else {
		q, err = s.questions.FirstMatching(ctx, filter)
	}
	if err != nil {
		return nil, domain.NewInternalError("Failed to get question", err)
	}
	if q == nil {
		if id > 0 {
			return nil, domain.NewQuestionNotFoundError(id)
		}
		return nil, domain.NewNotFoundError("No question matches the filter")
	}
	return dto.NewQuestionResponse(q), nil
}

func (s *quizService) NextQuestion(ctx context.Context, currentID int64, filter domain.Filter) (*dto.QuestionResponse, error) {
	q, err := s.questions.NextAfter(ctx, currentID, filter)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get next question", err)
	}
	return dto.NewQuestionResponse(q), nil
}

func (s *quizService) RecordAttempt(ctx context.Context, userID string, questionID int64, chosen string, noteType domain.NoteType) (*domain.Attempt, *domain.Question, error) {
	q, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, nil, domain.NewInternalError("Failed to get question", err)
	}
	if q == nil {
		return nil, nil, domain.NewQuestionNotFoundError(questionID)
	}

	attempt := domain.NewAttempt(q, userOrDefault(userID), chosen, noteType)
	if err := s.attempts.Create(ctx, attempt); err != nil {
		return nil, nil, domain.NewInternalError("Failed to record attempt", err)
	}
	logger.Get().Debug("Attempt recorded",
		zap.Int64("attempt_id", attempt.ID),
		zap.Int64("question_id", questionID),
		zap.String("user_id", attempt.UserID),
		zap.Bool("correct", attempt.Correct),
		zap.String("note_type", string(attempt.NoteType)),
	)
	return attempt, q, nil
}

func (s *quizService) SubmitAnswer(ctx context.Context, req *dto.AnswerRequest) (*dto.AnswerResponse, error) {
	attempt, q, err := s.RecordAttempt(ctx, req.UserID, req.QuestionID, req.Chosen, domain.NoteWrong)
	if err != nil {
		return nil, err
	}

	resp := &dto.AnswerResponse{
		AttemptID:   attempt.ID,
		Correct:     attempt.Correct,
		Answer:      q.Answer,
		Explanation: q.Explanation,
		Category:    q.Category,
		Subcategory: q.Subcategory,
		Similar:     []*dto.QuestionResponse{},
	}

	if s.similar != nil {
		similar, err := s.similar.FindSimilar(ctx, q, s.similarLimit)
		if err != nil {
			// the attempt is already stored; similar questions are optional
			logger.Get().Warn("Failed to find similar questions",
				zap.Int64("question_id", q.ID),
				zap.Error(err),
			)
		}
		for _, sq := range similar {
			resp.Similar = append(resp.Similar, dto.NewQuestionResponse(sq))
		}
	}
	return resp, nil
}

func (s *quizService) AddReview(ctx context.Context, req *dto.ReviewAddRequest) (*dto.AttemptResponse, error) {
	attempt, _, err := s.RecordAttempt(ctx, req.UserID, req.QuestionID, "", domain.NoteReview)
	if err != nil {
		return nil, err
	}
	return dto.NewAttemptResponse(attempt), nil
}

func (s *quizService) WrongOnly(ctx context.Context, userID string, filter domain.Filter) (*dto.QuestionListResponse, error) {
	latest, err := s.attempts.LatestIncorrect(ctx, userOrDefault(userID))
	if err != nil {
		return nil, domain.NewInternalError("Failed to get wrong answers", err)
	}

	ids := make([]int64, 0, len(latest))
	for _, a := range latest {
		ids = append(ids, a.QuestionID)
	}
	questions, err := s.questions.ListByIDs(ctx, ids, filter)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get wrong-answer questions", err)
	}

	items := make([]*dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		items = append(items, dto.NewQuestionResponse(q))
	}
	return &dto.QuestionListResponse{Count: len(items), Items: items}, nil
}

func (s *quizService) ListAttempts(ctx context.Context, userID string) (*dto.AttemptListResponse, error) {
	attempts, err := s.attempts.ListByUser(ctx, userOrDefault(userID))
	if err != nil {
		return nil, domain.NewInternalError("Failed to list attempts", err)
	}
	items := make([]*dto.AttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		items = append(items, dto.NewAttemptResponse(a))
	}
	return &dto.AttemptListResponse{Count: len(items), Items: items}, nil
}

func (s *quizService) Categories(ctx context.Context) (*dto.CategoryListResponse, error) {
	cats, err := s.questions.Categories(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list categories", err)
	}
	if cats == nil {
		cats = []domain.CategoryCount{}
	}
	return &dto.CategoryListResponse{Count: len(cats), Items: cats}, nil
}
