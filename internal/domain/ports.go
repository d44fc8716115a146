package domain

import "context"

// QuestionRepository is the persistence port for questions.
// Lookups return (nil, nil) when nothing matches.
type QuestionRepository interface {
	// InsertMany stores the questions, tagging each with source, and sets their IDs.
	InsertMany(ctx context.Context, questions []*Question, source string) (int, error)
	GetByID(ctx context.Context, id int64) (*Question, error)
	// FirstMatching returns the lowest-id question passing the filter.
	FirstMatching(ctx context.Context, filter Filter) (*Question, error)
	// NextAfter returns the lowest-id question with an id greater than id.
	NextAfter(ctx context.Context, id int64, filter Filter) (*Question, error)
	// ListByIDs keeps the order of ids and drops ids that are missing or filtered out.
	ListByIDs(ctx context.Context, ids []int64, filter Filter) ([]*Question, error)
	List(ctx context.Context, filter Filter) ([]*Question, error)
	Categories(ctx context.Context) ([]CategoryCount, error)
}

// AttemptRepository is the persistence port for attempts.
type AttemptRepository interface {
	// Create stores the attempt and sets its ID.
	Create(ctx context.Context, attempt *Attempt) error
	// LatestIncorrect returns, per question, the user's latest attempt when that attempt is incorrect.
	// Latest means highest attempt id. Newest first.
	LatestIncorrect(ctx context.Context, userID string) ([]*Attempt, error)
	// ListByUser returns all of the user's attempts, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Attempt, error)
}

// TransactionManager runs fn inside a transaction carried by the context.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PageResolver turns a PDF into one PageText per page, in page order.
type PageResolver interface {
	Resolve(ctx context.Context, pdfPath string) ([]PageText, error)
}

// Recognizer runs bitmap text recognition on an encoded page image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Structurer turns raw text into zero or more question records.
type Structurer interface {
	Structure(ctx context.Context, text string) ([]*Question, error)
}

// SimilarityFinder ranks questions related to q. Implementations may return fewer than k.
type SimilarityFinder interface {
	FindSimilar(ctx context.Context, q *Question, k int) ([]*Question, error)
}
