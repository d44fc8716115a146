package service

import (
	"context"
	"sort"
	"unicode/utf8"

	"cert-study/internal/domain"
)

// DefaultSimilarLimit is used when the configured limit is not positive.
const DefaultSimilarLimit = 3

// lengthSimilarity ranks same-category questions by how close their stem length
// is to the question's stem plus option texts.
type lengthSimilarity struct {
	repo domain.QuestionRepository
}

// NewLengthSimilarity creates the length-difference similarity finder.
func NewLengthSimilarity(repo domain.QuestionRepository) domain.SimilarityFinder {
	return &lengthSimilarity{repo: repo}
}

func (s *lengthSimilarity) FindSimilar(ctx context.Context, q *domain.Question, k int) ([]*domain.Question, error) {
	if q == nil || k <= 0 {
		return []*domain.Question{}, nil
	}
	candidates, err := s.repo.List(ctx, domain.Filter{Category: q.Category, Subcategory: q.Subcategory})
	if err != nil {
		return nil, err
	}

	baseLen := utf8.RuneCountInString(q.SimilarityBase())
	type scored struct {
		q    *domain.Question
		diff int
	}
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == q.ID {
			continue
		}
		diff := baseLen - utf8.RuneCountInString(c.Stem)
		if diff < 0 {
			diff = -diff
		}
		ranked = append(ranked, scored{q: c, diff: diff})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].diff != ranked[j].diff {
			return ranked[i].diff < ranked[j].diff
		}
		return ranked[i].q.ID < ranked[j].q.ID
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	out := make([]*domain.Question, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.q)
	}
	return out, nil
}
