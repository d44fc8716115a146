package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cert-study/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionWithStemLen(id int64, n int) *domain.Question {
	return &domain.Question{ID: id, Stem: strings.Repeat("x", n), Category: "Storage", Subcategory: "Blob"}
}

func TestLengthSimilarity_RanksByLengthDifference(t *testing.T) {
	repo := new(MockQuestionRepository)
	finder := NewLengthSimilarity(repo)
	ctx := context.Background()

	// base = stem(10) + " " + "ab cd" = 16 runes
	base := &domain.Question{ID: 1, Stem: strings.Repeat("q", 10), Options: domain.Options{"A": "ab", "B": "cd"}, Category: "Storage", Subcategory: "Blob"}
	repo.On("List", ctx, domain.Filter{Category: "Storage", Subcategory: "Blob"}).Return([]*domain.Question{
		base,
		questionWithStemLen(2, 30), // diff 14
		questionWithStemLen(3, 18), // diff 2
		questionWithStemLen(4, 14), // diff 2, higher id
		questionWithStemLen(5, 15), // diff 1
	}, nil)

	got, err := finder.FindSimilar(ctx, base, 3)

	require.NoError(t, err)
	ids := make([]int64, 0, len(got))
	for _, q := range got {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []int64{5, 3, 4}, ids)
}

func TestLengthSimilarity_EdgeCases(t *testing.T) {
	ctx := context.Background()

	t.Run("only itself", func(t *testing.T) {
		repo := new(MockQuestionRepository)
		q := questionWithStemLen(1, 20)
		repo.On("List", ctx, domain.Filter{Category: "Storage", Subcategory: "Blob"}).Return([]*domain.Question{q}, nil)

		got, err := NewLengthSimilarity(repo).FindSimilar(ctx, q, 3)
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("non-positive k", func(t *testing.T) {
		repo := new(MockQuestionRepository)
		got, err := NewLengthSimilarity(repo).FindSimilar(ctx, questionWithStemLen(1, 20), 0)
		assert.NoError(t, err)
		assert.Empty(t, got)
		repo.AssertNotCalled(t, "List")
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockQuestionRepository)
		repo.On("List", ctx, domain.Filter{Category: "Storage", Subcategory: "Blob"}).Return(nil, errors.New("boom"))

		_, err := NewLengthSimilarity(repo).FindSimilar(ctx, questionWithStemLen(1, 20), 3)
		assert.Error(t, err)
	})
}
