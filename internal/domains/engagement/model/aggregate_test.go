package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reviewsWithRatings(ratings ...int) []Review {
	reviews := make([]Review, len(ratings))
	for i, r := range ratings {
		reviews[i] = Review{Rating: r}
	}
	return reviews
}

func TestRecompute(t *testing.T) {
	tests := []struct {
		name        string
		ratings     []int
		wantAverage float64
		wantTotal   int
	}{
		{"empty", nil, 0, 0},
		{"single review", []int{5}, 5.0, 1},
		{"mixed ratings", []int{5, 3, 4}, 4.0, 3},
		{"all minimum", []int{1, 1, 1, 1}, 1.0, 4},
		{"non-integer mean", []int{5, 4}, 4.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recompute(reviewsWithRatings(tt.ratings...))
			assert.InDelta(t, tt.wantAverage, got.AverageRating, 1e-9)
			assert.Equal(t, tt.wantTotal, got.TotalReviews)
		})
	}
}

// Appending [5,3,4] in any order yields the same aggregate.
func TestRecomputeOrderIndependent(t *testing.T) {
	orders := [][]int{
		{5, 3, 4},
		{3, 4, 5},
		{4, 5, 3},
		{5, 4, 3},
	}

	for _, ratings := range orders {
		got := Recompute(reviewsWithRatings(ratings...))
		assert.InDelta(t, 4.0, got.AverageRating, 1e-9)
		assert.Equal(t, 3, got.TotalReviews)
	}
}

func TestDrifted(t *testing.T) {
	m := &Metadata{
		Reviews:       reviewsWithRatings(5, 3, 4),
		AverageRating: 4.0,
		TotalReviews:  3,
	}
	assert.False(t, m.Drifted())

	m.TotalReviews = 2
	assert.True(t, m.Drifted())

	m.TotalReviews = 3
	m.AverageRating = 3.9
	assert.True(t, m.Drifted())
}

func TestAddReviewRequestValidate(t *testing.T) {
	comment := "great read"

	assert.NoError(t, AddReviewRequest{Rating: 3, Comment: &comment}.Validate())
	assert.NoError(t, AddReviewRequest{Rating: 5}.Validate())

	assert.Error(t, AddReviewRequest{Rating: 0}.Validate())
	assert.Error(t, AddReviewRequest{Rating: 6}.Validate())
	assert.Error(t, AddReviewRequest{Rating: -1}.Validate())
}
