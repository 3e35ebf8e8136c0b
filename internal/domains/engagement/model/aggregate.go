package model

import "github.com/shopspring/decimal"

// Aggregate holds the fields derived from the reviews array.
type Aggregate struct {
	AverageRating float64
	TotalReviews  int
}

// Recompute derives the aggregate from the full review list. The mean is
// computed with decimal arithmetic so the result is independent of the order
// reviews were appended in.
func Recompute(reviews []Review) Aggregate {
	if len(reviews) == 0 {
		return Aggregate{}
	}

	sum := decimal.Zero
	for _, r := range reviews {
		sum = sum.Add(decimal.NewFromInt(int64(r.Rating)))
	}

	avg := sum.Div(decimal.NewFromInt(int64(len(reviews))))

	return Aggregate{
		AverageRating: avg.InexactFloat64(),
		TotalReviews:  len(reviews),
	}
}

// Drifted reports whether the stored aggregates disagree with the reviews
// array beyond float tolerance. Used by the reconciliation job.
func (m *Metadata) Drifted() bool {
	want := Recompute(m.Reviews)
	if m.TotalReviews != want.TotalReviews {
		return true
	}
	diff := m.AverageRating - want.AverageRating
	if diff < 0 {
		diff = -diff
	}
	return diff > 1e-9
}
