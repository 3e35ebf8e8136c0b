package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestValidateAuthorDates(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		bornDate *time.Time
		wantErr  error
	}{
		{"nil born date passes", nil, nil},
		{"past born date passes", date("1950-03-12"), nil},
		{"born today passes", date("2024-06-01"), nil},
		{"future born date rejected", date("2030-01-01"), ErrDateInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAuthorDates(tt.bornDate, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBookDates(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		published *time.Time
		born      *time.Time
		wantErr   error
	}{
		{"both absent", nil, nil, nil},
		{"published absent", nil, date("1950-03-12"), nil},
		{"born absent, valid published", date("2001-09-10"), nil, nil},
		{"published in future", date("2030-01-01"), nil, ErrDateInFuture},
		{"published in future with born set", date("2030-01-01"), date("1950-03-12"), ErrDateInFuture},
		{"published before born", date("1940-01-01"), date("1950-03-12"), ErrPublishedBeforeBorn},
		{"published equals born", date("1950-03-12"), date("1950-03-12"), ErrPublishedBeforeBorn},
		{"published after born, before now", date("1990-05-20"), date("1950-03-12"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBookDates(tt.published, tt.born, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestIsInvalidDate(t *testing.T) {
	assert.True(t, IsInvalidDate(ErrDateInFuture))
	assert.True(t, IsInvalidDate(ErrPublishedBeforeBorn))
	assert.False(t, IsInvalidDate(nil))
	assert.False(t, IsInvalidDate(assert.AnError))
}
