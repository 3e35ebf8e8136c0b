package validation

import (
	"errors"
	"time"
)

// Temporal rule violations. Both map to the INVALID_DATE error code at the
// API boundary; the distinction is kept for precise messages.
var (
	ErrDateInFuture        = errors.New("date must not be in the future")
	ErrPublishedBeforeBorn = errors.New("book cannot be published before the author was born")
)

// IsInvalidDate reports whether err is one of the temporal rule violations.
func IsInvalidDate(err error) bool {
	return errors.Is(err, ErrDateInFuture) || errors.Is(err, ErrPublishedBeforeBorn)
}

// ValidateAuthorDates checks that a birth date does not lie in the future.
// A nil bornDate always passes.
func ValidateAuthorDates(bornDate *time.Time, now time.Time) error {
	if bornDate == nil {
		return nil
	}
	if bornDate.After(now) {
		return ErrDateInFuture
	}
	return nil
}

// ValidateBookDates checks that a publication date is not in the future and,
// when the author's birth date is known, strictly after it. Absent dates pass.
func ValidateBookDates(publishedDate, authorBornDate *time.Time, now time.Time) error {
	if publishedDate == nil {
		return nil
	}
	if publishedDate.After(now) {
		return ErrDateInFuture
	}
	if authorBornDate != nil && !publishedDate.After(*authorBornDate) {
		return ErrPublishedBeforeBorn
	}
	return nil
}
