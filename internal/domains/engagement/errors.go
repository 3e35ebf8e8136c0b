package engagement

import "errors"

var (
	ErrEntityNotFound   = errors.New("reviewed entity not found")
	ErrMetadataNotFound = errors.New("engagement metadata not found")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrEntityNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrInvalidRating):
		return "INVALID_RATING"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEntityNotFound):
		return 404
	case errors.Is(err, ErrInvalidRating):
		return 400
	default:
		return 500
	}
}
