package author

import (
	"errors"
	"net/http"

	"bookcatalog-backend/internal/shared/validation"
)

var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrAuthorHasBooks = errors.New("author still has books in the catalog")
)

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAuthorHasBooks):
		return http.StatusConflict
	case validation.IsInvalidDate(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrAuthorHasBooks):
		return "AUTHOR_HAS_BOOKS"
	case validation.IsInvalidDate(err):
		return "INVALID_DATE"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
