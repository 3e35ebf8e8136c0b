package book

import (
	"errors"
	"net/http"

	"bookcatalog-backend/internal/shared/validation"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrAuthorNotFound = errors.New("referenced author not found")
)

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	case validation.IsInvalidDate(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case validation.IsInvalidDate(err):
		return "INVALID_DATE"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
