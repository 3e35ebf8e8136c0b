package book

import (
	"context"

	"github.com/google/uuid"

	authormodel "bookcatalog-backend/internal/domains/author/model"
	"bookcatalog-backend/internal/domains/book/model"
)

// AuthorReader looks up the author a book references. The book service
// needs the born date to validate publication chronology.
type AuthorReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*authormodel.Author, error)
}

type Service interface {
	Create(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	GetAll(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error)
	SetCoverURL(ctx context.Context, id uuid.UUID, url string) (*model.Book, error)

	// ExportXLSX renders the whole catalog as a spreadsheet.
	ExportXLSX(ctx context.Context) ([]byte, error)
}
