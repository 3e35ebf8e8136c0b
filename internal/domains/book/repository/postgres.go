package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/book"
	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/pkg/cache"
)

const (
	bookCacheKeyPrefix = "book:"
	bookCacheTTL       = 15 * time.Minute
)

// bookColumns joins the author name into every read so list and detail
// responses carry it without a second round trip.
const bookColumns = `
	b.id, b.title, b.description, b.published_date, b.cover_url,
	b.author_id, a.name AS author_name, b.created_at, b.updated_at`

type postgresBookRepository struct {
	db    *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresBookRepository(db *pgxpool.Pool, c cache.Cache) book.Repository {
	return &postgresBookRepository{db: db, cache: c}
}

func bookCacheKey(id uuid.UUID) string {
	return bookCacheKeyPrefix + id.String()
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Description, &b.PublishedDate, &b.CoverURL,
		&b.AuthorID, &b.AuthorName, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresBookRepository) Create(ctx context.Context, b *model.Book) error {
	query := `
		INSERT INTO books (id, title, description, published_date, cover_url, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		b.ID, b.Title, b.Description, b.PublishedDate, b.CoverURL, b.AuthorID, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *postgresBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	var cached model.Book
	if found, err := r.cache.Get(ctx, bookCacheKey(id), &cached); err == nil && found {
		return &cached, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE b.id = $1`, bookColumns)

	b, err := scanBook(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("select book: %w", err)
	}

	if err := r.cache.Set(ctx, bookCacheKey(id), b, bookCacheTTL); err != nil {
		log.Debug().Err(err).Str("book_id", id.String()).Msg("failed to cache book")
	}
	return b, nil
}

func (r *postgresBookRepository) GetAll(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.Title != "" {
		conditions = append(conditions, fmt.Sprintf("b.title ILIKE $%d", argPos))
		args = append(args, "%"+filter.Title+"%")
		argPos++
	}
	if filter.AuthorID != nil {
		conditions = append(conditions, fmt.Sprintf("b.author_id = $%d", argPos))
		args = append(args, *filter.AuthorID)
		argPos++
	}
	if filter.PublishedAfter != nil {
		conditions = append(conditions, fmt.Sprintf("b.published_date >= $%d", argPos))
		args = append(args, *filter.PublishedAfter)
		argPos++
	}
	if filter.PublishedBefore != nil {
		conditions = append(conditions, fmt.Sprintf("b.published_date <= $%d", argPos))
		args = append(args, *filter.PublishedBefore)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM books b %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		JOIN authors a ON a.id = b.author_id
		%s
		ORDER BY b.created_at DESC
		LIMIT $%d OFFSET $%d`, bookColumns, whereClause, argPos, argPos+1)
	args = append(args, filter.Pagination.Limit, filter.Pagination.Offset())

	books, err := r.queryBooks(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *postgresBookRepository) Update(ctx context.Context, b *model.Book) error {
	query := `
		UPDATE books
		SET title = $2, description = $3, published_date = $4, cover_url = $5, author_id = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		b.ID, b.Title, b.Description, b.PublishedDate, b.CoverURL, b.AuthorID, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	if err := r.cache.Delete(ctx, bookCacheKey(b.ID)); err != nil {
		log.Debug().Err(err).Str("book_id", b.ID.String()).Msg("failed to invalidate book cache")
	}
	return nil
}

func (r *postgresBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}

	if err := r.cache.Delete(ctx, bookCacheKey(id)); err != nil {
		log.Debug().Err(err).Str("book_id", id.String()).Msg("failed to invalidate book cache")
	}
	return nil
}

func (r *postgresBookRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check book exists: %w", err)
	}
	return exists, nil
}

func (r *postgresBookRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		JOIN authors a ON a.id = b.author_id
		WHERE b.author_id = $1
		ORDER BY b.published_date ASC NULLS LAST`, bookColumns)

	return r.queryBooks(ctx, query, authorID)
}

func (r *postgresBookRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count books by author: %w", err)
	}
	return count, nil
}

func (r *postgresBookRepository) ListAll(ctx context.Context) ([]model.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		JOIN authors a ON a.id = b.author_id
		ORDER BY b.created_at ASC`, bookColumns)

	return r.queryBooks(ctx, query)
}

func (r *postgresBookRepository) queryBooks(ctx context.Context, query string, args ...interface{}) ([]model.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}
