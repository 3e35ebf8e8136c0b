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

	"bookcatalog-backend/internal/domains/author"
	"bookcatalog-backend/internal/domains/author/model"
	"bookcatalog-backend/pkg/cache"
)

const (
	authorCacheKeyPrefix = "author:"
	authorCacheTTL       = 15 * time.Minute
)

type postgresAuthorRepository struct {
	db    *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresAuthorRepository(db *pgxpool.Pool, c cache.Cache) author.Repository {
	return &postgresAuthorRepository{db: db, cache: c}
}

func authorCacheKey(id uuid.UUID) string {
	return authorCacheKeyPrefix + id.String()
}

func (r *postgresAuthorRepository) Create(ctx context.Context, a *model.Author) error {
	query := `
		INSERT INTO authors (id, name, biography, born_date, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		a.ID, a.Name, a.Biography, a.BornDate, a.PhotoURL, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert author: %w", err)
	}
	return nil
}

func (r *postgresAuthorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	var cached model.Author
	if found, err := r.cache.Get(ctx, authorCacheKey(id), &cached); err == nil && found {
		return &cached, nil
	}

	query := `
		SELECT id, name, biography, born_date, photo_url, created_at, updated_at
		FROM authors
		WHERE id = $1`

	var a model.Author
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Biography, &a.BornDate, &a.PhotoURL, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("select author: %w", err)
	}

	if err := r.cache.Set(ctx, authorCacheKey(id), &a, authorCacheTTL); err != nil {
		log.Debug().Err(err).Str("author_id", id.String()).Msg("failed to cache author")
	}
	return &a, nil
}

func (r *postgresAuthorRepository) GetAll(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argPos))
		args = append(args, "%"+filter.Name+"%")
		argPos++
	}
	if filter.BornAfter != nil {
		conditions = append(conditions, fmt.Sprintf("born_date >= $%d", argPos))
		args = append(args, *filter.BornAfter)
		argPos++
	}
	if filter.BornBefore != nil {
		conditions = append(conditions, fmt.Sprintf("born_date <= $%d", argPos))
		args = append(args, *filter.BornBefore)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM authors %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count authors: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, biography, born_date, photo_url, created_at, updated_at
		FROM authors
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, whereClause, argPos, argPos+1)
	args = append(args, filter.Pagination.Limit, filter.Pagination.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Biography, &a.BornDate, &a.PhotoURL, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate authors: %w", err)
	}

	return authors, total, nil
}

func (r *postgresAuthorRepository) Update(ctx context.Context, a *model.Author) error {
	query := `
		UPDATE authors
		SET name = $2, biography = $3, born_date = $4, photo_url = $5, updated_at = $6
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		a.ID, a.Name, a.Biography, a.BornDate, a.PhotoURL, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	if err := r.cache.Delete(ctx, authorCacheKey(a.ID)); err != nil {
		log.Debug().Err(err).Str("author_id", a.ID.String()).Msg("failed to invalidate author cache")
	}
	return nil
}

func (r *postgresAuthorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	if err := r.cache.Delete(ctx, authorCacheKey(id)); err != nil {
		log.Debug().Err(err).Str("author_id", id.String()).Msg("failed to invalidate author cache")
	}
	return nil
}

func (r *postgresAuthorRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check author exists: %w", err)
	}
	return exists, nil
}
