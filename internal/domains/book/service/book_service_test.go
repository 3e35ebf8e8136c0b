package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bookcatalog-backend/internal/domains/author"
	authormodel "bookcatalog-backend/internal/domains/author/model"
	"bookcatalog-backend/internal/domains/book"
	"bookcatalog-backend/internal/domains/book/model"
	emodel "bookcatalog-backend/internal/domains/engagement/model"
	"bookcatalog-backend/internal/shared/validation"
)

type fakeBookRepository struct {
	books map[uuid.UUID]*model.Book
}

func newFakeBookRepository() *fakeBookRepository {
	return &fakeBookRepository{books: map[uuid.UUID]*model.Book{}}
}

func (f *fakeBookRepository) Create(_ context.Context, b *model.Book) error {
	stored := *b
	f.books[b.ID] = &stored
	return nil
}

func (f *fakeBookRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookRepository) GetAll(_ context.Context, _ model.BookFilter) ([]model.Book, int64, error) {
	all := []model.Book{}
	for _, b := range f.books {
		all = append(all, *b)
	}
	return all, int64(len(all)), nil
}

func (f *fakeBookRepository) Update(_ context.Context, b *model.Book) error {
	if _, ok := f.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	stored := *b
	f.books[b.ID] = &stored
	return nil
}

func (f *fakeBookRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

func (f *fakeBookRepository) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.books[id]
	return ok, nil
}

func (f *fakeBookRepository) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]model.Book, error) {
	matched := []model.Book{}
	for _, b := range f.books {
		if b.AuthorID == authorID {
			matched = append(matched, *b)
		}
	}
	return matched, nil
}

func (f *fakeBookRepository) CountByAuthor(_ context.Context, authorID uuid.UUID) (int64, error) {
	books, _ := f.ListByAuthor(context.Background(), authorID)
	return int64(len(books)), nil
}

func (f *fakeBookRepository) ListAll(_ context.Context) ([]model.Book, error) {
	all := []model.Book{}
	for _, b := range f.books {
		all = append(all, *b)
	}
	return all, nil
}

type fakeAuthorReader struct {
	authors map[uuid.UUID]*authormodel.Author
}

func (f *fakeAuthorReader) GetByID(_ context.Context, id uuid.UUID) (*authormodel.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return a, nil
}

type fakeCleaner struct {
	enqueued []string
}

func (f *fakeCleaner) EnqueueMetadataDelete(kind emodel.Kind, entityID uuid.UUID) error {
	f.enqueued = append(f.enqueued, string(kind)+":"+entityID.String())
	return nil
}

func strPtr(s string) *string { return &s }

func datePtr(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func fixture(t *testing.T) (book.Service, *fakeBookRepository, *fakeCleaner, uuid.UUID) {
	t.Helper()
	repo := newFakeBookRepository()
	authorID := uuid.New()
	authors := &fakeAuthorReader{authors: map[uuid.UUID]*authormodel.Author{
		authorID: {ID: authorID, Name: "Iain Banks", BornDate: datePtr("1954-02-16")},
	}}
	cleaner := &fakeCleaner{}
	return NewBookService(repo, authors, cleaner), repo, cleaner, authorID
}

func TestBookService_Create(t *testing.T) {
	svc, _, _, authorID := fixture(t)

	b, err := svc.Create(context.Background(), model.CreateBookRequest{
		Title:         "Consider Phlebas",
		PublishedDate: strPtr("1987-04-23"),
		AuthorID:      authorID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Consider Phlebas", b.Title)
	assert.Equal(t, authorID, b.AuthorID)
	assert.Equal(t, "Iain Banks", b.AuthorName)
}

func TestBookService_Create_UnknownAuthor(t *testing.T) {
	svc, _, _, _ := fixture(t)

	_, err := svc.Create(context.Background(), model.CreateBookRequest{
		Title:    "Orphaned Manuscript",
		AuthorID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, book.ErrAuthorNotFound)
}

func TestBookService_Create_PublishedBeforeAuthorBorn(t *testing.T) {
	svc, _, _, authorID := fixture(t)

	_, err := svc.Create(context.Background(), model.CreateBookRequest{
		Title:         "Impossible Debut",
		PublishedDate: strPtr("1950-01-01"),
		AuthorID:      authorID.String(),
	})
	assert.ErrorIs(t, err, validation.ErrPublishedBeforeBorn)
}

func TestBookService_Create_FuturePublishedDate(t *testing.T) {
	svc, _, _, authorID := fixture(t)

	future := time.Now().UTC().AddDate(1, 0, 0).Format(time.DateOnly)
	_, err := svc.Create(context.Background(), model.CreateBookRequest{
		Title:         "Unreleased",
		PublishedDate: &future,
		AuthorID:      authorID.String(),
	})
	assert.ErrorIs(t, err, validation.ErrDateInFuture)
}

func TestBookService_Update_RevalidatesChronology(t *testing.T) {
	svc, _, _, authorID := fixture(t)

	created, err := svc.Create(context.Background(), model.CreateBookRequest{
		Title:         "The Wasp Factory",
		PublishedDate: strPtr("1984-02-16"),
		AuthorID:      authorID.String(),
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, model.UpdateBookRequest{
		PublishedDate: strPtr("1940-01-01"),
	})
	assert.ErrorIs(t, err, validation.ErrPublishedBeforeBorn)
}

func TestBookService_Delete_EnqueuesMetadataCleanup(t *testing.T) {
	svc, _, cleaner, authorID := fixture(t)

	created, err := svc.Create(context.Background(), model.CreateBookRequest{
		Title:    "Ephemeral",
		AuthorID: authorID.String(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	require.Len(t, cleaner.enqueued, 1)
	assert.Equal(t, "book:"+created.ID.String(), cleaner.enqueued[0])
}

func TestBookService_ExportXLSX(t *testing.T) {
	svc, _, _, authorID := fixture(t)

	_, err := svc.Create(context.Background(), model.CreateBookRequest{
		Title:         "Use of Weapons",
		PublishedDate: strPtr("1990-09-01"),
		AuthorID:      authorID.String(),
	})
	require.NoError(t, err)

	data, err := svc.ExportXLSX(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Books")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Title", rows[0][1])
	assert.Equal(t, "Use of Weapons", rows[1][1])
	assert.Equal(t, "Iain Banks", rows[1][2])
}
