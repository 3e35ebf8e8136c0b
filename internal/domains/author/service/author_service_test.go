package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/domains/author"
	"bookcatalog-backend/internal/domains/author/model"
	emodel "bookcatalog-backend/internal/domains/engagement/model"
	"bookcatalog-backend/internal/shared/validation"
)

type fakeAuthorRepository struct {
	authors map[uuid.UUID]*model.Author
}

func newFakeAuthorRepository() *fakeAuthorRepository {
	return &fakeAuthorRepository{authors: map[uuid.UUID]*model.Author{}}
}

func (f *fakeAuthorRepository) Create(_ context.Context, a *model.Author) error {
	stored := *a
	f.authors[a.ID] = &stored
	return nil
}

func (f *fakeAuthorRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAuthorRepository) GetAll(_ context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	matched := []model.Author{}
	for _, a := range f.authors {
		if filter.Name != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(filter.Name)) {
			continue
		}
		matched = append(matched, *a)
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeAuthorRepository) Update(_ context.Context, a *model.Author) error {
	if _, ok := f.authors[a.ID]; !ok {
		return author.ErrAuthorNotFound
	}
	stored := *a
	f.authors[a.ID] = &stored
	return nil
}

func (f *fakeAuthorRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.authors[id]; !ok {
		return author.ErrAuthorNotFound
	}
	delete(f.authors, id)
	return nil
}

func (f *fakeAuthorRepository) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.authors[id]
	return ok, nil
}

type fakeBookCounter struct {
	counts map[uuid.UUID]int64
}

func (f *fakeBookCounter) CountByAuthor(_ context.Context, authorID uuid.UUID) (int64, error) {
	return f.counts[authorID], nil
}

type fakeCleaner struct {
	enqueued []string
}

func (f *fakeCleaner) EnqueueMetadataDelete(kind emodel.Kind, entityID uuid.UUID) error {
	f.enqueued = append(f.enqueued, string(kind)+":"+entityID.String())
	return nil
}

func strPtr(s string) *string { return &s }

func TestAuthorService_Create(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepository(), &fakeBookCounter{counts: map[uuid.UUID]int64{}}, &fakeCleaner{})

	a, err := svc.Create(context.Background(), model.CreateAuthorRequest{
		Name:     "Ursula K. Le Guin",
		BornDate: strPtr("1929-10-21"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ursula K. Le Guin", a.Name)
	require.NotNil(t, a.BornDate)
	assert.Equal(t, 1929, a.BornDate.Year())
	assert.NotEqual(t, uuid.Nil, a.ID)
}

func TestAuthorService_Create_MissingName(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepository(), &fakeBookCounter{counts: map[uuid.UUID]int64{}}, &fakeCleaner{})

	_, err := svc.Create(context.Background(), model.CreateAuthorRequest{})
	assert.Error(t, err)
}

func TestAuthorService_Create_FutureBornDate(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepository(), &fakeBookCounter{counts: map[uuid.UUID]int64{}}, &fakeCleaner{})

	future := time.Now().UTC().AddDate(1, 0, 0).Format(time.DateOnly)
	_, err := svc.Create(context.Background(), model.CreateAuthorRequest{
		Name:     "Time Traveller",
		BornDate: &future,
	})
	assert.ErrorIs(t, err, validation.ErrDateInFuture)
}

func TestAuthorService_Update_PartialFields(t *testing.T) {
	repo := newFakeAuthorRepository()
	svc := NewAuthorService(repo, &fakeBookCounter{counts: map[uuid.UUID]int64{}}, &fakeCleaner{})

	created, err := svc.Create(context.Background(), model.CreateAuthorRequest{
		Name:     "Octavia Butler",
		BornDate: strPtr("1947-06-22"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, model.UpdateAuthorRequest{
		Biography: strPtr("American science fiction author."),
	})
	require.NoError(t, err)

	assert.Equal(t, "Octavia Butler", updated.Name)
	require.NotNil(t, updated.Biography)
	assert.Equal(t, "American science fiction author.", *updated.Biography)
	require.NotNil(t, updated.BornDate)
	assert.Equal(t, 1947, updated.BornDate.Year())
}

func TestAuthorService_Update_NotFound(t *testing.T) {
	svc := NewAuthorService(newFakeAuthorRepository(), &fakeBookCounter{counts: map[uuid.UUID]int64{}}, &fakeCleaner{})

	_, err := svc.Update(context.Background(), uuid.New(), model.UpdateAuthorRequest{Name: strPtr("Nobody")})
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestAuthorService_Delete_BlockedByBooks(t *testing.T) {
	repo := newFakeAuthorRepository()
	counter := &fakeBookCounter{counts: map[uuid.UUID]int64{}}
	cleaner := &fakeCleaner{}
	svc := NewAuthorService(repo, counter, cleaner)

	created, err := svc.Create(context.Background(), model.CreateAuthorRequest{Name: "Prolific Author"})
	require.NoError(t, err)
	counter.counts[created.ID] = 3

	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, author.ErrAuthorHasBooks)
	assert.Empty(t, cleaner.enqueued)

	_, err = svc.GetByID(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestAuthorService_Delete_EnqueuesMetadataCleanup(t *testing.T) {
	repo := newFakeAuthorRepository()
	cleaner := &fakeCleaner{}
	svc := NewAuthorService(repo, &fakeBookCounter{counts: map[uuid.UUID]int64{}}, cleaner)

	created, err := svc.Create(context.Background(), model.CreateAuthorRequest{Name: "Bookless Author"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	require.Len(t, cleaner.enqueued, 1)
	assert.Equal(t, "author:"+created.ID.String(), cleaner.enqueued[0])
}
