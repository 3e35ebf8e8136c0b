package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/domains/engagement"
	"bookcatalog-backend/internal/domains/engagement/model"
)

// fakeRepository is an in-memory engagement.Repository that mirrors the
// append-then-recompute behavior of the mongo implementation.
type fakeRepository struct {
	docs map[string]*model.Metadata
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{docs: make(map[string]*model.Metadata)}
}

func key(kind model.Kind, entityID string) string {
	return string(kind) + ":" + entityID
}

func (f *fakeRepository) AppendReview(_ context.Context, kind model.Kind, entityID string, review model.Review) (*model.Metadata, error) {
	doc, ok := f.docs[key(kind, entityID)]
	if !ok {
		doc = &model.Metadata{EntityID: entityID, Tags: []string{}}
		f.docs[key(kind, entityID)] = doc
	}
	doc.Reviews = append(doc.Reviews, review)
	agg := model.Recompute(doc.Reviews)
	doc.AverageRating = agg.AverageRating
	doc.TotalReviews = agg.TotalReviews
	return doc, nil
}

func (f *fakeRepository) IncrementViewCount(_ context.Context, kind model.Kind, entityID string) error {
	doc, ok := f.docs[key(kind, entityID)]
	if !ok {
		doc = &model.Metadata{EntityID: entityID, Tags: []string{}}
		f.docs[key(kind, entityID)] = doc
	}
	doc.ViewCount++
	return nil
}

func (f *fakeRepository) Get(_ context.Context, kind model.Kind, entityID string) (*model.Metadata, error) {
	return f.docs[key(kind, entityID)], nil
}

func (f *fakeRepository) Delete(_ context.Context, kind model.Kind, entityID string) error {
	delete(f.docs, key(kind, entityID))
	return nil
}

func (f *fakeRepository) ListEntityIDs(_ context.Context, kind model.Kind) ([]string, error) {
	var ids []string
	for k, doc := range f.docs {
		if k == key(kind, doc.EntityID) {
			ids = append(ids, doc.EntityID)
		}
	}
	return ids, nil
}

func (f *fakeRepository) ListAll(_ context.Context, kind model.Kind) ([]model.Metadata, error) {
	var docs []model.Metadata
	for k, doc := range f.docs {
		if k == key(kind, doc.EntityID) {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func (f *fakeRepository) SetAggregates(_ context.Context, kind model.Kind, entityID string, agg model.Aggregate) error {
	doc, ok := f.docs[key(kind, entityID)]
	if !ok {
		return nil
	}
	doc.AverageRating = agg.AverageRating
	doc.TotalReviews = agg.TotalReviews
	return nil
}

// fakeChecker knows a fixed set of existing entity ids.
type fakeChecker struct {
	existing map[uuid.UUID]bool
}

func (f *fakeChecker) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	return f.existing[id], nil
}

func newService(existingBooks ...uuid.UUID) (engagement.Service, *fakeRepository) {
	repo := newFakeRepository()
	books := &fakeChecker{existing: make(map[uuid.UUID]bool)}
	for _, id := range existingBooks {
		books.existing[id] = true
	}
	authors := &fakeChecker{existing: make(map[uuid.UUID]bool)}
	return NewEngagementService(repo, books, authors), repo
}

func TestAddReviewRecomputesAggregates(t *testing.T) {
	ctx := context.Background()
	bookID := uuid.New()
	userID := uuid.New()
	svc, _ := newService(bookID)

	ratings := []int{5, 3, 4}
	var metadata *model.Metadata
	for _, rating := range ratings {
		var err error
		metadata, err = svc.AddReview(ctx, model.KindBook, bookID, userID, "reader@example.com", model.AddReviewRequest{Rating: rating})
		require.NoError(t, err)
	}

	assert.Equal(t, 3, metadata.TotalReviews)
	assert.InDelta(t, 4.0, metadata.AverageRating, 1e-9)
	assert.Len(t, metadata.Reviews, 3)
	assert.Equal(t, userID.String(), metadata.Reviews[0].UserID)
	assert.Equal(t, "reader@example.com", metadata.Reviews[0].UserEmail)
}

func TestAddReviewUnknownEntity(t *testing.T) {
	svc, _ := newService()

	_, err := svc.AddReview(context.Background(), model.KindBook, uuid.New(), uuid.New(), "", model.AddReviewRequest{Rating: 4})
	assert.ErrorIs(t, err, engagement.ErrEntityNotFound)
}

func TestAddReviewInvalidRating(t *testing.T) {
	bookID := uuid.New()
	svc, _ := newService(bookID)

	for _, rating := range []int{0, 6, -2} {
		_, err := svc.AddReview(context.Background(), model.KindBook, bookID, uuid.New(), "", model.AddReviewRequest{Rating: rating})
		assert.Error(t, err, "rating %d must be rejected", rating)
	}
}

func TestRecordViewIncrementsByOne(t *testing.T) {
	ctx := context.Background()
	bookID := uuid.New()
	svc, _ := newService(bookID)

	for want := int64(1); want <= 3; want++ {
		svc.RecordView(ctx, model.KindBook, bookID)

		metadata, err := svc.GetMetadata(ctx, model.KindBook, bookID)
		require.NoError(t, err)
		require.NotNil(t, metadata)
		assert.Equal(t, want, metadata.ViewCount)
	}
}

func TestGetMetadataLazy(t *testing.T) {
	svc, _ := newService()

	metadata, err := svc.GetMetadata(context.Background(), model.KindBook, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, metadata)
}

func TestSweepOrphans(t *testing.T) {
	ctx := context.Background()
	keptID := uuid.New()
	orphanID := uuid.New()

	svc, repo := newService(keptID)
	_, err := repo.AppendReview(ctx, model.KindBook, keptID.String(), model.Review{Rating: 5})
	require.NoError(t, err)
	_, err = repo.AppendReview(ctx, model.KindBook, orphanID.String(), model.Review{Rating: 2})
	require.NoError(t, err)

	removed, err := svc.SweepOrphans(ctx, model.KindBook)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	kept, err := svc.GetMetadata(ctx, model.KindBook, keptID)
	require.NoError(t, err)
	assert.NotNil(t, kept)

	orphan, err := svc.GetMetadata(ctx, model.KindBook, orphanID)
	require.NoError(t, err)
	assert.Nil(t, orphan)
}

func TestReconcileAggregatesRepairsDrift(t *testing.T) {
	ctx := context.Background()
	bookID := uuid.New()
	svc, repo := newService(bookID)

	doc, err := repo.AppendReview(ctx, model.KindBook, bookID.String(), model.Review{Rating: 5})
	require.NoError(t, err)
	_, err = repo.AppendReview(ctx, model.KindBook, bookID.String(), model.Review{Rating: 3})
	require.NoError(t, err)

	// Introduce drift behind the service's back.
	doc.AverageRating = 1.0
	doc.TotalReviews = 7

	repaired, err := svc.ReconcileAggregates(ctx, model.KindBook)
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)

	fixed, err := svc.GetMetadata(ctx, model.KindBook, bookID)
	require.NoError(t, err)
	assert.Equal(t, 2, fixed.TotalReviews)
	assert.InDelta(t, 4.0, fixed.AverageRating, 1e-9)
}
