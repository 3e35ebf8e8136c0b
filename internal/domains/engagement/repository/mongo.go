package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookcatalog-backend/internal/domains/engagement"
	"bookcatalog-backend/internal/domains/engagement/model"
)

// Collection names in the engagement database.
const (
	BookMetadataCollection   = "book_metadata"
	AuthorMetadataCollection = "author_metadata"
)

// mongoRepository implements engagement.Repository on two collections,
// one per entity kind.
type mongoRepository struct {
	books   *mongo.Collection
	authors *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) engagement.Repository {
	return &mongoRepository{
		books:   db.Collection(BookMetadataCollection),
		authors: db.Collection(AuthorMetadataCollection),
	}
}

func (r *mongoRepository) collection(kind model.Kind) *mongo.Collection {
	if kind == model.KindAuthor {
		return r.authors
	}
	return r.books
}

// AppendReview pushes the review and recomputes the aggregates in one
// pipeline update. The whole change lands in a single document write, so a
// concurrent reader sees either the old or the new state, never a mix.
func (r *mongoRepository) AppendReview(ctx context.Context, kind model.Kind, entityID string, review model.Review) (*model.Metadata, error) {
	filter := bson.M{"entity_id": entityID}

	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.M{
			"reviews": bson.M{"$concatArrays": bson.A{
				bson.M{"$ifNull": bson.A{"$reviews", bson.A{}}},
				bson.A{bson.M{"$literal": review}},
			}},
			"tags":       bson.M{"$ifNull": bson.A{"$tags", bson.A{}}},
			"view_count": bson.M{"$ifNull": bson.A{"$view_count", 0}},
		}}},
		bson.D{{Key: "$set", Value: bson.M{
			"total_reviews":  bson.M{"$size": "$reviews"},
			"average_rating": bson.M{"$avg": "$reviews.rating"},
		}}},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var updated model.Metadata
	err := r.collection(kind).FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("append review for %s %s: %w", kind, entityID, err)
	}

	return &updated, nil
}

func (r *mongoRepository) IncrementViewCount(ctx context.Context, kind model.Kind, entityID string) error {
	filter := bson.M{"entity_id": entityID}
	update := bson.M{
		"$inc": bson.M{"view_count": 1},
		"$setOnInsert": bson.M{
			"reviews":        bson.A{},
			"tags":           bson.A{},
			"average_rating": 0.0,
			"total_reviews":  0,
		},
	}

	_, err := r.collection(kind).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("increment view count for %s %s: %w", kind, entityID, err)
	}
	return nil
}

func (r *mongoRepository) Get(ctx context.Context, kind model.Kind, entityID string) (*model.Metadata, error) {
	var metadata model.Metadata
	err := r.collection(kind).FindOne(ctx, bson.M{"entity_id": entityID}).Decode(&metadata)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Lazily created: no document yet is a valid state.
			return nil, nil
		}
		return nil, fmt.Errorf("get metadata for %s %s: %w", kind, entityID, err)
	}
	return &metadata, nil
}

func (r *mongoRepository) Delete(ctx context.Context, kind model.Kind, entityID string) error {
	_, err := r.collection(kind).DeleteOne(ctx, bson.M{"entity_id": entityID})
	if err != nil {
		return fmt.Errorf("delete metadata for %s %s: %w", kind, entityID, err)
	}
	return nil
}

func (r *mongoRepository) ListEntityIDs(ctx context.Context, kind model.Kind) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"entity_id": 1})
	cursor, err := r.collection(kind).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list %s metadata ids: %w", kind, err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			EntityID string `bson:"entity_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s metadata id: %w", kind, err)
		}
		ids = append(ids, doc.EntityID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s metadata ids: %w", kind, err)
	}

	return ids, nil
}

func (r *mongoRepository) ListAll(ctx context.Context, kind model.Kind) ([]model.Metadata, error) {
	cursor, err := r.collection(kind).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list %s metadata: %w", kind, err)
	}
	defer cursor.Close(ctx)

	var docs []model.Metadata
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", kind, err)
	}
	return docs, nil
}

func (r *mongoRepository) SetAggregates(ctx context.Context, kind model.Kind, entityID string, agg model.Aggregate) error {
	update := bson.M{"$set": bson.M{
		"average_rating": agg.AverageRating,
		"total_reviews":  agg.TotalReviews,
	}}

	_, err := r.collection(kind).UpdateOne(ctx, bson.M{"entity_id": entityID}, update)
	if err != nil {
		return fmt.Errorf("set aggregates for %s %s: %w", kind, entityID, err)
	}
	return nil
}
