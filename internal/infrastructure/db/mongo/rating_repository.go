package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storerating/store-rating/internal/core/domain"
)

const ratingsCollection = "ratings"

// RatingRepository persists one rating per store and user.
type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{col: db.Collection(ratingsCollection)}
}

type mongoRating struct {
	StoreID   string    `bson:"store_id"`
	UserID    string    `bson:"user_id"`
	Score     int       `bson:"score"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Upsert replaces the (store_id, user_id) rating in place.
func (r *RatingRepository) Upsert(ctx context.Context, rt *domain.Rating) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"store_id": rt.StoreID, "user_id": rt.UserID},
		bson.M{"$set": bson.M{"score": rt.Score, "updated_at": rt.UpdatedAt}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// ForUser maps store id to the score userID gave it.
func (r *RatingRepository) ForUser(ctx context.Context, userID string) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []mongoRating
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make(map[string]int, len(docs))
	for _, d := range docs {
		out[d.StoreID] = d.Score
	}
	return out, nil
}

// Average runs an aggregation over the store's ratings.
func (r *RatingRepository) Average(ctx context.Context, storeID string) (*float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"store_id": storeID}}},
		{{Key: "$group", Value: bson.M{"_id": "$store_id", "avg": bson.M{"$avg": "$score"}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0].Avg, nil
}

// List returns every rating, most recent first.
func (r *RatingRepository) List(ctx context.Context) ([]*domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []mongoRating
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.Rating, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.Rating{StoreID: d.StoreID, UserID: d.UserID, Score: d.Score, UpdatedAt: d.UpdatedAt})
	}
	return out, nil
}

func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes enforces one rating per user and store.
func (r *RatingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "store_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
