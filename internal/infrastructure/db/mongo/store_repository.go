package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storerating/store-rating/internal/core/domain"
)

const storesCollection = "stores"

// StoreRepository persists stores in the stores collection.
type StoreRepository struct {
	col *mongo.Collection
}

func NewStoreRepository(db *mongo.Database) *StoreRepository {
	return &StoreRepository{col: db.Collection(storesCollection)}
}

type mongoStore struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email,omitempty"`
	Address       string             `bson:"address"`
	OwnerID       string             `bson:"owner_id,omitempty"`
	OverallRating *float64           `bson:"overall_rating"`
}

func (ms *mongoStore) toDomain() *domain.Store {
	return &domain.Store{
		ID:            ms.ID.Hex(),
		Name:          ms.Name,
		Email:         ms.Email,
		Address:       ms.Address,
		OwnerID:       ms.OwnerID,
		OverallRating: ms.OverallRating,
	}
}

// Create inserts a store. A duplicate name and address returns ErrStoreExists.
func (r *StoreRepository) Create(ctx context.Context, s *domain.Store) (*domain.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoStore{Name: s.Name, Email: s.Email, Address: s.Address, OwnerID: s.OwnerID}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrStoreExists
		}
		return nil, fmt.Errorf("insert store: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStoreNotFound
	}

	var ms mongoStore
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, err
	}
	return ms.toDomain(), nil
}

// List returns all stores ordered by name.
func (r *StoreRepository) List(ctx context.Context) ([]*domain.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []mongoStore
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.Store, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *StoreRepository) SetOverallRating(ctx context.Context, id string, avg *float64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrStoreNotFound
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"overall_rating": avg}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrStoreNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the stores collection.
func (r *StoreRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, storeIndexes())
	return err
}

// storeIndexes keeps one store per name and address; Create reports a
// collision as ErrStoreExists. The compound key also serves name lookups.
func storeIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}, {Key: "address", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}
}
