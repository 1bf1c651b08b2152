package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

const collectionPitches = "pitches"

type PitchRepository struct {
	col *mongo.Collection
}

func NewPitchRepository(db *mongo.Database) *PitchRepository {
	return &PitchRepository{col: db.Collection(collectionPitches)}
}

func (r *PitchRepository) Create(ctx context.Context, p *domain.Pitch) (*domain.Pitch, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *p
	doc.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *PitchRepository) FindByID(ctx context.Context, id string) (*domain.Pitch, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Pitch
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPitchNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PitchRepository) ListByProvider(ctx context.Context, providerID string, page ports.PageInput) ([]*domain.Pitch, int64, error) {
	return r.list(ctx, bson.M{"provider_id": providerID}, page)
}

func (r *PitchRepository) ListByRequest(ctx context.Context, requestID string, page ports.PageInput) ([]*domain.Pitch, int64, error) {
	return r.list(ctx, bson.M{"request_id": requestID}, page)
}

func (r *PitchRepository) list(ctx context.Context, filter bson.M, page ports.PageInput) ([]*domain.Pitch, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page.Page - 1) * page.Limit)).
		SetLimit(int64(page.Limit))
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var pitches []*domain.Pitch
	if err := cur.All(ctx, &pitches); err != nil {
		return nil, 0, err
	}
	return pitches, total, nil
}

func (r *PitchRepository) UpdateStatus(ctx context.Context, id string, from, to domain.PitchStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if err := r.col.FindOne(ctx, bson.M{"_id": id}).Err(); errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrPitchNotFound
		}
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *PitchRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPitchNotFound
	}
	return nil
}

func (r *PitchRepository) CountPendingByProvider(ctx context.Context, providerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"provider_id": providerID, "status": domain.PitchPending})
}

// EnsureIndexes creates the lookup indexes on pitches.
func (r *PitchRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "request_id", Value: 1}}},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
