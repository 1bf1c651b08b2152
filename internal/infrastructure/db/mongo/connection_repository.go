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

const collectionConnections = "direct_connections"

type ConnectionRepository struct {
	col *mongo.Collection
}

func NewConnectionRepository(db *mongo.Database) *ConnectionRepository {
	return &ConnectionRepository{col: db.Collection(collectionConnections)}
}

func (r *ConnectionRepository) Create(ctx context.Context, c *domain.DirectConnection) (*domain.DirectConnection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *c
	doc.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *ConnectionRepository) FindByID(ctx context.Context, id string) (*domain.DirectConnection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.DirectConnection
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ConnectionRepository) ListByClient(ctx context.Context, clientID string, page ports.PageInput) ([]*domain.DirectConnection, int64, error) {
	return r.list(ctx, bson.M{"client_id": clientID}, page)
}

func (r *ConnectionRepository) ListByProvider(ctx context.Context, providerID string, page ports.PageInput) ([]*domain.DirectConnection, int64, error) {
	return r.list(ctx, bson.M{"provider_id": providerID}, page)
}

func (r *ConnectionRepository) list(ctx context.Context, filter bson.M, page ports.PageInput) ([]*domain.DirectConnection, int64, error) {
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

	var connections []*domain.DirectConnection
	if err := cur.All(ctx, &connections); err != nil {
		return nil, 0, err
	}
	return connections, total, nil
}

func (r *ConnectionRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ConnectionStatus) error {
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
			return domain.ErrConnectionNotFound
		}
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *ConnectionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrConnectionNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes on direct connections.
func (r *ConnectionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
