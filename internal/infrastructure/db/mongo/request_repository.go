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

const collectionRequests = "service_requests"

// RequestRepository persists service requests. Status-changing writes are
// conditional on the expected current status, so a transition raced by
// another writer surfaces as domain.ErrInvalidTransition instead of silently
// overwriting.
type RequestRepository struct {
	col *mongo.Collection
	// pitch and payment collections are touched only by the cascade delete.
	pitches  *mongo.Collection
	payments *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{
		col:      db.Collection(collectionRequests),
		pitches:  db.Collection(collectionPitches),
		payments: db.Collection(collectionPayments),
	}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *req
	doc.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.ServiceRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) List(ctx context.Context, f ports.RequestFilter) ([]*domain.ServiceRequest, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.ClientID != "" {
		filter["client_id"] = f.ClientID
	}
	if f.ServiceType != "" {
		filter["service_type"] = f.ServiceType
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	page := f.Page
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page.Page - 1) * page.Limit)).
		SetLimit(int64(page.Limit))
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var requests []*domain.ServiceRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// Assign pins the provider and moves OPEN -> ASSIGNED in a single conditional
// write.
func (r *RequestRepository) Assign(ctx context.Context, requestID, providerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": requestID, "status": domain.RequestOpen},
		bson.M{"$set": bson.M{
			"assigned_provider_id": providerID,
			"status":               domain.RequestAssigned,
			"updated_at":           time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return r.missReason(ctx, requestID)
	}
	return nil
}

func (r *RequestRepository) UpdateBudget(ctx context.Context, requestID string, budget float64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": requestID}, bson.M{"$set": bson.M{
		"budget":     budget,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, requestID string, from, to domain.RequestStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": requestID, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return r.missReason(ctx, requestID)
	}
	return nil
}

// missReason distinguishes a vanished document from a raced status.
func (r *RequestRepository) missReason(ctx context.Context, requestID string) error {
	if err := r.col.FindOne(ctx, bson.M{"_id": requestID}).Err(); errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrRequestNotFound
	}
	return domain.ErrInvalidTransition
}

// Delete removes the request and cascades to its pitches and payments.
func (r *RequestRepository) Delete(ctx context.Context, requestID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": requestID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrRequestNotFound
	}

	if _, err := r.pitches.DeleteMany(ctx, bson.M{"request_id": requestID}); err != nil {
		return err
	}
	if _, err := r.payments.DeleteMany(ctx, bson.M{"request_id": requestID}); err != nil {
		return err
	}
	return nil
}

var liveStatuses = bson.A{domain.RequestOpen, domain.RequestAssigned}

func (r *RequestRepository) CountLiveByClient(ctx context.Context, clientID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"client_id": clientID, "status": bson.M{"$in": liveStatuses}})
}

func (r *RequestRepository) CountLiveByProvider(ctx context.Context, providerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"assigned_provider_id": providerID, "status": bson.M{"$in": liveStatuses}})
}

// EnsureIndexes creates the lookup indexes on service requests.
func (r *RequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_provider_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "service_type", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
