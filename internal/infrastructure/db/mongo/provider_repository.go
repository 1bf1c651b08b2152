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

const (
	collectionProviders  = "service_providers"
	collectionPortfolios = "portfolios"
	collectionDocuments  = "verification_documents"
)

// ProviderRepository spans the three provider-owned collections: the
// business profile, its portfolio entries, and its verification documents.
type ProviderRepository struct {
	profiles   *mongo.Collection
	portfolios *mongo.Collection
	documents  *mongo.Collection
}

func NewProviderRepository(db *mongo.Database) *ProviderRepository {
	return &ProviderRepository{
		profiles:   db.Collection(collectionProviders),
		portfolios: db.Collection(collectionPortfolios),
		documents:  db.Collection(collectionDocuments),
	}
}

func (r *ProviderRepository) CreateProfile(ctx context.Context, p *domain.ServiceProvider) (*domain.ServiceProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *p
	doc.ID = primitive.NewObjectID().Hex()
	if _, err := r.profiles.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProfileExists
		}
		return nil, err
	}
	return &doc, nil
}

func (r *ProviderRepository) UpdateProfile(ctx context.Context, p *domain.ServiceProvider) (*domain.ServiceProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.profiles.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProviderNotFound
	}
	return p, nil
}

func (r *ProviderRepository) FindProfileByID(ctx context.Context, id string) (*domain.ServiceProvider, error) {
	return r.findProfile(ctx, bson.M{"_id": id})
}

func (r *ProviderRepository) FindProfileByUserID(ctx context.Context, userID string) (*domain.ServiceProvider, error) {
	return r.findProfile(ctx, bson.M{"user_id": userID})
}

func (r *ProviderRepository) findProfile(ctx context.Context, filter bson.M) (*domain.ServiceProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.ServiceProvider
	if err := r.profiles.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProviderRepository) ListProfiles(ctx context.Context, page ports.PageInput) ([]*domain.ServiceProvider, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.profiles.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page.Page - 1) * page.Limit)).
		SetLimit(int64(page.Limit))
	cur, err := r.profiles.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var profiles []*domain.ServiceProvider
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *ProviderRepository) SetVerified(ctx context.Context, providerID string, verified bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.profiles.UpdateOne(ctx, bson.M{"_id": providerID},
		bson.M{"$set": bson.M{"is_verified": verified, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

func (r *ProviderRepository) CreatePortfolio(ctx context.Context, p *domain.Portfolio) (*domain.Portfolio, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *p
	doc.ID = primitive.NewObjectID().Hex()
	if _, err := r.portfolios.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *ProviderRepository) FindPortfolioByID(ctx context.Context, id string) (*domain.Portfolio, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Portfolio
	if err := r.portfolios.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPortfolioNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProviderRepository) ListPortfolios(ctx context.Context, providerID string, page ports.PageInput) ([]*domain.Portfolio, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"provider_id": providerID}
	total, err := r.portfolios.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page.Page - 1) * page.Limit)).
		SetLimit(int64(page.Limit))
	cur, err := r.portfolios.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var entries []*domain.Portfolio
	if err := cur.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *ProviderRepository) DeletePortfolio(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.portfolios.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPortfolioNotFound
	}
	return nil
}

func (r *ProviderRepository) CreateDocument(ctx context.Context, d *domain.VerificationDocument) (*domain.VerificationDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *d
	doc.ID = primitive.NewObjectID().Hex()
	if _, err := r.documents.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *ProviderRepository) FindDocumentByID(ctx context.Context, id string) (*domain.VerificationDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.VerificationDocument
	if err := r.documents.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *ProviderRepository) ListDocumentsByProvider(ctx context.Context, providerID string, page ports.PageInput) ([]*domain.VerificationDocument, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"provider_id": providerID}
	total, err := r.documents.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page.Page - 1) * page.Limit)).
		SetLimit(int64(page.Limit))
	cur, err := r.documents.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var docs []*domain.VerificationDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (r *ProviderRepository) UpdateDocumentStatus(ctx context.Context, id string, status domain.DocumentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.documents.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes across the three provider collections.
// One profile per user account is enforced at the database level.
func (r *ProviderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.profiles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := r.portfolios.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "created_at", Value: -1}},
	}); err != nil {
		return err
	}
	_, err := r.documents.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "status", Value: 1}},
	})
	return err
}
