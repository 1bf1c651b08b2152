package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes of every collection. Called once at
// startup; index creation is idempotent on the server side.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for name, ensure := range map[string]func(context.Context) error{
		"users":              NewUserRepository(db).EnsureIndexes,
		"service_requests":   NewRequestRepository(db).EnsureIndexes,
		"pitches":            NewPitchRepository(db).EnsureIndexes,
		"payments":           NewPaymentRepository(db).EnsureIndexes,
		"direct_connections": NewConnectionRepository(db).EnsureIndexes,
		"notifications":      NewNotificationRepository(db).EnsureIndexes,
		"reviews":            NewReviewRepository(db).EnsureIndexes,
		"providers":          NewProviderRepository(db).EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", name, err)
		}
	}
	return nil
}
