package ports

import (
	"context"

	"github.com/eventura/marketplace-system/internal/core/domain"
)

// CreateReviewInput carries a client's rating of an assigned provider.
type CreateReviewInput struct {
	RequestID string
	Rating    int
	Comment   string
}

// ReviewService owns provider reviews.
type ReviewService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateReviewInput) (*domain.Review, error)
	Get(ctx context.Context, reviewID string) (*domain.Review, error)
	ListForProvider(ctx context.Context, providerID string, page PageInput) (Paged[*domain.Review], error)
}
