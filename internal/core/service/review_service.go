package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

// ReviewService implements provider reviews.
type ReviewService struct {
	reviews  ports.ReviewRepository
	requests ports.RequestRepository
	log      zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, requests ports.RequestRepository, log zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, requests: requests, log: log}
}

// Create records a rating for the provider assigned to a completed request.
func (s *ReviewService) Create(ctx context.Context, actor domain.Actor, in ports.CreateReviewInput) (*domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("create review: %w: rating must be between 1 and 5", domain.ErrValidation)
	}

	r, err := s.requests.FindByID(ctx, in.RequestID)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	if !domain.CanAct(actor, domain.Ownership{ClientID: r.ClientID}, domain.ActionCreateReview) {
		return nil, fmt.Errorf("create review: %w: only the requesting client can review", domain.ErrUnauthorized)
	}
	if r.Status != domain.RequestCompleted {
		return nil, fmt.Errorf("create review: %w: request is not completed", domain.ErrValidation)
	}
	if r.AssignedProviderID == "" {
		return nil, fmt.Errorf("create review: %w: request has no assigned provider", domain.ErrValidation)
	}

	created, err := s.reviews.Create(ctx, &domain.Review{
		RequestID:  r.ID,
		ClientID:   actor.ID,
		ProviderID: r.AssignedProviderID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info().
		Str("review_id", created.ID).
		Str("request_id", r.ID).
		Str("provider_id", r.AssignedProviderID).
		Int("rating", in.Rating).
		Msg("review created")
	return created, nil
}

func (s *ReviewService) Get(ctx context.Context, reviewID string) (*domain.Review, error) {
	rv, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return rv, nil
}

func (s *ReviewService) ListForProvider(ctx context.Context, providerID string, page ports.PageInput) (ports.Paged[*domain.Review], error) {
	page = page.Normalize()
	items, total, err := s.reviews.ListByProvider(ctx, providerID, page)
	if err != nil {
		return ports.Paged[*domain.Review]{}, fmt.Errorf("list provider reviews: %w", err)
	}
	return ports.NewPaged(items, total, page), nil
}
