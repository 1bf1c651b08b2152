package ports

import (
	"context"

	"github.com/eventura/marketplace-system/internal/core/domain"
)

// CreatePitchInput carries a provider's bid against a request.
type CreatePitchInput struct {
	RequestID     string
	Message       string
	ProposedPrice float64
}

// PitchService owns the Pitch lifecycle.
type PitchService interface {
	Create(ctx context.Context, actor domain.Actor, in CreatePitchInput) (*domain.Pitch, error)
	Get(ctx context.Context, pitchID string) (*domain.Pitch, error)
	ListMine(ctx context.Context, actor domain.Actor, page PageInput) (Paged[*domain.Pitch], error)
	ListForRequest(ctx context.Context, requestID string, page PageInput) (Paged[*domain.Pitch], error)
	// UpdateStatus marks a pitch WIN or LOSE; only the client owning the
	// parent request may call, regardless of the request's own status.
	UpdateStatus(ctx context.Context, actor domain.Actor, pitchID, rawStatus string) (*domain.Pitch, error)
	// Withdraw deletes the pitch; allowed to the submitting provider in any
	// pitch status.
	Withdraw(ctx context.Context, actor domain.Actor, pitchID string) error
}
