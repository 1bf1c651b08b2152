package ports

import (
	"context"

	"github.com/eventura/marketplace-system/internal/core/domain"
)

// CreateRequestInput carries the data needed to post a service request.
type CreateRequestInput struct {
	Title       string
	EventName   string
	EventDate   string
	Location    string
	ServiceType string
	Description string
	Budget      float64
}

// RequestService owns the ServiceRequest lifecycle.
type RequestService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateRequestInput) (*domain.ServiceRequest, error)
	Get(ctx context.Context, requestID string) (*domain.ServiceRequest, error)
	List(ctx context.Context, serviceType string, page PageInput) (Paged[*domain.ServiceRequest], error)
	ListByClient(ctx context.Context, actor domain.Actor, page PageInput) (Paged[*domain.ServiceRequest], error)
	// AssignProvider is single-shot: legal only from OPEN, and an assigned
	// provider is never cleared afterwards.
	AssignProvider(ctx context.Context, actor domain.Actor, requestID, providerID string) (*domain.ServiceRequest, error)
	UpdateBudget(ctx context.Context, actor domain.Actor, requestID string, budget float64) (*domain.ServiceRequest, error)
	// UpdateStatus accepts a free-text status, normalizes it, and enforces
	// the transition table.
	UpdateStatus(ctx context.Context, actor domain.Actor, requestID, rawStatus string) (*domain.ServiceRequest, error)
	// Delete soft-deletes for the owning client and hard-deletes (with
	// cascade) for admins.
	Delete(ctx context.Context, actor domain.Actor, requestID string) error
}
