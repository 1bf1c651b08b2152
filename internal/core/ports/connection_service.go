package ports

import (
	"context"

	"github.com/eventura/marketplace-system/internal/core/domain"
)

// CreateConnectionInput carries a client's direct engagement proposal.
type CreateConnectionInput struct {
	ProviderID   string
	EventDetails string
	ProposedDate string
}

// ConnectionService owns the DirectConnection lifecycle.
type ConnectionService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateConnectionInput) (*domain.DirectConnection, error)
	// Get is visible to either party of the connection.
	Get(ctx context.Context, actor domain.Actor, connectionID string) (*domain.DirectConnection, error)
	ListByClient(ctx context.Context, actor domain.Actor, page PageInput) (Paged[*domain.DirectConnection], error)
	ListByProvider(ctx context.Context, actor domain.Actor, page PageInput) (Paged[*domain.DirectConnection], error)
	// Accept and Reject are restricted to the named provider and legal only
	// from PENDING.
	Accept(ctx context.Context, actor domain.Actor, connectionID string) (*domain.DirectConnection, error)
	Reject(ctx context.Context, actor domain.Actor, connectionID string) (*domain.DirectConnection, error)
	// Delete is restricted to the owning client, in any status.
	Delete(ctx context.Context, actor domain.Actor, connectionID string) error
}
