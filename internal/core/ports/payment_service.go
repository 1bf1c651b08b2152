package ports

import (
	"context"

	"github.com/eventura/marketplace-system/internal/core/domain"
)

// CreatePaymentInput carries the data needed to open a payment.
type CreatePaymentInput struct {
	RequestID string
	Amount    float64
}

// PaymentService owns the Payment lifecycle.
type PaymentService interface {
	// Create requires the request to have an assigned provider; that provider
	// is copied onto the payment and not re-validated later.
	Create(ctx context.Context, actor domain.Actor, in CreatePaymentInput) (*domain.Payment, error)
	// Get is visible to the paying client and the receiving provider only.
	Get(ctx context.Context, actor domain.Actor, paymentID string) (*domain.Payment, error)
	ListByClient(ctx context.Context, actor domain.Actor, page PageInput) (Paged[*domain.Payment], error)
	ListByProvider(ctx context.Context, actor domain.Actor, page PageInput) (Paged[*domain.Payment], error)
	// CurrentForRequest returns the most recently created payment of a
	// request, visible to either party of the request.
	CurrentForRequest(ctx context.Context, actor domain.Actor, requestID string) (*domain.Payment, error)
	// UpdateStatus is restricted to the paying client; PENDING is the only
	// state a transition may leave from.
	UpdateStatus(ctx context.Context, actor domain.Actor, paymentID, rawStatus string) (*domain.Payment, error)
}
