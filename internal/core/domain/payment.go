package domain

import (
	"fmt"
	"time"
)

// PaymentStatus represents the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// CanTransitionTo reports whether a payment may move from s to next.
// COMPLETED and FAILED are terminal; a re-completion of an already settled
// payment is rejected rather than silently replayed.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return s == PaymentPending && (next == PaymentCompleted || next == PaymentFailed)
}

// ParsePaymentStatus matches a normalized status string against the payment
// enumeration.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch PaymentStatus(NormalizeStatus(raw)) {
	case PaymentPending:
		return PaymentPending, nil
	case PaymentCompleted:
		return PaymentCompleted, nil
	case PaymentFailed:
		return PaymentFailed, nil
	}
	return "", fmt.Errorf("%w: invalid payment status %q (normalized %q), must be one of PENDING, COMPLETED, FAILED",
		ErrValidation, raw, NormalizeStatus(raw))
}

// Payment records money moving from a request's client to its assigned
// provider. ProviderID is copied from the request's assignment at creation
// time and not re-validated later. A request may accumulate several payments;
// the current one is the most recently created.
type Payment struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	RequestID     string        `json:"request_id" bson:"request_id"`
	ClientID      string        `json:"client_id" bson:"client_id"`
	ProviderID    string        `json:"provider_id" bson:"provider_id"`
	Amount        float64       `json:"amount" bson:"amount"`
	Status        PaymentStatus `json:"status" bson:"status"`
	TransactionID string        `json:"transaction_id" bson:"transaction_id"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at"`
}
