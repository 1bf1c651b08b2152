package domain

import (
	"fmt"
	"time"
)

// ConnectionStatus represents the lifecycle state of a direct connection.
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "PENDING"
	ConnectionAccepted ConnectionStatus = "ACCEPTED"
	ConnectionRejected ConnectionStatus = "REJECTED"
)

// CanTransitionTo reports whether a connection may move from s to next.
// ACCEPTED and REJECTED are terminal.
func (s ConnectionStatus) CanTransitionTo(next ConnectionStatus) bool {
	return s == ConnectionPending && (next == ConnectionAccepted || next == ConnectionRejected)
}

// ParseConnectionStatus matches a normalized status string against the
// connection enumeration.
func ParseConnectionStatus(raw string) (ConnectionStatus, error) {
	switch ConnectionStatus(NormalizeStatus(raw)) {
	case ConnectionPending:
		return ConnectionPending, nil
	case ConnectionAccepted:
		return ConnectionAccepted, nil
	case ConnectionRejected:
		return ConnectionRejected, nil
	}
	return "", fmt.Errorf("%w: invalid connection status %q (normalized %q), must be one of PENDING, ACCEPTED, REJECTED",
		ErrValidation, raw, NormalizeStatus(raw))
}

// DirectConnection is a two-party engagement proposal between a client and a
// provider, independent of any service request.
type DirectConnection struct {
	ID           string           `json:"id" bson:"_id,omitempty"`
	ClientID     string           `json:"client_id" bson:"client_id"`
	ProviderID   string           `json:"provider_id" bson:"provider_id"`
	EventDetails string           `json:"event_details" bson:"event_details"`
	ProposedDate string           `json:"proposed_date" bson:"proposed_date"`
	Status       ConnectionStatus `json:"status" bson:"status"`
	CreatedAt    time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" bson:"updated_at"`
}
