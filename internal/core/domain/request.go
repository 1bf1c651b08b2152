package domain

import (
	"fmt"
	"strings"
	"time"
)

// RequestStatus represents the lifecycle state of a service request.
type RequestStatus string

const (
	RequestOpen      RequestStatus = "OPEN"
	RequestAssigned  RequestStatus = "ASSIGNED"
	RequestCompleted RequestStatus = "COMPLETED"
	RequestCancelled RequestStatus = "CANCELLED"
	RequestDeleted   RequestStatus = "DELETED"
)

// requestTransitions defines the targets reachable through the status-update
// action. DELETED is deliberately absent: it is only reachable through the
// delete action, which carries its own guard.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestOpen:     {RequestAssigned, RequestCancelled},
	RequestAssigned: {RequestCompleted, RequestCancelled},
}

// CanTransitionTo reports whether the status-update action may move a request
// from s to next.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further status mutation is legal.
func (s RequestStatus) Terminal() bool {
	return s == RequestCompleted || s == RequestCancelled || s == RequestDeleted
}

// NormalizeStatus strips every non-letter character and uppercases the rest.
// Callers send values like "Cancelled!" or "  assigned  "; normalization is
// idempotent, so an already-canonical string passes through unchanged.
func NormalizeStatus(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseRequestStatus normalizes raw and matches it against the closed
// enumeration. Unparseable input is a validation failure carrying both the
// original and normalized forms.
func ParseRequestStatus(raw string) (RequestStatus, error) {
	switch RequestStatus(NormalizeStatus(raw)) {
	case RequestOpen:
		return RequestOpen, nil
	case RequestAssigned:
		return RequestAssigned, nil
	case RequestCompleted:
		return RequestCompleted, nil
	case RequestCancelled:
		return RequestCancelled, nil
	case RequestDeleted:
		return RequestDeleted, nil
	}
	return "", fmt.Errorf("%w: invalid status %q (normalized %q), must be one of OPEN, ASSIGNED, COMPLETED, CANCELLED, DELETED",
		ErrValidation, raw, NormalizeStatus(raw))
}

// ServiceRequest is a client's posted need for an event service.
// AssignedProviderID is non-empty iff status is ASSIGNED or COMPLETED; once
// set it is never cleared, even on cancellation.
type ServiceRequest struct {
	ID                 string        `json:"id" bson:"_id,omitempty"`
	ClientID           string        `json:"client_id" bson:"client_id"`
	AssignedProviderID string        `json:"assigned_provider_id,omitempty" bson:"assigned_provider_id,omitempty"`
	Title              string        `json:"title" bson:"title"`
	EventName          string        `json:"event_name" bson:"event_name"`
	EventDate          string        `json:"event_date" bson:"event_date"`
	Location           string        `json:"location" bson:"location"`
	ServiceType        string        `json:"service_type" bson:"service_type"`
	Description        string        `json:"description" bson:"description"`
	Budget             float64       `json:"budget" bson:"budget"`
	Status             RequestStatus `json:"status" bson:"status"`
	CreatedAt          time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" bson:"updated_at"`
}
