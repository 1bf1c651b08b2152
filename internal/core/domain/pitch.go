package domain

import (
	"fmt"
	"time"
)

// PitchStatus represents the lifecycle state of a pitch.
type PitchStatus string

const (
	PitchPending PitchStatus = "PENDING"
	PitchWin     PitchStatus = "WIN"
	PitchLose    PitchStatus = "LOSE"
)

// CanTransitionTo reports whether a pitch may move from s to next.
// WIN and LOSE are terminal.
func (s PitchStatus) CanTransitionTo(next PitchStatus) bool {
	return s == PitchPending && (next == PitchWin || next == PitchLose)
}

// ParsePitchStatus matches a normalized status string against the pitch
// enumeration, using the same normalization as request statuses.
func ParsePitchStatus(raw string) (PitchStatus, error) {
	switch PitchStatus(NormalizeStatus(raw)) {
	case PitchPending:
		return PitchPending, nil
	case PitchWin:
		return PitchWin, nil
	case PitchLose:
		return PitchLose, nil
	}
	return "", fmt.Errorf("%w: invalid pitch status %q (normalized %q), must be one of PENDING, WIN, LOSE",
		ErrValidation, raw, NormalizeStatus(raw))
}

// Pitch is a provider's bid against a service request. Several pitches per
// (provider, request) pair are allowed.
type Pitch struct {
	ID            string      `json:"id" bson:"_id,omitempty"`
	RequestID     string      `json:"request_id" bson:"request_id"`
	ProviderID    string      `json:"provider_id" bson:"provider_id"`
	Message       string      `json:"message" bson:"message"`
	ProposedPrice float64     `json:"proposed_price" bson:"proposed_price"`
	Status        PitchStatus `json:"status" bson:"status"`
	CreatedAt     time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" bson:"updated_at"`
}
