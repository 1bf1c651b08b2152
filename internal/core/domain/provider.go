package domain

import (
	"fmt"
	"time"
)

// ServiceProvider is the provider-owned business profile attached to a
// PROVIDER user.
type ServiceProvider struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	UserID       string    `json:"user_id" bson:"user_id"`
	CompanyName  string    `json:"company_name" bson:"company_name"`
	ServiceType  string    `json:"service_type" bson:"service_type"`
	Address      string    `json:"address" bson:"address"`
	MobileNumber string    `json:"mobile_number" bson:"mobile_number"`
	IsVerified   bool      `json:"is_verified" bson:"is_verified"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Portfolio is a single showcase entry on a provider profile.
type Portfolio struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	ProviderID  string    `json:"provider_id" bson:"provider_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	ImageURL    string    `json:"image_url" bson:"image_url"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// DocumentStatus is the moderation state of a verification document.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "PENDING"
	DocumentApproved DocumentStatus = "APPROVED"
	DocumentRejected DocumentStatus = "REJECTED"
)

// ParseDocumentStatus matches a normalized status string against the
// document enumeration.
func ParseDocumentStatus(raw string) (DocumentStatus, error) {
	switch DocumentStatus(NormalizeStatus(raw)) {
	case DocumentPending:
		return DocumentPending, nil
	case DocumentApproved:
		return DocumentApproved, nil
	case DocumentRejected:
		return DocumentRejected, nil
	}
	return "", fmt.Errorf("%w: invalid document status %q (normalized %q), must be one of PENDING, APPROVED, REJECTED",
		ErrValidation, raw, NormalizeStatus(raw))
}

// VerificationDocument is an identity or licence document awaiting admin
// moderation. The file itself lives in external storage; only the URL is
// kept here.
type VerificationDocument struct {
	ID           string         `json:"id" bson:"_id,omitempty"`
	ProviderID   string         `json:"provider_id" bson:"provider_id"`
	DocumentType string         `json:"document_type" bson:"document_type"`
	DocumentURL  string         `json:"document_url" bson:"document_url"`
	Status       DocumentStatus `json:"status" bson:"status"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updated_at"`
}
