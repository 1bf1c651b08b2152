package domain

import "time"

// Review is a client's rating of the provider assigned to one of their
// requests.
type Review struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	RequestID  string    `json:"request_id" bson:"request_id"`
	ClientID   string    `json:"client_id" bson:"client_id"`
	ProviderID string    `json:"provider_id" bson:"provider_id"`
	Rating     int       `json:"rating" bson:"rating"`
	Comment    string    `json:"comment" bson:"comment"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}
