package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is fixed at registration and never changes afterwards.
type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole validates a role string supplied at registration.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleClient:
		return RoleClient, nil
	case RoleProvider:
		return RoleProvider, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("%w: role must be one of CLIENT, PROVIDER, ADMIN", ErrValidation)
}

// AccountStatus is the moderation state of a user account.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
	AccountDeleted   AccountStatus = "DELETED"
)

// ParseAccountStatus accepts the loose strings admin tooling sends: the raw
// value may arrive wrapped in JSON quotes and in any case.
func ParseAccountStatus(raw string) (AccountStatus, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	switch AccountStatus(strings.ToUpper(s)) {
	case AccountActive:
		return AccountActive, nil
	case AccountSuspended:
		return AccountSuspended, nil
	case AccountDeleted:
		return AccountDeleted, nil
	}
	return "", fmt.Errorf("%w: invalid account status %q, must be one of ACTIVE, SUSPENDED, DELETED", ErrValidation, raw)
}

// User models an actor in the marketplace.
type User struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	FirstName     string        `json:"first_name" bson:"first_name"`
	LastName      string        `json:"last_name" bson:"last_name"`
	Email         string        `json:"email" bson:"email"`
	MobileNumber  string        `json:"mobile_number,omitempty" bson:"mobile_number,omitempty"`
	PasswordHash  string        `json:"-" bson:"password_hash"`
	Role          Role          `json:"role" bson:"role"`
	AccountStatus AccountStatus `json:"account_status" bson:"account_status"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at"`
}

// FullName is used when composing notification messages.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
