package domain

import "errors"

// Lifecycle failure taxonomy. Services wrap these with context via
// fmt.Errorf("op: %w", err); the HTTP layer maps them with errors.Is.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnauthorized      = errors.New("actor not authorized for this action")
	ErrValidation        = errors.New("invalid input")

	ErrUserNotFound         = errors.New("user not found")
	ErrRequestNotFound      = errors.New("service request not found")
	ErrPitchNotFound        = errors.New("pitch not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrConnectionNotFound   = errors.New("connection not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrReviewNotFound       = errors.New("review not found")
	ErrProviderNotFound     = errors.New("provider profile not found")
	ErrPortfolioNotFound    = errors.New("portfolio not found")
	ErrDocumentNotFound     = errors.New("verification document not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrMobileExists       = errors.New("mobile number already exists")
	ErrProfileExists      = errors.New("provider profile already exists")
	// ErrUserReferenced blocks a hard user delete while live requests,
	// pitches or payments still point at the account.
	ErrUserReferenced = errors.New("user still referenced by active entities")
)
