package ports

import (
	"context"

	"github.com/eventura/marketplace-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByMobile(ctx context.Context, mobile string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateAccountStatus(ctx context.Context, id string, status domain.AccountStatus) error
	// Delete removes the account row entirely (admin hard delete).
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page PageInput) ([]*domain.User, int64, error)
}

// RequestFilter carries the query parameters for listing service requests.
type RequestFilter struct {
	ClientID    string // empty = no filter
	ServiceType string // empty = no filter
	Status      domain.RequestStatus
	Page        PageInput
}

// RequestRepository defines persistence operations for service requests.
// The status-changing methods are conditional writes: they match on the
// expected current status so a concurrent transition cannot be overwritten
// from a stale read. A matched-on-status miss surfaces as
// domain.ErrInvalidTransition; a missing document as domain.ErrRequestNotFound.
type RequestRepository interface {
	Create(ctx context.Context, r *domain.ServiceRequest) (*domain.ServiceRequest, error)
	FindByID(ctx context.Context, id string) (*domain.ServiceRequest, error)
	List(ctx context.Context, f RequestFilter) ([]*domain.ServiceRequest, int64, error)
	// Assign sets the provider and moves OPEN -> ASSIGNED in one write.
	Assign(ctx context.Context, requestID, providerID string) error
	UpdateBudget(ctx context.Context, requestID string, budget float64) error
	UpdateStatus(ctx context.Context, requestID string, from, to domain.RequestStatus) error
	// Delete removes the request and cascades to its pitches and payments.
	Delete(ctx context.Context, requestID string) error
	CountLiveByClient(ctx context.Context, clientID string) (int64, error)
	CountLiveByProvider(ctx context.Context, providerID string) (int64, error)
}

// PitchRepository defines persistence operations for pitches.
type PitchRepository interface {
	Create(ctx context.Context, p *domain.Pitch) (*domain.Pitch, error)
	FindByID(ctx context.Context, id string) (*domain.Pitch, error)
	ListByProvider(ctx context.Context, providerID string, page PageInput) ([]*domain.Pitch, int64, error)
	ListByRequest(ctx context.Context, requestID string, page PageInput) ([]*domain.Pitch, int64, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.PitchStatus) error
	Delete(ctx context.Context, id string) error
	CountPendingByProvider(ctx context.Context, providerID string) (int64, error)
}

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	ListByClient(ctx context.Context, clientID string, page PageInput) ([]*domain.Payment, int64, error)
	ListByProvider(ctx context.Context, providerID string, page PageInput) ([]*domain.Payment, int64, error)
	// FindCurrentByRequest returns the most recently created payment for the
	// request.
	FindCurrentByRequest(ctx context.Context, requestID string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.PaymentStatus) error
	CountPendingByUser(ctx context.Context, userID string) (int64, error)
}

// ConnectionRepository defines persistence operations for direct connections.
type ConnectionRepository interface {
	Create(ctx context.Context, c *domain.DirectConnection) (*domain.DirectConnection, error)
	FindByID(ctx context.Context, id string) (*domain.DirectConnection, error)
	ListByClient(ctx context.Context, clientID string, page PageInput) ([]*domain.DirectConnection, int64, error)
	ListByProvider(ctx context.Context, providerID string, page PageInput) ([]*domain.DirectConnection, int64, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.ConnectionStatus) error
	Delete(ctx context.Context, id string) error
}

// NotificationRepository defines persistence operations for the in-app inbox.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByID(ctx context.Context, id string) (*domain.Notification, error)
	// ListByUser optionally filters on the read flag when isRead is non-nil.
	ListByUser(ctx context.Context, userID string, isRead *bool, page PageInput) ([]*domain.Notification, int64, error)
	MarkRead(ctx context.Context, id string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) (*domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	ListByProvider(ctx context.Context, providerID string, page PageInput) ([]*domain.Review, int64, error)
}

// ProviderRepository defines persistence operations for provider profiles,
// their portfolios, and their verification documents.
type ProviderRepository interface {
	CreateProfile(ctx context.Context, p *domain.ServiceProvider) (*domain.ServiceProvider, error)
	UpdateProfile(ctx context.Context, p *domain.ServiceProvider) (*domain.ServiceProvider, error)
	FindProfileByID(ctx context.Context, id string) (*domain.ServiceProvider, error)
	FindProfileByUserID(ctx context.Context, userID string) (*domain.ServiceProvider, error)
	ListProfiles(ctx context.Context, page PageInput) ([]*domain.ServiceProvider, int64, error)
	SetVerified(ctx context.Context, providerID string, verified bool) error

	CreatePortfolio(ctx context.Context, p *domain.Portfolio) (*domain.Portfolio, error)
	FindPortfolioByID(ctx context.Context, id string) (*domain.Portfolio, error)
	ListPortfolios(ctx context.Context, providerID string, page PageInput) ([]*domain.Portfolio, int64, error)
	DeletePortfolio(ctx context.Context, id string) error

	CreateDocument(ctx context.Context, d *domain.VerificationDocument) (*domain.VerificationDocument, error)
	FindDocumentByID(ctx context.Context, id string) (*domain.VerificationDocument, error)
	ListDocumentsByProvider(ctx context.Context, providerID string, page PageInput) ([]*domain.VerificationDocument, int64, error)
	UpdateDocumentStatus(ctx context.Context, id string, status domain.DocumentStatus) error
}
