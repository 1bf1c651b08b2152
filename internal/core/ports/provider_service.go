package ports

import (
	"context"

	"github.com/eventura/marketplace-system/internal/core/domain"
)

// ProviderProfileInput carries a provider's business profile fields.
type ProviderProfileInput struct {
	CompanyName  string
	ServiceType  string
	Address      string
	MobileNumber string
}

// PortfolioInput carries one portfolio entry.
type PortfolioInput struct {
	Title       string
	Description string
	ImageURL    string
}

// DocumentInput carries a verification document reference; the file itself
// is stored externally.
type DocumentInput struct {
	DocumentType string
	DocumentURL  string
}

// ProviderService owns provider profiles, portfolios, and verification
// documents.
type ProviderService interface {
	CreateProfile(ctx context.Context, actor domain.Actor, in ProviderProfileInput) (*domain.ServiceProvider, error)
	UpdateProfile(ctx context.Context, actor domain.Actor, in ProviderProfileInput) (*domain.ServiceProvider, error)
	GetOwnProfile(ctx context.Context, actor domain.Actor) (*domain.ServiceProvider, error)
	GetProfile(ctx context.Context, providerID string) (*domain.ServiceProvider, error)
	ListProfiles(ctx context.Context, page PageInput) (Paged[*domain.ServiceProvider], error)

	CreatePortfolio(ctx context.Context, actor domain.Actor, in PortfolioInput) (*domain.Portfolio, error)
	ListPortfolios(ctx context.Context, providerID string, page PageInput) (Paged[*domain.Portfolio], error)
	DeletePortfolio(ctx context.Context, actor domain.Actor, portfolioID string) error

	UploadDocument(ctx context.Context, actor domain.Actor, in DocumentInput) (*domain.VerificationDocument, error)
	ListDocuments(ctx context.Context, actor domain.Actor, page PageInput) (Paged[*domain.VerificationDocument], error)
	// ModerateDocument is the admin review step; approving a document marks
	// the owning provider verified.
	ModerateDocument(ctx context.Context, actor domain.Actor, documentID, rawStatus string) (*domain.VerificationDocument, error)
}
