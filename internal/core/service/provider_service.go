package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

// ProviderService owns provider profiles, portfolios, and verification
// documents.
type ProviderService struct {
	providers ports.ProviderRepository
	notifier  ports.Notifier
	log       zerolog.Logger
}

func NewProviderService(providers ports.ProviderRepository, notifier ports.Notifier, log zerolog.Logger) *ProviderService {
	return &ProviderService{providers: providers, notifier: notifier, log: log}
}

func (s *ProviderService) CreateProfile(ctx context.Context, actor domain.Actor, in ports.ProviderProfileInput) (*domain.ServiceProvider, error) {
	if actor.Role != domain.RoleProvider {
		return nil, fmt.Errorf("create profile: %w: provider role required", domain.ErrUnauthorized)
	}
	if strings.TrimSpace(in.CompanyName) == "" || strings.TrimSpace(in.ServiceType) == "" {
		return nil, fmt.Errorf("create profile: %w: company name and service type are required", domain.ErrValidation)
	}
	if _, err := s.providers.FindProfileByUserID(ctx, actor.ID); err == nil {
		return nil, fmt.Errorf("create profile: %w", domain.ErrProfileExists)
	}

	now := time.Now().UTC()
	created, err := s.providers.CreateProfile(ctx, &domain.ServiceProvider{
		UserID:       actor.ID,
		CompanyName:  strings.TrimSpace(in.CompanyName),
		ServiceType:  strings.TrimSpace(in.ServiceType),
		Address:      strings.TrimSpace(in.Address),
		MobileNumber: strings.TrimSpace(in.MobileNumber),
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.log.Info().Str("provider_id", created.ID).Str("user_id", actor.ID).Msg("provider profile created")
	return created, nil
}

func (s *ProviderService) UpdateProfile(ctx context.Context, actor domain.Actor, in ports.ProviderProfileInput) (*domain.ServiceProvider, error) {
	p, err := s.providers.FindProfileByUserID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if v := strings.TrimSpace(in.CompanyName); v != "" {
		p.CompanyName = v
	}
	if v := strings.TrimSpace(in.ServiceType); v != "" {
		p.ServiceType = v
	}
	if v := strings.TrimSpace(in.Address); v != "" {
		p.Address = v
	}
	if v := strings.TrimSpace(in.MobileNumber); v != "" {
		p.MobileNumber = v
	}
	p.UpdatedAt = time.Now().UTC()

	updated, err := s.providers.UpdateProfile(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.Info().Str("provider_id", updated.ID).Msg("provider profile updated")
	return updated, nil
}

func (s *ProviderService) GetOwnProfile(ctx context.Context, actor domain.Actor) (*domain.ServiceProvider, error) {
	p, err := s.providers.FindProfileByUserID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("get own profile: %w", err)
	}
	return p, nil
}

func (s *ProviderService) GetProfile(ctx context.Context, providerID string) (*domain.ServiceProvider, error) {
	p, err := s.providers.FindProfileByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *ProviderService) ListProfiles(ctx context.Context, page ports.PageInput) (ports.Paged[*domain.ServiceProvider], error) {
	page = page.Normalize()
	items, total, err := s.providers.ListProfiles(ctx, page)
	if err != nil {
		return ports.Paged[*domain.ServiceProvider]{}, fmt.Errorf("list profiles: %w", err)
	}
	return ports.NewPaged(items, total, page), nil
}

func (s *ProviderService) CreatePortfolio(ctx context.Context, actor domain.Actor, in ports.PortfolioInput) (*domain.Portfolio, error) {
	if !domain.CanAct(actor, domain.Ownership{}, domain.ActionCreatePortfolio) {
		return nil, fmt.Errorf("create portfolio: %w: provider role required", domain.ErrUnauthorized)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("create portfolio: %w: title is required", domain.ErrValidation)
	}

	profile, err := s.providers.FindProfileByUserID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("create portfolio: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.providers.CreatePortfolio(ctx, &domain.Portfolio{
		ProviderID:  profile.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create portfolio: %w", err)
	}

	s.log.Info().Str("portfolio_id", created.ID).Str("provider_id", profile.ID).Msg("portfolio entry created")
	return created, nil
}

func (s *ProviderService) ListPortfolios(ctx context.Context, providerID string, page ports.PageInput) (ports.Paged[*domain.Portfolio], error) {
	page = page.Normalize()
	items, total, err := s.providers.ListPortfolios(ctx, providerID, page)
	if err != nil {
		return ports.Paged[*domain.Portfolio]{}, fmt.Errorf("list portfolios: %w", err)
	}
	return ports.NewPaged(items, total, page), nil
}

func (s *ProviderService) DeletePortfolio(ctx context.Context, actor domain.Actor, portfolioID string) error {
	entry, err := s.providers.FindPortfolioByID(ctx, portfolioID)
	if err != nil {
		return fmt.Errorf("delete portfolio: %w", err)
	}
	profile, err := s.providers.FindProfileByUserID(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("delete portfolio: %w", err)
	}
	if !domain.CanAct(actor, domain.Ownership{ProviderID: profile.UserID}, domain.ActionDeletePortfolio) || entry.ProviderID != profile.ID {
		return fmt.Errorf("delete portfolio: %w: portfolio belongs to another provider", domain.ErrUnauthorized)
	}
	if err := s.providers.DeletePortfolio(ctx, portfolioID); err != nil {
		return fmt.Errorf("delete portfolio: %w", err)
	}
	s.log.Info().Str("portfolio_id", portfolioID).Msg("portfolio entry deleted")
	return nil
}

func (s *ProviderService) UploadDocument(ctx context.Context, actor domain.Actor, in ports.DocumentInput) (*domain.VerificationDocument, error) {
	if !domain.CanAct(actor, domain.Ownership{}, domain.ActionUploadDocument) {
		return nil, fmt.Errorf("upload document: %w: provider role required", domain.ErrUnauthorized)
	}
	if strings.TrimSpace(in.DocumentType) == "" || strings.TrimSpace(in.DocumentURL) == "" {
		return nil, fmt.Errorf("upload document: %w: document type and url are required", domain.ErrValidation)
	}

	profile, err := s.providers.FindProfileByUserID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("upload document: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.providers.CreateDocument(ctx, &domain.VerificationDocument{
		ProviderID:   profile.ID,
		DocumentType: strings.TrimSpace(in.DocumentType),
		DocumentURL:  strings.TrimSpace(in.DocumentURL),
		Status:       domain.DocumentPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("upload document: %w", err)
	}

	s.log.Info().Str("document_id", created.ID).Str("provider_id", profile.ID).Msg("verification document uploaded")
	return created, nil
}

func (s *ProviderService) ListDocuments(ctx context.Context, actor domain.Actor, page ports.PageInput) (ports.Paged[*domain.VerificationDocument], error) {
	profile, err := s.providers.FindProfileByUserID(ctx, actor.ID)
	if err != nil {
		return ports.Paged[*domain.VerificationDocument]{}, fmt.Errorf("list documents: %w", err)
	}
	page = page.Normalize()
	items, total, err := s.providers.ListDocumentsByProvider(ctx, profile.ID, page)
	if err != nil {
		return ports.Paged[*domain.VerificationDocument]{}, fmt.Errorf("list documents: %w", err)
	}
	return ports.NewPaged(items, total, page), nil
}

// ModerateDocument is the admin review step. Approving a document marks the
// owning provider verified; a rejection leaves the verified flag alone.
func (s *ProviderService) ModerateDocument(ctx context.Context, actor domain.Actor, documentID, rawStatus string) (*domain.VerificationDocument, error) {
	if !domain.CanAct(actor, domain.Ownership{}, domain.ActionModerateDocument) {
		return nil, fmt.Errorf("moderate document: %w: admin role required", domain.ErrUnauthorized)
	}

	target, err := domain.ParseDocumentStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("moderate document: %w", err)
	}
	if target == domain.DocumentPending {
		return nil, fmt.Errorf("moderate document: %w: moderation must approve or reject", domain.ErrValidation)
	}

	doc, err := s.providers.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("moderate document: %w", err)
	}
	if doc.Status != domain.DocumentPending {
		return nil, fmt.Errorf("moderate document: %w: document already %s", domain.ErrInvalidTransition, doc.Status)
	}

	if err := s.providers.UpdateDocumentStatus(ctx, documentID, target); err != nil {
		return nil, fmt.Errorf("moderate document: %w", err)
	}
	doc.Status = target
	doc.UpdatedAt = time.Now().UTC()

	if target == domain.DocumentApproved {
		if err := s.providers.SetVerified(ctx, doc.ProviderID, true); err != nil {
			return nil, fmt.Errorf("moderate document: %w", err)
		}
	}

	if profile, err := s.providers.FindProfileByID(ctx, doc.ProviderID); err == nil {
		s.notifier.Notify(ports.NotificationEvent{
			UserID:  profile.UserID,
			Kind:    ports.KindDocumentModerated,
			Message: fmt.Sprintf("Your verification document (%s) has been %s", doc.DocumentType, strings.ToLower(string(target))),
			InApp:   true,
		})
	}

	s.log.Info().Str("document_id", documentID).Str("status", string(target)).Msg("verification document moderated")
	return doc, nil
}
