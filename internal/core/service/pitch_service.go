package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

// PitchService implements the Pitch lifecycle.
type PitchService struct {
	pitches  ports.PitchRepository
	requests ports.RequestRepository
	users    ports.UserRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewPitchService(pitches ports.PitchRepository, requests ports.RequestRepository, users ports.UserRepository, notifier ports.Notifier, log zerolog.Logger) *PitchService {
	return &PitchService{pitches: pitches, requests: requests, users: users, notifier: notifier, log: log}
}

func (s *PitchService) Create(ctx context.Context, actor domain.Actor, in ports.CreatePitchInput) (*domain.Pitch, error) {
	if !domain.CanAct(actor, domain.Ownership{}, domain.ActionCreatePitch) {
		return nil, fmt.Errorf("create pitch: %w: only providers can create pitches", domain.ErrUnauthorized)
	}
	if in.ProposedPrice <= 0 {
		return nil, fmt.Errorf("create pitch: %w: proposed price must be a positive value", domain.ErrValidation)
	}

	r, err := s.requests.FindByID(ctx, in.RequestID)
	if err != nil {
		return nil, fmt.Errorf("create pitch: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.pitches.Create(ctx, &domain.Pitch{
		RequestID:     r.ID,
		ProviderID:    actor.ID,
		Message:       in.Message,
		ProposedPrice: in.ProposedPrice,
		Status:        domain.PitchPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("create pitch: %w", err)
	}

	providerName := ""
	if provider, err := s.users.FindByID(ctx, actor.ID); err == nil {
		providerName = provider.FullName()
	}
	s.notifier.Notify(ports.NotificationEvent{
		UserID:  r.ClientID,
		Kind:    ports.KindPitchReceived,
		Message: fmt.Sprintf("New pitch from %s for your service request: %s", providerName, r.Title),
		InApp:   true,
	})

	s.log.Info().Str("pitch_id", created.ID).Str("request_id", r.ID).Str("provider_id", actor.ID).Msg("pitch created")
	return created, nil
}

func (s *PitchService) Get(ctx context.Context, pitchID string) (*domain.Pitch, error) {
	p, err := s.pitches.FindByID(ctx, pitchID)
	if err != nil {
		return nil, fmt.Errorf("get pitch: %w", err)
	}
	return p, nil
}

func (s *PitchService) ListMine(ctx context.Context, actor domain.Actor, page ports.PageInput) (ports.Paged[*domain.Pitch], error) {
	if actor.Role != domain.RoleProvider {
		return ports.Paged[*domain.Pitch]{}, fmt.Errorf("list pitches: %w: only providers can view their own pitches", domain.ErrUnauthorized)
	}
	page = page.Normalize()
	items, total, err := s.pitches.ListByProvider(ctx, actor.ID, page)
	if err != nil {
		return ports.Paged[*domain.Pitch]{}, fmt.Errorf("list pitches: %w", err)
	}
	return ports.NewPaged(items, total, page), nil
}

func (s *PitchService) ListForRequest(ctx context.Context, requestID string, page ports.PageInput) (ports.Paged[*domain.Pitch], error) {
	if _, err := s.requests.FindByID(ctx, requestID); err != nil {
		return ports.Paged[*domain.Pitch]{}, fmt.Errorf("list pitches for request: %w", err)
	}
	page = page.Normalize()
	items, total, err := s.pitches.ListByRequest(ctx, requestID, page)
	if err != nil {
		return ports.Paged[*domain.Pitch]{}, fmt.Errorf("list pitches for request: %w", err)
	}
	return ports.NewPaged(items, total, page), nil
}

// UpdateStatus marks a pitch WIN or LOSE. Only the client owning the parent
// request may call; the request's own status is deliberately not consulted,
// and no cross-pitch exclusivity exists: two pitches on one request can
// both be decided independently.
func (s *PitchService) UpdateStatus(ctx context.Context, actor domain.Actor, pitchID, rawStatus string) (*domain.Pitch, error) {
	p, err := s.pitches.FindByID(ctx, pitchID)
	if err != nil {
		return nil, fmt.Errorf("update pitch status: %w", err)
	}
	r, err := s.requests.FindByID(ctx, p.RequestID)
	if err != nil {
		return nil, fmt.Errorf("update pitch status: %w", err)
	}

	if !domain.CanAct(actor, domain.Ownership{ClientID: r.ClientID}, domain.ActionUpdatePitchStatus) {
		return nil, fmt.Errorf("update pitch status: %w: only the client who created the service request can update pitch status", domain.ErrUnauthorized)
	}

	target, err := domain.ParsePitchStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("update pitch status: %w", err)
	}
	if !p.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("update pitch status: %w: invalid transition from %s to %s (original %q)",
			domain.ErrInvalidTransition, p.Status, target, rawStatus)
	}

	if err := s.pitches.UpdateStatus(ctx, pitchID, p.Status, target); err != nil {
		return nil, fmt.Errorf("update pitch status: %w", err)
	}

	from := p.Status
	p.Status = target
	p.UpdatedAt = time.Now().UTC()

	s.notifier.Notify(ports.NotificationEvent{
		UserID:  p.ProviderID,
		Kind:    ports.KindPitchStatus,
		Message: fmt.Sprintf("Your pitch for service request: %s has been marked as %s", r.Title, target),
		InApp:   true,
	})

	s.log.Info().Str("pitch_id", pitchID).Str("from", string(from)).Str("to", string(target)).Msg("pitch status updated")
	return p, nil
}

// Withdraw deletes a pitch. The submitting provider may withdraw in any
// pitch status, decided or not.
func (s *PitchService) Withdraw(ctx context.Context, actor domain.Actor, pitchID string) error {
	p, err := s.pitches.FindByID(ctx, pitchID)
	if err != nil {
		return fmt.Errorf("withdraw pitch: %w", err)
	}

	if !domain.CanAct(actor, domain.Ownership{ProviderID: p.ProviderID}, domain.ActionWithdrawPitch) {
		return fmt.Errorf("withdraw pitch: %w: not authorized to delete this pitch", domain.ErrUnauthorized)
	}

	r, err := s.requests.FindByID(ctx, p.RequestID)
	if err != nil {
		return fmt.Errorf("withdraw pitch: %w", err)
	}

	if err := s.pitches.Delete(ctx, pitchID); err != nil {
		return fmt.Errorf("withdraw pitch: %w", err)
	}

	providerName := ""
	if provider, err := s.users.FindByID(ctx, actor.ID); err == nil {
		providerName = provider.FullName()
	}
	s.notifier.Notify(ports.NotificationEvent{
		UserID:  r.ClientID,
		Kind:    ports.KindPitchWithdrawn,
		Message: fmt.Sprintf("Pitch from %s for your service request: %s has been withdrawn", providerName, r.Title),
		InApp:   true,
	})

	s.log.Info().Str("pitch_id", pitchID).Str("provider_id", actor.ID).Msg("pitch withdrawn")
	return nil
}
