package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

// RequestService implements the ServiceRequest lifecycle.
type RequestService struct {
	requests ports.RequestRepository
	users    ports.UserRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewRequestService(requests ports.RequestRepository, users ports.UserRepository, notifier ports.Notifier, log zerolog.Logger) *RequestService {
	return &RequestService{requests: requests, users: users, notifier: notifier, log: log}
}

func (s *RequestService) Create(ctx context.Context, actor domain.Actor, in ports.CreateRequestInput) (*domain.ServiceRequest, error) {
	if !domain.CanAct(actor, domain.Ownership{}, domain.ActionCreateRequest) {
		return nil, fmt.Errorf("create request: %w: only clients can create requests", domain.ErrUnauthorized)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("create request: %w: title is required", domain.ErrValidation)
	}
	if in.Budget <= 0 {
		return nil, fmt.Errorf("create request: %w: budget must be a positive value", domain.ErrValidation)
	}

	now := time.Now().UTC()
	created, err := s.requests.Create(ctx, &domain.ServiceRequest{
		ClientID:    actor.ID,
		Title:       in.Title,
		EventName:   in.EventName,
		EventDate:   in.EventDate,
		Location:    in.Location,
		ServiceType: in.ServiceType,
		Description: in.Description,
		Budget:      in.Budget,
		Status:      domain.RequestOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.log.Info().Str("request_id", created.ID).Str("client_id", actor.ID).Msg("service request created")
	return created, nil
}

func (s *RequestService) Get(ctx context.Context, requestID string) (*domain.ServiceRequest, error) {
	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	return r, nil
}

func (s *RequestService) List(ctx context.Context, serviceType string, page ports.PageInput) (ports.Paged[*domain.ServiceRequest], error) {
	page = page.Normalize()
	items, total, err := s.requests.List(ctx, ports.RequestFilter{ServiceType: serviceType, Page: page})
	if err != nil {
		return ports.Paged[*domain.ServiceRequest]{}, fmt.Errorf("list requests: %w", err)
	}
	return ports.NewPaged(items, total, page), nil
}

func (s *RequestService) ListByClient(ctx context.Context, actor domain.Actor, page ports.PageInput) (ports.Paged[*domain.ServiceRequest], error) {
	if actor.Role != domain.RoleClient {
		return ports.Paged[*domain.ServiceRequest]{}, fmt.Errorf("list client requests: %w: user is not a client", domain.ErrUnauthorized)
	}
	page = page.Normalize()
	items, total, err := s.requests.List(ctx, ports.RequestFilter{ClientID: actor.ID, Page: page})
	if err != nil {
		return ports.Paged[*domain.ServiceRequest]{}, fmt.Errorf("list client requests: %w", err)
	}
	return ports.NewPaged(items, total, page), nil
}

// AssignProvider moves an OPEN request to ASSIGNED and pins the provider.
// Assignment is single-shot: there is no path back to OPEN, so re-assignment
// is impossible by construction.
func (s *RequestService) AssignProvider(ctx context.Context, actor domain.Actor, requestID, providerID string) (*domain.ServiceRequest, error) {
	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("assign provider: %w", err)
	}

	if !domain.CanAct(actor, domain.Ownership{ClientID: r.ClientID}, domain.ActionAssignProvider) {
		return nil, fmt.Errorf("assign provider: %w: client does not own this request", domain.ErrUnauthorized)
	}

	provider, err := s.users.FindByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("assign provider: %w", err)
	}
	if provider.Role != domain.RoleProvider {
		return nil, fmt.Errorf("assign provider: %w: assigned user is not a provider", domain.ErrValidation)
	}

	if r.Status != domain.RequestOpen {
		return nil, fmt.Errorf("assign provider: %w: request must be OPEN, not %s", domain.ErrInvalidTransition, r.Status)
	}

	if err := s.requests.Assign(ctx, requestID, providerID); err != nil {
		return nil, fmt.Errorf("assign provider: %w", err)
	}

	r.AssignedProviderID = providerID
	r.Status = domain.RequestAssigned
	r.UpdatedAt = time.Now().UTC()

	client, err := s.users.FindByID(ctx, actor.ID)
	clientName := ""
	if err == nil {
		clientName = client.FullName()
	}
	s.notifier.Notify(ports.NotificationEvent{
		UserID:  providerID,
		Kind:    ports.KindRequestAssigned,
		Message: fmt.Sprintf("You have been assigned to the service request: %s by %s", r.Title, clientName),
		InApp:   true,
	})

	s.log.Info().Str("request_id", requestID).Str("provider_id", providerID).Msg("provider assigned")
	return r, nil
}

func (s *RequestService) UpdateBudget(ctx context.Context, actor domain.Actor, requestID string, budget float64) (*domain.ServiceRequest, error) {
	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("update budget: %w", err)
	}

	if !domain.CanAct(actor, domain.Ownership{ClientID: r.ClientID}, domain.ActionUpdateBudget) {
		return nil, fmt.Errorf("update budget: %w: client does not own this request", domain.ErrUnauthorized)
	}
	if budget <= 0 {
		return nil, fmt.Errorf("update budget: %w: budget must be a positive value", domain.ErrValidation)
	}
	if r.Status.Terminal() {
		return nil, fmt.Errorf("update budget: %w: cannot update budget for a request in %s status", domain.ErrInvalidTransition, r.Status)
	}

	if err := s.requests.UpdateBudget(ctx, requestID, budget); err != nil {
		return nil, fmt.Errorf("update budget: %w", err)
	}

	r.Budget = budget
	r.UpdatedAt = time.Now().UTC()

	if r.AssignedProviderID != "" {
		client, err := s.users.FindByID(ctx, actor.ID)
		clientName := ""
		if err == nil {
			clientName = client.FullName()
		}
		s.notifier.Notify(ports.NotificationEvent{
			UserID:  r.AssignedProviderID,
			Kind:    ports.KindBudgetUpdated,
			Message: fmt.Sprintf("The budget for the service request: %s has been updated to $%.2f by %s", r.Title, budget, clientName),
			InApp:   true,
		})
	}

	s.log.Info().Str("request_id", requestID).Float64("budget", budget).Msg("budget updated")
	return r, nil
}

// UpdateStatus enforces the transition table:
//
//	OPEN     -> CANCELLED            (owning client)
//	ASSIGNED -> COMPLETED            (assigned provider only)
//	ASSIGNED -> CANCELLED            (owning client or assigned provider)
//
// ASSIGNED as a target is refused here: without a provider in hand the
// assignment invariant cannot hold, so that transition only exists through
// AssignProvider. Terminal states reject every attempt.
func (s *RequestService) UpdateStatus(ctx context.Context, actor domain.Actor, requestID, rawStatus string) (*domain.ServiceRequest, error) {
	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}

	own := domain.Ownership{ClientID: r.ClientID, AssignedProviderID: r.AssignedProviderID}
	if !domain.CanAct(actor, own, domain.ActionUpdateRequestStatus) {
		return nil, fmt.Errorf("update request status: %w: user is not a party to this request", domain.ErrUnauthorized)
	}

	target, err := domain.ParseRequestStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}

	cur := r.Status
	if cur.Terminal() {
		return nil, fmt.Errorf("update request status: %w: cannot change status from %s to %s (original %q)",
			domain.ErrInvalidTransition, cur, target, rawStatus)
	}
	if target == domain.RequestAssigned {
		return nil, fmt.Errorf("update request status: %w: ASSIGNED is only reachable by assigning a provider", domain.ErrValidation)
	}
	if !cur.CanTransitionTo(target) {
		return nil, fmt.Errorf("update request status: %w: invalid transition from %s to %s (original %q)",
			domain.ErrInvalidTransition, cur, target, rawStatus)
	}
	if target == domain.RequestCompleted && actor.Role != domain.RoleProvider {
		return nil, fmt.Errorf("update request status: %w: only the assigned provider can mark a request as COMPLETED", domain.ErrUnauthorized)
	}

	if err := s.requests.UpdateStatus(ctx, requestID, cur, target); err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}

	r.Status = target
	r.UpdatedAt = time.Now().UTC()

	s.log.Info().
		Str("request_id", requestID).
		Str("from", string(cur)).
		Str("to", string(target)).
		Str("raw", rawStatus).
		Msg("request status updated")
	return r, nil
}

// Delete soft-deletes for the owning client and hard-deletes with cascade
// for admins. No other role may delete.
func (s *RequestService) Delete(ctx context.Context, actor domain.Actor, requestID string) error {
	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	own := domain.Ownership{ClientID: r.ClientID}
	switch {
	case domain.CanAct(actor, own, domain.ActionHardDeleteRequest):
		if err := s.requests.Delete(ctx, requestID); err != nil {
			return fmt.Errorf("delete request: %w", err)
		}
		s.log.Info().Str("request_id", requestID).Str("admin_id", actor.ID).Msg("request hard-deleted")
		return nil

	case domain.CanAct(actor, own, domain.ActionSoftDeleteRequest):
		if r.Status.Terminal() {
			return fmt.Errorf("delete request: %w: request already in terminal status %s", domain.ErrInvalidTransition, r.Status)
		}
		if err := s.requests.UpdateStatus(ctx, requestID, r.Status, domain.RequestDeleted); err != nil {
			return fmt.Errorf("delete request: %w", err)
		}
		s.log.Info().Str("request_id", requestID).Str("client_id", actor.ID).Msg("request soft-deleted")
		return nil
	}

	return fmt.Errorf("delete request: %w: not authorized to delete this request", domain.ErrUnauthorized)
}
