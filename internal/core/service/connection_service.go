package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

// ConnectionService implements the DirectConnection lifecycle: a client
// proposing an engagement to one provider outside the pitch flow.
type ConnectionService struct {
	connections ports.ConnectionRepository
	users       ports.UserRepository
	notifier    ports.Notifier
	log         zerolog.Logger
}

func NewConnectionService(connections ports.ConnectionRepository, users ports.UserRepository, notifier ports.Notifier, log zerolog.Logger) *ConnectionService {
	return &ConnectionService{connections: connections, users: users, notifier: notifier, log: log}
}

func (s *ConnectionService) Create(ctx context.Context, actor domain.Actor, in ports.CreateConnectionInput) (*domain.DirectConnection, error) {
	if !domain.CanAct(actor, domain.Ownership{}, domain.ActionCreateConnection) {
		return nil, fmt.Errorf("create connection: %w: only clients can request direct connections", domain.ErrUnauthorized)
	}

	provider, err := s.users.FindByID(ctx, in.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}
	if provider.Role != domain.RoleProvider {
		return nil, fmt.Errorf("create connection: %w: target user is not a provider", domain.ErrValidation)
	}

	now := time.Now().UTC()
	created, err := s.connections.Create(ctx, &domain.DirectConnection{
		ClientID:     actor.ID,
		ProviderID:   provider.ID,
		EventDetails: in.EventDetails,
		ProposedDate: in.ProposedDate,
		Status:       domain.ConnectionPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}

	clientName := ""
	if client, err := s.users.FindByID(ctx, actor.ID); err == nil {
		clientName = client.FullName()
	}
	s.notifier.Notify(ports.NotificationEvent{
		UserID:  provider.ID,
		Kind:    ports.KindConnectionRequested,
		Message: fmt.Sprintf("You have a new direct connection request from %s", clientName),
		InApp:   true,
		Mail: &ports.MailMessage{
			To:      provider.Email,
			Subject: "New Direct Connection Request",
			Body:    fmt.Sprintf("Hello %s,\n\n%s would like to connect with you directly.\n\nEvent details: %s\nProposed date: %s\n\nLog in to respond to the request.", provider.FullName(), clientName, in.EventDetails, in.ProposedDate),
		},
	})

	s.log.Info().Str("connection_id", created.ID).Str("provider_id", provider.ID).Msg("direct connection requested")
	return created, nil
}

func (s *ConnectionService) Get(ctx context.Context, actor domain.Actor, connectionID string) (*domain.DirectConnection, error) {
	c, err := s.connections.FindByID(ctx, connectionID)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	if c.ClientID != actor.ID && c.ProviderID != actor.ID {
		return nil, fmt.Errorf("get connection: %w: not authorized to view this connection", domain.ErrUnauthorized)
	}
	return c, nil
}

func (s *ConnectionService) ListByClient(ctx context.Context, actor domain.Actor, page ports.PageInput) (ports.Paged[*domain.DirectConnection], error) {
	page = page.Normalize()
	items, total, err := s.connections.ListByClient(ctx, actor.ID, page)
	if err != nil {
		return ports.Paged[*domain.DirectConnection]{}, fmt.Errorf("list client connections: %w", err)
	}
	return ports.NewPaged(items, total, page), nil
}

func (s *ConnectionService) ListByProvider(ctx context.Context, actor domain.Actor, page ports.PageInput) (ports.Paged[*domain.DirectConnection], error) {
	page = page.Normalize()
	items, total, err := s.connections.ListByProvider(ctx, actor.ID, page)
	if err != nil {
		return ports.Paged[*domain.DirectConnection]{}, fmt.Errorf("list provider connections: %w", err)
	}
	return ports.NewPaged(items, total, page), nil
}

func (s *ConnectionService) Accept(ctx context.Context, actor domain.Actor, connectionID string) (*domain.DirectConnection, error) {
	return s.respond(ctx, actor, connectionID, domain.ConnectionAccepted, ports.KindConnectionAccepted, "accepted")
}

func (s *ConnectionService) Reject(ctx context.Context, actor domain.Actor, connectionID string) (*domain.DirectConnection, error) {
	return s.respond(ctx, actor, connectionID, domain.ConnectionRejected, ports.KindConnectionRejected, "rejected")
}

func (s *ConnectionService) respond(ctx context.Context, actor domain.Actor, connectionID string, target domain.ConnectionStatus, kind ports.NotificationKind, verb string) (*domain.DirectConnection, error) {
	c, err := s.connections.FindByID(ctx, connectionID)
	if err != nil {
		return nil, fmt.Errorf("respond to connection: %w", err)
	}

	if !domain.CanAct(actor, domain.Ownership{ProviderID: c.ProviderID}, domain.ActionRespondConnection) {
		return nil, fmt.Errorf("respond to connection: %w: only the requested provider can respond", domain.ErrUnauthorized)
	}
	if !c.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("respond to connection: %w: invalid transition from %s to %s",
			domain.ErrInvalidTransition, c.Status, target)
	}

	if err := s.connections.UpdateStatus(ctx, connectionID, c.Status, target); err != nil {
		return nil, fmt.Errorf("respond to connection: %w", err)
	}
	c.Status = target
	c.UpdatedAt = time.Now().UTC()

	providerName := ""
	if provider, err := s.users.FindByID(ctx, c.ProviderID); err == nil {
		providerName = provider.FullName()
	}
	event := ports.NotificationEvent{
		UserID:  c.ClientID,
		Kind:    kind,
		Message: fmt.Sprintf("%s has %s your direct connection request", providerName, verb),
		InApp:   true,
	}
	if client, err := s.users.FindByID(ctx, c.ClientID); err == nil {
		event.Mail = &ports.MailMessage{
			To:      client.Email,
			Subject: fmt.Sprintf("Direct Connection Request %s", verb),
			Body:    fmt.Sprintf("Hello %s,\n\n%s has %s your direct connection request.\n\nEvent details: %s\nProposed date: %s\n\nLog in to view the details.", client.FullName(), providerName, verb, c.EventDetails, c.ProposedDate),
		}
	}
	s.notifier.Notify(event)

	s.log.Info().Str("connection_id", connectionID).Str("status", string(target)).Msg("direct connection responded")
	return c, nil
}

// Delete removes a connection in any status; only the owning client may do so.
func (s *ConnectionService) Delete(ctx context.Context, actor domain.Actor, connectionID string) error {
	c, err := s.connections.FindByID(ctx, connectionID)
	if err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	if !domain.CanAct(actor, domain.Ownership{ClientID: c.ClientID}, domain.ActionDeleteConnection) {
		return fmt.Errorf("delete connection: %w: only the requesting client can delete a connection", domain.ErrUnauthorized)
	}
	if err := s.connections.Delete(ctx, connectionID); err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	s.log.Info().Str("connection_id", connectionID).Msg("direct connection deleted")
	return nil
}
