package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

// PaymentService implements the Payment lifecycle.
type PaymentService struct {
	payments ports.PaymentRepository
	requests ports.RequestRepository
	users    ports.UserRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewPaymentService(payments ports.PaymentRepository, requests ports.RequestRepository, users ports.UserRepository, notifier ports.Notifier, log zerolog.Logger) *PaymentService {
	return &PaymentService{payments: payments, requests: requests, users: users, notifier: notifier, log: log}
}

// Create opens a PENDING payment. The provider is copied from the request's
// current assignment and never re-validated afterwards.
func (s *PaymentService) Create(ctx context.Context, actor domain.Actor, in ports.CreatePaymentInput) (*domain.Payment, error) {
	if !domain.CanAct(actor, domain.Ownership{}, domain.ActionCreatePayment) {
		return nil, fmt.Errorf("create payment: %w: only clients can create payments", domain.ErrUnauthorized)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("create payment: %w: amount must be a positive value", domain.ErrValidation)
	}

	r, err := s.requests.FindByID(ctx, in.RequestID)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	if r.ClientID != actor.ID {
		return nil, fmt.Errorf("create payment: %w: not authorized to create payment for this request", domain.ErrUnauthorized)
	}
	if r.AssignedProviderID == "" {
		return nil, fmt.Errorf("create payment: %w: no provider assigned to this request", domain.ErrValidation)
	}

	now := time.Now().UTC()
	created, err := s.payments.Create(ctx, &domain.Payment{
		RequestID:     r.ID,
		ClientID:      actor.ID,
		ProviderID:    r.AssignedProviderID,
		Amount:        in.Amount,
		Status:        domain.PaymentPending,
		TransactionID: uuid.NewString(),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.log.Info().
		Str("payment_id", created.ID).
		Str("request_id", r.ID).
		Str("transaction_id", created.TransactionID).
		Float64("amount", in.Amount).
		Msg("payment created")
	return created, nil
}

func (s *PaymentService) Get(ctx context.Context, actor domain.Actor, paymentID string) (*domain.Payment, error) {
	p, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if p.ClientID != actor.ID && p.ProviderID != actor.ID {
		return nil, fmt.Errorf("get payment: %w: not authorized to view this payment", domain.ErrUnauthorized)
	}
	return p, nil
}

func (s *PaymentService) ListByClient(ctx context.Context, actor domain.Actor, page ports.PageInput) (ports.Paged[*domain.Payment], error) {
	page = page.Normalize()
	items, total, err := s.payments.ListByClient(ctx, actor.ID, page)
	if err != nil {
		return ports.Paged[*domain.Payment]{}, fmt.Errorf("list client payments: %w", err)
	}
	return ports.NewPaged(items, total, page), nil
}

func (s *PaymentService) ListByProvider(ctx context.Context, actor domain.Actor, page ports.PageInput) (ports.Paged[*domain.Payment], error) {
	page = page.Normalize()
	items, total, err := s.payments.ListByProvider(ctx, actor.ID, page)
	if err != nil {
		return ports.Paged[*domain.Payment]{}, fmt.Errorf("list provider payments: %w", err)
	}
	return ports.NewPaged(items, total, page), nil
}

func (s *PaymentService) CurrentForRequest(ctx context.Context, actor domain.Actor, requestID string) (*domain.Payment, error) {
	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("current payment: %w", err)
	}
	if r.ClientID != actor.ID && (r.AssignedProviderID == "" || r.AssignedProviderID != actor.ID) {
		return nil, fmt.Errorf("current payment: %w: not authorized to view payment status for this request", domain.ErrUnauthorized)
	}

	p, err := s.payments.FindCurrentByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("current payment: %w", err)
	}
	return p, nil
}

// UpdateStatus moves a payment out of PENDING. Only the paying client may
// call; the receiving provider can never settle their own incoming payment.
// COMPLETED and FAILED are terminal.
func (s *PaymentService) UpdateStatus(ctx context.Context, actor domain.Actor, paymentID, rawStatus string) (*domain.Payment, error) {
	p, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	if !domain.CanAct(actor, domain.Ownership{ClientID: p.ClientID}, domain.ActionUpdatePaymentStatus) {
		return nil, fmt.Errorf("update payment status: %w: only the client can update payment status", domain.ErrUnauthorized)
	}

	target, err := domain.ParsePaymentStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}
	if !p.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("update payment status: %w: invalid transition from %s to %s (original %q)",
			domain.ErrInvalidTransition, p.Status, target, rawStatus)
	}

	if err := s.payments.UpdateStatus(ctx, paymentID, p.Status, target); err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	from := p.Status
	p.Status = target
	p.UpdatedAt = time.Now().UTC()

	if target == domain.PaymentCompleted {
		title := ""
		if r, err := s.requests.FindByID(ctx, p.RequestID); err == nil {
			title = r.Title
		}
		clientName := ""
		if client, err := s.users.FindByID(ctx, p.ClientID); err == nil {
			clientName = client.FullName()
		}

		s.notifier.Notify(ports.NotificationEvent{
			UserID:  p.ProviderID,
			Kind:    ports.KindPaymentReceived,
			Message: fmt.Sprintf("You received a payment of Rs %.2f for service request: %s from %s", p.Amount, title, clientName),
			InApp:   true,
		})
		s.notifier.Notify(ports.NotificationEvent{
			UserID:  p.ClientID,
			Kind:    ports.KindPaymentConfirmed,
			Message: fmt.Sprintf("Your payment of Rs %.2f for service request: %s was successful", p.Amount, title),
			InApp:   true,
		})
	}

	s.log.Info().Str("payment_id", paymentID).Str("from", string(from)).Str("to", string(target)).Msg("payment status updated")
	return p, nil
}
