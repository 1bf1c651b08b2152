package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

func newPaymentFixture() (*PaymentService, *stubPaymentRepo, *stubRequestRepo, *stubUserRepo, *recordingNotifier) {
	payments := newStubPaymentRepo()
	requests := newStubRequestRepo()
	users := newStubUserRepo()
	notifier := &recordingNotifier{}
	svc := NewPaymentService(payments, requests, users, notifier, zerolog.Nop())
	return svc, payments, requests, users, notifier
}

func TestPaymentService_Create(t *testing.T) {
	svc, _, requests, users, _ := newPaymentFixture()
	users.seed("client_1", domain.RoleClient)
	req := requests.seed(&domain.ServiceRequest{
		ClientID: "client_1", AssignedProviderID: "provider_1", Status: domain.RequestAssigned,
	})
	client := domain.Actor{ID: "client_1", Role: domain.RoleClient}

	p, err := svc.Create(context.Background(), client, ports.CreatePaymentInput{RequestID: req.ID, Amount: 1200})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.Status != domain.PaymentPending {
		t.Fatalf("expected PENDING, got %s", p.Status)
	}
	if p.ProviderID != "provider_1" {
		t.Fatalf("provider must be copied from the request assignment, got %q", p.ProviderID)
	}
	if p.TransactionID == "" {
		t.Fatalf("expected a generated transaction id")
	}
}

func TestPaymentService_Create_RequiresAssignedProvider(t *testing.T) {
	svc, _, requests, users, _ := newPaymentFixture()
	users.seed("client_1", domain.RoleClient)
	req := requests.seed(&domain.ServiceRequest{ClientID: "client_1", Status: domain.RequestOpen})
	client := domain.Actor{ID: "client_1", Role: domain.RoleClient}

	if _, err := svc.Create(context.Background(), client, ports.CreatePaymentInput{RequestID: req.ID, Amount: 100}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation without assigned provider, got %v", err)
	}
}

func TestPaymentService_Create_Checks(t *testing.T) {
	svc, _, requests, users, _ := newPaymentFixture()
	users.seed("client_1", domain.RoleClient)
	req := requests.seed(&domain.ServiceRequest{
		ClientID: "client_1", AssignedProviderID: "provider_1", Status: domain.RequestAssigned,
	})

	provider := domain.Actor{ID: "provider_1", Role: domain.RoleProvider}
	if _, err := svc.Create(context.Background(), provider, ports.CreatePaymentInput{RequestID: req.ID, Amount: 100}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for provider creation, got %v", err)
	}

	other := domain.Actor{ID: "client_2", Role: domain.RoleClient}
	if _, err := svc.Create(context.Background(), other, ports.CreatePaymentInput{RequestID: req.ID, Amount: 100}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-owner client, got %v", err)
	}

	client := domain.Actor{ID: "client_1", Role: domain.RoleClient}
	if _, err := svc.Create(context.Background(), client, ports.CreatePaymentInput{RequestID: req.ID, Amount: -5}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for negative amount, got %v", err)
	}
}

func TestPaymentService_UpdateStatus_Complete(t *testing.T) {
	svc, _, requests, users, notifier := newPaymentFixture()
	users.seed("client_1", domain.RoleClient)
	users.seed("provider_1", domain.RoleProvider)
	req := requests.seed(&domain.ServiceRequest{
		ClientID: "client_1", AssignedProviderID: "provider_1",
		Title: "Birthday party", Status: domain.RequestAssigned,
	})
	client := domain.Actor{ID: "client_1", Role: domain.RoleClient}

	p, err := svc.Create(context.Background(), client, ports.CreatePaymentInput{RequestID: req.ID, Amount: 2500})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), client, p.ID, "completed")
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != domain.PaymentCompleted {
		t.Fatalf("expected COMPLETED, got %s", updated.Status)
	}

	received := notifier.byKind(ports.KindPaymentReceived)
	if len(received) != 1 || received[0].UserID != "provider_1" {
		t.Fatalf("expected payment notification for provider_1, got %+v", received)
	}
	if !strings.Contains(received[0].Message, "2500.00") {
		t.Fatalf("expected amount in provider message, got %q", received[0].Message)
	}
	confirmed := notifier.byKind(ports.KindPaymentConfirmed)
	if len(confirmed) != 1 || confirmed[0].UserID != "client_1" {
		t.Fatalf("expected confirmation for client_1, got %+v", confirmed)
	}
}

func TestPaymentService_UpdateStatus_TerminalAndAuthorization(t *testing.T) {
	svc, payments, _, users, notifier := newPaymentFixture()
	users.seed("client_1", domain.RoleClient)
	client := domain.Actor{ID: "client_1", Role: domain.RoleClient}

	p, _ := payments.Create(context.Background(), &domain.Payment{
		ClientID: "client_1", ProviderID: "provider_1", Amount: 100, Status: domain.PaymentPending,
	})

	// The receiving provider can never settle their own incoming payment.
	provider := domain.Actor{ID: "provider_1", Role: domain.RoleProvider}
	if _, err := svc.UpdateStatus(context.Background(), provider, p.ID, "COMPLETED"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for provider, got %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), client, p.ID, "FAILED"); err != nil {
		t.Fatalf("FAILED transition failed: %v", err)
	}
	// FAILED is terminal; no retry through the same payment.
	if _, err := svc.UpdateStatus(context.Background(), client, p.ID, "COMPLETED"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition after FAILED, got %v", err)
	}
	// A failure settles silently.
	if got := notifier.byKind(ports.KindPaymentReceived); len(got) != 0 {
		t.Fatalf("expected no provider notification on failure, got %+v", got)
	}
}

func TestPaymentService_Visibility(t *testing.T) {
	svc, payments, requests, _, _ := newPaymentFixture()
	p, _ := payments.Create(context.Background(), &domain.Payment{
		RequestID: "req_1", ClientID: "client_1", ProviderID: "provider_1", Status: domain.PaymentPending,
	})
	requests.seed(&domain.ServiceRequest{
		ID: "req_1", ClientID: "client_1", AssignedProviderID: "provider_1", Status: domain.RequestAssigned,
	})

	for _, actor := range []domain.Actor{
		{ID: "client_1", Role: domain.RoleClient},
		{ID: "provider_1", Role: domain.RoleProvider},
	} {
		if _, err := svc.Get(context.Background(), actor, p.ID); err != nil {
			t.Fatalf("party %s should see payment: %v", actor.ID, err)
		}
		if _, err := svc.CurrentForRequest(context.Background(), actor, "req_1"); err != nil {
			t.Fatalf("party %s should see current payment: %v", actor.ID, err)
		}
	}

	stranger := domain.Actor{ID: "client_2", Role: domain.RoleClient}
	if _, err := svc.Get(context.Background(), stranger, p.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for stranger, got %v", err)
	}
	if _, err := svc.CurrentForRequest(context.Background(), stranger, "req_1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for stranger on request, got %v", err)
	}
}
