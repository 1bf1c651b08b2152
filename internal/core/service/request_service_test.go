package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

func newRequestFixture() (*RequestService, *stubRequestRepo, *stubUserRepo, *recordingNotifier) {
	requests := newStubRequestRepo()
	users := newStubUserRepo()
	notifier := &recordingNotifier{}
	svc := NewRequestService(requests, users, notifier, zerolog.Nop())
	return svc, requests, users, notifier
}

func TestRequestService_FullLifecycle(t *testing.T) {
	svc, _, users, notifier := newRequestFixture()
	users.seed("client_1", domain.RoleClient)
	users.seed("provider_1", domain.RoleProvider)
	client := domain.Actor{ID: "client_1", Role: domain.RoleClient}
	provider := domain.Actor{ID: "provider_1", Role: domain.RoleProvider}

	created, err := svc.Create(context.Background(), client, ports.CreateRequestInput{
		Title: "Wedding photography", ServiceType: "PHOTOGRAPHY", Budget: 1500,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Status != domain.RequestOpen {
		t.Fatalf("expected OPEN, got %s", created.Status)
	}
	if created.AssignedProviderID != "" {
		t.Fatalf("new request must have no assigned provider")
	}

	assigned, err := svc.AssignProvider(context.Background(), client, created.ID, "provider_1")
	if err != nil {
		t.Fatalf("AssignProvider returned error: %v", err)
	}
	if assigned.Status != domain.RequestAssigned || assigned.AssignedProviderID != "provider_1" {
		t.Fatalf("unexpected request after assign: %+v", assigned)
	}
	if got := notifier.byKind(ports.KindRequestAssigned); len(got) != 1 || got[0].UserID != "provider_1" {
		t.Fatalf("expected one assignment notification for provider_1, got %+v", got)
	}

	completed, err := svc.UpdateStatus(context.Background(), provider, created.ID, "COMPLETED")
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if completed.Status != domain.RequestCompleted {
		t.Fatalf("expected COMPLETED, got %s", completed.Status)
	}
}

func TestRequestService_Create_Validation(t *testing.T) {
	svc, _, users, _ := newRequestFixture()
	users.seed("client_1", domain.RoleClient)
	client := domain.Actor{ID: "client_1", Role: domain.RoleClient}

	if _, err := svc.Create(context.Background(), client, ports.CreateRequestInput{Budget: 100}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty title, got %v", err)
	}
	if _, err := svc.Create(context.Background(), client, ports.CreateRequestInput{Title: "x", Budget: 0}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for zero budget, got %v", err)
	}

	provider := domain.Actor{ID: "provider_1", Role: domain.RoleProvider}
	if _, err := svc.Create(context.Background(), provider, ports.CreateRequestInput{Title: "x", Budget: 100}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for provider creation, got %v", err)
	}
}

func TestRequestService_UpdateStatus_NormalizesRawInput(t *testing.T) {
	svc, requests, users, _ := newRequestFixture()
	users.seed("client_1", domain.RoleClient)
	client := domain.Actor{ID: "client_1", Role: domain.RoleClient}
	req := requests.seed(&domain.ServiceRequest{ClientID: "client_1", Title: "Catering", Status: domain.RequestOpen})

	// The quoted, mixed-case, padded form a sloppy client sends.
	updated, err := svc.UpdateStatus(context.Background(), client, req.ID, ` "cancelled" `)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != domain.RequestCancelled {
		t.Fatalf("expected CANCELLED, got %s", updated.Status)
	}
}

func TestRequestService_UpdateStatus_TerminalRejectsEverything(t *testing.T) {
	svc, requests, users, _ := newRequestFixture()
	users.seed("client_1", domain.RoleClient)
	client := domain.Actor{ID: "client_1", Role: domain.RoleClient}

	for _, terminal := range []domain.RequestStatus{domain.RequestCompleted, domain.RequestCancelled, domain.RequestDeleted} {
		req := requests.seed(&domain.ServiceRequest{ClientID: "client_1", Status: terminal})
		for _, target := range []string{"OPEN", "ASSIGNED", "COMPLETED", "CANCELLED", "DELETED"} {
			if _, err := svc.UpdateStatus(context.Background(), client, req.ID, target); err == nil {
				t.Fatalf("expected error moving %s -> %s", terminal, target)
			}
		}
	}
}

func TestRequestService_UpdateStatus_AssignedTargetRefused(t *testing.T) {
	svc, requests, users, _ := newRequestFixture()
	users.seed("client_1", domain.RoleClient)
	client := domain.Actor{ID: "client_1", Role: domain.RoleClient}
	req := requests.seed(&domain.ServiceRequest{ClientID: "client_1", Status: domain.RequestOpen})

	if _, err := svc.UpdateStatus(context.Background(), client, req.ID, "ASSIGNED"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for ASSIGNED target, got %v", err)
	}
}

func TestRequestService_UpdateStatus_CompletedRequiresProvider(t *testing.T) {
	svc, requests, users, _ := newRequestFixture()
	users.seed("client_1", domain.RoleClient)
	client := domain.Actor{ID: "client_1", Role: domain.RoleClient}
	req := requests.seed(&domain.ServiceRequest{
		ClientID: "client_1", AssignedProviderID: "provider_1", Status: domain.RequestAssigned,
	})

	if _, err := svc.UpdateStatus(context.Background(), client, req.ID, "COMPLETED"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for client completion, got %v", err)
	}
}

func TestRequestService_UpdateStatus_StrangerRejected(t *testing.T) {
	svc, requests, users, _ := newRequestFixture()
	users.seed("client_1", domain.RoleClient)
	req := requests.seed(&domain.ServiceRequest{
		ClientID: "client_1", AssignedProviderID: "provider_1", Status: domain.RequestAssigned,
	})

	stranger := domain.Actor{ID: "provider_2", Role: domain.RoleProvider}
	if _, err := svc.UpdateStatus(context.Background(), stranger, req.ID, "COMPLETED"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-assigned provider, got %v", err)
	}
}

func TestRequestService_AssignProvider_Checks(t *testing.T) {
	svc, requests, users, _ := newRequestFixture()
	users.seed("client_1", domain.RoleClient)
	users.seed("client_2", domain.RoleClient)
	users.seed("provider_1", domain.RoleProvider)
	client := domain.Actor{ID: "client_1", Role: domain.RoleClient}
	req := requests.seed(&domain.ServiceRequest{ClientID: "client_1", Status: domain.RequestOpen})

	// Target must hold the PROVIDER role.
	if _, err := svc.AssignProvider(context.Background(), client, req.ID, "client_2"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation assigning a client, got %v", err)
	}

	// Only the owning client may assign.
	other := domain.Actor{ID: "client_2", Role: domain.RoleClient}
	if _, err := svc.AssignProvider(context.Background(), other, req.ID, "provider_1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-owner, got %v", err)
	}

	if _, err := svc.AssignProvider(context.Background(), client, req.ID, "provider_1"); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	// Single-shot: a second assignment has no OPEN state to leave from.
	if _, err := svc.AssignProvider(context.Background(), client, req.ID, "provider_1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on re-assign, got %v", err)
	}
}

func TestRequestService_UpdateBudget(t *testing.T) {
	svc, requests, users, notifier := newRequestFixture()
	users.seed("client_1", domain.RoleClient)
	client := domain.Actor{ID: "client_1", Role: domain.RoleClient}
	req := requests.seed(&domain.ServiceRequest{
		ClientID: "client_1", Title: "DJ night", AssignedProviderID: "provider_1",
		Status: domain.RequestAssigned, Budget: 500,
	})

	updated, err := svc.UpdateBudget(context.Background(), client, req.ID, 750)
	if err != nil {
		t.Fatalf("UpdateBudget returned error: %v", err)
	}
	if updated.Budget != 750 {
		t.Fatalf("expected budget 750, got %v", updated.Budget)
	}
	if got := notifier.byKind(ports.KindBudgetUpdated); len(got) != 1 || got[0].UserID != "provider_1" {
		t.Fatalf("expected budget notification for assigned provider, got %+v", got)
	}

	if _, err := svc.UpdateBudget(context.Background(), client, req.ID, -1); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for negative budget, got %v", err)
	}

	done := requests.seed(&domain.ServiceRequest{ClientID: "client_1", Status: domain.RequestCompleted})
	if _, err := svc.UpdateBudget(context.Background(), client, done.ID, 100); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on terminal request, got %v", err)
	}
}

func TestRequestService_Delete_SoftAndHard(t *testing.T) {
	svc, requests, users, _ := newRequestFixture()
	users.seed("client_1", domain.RoleClient)
	client := domain.Actor{ID: "client_1", Role: domain.RoleClient}
	admin := domain.Actor{ID: "admin_1", Role: domain.RoleAdmin}

	soft := requests.seed(&domain.ServiceRequest{ClientID: "client_1", Status: domain.RequestOpen})
	if err := svc.Delete(context.Background(), client, soft.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	got, err := svc.Get(context.Background(), soft.ID)
	if err != nil {
		t.Fatalf("soft-deleted request must still exist: %v", err)
	}
	if got.Status != domain.RequestDeleted {
		t.Fatalf("expected DELETED, got %s", got.Status)
	}

	// Soft delete is refused once terminal.
	if err := svc.Delete(context.Background(), client, soft.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition re-deleting, got %v", err)
	}

	hard := requests.seed(&domain.ServiceRequest{ClientID: "client_1", Status: domain.RequestCompleted})
	if err := svc.Delete(context.Background(), admin, hard.ID); err != nil {
		t.Fatalf("hard delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), hard.ID); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound after hard delete, got %v", err)
	}

	other := requests.seed(&domain.ServiceRequest{ClientID: "client_1", Status: domain.RequestOpen})
	provider := domain.Actor{ID: "provider_1", Role: domain.RoleProvider}
	if err := svc.Delete(context.Background(), provider, other.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for provider delete, got %v", err)
	}
}

func TestRequestService_List_ReturnsAllStatuses(t *testing.T) {
	svc, requests, _, _ := newRequestFixture()
	requests.seed(&domain.ServiceRequest{ClientID: "client_1", ServiceType: "CATERING", Status: domain.RequestOpen})
	requests.seed(&domain.ServiceRequest{ClientID: "client_1", ServiceType: "CATERING", Status: domain.RequestCancelled})
	requests.seed(&domain.ServiceRequest{ClientID: "client_2", ServiceType: "MUSIC", Status: domain.RequestCompleted})

	// The browse listing carries no status filter; terminal requests stay visible.
	page, err := svc.List(context.Background(), "", ports.PageInput{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected all 3 requests regardless of status, got %d", page.Total)
	}

	filtered, err := svc.List(context.Background(), "CATERING", ports.PageInput{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if filtered.Total != 2 {
		t.Fatalf("expected 2 CATERING requests, got %d", filtered.Total)
	}
}
