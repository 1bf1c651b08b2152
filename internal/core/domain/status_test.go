package domain

import (
	"errors"
	"testing"
)

func TestParsePitchStatus(t *testing.T) {
	if s, err := ParsePitchStatus("win!"); err != nil || s != PitchWin {
		t.Fatalf("expected WIN, got %q (%v)", s, err)
	}
	if _, err := ParsePitchStatus("maybe"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if PitchWin.CanTransitionTo(PitchLose) || PitchLose.CanTransitionTo(PitchWin) {
		t.Fatalf("decided pitches must be terminal")
	}
	if !PitchPending.CanTransitionTo(PitchWin) || !PitchPending.CanTransitionTo(PitchLose) {
		t.Fatalf("pending pitch must be decidable")
	}
}

func TestPaymentStatus_Terminal(t *testing.T) {
	if !PaymentPending.CanTransitionTo(PaymentCompleted) || !PaymentPending.CanTransitionTo(PaymentFailed) {
		t.Fatalf("pending payment must be settleable")
	}
	for _, s := range []PaymentStatus{PaymentCompleted, PaymentFailed} {
		for _, next := range []PaymentStatus{PaymentPending, PaymentCompleted, PaymentFailed} {
			if s.CanTransitionTo(next) {
				t.Errorf("settled payment allowed %s -> %s", s, next)
			}
		}
	}
}

func TestParseConnectionStatus(t *testing.T) {
	if s, err := ParseConnectionStatus(" accepted "); err != nil || s != ConnectionAccepted {
		t.Fatalf("expected ACCEPTED, got %q (%v)", s, err)
	}
	if ConnectionAccepted.CanTransitionTo(ConnectionRejected) {
		t.Fatalf("responded connections must be terminal")
	}
}

func TestParseAccountStatus_QuotedInput(t *testing.T) {
	cases := map[string]AccountStatus{
		`"ACTIVE"`:    AccountActive,
		` "deleted" `: AccountDeleted,
		"suspended":   AccountSuspended,
	}
	for raw, want := range cases {
		got, err := ParseAccountStatus(raw)
		if err != nil || got != want {
			t.Errorf("ParseAccountStatus(%q) = %q (%v), want %q", raw, got, err, want)
		}
	}
	if _, err := ParseAccountStatus("banned"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestParseDocumentStatus(t *testing.T) {
	if s, err := ParseDocumentStatus("Approved"); err != nil || s != DocumentApproved {
		t.Fatalf("expected APPROVED, got %q (%v)", s, err)
	}
	if _, err := ParseDocumentStatus("lost"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
