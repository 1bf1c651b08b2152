package domain

import (
	"errors"
	"testing"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"completed":        "COMPLETED",
		"  Cancelled  ":    "CANCELLED",
		`"ASSIGNED"`:       "ASSIGNED",
		"open!":            "OPEN",
		"c-o_m p.l,eted":   "COMPLETED",
		"":                 "",
		"123":              "",
		"\"\\\"deleted\"'": "DELETED",
	}
	for raw, want := range cases {
		if got := NormalizeStatus(raw); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalizeStatus_Idempotent(t *testing.T) {
	inputs := []string{"completed", "  Cancelled!  ", `"win"`, "ASSIGNED", "pend-ing"}
	for _, raw := range inputs {
		once := NormalizeStatus(raw)
		if twice := NormalizeStatus(once); twice != once {
			t.Errorf("NormalizeStatus not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestParseRequestStatus(t *testing.T) {
	if s, err := ParseRequestStatus(` "completed" `); err != nil || s != RequestCompleted {
		t.Fatalf("expected COMPLETED, got %q (%v)", s, err)
	}
	if _, err := ParseRequestStatus("finished"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRequestStatus_Transitions(t *testing.T) {
	legal := map[RequestStatus][]RequestStatus{
		RequestOpen:     {RequestAssigned, RequestCancelled},
		RequestAssigned: {RequestCompleted, RequestCancelled},
	}
	all := []RequestStatus{RequestOpen, RequestAssigned, RequestCompleted, RequestCancelled, RequestDeleted}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, allowed := range legal[from] {
				if allowed == to {
					want = true
				}
			}
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestRequestStatus_Terminal(t *testing.T) {
	for s, want := range map[RequestStatus]bool{
		RequestOpen:      false,
		RequestAssigned:  false,
		RequestCompleted: true,
		RequestCancelled: true,
		RequestDeleted:   true,
	} {
		if got := s.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", s, got, want)
		}
	}
}
