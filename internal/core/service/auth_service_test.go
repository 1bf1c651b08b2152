package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

func newAuthFixture() (*AuthService, *stubUserRepo, *recordingNotifier) {
	users := newStubUserRepo()
	notifier := &recordingNotifier{}
	svc := NewAuthService(users, notifier, "secret", time.Hour, zerolog.Nop())
	return svc, users, notifier
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, notifier := newAuthFixture()

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		FirstName: "Alice", LastName: "Smith", Email: "Alice@Example.com",
		Password: "pass123", Role: "client",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.Role != domain.RoleClient {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.AccountStatus != domain.AccountActive {
		t.Fatalf("new account must be ACTIVE, got %s", user.AccountStatus)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if got := notifier.byKind(ports.KindAccountWelcome); len(got) != 1 || got[0].Mail == nil {
		t.Fatalf("expected welcome email event, got %+v", got)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "x@y.com", Password: "p", Role: "CLIENT"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing first name, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{FirstName: "Bob", Email: "x@y.com", Password: "p", Role: "wizard"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad role, got %v", err)
	}
}

func TestAuthService_Register_Duplicates(t *testing.T) {
	svc, _, _ := newAuthFixture()

	in := ports.RegisterInput{FirstName: "Bob", Email: "bob@example.com", MobileNumber: "555-0100", Password: "p", Role: "PROVIDER"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	in.Email = "bob2@example.com"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrMobileExists) {
		t.Fatalf("expected ErrMobileExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		FirstName: "Carol", Email: "carol@example.com", Password: "s3cret", Role: "ADMIN",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != user.ID {
		t.Fatalf("expected sub %q, got %v", user.ID, claims["sub"])
	}
	if claims["role"] != string(domain.RoleAdmin) {
		t.Fatalf("expected role ADMIN, got %v", claims["role"])
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc, users, _ := newAuthFixture()

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	u, err := svc.Register(context.Background(), ports.RegisterInput{
		FirstName: "Dave", Email: "dave@example.com", Password: "goodpass", Role: "CLIENT",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	if err := users.UpdateAccountStatus(context.Background(), u.ID, domain.AccountSuspended); err != nil {
		t.Fatalf("suspend failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "goodpass"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for suspended account, got %v", err)
	}
}
