package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users     ports.UserRepository
	notifier  ports.Notifier
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, notifier ports.Notifier, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, notifier: notifier, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if in.FirstName == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("register: %w: first name, email and password are required", domain.ErrValidation)
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("register: %w", domain.ErrEmailExists)
	}
	if in.MobileNumber != "" {
		if _, err := s.users.FindByMobile(ctx, in.MobileNumber); err == nil {
			return nil, fmt.Errorf("register: %w", domain.ErrMobileExists)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Email:         email,
		MobileNumber:  strings.TrimSpace(in.MobileNumber),
		PasswordHash:  string(hash),
		Role:          role,
		AccountStatus: domain.AccountActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.notifier.Notify(ports.NotificationEvent{
		UserID: created.ID,
		Kind:   ports.KindAccountWelcome,
		Mail: &ports.MailMessage{
			To:      created.Email,
			Subject: "Welcome to Eventura",
			Body:    fmt.Sprintf("Hello %s,\n\nYour account has been created successfully. Welcome aboard!", created.FullName()),
		},
	})

	s.log.Info().Str("user_id", created.ID).Str("role", string(role)).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues an HS256 token. Suspended and
// deleted accounts cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, fmt.Errorf("login: %w", domain.ErrInvalidCredentials)
	}
	if user.AccountStatus != domain.AccountActive {
		return "", nil, fmt.Errorf("login: %w: account is %s", domain.ErrUnauthorized, user.AccountStatus)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"role":  string(user.Role),
		"email": user.Email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
