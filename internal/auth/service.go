package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pulsedash/pulsedash/internal/config"
	"github.com/pulsedash/pulsedash/internal/models"
	"github.com/pulsedash/pulsedash/internal/tokens"
	"github.com/pulsedash/pulsedash/internal/users"
	"golang.org/x/crypto/bcrypt"
)

// HashCost is the fixed bcrypt cost factor for new passwords.
const HashCost = 10

var (
	// ErrInvalidCredentials is returned for unknown email and wrong password
	// alike, so a caller cannot probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidation rejects malformed signup input.
	ErrValidation = errors.New("invalid signup input")
)

// Service implements signup and login against the credential store.
type Service struct {
	cfg  *config.Config
	repo users.Repository
}

func NewService(cfg *config.Config, repo users.Repository) *Service {
	return &Service{cfg: cfg, repo: repo}
}

// Signup validates input, rejects duplicate emails and persists a new record
// with a freshly hashed password. The plaintext never leaves this function.
//
// The existence check and the insert are two store operations; two concurrent
// signups with the same email can both pass the check. The unique email index
// catches that case in the Mongo repository, but the race itself is a known,
// accepted gap.
func (s *Service) Signup(ctx context.Context, name, email, password string) error {
	if err := validateSignup(name, email, password); err != nil {
		return err
	}
	switch _, err := s.repo.GetByEmail(ctx, email); {
	case err == nil:
		return users.ErrDuplicateEmail
	case !errors.Is(err, users.ErrNotFound):
		return fmt.Errorf("check existing user: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	rec := models.NewUserRecord(name, email, string(hash))
	if _, err := s.repo.Create(ctx, rec); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login verifies credentials and issues a session token plus the redacted
// user projection. Every miss maps to the same ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, models.PublicUser, error) {
	rec, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return "", models.PublicUser{}, ErrInvalidCredentials
		}
		return "", models.PublicUser{}, fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		return "", models.PublicUser{}, ErrInvalidCredentials
	}
	token, err := tokens.Generate(s.cfg, rec, s.cfg.JWT.SessionTTL)
	if err != nil {
		return "", models.PublicUser{}, fmt.Errorf("issue token: %w", err)
	}
	return token, rec.Public(), nil
}

func validateSignup(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(email) < 5 || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: malformed email", ErrValidation)
	}
	if len(password) < 5 {
		return fmt.Errorf("%w: password too short", ErrValidation)
	}
	return nil
}
