package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any authentication failure so callers
// cannot distinguish a missing account from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

const minPasswordLength = 8

// Service manages the account lifecycle.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new account with a hashed password. Consumer accounts
// start with KYC pending; business and enterprise accounts additionally wait
// for manual review before a session is issued.
func (s *Service) Register(ctx context.Context, in SignupInput) (User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !strings.Contains(email, "@") {
		return User{}, errors.New("a valid email is required")
	}
	if len(in.Password) < minPasswordLength {
		return User{}, errors.New("password must be at least 8 characters")
	}
	switch in.UserType {
	case UserTypeConsumer, UserTypeBusiness, UserTypeEnterprise:
	default:
		return User{}, errors.New("unknown user type")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.New().String(),
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		MobileNumber: strings.TrimSpace(in.MobileNumber),
		UserType:     in.UserType,
		PasswordHash: hash,
		KYCStatus:    KYCPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies a password against the account found by email or
// mobile number and stamps the login time.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	var (
		user User
		err  error
	)
	switch {
	case creds.Email != "":
		user, err = s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	case creds.MobileNumber != "":
		user, err = s.repo.FindByMobile(ctx, strings.TrimSpace(creds.MobileNumber))
	default:
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return User{}, err
	}
	user.LastLogin = now

	return user, nil
}

// Profile fetches the account for an authenticated subject.
func (s *Service) Profile(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}

// InvalidateTokens bumps the token version so every previously issued token
// stops verifying.
func (s *Service) InvalidateTokens(ctx context.Context, id string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.UpdateTokenVersion(ctx, id, user.TokenVersion+1)
}
