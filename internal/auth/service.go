package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/nutrigood/nutrigood-backend/internal/user"
)

// ErrInvalidPassword is returned on login when the password does not match
// the stored hash. Distinct from user.ErrUserNotFound so handlers can map
// the two to different status codes.
var ErrInvalidPassword = errors.New("invalid password")

// DeriveUserID computes the deterministic identifier for an email address.
// Injectable so tests can pin identifiers without knowing the digest.
type DeriveUserID func(email string) string

// Service composes the credential store, password hasher and token service
// into the register and login flows.
type Service struct {
	users    user.Repository
	hasher   *PasswordHasher
	tokens   *TokenService
	deriveID DeriveUserID
}

// NewService creates a new auth Service using the default identifier
// derivation (SHA-256 of the email).
func NewService(users user.Repository, hasher *PasswordHasher, tokens *TokenService) *Service {
	return &Service{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		deriveID: user.DeriveID,
	}
}

// WithDeriveID overrides the identifier derivation function.
func (s *Service) WithDeriveID(fn DeriveUserID) *Service {
	s.deriveID = fn
	return s
}

// Register hashes the password, derives the identifier from the email and
// inserts the user. A duplicate email or identifier surfaces as
// user.ErrDuplicateUser.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", err
	}

	u := &user.User{
		ID:           s.deriveID(in.Email),
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Age:          in.Age,
		Weight:       in.Weight,
		Diabetes:     in.Diabetes,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateUser) {
			return "", user.ErrDuplicateUser
		}
		return "", fmt.Errorf("creating user: %w", err)
	}

	return u.ID, nil
}

// Login verifies the credentials and issues a bearer token for the user.
// Returns user.ErrUserNotFound for an unknown email and ErrInvalidPassword
// for a hash mismatch.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", user.ErrUserNotFound
		}
		return "", fmt.Errorf("looking up user: %w", err)
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return "", ErrInvalidPassword
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}

	return token, nil
}
