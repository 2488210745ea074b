// Package users implements account operations for the API server: credential
// verification, token issuance, and profile lookup.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeyev/bizdash/internal/common"
	"github.com/avdeyev/bizdash/internal/server/auth"
	"github.com/avdeyev/bizdash/internal/server/config"
	"github.com/avdeyev/bizdash/internal/server/models"
	"github.com/avdeyev/bizdash/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the email is unknown, so a login
// attempt takes the same time whether or not the account exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing-only"), bcrypt.DefaultCost)

type Service struct {
	repo                  users.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewService(repo users.Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Authenticate verifies the credentials and returns the user together with a
// fresh bearer token. Unknown email and wrong password are indistinguishable
// to the caller: both are common.ErrorUnauthorized.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// GetByID returns the account for an authenticated request.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// VerifyToken resolves a bearer token to a user ID.
func (s *Service) VerifyToken(token string) (int64, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// EnsureDemoUser creates the default admin account when the users table is
// empty, so a fresh install can be signed into immediately.
func (s *Service) EnsureDemoUser(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.repo.Create(ctx, &models.User{
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
	})
	if err != nil {
		return fmt.Errorf("error creating demo user: %w", err)
	}
	return nil
}
