// Package auth orchestrates registration and login: uniqueness checks,
// password hashing, credential persistence, and token issuance.
package auth

import (
	"context"

	"github.com/skillsenselab/customer-api/auth/password"
	"github.com/skillsenselab/customer-api/auth/token"
	apperrors "github.com/skillsenselab/customer-api/errors"
	"github.com/skillsenselab/customer-api/logger"
	"github.com/skillsenselab/customer-api/users"
)

// Result is returned by Register and Login: the signed access token plus
// the public view of the authenticated user.
type Result struct {
	AccessToken string     `json:"access_token"`
	User        users.View `json:"user"`
}

// Service implements the auth flows over a credential store, a password
// hasher, and a token issuer.
type Service struct {
	store  users.Store
	hasher password.Hasher
	tokens *token.Service
	log    *logger.Logger
}

// NewService creates the auth service.
func NewService(store users.Store, hasher password.Hasher, tokens *token.Service, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		log:    log.WithComponent("auth"),
	}
}

// Register creates a new identity record and returns a token for it.
//
// Username uniqueness is checked strictly before email, and both checks run
// before any write. The checks are a courtesy for error quality; the store's
// unique constraints are the real enforcement point, and a constraint
// violation at write time surfaces as the same conflict error.
func (s *Service) Register(ctx context.Context, username, email, plaintext string) (*Result, error) {
	existing, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.DuplicateUsername()
	}

	existing, err = s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.DuplicateEmail()
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &users.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.Issue(user.ID.String(), user.Username)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.log.Info("User registered", map[string]interface{}{
		"user_id":  user.ID.String(),
		"username": user.Username,
	})

	return &Result{AccessToken: accessToken, User: user.View()}, nil
}

// Login authenticates a username/password pair and returns a token.
//
// An unknown username and a wrong password produce the identical error so
// the endpoint cannot be used to enumerate accounts.
func (s *Service) Login(ctx context.Context, username, plaintext string) (*Result, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.InvalidCredentials()
	}

	if err := s.hasher.Verify(plaintext, user.PasswordHash); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	accessToken, err := s.tokens.Issue(user.ID.String(), user.Username)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.log.Debug("User logged in", map[string]interface{}{
		"user_id": user.ID.String(),
	})

	return &Result{AccessToken: accessToken, User: user.View()}, nil
}
