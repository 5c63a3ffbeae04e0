package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blogapi/app/auth"
	"blogapi/app/models"
	"blogapi/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService manages accounts and issues bearer tokens.
type UserService struct {
	userRepo repositories.UserRepository
	issuer   *auth.Issuer
	cost     int
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, issuer *auth.Issuer) *UserService {
	return &UserService{userRepo: userRepo, issuer: issuer, cost: bcrypt.DefaultCost}
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, creds *models.Credentials) (*models.User, error) {
	if err := checkPayload(creds.Validate()); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, invalidField("password", "must be at most 72 bytes")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: creds.Username, PasswordHash: string(hash)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns a signed token with its expiry.
// Unknown users and wrong passwords both yield ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, creds *models.Credentials) (string, time.Time, error) {
	user, err := s.userRepo.GetByUsername(ctx, creds.Username)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", time.Time{}, ErrUnauthorized
	}
	if err != nil {
		return "", time.Time{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return "", time.Time{}, ErrUnauthorized
	}
	return s.issuer.Issue(auth.Principal{UserID: user.ID, Username: user.Username})
}

// TokenFor issues a token for an existing user without a password check.
// It backs the operator CLI.
func (s *UserService) TokenFor(ctx context.Context, username string) (string, time.Time, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, err
	}
	return s.issuer.Issue(auth.Principal{UserID: user.ID, Username: user.Username})
}

// Authenticate resolves a bearer token to a caller whose account still exists.
func (s *UserService) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	p, err := s.issuer.Parse(token)
	if err != nil {
		return auth.Principal{}, err
	}
	if _, err := s.userRepo.GetByID(ctx, p.UserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return auth.Principal{}, auth.ErrInvalidToken
		}
		return auth.Principal{}, err
	}
	return p, nil
}
