package app

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"microblog/internal/model"
	"microblog/internal/pkg/jwtutil"
	"microblog/internal/repository"
)

var (
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrSessionRevoked    = errors.New("session revoked or expired")
)

type SessionStore interface {
	Save(ctx context.Context, jti, userID string) error
	Revoke(ctx context.Context, jti string) error
	IsActive(ctx context.Context, jti string) (bool, error)
}

// AuthService verifies credentials and manages login sessions. It is a
// separate component from the user CRUD core: the repository stores the
// salted hash, this service compares against it and issues tokens.
type AuthService struct {
	users         repository.UserRepository
	sessions      SessionStore
	jwtSecret     string
	jwtExpiration time.Duration
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(users repository.UserRepository, sessions SessionStore, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		sessions:      sessions,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, jti, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, jti, user.ID); err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context, jti string) error {
	return s.sessions.Revoke(ctx, jti)
}

// Verify parses a raw bearer token and checks that its session has not
// been revoked.
func (s *AuthService) Verify(ctx context.Context, raw string) (*jwtutil.Claims, error) {
	claims, err := jwtutil.ParseToken(s.jwtSecret, raw)
	if err != nil {
		return nil, err
	}
	active, err := s.sessions.IsActive(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}
