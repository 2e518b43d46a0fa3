package app

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"microblog/internal/model"
	"microblog/internal/repository"
	"microblog/internal/validation"
)

// UserService sequences validation and persistence for user records.
// The repository itself never validates; the service validates first and
// only hands it well-formed records.
type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Register(ctx context.Context, in validation.UserRegisterInput) (*model.User, error) {
	user, err := validation.UserRegister(in)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// Update overlays the provided fields on the stored record, re-validates
// the merged result and persists it. ID and email stay immutable.
func (s *UserService) Update(ctx context.Context, id string, in validation.UserUpdateInput) (*model.User, error) {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := validation.UserUpdate(*current, in)
	if err != nil {
		return nil, err
	}

	if err := s.users.Update(ctx, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Delete removes the user and returns the removed identifier. Deleting
// an absent id fails with NotFound, also on repeat.
func (s *UserService) Delete(ctx context.Context, id string) (string, error) {
	if err := s.users.Delete(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}
