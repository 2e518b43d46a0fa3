// Package repository persists validated user and tweet records and
// enforces uniqueness. Two backends implement the same contract: an
// in-memory store for tests and single-node use, and a MySQL store.
package repository

import (
	"context"
	"errors"
	"fmt"

	"microblog/internal/model"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// StorageError marks a failure of the backing store itself, as opposed
// to a contract violation by the caller. It is fatal to the single
// operation, never to the process.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

type TweetRepository interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	GetByID(ctx context.Context, id string) (*model.Tweet, error)
	List(ctx context.Context) ([]model.Tweet, error)
	Update(ctx context.Context, tweet *model.Tweet) error
	Delete(ctx context.Context, id string) error
}

type AuditRepository interface {
	Create(ctx context.Context, entry *model.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error)
}
