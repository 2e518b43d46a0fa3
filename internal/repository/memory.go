package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"microblog/internal/model"
)

// MemoryUserRepository keeps users in maps guarded by a RWMutex. Writes
// are mutually exclusive, reads see a consistent snapshot, and List
// preserves insertion order.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]model.User
	byEmail map[string]string
	order   []string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]model.User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[user.ID]; exists {
		return fmt.Errorf("user id %s: %w", user.ID, ErrDuplicateKey)
	}
	if _, exists := r.byEmail[user.Email]; exists {
		return fmt.Errorf("user email %s: %w", user.Email, ErrDuplicateKey)
	}

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	r.order = append(r.order, user.ID)
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.byID[id]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byEmail[email]
	if !exists {
		return nil, fmt.Errorf("user email %s: %w", email, ErrNotFound)
	}
	user := r.byID[id]
	return &user, nil
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]model.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.byID[id])
	}
	return users, nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.byID[user.ID]
	if !exists {
		return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	if stored.Email != user.Email {
		if owner, taken := r.byEmail[user.Email]; taken && owner != user.ID {
			return fmt.Errorf("user email %s: %w", user.Email, ErrDuplicateKey)
		}
		delete(r.byEmail, stored.Email)
		r.byEmail[user.Email] = user.ID
	}

	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	r.byID[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.byID[id]
	if !exists {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	delete(r.byID, id)
	delete(r.byEmail, stored.Email)
	for i, orderedID := range r.order {
		if orderedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// MemoryTweetRepository mirrors MemoryUserRepository for tweets.
type MemoryTweetRepository struct {
	mu    sync.RWMutex
	byID  map[string]model.Tweet
	order []string
}

func NewMemoryTweetRepository() *MemoryTweetRepository {
	return &MemoryTweetRepository{byID: make(map[string]model.Tweet)}
}

func (r *MemoryTweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[tweet.ID]; exists {
		return fmt.Errorf("tweet id %s: %w", tweet.ID, ErrDuplicateKey)
	}
	if tweet.CreatedAt.IsZero() {
		tweet.CreatedAt = time.Now().UTC()
	}
	r.byID[tweet.ID] = *tweet
	r.order = append(r.order, tweet.ID)
	return nil
}

func (r *MemoryTweetRepository) GetByID(ctx context.Context, id string) (*model.Tweet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	tweet, exists := r.byID[id]
	if !exists {
		return nil, fmt.Errorf("tweet %s: %w", id, ErrNotFound)
	}
	return &tweet, nil
}

func (r *MemoryTweetRepository) List(ctx context.Context) ([]model.Tweet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	tweets := make([]model.Tweet, 0, len(r.order))
	for _, id := range r.order {
		tweets = append(tweets, r.byID[id])
	}
	return tweets, nil
}

func (r *MemoryTweetRepository) Update(ctx context.Context, tweet *model.Tweet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.byID[tweet.ID]
	if !exists {
		return fmt.Errorf("tweet %s: %w", tweet.ID, ErrNotFound)
	}
	tweet.CreatedAt = stored.CreatedAt
	r.byID[tweet.ID] = *tweet
	return nil
}

func (r *MemoryTweetRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return fmt.Errorf("tweet %s: %w", id, ErrNotFound)
	}
	delete(r.byID, id)
	for i, orderedID := range r.order {
		if orderedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// MemoryAuditRepository is the audit sink used when no database is
// configured.
type MemoryAuditRepository struct {
	mu      sync.RWMutex
	entries []model.AuditEntry
	nextID  uint
}

func NewMemoryAuditRepository() *MemoryAuditRepository {
	return &MemoryAuditRepository{nextID: 1}
}

func (r *MemoryAuditRepository) Create(ctx context.Context, entry *model.AuditEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = r.nextID
	r.nextID++
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *MemoryAuditRepository) ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]model.AuditEntry, limit)
	copy(out, r.entries[len(r.entries)-limit:])
	return out, nil
}
