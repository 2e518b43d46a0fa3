package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"microblog/internal/model"
)

// GormUserRepository is the MySQL-backed user store. The unique index on
// email plus the create-inside-transaction check keep concurrent creates
// from both succeeding.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).
			Where("id = ? OR email = ?", user.ID, user.Email).
			Count(&count).Error; err != nil {
			return storageErr("count users", err)
		}
		if count > 0 {
			return fmt.Errorf("user %s / %s: %w", user.ID, user.Email, ErrDuplicateKey)
		}
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("user %s / %s: %w", user.ID, user.Email, ErrDuplicateKey)
			}
			return storageErr("create user", err)
		}
		return nil
	})
}

func (r *GormUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, storageErr("query user by id", err)
	}
	return &user, nil
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user email %s: %w", email, ErrNotFound)
		}
		return nil, storageErr("query user by email", err)
	}
	return &user, nil
}

func (r *GormUserRepository) List(ctx context.Context) ([]model.User, error) {
	users := make([]model.User, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, storageErr("list users", err)
	}
	return users, nil
}

func (r *GormUserRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored model.User
		if err := tx.First(&stored, "id = ?", user.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
			}
			return storageErr("query user by id", err)
		}
		user.CreatedAt = stored.CreatedAt
		if err := tx.Save(user).Error; err != nil {
			return storageErr("update user", err)
		}
		return nil
	})
}

func (r *GormUserRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if result.Error != nil {
		return storageErr("delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

type GormTweetRepository struct {
	db *gorm.DB
}

func NewGormTweetRepository(db *gorm.DB) *GormTweetRepository {
	return &GormTweetRepository{db: db}
}

func (r *GormTweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("tweet %s: %w", tweet.ID, ErrDuplicateKey)
		}
		return storageErr("create tweet", err)
	}
	return nil
}

func (r *GormTweetRepository) GetByID(ctx context.Context, id string) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tweet %s: %w", id, ErrNotFound)
		}
		return nil, storageErr("query tweet by id", err)
	}
	return &tweet, nil
}

func (r *GormTweetRepository) List(ctx context.Context) ([]model.Tweet, error) {
	tweets := make([]model.Tweet, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&tweets).Error; err != nil {
		return nil, storageErr("list tweets", err)
	}
	return tweets, nil
}

func (r *GormTweetRepository) Update(ctx context.Context, tweet *model.Tweet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored model.Tweet
		if err := tx.First(&stored, "id = ?", tweet.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("tweet %s: %w", tweet.ID, ErrNotFound)
			}
			return storageErr("query tweet by id", err)
		}
		tweet.CreatedAt = stored.CreatedAt
		if err := tx.Save(tweet).Error; err != nil {
			return storageErr("update tweet", err)
		}
		return nil
	})
}

func (r *GormTweetRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.Tweet{}, "id = ?", id)
	if result.Error != nil {
		return storageErr("delete tweet", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("tweet %s: %w", id, ErrNotFound)
	}
	return nil
}

type GormAuditRepository struct {
	db *gorm.DB
}

func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

func (r *GormAuditRepository) Create(ctx context.Context, entry *model.AuditEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return storageErr("create audit entry", err)
	}
	return nil
}

func (r *GormAuditRepository) ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	entries := make([]model.AuditEntry, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, storageErr("list audit entries", err)
	}
	return entries, nil
}
