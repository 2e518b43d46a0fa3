package app

import (
	"context"
	"log"
	"time"

	"microblog/internal/event"
	"microblog/internal/model"
	"microblog/internal/repository"
	"microblog/internal/validation"
)

type TweetEventPublisher interface {
	Publish(ctx context.Context, ev event.TweetEvent) error
}

type TweetService struct {
	tweets    repository.TweetRepository
	users     repository.UserRepository
	publisher TweetEventPublisher
}

// NewTweetService wires the tweet store with the user store used to
// resolve authors. publisher may be nil when no broker is configured.
func NewTweetService(tweets repository.TweetRepository, users repository.UserRepository, publisher TweetEventPublisher) *TweetService {
	return &TweetService{
		tweets:    tweets,
		users:     users,
		publisher: publisher,
	}
}

type PostTweetInput struct {
	TweetID  string
	Content  string
	ByUserID string
}

func (s *TweetService) Post(ctx context.Context, in PostTweetInput) (*model.Tweet, error) {
	author, err := s.users.GetByID(ctx, in.ByUserID)
	if err != nil {
		return nil, err
	}

	tweet, err := validation.Tweet(validation.TweetInput{
		TweetID: in.TweetID,
		Content: in.Content,
	}, author.PublicProfile())
	if err != nil {
		return nil, err
	}
	tweet.CreatedAt = time.Now().UTC()

	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, event.ActionTweetCreated, tweet)
	return tweet, nil
}

func (s *TweetService) Get(ctx context.Context, id string) (*model.Tweet, error) {
	return s.tweets.GetByID(ctx, id)
}

func (s *TweetService) List(ctx context.Context) ([]model.Tweet, error) {
	return s.tweets.List(ctx)
}

// Update replaces the content, re-validates and stamps updated_at.
// Author and created_at are immutable.
func (s *TweetService) Update(ctx context.Context, id, content string) (*model.Tweet, error) {
	current, err := s.tweets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := validation.TweetUpdate(*current, content)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	merged.UpdatedAt = &now

	if err := s.tweets.Update(ctx, merged); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, event.ActionTweetUpdated, merged)
	return merged, nil
}

func (s *TweetService) Delete(ctx context.Context, id string) (string, error) {
	tweet, err := s.tweets.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.tweets.Delete(ctx, id); err != nil {
		return "", err
	}
	s.publishEvent(ctx, event.ActionTweetDeleted, tweet)
	return id, nil
}

func (s *TweetService) publishEvent(ctx context.Context, action string, tweet *model.Tweet) {
	if s.publisher == nil {
		return
	}
	ev := event.TweetEvent{
		Action:     action,
		TweetID:    tweet.ID,
		AuthorID:   tweet.By.UserID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		log.Printf("publish tweet event failed: %v", err)
	}
}
