package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/softglass/calculator-backend/model"
)

// Repository caches public user profiles. Users are never mutated after
// registration, so entries only expire.
type Repository interface {
	GetProfile(ctx context.Context, userID uint64) (*model.UserProfile, error)
	SetProfile(ctx context.Context, profile *model.UserProfile, ttl time.Duration) error
}

type repo struct {
	client *redis.Client
}

// NewRepository returns a Redis Repository implementation. A nil client
// yields a cache that always misses.
func NewRepository(client *redis.Client) Repository {
	return &repo{client: client}
}

func profileKey(userID uint64) string {
	return "user:" + strconv.FormatUint(userID, 10)
}

// GetProfile returns (nil, nil) on a cache miss.
func (r *repo) GetProfile(ctx context.Context, userID uint64) (*model.UserProfile, error) {
	if r.client == nil {
		return nil, nil
	}
	val, err := r.client.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var profile model.UserProfile
	if err := json.Unmarshal(val, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repo) SetProfile(ctx context.Context, profile *model.UserProfile, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	b, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, profileKey(profile.ID), b, ttl).Err()
}
