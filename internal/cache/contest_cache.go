package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

const (
	contestKeyPrefix = "contest:"
	contestListKey   = "contests:all"
)

// Client is the subset of *redis.Client the cache needs
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ repositories.ContestRepository = (*ContestCache)(nil)

// ContestCache is a read-through cache in front of a ContestRepository.
// Every write goes to the repository first and then evicts the affected keys.
// Redis failures degrade to repository reads.
type ContestCache struct {
	next   repositories.ContestRepository
	client Client
	ttl    time.Duration
}

// NewContestCache wraps next with a redis cache whose entries live for ttl
func NewContestCache(next repositories.ContestRepository, client Client, ttl time.Duration) *ContestCache {
	return &ContestCache{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

type contestList struct {
	Contests []*models.Contest `bson:"contests"`
}

func (c *ContestCache) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Contest, error) {
	key := contestKeyPrefix + id.Hex()
	var cached models.Contest
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	contest, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, contest)
	return contest, nil
}

func (c *ContestCache) FindAll(ctx context.Context) ([]*models.Contest, error) {
	var cached contestList
	if c.get(ctx, contestListKey, &cached) {
		if cached.Contests == nil {
			cached.Contests = []*models.Contest{}
		}
		return cached.Contests, nil
	}

	contests, err := c.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, contestListKey, contestList{Contests: contests})
	return contests, nil
}

func (c *ContestCache) Create(ctx context.Context, contest *models.Contest) error {
	if err := c.next.Create(ctx, contest); err != nil {
		return err
	}
	c.evict(ctx, contestListKey)
	return nil
}

func (c *ContestCache) Update(ctx context.Context, contest *models.Contest) error {
	if err := c.next.Update(ctx, contest); err != nil {
		return err
	}
	c.evict(ctx, contestKeyPrefix+contest.ID.Hex(), contestListKey)
	return nil
}

func (c *ContestCache) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.evict(ctx, contestKeyPrefix+id.Hex(), contestListKey)
	return nil
}

func (c *ContestCache) IncrementEntries(ctx context.Context, id primitive.ObjectID) error {
	if err := c.next.IncrementEntries(ctx, id); err != nil {
		return err
	}
	c.evict(ctx, contestKeyPrefix+id.Hex(), contestListKey)
	return nil
}

func (c *ContestCache) DecrementEntries(ctx context.Context, id primitive.ObjectID) error {
	if err := c.next.DecrementEntries(ctx, id); err != nil {
		return err
	}
	c.evict(ctx, contestKeyPrefix+id.Hex(), contestListKey)
	return nil
}

func (c *ContestCache) Count(ctx context.Context) (int64, error) {
	return c.next.Count(ctx)
}

func (c *ContestCache) get(ctx context.Context, key string, out interface{}) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("Contest cache read failed", "error", err, "key", key)
		}
		return false
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		slog.Warn("Discarding undecodable contest cache entry", "error", err, "key", key)
		c.evict(ctx, key)
		return false
	}
	return true
}

func (c *ContestCache) set(ctx context.Context, key string, value interface{}) {
	raw, err := bson.Marshal(value)
	if err != nil {
		slog.Warn("Failed to encode contest cache entry", "error", err, "key", key)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		slog.Warn("Contest cache write failed", "error", err, "key", key)
	}
}

func (c *ContestCache) evict(ctx context.Context, keys ...string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Error("Contest cache eviction failed, stale reads possible until expiry", "error", fmt.Errorf("del %v: %w", keys, err))
	}
}
