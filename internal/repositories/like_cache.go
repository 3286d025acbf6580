package repositories

import (
	"strconv"

	"github.com/go-redis/redis"
)

// LikeCache is the read-side accelerator for like counts and membership.
// It mirrors the registry: a likers set and a counter key per post, keyed by
// the owner's address.
type LikeCache interface {
	AddLiker(ownerAddress, likerAddress string) error
	IsLiker(ownerAddress, likerAddress string) (bool, error)
	GetLikesCount(ownerAddress string) (uint64, bool, error)
	SetLikesCount(ownerAddress string, likes uint64) error
}

// RedisLikeCache implements LikeCache on Redis
type RedisLikeCache struct {
	client *redis.Client
}

// NewRedisLikeCache creates a new RedisLikeCache
func NewRedisLikeCache(client *redis.Client) *RedisLikeCache {
	return &RedisLikeCache{client: client}
}

func likersKey(ownerAddress string) string {
	return "post:" + ownerAddress + ":likers"
}

func likesKey(ownerAddress string) string {
	return "post:" + ownerAddress + ":likes"
}

// AddLiker adds the liker to the post's set and bumps the counter. SADD
// returns 0 for an already-present member, in which case the counter is left
// alone, so replays keep the two keys consistent.
func (c *RedisLikeCache) AddLiker(ownerAddress, likerAddress string) error {
	added, err := c.client.SAdd(likersKey(ownerAddress), likerAddress).Result()
	if err != nil {
		return err
	}
	if added == 0 {
		return nil
	}
	return c.client.Incr(likesKey(ownerAddress)).Err()
}

// IsLiker checks set membership for a liker
func (c *RedisLikeCache) IsLiker(ownerAddress, likerAddress string) (bool, error) {
	return c.client.SIsMember(likersKey(ownerAddress), likerAddress).Result()
}

// GetLikesCount returns the cached count and whether the key was present
func (c *RedisLikeCache) GetLikesCount(ownerAddress string) (uint64, bool, error) {
	val, err := c.client.Get(likesKey(ownerAddress)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	likes, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return likes, true, nil
}

// SetLikesCount overwrites the counter, used to warm the cache on a miss
func (c *RedisLikeCache) SetLikesCount(ownerAddress string, likes uint64) error {
	return c.client.Set(likesKey(ownerAddress), strconv.FormatUint(likes, 10), 0).Err()
}
