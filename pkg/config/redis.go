package config

import (
	"strconv"

	"github.com/go-redis/redis"
	"github.com/rs/zerolog/log"
)

// InitRedis initializes the Redis client used by the like cache
func InitRedis(cfg *Config) (*redis.Client, error) {
	db, err := strconv.Atoi(cfg.RedisDB)
	if err != nil {
		db = 0
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       db,
	})

	if err := client.Ping().Err(); err != nil {
		return nil, err
	}

	log.Info().Str("addr", cfg.RedisAddr).Msg("connected to Redis")
	return client, nil
}
