package database

import (
	"context"
	"fmt"
	"time"

	"github.com/DylanL0ng/student-housing-sub001/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects the client backing filter persistence. A dead
// redis fails startup rather than surfacing later as filter load errors.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
