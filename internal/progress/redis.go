package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "extraction:progress:"
	keyTTL    = 30 * time.Minute
	writeWait = 2 * time.Second
)

// Redis stores the latest update per task in Redis so a separate web
// process can poll it.
type Redis struct {
	client *redis.Client
}

// NewRedis parses redisURL and verifies connectivity.
func NewRedis(ctx context.Context, redisURL string) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Report(taskID string, percent int, stage string) {
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()

	data, err := json.Marshal(Update{Percent: percent, Stage: stage})
	if err != nil {
		log.Printf("⚠️ Failed to marshal progress update: %v", err)
		return
	}
	if err := r.client.Set(ctx, keyPrefix+taskID, data, keyTTL).Err(); err != nil {
		log.Printf("⚠️ Failed to write progress for task %s: %v", taskID, err)
	}
}

func (r *Redis) Fetch(ctx context.Context, taskID string) (Update, bool, error) {
	data, err := r.client.Get(ctx, keyPrefix+taskID).Bytes()
	if err == redis.Nil {
		return Update{}, false, nil
	}
	if err != nil {
		return Update{}, false, fmt.Errorf("read progress for task %s: %w", taskID, err)
	}

	var u Update
	if err := json.Unmarshal(data, &u); err != nil {
		return Update{}, false, fmt.Errorf("decode progress for task %s: %w", taskID, err)
	}
	return u, true, nil
}
