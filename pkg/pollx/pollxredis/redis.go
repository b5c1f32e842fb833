package pollxredis

import (
	"context"
	"errors"

	"github.com/Abraxas-365/cheapalerts/pkg/pollx"
	"github.com/redis/go-redis/v9"
)

// Getter is the part of redis.Cmdable used to read a status.
type Getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Source reads the status stored under key. A missing key or an empty value
// means "no status".
func Source(rdb Getter, key string) pollx.StatusFunc {
	return func(ctx context.Context) (string, bool, error) {
		val, err := rdb.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		if err != nil {
			return "", false, redisErrors.NewWithCause(ErrGet, err).WithDetail("key", key)
		}
		if val == "" {
			return "", false, nil
		}
		return val, true, nil
	}
}
