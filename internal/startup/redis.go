package startup

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chatcore/internal/logger"
	"github.com/redis/go-redis/v9"
)

// ConnectRedisWithRetry подключается к Redis с повторами.
func ConnectRedisWithRetry(redisURL string, maxWait time.Duration, logPrefix string) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Errorf("%sredis parse url: %v", logPrefix, err)
		os.Exit(1)
	}
	var cli *redis.Client
	retry(maxWait, logPrefix, "redis connect", func() error {
		c, err := pingRedis(opts)
		if err != nil {
			return err
		}
		cli = c
		return nil
	})
	return cli
}

func pingRedis(opts *redis.Options) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cli := redis.NewClient(opts)
	if err := cli.Ping(ctx).Err(); err != nil {
		if closeErr := cli.Close(); closeErr != nil {
			return nil, fmt.Errorf("redis ping: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return cli, nil
}
