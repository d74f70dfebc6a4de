package startup

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectDBWithRetry подключается к Postgres с повторами; при недоступности БД не роняет процесс сразу.
// logPrefix добавляется к сообщениям лога (например "api: ").
func ConnectDBWithRetry(poolCfg *pgxpool.Config, maxWait time.Duration, logPrefix string) *pgxpool.Pool {
	var pool *pgxpool.Pool
	retry(maxWait, logPrefix, "db connect", func() error {
		p, err := connectDB(poolCfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	})
	return pool
}

func connectDB(poolCfg *pgxpool.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	cancel()
	if err != nil {
		return nil, err
	}
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}
