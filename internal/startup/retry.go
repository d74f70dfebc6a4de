package startup

import (
	"os"
	"time"

	"github.com/chatcore/internal/logger"
)

const maxBackoff = 30 * time.Second

// retry вызывает attempt, пока он не вернёт nil, удваивая паузу между попытками.
// По истечении maxWait процесс завершается.
func retry(maxWait time.Duration, logPrefix, what string, attempt func() error) {
	deadline := time.Now().Add(maxWait)
	backoff := 2 * time.Second
	for {
		err := attempt()
		if err == nil {
			return
		}
		if time.Now().After(deadline) {
			logger.Errorf("%s%s (gave up after %v): %v", logPrefix, what, maxWait, err)
			os.Exit(1)
		}
		logger.Errorf("%s%s failed, retry in %v: %v", logPrefix, what, backoff, err)
		time.Sleep(backoff)
		if backoff < maxBackoff {
			backoff *= 2
		}
	}
}
