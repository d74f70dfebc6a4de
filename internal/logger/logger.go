// Package logger wraps a zap-backed slog logger behind the package-level helpers used across
// the service: a service prefix, printf-style levels and function duration logging.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SlowCallThreshold is the duration above which LogDuration logs outside debug level.
const SlowCallThreshold = 100 * time.Millisecond

var (
	mu     sync.RWMutex
	log    *slog.Logger
	level  = new(slog.LevelVar)
	prefix string
)

// Init builds the default logger writing JSON to stdout. lvl is one of debug, info, warn, error;
// an empty lvl falls back to LOG_LEVEL.
func Init(lvl string) {
	if lvl == "" {
		lvl = os.Getenv("LOG_LEVEL")
	}
	level.Set(parseLevel(lvl))

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(os.Stdout), zapcore.DebugLevel)
	// burst sampling: first 100 per second, then every 10th
	core = zapcore.NewSamplerWithOptions(core, time.Second, 100, 10)
	setCore(core)
}

func setCore(core zapcore.Core) {
	h := slogzap.Option{Level: level, Logger: zap.New(core)}.NewZapHandler()

	mu.Lock()
	defer mu.Unlock()
	log = slog.New(h)
	if prefix != "" {
		log = log.With(slog.String("service", prefix))
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func current() *slog.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init("")
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetPrefix tags every following record with service=p (for example "api").
func SetPrefix(p string) {
	mu.Lock()
	defer mu.Unlock()
	prefix = p
	if log != nil {
		log = log.With(slog.String("service", p))
	}
}

// L exposes the underlying structured logger for callers that want attributes.
func L() *slog.Logger { return current() }

func Debugf(format string, v ...any) { current().Debug(fmt.Sprintf(format, v...)) }

func Info(v ...any) { current().Info(fmt.Sprint(v...)) }

func Infof(format string, v ...any) { current().Info(fmt.Sprintf(format, v...)) }

func Warnf(format string, v ...any) { current().Warn(fmt.Sprintf(format, v...)) }

func Error(v ...any) { current().Error(fmt.Sprint(v...)) }

func Errorf(format string, v ...any) { current().Error(fmt.Sprintf(format, v...)) }

// LogDuration logs fn with its elapsed milliseconds. At debug level every call is logged,
// otherwise only calls slower than SlowCallThreshold.
func LogDuration(fn string, start time.Time) {
	elapsed := time.Since(start)
	attrs := []any{slog.String("fn", fn), slog.Int64("duration_ms", elapsed.Milliseconds())}
	if elapsed >= SlowCallThreshold {
		current().Warn("slow call", attrs...)
		return
	}
	current().Debug("call", attrs...)
}

// DeferLogDuration returns a closure for defer: defer logger.DeferLogDuration("convRepo.Create", time.Now())().
func DeferLogDuration(fn string, start time.Time) func() {
	return func() { LogDuration(fn, start) }
}
