package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/chatcore/internal/attachment"
	"github.com/chatcore/internal/config"
	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/metrics"
	"github.com/chatcore/internal/pubsub"
	"github.com/chatcore/internal/push"
	"github.com/chatcore/internal/repository"
	"github.com/chatcore/internal/service"
	"github.com/chatcore/internal/startup"
	"github.com/chatcore/internal/storage"
	"github.com/chatcore/internal/storage/memory"
	redisstorage "github.com/chatcore/internal/storage/redis"
	"github.com/chatcore/internal/ws"
	"github.com/chatcore/migrations"
)

func main() {
	logger.SetPrefix("api")
	migrate := flag.Bool("migrate", false, "run database migrations and exit")
	dev := flag.Bool("dev", false, "start with embedded PostgreSQL (no external DB required)")
	issueFor := flag.String("issue-token", "", "print an access token for the given username (creating the user) and exit")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	logger.Info("starting API service")

	var embeddedDB *embeddedpostgres.EmbeddedPostgres
	if *dev {
		var err error
		embeddedDB, err = startEmbeddedPostgres(cfg)
		if err != nil {
			logger.Errorf("embedded postgres: %v", err)
			os.Exit(1)
		}
		defer func() {
			logger.Info("stopping embedded postgres...")
			if err := embeddedDB.Stop(); err != nil {
				logger.Errorf("embedded postgres stop: %v", err)
			}
		}()
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		logger.Errorf("parse db config: %v", err)
		os.Exit(1)
	}
	poolCfg.MaxConns = int32(cfg.DBMaxConnections())
	poolCfg.MinConns = 4

	pool := startup.ConnectDBWithRetry(poolCfg, 60*time.Second, "")
	defer pool.Close()

	migCtx, migCancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = migrations.Apply(migCtx, pool)
	migCancel()
	if err != nil {
		logger.Errorf("migrations: %v", err)
		os.Exit(1)
	}
	logger.Info("database connected, migrations applied")
	if *migrate {
		return
	}

	users := repository.NewUserRepository(pool)
	if *issueFor != "" {
		if err := printToken(users, cfg.JWTSecret, *issueFor); err != nil {
			logger.Errorf("issue token: %v", err)
			os.Exit(1)
		}
		return
	}

	presenceRepo := repository.NewPresenceRepository(pool)
	resetCtx, resetCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if n, err := presenceRepo.ResetAll(resetCtx); err != nil {
		logger.Errorf("reset presence: %v", err)
	} else if n > 0 {
		logger.Infof("presence: %d users marked offline after restart", n)
	}
	resetCancel()

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = startup.ConnectRedisWithRetry(cfg.RedisURL, 60*time.Second, "")
		defer rdb.Close()
		logger.Info("redis connected, cross-node fan-out enabled")
	}

	tx := repository.NewTxManager(pool)
	convRepo := repository.NewConversationRepository(pool)
	msgRepo := repository.NewMessageRepository(pool)
	receiptRepo := repository.NewReceiptRepository(pool)
	reactionRepo := repository.NewReactionRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)

	hooks := service.NewHooks()
	hooks.OnPanic = metrics.OnHookPanic

	blobs := attachment.NewStore(cfg.UploadDir)
	registry := service.NewConversationRegistry(tx, convRepo, users, msgRepo, receiptRepo, presenceRepo)
	msgLog := service.NewMessageLog(tx, convRepo, msgRepo, receiptRepo, reactionRepo, attachmentRepo, blobs, hooks,
		service.HistoryLimits{Default: cfg.HistoryDefaultLimit, Max: cfg.HistoryMaxLimit})
	receipts := service.NewReadReceiptTracker(tx, convRepo, msgRepo, receiptRepo, hooks)
	reactions := service.NewReactionAggregator(convRepo, msgRepo, reactionRepo, hooks)
	presence := service.NewPresenceBroadcaster(tx, presenceRepo, convRepo, users, hooks)

	pipeline := service.NewAttachmentPipeline(tx, msgLog, attachmentRepo, attachment.NewProcessor(cfg.AttachmentLimits),
		blobs, hooks, cfg.MaxAttachmentsPerMessage)

	var bus ws.Bus
	var redisBus *pubsub.RedisBus
	if rdb != nil {
		redisBus = pubsub.NewRedisBus(rdb)
		bus = redisBus
	} else {
		bus = pubsub.NewLocal()
	}

	hub := ws.NewHub(ws.Config{
		MaxConns:       cfg.MaxWSConnections,
		SendBufferSize: cfg.WSSendBufferSize,
		WriteTimeout:   cfg.WSWriteTimeout,
		PongTimeout:    cfg.WSPongTimeout,
		MaxMessageSize: cfg.WSMaxMessageSize,
		AllowedOrigins: splitOrigins(cfg.CORSAllowedOrigins),
	}, bus, msgLog, receipts, presence, registry, users)

	notifier := newNotifier(cfg, rdb)

	// порядок важен: сначала живые сессии, потом пуши и метрики
	hooks.Register("ws", hub.Hook)
	hooks.Register("push", notifier.Hook)
	hooks.Register("metrics", metrics.Hook)

	r := newRouter(cfg, routes{
		registry:  registry,
		msgLog:    msgLog,
		pipeline:  pipeline,
		receipts:  receipts,
		reactions: reactions,
		presence:  presence,
		blobs:     blobs,
		notifier:  notifier,
		hub:       hub,
	})

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	if redisBus != nil {
		g.Go(func() error {
			if err := redisBus.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		logger.Infof("server listening on %s", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("server shutdown: %v", err)
		}
		logger.Info("server stopped accepting connections")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("server error: %v", err)
	}
	<-hub.Done()
	logger.Info("hub stopped")
	notifier.Wait()
	logger.Info("api stopped")
}

// newNotifier собирает рассыльщик пушей; при выключенных пушах подписки всё равно принимаются.
func newNotifier(cfg *config.Config, rdb *redis.Client) *push.Notifier {
	var subs storage.SubscriptionStore = memory.New()
	if rdb != nil {
		subs = redisstorage.New(rdb)
	}
	if !cfg.PushEnabled {
		return push.NewNotifier(subs, nil, cfg.VAPIDSubscriber)
	}
	keys, err := push.ResolveKeys(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.VAPIDKeysFile)
	if err != nil {
		logger.Errorf("VAPID: не удалось загрузить/сгенерировать ключи: %v; push отключены", err)
		keys = nil
	}
	return push.NewNotifier(subs, keys, cfg.VAPIDSubscriber)
}
