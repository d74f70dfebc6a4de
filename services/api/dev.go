package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"

	"github.com/chatcore/internal/config"
	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/middleware"
	"github.com/chatcore/internal/model"
	"github.com/chatcore/internal/repository"
)

// devTokenTTL: срок жизни токена, выданного через -issue-token.
const devTokenTTL = 30 * 24 * time.Hour

func startEmbeddedPostgres(cfg *config.Config) (*embeddedpostgres.EmbeddedPostgres, error) {
	const (
		port     = 5432
		user     = "chatcore"
		password = "chatcore_secret"
		database = "chatcore"
	)

	dataDir := filepath.Join(".", ".pgdata")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create pgdata dir: %w", err)
	}

	db := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(port).
			Username(user).
			Password(password).
			Database(database).
			DataPath(dataDir).
			RuntimePath(filepath.Join(os.TempDir(), "embedded-pg-runtime")),
	)

	logger.Info("starting embedded PostgreSQL...")
	if err := db.Start(); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	cfg.Database.URL = fmt.Sprintf(
		"postgres://%s:%s@localhost:%d/%s?sslmode=disable",
		user, password, port, database,
	)
	logger.Infof("embedded PostgreSQL running on port %d", port)
	return db, nil
}

// printToken выдаёт токен пользователю username, создавая его при первом обращении.
func printToken(users *repository.UserRepository, secret, username string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	u, err := users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		u = &model.User{Username: username}
		if err = users.Create(ctx, u); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		logger.Infof("user %s created: %s", username, u.ID)
	} else if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	token, err := middleware.IssueToken(secret, u.ID, devTokenTTL)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
