package api

import (
	"context"
	"fmt"

	"repairdesk/internal/app/config"
	"repairdesk/internal/app/handler"
	"repairdesk/internal/app/middleware"
	"repairdesk/internal/app/redis"
	"repairdesk/internal/app/repository"
	"repairdesk/internal/app/service"
	"repairdesk/internal/app/storage"
	"repairdesk/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StartServer собирает приложение из конфигурации и запускает HTTP API
func StartServer(ctx context.Context) error {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("ошибка чтения конфигурации: %w", err)
	}

	repo, err := repository.New(cfg.Store)
	if err != nil {
		return fmt.Errorf("ошибка инициализации репозитория: %w", err)
	}
	defer repo.Close()

	if cfg.Store.AutoMigrate {
		if err := repo.Migrate(); err != nil {
			return err
		}
	}

	svc := service.New(repo, service.WithPasswordMode(cfg.Auth.PasswordMode))

	var (
		blacklist middleware.Blacklist
		revoker   handler.Revoker
		photos    handler.PhotoStore
	)

	if cfg.Redis.Host != "" {
		redisClient, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		blacklist, revoker = redisClient, redisClient
	} else {
		logrus.Warn("redis is not configured, logout will not revoke tokens")
	}

	if cfg.MinIO.Endpoint != "" {
		minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO.Endpoint, cfg.MinIO.AccessKey,
			cfg.MinIO.SecretKey, cfg.MinIO.Bucket, cfg.MinIO.UseSSL)
		if err != nil {
			return err
		}
		photos = minioClient
	} else {
		logrus.Warn("minio is not configured, photos are disabled")
	}

	auth := middleware.NewAuthMiddleware(blacklist, cfg)
	h := handler.NewHandler(svc, auth, cfg, revoker, photos)

	app := pkg.NewApp(cfg, gin.Default(), h)
	return app.RunApp()
}
