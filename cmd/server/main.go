package main

import (
	"context"
	"net/http"

	"DocPortal/internal/blobstore"
	"DocPortal/internal/config"
	"DocPortal/internal/handlers"
	"DocPortal/internal/middleware"
	"DocPortal/internal/repo"
	"DocPortal/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	middleware.SetLogger(sugar)
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	// MinIO when an endpoint is configured, local disk otherwise
	var blobs blobstore.Store
	if cfg.MinioEndpoint != "" {
		blobs, err = blobstore.NewMinioStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			sugar.Fatalw("failed to connect to MinIO", "endpoint", cfg.MinioEndpoint, "error", err)
		}
	} else {
		blobs, err = blobstore.NewDiskStore(cfg.UploadDir)
		if err != nil {
			sugar.Fatalw("failed to prepare upload directory", "dir", cfg.UploadDir, "error", err)
		}
	}

	containerRepo := repo.NewContainerRepository(gormDB)
	requirementRepo := repo.NewRequirementRepository(gormDB)
	fileRepo := repo.NewFileRepository(gormDB)

	containerService := service.NewContainerService(containerRepo, requirementRepo, sugar)
	requirementService := service.NewRequirementService(requirementRepo, fileRepo, blobs, sugar)
	fileService := service.NewFileService(fileRepo, blobs, sugar)

	h := handlers.NewHandler(containerService, requirementService, fileService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"UploadDir", cfg.UploadDir,
		"MinioEndpoint", cfg.MinioEndpoint,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
