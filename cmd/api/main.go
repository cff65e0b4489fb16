package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"docustamp/contract-portal-backend/internal/auth"
	"docustamp/contract-portal-backend/internal/catalog"
	"docustamp/contract-portal-backend/internal/config"
	"docustamp/contract-portal-backend/internal/contracts"
	"docustamp/contract-portal-backend/pkg/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	ctx := context.Background()

	// A failed storage or catalog init leaves the service running degraded:
	// requests get a clear "not configured" error instead of a crash.
	var store storage.BlobStore
	cat := catalog.New()
	if cfg.Storage.Bucket == "" {
		slog.Error("FATAL: S3_BUCKET_NAME environment variable not set, document generation is disabled")
	} else {
		s3store, err := storage.NewS3Store(ctx, storage.S3Options{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
		})
		if err != nil {
			slog.Error("FATAL STARTUP ERROR: could not initialize storage", "error", err)
		} else {
			store = s3store
			slog.Info("connected to storage bucket", "bucket", cfg.Storage.Bucket)
			if err := cat.Load(ctx, store); err != nil {
				slog.Error("FATAL STARTUP ERROR: could not load template catalog", "error", err)
			}
		}
	}

	var repo contracts.Repository
	if cfg.Database.URL != "" {
		db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{})
		if err != nil {
			slog.Error("could not connect to audit database, audit log disabled", "error", err)
		} else if repo, err = contracts.NewRepository(db); err != nil {
			slog.Error("could not prepare audit database, audit log disabled", "error", err)
			repo = nil
		}
	}

	service := contracts.NewService(cat, store, repo, slog.Default())
	handler := contracts.NewHandler(service)

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API alive!", "catalog_ready": cat.Ready()})
	})

	api := r.Group("/", auth.RequireAPIKey(cfg.Auth.APIKey, cfg.Auth.JWTSecret))
	handler.RegisterRoutes(api)

	addr := cfg.Server.GetServerAddr()
	log.Println("Server running on", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
