package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MarinusJvRe/TrophyVault/internal/config"
	"github.com/MarinusJvRe/TrophyVault/internal/database"
	"github.com/MarinusJvRe/TrophyVault/internal/handlers"
	"github.com/MarinusJvRe/TrophyVault/internal/middleware"
	"github.com/MarinusJvRe/TrophyVault/internal/services"
	"github.com/MarinusJvRe/TrophyVault/internal/storage"
	"github.com/MarinusJvRe/TrophyVault/pkg/logger"
	"github.com/MarinusJvRe/TrophyVault/pkg/utils"
	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	logger.Init()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.ExpirationHours)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("storage initialization failed: %v", err)
	}
	if err := store.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("failed ensuring storage bucket: %v", err)
	}

	deps := handlers.Deps{DB: db, Store: store, Config: cfg}
	if cfg.OIDC.Enabled() {
		identity, err := services.NewOIDCService(context.Background(), cfg.OIDC)
		if err != nil {
			log.Fatalf("oidc initialization failed: %v", err)
		}
		deps.Identity = identity
	} else {
		logger.Warn("oidc_disabled", map[string]interface{}{
			"reason": "OIDC_ISSUER_URL or OIDC_CLIENT_ID not set",
		})
	}

	// Leave headroom above the image limit so oversized uploads get a
	// readable 400 instead of a bare 413.
	bodyLimit := int(2 * cfg.Upload.MaxImageBytes)

	app := fiber.New(fiber.Config{BodyLimit: bodyLimit})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS(cfg.Server.FrontendURL))
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	handlers.RegisterRoutes(app, deps)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":            cfg.Server.Port,
		"address":         listenAddr,
		"body_limit":      humanize.IBytes(uint64(bodyLimit)),
		"db_driver":       cfg.DB.Driver,
		"storage_backend": cfg.Storage.Backend,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
