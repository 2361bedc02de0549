package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/avatar-service/internal/http/health"
	"github.com/janisto/avatar-service/internal/http/v1/routes"
	appmiddleware "github.com/janisto/avatar-service/internal/middleware"
	"github.com/janisto/avatar-service/internal/platform/auth"
	"github.com/janisto/avatar-service/internal/platform/config"
	"github.com/janisto/avatar-service/internal/platform/firebase"
	applog "github.com/janisto/avatar-service/internal/platform/logging"
	"github.com/janisto/avatar-service/internal/respond"
	"github.com/janisto/avatar-service/internal/service/avatarsession"
	profilesvc "github.com/janisto/avatar-service/internal/service/profile"
	"github.com/janisto/avatar-service/internal/service/profilesync"
	"github.com/janisto/avatar-service/internal/service/storage"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	ctx := context.Background()

	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	cfg := config.Load()

	clients, err := firebase.InitializeClients(ctx, firebase.Config{
		ProjectID:                    cfg.FirebaseProjectID,
		GoogleApplicationCredentials: cfg.GoogleApplicationCredentials,
	})
	if err != nil {
		applog.LogFatal(ctx, "firebase initialization failed", err)
	}
	defer func() { _ = clients.Close() }()

	verifier := auth.NewFirebaseVerifier(clients.Auth)
	profiles := profilesvc.NewFirestoreStore(clients.Firestore)
	identities := profilesync.NewFirebaseIdentityStore(clients.Auth)
	coordinator := profilesync.NewCoordinator(identities, profiles)
	uploader := storage.NewClient(nil, cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset,
		storage.WithFolder(cfg.CloudinaryUploadFolder))
	sessions := avatarsession.NewManager(uploader, coordinator)

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/v1/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address.
		chimiddleware.RealIP,
		// RequestSize bounds request bodies. Raw avatar uploads need headroom
		// above the validator's 5 MiB cap so the size error is ours, not the
		// transport's.
		chimiddleware.RequestSize(6<<20),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler)

	humaCfg := huma.DefaultConfig("Avatar Service API", Version)
	humaCfg.DocsPath = "/api-docs"
	humaCfg.Servers = []*huma.Server{{URL: "/v1"}}
	respond.Install()

	v1 := chi.NewRouter()
	v1.NotFound(respond.NotFoundHandler())
	v1.MethodNotAllowed(respond.MethodNotAllowedHandler())
	api := humachi.New(v1, humaCfg)
	router.Mount("/v1", v1)

	routes.Register(api, verifier, profiles, sessions, coordinator)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(context.Background(), "server exited")
}
