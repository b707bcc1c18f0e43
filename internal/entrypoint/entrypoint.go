// Package entrypoint wires configuration, the selected storage backend and
// the HTTP router into a running process.
package entrypoint

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eren/sozluk/internal/config"
	http_controllers "github.com/eren/sozluk/internal/http"
	"github.com/eren/sozluk/internal/storage"
	"github.com/eren/sozluk/internal/storage/memdb"
	"github.com/eren/sozluk/internal/storage/sqldb"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Run builds the whole process from configuration and serves until a
// termination signal arrives.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting sozluk v%s (backend: %s)", version, cfg.Database.Backend)

	store, sqlDB, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	sessionManager, err := http_controllers.NewSessionManager(sqlDB, cfg.Session)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	secret := []byte(cfg.Session.Secret)
	if len(secret) == 0 {
		secret = randomSecret()
		log.Printf("SESSION_SECRET not set, generated an ephemeral one; sessions will not survive restarts")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Store:          store,
		SessionManager: sessionManager,
		CSRFSecret:     secret,
		SecureCookies:  cfg.Session.SecureCookies,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		Timezone:       time.Duration(cfg.UI.TimezoneOffsetHours) * time.Hour,
	})

	Serve(router, cfg, func(ctx context.Context) {
		if sqlDB != nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("Error closing database: %v", err)
			}
		}
	})
}

// openStore selects the backend per configuration. The returned *sql.DB is
// non-nil only for the relational backend and is reused for session storage.
func openStore(cfg *config.Config) (storage.Sozluk, *sql.DB, error) {
	switch cfg.Database.Backend {
	case config.BackendMemory:
		db, err := memdb.Open(cfg.Database.SnapshotPath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Snapshot store initialized at %s", cfg.Database.SnapshotPath)
		return db, nil, nil

	case config.BackendSQLite:
		repo, err := sqldb.Open(cfg.Database.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := repo.DB().DB()
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Relational store initialized at %s", cfg.Database.SQLitePath)
		return repo, sqlDB, nil

	default:
		return nil, nil, fmt.Errorf("unknown database backend %q", cfg.Database.Backend)
	}
}

func randomSecret() []byte {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		log.Fatalf("Failed to generate session secret: %v", err)
	}
	return secret
}

// Serve runs the router with graceful shutdown on SIGINT/SIGTERM.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}
