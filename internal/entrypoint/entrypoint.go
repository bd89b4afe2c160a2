package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/locallibrary/internal/audit"
	"github.com/openshelf/locallibrary/internal/config"
	"github.com/openshelf/locallibrary/internal/database"
	auditstore "github.com/openshelf/locallibrary/internal/database/audit"
	"github.com/openshelf/locallibrary/internal/database/authors"
	"github.com/openshelf/locallibrary/internal/database/books"
	"github.com/openshelf/locallibrary/internal/database/genres"
	"github.com/openshelf/locallibrary/internal/database/instances"
	http_controllers "github.com/openshelf/locallibrary/internal/http"
	"github.com/openshelf/locallibrary/internal/scheduler"
	"github.com/openshelf/locallibrary/internal/security"
	"github.com/openshelf/locallibrary/internal/sessions"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	// Wait for interrupt signal to gracefully shutdown the server with
	// the configured timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop background pruning)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// csrfSecret decodes the configured session secret, generating one
// when the environment provides none.
func csrfSecret(cfg *config.Config) []byte {
	if cfg.Sessions.Secret != "" {
		secret, err := hex.DecodeString(cfg.Sessions.Secret)
		if err != nil {
			// Not hex, use as raw bytes
			return []byte(cfg.Sessions.Secret)
		}
		return secret
	}

	generated, err := security.GenerateSecret()
	if err != nil {
		log.Fatalf("Failed to generate CSRF secret: %v", err)
	}
	log.Printf("Generated session secret (set SESSION_SECRET to persist sessions across restarts)")
	secret, _ := hex.DecodeString(generated)
	return secret
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting LocalLibrary v%s", version)

	if !cfg.Global.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Catalog stores
	authorStore := authors.NewRepository(db.DB)
	genreStore := genres.NewRepository(db.DB)
	bookStore := books.NewRepository(db.DB)
	instanceStore := instances.NewRepository(db.DB)

	// Audit trail service with scheduled pruning of expired events
	auditor := audit.NewService(auditstore.NewRepository(db.DB))
	retention := time.Duration(cfg.Audit.RetentionDays) * 24 * time.Hour
	pruner := scheduler.NewAuditPruneScheduler(auditor, cfg.Audit.PruneSchedule, retention)
	if err := pruner.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start audit prune scheduler: %v", err)
	}

	// Session store for flash messages, kept in its own database file
	sessionManager, err := sessions.NewManager(cfg.Database.SessionsPath, cfg.Sessions.Lifetime, cfg.Sessions.SecureCookies)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}
	defer func() {
		if err := sessionManager.Close(); err != nil {
			log.Printf("Error closing session store: %v", err)
		}
	}()

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		AuthorStore:    authorStore,
		GenreStore:     genreStore,
		BookStore:      bookStore,
		InstanceStore:  instanceStore,
		Database:       db,
		Auditor:        auditor,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret(cfg),
		SecureCookies:  cfg.Sessions.SecureCookies,
		RateLimit: security.RateLimitConfig{
			Enabled: cfg.RateLimit.Enabled,
			RPS:     cfg.RateLimit.RPS,
			Burst:   cfg.RateLimit.Burst,
		},
		Version:           version,
		Debug:             cfg.Global.Debug,
		RecentEventsLimit: cfg.Audit.RecentLimit,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		pruner.Stop()
	}

	Serve(router, cfg, onShutdown)
}
