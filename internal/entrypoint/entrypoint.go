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

	"github.com/mrlokans/fitadmin/internal/audit"
	"github.com/mrlokans/fitadmin/internal/auth"
	"github.com/mrlokans/fitadmin/internal/config"
	"github.com/mrlokans/fitadmin/internal/database"
	dbaudit "github.com/mrlokans/fitadmin/internal/database/audit"
	"github.com/mrlokans/fitadmin/internal/database/programs"
	"github.com/mrlokans/fitadmin/internal/exporters"
	http_controllers "github.com/mrlokans/fitadmin/internal/http"
	"github.com/mrlokans/fitadmin/internal/importers"
	"github.com/mrlokans/fitadmin/internal/scheduler"
	"github.com/mrlokans/fitadmin/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -9 can't be caught, so only SIGINT and SIGTERM are handled
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the server goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting fitadmin v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	repo := programs.NewRepository(db.DB)

	// Raw request snapshots and the audit event trail
	auditor := audit.NewAuditor(cfg.Audit.Dir)
	auditService := audit.NewService(dbaudit.NewRepository(db.DB))

	orchestrator := importers.NewOrchestrator(repo, importers.Options{
		MaxReportedErrors: cfg.Import.MaxReportedErrors,
	})
	catalogImporter := importers.NewCatalogImporter(repo, importers.CatalogOptions{
		MaxReportedErrors: cfg.Import.MaxReportedErrors,
		StrictRows:        cfg.Import.StrictRows,
	})
	serializer := exporters.NewSerializer(repo)

	// Task queue and the cron jobs feeding it
	var taskClient *tasks.Client
	var sched *scheduler.Scheduler
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.NewConfig(cfg)

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewExportBackupQueue(serializer, auditService, taskCfg.BackupDir),
			tasks.NewCleanupAuditEventsQueue(auditService, taskCfg.AuditRetentionDays),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		sched = scheduler.NewScheduler(taskClient, cfg.Backup)
		if err := sched.Start(taskCtx); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
	} else if cfg.Backup.Enabled {
		log.Printf("WARNING: BACKUP_ENABLED is set but the task queue is disabled; no backups will run")
	}

	authService := auth.NewService(cfg.Auth)
	if err := authService.Validate(); err != nil {
		log.Fatalf("Invalid authentication settings: %v", err)
	}

	var sessionManager *auth.SessionManager
	var csrfSecret []byte
	if authService.IsAuthEnabled() {
		log.Printf("Authentication mode: local (admin %s)", authService.AdminEmail())

		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}

		sessionManager, err = auth.NewSessionManager(sqlDB, cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		csrfSecret, err = SessionSecret(cfg.Auth.SessionSecret)
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
	} else {
		log.Printf("Authentication mode: none (no authentication required)")
	}

	routerCfg := http_controllers.RouterConfig{
		Database:        db,
		Programs:        repo,
		Orchestrator:    orchestrator,
		CatalogImporter: catalogImporter,
		Serializer:      serializer,
		Auditor:         auditor,
		AuditService:    auditService,
		AuthConfig:      cfg.Auth,
		AuthService:     authService,
		SessionManager:  sessionManager,
		CSRFSecret:      csrfSecret,
		Version:         version,
	}
	// A nil *tasks.Client must not become a non-nil interface
	if taskClient != nil {
		routerCfg.TaskClient = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if sched != nil {
			sched.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

// SessionSecret returns the CSRF key for the configured secret: hex is
// decoded, anything else is used as raw bytes, and an empty value yields a
// freshly generated key that lasts until restart.
func SessionSecret(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, nil
		}
		return []byte(configured), nil
	}

	secret, err := auth.GenerateSessionSecret()
	if err != nil {
		return nil, err
	}
	log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	return hex.DecodeString(secret)
}
