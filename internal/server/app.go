// Package server initializes and runs the API server. It opens the database,
// applies migrations, wires repositories, services and the HTTP surface, and
// handles graceful shutdown together with the background cleanup loop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/adhalianna/trackers/internal/logging"
	"github.com/adhalianna/trackers/internal/server/auth"
	"github.com/adhalianna/trackers/internal/server/config"
	"github.com/adhalianna/trackers/internal/server/httpapi"
	"github.com/adhalianna/trackers/internal/server/mail"
	"github.com/adhalianna/trackers/internal/server/repositories/repomanager"
	"github.com/adhalianna/trackers/internal/server/services"
)

const cleanupInterval = 10 * time.Minute

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	api           *httpapi.API
	sessions      *services.SessionService
	registrations *services.RegistrationService
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	codec := auth.NewCodec(cfg)

	var mailer mail.Sender
	if cfg.SendgridAPIKey != "" {
		mailer = mail.NewSendgridSender(cfg)
	} else {
		mailer = mail.NewLogSender(logger)
	}

	sessions := services.NewSessionService(db, rm, codec, cfg)
	registrations := services.NewRegistrationService(db, rm, mailer)

	api := httpapi.NewAPI(logger, codec, cfg.Realm, httpapi.Services{
		Sessions:      sessions,
		Registrations: registrations,
		Trackers:      services.NewTrackerService(db, rm),
		Tasks:         services.NewTaskService(db, rm),
		Clients:       services.NewClientService(db, rm),
		Attachments:   services.NewAttachmentService(db, rm, cfg),
		Users:         services.NewUserService(db, rm),
	})

	return &App{
		config:        cfg,
		logger:        logger,
		db:            db,
		repomanager:   rm,
		api:           api,
		sessions:      sessions,
		registrations: registrations,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	server := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.api.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "server shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startCleanupLoop periodically drops expired sessions and stale
// registration requests.
func (app *App) startCleanupLoop(ctx context.Context) {

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := app.sessions.CleanupExpired(ctx); err != nil {
				app.logger.Error(ctx, "session cleanup error", "error", err)
			} else if n > 0 {
				app.logger.Info(ctx, "expired sessions removed", "count", n)
			}
			if n, err := app.registrations.CleanupExpired(ctx); err != nil {
				app.logger.Error(ctx, "registration cleanup error", "error", err)
			} else if n > 0 {
				app.logger.Info(ctx, "expired registration requests removed", "count", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app...")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migration error", "error", err)
		return
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startCleanupLoop(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
