package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/credify-app/credify/internal/api"
	"github.com/credify-app/credify/internal/app"
	_ "github.com/credify-app/credify/internal/infra/metrics" // Register Prometheus metrics
	"github.com/credify-app/credify/internal/infra/sqlite"
)

// Daemon is the core credify runtime. It wires together the store, the
// gamification engine and the HTTP API.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Engine *app.Engine
	Server *api.Server
	cancel context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration. A
// storage failure is logged, not fatal: the engine runs on in-memory
// state so the app still comes up.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(credifyHome())
	if err != nil {
		log.Printf("[daemon] WARNING: open database: %v (running in memory)", err)
		db = nil
	}

	engine := app.New(db, app.Config{
		EndOfDayHour:  cfg.Gamification.EndOfDayHour,
		RetentionDays: cfg.Gamification.ChallengeRetentionDays,
		SaveDebounce:  parseDuration(cfg.Gamification.SaveDebounce, time.Second),
	})
	if name := cfg.Profile.Name; name != "" {
		engine.Rename(name)
	}

	srv := api.NewServer(engine)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config: cfg,
		DB:     db,
		Engine: engine,
		Server: srv,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Periodic re-evaluation keeps streaks and time-window challenges
	// current even when no record is being logged.
	interval := parseDuration(d.Config.Gamification.ReevalInterval, time.Hour)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				d.Engine.Reevaluate()
			case <-ctx.Done():
				return
			}
		}
	}()

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = d.Engine.Close() // flushes any pending state write
		_ = httpServer.Shutdown(shutdownCtx)
		if d.DB != nil {
			_ = d.DB.Close()
		}
	}()

	fmt.Printf("credify serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.Engine != nil {
		_ = d.Engine.Close()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
