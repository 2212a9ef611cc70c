package daemon

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/questforge/questforge/internal/api"
	"github.com/questforge/questforge/internal/app/achievement"
	"github.com/questforge/questforge/internal/app/chest"
	"github.com/questforge/questforge/internal/app/profile"
	"github.com/questforge/questforge/internal/app/progression"
	"github.com/questforge/questforge/internal/app/reset"
	"github.com/questforge/questforge/internal/app/snapshot"
	"github.com/questforge/questforge/internal/app/store"
	"github.com/questforge/questforge/internal/app/streak"
	"github.com/questforge/questforge/internal/app/tracker"
	"github.com/questforge/questforge/internal/domain"
	_ "github.com/questforge/questforge/internal/infra/metrics" // Register Prometheus metrics
	"github.com/questforge/questforge/internal/infra/sqlite"
)

// Daemon is the core questforge runtime. It wires together all
// services.
type Daemon struct {
	Config   Config
	DB       *sqlite.DB
	Profiles *profile.Store
	XP       *progression.Engine
	Streaks  *streak.Tracker
	Resets   *reset.Scheduler
	Chests   *chest.Resolver
	Ledger   *store.Ledger
	Unlocks  *achievement.Evaluator
	Trackers *tracker.Service
	Snaps    *snapshot.Manager
	Server   *api.Server

	clock  domain.Clock
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

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	configureLogging(cfg.Logging)

	db, err := sqlite.Open(Home())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	clock := domain.RealClock{}

	profiles, err := profile.NewStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load profile: %w", err)
	}

	d := &Daemon{
		Config:   cfg,
		DB:       db,
		Profiles: profiles,
		clock:    clock,
	}

	d.XP = progression.New(profiles, clock)
	d.Streaks = streak.New(profiles, clock)
	d.Chests = chest.New(profiles, clock, rand.New(rand.NewSource(time.Now().UnixNano())))
	d.Ledger = store.New(profiles, db, clock)
	d.Unlocks = achievement.New(db, clock)
	d.Trackers = tracker.New(db, profiles, d.XP, d.Streaks, d.Unlocks, clock)
	d.Resets = reset.New(profiles, d.Trackers, clock)
	d.Snaps = snapshot.New(profiles, db)

	srv := api.NewServer(profiles, d.XP, d.Chests, d.Ledger, d.Unlocks, d.Trackers, d.Snaps)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// configureLogging applies the logging config to the process logger.
func configureLogging(cfg LoggingConfig) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

// Tick runs one engine poll: the daily rollover first, so penalties
// settle against the finished day before anything else moves.
func (d *Daemon) Tick() {
	if err := d.Resets.Tick(); err != nil {
		log.WithError(err).Warn("daily rollover tick failed")
	}
}

// Serve starts the HTTP server and the background tick loop, blocking
// until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Background rollover loop. One immediate tick catches a rollover
	// that happened while the daemon was down.
	go func() {
		d.Tick()
		ticker := time.NewTicker(d.Config.Engine.Interval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				d.Tick()
			}
		}
	}()

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: time.Minute,
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

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	log.WithField("addr", addr).Info("questforge serving")
	if d.Config.Telemetry.Prometheus {
		log.Infof("metrics: http://%s/metrics", addr)
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
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
