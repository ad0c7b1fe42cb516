// Package daemon wires the inventory services behind a single-instance
// local HTTP server.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"stockroom/internal/api"
	"stockroom/internal/assets"
	"stockroom/internal/config"
	"stockroom/internal/hashtags"
	"stockroom/internal/inventory"
	"stockroom/internal/ledger"
	"stockroom/internal/logging"
	"stockroom/internal/photos"
)

// Daemon owns the request boundary and enforces single-instance
// execution over the shared ledger and photo folders.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	sessionID string

	items      *api.ItemService
	stats      *api.StatsService
	library    *photos.Library
	renderer   *photos.Renderer
	replicator *assets.Replicator

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	api     *apiServer
	cancel  context.CancelFunc
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("daemon requires config and logger")
	}

	store := ledger.NewStore(cfg.LedgerPath(), ledger.IDAllocation{
		Prefix: cfg.Ledger.IDPrefix,
		Start:  cfg.Ledger.IDStart,
		Width:  cfg.Ledger.IDWidth,
	})
	replicator := assets.NewReplicator(cfg.Paths.CategoryDir, cfg.Paths.ItemsDir)
	bank, err := hashtags.LoadBank(cfg.HashtagBankPath())
	if err != nil {
		return nil, fmt.Errorf("load hashtag bank: %w", err)
	}
	inventorySvc := inventory.NewService(store, replicator, bank, cfg.Paths.StagingDir, cfg.Photos.MaxPerItem, logger)
	library := photos.NewLibrary(cfg.Paths.StagingDir, cfg.Photos.Extensions, logger)

	d := &Daemon{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "daemon"),
		sessionID:  uuid.NewString(),
		items:      api.NewItemService(inventorySvc),
		stats:      api.NewStatsService(inventorySvc, library),
		library:    library,
		renderer:   photos.NewRenderer(cfg.Photos.PreviewMaxDim, cfg.Photos.PreviewQuality),
		replicator: replicator,
		lockPath:   cfg.LockPath(),
		lock:       flock.New(cfg.LockPath()),
	}
	d.api = newAPIServer(cfg.Paths.APIBind, d, logger)
	return d, nil
}

// SessionID identifies this daemon run in logs and status output.
func (d *Daemon) SessionID() string { return d.sessionID }

// Start acquires the instance lock and brings up the API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another stockroom daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.api.start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return err
	}
	d.cancel = cancel

	d.running.Store(true)
	d.logger.Info("stockroom daemon started",
		logging.String("session_id", d.sessionID),
		logging.String("lock", d.lockPath),
		logging.String("bind", d.cfg.Paths.APIBind),
	)
	return nil
}

// Stop shuts the API server down and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("stockroom daemon stopped")
}

// Run starts the daemon and blocks until the context is canceled.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	d.Stop()
	return nil
}
