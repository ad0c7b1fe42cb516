package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"stockroom/internal/api"
	"stockroom/internal/assets"
	"stockroom/internal/config"
	"stockroom/internal/hashtags"
	"stockroom/internal/inventory"
	"stockroom/internal/ledger"
	"stockroom/internal/logging"
	"stockroom/internal/photos"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	servicesOnce sync.Once
	svc          *services
	svcErr       error
}

// services bundles the components CLI commands operate on. The CLI works
// against the ledger and folders directly rather than through the daemon.
type services struct {
	items   *api.ItemService
	stats   *api.StatsService
	library *photos.Library
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureServices() (*services, error) {
	c.servicesOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.svcErr = err
			return
		}

		store := ledger.NewStore(cfg.LedgerPath(), ledger.IDAllocation{
			Prefix: cfg.Ledger.IDPrefix,
			Start:  cfg.Ledger.IDStart,
			Width:  cfg.Ledger.IDWidth,
		})
		replicator := assets.NewReplicator(cfg.Paths.CategoryDir, cfg.Paths.ItemsDir)
		bank, err := hashtags.LoadBank(cfg.HashtagBankPath())
		if err != nil {
			c.svcErr = err
			return
		}
		logger := logging.NewNop()
		inventorySvc := inventory.NewService(store, replicator, bank, cfg.Paths.StagingDir, cfg.Photos.MaxPerItem, logger)
		library := photos.NewLibrary(cfg.Paths.StagingDir, cfg.Photos.Extensions, logger)

		c.svc = &services{
			items:   api.NewItemService(inventorySvc),
			stats:   api.NewStatsService(inventorySvc, library),
			library: library,
		}
	})
	return c.svc, c.svcErr
}

// acquireWriteLock takes the same instance lock the daemon holds, so a
// mutating CLI command cannot race a running stockroomd over the ledger.
func (c *commandContext) acquireWriteLock() (func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire write lock: %w", err)
	}
	if !ok {
		return nil, errors.New("stockroomd is running; stop it or use the daemon API for writes")
	}
	return func() { _ = lock.Unlock() }, nil
}
