package app

import (
	"context"
	"fmt"
	"time"

	"github.com/tickstream-hq/tardis-harvester/internal/catalog"
	"github.com/tickstream-hq/tardis-harvester/internal/config"
	"github.com/tickstream-hq/tardis-harvester/internal/logger"
	"github.com/tickstream-hq/tardis-harvester/internal/storage"
	"github.com/tickstream-hq/tardis-harvester/pkg/publishers"
	"github.com/tickstream-hq/tardis-harvester/pkg/tardis"
)

// Harvester is the instrument-metadata harvester runtime. It coordinates the
// poll loop between the Tardis client, the catalog service, and the
// publishers, and owns storage initialization and teardown.
type Harvester struct {
	cfg          *config.Config
	watchlist    []catalog.Entry
	fanout       *publishers.Fanout
	service      *catalog.Service
	pollInterval time.Duration
	log          logger.Logger
	store        storage.Store
}

// NewHarvester builds a harvester runtime from config files.
func NewHarvester(ctx context.Context, cfg *config.Config, log logger.Logger) (*Harvester, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	entries, err := catalog.LoadWatchlist(cfg.WatchlistFile)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	watchlist := catalog.EnabledEntries(entries)
	exchanges := make([]string, 0, len(watchlist))
	for _, e := range watchlist {
		exchanges = append(exchanges, e.Exchange)
	}
	log.InfoObj("watchlist loaded", "watchlist_meta", map[string]any{
		"count":     len(exchanges),
		"exchanges": exchanges,
	})

	var clientOpts []tardis.Option
	if cfg.TardisBaseURL != "" {
		clientOpts = append(clientOpts, tardis.WithBaseURL(cfg.TardisBaseURL))
	}
	clientOpts = append(clientOpts, tardis.WithTimeout(cfg.HTTPTimeout))
	client, err := tardis.NewClient(cfg.TardisAPIKey, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("init tardis client: %w", err)
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	storeOpts := storage.Options{
		EntryTTL:        cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"entry_ttl_seconds":        int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	service := catalog.NewService(client, fanout, store, log)

	return &Harvester{
		cfg:          cfg,
		watchlist:    watchlist,
		fanout:       fanout,
		service:      service,
		pollInterval: cfg.PollInterval,
		log:          log,
		store:        store,
	}, nil
}

// Run starts the poll loop until the context is cancelled.
func (h *Harvester) Run(ctx context.Context) error {
	if h == nil || h.service == nil {
		return fmt.Errorf("harvester is not initialized")
	}
	defer h.closeStore()

	if len(h.watchlist) == 0 {
		h.log.WarnObj("no exchanges enabled; harvester idle", "watchlist_file", h.cfg.WatchlistFile)
		<-ctx.Done()
		return ctx.Err()
	}

	h.log.InfoObj("harvester loop starting", "harvester_state", map[string]any{
		"exchanges_count":  len(h.watchlist),
		"publishers_count": h.fanout.Size(),
		"poll_interval":    h.pollInterval.String(),
	})

	if err := h.runOnce(ctx); err != nil {
		h.log.ErrorObj("initial harvest failed", "error", err)
	}

	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.InfoObj("harvester loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := h.runOnce(ctx); err != nil {
				h.log.ErrorObj("scheduled harvest failed", "error", err)
			}
		}
	}
}

// runOnce performs a single harvest pass across all watched exchanges.
func (h *Harvester) runOnce(ctx context.Context) error {
	start := time.Now()
	h.log.InfoObj("harvest started", "harvest_meta", map[string]any{
		"exchanges_count": len(h.watchlist),
		"started_at":      start.UTC(),
	})
	if err := h.service.Run(ctx, h.watchlist); err != nil {
		return err
	}
	h.log.InfoObj("harvest completed", "harvest_meta", map[string]any{
		"exchanges_count": len(h.watchlist),
		"elapsed_ms":      time.Since(start).Milliseconds(),
	})
	return nil
}

// closeStore safely closes the storage backend, logging any errors encountered.
func (h *Harvester) closeStore() {
	if h == nil || h.store == nil {
		return
	}
	if err := h.store.Close(); err != nil {
		h.log.ErrorObj("storage close failed", "error", err)
	}
}
