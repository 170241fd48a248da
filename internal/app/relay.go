package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adda-Baaj/shabd-relay/internal/config"
	"github.com/Adda-Baaj/shabd-relay/internal/logger"
	"github.com/Adda-Baaj/shabd-relay/internal/relay"
	"github.com/Adda-Baaj/shabd-relay/internal/storage"
	"github.com/Adda-Baaj/shabd-relay/pkg/publishers"
	"github.com/Adda-Baaj/shabd-relay/pkg/sources"
)

// Relay is the post relay runtime. It owns the source registry, the sinks
// and the seen-post store, and runs relay passes on an interval.
type Relay struct {
	cfg      *config.Config
	sources  *sources.Registry
	fanout   *publishers.Fanout
	service  *relay.Service
	interval time.Duration
	log      logger.Logger
	store    storage.Store
}

// NewRelay builds the relay runtime from config files.
func NewRelay(ctx context.Context, cfg *config.Config, log logger.Logger) (*Relay, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if cfg.RelayInterval <= 0 {
		return nil, fmt.Errorf("relay interval must be positive")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	sourceReg, err := sources.LoadRegistry(cfg.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("load sources registry: %w", err)
	}
	log.InfoObj("sources registry loaded", "sources_meta", map[string]any{
		"count": len(sourceReg.IDs()),
		"ids":   sourceReg.IDs(),
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := publisherReg.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients, log)

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{"id": pubCfg.ID, "type": pubCfg.Type})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.StorageLocation(), storage.Options{
		PostTTL:         cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"location":                 cfg.StorageLocation(),
		"post_ttl_seconds":         int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	return &Relay{
		cfg:      cfg,
		sources:  sourceReg,
		fanout:   fanout,
		service:  relay.NewService(sources.DefaultFetcherRegistry(nil), nil, fanout, log, store),
		interval: cfg.RelayInterval,
		log:      log,
		store:    store,
	}, nil
}

// Run relays once, then on every interval tick until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	if r == nil || r.service == nil {
		return fmt.Errorf("relay is not initialized")
	}
	defer r.close()

	srcs := r.sources.All()
	r.log.InfoObj("relay loop starting", "relay_state", map[string]any{
		"sources_count":    len(srcs),
		"publishers_count": r.fanout.Size(),
		"relay_interval":   r.interval.String(),
	})

	if err := r.RunOnce(ctx); err != nil {
		r.log.ErrorObj("initial relay failed", "error", err.Error())
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.InfoObj("relay loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				r.log.ErrorObj("scheduled relay failed", "error", err.Error())
			}
		}
	}
}

// RunOnce performs a single relay pass across all sources.
func (r *Relay) RunOnce(ctx context.Context) error {
	srcs := r.sources.All()
	start := time.Now()
	r.log.InfoObj("relay started", "relay_meta", map[string]any{
		"sources_count": len(srcs),
		"started_at":    start.UTC(),
	})
	if err := r.service.Run(ctx, srcs); err != nil {
		return err
	}
	r.log.InfoObj("relay completed", "relay_meta", map[string]any{
		"sources_count": len(srcs),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return nil
}

// close releases the store and the sinks, logging failures.
func (r *Relay) close() {
	var errs []error
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage close: %w", err))
		}
	}
	if err := r.fanout.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		r.log.ErrorObj("relay shutdown failed", "error", err.Error())
	}
}
