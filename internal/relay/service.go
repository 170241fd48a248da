package relay

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adda-Baaj/shabd-relay/internal/logger"
	"github.com/Adda-Baaj/shabd-relay/pkg/sources"
)

// Service coordinates relay passes across all configured sources.
type Service struct {
	processor *SourceProcessor
	log       logger.Logger
}

// NewService wires a relay service. A nil scraper gets the default one.
func NewService(reg sources.FetcherRegistry, scraper PostScraper, pub EventPublisher, log logger.Logger, deduper Deduper) *Service {
	log = logger.Ensure(log)
	if scraper == nil {
		scraper = NewScraper(nil, log)
	}
	return &Service{
		processor: NewSourceProcessor(reg, scraper, pub, log, deduper),
		log:       log,
	}
}

// Run executes one relay pass over srcs. Per-source errors are logged and joined.
func (s *Service) Run(ctx context.Context, srcs []sources.Source) error {
	if s == nil || s.processor == nil {
		return fmt.Errorf("relay service is not initialized")
	}
	if len(srcs) == 0 {
		return fmt.Errorf("no sources configured for relay")
	}

	if errs := s.runAll(ctx, srcs); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s *Service) runAll(ctx context.Context, srcs []sources.Source) []error {
	var errs []error
	for _, src := range srcs {
		if ctx.Err() != nil {
			s.log.WarnObj("relay pass cancelled", "relay_state", map[string]any{
				"next_source": src.ID,
			})
			return errs
		}
		if err := s.processor.Process(ctx, src); err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("source relay failed", "source_error", map[string]any{
				"source_id": src.ID,
				"error":     err.Error(),
			})
		}
	}
	return errs
}
