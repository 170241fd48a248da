package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adda-Baaj/shabd-relay/internal/domain"
	"github.com/Adda-Baaj/shabd-relay/internal/logger"
	"github.com/Adda-Baaj/shabd-relay/pkg/publishers"
	"github.com/Adda-Baaj/shabd-relay/pkg/sources"
)

// SourceProcessor runs one relay pass for a single source.
type SourceProcessor struct {
	registry  sources.FetcherRegistry
	scraper   PostScraper
	publisher EventPublisher
	log       logger.Logger
	deduper   Deduper
	now       func() time.Time
}

// NewSourceProcessor wires a processor. scraper, publisher and deduper may be nil.
func NewSourceProcessor(reg sources.FetcherRegistry, scraper PostScraper, pub EventPublisher, log logger.Logger, deduper Deduper) *SourceProcessor {
	return &SourceProcessor{
		registry:  reg,
		scraper:   scraper,
		publisher: pub,
		log:       logger.Ensure(log),
		deduper:   deduper,
		now:       time.Now,
	}
}

// Process fetches, enriches and publishes the new posts of src.
func (p *SourceProcessor) Process(ctx context.Context, src sources.Source) error {
	if p == nil || p.registry == nil {
		return fmt.Errorf("source processor is not initialized")
	}

	fetcher, err := p.registry.FetcherFor(src)
	if err != nil {
		return fmt.Errorf("resolve fetcher for source %s: %w", src.ID, err)
	}

	entries, err := fetcher.Fetch(ctx, src)
	if err != nil {
		return fmt.Errorf("fetch source %s: %w", src.ID, err)
	}

	entries = p.filterNewEntries(src, entries)
	if len(entries) == 0 {
		p.log.InfoObj("source has no new posts", "source_result", map[string]any{
			"source_id": src.ID,
		})
		return nil
	}

	if p.scraper != nil {
		entries = p.scraper.Enrich(ctx, src, entries)
	}

	posts := p.buildPosts(src, entries)
	published, err := p.publish(ctx, src, posts)

	p.log.InfoObj("source relay completed", "source_result", map[string]any{
		"source_id":       src.ID,
		"posts_new":       len(posts),
		"posts_published": published,
	})
	return err
}

// filterNewEntries drops repeats within one fetch and entries whose key the
// deduper has seen. A deduper error keeps the entry.
func (p *SourceProcessor) filterNewEntries(src sources.Source, entries []sources.Entry) []sources.Entry {
	batch := make(map[string]struct{}, len(entries))
	out := make([]sources.Entry, 0, len(entries))
	for _, e := range entries {
		key := dedupKey(src.ID, e.ID)
		if _, dup := batch[key]; dup {
			continue
		}
		batch[key] = struct{}{}

		if p.deduper == nil {
			out = append(out, e)
			continue
		}
		seen, err := p.deduper.SeenPost(key)
		if err != nil {
			p.log.WarnObj("dedup lookup failed", "dedup_error", map[string]any{
				"source_id": src.ID,
				"post_id":   e.ID,
				"error":     err.Error(),
			})
			out = append(out, e)
			continue
		}
		if !seen {
			out = append(out, e)
		}
	}
	return out
}

func (p *SourceProcessor) buildPosts(src sources.Source, entries []sources.Entry) []domain.Post {
	now := p.now()
	posts := make([]domain.Post, 0, len(entries))
	for _, e := range entries {
		post, err := BuildPost(e, now)
		if err != nil {
			p.log.WarnObj("skipping invalid post", "post_error", map[string]any{
				"source_id": src.ID,
				"url":       e.URL,
				"error":     err.Error(),
			})
			continue
		}
		posts = append(posts, *post)
	}
	return posts
}

// publish sends one event per post and marks the key once a sink accepted it.
func (p *SourceProcessor) publish(ctx context.Context, src sources.Source, posts []domain.Post) (int, error) {
	if p.publisher == nil {
		return 0, nil
	}

	var errs []error
	published := 0
	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		delivered, err := p.publisher.Publish(ctx, publishers.NewEvent(src.ID, src.Name, post, p.now()))
		if err != nil {
			errs = append(errs, fmt.Errorf("publish post %s: %w", post.ID, err))
		}
		if delivered == 0 {
			continue
		}
		published++

		if p.deduper == nil {
			continue
		}
		if err := p.deduper.MarkPost(dedupKey(src.ID, post.ID)); err != nil {
			errs = append(errs, fmt.Errorf("mark post %s: %w", post.ID, err))
		}
	}
	return published, errors.Join(errs...)
}
