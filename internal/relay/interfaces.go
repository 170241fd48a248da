package relay

import (
	"context"

	"github.com/Adda-Baaj/shabd-relay/pkg/publishers"
	"github.com/Adda-Baaj/shabd-relay/pkg/sources"
)

// PostScraper fills in entry metadata from the linked page.
type PostScraper interface {
	Enrich(ctx context.Context, src sources.Source, entries []sources.Entry) []sources.Entry
}

// EventPublisher delivers events and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers relayed post keys.
type Deduper interface {
	SeenPost(key string) (bool, error)
	MarkPost(key string) error
}
