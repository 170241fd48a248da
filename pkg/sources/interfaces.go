package sources

import (
	"context"
	"time"

	"github.com/Adda-Baaj/shabd-relay/pkg/httpclient"
)

// Entry is a raw item collected from a source, before it becomes a domain.Post.
// Any field except ID and URL may be empty until the page is scraped.
type Entry struct {
	ID          string
	SourceID    string
	URL         string
	Title       string
	Description string
	ImageURL    string
	Thumbnail   string
	Keywords    []string
	PublishedAt time.Time
}

// Fetcher retrieves entries for a source.
type Fetcher interface {
	ID() string
	Fetch(ctx context.Context, src Source) ([]Entry, error)
}

// FetcherRegistry resolves the fetcher implementation for a given source.
type FetcherRegistry interface {
	FetcherFor(src Source) (Fetcher, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within sources.
type HTTPClient = httpclient.Client
