package sources

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Adda-Baaj/shabd-relay/pkg/httpclient"
)

// TypeGoogleNewsSitemap is the source type for Google News sitemaps and sitemap indexes.
const TypeGoogleNewsSitemap = "google_news_sitemap"

// fetcherRegistry implements FetcherRegistry.
type fetcherRegistry struct {
	mu             sync.RWMutex
	fetchersByID   map[string]Fetcher
	fetchersByType map[string]Fetcher
}

// NewFetcherRegistry builds a registry with type-based fetchers and source-specific fetchers.
// Source-specific fetchers win over type-based ones.
func NewFetcherRegistry(typeFetchers map[string]Fetcher, fetchers ...Fetcher) FetcherRegistry {
	reg := &fetcherRegistry{
		fetchersByID:   make(map[string]Fetcher),
		fetchersByType: make(map[string]Fetcher),
	}
	for _, f := range fetchers {
		if f == nil {
			continue
		}
		reg.register(reg.fetchersByID, f.ID(), f)
	}
	for typ, f := range typeFetchers {
		reg.register(reg.fetchersByType, typ, f)
	}
	return reg
}

func (r *fetcherRegistry) register(dst map[string]Fetcher, key string, f Fetcher) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || f == nil {
		return
	}
	r.mu.Lock()
	dst[key] = f
	r.mu.Unlock()
}

// FetcherFor selects the fetcher for the given source based on its id or type.
func (r *fetcherRegistry) FetcherFor(src Source) (Fetcher, error) {
	if r == nil {
		return nil, fmt.Errorf("fetcher registry is nil")
	}
	if strings.TrimSpace(src.ID) == "" {
		return nil, fmt.Errorf("source id is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.fetchersByID[strings.ToLower(strings.TrimSpace(src.ID))]; ok {
		return f, nil
	}
	if typ := strings.ToLower(strings.TrimSpace(src.Type)); typ != "" {
		if f, ok := r.fetchersByType[typ]; ok {
			return f, nil
		}
	}
	return nil, fmt.Errorf("no fetcher registered for source %q (type %q)", src.ID, src.Type)
}

// DefaultHTTPClient returns the resty-backed client used by source fetchers.
func DefaultHTTPClient() HTTPClient { return httpclient.NewRestyClient(15 * time.Second) }

// DefaultFetcherRegistry wires up the known source types.
func DefaultFetcherRegistry(client HTTPClient) FetcherRegistry {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return NewFetcherRegistry(map[string]Fetcher{
		TypeGoogleNewsSitemap: NewGoogleNewsFetcher(client),
	})
}
