package sources

import (
	"context"
	"fmt"
	"strings"
)

const maxSitemapDepth = 3

// googleNewsFetcher implements Fetcher for Google News sitemap sources.
type googleNewsFetcher struct {
	client HTTPClient
}

// NewGoogleNewsFetcher builds the fetcher for TypeGoogleNewsSitemap sources.
func NewGoogleNewsFetcher(client HTTPClient) Fetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &googleNewsFetcher{client: client}
}

func (f *googleNewsFetcher) ID() string {
	return TypeGoogleNewsSitemap
}

func (f *googleNewsFetcher) Fetch(ctx context.Context, src Source) ([]Entry, error) {
	if !strings.EqualFold(src.Type, TypeGoogleNewsSitemap) {
		return nil, fmt.Errorf("google news fetcher received incompatible source type %q", src.Type)
	}
	if strings.TrimSpace(src.SourceURL) == "" {
		return nil, fmt.Errorf("source %q source_url is empty", src.ID)
	}

	urls, err := f.fetchGoogleNewsURLs(ctx, src, src.SourceURL, Headers(src), map[string]bool{})
	if err != nil {
		return nil, err
	}

	entries := buildEntriesFromSitemap(src.ID, urls)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s sitemap returned no records", src.ID)
	}
	return entries, nil
}

// fetchGoogleNewsURLs downloads url and, when it is a sitemap index, follows its
// children up to maxSitemapDepth. visited guards against index cycles.
func (f *googleNewsFetcher) fetchGoogleNewsURLs(ctx context.Context, src Source, url string, headers map[string]string, visited map[string]bool) ([]googleNewsURL, error) {
	return f.fetchDepth(ctx, src, url, headers, visited, 0)
}

func (f *googleNewsFetcher) fetchDepth(ctx context.Context, src Source, url string, headers map[string]string, visited map[string]bool, depth int) ([]googleNewsURL, error) {
	if visited == nil {
		visited = map[string]bool{}
	}
	if visited[url] {
		return nil, nil
	}
	visited[url] = true

	raw, err := fetchSitemap(ctx, f.client, url, src.ID, headers)
	if err != nil {
		return nil, err
	}

	if !isSitemapIndex(raw) {
		urls, err := parseGoogleNewsSitemap(raw)
		if err != nil {
			return nil, fmt.Errorf("decode google news sitemap: %w", err)
		}
		return urls, nil
	}

	if depth >= maxSitemapDepth {
		return nil, fmt.Errorf("%s sitemap index nested deeper than %d levels", src.ID, maxSitemapDepth)
	}

	children, err := parseSitemapIndex(raw)
	if err != nil {
		return nil, fmt.Errorf("decode sitemap index: %w", err)
	}

	var out []googleNewsURL
	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		urls, err := f.fetchDepth(ctx, src, child, headers, visited, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, urls...)
	}
	return out, nil
}
