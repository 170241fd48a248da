package relay

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Adda-Baaj/shabd-relay/internal/logger"
	"github.com/Adda-Baaj/shabd-relay/pkg/httpclient"
	"github.com/Adda-Baaj/shabd-relay/pkg/sources"
	"github.com/PuerkitoBio/goquery"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB
	scrapeTimeout    = 15 * time.Second
)

// Scraper fetches entry pages and extracts OpenGraph metadata.
type Scraper struct {
	client httpclient.Client
	log    logger.Logger
}

// NewScraper constructs a scraper with the provided HTTP client. The default
// client refuses pages over maxHTMLBodyBytes while reading them.
func NewScraper(client httpclient.Client, log logger.Logger) *Scraper {
	if client == nil {
		client = httpclient.NewRestyClient(scrapeTimeout, httpclient.WithResponseBodyLimit(maxHTMLBodyBytes))
	}
	return &Scraper{client: client, log: logger.Ensure(log)}
}

// Enrich fetches each entry page, honouring the source delay, and merges the
// page metadata. Entries whose page cannot be read are kept as they are.
// On cancellation only the entries visited so far are returned.
func (s *Scraper) Enrich(ctx context.Context, src sources.Source, entries []sources.Entry) []sources.Entry {
	delay := src.RequestDelay()
	out := make([]sources.Entry, 0, len(entries))

	for i, entry := range entries {
		if ctx.Err() != nil {
			return out
		}

		enriched, err := s.fetchAndParse(ctx, src, entry)
		if err != nil {
			s.log.WarnObj("post metadata scrape failed", "metadata_error", map[string]any{
				"source_id": src.ID,
				"url":       entry.URL,
				"error":     err.Error(),
			})
			enriched = entry
		}
		out = append(out, enriched)

		if delay > 0 && i < len(entries)-1 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return out
			case <-timer.C:
			}
		}
	}
	return out
}

func (s *Scraper) fetchAndParse(ctx context.Context, src sources.Source, entry sources.Entry) (sources.Entry, error) {
	resp, err := s.client.Get(ctx, entry.URL, sources.Headers(src))
	if err != nil {
		return entry, fmt.Errorf("http fetch: %w", err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 1024 {
			snippet = snippet[:1024]
		}
		return entry, fmt.Errorf("status %d body: %s", resp.StatusCode(), snippet)
	}
	// Injected clients may not enforce the limit.
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	meta, err := parseMeta(body, entry.URL)
	if err != nil {
		return entry, err
	}

	updated := entry
	if meta.Title != "" {
		updated.Title = meta.Title
	}
	if meta.Description != "" {
		updated.Description = meta.Description
	}
	if meta.ImageURL != "" {
		updated.ImageURL = meta.ImageURL
	}
	if meta.Thumbnail != "" {
		updated.Thumbnail = meta.Thumbnail
	}
	return updated, nil
}

type pageMeta struct {
	Title       string
	Description string
	ImageURL    string
	Thumbnail   string
}

// parseMeta reads title, description, image and thumbnail from the page head.
// Relative image URLs are resolved against pageURL.
func parseMeta(body []byte, pageURL string) (pageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, fmt.Errorf("parse html: %w", err)
	}

	attr := func(sel, name string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr(name); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}
	content := func(sel string) string { return attr(sel, "content") }

	return pageMeta{
		Title: firstNonEmpty(
			content(`meta[property="og:title"]`),
			doc.Find("title").First().Text(),
		),
		Description: firstNonEmpty(
			content(`meta[property="og:description"]`),
			content(`meta[name="description"]`),
		),
		ImageURL: resolveURL(content(`meta[property="og:image"]`), pageURL),
		Thumbnail: resolveURL(firstNonEmpty(
			content(`meta[name="thumbnail"]`),
			content(`meta[name="twitter:image"]`),
			content(`meta[property="twitter:image"]`),
			attr(`link[rel="image_src"]`, "href"),
		), pageURL),
	}, nil
}

// resolveURL makes ref absolute against base. Unparseable input is returned trimmed.
func resolveURL(ref, base string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil || r.IsAbs() {
		return ref
	}
	b, err := url.Parse(strings.TrimSpace(base))
	if err != nil || !b.IsAbs() {
		return ref
	}
	return b.ResolveReference(r).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
