package sources

import (
	"bytes"
	"context"
	"crypto/sha1" //nolint:gosec // non-cryptographic id generation
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"
)

func hashURL(u string) string {
	sum := sha1.Sum([]byte(u))
	return hex.EncodeToString(sum[:])
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

type googleNewsSitemap struct {
	URLs []googleNewsURL `xml:"url"`
}

type googleNewsURL struct {
	Loc             string `xml:"loc"`
	LastMod         string `xml:"lastmod"`
	Title           string `xml:"news>title"`
	PublicationDate string `xml:"news>publication_date"`
	Keywords        string `xml:"news>keywords"`
	ImageLoc        string `xml:"image>loc"`
}

type sitemapIndex struct {
	Sitemaps []struct {
		Loc string `xml:"loc"`
	} `xml:"sitemap"`
}

func parseGoogleNewsSitemap(data []byte) ([]googleNewsURL, error) {
	var sitemap googleNewsSitemap
	if err := xml.Unmarshal(data, &sitemap); err != nil {
		return nil, err
	}
	return sitemap.URLs, nil
}

func parseSitemapIndex(data []byte) ([]string, error) {
	var idx sitemapIndex
	if err := xml.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(idx.Sitemaps))
	for _, s := range idx.Sitemaps {
		if loc := strings.TrimSpace(s.Loc); loc != "" {
			out = append(out, loc)
		}
	}
	return out, nil
}

// isSitemapIndex peeks at the root element name.
func isSitemapIndex(data []byte) bool {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return false
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local == "sitemapindex"
		}
	}
}

func buildEntriesFromSitemap(sourceID string, urls []googleNewsURL) []Entry {
	entries := make([]Entry, 0, len(urls))
	for _, u := range urls {
		loc := strings.TrimSpace(u.Loc)
		if loc == "" {
			continue
		}

		published := parsePublicationDate(u.PublicationDate)
		if published.IsZero() {
			published = parsePublicationDate(u.LastMod)
		}

		entries = append(entries, Entry{
			ID:          hashURL(loc),
			SourceID:    sourceID,
			URL:         loc,
			Title:       strings.TrimSpace(u.Title),
			ImageURL:    strings.TrimSpace(u.ImageLoc),
			Keywords:    parseKeywords(u.Keywords),
			PublishedAt: published,
		})
	}
	return entries
}

func parseKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

var publicationLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02",
}

func parsePublicationDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range publicationLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func fetchSitemap(ctx context.Context, client HTTPClient, url, sourceID string, headers map[string]string) ([]byte, error) {
	resp, err := client.Get(ctx, url, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch %s sitemap: %w", sourceID, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%s sitemap returned status %d body: %s", sourceID, resp.StatusCode(), responseSnippet(body))
	}
	return body, nil
}
