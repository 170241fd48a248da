package relay

import (
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/shabd-relay/internal/domain"
	"github.com/Adda-Baaj/shabd-relay/pkg/sources"
)

// BuildPost turns a scraped entry into a Post. A missing publication date
// falls back to now.
func BuildPost(entry sources.Entry, now time.Time) (*domain.Post, error) {
	date := entry.PublishedAt
	if date.IsZero() {
		date = now
	}

	post, err := domain.NewPost(
		strings.TrimSpace(entry.ID),
		strings.TrimSpace(entry.Title),
		strings.TrimSpace(entry.Description),
		date.UTC(),
		strings.TrimSpace(entry.URL),
		domain.WithImage(entry.ImageURL),
		domain.WithThumbnail(entry.Thumbnail),
	)
	if err != nil {
		return nil, fmt.Errorf("build post from %q: %w", entry.URL, err)
	}
	return post, nil
}

// dedupKey scopes a post id to its source.
func dedupKey(sourceID, postID string) string {
	return sourceID + ":" + postID
}
