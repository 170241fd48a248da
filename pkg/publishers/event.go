package publishers

import (
	"time"

	"github.com/Adda-Baaj/shabd-relay/internal/domain"
	"github.com/google/uuid"
)

// Event is the payload relayed downstream for one post.
type Event struct {
	EventID    string      `json:"event_id"`
	SourceID   string      `json:"source_id"`
	SourceName string      `json:"source_name"`
	Post       domain.Post `json:"post"`
	RelayedAt  time.Time   `json:"relayed_at"`
}

// NewEvent wraps post for the given source under a fresh event id.
// A zero at means now.
func NewEvent(sourceID, sourceName string, post domain.Post, at time.Time) Event {
	if at.IsZero() {
		at = time.Now()
	}
	return Event{
		EventID:    uuid.NewString(),
		SourceID:   sourceID,
		SourceName: sourceName,
		Post:       post,
		RelayedAt:  at.UTC(),
	}
}
