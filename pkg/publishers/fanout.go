package publishers

import (
	"context"
	"errors"
	"fmt"
)

// Fanout delivers each relayed post event to every enabled sink.
type Fanout struct {
	sinks []Publisher
	log   Logger
}

// NewFanout drops nil entries and keeps the remaining sinks in order.
func NewFanout(pubs []Publisher, log Logger) *Fanout {
	sinks := make([]Publisher, 0, len(pubs))
	for _, p := range pubs {
		if p != nil {
			sinks = append(sinks, p)
		}
	}
	return &Fanout{sinks: sinks, log: ensureLogger(log)}
}

// Publish tries every sink and reports how many accepted the event. A failing
// sink does not stop the others; a cancelled context does.
func (f *Fanout) Publish(ctx context.Context, evt Event) (int, error) {
	if f == nil || len(f.sinks) == 0 {
		return 0, nil
	}

	delivered := 0
	var errs []error
	for _, sink := range f.sinks {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := sink.Publish(ctx, evt); err != nil {
			f.log.ErrorObj("sink rejected post event", "publisher_failure", map[string]any{
				"publisher_id": sink.ID(),
				"type":         sink.Type(),
				"event_id":     evt.EventID,
				"post_id":      evt.Post.ID,
				"error":        err.Error(),
			})
			errs = append(errs, fmt.Errorf("%s publisher[%s]: %w", sink.Type(), sink.ID(), err))
			continue
		}
		delivered++
	}
	return delivered, errors.Join(errs...)
}

// Size returns the number of sinks.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.sinks)
}

// IDs lists sink ids in delivery order.
func (f *Fanout) IDs() []string {
	if f == nil {
		return nil
	}
	ids := make([]string, len(f.sinks))
	for i, sink := range f.sinks {
		ids[i] = sink.ID()
	}
	return ids
}

// Close releases sinks that hold connections.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, sink := range f.sinks {
		c, ok := sink.(Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s publisher[%s]: %w", sink.Type(), sink.ID(), err))
		}
	}
	return errors.Join(errs...)
}
