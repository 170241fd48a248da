package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Adda-Baaj/shabd-relay/internal/config"
	"github.com/Adda-Baaj/shabd-relay/pkg/publishers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type webhook struct {
	mu     sync.Mutex
	events []publishers.Event
}

func (w *webhook) handler(t *testing.T) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		var evt publishers.Event
		if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
			t.Errorf("decode event: %v", err)
		}
		w.mu.Lock()
		w.events = append(w.events, evt)
		w.mu.Unlock()
		rw.WriteHeader(http.StatusAccepted)
	}
}

func (w *webhook) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.events)
}

func newSiteServer() *httptest.Server {
	mux := http.NewServeMux()
	var base string
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<urlset><url><loc>%s/threads/1</loc><news><title>Thread one</title><publication_date>2024-04-01T10:00:00Z</publication_date></news></url></urlset>`, base)
	})
	mux.HandleFunc("/threads/1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head>
<meta property="og:title" content="Thread one">
<meta property="og:description" content="First thread body">
<meta property="og:image" content="/img/1.png">
</head></html>`))
	})
	srv := httptest.NewServer(mux)
	base = srv.URL
	return srv
}

func writeRelayConfig(t *testing.T, siteURL, hookURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	sourcesFile := filepath.Join(dir, "sources.yaml")
	require.NoError(t, os.WriteFile(sourcesFile, []byte(fmt.Sprintf(`
sources:
  - id: forum
    name: Forum
    type: google_news_sitemap
    source_url: %s/sitemap.xml
    request_delay_ms: 1
`, siteURL)), 0o644))

	publishersFile := filepath.Join(dir, "publishers.yaml")
	require.NoError(t, os.WriteFile(publishersFile, []byte(fmt.Sprintf(`
publishers:
  - id: hook
    type: http
    http:
      url: %s
      timeout_seconds: 2
`, hookURL)), 0o644))

	return &config.Config{
		SourcesFile:            sourcesFile,
		PublishersFile:         publishersFile,
		RelayInterval:          time.Hour,
		StorageType:            "bbolt",
		BBoltPath:              filepath.Join(dir, "data", "relay.db"),
		StorageTTL:             time.Hour,
		StorageCleanupInterval: time.Hour,
	}
}

func TestRelayRunOnceDeliversEachPostOnce(t *testing.T) {
	site := newSiteServer()
	defer site.Close()
	hook := &webhook{}
	hookSrv := httptest.NewServer(hook.handler(t))
	defer hookSrv.Close()

	r, err := NewRelay(context.Background(), writeRelayConfig(t, site.URL, hookSrv.URL), nil)
	require.NoError(t, err)
	defer r.close()

	require.NoError(t, r.RunOnce(context.Background()))
	require.Equal(t, 1, hook.count())

	evt := hook.events[0]
	assert.Equal(t, "forum", evt.SourceID)
	assert.Equal(t, "Forum", evt.SourceName)
	assert.Equal(t, "Thread one", evt.Post.Title)
	assert.Equal(t, "First thread body", evt.Post.Description)
	assert.Equal(t, site.URL+"/threads/1", evt.Post.URL)
	img, ok := evt.Post.ImageURL()
	require.True(t, ok)
	assert.Equal(t, site.URL+"/img/1.png", img)

	require.NoError(t, r.RunOnce(context.Background()))
	assert.Equal(t, 1, hook.count(), "already relayed posts must not be sent again")
}

func TestRelayRunStopsOnCancel(t *testing.T) {
	site := newSiteServer()
	defer site.Close()
	hook := &webhook{}
	hookSrv := httptest.NewServer(hook.handler(t))
	defer hookSrv.Close()

	r, err := NewRelay(context.Background(), writeRelayConfig(t, site.URL, hookSrv.URL), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return hook.count() == 1 }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("relay did not stop after cancel")
	}
}

func TestNewRelayValidatesConfig(t *testing.T) {
	_, err := NewRelay(context.Background(), nil, nil)
	assert.Error(t, err)

	cfg := writeRelayConfig(t, "http://127.0.0.1:1", "http://127.0.0.1:1")
	cfg.RelayInterval = 0
	_, err = NewRelay(context.Background(), cfg, nil)
	assert.Error(t, err)

	cfg = writeRelayConfig(t, "http://127.0.0.1:1", "http://127.0.0.1:1")
	cfg.StorageType = "redis"
	_, err = NewRelay(context.Background(), cfg, nil)
	assert.Error(t, err)
}
