package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestyClientGetSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "relay-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "shared", r.Header.Get("X-Relay"))
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	client := NewRestyClient(2*time.Second, WithUserAgent("relay-test"), WithHeaders(map[string]string{"X-Relay": "shared"}))
	resp, err := client.Get(context.Background(), srv.URL, map[string]string{"Accept": "application/json"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode())
	assert.Equal(t, "short and stout", string(resp.Body()))
	assert.False(t, IsSuccess(resp), "418 must not count as success")
}

func TestRestyClientHonoursTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewRestyClient(50 * time.Millisecond)
	_, err := client.Get(context.Background(), srv.URL, nil)
	assert.Error(t, err)
}

func TestRestyClientResponseBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		size := 64
		if r.URL.Path == "/big" {
			size = 4096
		}
		_, _ = w.Write([]byte(strings.Repeat("x", size)))
	}))
	defer srv.Close()

	client := NewRestyClient(2*time.Second, WithResponseBodyLimit(1024))

	resp, err := client.Get(context.Background(), srv.URL+"/small", nil)
	require.NoError(t, err)
	assert.Len(t, resp.Body(), 64)

	_, err = client.Get(context.Background(), srv.URL+"/big", nil)
	assert.ErrorIs(t, err, resty.ErrResponseBodyTooLarge)
}
