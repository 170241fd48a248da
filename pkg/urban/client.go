package urban

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/Adda-Baaj/shabd-relay/internal/domain"
	"github.com/Adda-Baaj/shabd-relay/pkg/httpclient"
)

const (
	// DefaultBaseURL is the public Urban Dictionary API root.
	DefaultBaseURL = "https://api.urbandictionary.com/v0"
	// DefaultTimeout bounds a single lookup when the caller supplies no client.
	DefaultTimeout = 10 * time.Second

	definePath = "/define"
	maxSnippet = 256
)

// Client looks up definitions on the Urban Dictionary API.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	http    httpclient.Client
	log     Logger
}

// NewClient builds a lookup client. An empty baseURL selects DefaultBaseURL, a nil
// http client selects a resty client bounded by DefaultTimeout.
func NewClient(baseURL string, client httpclient.Client, log Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = httpclient.NewRestyClient(DefaultTimeout)
	}
	return &Client{
		baseURL: baseURL,
		http:    client,
		log:     ensureLogger(log),
	}
}

// LookupFirst returns the top definition for term.
func (c *Client) LookupFirst(ctx context.Context, term string) (domain.DefinitionEntry, bool, error) {
	return c.Lookup(ctx, term, 0)
}

// Lookup returns the definition at index for term. found is false when the service
// has no definitions or index is outside the result list; that is not an error.
func (c *Client) Lookup(ctx context.Context, term string, index int) (entry domain.DefinitionEntry, found bool, err error) {
	list, err := c.Definitions(ctx, term)
	if err != nil {
		return nil, false, err
	}
	if len(list) == 0 || index < 0 || index >= len(list) || list[index] == nil {
		c.log.DebugObj("urban lookup absent", "urban_lookup", map[string]any{
			"term":    term,
			"index":   index,
			"results": len(list),
		})
		return nil, false, nil
	}
	return list[index], true, nil
}

// At resolves a paging cursor with the same absence rules as Lookup.
func (c *Client) At(ctx context.Context, cur Cursor) (domain.DefinitionEntry, bool, error) {
	return c.Lookup(ctx, cur.Term, cur.Index)
}

// Definitions returns every definition the service lists for term, in service order.
func (c *Client) Definitions(ctx context.Context, term string) ([]domain.DefinitionEntry, error) {
	if strings.TrimSpace(term) == "" {
		return nil, ErrEmptyTerm
	}

	reqURL := c.defineURL(term)
	c.log.DebugObj("urban lookup request", "urban_request", map[string]any{
		"term": term,
		"url":  reqURL,
	})

	resp, err := c.http.Get(ctx, reqURL, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, c.fail(&LookupError{Kind: KindNetwork, Term: term, Err: err})
	}

	body := resp.Body()
	if !httpclient.IsSuccess(resp) {
		return nil, c.fail(&LookupError{
			Kind:       KindStatus,
			Term:       term,
			StatusCode: resp.StatusCode(),
			Err:        errors.New(snippet(body)),
		})
	}

	list, err := decodeList(body)
	if err != nil {
		return nil, c.fail(&LookupError{Kind: KindParse, Term: term, StatusCode: resp.StatusCode(), Err: err})
	}
	return list, nil
}

func (c *Client) defineURL(term string) string {
	q := url.Values{}
	q.Set("term", term)
	return c.baseURL + definePath + "?" + q.Encode()
}

func (c *Client) fail(err *LookupError) error {
	c.log.ErrorObj("urban lookup failed", "urban_error", map[string]any{
		"term":        err.Term,
		"kind":        err.Kind.String(),
		"status_code": err.StatusCode,
		"error":       err.Err.Error(),
	})
	return err
}

type defineResponse struct {
	List *[]domain.DefinitionEntry `json:"list"`
}

func decodeList(body []byte) ([]domain.DefinitionEntry, error) {
	var out defineResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if out.List == nil {
		return nil, errors.New(`response has no "list" array`)
	}
	return *out.List, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	if len(s) > maxSnippet {
		return s[:maxSnippet] + "..."
	}
	return s
}
