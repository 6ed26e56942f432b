package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPConfig parameterizes the remote store binding.
type HTTPConfig struct {
	BaseURL string
	Timeout time.Duration
}

// HTTPStore queries a remote store over REST: GET {base}/subkeys returns a
// JSON array of names, GET {base}/subkeys/{name} returns the raw dump as
// text. Connection-level failures surface as ErrStoreUnavailable, a 404 as
// ErrSubkeyNotFound.
type HTTPStore struct {
	client *resty.Client
}

var _ Store = (*HTTPStore)(nil)

func NewHTTPStore(cfg HTTPConfig) (*HTTPStore, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("http store: base URL required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &HTTPStore{client: cli}, nil
}

// ListSubkeys implements Store.
func (s *HTTPStore) ListSubkeys(ctx context.Context) ([]string, error) {
	resp, err := s.client.R().SetContext(ctx).Get("/subkeys")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: list request: %v", ErrStoreUnavailable, err)
	}
	if err := mapStatus(resp); err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(resp.Body(), &names); err != nil {
		return nil, fmt.Errorf("decode subkey list: %w", err)
	}
	return names, nil
}

// FetchRaw implements Store.
func (s *HTTPStore) FetchRaw(ctx context.Context, base string) (string, error) {
	resp, err := s.client.R().SetContext(ctx).Get("/subkeys/" + url.PathEscape(base))
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: fetch request: %v", ErrStoreUnavailable, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrSubkeyNotFound, base)
	}
	if err := mapStatus(resp); err != nil {
		return "", err
	}
	return string(resp.Body()), nil
}

// mapStatus turns a non-2xx response into the store error taxonomy.
func mapStatus(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}
	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("%w: http %d: %s", ErrStoreUnavailable, resp.StatusCode(), body)
}
