package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/opeyemi/lenddesk/internal/domain"
)

// HTTPSource fetches the user collection from the configured remote endpoint
// with a bounded timeout. No retries: a failure is reported immediately so
// the caller can fall back.
type HTTPSource struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// Options configures an HTTPSource.
type Options struct {
	URL     string
	Timeout time.Duration
	// Client overrides the default http.Client, mainly for tests.
	Client *http.Client
}

// NewHTTPSource validates the options and returns a ready source.
func NewHTTPSource(opts Options) (*HTTPSource, error) {
	if opts.URL == "" {
		return nil, ErrMissingURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPSource{
		url:     opts.URL,
		timeout: opts.Timeout,
		client:  client,
	}, nil
}

// Fetch performs a single GET against the endpoint. The request is aborted
// once the configured timeout elapses.
func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	users, err := normalizePayload(body)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrEmptyPayload
	}
	return users, nil
}

// normalizePayload accepts the two payload shapes the endpoint is known to
// serve: a bare JSON array of users, or an object wrapping the array under a
// "users" field. Anything else is a decode error.
func normalizePayload(body []byte) ([]domain.User, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var users []domain.User
		if err := json.Unmarshal(trimmed, &users); err != nil {
			return nil, fmt.Errorf("decode user array: %w", err)
		}
		return users, nil
	}

	var wrapper struct {
		Users []domain.User `json:"users"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("decode user object: %w", err)
	}
	return wrapper.Users, nil
}
