package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Skotchmaster/job_portal/pkg/transport"
)

const ValidatePath = "/api/v1/auth/validate"

var ErrUnavailable = errors.New("auth service unavailable")

// Client asks the authentication authority to validate bearer headers.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    uint64
	backoff    func() backoff.BackOff
}

type Option func(*Client)

// WithTimeout bounds a single validation attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetries sets how many extra attempts follow a transport error or 5xx.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = uint64(n)
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithBackOff(f func() backoff.BackOff) Option {
	return func(c *Client) { c.backoff = f }
}

func NewClient(authServiceURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(authServiceURL, "/"),
		httpClient: &http.Client{
			Timeout: 3 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		retries: 1,
		backoff: defaultBackOff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 5 * time.Second
	return b
}

// Validate forwards authHeader verbatim. Any error means the verdict is
// unknown and the caller must treat the request as unauthenticated.
func (c *Client) Validate(ctx context.Context, authHeader string) (transport.ValidationResponse, error) {
	var result transport.ValidationResponse

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+ValidatePath, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Authorization", authHeader)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("validate failed with status: %d", resp.StatusCode))
		}

		var r transport.ValidationResponse
		if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		result = r
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.backoff(), c.retries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return transport.ValidationResponse{}, err
	}
	return result, nil
}
