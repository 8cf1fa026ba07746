package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Skotchmaster/job_portal/services/job/internal/transport"
)

var (
	ErrUpstream = errors.New("upstream unavailable")
	errNotFound = errors.New("not found")
)

// upstream performs GET requests against one downstream service on behalf of
// the caller, forwarding the caller's Authorization header verbatim.
type upstream struct {
	name       string
	baseURL    string
	httpClient *http.Client
	retries    uint64
}

func newUpstream(name, baseURL string, timeout time.Duration) upstream {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return upstream{
		name:       name,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retries:    1,
	}
}

func (u upstream) getJSON(ctx context.Context, path string, query url.Values, authHeader string, out any) error {
	target := u.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := u.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrUpstream, u.name, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(errNotFound)
		case resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %s: status %d", ErrUpstream, u.name, resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("%w: %s: status %d", ErrUpstream, u.name, resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %s: decode: %v", ErrUpstream, u.name, err))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, u.retries), ctx))
}

type CompanyClient struct {
	upstream
}

func NewCompanyClient(baseURL string, timeout time.Duration) *CompanyClient {
	return &CompanyClient{upstream: newUpstream("company", baseURL, timeout)}
}

// GetCompany returns nil without error when the company no longer exists.
func (c *CompanyClient) GetCompany(ctx context.Context, authHeader, id string) (*transport.Company, error) {
	var company transport.Company
	err := c.getJSON(ctx, "/companies/"+url.PathEscape(id), nil, authHeader, &company)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

type RatingClient struct {
	upstream
}

func NewRatingClient(baseURL string, timeout time.Duration) *RatingClient {
	return &RatingClient{upstream: newUpstream("rating", baseURL, timeout)}
}

func (c *RatingClient) ListRatings(ctx context.Context, authHeader, companyID string) ([]transport.Rating, error) {
	ratings := make([]transport.Rating, 0)
	err := c.getJSON(ctx, "/ratings", url.Values{"companyId": {companyID}}, authHeader, &ratings)
	if errors.Is(err, errNotFound) {
		return []transport.Rating{}, nil
	}
	if err != nil {
		return nil, err
	}
	return ratings, nil
}
