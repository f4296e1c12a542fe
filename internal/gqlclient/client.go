// Package gqlclient is the transport used for every network operation. It
// posts named GraphQL documents to the platform endpoint and decodes the
// typed payload, surfacing transport and GraphQL-level failures as
// *result.NetworkError.
package gqlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"menuhub/internal/ops"
	"menuhub/internal/result"
	httptransport "menuhub/internal/transport/http"
)

const defaultTimeout = 20 * time.Second

type Client struct {
	apiURL  string
	http    *http.Client
	limiter *rate.Limiter
	log     *logrus.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. The header round-tripper
// is not reapplied; the caller owns the full transport chain.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit caps outgoing requests at rps per second with the given
// burst. Zero rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(apiURL, token string, opts ...Option) *Client {
	c := &Client{apiURL: apiURL}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{
			Timeout: defaultTimeout,
			Transport: httptransport.HeaderRoundTripper{
				Token:  token,
				Logger: c.log,
			},
		}
	}
	return c
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
	Operation string         `json:"operationName,omitempty"`
}

type graphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

// Do executes op against the platform endpoint and decodes the data payload
// into out. Any failure is returned as *result.NetworkError carrying the
// operation name.
func (c *Client) Do(ctx context.Context, op ops.Operation, variables map[string]any, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &result.NetworkError{Op: op.Name, Err: err}
		}
	}

	reqBody, err := json.Marshal(graphQLRequest{
		Query:     op.Doc,
		Variables: variables,
		Operation: op.Name,
	})
	if err != nil {
		return &result.NetworkError{Op: op.Name, Err: fmt.Errorf("marshal graphql request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return &result.NetworkError{Op: op.Name, Err: fmt.Errorf("create http request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &result.NetworkError{Op: op.Name, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return &result.NetworkError{Op: op.Name, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &result.NetworkError{Op: op.Name, Err: fmt.Errorf("non-2xx (%d): %s", resp.StatusCode, string(b))}
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(b, &envelope); err != nil {
		return &result.NetworkError{Op: op.Name, Err: fmt.Errorf("decode graphql envelope: %w", err)}
	}
	if len(envelope.Errors) > 0 {
		// Keep it human-readable. Detailed mapping can be added later.
		return &result.NetworkError{Op: op.Name, Err: fmt.Errorf("graphql error: %s", envelope.Errors[0].Message)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &result.NetworkError{Op: op.Name, Err: fmt.Errorf("decode graphql data: %w", err)}
	}
	return nil
}
