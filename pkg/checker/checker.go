// Package checker sends a single test case to the harness and reports the
// outcome. A case never aborts the run: transport errors are printed and the
// caller moves on to the next case.
package checker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"harnesscheck/pkg/checks"
	"harnesscheck/pkg/reporter"
	"harnesscheck/pkg/response"
	"harnesscheck/pkg/suite"
	"harnesscheck/pkg/utils"
)

// DefaultBaseURL is where the harness listens unless configured otherwise.
const DefaultBaseURL = "http://localhost:8080"

// TransportError is returned when no HTTP response could be obtained, or its
// body could not be read to the end.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string { return e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// Checker runs cases against one base URL.
type Checker struct {
	baseURL  string
	client   *http.Client
	reporter *reporter.Reporter
	logger   *slog.Logger
}

// Option customizes a Checker.
type Option func(*Checker)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client = utils.NewHTTPClient(d) }
}

// WithHTTPClient replaces the HTTP client entirely.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) { c.client = client }
}

// WithReporter sets where result lines are printed.
func WithReporter(r *reporter.Reporter) Option {
	return func(c *Checker) { c.reporter = r }
}

// WithLogger sets the structured logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) { c.logger = l }
}

// New creates a Checker. An empty baseURL uses DefaultBaseURL.
func New(baseURL string, opts ...Option) *Checker {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Checker{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = utils.NewHTTPClient(utils.DefaultTimeout)
	}
	if c.reporter == nil {
		c.reporter = reporter.New(io.Discard)
	}
	return c
}

// BaseURL returns the URL every case path is appended to.
func (c *Checker) BaseURL() string { return c.baseURL }

// Reporter returns the reporter result lines go to.
func (c *Checker) Reporter() *reporter.Reporter { return c.reporter }

// Run executes tc, prints its result line and returns the response record.
// It returns nil when the request failed at the transport level.
func (c *Checker) Run(ctx context.Context, tc suite.Case) *response.Record {
	rec, err := c.Do(ctx, tc)
	if err != nil {
		c.logger.Debug("Request failed", "case", tc.Name, "error", err)
		c.reporter.TransportFailure(tc.Name, err)
		return nil
	}

	if checks.Evaluate(tc.Check, rec) {
		c.reporter.Pass(tc.Name, rec.StatusCode)
	} else {
		c.logger.Debug("Check failed", "case", tc.Name, "check", checks.Describe(tc.Check))
		c.reporter.Fail(tc.Name, rec.StatusCode, rec.Dump())
	}
	return rec
}

// Do sends tc and parses the response without judging or printing it.
func (c *Checker) Do(ctx context.Context, tc suite.Case) (*response.Record, error) {
	method := tc.Method
	if method == "" {
		method = http.MethodGet
	}
	url := c.baseURL + tc.Path

	req, err := buildRequest(ctx, method, url, tc.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", tc.Name, err)
	}

	c.logger.Debug("Sending request", "case", tc.Name, "method", method, "url", url, "has_body", tc.Body != nil)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: fmt.Errorf("reading response body: %w", err)}
	}

	c.logger.Debug("Received response",
		"case", tc.Name,
		"status_code", resp.StatusCode,
		"bytes", len(raw),
		"response_time_ms", float64(time.Since(start).Microseconds())/1000.0)

	return response.New(resp.StatusCode, resp.Header, raw), nil
}

func buildRequest(ctx context.Context, method, url string, body map[string]any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}
