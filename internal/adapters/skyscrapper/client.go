// Package skyscrapper talks to the Sky-Scrapper flight API on RapidAPI and its
// legacy Skyscanner autocomplete siblings.
package skyscrapper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "github.com/h4ckm1n-dev/skyscanner-cli/internal/errors"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/logger"
)

const (
	defaultBaseURL       = "https://sky-scrapper.p.rapidapi.com"
	defaultHost          = "sky-scrapper.p.rapidapi.com"
	defaultTimeout       = 30 * time.Second
	legacyBaseURLDefault = "https://skyscanner-skyscanner-flight-search-v1.p.rapidapi.com"
	legacyHostDefault    = "skyscanner-skyscanner-flight-search-v1.p.rapidapi.com"

	maxBody      = 10 << 20
	debugPreview = 1000
	errPreview   = 200
)

// Options configures the Client
type Options struct {
	BaseURL string
	Host    string
	Key     string
	Timeout time.Duration

	// HostURL serves the host-relative autocomplete endpoints; defaults to https://{Host}
	HostURL string

	LegacyBaseURL string
	LegacyHost    string
}

// Client issues authenticated GET requests and returns raw bodies
type Client struct {
	http *http.Client
	opts Options
	log  *logger.Logger
}

// NewClient creates a Client with defaults filled in
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = defaultBaseURL
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Host == "" {
		o.Host = defaultHost
	}
	if o.HostURL == "" {
		o.HostURL = "https://" + o.Host
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.LegacyBaseURL == "" {
		o.LegacyBaseURL = legacyBaseURLDefault
	}
	if o.LegacyHost == "" {
		o.LegacyHost = legacyHostDefault
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  logger.Named("skyscrapper"),
	}
}

// HasKey reports whether an API key is configured
func (c *Client) HasKey() bool { return c.opts.Key != "" }

// Get fetches rawURL with query q. host overrides the X-RapidAPI-Host header when set.
func (c *Client) Get(ctx context.Context, rawURL, host string, q url.Values) ([]byte, error) {
	if !c.HasKey() {
		return nil, perr.New(perr.ErrorCodeNotConfigured, "RAPIDAPI_KEY is not set").WithOp("skyscrapper.get")
	}
	if host == "" {
		host = c.opts.Host
	}
	full := rawURL
	if len(q) > 0 {
		full += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "build request for %s", rawURL)
	}
	req.Header.Set("X-RapidAPI-Key", c.opts.Key)
	req.Header.Set("X-RapidAPI-Host", host)
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("url", rawURL).Str("query", q.Encode()).Msg("request")
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		var ne interface{ Timeout() bool }
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "timeout calling %s", rawURL)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "call %s", rawURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read body of %s", rawURL)
	}

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Str("body", preview(body, debugPreview)).
		Msg("response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, perr.Newf(perr.ErrorCodeUpstream, "%s returned %d: %s", rawURL, resp.StatusCode, preview(body, errPreview))
	}
	return body, nil
}

func preview(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return fmt.Sprintf("%s... (%d bytes)", body[:n], len(body))
}
