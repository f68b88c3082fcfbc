// Package enrich fetches structured metadata for a game from the Arcade
// Database service. Responses have no fixed schema; extraction is a
// best-effort pass over whatever tree comes back, and every failure is
// captured into the result instead of surfacing as an error.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/marquee-arcade/marquee/internal/logging"
)

const (
	defaultTimeout = 6 * time.Second
	defaultUA      = "marquee-arcade"

	// Responses are small JSON documents; anything past this is not one.
	maxBodyBytes = 2 << 20
)

// DefaultEndpoints lists the transport variants in preference order. The
// insecure variant exists because the service's TLS setup has a history of
// breaking; falling back beats failing.
func DefaultEndpoints() []string {
	return []string{
		"https://adb.arcadeitalia.net/service_scraper.php",
		"http://adb.arcadeitalia.net/service_scraper.php",
	}
}

// FallbackPageURL returns the human-browsable detail page for a rom, offered
// as a manual escape hatch when every transport variant fails.
func FallbackPageURL(rom string) string {
	return "https://adb.arcadeitalia.net/?mame=" + url.QueryEscape(rom)
}

type FailureKind string

const (
	FailureNoIdentity FailureKind = "no_identity"
	FailureTransport  FailureKind = "transport"
	FailureMalformed  FailureKind = "malformed_response"
)

// Failure describes why a lookup produced no metadata.
type Failure struct {
	Kind        FailureKind
	Detail      string
	FallbackURL string
}

// Summary holds the extracted logical fields. Every field is a string:
// the service is inconsistent about numeric versus textual values, so
// normalization happens at extraction. Empty means not found, not invalid.
type Summary struct {
	Title        string
	Description  string
	Manufacturer string
	Year         string
	Genre        string
	Players      string
	Buttons      string
	Controls     string
	Orientation  string
	Status       string
}

// Result is the outcome of one lookup: either a summary extracted from the
// raw payload, or a failure. Both outcomes are cached for the session.
type Result struct {
	Rom       string
	Summary   Summary
	Images    []string
	Raw       json.RawMessage
	FetchedAt time.Time
	Failure   *Failure
}

// OK reports whether the lookup produced metadata.
func (r *Result) OK() bool {
	return r != nil && r.Failure == nil
}

// Options configures the Client.
type Options struct {
	// Endpoints are base URLs tried in order; empty means DefaultEndpoints.
	Endpoints []string
	Timeout   time.Duration
	UserAgent string
}

// Client looks up metadata with a per-session cache. A cache hit never
// touches the network; Refresh is the only way to re-fetch.
type Client struct {
	http *http.Client
	opts Options
	log  zerolog.Logger
	now  func() time.Time

	mu    sync.Mutex
	cache map[string]*Result
}

// NewClient creates a Client with sane defaults.
func NewClient(o Options) *Client {
	if len(o.Endpoints) == 0 {
		o.Endpoints = DefaultEndpoints()
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   logging.Named("enrich"),
		now:   time.Now,
		cache: make(map[string]*Result),
	}
}

// Lookup returns the metadata for a rom, served from cache after the first
// call. An empty rom short-circuits to a no-identity failure without any
// network activity.
func (c *Client) Lookup(ctx context.Context, rom string) *Result {
	rom = strings.ToLower(strings.TrimSpace(rom))
	if rom == "" {
		return &Result{
			FetchedAt: c.now(),
			Failure:   &Failure{Kind: FailureNoIdentity, Detail: "record has no rom code"},
		}
	}

	c.mu.Lock()
	if cached, ok := c.cache[rom]; ok {
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	result := c.fetch(ctx, rom)

	c.mu.Lock()
	c.cache[rom] = result
	c.mu.Unlock()
	return result
}

// Refresh evicts any cached entry for the rom before fetching again, so a
// failed refresh replaces the stale entry with the failure instead of
// silently resurrecting old data.
func (c *Client) Refresh(ctx context.Context, rom string) *Result {
	rom = strings.ToLower(strings.TrimSpace(rom))

	c.mu.Lock()
	delete(c.cache, rom)
	c.mu.Unlock()

	return c.Lookup(ctx, rom)
}

// CacheSize reports how many lookups this session holds.
func (c *Client) CacheSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

func (c *Client) fetch(ctx context.Context, rom string) *Result {
	result := &Result{Rom: rom, FetchedAt: c.now()}

	var lastFailure *Failure
	for _, endpoint := range c.opts.Endpoints {
		body, failure := c.attempt(ctx, endpoint, rom)
		if failure != nil {
			lastFailure = failure
			continue
		}

		var tree any
		if err := json.Unmarshal(body, &tree); err != nil {
			lastFailure = &Failure{
				Kind:   FailureMalformed,
				Detail: fmt.Sprintf("%s: %v", endpoint, err),
			}
			c.log.Warn().Str("rom", rom).Str("endpoint", endpoint).Err(err).Msg("metadata response did not parse")
			continue
		}

		result.Raw = body
		result.Summary = extractSummary(tree)
		result.Images = harvestImageURLs(tree)
		c.log.Debug().Str("rom", rom).Str("endpoint", endpoint).Int("images", len(result.Images)).Msg("metadata lookup succeeded")
		return result
	}

	if lastFailure == nil {
		lastFailure = &Failure{Kind: FailureTransport, Detail: "no endpoints configured"}
	}
	lastFailure.FallbackURL = FallbackPageURL(rom)
	result.Failure = lastFailure
	return result
}

// attempt issues one GET against one transport variant. The returned
// failure is always a transport failure; parse problems are the caller's
// to classify.
func (c *Client) attempt(ctx context.Context, endpoint, rom string) ([]byte, *Failure) {
	query := url.Values{}
	query.Set("ajax", "query_mame")
	query.Set("lang", "en")
	query.Set("game_name", rom)
	query.Set("use_parent", "1")
	requestURL := endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &Failure{Kind: FailureTransport, Detail: fmt.Sprintf("%s: %v", endpoint, err)}
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("rom", rom).Str("endpoint", endpoint).Err(err).Msg("metadata transport attempt failed")
		return nil, &Failure{Kind: FailureTransport, Detail: fmt.Sprintf("%s: %v", endpoint, err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug().Str("rom", rom).Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("metadata endpoint returned non-OK status")
		return nil, &Failure{Kind: FailureTransport, Detail: fmt.Sprintf("%s: unexpected status %d", endpoint, resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Failure{Kind: FailureTransport, Detail: fmt.Sprintf("%s: %v", endpoint, err)}
	}
	return body, nil
}
