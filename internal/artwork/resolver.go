// Package artwork resolves the best available image for a game from a
// static thumbnail host, probing candidates in a fixed priority order.
package artwork

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/marquee-arcade/marquee/internal/logging"
)

// DefaultBaseURL is the public Libretro thumbnail set for MAME.
const DefaultBaseURL = "https://raw.githubusercontent.com/libretro-thumbnails/MAME/master"

const (
	defaultTimeout = 5 * time.Second
	defaultUA      = "marquee-arcade"
)

// Categories lists the asset folders from most to least preferred. A match
// in an earlier category always beats any match in a later one.
func Categories() []string {
	return []string{"Named_Marquees", "Named_Flyers", "Named_Titles", "Named_Snaps"}
}

// Label returns the short human name for a category directory.
func Label(category string) string {
	switch category {
	case "Named_Marquees":
		return "marquee"
	case "Named_Flyers":
		return "flyer"
	case "Named_Titles":
		return "title"
	case "Named_Snaps":
		return "snap"
	}
	return category
}

// MatchedBy reports which naming convention produced a hit.
type MatchedBy string

const (
	MatchedByRom   MatchedBy = "rom"
	MatchedByTitle MatchedBy = "title"
)

// Artwork is one resolved image.
type Artwork struct {
	URL       string
	Category  string
	MatchedBy MatchedBy
}

// Candidate is one URL the resolver would probe, in probe order.
type Candidate struct {
	URL       string
	Category  string
	MatchedBy MatchedBy
}

// Options configures the Resolver.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Resolver probes candidate URLs for existence and remembers every answer
// for the rest of the session, so re-rendering the same game never repeats
// a probe.
type Resolver struct {
	http *http.Client
	opts Options
	log  zerolog.Logger

	mu     sync.Mutex
	probes map[string]bool
}

// NewResolver creates a Resolver with sane defaults.
func NewResolver(o Options) *Resolver {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	return &Resolver{
		http:   &http.Client{Timeout: o.Timeout},
		opts:   o,
		log:    logging.Named("artwork"),
		probes: make(map[string]bool),
	}
}

// Candidates lists every URL Resolve would try for a game, in order:
// categories by priority, and within each category the rom-keyed path
// before the title-keyed path. Games with neither rom nor title have no
// candidates.
func (r *Resolver) Candidates(rom, title string) []Candidate {
	rom = strings.ToLower(strings.TrimSpace(rom))
	title = strings.TrimSpace(title)

	var out []Candidate
	for _, category := range Categories() {
		if rom != "" {
			out = append(out, Candidate{
				URL:       r.opts.BaseURL + "/" + category + "/" + rom + ".png",
				Category:  category,
				MatchedBy: MatchedByRom,
			})
		}
		if title != "" {
			out = append(out, Candidate{
				URL:       r.opts.BaseURL + "/" + category + "/" + TitleFileName(title) + ".png",
				Category:  category,
				MatchedBy: MatchedByTitle,
			})
		}
	}
	return out
}

// Resolve returns the first candidate that exists on the host, or false
// when the game has no artwork. Not finding artwork is a normal outcome,
// not an error.
func (r *Resolver) Resolve(ctx context.Context, rom, title string) (Artwork, bool) {
	for _, candidate := range r.Candidates(rom, title) {
		if r.exists(ctx, candidate.URL) {
			r.log.Debug().Str("url", candidate.URL).Str("category", candidate.Category).Msg("artwork resolved")
			return Artwork{
				URL:       candidate.URL,
				Category:  candidate.Category,
				MatchedBy: candidate.MatchedBy,
			}, true
		}
	}
	return Artwork{}, false
}

// exists answers from the session probe cache when possible.
func (r *Resolver) exists(ctx context.Context, url string) bool {
	r.mu.Lock()
	if cached, ok := r.probes[url]; ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	found := r.probe(ctx, url)

	r.mu.Lock()
	r.probes[url] = found
	r.mu.Unlock()
	return found
}

// probe checks existence with a one-byte ranged GET rather than a full
// download. Any transport problem counts as absent.
func (r *Resolver) probe(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Range", "bytes=0-0")
	req.Header.Set("User-Agent", r.opts.UserAgent)

	resp, err := r.http.Do(req)
	if err != nil {
		r.log.Debug().Str("url", url).Err(err).Msg("artwork probe failed")
		return false
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		_ = resp.Body.Close()
	}()

	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusPartialContent
}
