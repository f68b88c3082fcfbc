// Package session wires one browsing session together: the catalog loaded
// from the dataset, the status store bound to a profile, and the shared
// metadata and artwork clients. Commands and MCP handlers operate on a
// Session; nothing in the repository holds process-wide mutable state.
package session

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/marquee-arcade/marquee/internal/artwork"
	"github.com/marquee-arcade/marquee/internal/cabinet"
	"github.com/marquee-arcade/marquee/internal/catalog"
	"github.com/marquee-arcade/marquee/internal/config"
	"github.com/marquee-arcade/marquee/internal/database"
	"github.com/marquee-arcade/marquee/internal/enrich"
	"github.com/marquee-arcade/marquee/internal/identity"
	"github.com/marquee-arcade/marquee/internal/logging"
	"github.com/marquee-arcade/marquee/internal/picker"
	"github.com/marquee-arcade/marquee/internal/services"
	"github.com/marquee-arcade/marquee/internal/status"
)

// Options override config-derived defaults. Zero values defer to config.
type Options struct {
	DBPath      string
	DatasetPath string
	Profile     string
}

// Session is the per-invocation context. The status view is a write-through
// mirror of the durable store: it is loaded once at open and updated only
// after a successful write, so a failed write leaves the last known durable
// state visible instead of an optimistic lie.
type Session struct {
	Catalog *catalog.Store
	Enrich  *enrich.Client
	Artwork *artwork.Resolver

	profile  string
	dbCtx    *database.Context
	statuses *services.StatusService
	log      zerolog.Logger

	now func() time.Time
	tz  *time.Location

	mu   sync.Mutex
	view map[string]status.Tag
}

// Open loads the dataset, opens the status database, provisions the profile
// namespace, and primes the status view.
func Open(ctx context.Context, opts Options) (*Session, error) {
	datasetPath := opts.DatasetPath
	if datasetPath == "" {
		datasetPath = config.GetDatasetPath()
	}
	profile := strings.TrimSpace(opts.Profile)
	if profile == "" {
		profile = config.DefaultProfile()
	}

	store, err := catalog.Load(datasetPath)
	if err != nil {
		return nil, err
	}

	dbCtx, err := database.CreateDatabase(opts.DBPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrStorageUnavailable, err)
	}

	profileID, err := services.NewProfileService(dbCtx).GetOrCreate(ctx, profile)
	if err != nil {
		_ = database.CloseDatabase(dbCtx)
		return nil, err
	}

	s := &Session{
		Catalog:  store,
		Enrich:   enrich.NewClient(enrich.Options{Endpoints: config.MetadataEndpoints()}),
		Artwork:  artwork.NewResolver(artwork.Options{BaseURL: config.ArtworkBaseURL()}),
		profile:  profile,
		dbCtx:    dbCtx,
		statuses: services.NewStatusService(dbCtx, profileID),
		log:      logging.Named("session"),
		now:      time.Now,
		tz:       config.Timezone(),
	}

	if err := s.reloadView(ctx); err != nil {
		_ = database.CloseDatabase(dbCtx)
		return nil, err
	}

	s.log.Debug().Str("profile", profile).Int("games", store.Len()).Msg("session opened")
	return s, nil
}

// Close releases the database handle. The in-memory view and caches die with
// the process.
func (s *Session) Close() error {
	return database.CloseDatabase(s.dbCtx)
}

// Profile returns the namespace this session reads and writes.
func (s *Session) Profile() string {
	return s.profile
}

func (s *Session) reloadView(ctx context.Context) error {
	entries, err := s.statuses.All(ctx)
	if err != nil {
		return err
	}

	view := make(map[string]status.Tag, len(entries))
	for _, e := range entries {
		view[e.GameKey] = e.Tag
	}

	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
	return nil
}

// StatusOf returns the tag for a key from the session view without touching
// the database. TagNone means untagged.
func (s *Session) StatusOf(gameKey string) status.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view[gameKey]
}

// Statuses returns a copy of the session view.
func (s *Session) Statuses() map[string]status.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]status.Tag, len(s.view))
	for k, v := range s.view {
		out[k] = v
	}
	return out
}

// SetStatus writes the tag through to the store and, only on success,
// updates the session view. TagNone clears the key.
func (s *Session) SetStatus(ctx context.Context, gameKey string, tag status.Tag) error {
	if err := s.statuses.Set(ctx, gameKey, tag); err != nil {
		return err
	}

	s.mu.Lock()
	if tag == status.TagNone {
		delete(s.view, gameKey)
	} else {
		s.view[gameKey] = tag
	}
	s.mu.Unlock()
	return nil
}

// ClearStatus removes the tag for a key, write-through like SetStatus.
func (s *Session) ClearStatus(ctx context.Context, gameKey string) (bool, error) {
	removed, err := s.statuses.Clear(ctx, gameKey)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	delete(s.view, gameKey)
	s.mu.Unlock()
	return removed, nil
}

// Entries lists every stored status in the profile, ordered by key.
func (s *Session) Entries(ctx context.Context) ([]status.Entry, error) {
	return s.statuses.All(ctx)
}

// EntriesByTag lists the stored statuses carrying one tag, ordered by key.
func (s *Session) EntriesByTag(ctx context.Context, tag status.Tag) ([]status.Entry, error) {
	return s.statuses.ByTag(ctx, tag)
}

// Counts aggregates stored statuses per tag.
func (s *Session) Counts(ctx context.Context) ([]services.TagTotal, error) {
	return s.statuses.Counts(ctx)
}

// Favorites returns the favorite keys from the session view, sorted.
func (s *Session) Favorites() []string {
	s.mu.Lock()
	var keys []string
	for k, v := range s.view {
		if v == status.TagFavorite {
			keys = append(keys, k)
		}
	}
	s.mu.Unlock()

	slices.Sort(keys)
	return keys
}

// ImportFavorites writes the keys through as favorites and reloads the view,
// since a replace-mode import can clear keys the view still holds.
func (s *Session) ImportFavorites(ctx context.Context, keys []string, replace bool) (int, error) {
	n, err := s.statuses.ImportFavorites(ctx, keys, replace)
	if err != nil {
		return 0, err
	}
	if err := s.reloadView(ctx); err != nil {
		return n, err
	}
	return n, nil
}

// Candidates returns the filtered, (year, title)-sorted pick set, optionally
// narrowed by the cabinet policy. Policy filtering preserves order, so picks
// stay reproducible for a given dataset, filter, and policy.
func (s *Session) Candidates(f catalog.Filter, cabOnly bool) []catalog.Game {
	games := s.Catalog.Filter(f)
	if cabOnly {
		games = cabinet.DefaultPolicy().Filter(games)
	}
	return games
}

// Today returns the deterministic pick for the current date in the configured
// zone, along with the seed it used.
func (s *Session) Today(f catalog.Filter, cabOnly bool) (catalog.Game, int, bool) {
	seed := picker.DaySeed(s.now().In(s.tz))
	g, ok := picker.Deterministic(s.Candidates(f, cabOnly), seed)
	return g, seed, ok
}

// Random returns one uniformly random game from the candidates.
func (s *Session) Random(f catalog.Filter, cabOnly bool) (catalog.Game, bool) {
	return picker.RandomOne(s.Candidates(f, cabOnly))
}

// RandomN returns up to n distinct random games from the candidates.
func (s *Session) RandomN(f catalog.Filter, n int, cabOnly bool) []catalog.Game {
	return picker.RandomN(s.Candidates(f, cabOnly), n)
}

// Find resolves a user-supplied reference to a record: an identity key
// ("rom:..." or "meta:..."), a rom code, or an exact title, in that order.
func (s *Session) Find(ref string) (catalog.Game, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return catalog.Game{}, false
	}
	if identity.IsKey(ref) {
		return identity.Find(s.Catalog.Games(), ref)
	}
	if g, ok := s.Catalog.FindRom(ref); ok {
		return g, true
	}
	return s.Catalog.FindTitle(ref)
}

// ResolveKey maps a reference to the identity key the status store uses.
// Catalog matches win; a raw identity key passes through unchanged so
// statuses survive dataset edits that drop the record behind them.
func (s *Session) ResolveKey(ref string) (string, bool) {
	if g, ok := s.Find(ref); ok {
		return identity.Key(g), true
	}
	ref = strings.TrimSpace(ref)
	if identity.IsKey(ref) {
		return ref, true
	}
	return "", false
}
