package catalog

import (
	"cmp"
	"slices"
	"strings"
)

// Store is the order-preserving, read-only record collection for one
// session. It is loaded once and never mutated afterwards.
type Store struct {
	games []Game
}

// NewStore wraps an already-normalized record slice.
func NewStore(games []Game) *Store {
	return &Store{games: games}
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.games)
}

// Games returns all records in load order.
func (s *Store) Games() []Game {
	out := make([]Game, len(s.games))
	copy(out, s.games)
	return out
}

// Filter selects the candidate set for listing and picking.
//
// Zero values leave a dimension unconstrained: YearMin/YearMax of 0 mean
// unbounded, empty Platforms/Genres match everything, empty Search skips
// text matching.
type Filter struct {
	YearMin   int
	YearMax   int
	Platforms []string
	Genres    []string
	Search    string
}

// Filter returns the matching records sorted by (year, title). The sorted
// order is a documented precondition of the deterministic picker: the pick
// is a position lookup, so filter output must be stable for a given filter
// and dataset.
func (s *Store) Filter(f Filter) []Game {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var out []Game
	for _, g := range s.games {
		if f.YearMin != 0 && g.Year < f.YearMin {
			continue
		}
		if f.YearMax != 0 && g.Year > f.YearMax {
			continue
		}
		if len(f.Platforms) != 0 && !slices.Contains(f.Platforms, g.Platform) {
			continue
		}
		if len(f.Genres) != 0 && !slices.Contains(f.Genres, g.Genre) {
			continue
		}
		if search != "" && !matchesSearch(g, search) {
			continue
		}
		out = append(out, g)
	}

	slices.SortStableFunc(out, func(a, b Game) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return strings.Compare(a.Title, b.Title)
	})
	return out
}

func matchesSearch(g Game, lowered string) bool {
	for _, field := range []string{g.Rom, g.Title, g.Company, g.Genre, g.Platform} {
		if strings.Contains(strings.ToLower(field), lowered) {
			return true
		}
	}
	return false
}

// FindRom returns the first record with the given rom code (normalized to
// lowercase before matching).
func (s *Store) FindRom(rom string) (Game, bool) {
	rom = strings.ToLower(strings.TrimSpace(rom))
	if rom == "" {
		return Game{}, false
	}
	for _, g := range s.games {
		if g.Rom == rom {
			return g, true
		}
	}
	return Game{}, false
}

// FindTitle returns the first record whose title matches case-insensitively.
func (s *Store) FindTitle(title string) (Game, bool) {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return Game{}, false
	}
	for _, g := range s.games {
		if strings.ToLower(g.Title) == title {
			return g, true
		}
	}
	return Game{}, false
}

// Platforms returns the distinct non-empty platform values, sorted.
func (s *Store) Platforms() []string {
	return s.distinct(func(g Game) string { return g.Platform })
}

// Genres returns the distinct non-empty genre values, sorted.
func (s *Store) Genres() []string {
	return s.distinct(func(g Game) string { return g.Genre })
}

func (s *Store) distinct(pick func(Game) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, g := range s.games {
		v := pick(g)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
