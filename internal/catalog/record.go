// Package catalog holds the in-memory, read-only store of arcade game
// records loaded from the dataset CSV.
package catalog

import "strings"

// Game is an immutable, normalized dataset record. Rom is the MAME-style
// short code when the dataset provides one; it is the preferred identity
// hint for status tracking, metadata lookups, and artwork.
type Game struct {
	Rom      string
	Title    string
	Year     int
	Company  string
	Genre    string
	Platform string
}

// normalize trims every string field and lowercases the rom code, mirroring
// the dataset's convention that artwork and lookup keys are lowercase.
func normalize(g Game) Game {
	g.Rom = strings.ToLower(strings.TrimSpace(g.Rom))
	g.Title = strings.TrimSpace(g.Title)
	g.Company = strings.TrimSpace(g.Company)
	g.Genre = strings.TrimSpace(g.Genre)
	g.Platform = strings.TrimSpace(g.Platform)
	return g
}

// valid reports whether a normalized record satisfies the ingestion
// invariant: non-empty title and a parsed year.
func valid(g Game) bool {
	return g.Title != "" && g.Year != 0
}
