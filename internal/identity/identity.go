// Package identity derives the stable key that addresses a game record in
// the status store and the metadata cache, independent of row position.
package identity

import (
	"fmt"
	"strings"

	"github.com/marquee-arcade/marquee/internal/catalog"
)

const (
	// RomPrefix marks keys derived from a MAME-style rom code.
	RomPrefix = "rom:"
	// MetaPrefix marks fallback keys composed from display fields.
	MetaPrefix = "meta:"
)

// Key resolves the identity key for a record. A non-empty rom code always
// wins; otherwise the key is the exact (title, year, company) tuple joined
// with "|". The tuple form is intentionally fragile: near-duplicate titles
// do not collide, and a title containing "|" is ambiguous. Total and
// deterministic for any input.
func Key(g catalog.Game) string {
	if rom := strings.ToLower(strings.TrimSpace(g.Rom)); rom != "" {
		return RomPrefix + rom
	}
	return fmt.Sprintf("%s%s|%d|%s", MetaPrefix, strings.TrimSpace(g.Title), g.Year, strings.TrimSpace(g.Company))
}

// FromRom builds the key for a bare rom code.
func FromRom(rom string) string {
	return RomPrefix + strings.ToLower(strings.TrimSpace(rom))
}

// IsKey reports whether s is already a fully-qualified identity key rather
// than a bare rom code or title.
func IsKey(s string) bool {
	return strings.HasPrefix(s, RomPrefix) || strings.HasPrefix(s, MetaPrefix)
}

// Find scans records for the one matching an identity key.
func Find(games []catalog.Game, key string) (catalog.Game, bool) {
	for _, g := range games {
		if Key(g) == key {
			return g, true
		}
	}
	return catalog.Game{}, false
}
