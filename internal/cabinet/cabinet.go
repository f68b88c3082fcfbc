// Package cabinet holds the presentation-layer policy deciding whether a
// game suits a standard upright cabinet. The policy is a plain blocklist
// table, not core logic: adjust the lists, not the code.
package cabinet

import (
	"strings"

	"github.com/marquee-arcade/marquee/internal/catalog"
)

// Policy lists lowercase fragments that disqualify a game. Genre fragments
// match the genre field, title fragments the title field.
type Policy struct {
	GenreBlocklist []string
	TitleBlocklist []string
}

// DefaultPolicy excludes control schemes a joystick-and-buttons cabinet
// cannot host.
func DefaultPolicy() Policy {
	return Policy{
		GenreBlocklist: []string{
			"pinball",
			"mahjong",
			"casino",
			"gambling",
			"quiz",
			"mechanical",
			"rhythm",
		},
		TitleBlocklist: []string{
			"bowling alley",
		},
	}
}

// Compatible reports whether the game passes the policy. An empty policy
// accepts everything.
func (p Policy) Compatible(g catalog.Game) bool {
	genre := strings.ToLower(g.Genre)
	for _, blocked := range p.GenreBlocklist {
		if blocked != "" && strings.Contains(genre, blocked) {
			return false
		}
	}

	title := strings.ToLower(g.Title)
	for _, blocked := range p.TitleBlocklist {
		if blocked != "" && strings.Contains(title, blocked) {
			return false
		}
	}
	return true
}

// Filter returns only the games the policy accepts, preserving order.
func (p Policy) Filter(games []catalog.Game) []catalog.Game {
	out := make([]catalog.Game, 0, len(games))
	for _, g := range games {
		if p.Compatible(g) {
			out = append(out, g)
		}
	}
	return out
}
