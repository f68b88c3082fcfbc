// Package links builds the curated reference links shown alongside a game.
package links

import (
	"net/url"
	"strings"
)

// Link is one labeled reference URL.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Curated returns the reference links for a game, in display order. The
// rom-keyed links only appear when a rom code is known; title-keyed links
// always appear for a non-empty title.
func Curated(title, rom string) []Link {
	title = strings.TrimSpace(title)
	rom = strings.ToLower(strings.TrimSpace(rom))

	var out []Link
	if title != "" {
		q := url.QueryEscape(title)
		out = append(out, Link{
			Label: "Arcade-Museum search (KLOV / Museum of the Game)",
			URL:   "https://www.arcade-museum.com/search?term=" + q,
		})
	}
	if rom != "" {
		out = append(out,
			Link{
				Label: "ADB (Arcade Database) page",
				URL:   "https://adb.arcadeitalia.net/?mame=" + url.QueryEscape(rom),
			},
			Link{
				Label: "Arcade-Museum MAME database search",
				URL:   "https://www.arcade-museum.com/tech-center/mame",
			},
		)
	}
	if title != "" {
		q := url.QueryEscape(title)
		out = append(out,
			Link{
				Label: "Gameplay (YouTube)",
				URL:   "https://www.youtube.com/results?search_query=" + q + "+arcade",
			},
			Link{
				Label: "MAME info (search)",
				URL:   "https://www.google.com/search?q=" + q + "+MAME",
			},
			Link{
				Label: "History (search)",
				URL:   "https://www.google.com/search?q=" + q + "+arcade+history",
			},
		)
	}
	return out
}
