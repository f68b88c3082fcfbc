// Package status defines the per-game tag vocabulary shared by the store,
// the services, and the presentation layers.
package status

import (
	"fmt"
	"strings"
	"time"
)

type Tag string

const (
	// TagNone is the zero value: the key has no stored status row.
	TagNone       Tag = ""
	TagFavorite   Tag = "favorite"
	TagWantToPlay Tag = "want_to_play"
	TagPlayed     Tag = "played"
	TagNoRom      Tag = "dont_have_rom"
	TagNotWorking Tag = "not_playable"
)

// Tags lists every assignable tag in display order. TagNone is excluded:
// absence is expressed by clearing, not by storing an empty tag.
func Tags() []Tag {
	return []Tag{TagFavorite, TagWantToPlay, TagPlayed, TagNoRom, TagNotWorking}
}

var labels = map[Tag]string{
	TagFavorite:   "Favorite",
	TagWantToPlay: "Want to Play",
	TagPlayed:     "Played",
	TagNoRom:      "Don't Have ROM",
	TagNotWorking: "Not Playable",
}

// Label returns the human-readable form of a tag, or "" for TagNone.
func Label(t Tag) string {
	return labels[t]
}

// Parse maps user input to a tag. Both the storage form ("want_to_play")
// and the display form ("Want to Play") are accepted, case-insensitively.
func Parse(s string) (Tag, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "'", "")
	for _, t := range Tags() {
		if normalized == string(t) {
			return t, nil
		}
	}
	return TagNone, fmt.Errorf("unknown status tag: %q", s)
}

// Validate rejects values outside the assignable vocabulary.
func Validate(t Tag) error {
	for _, known := range Tags() {
		if t == known {
			return nil
		}
	}
	return fmt.Errorf("invalid status tag: %q", t)
}

// Entry is one stored (key, tag) assignment.
type Entry struct {
	GameKey   string
	Tag       Tag
	UpdatedAt time.Time
}
