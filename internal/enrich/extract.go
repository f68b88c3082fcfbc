package enrich

import (
	"sort"
	"strconv"
	"strings"
)

// Candidate key names per logical field. The service localizes some field
// names and has renamed others across versions, so each field carries both
// the English and Italian spellings it has been seen under. Order matters:
// earlier names win when a node offers several.
var (
	titleKeys        = []string{"title", "titolo", "game_name", "nome"}
	descriptionKeys  = []string{"history", "description", "storia", "descrizione"}
	manufacturerKeys = []string{"manufacturer", "produttore", "company"}
	yearKeys         = []string{"year", "anno"}
	genreKeys        = []string{"genre", "genere"}
	playersKeys      = []string{"players", "giocatori"}
	buttonsKeys      = []string{"buttons", "pulsanti"}
	controlsKeys     = []string{"controls", "controlli", "input"}
	orientationKeys  = []string{"orientation", "orientamento", "screen_orientation"}
	statusKeys       = []string{"status", "stato", "emulation_status"}
)

// extractSummary sniffs the logical fields out of a response tree of
// unknown shape. Absence of a field leaves it empty; nothing here fails.
func extractSummary(tree any) Summary {
	return Summary{
		Title:        findField(tree, titleKeys),
		Description:  findField(tree, descriptionKeys),
		Manufacturer: findField(tree, manufacturerKeys),
		Year:         findField(tree, yearKeys),
		Genre:        findField(tree, genreKeys),
		Players:      findField(tree, playersKeys),
		Buttons:      findField(tree, buttonsKeys),
		Controls:     findField(tree, controlsKeys),
		Orientation:  findField(tree, orientationKeys),
		Status:       findField(tree, statusKeys),
	}
}

// findField walks the tree depth-first for the first scalar stored under
// any of the candidate keys. At each map node the candidates are checked in
// their given order before descending; descent visits map keys in sorted
// order and list elements in index order, so the walk is deterministic for
// a given tree.
func findField(node any, candidates []string) string {
	value, _ := findScalar(node, candidates)
	return value
}

func findScalar(node any, candidates []string) (string, bool) {
	switch v := node.(type) {
	case map[string]any:
		for _, key := range candidates {
			if raw, ok := v[key]; ok {
				if s, ok := scalarString(raw); ok {
					return s, true
				}
			}
		}
		for _, key := range sortedKeys(v) {
			if s, ok := findScalar(v[key], candidates); ok {
				return s, true
			}
		}
	case []any:
		for _, item := range v {
			if s, ok := findScalar(item, candidates); ok {
				return s, true
			}
		}
	}
	return "", false
}

// scalarString normalizes a leaf value to a non-empty string. Whole-number
// floats render without the trailing ".0" that JSON decoding introduces.
func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		trimmed := strings.TrimSpace(s)
		return trimmed, trimmed != ""
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(s), true
	}
	return "", false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
