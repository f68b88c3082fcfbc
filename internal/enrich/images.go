package enrich

import (
	"net/url"
	"path"
	"strings"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// harvestImageURLs walks the response tree for string values that are
// fully-qualified URLs pointing at an image file. Duplicates are dropped,
// first appearance wins; the walk order matches findScalar so the list is
// stable for a given tree.
func harvestImageURLs(tree any) []string {
	var found []string
	seen := make(map[string]bool)
	walkStrings(tree, func(s string) {
		if !looksLikeImageURL(s) || seen[s] {
			return
		}
		seen[s] = true
		found = append(found, s)
	})
	return found
}

func walkStrings(node any, visit func(string)) {
	switch v := node.(type) {
	case string:
		visit(v)
	case map[string]any:
		for _, key := range sortedKeys(v) {
			walkStrings(v[key], visit)
		}
	case []any:
		for _, item := range v {
			walkStrings(item, visit)
		}
	}
}

func looksLikeImageURL(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	ext := strings.ToLower(path.Ext(u.Path))
	return imageExtensions[ext]
}
