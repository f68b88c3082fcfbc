package artwork

import (
	"net/url"
	"strings"
)

// titleUnsafe matches the characters the thumbnail set replaces with an
// underscore in its filenames.
var titleUnsafe = strings.NewReplacer(
	"&", "_",
	"*", "_",
	"/", "_",
	":", "_",
	"`", "_",
	"<", "_",
	">", "_",
	"?", "_",
	"\\", "_",
	"|", "_",
	"\"", "_",
)

// TitleFileName converts a display title into the filename the thumbnail
// host uses: unsafe characters become underscores, then the rest is
// percent-encoded for use in a URL path. Stable for a given title.
func TitleFileName(title string) string {
	return urlEncode(titleUnsafe.Replace(strings.TrimSpace(title)))
}

func urlEncode(value string) string {
	// url.QueryEscape encodes spaces as '+', so convert to '%20' to match path encoding.
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
