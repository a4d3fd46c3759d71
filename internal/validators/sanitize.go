package validators

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Sanitize strips all markup and attributes from free-text input before it
// is validated or stored. The policy entity-escapes what survives, so the
// result is unescaped back to plain text; templates re-escape on render.
func Sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
