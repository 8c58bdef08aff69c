package validators

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips every tag and script payload, leaving plain text. Free-text
// fields are sanitized on the way in so later display surfaces never render
// stored markup.
var strict = bluemonday.StrictPolicy()

// SanitizeString strips markup from input, unescapes the surviving entities,
// collapses whitespace runs left behind by removed tags, and truncates to
// maxLen runes when maxLen is positive.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Join(strings.Fields(html.UnescapeString(strict.Sanitize(input))), " ")
	if maxLen > 0 {
		runes := []rune(cleaned)
		if len(runes) > maxLen {
			return string(runes[:maxLen])
		}
	}
	return cleaned
}
