package report

import (
	"regexp"
	"strings"
)

// Matches an HTML color code: '#' followed by 3 or 6 hex digits.
var colorPattern = regexp.MustCompile(`#(?:[0-9a-fA-F]{3}){1,2}\b`)

// ExtractColor pulls the first hex color code out of raw. On a match it
// removes exactly that occurrence, trims both ends of the remainder, and
// returns (cleaned, code, true); later matches stay in the text. With no
// match it returns the trimmed input and ok=false.
func ExtractColor(raw string) (cleaned, code string, ok bool) {
	loc := colorPattern.FindStringIndex(raw)
	if loc == nil {
		return strings.TrimSpace(raw), "", false
	}
	code = raw[loc[0]:loc[1]]
	cleaned = strings.TrimSpace(raw[:loc[0]] + raw[loc[1]:])
	return cleaned, code, true
}
