package route

import (
	"regexp"
	"strings"
)

// streetPatterns are tried in order against raw backend instruction text
// when a backend does not expose the street as a structured field. The
// first capturing match wins.
var streetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)onto (.+?)(?:\sfor|\sinto|\.|,|$)`),
	regexp.MustCompile(`(?i)\bon (.+?)(?:\sfor|\sinto|\.|,|$)`),
	regexp.MustCompile(`(?i)continue.*?\bon (.+?)(?:,|\.|$)`),
	regexp.MustCompile(`(?i)follow (.+?)(?:,|\.|$)`),
	regexp.MustCompile(`(?i)towards (.+?)(?:,|\.|$)`),
	regexp.MustCompile(`(?i)via (.+?)(?:,|\.|$)`),
	regexp.MustCompile(`(?i)along (.+?)(?:,|\.|$)`),
	regexp.MustCompile(`(?i)keep.*?\bon (.+?)(?:,|\.|$)`),
	regexp.MustCompile(`(?i)stay.*?\bon (.+?)(?:,|\.|$)`),
}

// trailingConnectors strips connector phrases the patterns can capture
// along with the street name.
var trailingConnectors = regexp.MustCompile(`(?i)\s+(for|into|towards|until)\b.*$`)

// ExtractStreetName pulls a street name out of raw instruction text.
// Best-effort enrichment only: returns "" when no pattern matches.
func ExtractStreetName(text string) string {
	if text == "" {
		return ""
	}

	for _, pattern := range streetPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		street := strings.TrimSpace(trailingConnectors.ReplaceAllString(match[1], ""))
		if street != "" {
			return street
		}
	}

	return ""
}
