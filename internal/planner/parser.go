package planner

import (
	"encoding/json"
	"regexp"
	"strings"
)

// modelResponse is the JSON object the model is instructed to return.
// Coordinate fields are pointers so entries missing a numeric lat/lon can
// be distinguished from legitimate zero values and dropped.
type modelResponse struct {
	Waypoints   []modelWaypoint `json:"waypoints"`
	Difficulty  string          `json:"difficulty"`
	Description string          `json:"description"`
	RouteName   string          `json:"route_name"`
}

type modelWaypoint struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// parseModelResponse parses the model's reply, attempting recovery when it
// is not clean JSON: the first balanced object is extracted (from a fenced
// code block if present), comment-like sequences and trailing commas are
// stripped, and the result is re-parsed. Each repair stage is a pure
// string transformation so the stages stay independently testable.
func parseModelResponse(raw string) (*modelResponse, error) {
	var resp modelResponse
	if err := json.Unmarshal([]byte(raw), &resp); err == nil {
		return &resp, nil
	}

	candidate := extractFencedBlock(raw)
	if candidate == "" {
		candidate = raw
	}
	candidate = extractBalancedObject(candidate)
	if candidate == "" {
		return nil, ErrParse
	}

	cleaned := stripTrailingCommas(stripBlockComments(stripLineComments(candidate)))
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, ErrParse
	}
	return &resp, nil
}

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// extractFencedBlock returns the contents of the first ```json fenced code
// block, or "" when there is none.
func extractFencedBlock(s string) string {
	if match := fencedBlock.FindStringSubmatch(s); match != nil {
		return match[1]
	}
	return ""
}

// extractBalancedObject returns the first brace-balanced {...} block in s,
// tracking string literals so braces inside values do not miscount.
// Returns "" when no balanced object exists.
func extractBalancedObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}

var (
	lineComments   = regexp.MustCompile(`(?m)\s//[^\n]*$`)
	blockComments  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	trailingCommas = regexp.MustCompile(`,\s*([}\]])`)
)

func stripLineComments(s string) string {
	return lineComments.ReplaceAllString(s, "")
}

func stripBlockComments(s string) string {
	return blockComments.ReplaceAllString(s, "")
}

func stripTrailingCommas(s string) string {
	return trailingCommas.ReplaceAllString(s, "$1")
}
