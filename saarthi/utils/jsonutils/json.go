package jsonutils

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// StripInvisible removes byte-order marks and zero-width spaces that models
// sometimes emit around their output. Joiners are kept: Indic scripts need them.
func StripInvisible(input string) string {
	return strings.Map(func(r rune) rune {
		if r == '\uFEFF' || r == '\u200B' {
			return -1 // skip
		}
		return r
	}, input)
}

// ToJSON serializes a Go value to a JSON string with indentation.
// Returns an empty string if serialization fails.
func ToJSON(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(bytes))
}

// CompactJSON serializes v without indentation, keeping non-ASCII text
// readable, and cuts the result to at most limit bytes on a rune boundary.
// A limit <= 0 disables truncation.
func CompactJSON(v interface{}, limit int) string {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	out := strings.TrimSpace(sb.String())
	if limit <= 0 || len(out) <= limit {
		return out
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(out[cut]) {
		cut--
	}
	return out[:cut]
}
