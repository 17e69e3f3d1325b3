// Package extractor recovers the spoken reply from noisy generated text.
package extractor

import (
	"regexp"
	"strings"
	"unicode"

	"saarthi/saarthi/utils/jsonutils"
)

// Rule is one step of the cascade. Match decides whether the rule applies;
// Extract is only called when it does, and may return "" when the rule's
// anchor is present but nothing follows it.
type Rule struct {
	Name    string
	Match   func(text string) bool
	Extract func(text string) string
}

// Extractor applies its rules in order and returns the first match.
type Extractor struct {
	rules []Rule
}

// New builds an extractor from an explicit rule chain.
func New(rules ...Rule) *Extractor {
	return &Extractor{rules: rules}
}

var std = New(DefaultRules()...)

// Clean runs the default cascade.
func Clean(raw string) string {
	return std.Clean(raw)
}

func (e *Extractor) Clean(raw string) string {
	out, _ := e.Apply(raw)
	return out
}

// Apply returns the cleaned text and the name of the rule that produced it,
// or "none" when the trimmed input was returned unchanged.
func (e *Extractor) Apply(raw string) (string, string) {
	text := strings.TrimSpace(jsonutils.StripInvisible(raw))
	if text == "" {
		return "", "none"
	}
	for _, r := range e.rules {
		if !r.Match(text) {
			continue
		}
		return trim(r.Extract(text)), r.Name
	}
	return trim(text), "none"
}

// DefaultRules is the cascade in precedence order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "assistant_marker", Match: markerRe.MatchString, Extract: afterMarker},
		{Name: "trailing_parenthetical", Match: trailingParenRe.MatchString, Extract: trailingParen},
		{Name: "local_script_quote", Match: func(s string) bool { return lastLocalQuote(s) != "" }, Extract: lastLocalQuote},
		{Name: "possible_response_cue", Match: cueRe.MatchString, Extract: afterCue},
		{Name: "last_colon", Match: func(s string) bool { return strings.Contains(s, ":") }, Extract: afterLastColon},
	}
}

var (
	markerRe        = regexp.MustCompile(`(?i)saarthi\s*:`)
	nextSpeakerRe   = regexp.MustCompile(`(?im)^\s*user\s*:`)
	trailingParenRe = regexp.MustCompile(`\(([^()]*)\)\s*$`)
	quotedRe        = regexp.MustCompile(`"([^"]+)"|“([^”]+)”`)
	localScriptRe   = regexp.MustCompile(`\p{Devanagari}`)
	cueRe           = regexp.MustCompile(`(?i)here(?:'|’)?s a possible response\s*:`)
)

// afterMarker takes everything after the last "Saarthi:" marker. An invented
// next user turn is cut off, and a quoted reply followed by a gloss keeps only
// the quote.
func afterMarker(text string) string {
	locs := markerRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return ""
	}
	out := text[locs[len(locs)-1][1]:]
	if loc := nextSpeakerRe.FindStringIndex(out); loc != nil {
		out = out[:loc[0]]
	}
	out = strings.TrimSpace(out)
	if q, ok := leadingQuoted(out); ok {
		return q
	}
	return out
}

func trailingParen(text string) string {
	m := trailingParenRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// lastLocalQuote returns the last quoted span written in a local script.
func lastLocalQuote(text string) string {
	var last string
	for _, m := range quotedRe.FindAllStringSubmatch(text, -1) {
		span := m[1]
		if span == "" {
			span = m[2]
		}
		if localScriptRe.MatchString(span) {
			last = span
		}
	}
	return last
}

func afterCue(text string) string {
	loc := cueRe.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	return text[loc[1]:]
}

// afterLastColon is a blunt heuristic: replies that legitimately contain a
// colon lose everything before it.
func afterLastColon(text string) string {
	i := strings.LastIndex(text, ":")
	if i < 0 {
		return ""
	}
	return text[i+1:]
}

var quotePairs = [][2]string{{`"`, `"`}, {"“", "”"}}

// leadingQuoted returns the opening quoted span of s when what follows it is
// only a gloss: nothing, a parenthetical or a new line.
func leadingQuoted(s string) (string, bool) {
	for _, p := range quotePairs {
		if !strings.HasPrefix(s, p[0]) {
			continue
		}
		rest := s[len(p[0]):]
		end := strings.Index(rest, p[1])
		if end <= 0 {
			return "", false
		}
		tail := rest[end+len(p[1]):]
		trimmed := strings.TrimLeft(tail, " \t")
		if trimmed == "" || strings.HasPrefix(trimmed, "(") || strings.HasPrefix(trimmed, "\n") || strings.HasPrefix(trimmed, "\r") {
			return rest[:end], true
		}
		return "", false
	}
	return "", false
}

func isQuote(r rune) bool {
	switch r {
	case '"', '\'', '`', '“', '”', '‘', '’', '«', '»':
		return true
	}
	return false
}

// trim strips whitespace and wrapping quote characters from both ends.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return unicode.IsSpace(r) || isQuote(r) })
}
