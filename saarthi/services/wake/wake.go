package wake

import "strings"

const (
	ConfidencePrimary = 0.95
	ConfidenceVariant = 0.85
)

var (
	DefaultPrimary  = []string{"suno saarthi", "hello saarthi"}
	DefaultVariants = []string{
		"suno sarathi", "suno sarthi", "suno saarti",
		"sunno saarthi", "sonu saarthi", "soonu saarthi",
		"hey saarthi", "hi saarthi", "ok saarthi",
	}
)

// Result reports a detection. MatchedPhrase is empty when nothing matched.
type Result struct {
	Detected      bool    `json:"detected"`
	Confidence    float64 `json:"confidence"`
	MatchedPhrase string  `json:"matched_phrase,omitempty"`
}

// Detector checks transcribed text for wake phrases. Primary phrases are the
// exact product name; variants cover common mishearings.
type Detector struct {
	primary  []string
	variants []string
}

// NewDetector lower-cases the phrase lists; empty lists fall back to the defaults.
func NewDetector(primary, variants []string) *Detector {
	if len(primary) == 0 {
		primary = DefaultPrimary
	}
	if len(variants) == 0 {
		variants = DefaultVariants
	}
	return &Detector{primary: normalize(primary), variants: normalize(variants)}
}

func (d *Detector) Detect(text string) Result {
	t := strings.ToLower(text)
	if p := firstIn(t, d.primary); p != "" {
		return Result{Detected: true, Confidence: ConfidencePrimary, MatchedPhrase: p}
	}
	if p := firstIn(t, d.variants); p != "" {
		return Result{Detected: true, Confidence: ConfidenceVariant, MatchedPhrase: p}
	}
	return Result{}
}

func firstIn(text string, phrases []string) string {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return p
		}
	}
	return ""
}

func normalize(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p = strings.ToLower(strings.Join(strings.Fields(p), " ")); p != "" {
			out = append(out, p)
		}
	}
	return out
}
