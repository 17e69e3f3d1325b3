package wake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	d := NewDetector(nil, nil)
	tests := []struct {
		text       string
		detected   bool
		confidence float64
		phrase     string
	}{
		{"Suno Saarthi, take me home", true, 0.95, "suno saarthi"},
		{"HELLO SAARTHI", true, 0.95, "hello saarthi"},
		{"hey saarthi what's up", true, 0.85, "hey saarthi"},
		{"suno sarathi", true, 0.85, "suno sarathi"},
		{"hi saarthi and suno saarthi", true, 0.95, "suno saarthi"},
		{"saarthi", false, 0, ""},
		{"", false, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := d.Detect(tt.text)
			assert.Equal(t, tt.detected, got.Detected)
			assert.Equal(t, tt.confidence, got.Confidence)
			assert.Equal(t, tt.phrase, got.MatchedPhrase)
		})
	}
}

func TestDetect_CustomPhrases(t *testing.T) {
	d := NewDetector([]string{"  Chalo   Saarthi "}, []string{"chalo sarthi"})
	assert.Equal(t, Result{Detected: true, Confidence: ConfidencePrimary, MatchedPhrase: "chalo saarthi"}, d.Detect("chalo saarthi!"))
	assert.Equal(t, ConfidenceVariant, d.Detect("Chalo Sarthi").Confidence)
	assert.False(t, d.Detect("suno saarthi").Detected)
}
