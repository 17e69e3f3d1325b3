package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile is the assistant persona and wake vocabulary. It is loaded once at
// startup and passed by value.
type Profile struct {
	SystemPrompt     string   `yaml:"system_prompt"`
	WakePhrases      []string `yaml:"wake_phrases"`
	WakeVariants     []string `yaml:"wake_variants"`
	PersistFallbacks bool     `yaml:"persist_fallback_turns"`
}

// LoadProfile reads a YAML profile. An empty path or a missing file yields the
// zero profile, whose empty fields mean "use the built-in defaults".
func LoadProfile(path string) (Profile, error) {
	var p Profile
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	p.SystemPrompt = strings.TrimSpace(p.SystemPrompt)
	return p, nil
}
