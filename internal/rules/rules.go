package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/finding"
)

// rulesetYAML is the on-disk shape of a ruleset file.
type rulesetYAML struct {
	Version     string            `yaml:"version"`
	Categories  []string          `yaml:"categories"`
	MinSeverity string            `yaml:"min_severity"`
	Overrides   map[string]string `yaml:"severity_overrides"`
}

// Config is the validated, ready-to-apply ruleset.
type Config struct {
	Version     string
	Enabled     finding.CategorySet
	MinSeverity finding.Severity
	Overrides   map[finding.Category]finding.Severity
}

// Default returns the configuration used when no ruleset is supplied:
// all categories, no severity floor, no overrides.
func Default() Config {
	return Config{
		Version:     "1",
		Enabled:     finding.CategorySetAll,
		MinSeverity: finding.SeverityInfo,
	}
}

// Parse parses and validates YAML ruleset data.
func Parse(data []byte) (Config, error) {
	var raw rulesetYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse ruleset YAML: %w", err)
	}

	cfg := Default()
	if raw.Version != "" {
		cfg.Version = raw.Version
	}

	if len(raw.Categories) > 0 {
		cfg.Enabled = finding.CategorySetNone
		for _, name := range raw.Categories {
			c := finding.ParseCategory(name)
			if c == finding.CategoryUnknown {
				return Config{}, fmt.Errorf("ruleset: unknown category %q", name)
			}

			cfg.Enabled = cfg.Enabled.With(c)
		}
	}

	if raw.MinSeverity != "" {
		sev, err := finding.ParseSeverity(raw.MinSeverity)
		if err != nil {
			return Config{}, fmt.Errorf("ruleset: %w", err)
		}

		cfg.MinSeverity = sev
	}

	if len(raw.Overrides) > 0 {
		cfg.Overrides = make(map[finding.Category]finding.Severity, len(raw.Overrides))
		for name, sevName := range raw.Overrides {
			c := finding.ParseCategory(name)
			if c == finding.CategoryUnknown {
				return Config{}, fmt.Errorf("ruleset: unknown category %q in severity_overrides", name)
			}

			sev, err := finding.ParseSeverity(sevName)
			if err != nil {
				return Config{}, fmt.Errorf("ruleset: %w", err)
			}

			cfg.Overrides[c] = sev
		}
	}

	return cfg, nil
}

// Apply filters and reranks a finding according to the ruleset.
// The second return value is false when the finding is dropped.
func (c Config) Apply(f finding.Finding) (finding.Finding, bool) {
	if !c.Enabled.Has(f.Category) {
		return finding.Finding{}, false
	}

	if sev, ok := c.Overrides[f.Category]; ok {
		f.Severity = sev
	}

	if f.Severity < c.MinSeverity {
		return finding.Finding{}, false
	}

	return f, true
}
