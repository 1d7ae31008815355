package validation

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// RuleSet holds the substring block lists checked against every credential.
// Matching is case-insensitive.
type RuleSet struct {
	SQLInjection []string `yaml:"sql_injection"`
	XSS          []string `yaml:"xss"`
	HTMLTags     []string `yaml:"html_tags"`
}

// DefaultRules returns the block lists compiled into the binary.
func DefaultRules() RuleSet {
	var rs RuleSet
	if err := yaml.Unmarshal(defaultRulesYAML, &rs); err != nil {
		panic(fmt.Sprintf("validation: embedded rules: %v", err))
	}
	return rs
}

// LoadRules reads a YAML rules file on top of the defaults. Lists present in
// the file replace the corresponding default list; absent lists keep the
// defaults. An empty path returns the defaults.
func LoadRules(path string) (RuleSet, error) {
	rs := DefaultRules()
	if path == "" {
		return rs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	return rs, nil
}

// normalize lowercases every pattern and drops empty ones, which would
// otherwise match any input.
func normalize(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		out = append(out, strings.ToLower(p))
	}
	return out
}
