package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuleSet is the on-disk shape of a rule file.
type RuleSet struct {
	DataKeys []string `json:"data_keys" yaml:"data_keys"`
	Rules    []string `json:"rules" yaml:"rules"`
}

// Rule file formats accepted by ParseRuleSet.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// LoadRuleSet reads a rule file. Files ending in .yaml or .yml are decoded
// as YAML, everything else as JSON.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}

	rs, err := ParseRuleSet(data, formatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// ParseRuleSet decodes data in the given format.
func ParseRuleSet(data []byte, format string) (*RuleSet, error) {
	var rs RuleSet

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &rs); err != nil {
			return nil, fmt.Errorf("failed to decode JSON rule set: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &rs); err != nil {
			return nil, fmt.Errorf("failed to decode YAML rule set: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown rule set format: %s", format)
	}

	if rs.DataKeys == nil {
		rs.DataKeys = []string{}
	}
	if rs.Rules == nil {
		rs.Rules = []string{}
	}
	return &rs, nil
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
