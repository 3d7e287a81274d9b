// Package rulepack defines the on-disk format for classification rule
// packs. A pack is pure data: it carries no compiled state and never
// depends on anything but the text of its own fields. Compilation into
// matchable rules happens in the engine package.
package rulepack

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule kinds. A regex rule matches when its pattern matches; a repeat
// rule matches a run of identical characters at least MinRun long
// (Go's regexp has no backreferences, so this cannot be a pattern).
const (
	KindRegex  = "regex"
	KindRepeat = "repeat"
)

// Pack is a full set of rule tables for both filtering directions.
type Pack struct {
	Version string  `yaml:"version"`
	Input   []Group `yaml:"input"`
	Output  []Group `yaml:"output"`
}

// Group is a named table of rules, e.g. "harmful" or "compliance".
type Group struct {
	Name  string `yaml:"name"`
	Rules []Rule `yaml:"rules"`
}

// Rule is a single pattern-to-severity mapping.
type Rule struct {
	ID          string `yaml:"id"`
	Tier        string `yaml:"tier"`
	Kind        string `yaml:"kind,omitempty"`    // defaults to KindRegex
	Pattern     string `yaml:"pattern,omitempty"` // regex rules only
	Exclude     string `yaml:"exclude,omitempty"` // suppresses a match when it also matches
	MinRun      int    `yaml:"min_run,omitempty"` // repeat rules only; defaults to 11
	Description string `yaml:"description"`
}

// Load reads a pack from a YAML file. A missing path falls back to the
// built-in default pack; anything else that goes wrong is an error.
func Load(path string) (*Pack, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read rule pack: %w", err)
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse rule pack %s: %w", path, err)
	}

	return &pack, nil
}
