package engine

import (
	"fmt"
	"regexp"

	"github.com/hearthline-ai/rampart/internal/rulepack"
)

const defaultMinRun = 11

// Rule is a single compiled classification rule. Rules are immutable
// once compiled and purely a function of the text under test, so a
// Library is safe for concurrent use without locking.
type Rule struct {
	ID          string
	Category    string
	Tier        Severity
	Description string

	re      *regexp.Regexp // nil for repeat rules
	exclude *regexp.Regexp
	minRun  int // >0 for repeat rules
}

// Matches reports whether the rule triggers on the given text. The text
// is expected to be pre-normalized (trimmed, lowercased) by the caller.
func (r *Rule) Matches(text string) bool {
	if r.minRun > 0 {
		return longestRun(text) >= r.minRun
	}
	if !r.re.MatchString(text) {
		return false
	}
	if r.exclude != nil && r.exclude.MatchString(text) {
		return false
	}
	return true
}

// longestRun returns the length of the longest run of identical runes.
func longestRun(text string) int {
	var prev rune
	run, longest := 0, 0
	for _, c := range text {
		if c == prev {
			run++
		} else {
			prev = c
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// Library holds the compiled rule tables for both directions.
type Library struct {
	Input  []Rule
	Output []Rule
}

// Compile turns a rule pack into a Library. Any malformed rule (bad
// regex syntax, unknown tier, missing pattern) is a fatal construction
// error; compilation happens once at startup, never at call time.
func Compile(pack *rulepack.Pack) (*Library, error) {
	input, err := compileGroups(pack.Input)
	if err != nil {
		return nil, fmt.Errorf("input rules: %w", err)
	}
	output, err := compileGroups(pack.Output)
	if err != nil {
		return nil, fmt.Errorf("output rules: %w", err)
	}
	return &Library{Input: input, Output: output}, nil
}

func compileGroups(groups []rulepack.Group) ([]Rule, error) {
	var rules []Rule
	for _, g := range groups {
		for i, spec := range g.Rules {
			r, err := compileRule(g.Name, i, spec)
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
		}
	}
	return rules, nil
}

func compileRule(group string, index int, spec rulepack.Rule) (Rule, error) {
	id := spec.ID
	if id == "" {
		id = fmt.Sprintf("%s/%d", group, index)
	}

	tier, err := ParseSeverity(spec.Tier)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %s: %w", id, err)
	}

	r := Rule{
		ID:          id,
		Category:    group,
		Tier:        tier,
		Description: spec.Description,
	}

	switch spec.Kind {
	case rulepack.KindRepeat:
		r.minRun = spec.MinRun
		if r.minRun == 0 {
			r.minRun = defaultMinRun
		}
		if r.minRun < 2 {
			return Rule{}, fmt.Errorf("rule %s: min_run must be at least 2", id)
		}
	case "", rulepack.KindRegex:
		if spec.Pattern == "" {
			return Rule{}, fmt.Errorf("rule %s: missing pattern", id)
		}
		r.re, err = regexp.Compile(spec.Pattern)
		if err != nil {
			return Rule{}, fmt.Errorf("rule %s: %w", id, err)
		}
		if spec.Exclude != "" {
			r.exclude, err = regexp.Compile(spec.Exclude)
			if err != nil {
				return Rule{}, fmt.Errorf("rule %s exclude: %w", id, err)
			}
		}
	default:
		return Rule{}, fmt.Errorf("rule %s: unknown kind %q", id, spec.Kind)
	}

	return r, nil
}
