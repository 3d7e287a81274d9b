package rulepack

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	pack, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(pack.Input) == 0 || len(pack.Output) == 0 {
		t.Errorf("default pack incomplete: %d input / %d output groups", len(pack.Input), len(pack.Output))
	}
}

func TestLoad_MissingFileFallsBackToDefault(t *testing.T) {
	pack, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(pack.Input) == 0 {
		t.Error("expected the default pack")
	}
}

func TestLoad_YAMLOverridesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.yaml")
	content := `version: "1"
input:
  - name: custom
    rules:
      - id: custom/test
        tier: high
        pattern: '(?i)forbidden'
        description: test rule
output:
  - name: custom
    rules:
      - id: custom/flood
        tier: medium
        kind: repeat
        min_run: 5
        description: flood rule
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	pack, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(pack.Input) != 1 || len(pack.Input[0].Rules) != 1 {
		t.Fatalf("unexpected input groups: %+v", pack.Input)
	}
	r := pack.Input[0].Rules[0]
	if r.ID != "custom/test" || r.Tier != "high" || r.Pattern != "(?i)forbidden" {
		t.Errorf("unexpected rule: %+v", r)
	}
	out := pack.Output[0].Rules[0]
	if out.Kind != KindRepeat || out.MinRun != 5 {
		t.Errorf("unexpected output rule: %+v", out)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("input: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestDefault_GroupNames(t *testing.T) {
	pack := Default()

	inputGroups := map[string]bool{}
	for _, g := range pack.Input {
		inputGroups[g.Name] = true
	}
	for _, want := range []string{"harmful", "inappropriate", "spam"} {
		if !inputGroups[want] {
			t.Errorf("missing input group %q", want)
		}
	}

	outputGroups := map[string]bool{}
	for _, g := range pack.Output {
		outputGroups[g.Name] = true
	}
	for _, want := range []string{"unsafe", "compliance", "misinformation"} {
		if !outputGroups[want] {
			t.Errorf("missing output group %q", want)
		}
	}
}
