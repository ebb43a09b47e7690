package rules

import (
	"testing"
	"testing/fstest"
)

func fsWith(files map[string]string) fstest.MapFS {
	out := make(fstest.MapFS, len(files))
	for name, content := range files {
		out[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return out
}

func TestLoadMergesShardsInFilenameOrder(t *testing.T) {
	fsys := fsWith(map[string]string{
		"20_second.yaml": `
rules:
  - context: opening
    call: "1H"
    variants:
      - name: five-card-major
        priority: 10
        description: five-card major opener
        constraints:
          - type: min_length
            suit: hearts
            count: 5
`,
		"10_first.yaml": `
rules:
  - context: opening
    call: "1N"
    variants:
      - name: strong-notrump
        priority: 15
        description: 15-17 balanced
        constraints:
          - type: min_hcp
            min: 15
`,
	})

	rs, err := Load(fsys, ".")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rs.All()) != 2 {
		t.Fatalf("All() has %d rules, want 2", len(rs.All()))
	}
	// 10_first.yaml sorts before 20_second.yaml, so its rule gets sourceIdx 0.
	if rs.All()[0].Call != "1N" {
		t.Errorf("first loaded rule = %q, want 1N (from the alphabetically-first shard)", rs.All()[0].Call)
	}
	if rs.All()[0].SourceIndex() != 0 {
		t.Errorf("SourceIndex() = %d, want 0", rs.All()[0].SourceIndex())
	}
	if rs.All()[1].SourceIndex() != 1 {
		t.Errorf("SourceIndex() = %d, want 1", rs.All()[1].SourceIndex())
	}
}

func TestLoadIndexesByContext(t *testing.T) {
	fsys := fsWith(map[string]string{
		"rules.yaml": `
rules:
  - context: opening
    call: "1N"
    variants:
      - name: strong-notrump
        priority: 15
        description: 15-17 balanced
        constraints:
          - type: min_hcp
            min: 15
  - context: overcall
    call: "1S"
    variants:
      - name: one-level-overcall-spades
        priority: 10
        description: five-card overcall
        constraints:
          - type: min_length
            suit: spades
            count: 5
`,
	})

	rs, err := Load(fsys, ".")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opening := rs.RulesInContext(ContextOpening)
	if len(opening) != 1 || opening[0].Call != "1N" {
		t.Errorf("RulesInContext(opening) = %v, want just the 1N rule", opening)
	}
	overcall := rs.RulesInContext(ContextOvercall)
	if len(overcall) != 1 || overcall[0].Call != "1S" {
		t.Errorf("RulesInContext(overcall) = %v, want just the 1S rule", overcall)
	}
}

func TestLoadRejectsBadCallToken(t *testing.T) {
	fsys := fsWith(map[string]string{
		"rules.yaml": `
rules:
  - context: opening
    call: "9Z"
    variants:
      - name: bogus
        priority: 1
        description: bad
`,
	})
	if _, err := Load(fsys, "."); err == nil {
		t.Errorf("expected RuleLoadError for an unparseable call token")
	} else if _, ok := err.(*RuleLoadError); !ok {
		t.Errorf("expected *RuleLoadError, got %T", err)
	}
}

func TestLoadRejectsDuplicateVariantPriority(t *testing.T) {
	fsys := fsWith(map[string]string{
		"rules.yaml": `
rules:
  - context: opening
    call: "1N"
    variants:
      - name: a
        priority: 10
        description: a
      - name: b
        priority: 10
        description: b
`,
	})
	if _, err := Load(fsys, "."); err == nil {
		t.Errorf("expected RuleLoadError for two variants sharing a priority")
	}
}

func TestLoadRejectsDuplicateVariantName(t *testing.T) {
	fsys := fsWith(map[string]string{
		"rules.yaml": `
rules:
  - context: opening
    call: "1N"
    variants:
      - name: dup
        priority: 10
        description: a
      - name: dup
        priority: 11
        description: b
`,
	})
	if _, err := Load(fsys, "."); err == nil {
		t.Errorf("expected RuleLoadError for duplicate variant names")
	}
}

func TestLoadRejectsUnknownPredicate(t *testing.T) {
	fsys := fsWith(map[string]string{
		"rules.yaml": `
rules:
  - context: opening
    call: "1N"
    variants:
      - name: a
        priority: 10
        description: a
        constraints:
          - type: auction_predicate
            predicate: does_not_exist
`,
	})
	if _, err := Load(fsys, "."); err == nil {
		t.Errorf("expected RuleLoadError for an unknown auction predicate")
	}
}

func TestLoadRejectsInvalidSuit(t *testing.T) {
	fsys := fsWith(map[string]string{
		"rules.yaml": `
rules:
  - context: opening
    call: "1N"
    variants:
      - name: a
        priority: 10
        description: a
        constraints:
          - type: min_length
            suit: 9
            count: 4
`,
	})
	if _, err := Load(fsys, "."); err == nil {
		t.Errorf("expected RuleLoadError for an out-of-range suit index")
	}
}
