package rules

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// shardFile is the on-disk shape of one rule shard: a flat list of rules
// tagged with their own context, rather than the reference schema's
// opening/responses/natural split, so a single loader loop covers every
// context uniformly.
type shardFile struct {
	Rules []BidRule `yaml:"rules"`
}

// Load reads every *.yaml file in dir (via fsys) and merges them into one
// RuleSet. Validation failures anywhere abort the load and return a
// RuleLoadError; callers are expected to treat this as a fatal startup
// error per the error taxonomy.
func Load(fsys fs.FS, dir string) (*RuleSet, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, &RuleLoadError{Shard: dir, Reason: err.Error()}
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) == ".yaml" || filepath.Ext(e.Name()) == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names) // deterministic schema order across runs

	atoms := NewAtomRegistry()
	rs := &RuleSet{byContext: make(map[Context][]*BidRule), atoms: atoms}

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, &RuleLoadError{Shard: name, Reason: err.Error()}
		}
		var shard shardFile
		if err := yaml.Unmarshal(data, &shard); err != nil {
			return nil, &RuleLoadError{Shard: name, Reason: fmt.Sprintf("yaml parse: %v", err)}
		}
		for i := range shard.Rules {
			r := &shard.Rules[i]
			r.sourceIdx = len(rs.all)
			if err := validateRule(r, atoms); err != nil {
				return nil, &RuleLoadError{Shard: name, Reason: err.Error()}
			}
			rs.all = append(rs.all, r)
			rs.byContext[r.Context] = append(rs.byContext[r.Context], r)
		}
	}
	return rs, nil
}

// validateRule checks the structural invariants the loader is responsible
// for: the call token parses, variant names/priorities are distinct within
// the rule, and every constraint references known suits/strains/predicates.
func validateRule(r *BidRule, atoms *AtomRegistry) error {
	if _, err := ParsedCallToken(r.Call); err != nil {
		return fmt.Errorf("rule call %q: %w", r.Call, err)
	}
	seenNames := make(map[string]bool, len(r.Variants))
	seenPriority := make(map[int]string, len(r.Variants))
	for _, v := range r.Variants {
		if v.Name == "" {
			return fmt.Errorf("rule %q: variant with empty name", r.Call)
		}
		if seenNames[v.Name] {
			return fmt.Errorf("rule %q: duplicate variant name %q", r.Call, v.Name)
		}
		seenNames[v.Name] = true
		if prior, ok := seenPriority[v.Priority]; ok {
			return fmt.Errorf("rule %q: variants %q and %q share priority %d", r.Call, prior, v.Name, v.Priority)
		}
		seenPriority[v.Priority] = v.Name

		for _, c := range v.Constraints {
			if err := validateConstraint(c, atoms); err != nil {
				return fmt.Errorf("rule %q variant %q: %w", r.Call, v.Name, err)
			}
		}
	}
	return nil
}

func validateConstraint(c Constraint, atoms *AtomRegistry) error {
	switch c.Type {
	case ConstraintMinHCP, ConstraintMaxHCP, ConstraintMinCombinedHCP,
		ConstraintAllStopped, ConstraintNotAlreadyGame, ConstraintHandShapeClass,
		ConstraintRuleOfTwenty, ConstraintRuleOfFifteen, ConstraintExactAceCount:
		return nil
	case ConstraintMinLength, ConstraintMaxLength, ConstraintExactLength,
		ConstraintSuitQuality, ConstraintStopper, ConstraintMinCombinedLength:
		if c.Suit > 3 {
			return fmt.Errorf("constraint %s: invalid suit %d", c.Type, c.Suit)
		}
		return nil
	case ConstraintShape:
		return nil
	case ConstraintAuctionPredicate:
		if !atoms.Known(c.Predicate) {
			return fmt.Errorf("constraint %s: unknown predicate %q", c.Type, c.Predicate)
		}
		return nil
	default:
		return fmt.Errorf("unknown constraint type %q", c.Type)
	}
}
