// Package harness implements the test harness (C10): replays YAML auction
// vectors against the engine, compares results to recorded JSON
// expectation snapshots, and supports rewriting those snapshots.
package harness

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lox/bridgebot/internal/bidding"
	"github.com/lox/bridgebot/internal/boardid"
)

// Vector is one test case: a deal, dealer, prior calls, the seat whose call
// is under test, and the expected outcome.
type Vector struct {
	Name                string `yaml:"name"`
	Deal                string `yaml:"deal"` // 26-hex-char packed deal
	Dealer              string `yaml:"dealer"`
	Calls               string `yaml:"calls"` // calls-csv prefix
	TargetSeat          string `yaml:"target_seat"`
	ExpectedCall        string `yaml:"expected_call"`
	ExpectedRuleName    string `yaml:"expected_rule_name"`
	ExpectedDescription string `yaml:"expected_description,omitempty"`
}

// shardFile is the on-disk shape of one vector shard.
type shardFile struct {
	Vectors []Vector `yaml:"vectors"`
}

// LoadVectors reads every *.yaml file under dir (via fsys) and returns the
// merged vector list: files in file-name order, each file's vectors in the
// order they are written.
func LoadVectors(fsys fs.FS, dir string) ([]Vector, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("harness: reading vectors dir %q: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && (filepath.Ext(e.Name()) == ".yaml" || filepath.Ext(e.Name()) == ".yml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []Vector
	for _, name := range names {
		data, err := fs.ReadFile(fsys, filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("harness: reading shard %q: %w", name, err)
		}
		var shard shardFile
		if err := yaml.Unmarshal(data, &shard); err != nil {
			return nil, fmt.Errorf("harness: parsing shard %q: %w", name, err)
		}
		out = append(out, shard.Vectors...)
	}
	return out, nil
}

// BuildIdentifier assembles the board identifier a Vector implies: the
// board number whose dealer-for-board matches the vector's declared
// dealer, the vector's packed deal, and its calls prefix. It reuses the
// boardid codec's decoder to validate the result round-trips.
func (v *Vector) BuildIdentifier() (string, error) {
	if len(v.Dealer) == 0 {
		return "", fmt.Errorf("harness: vector %q: empty dealer", v.Name)
	}
	dealer, ok := bidding.PositionFromChar(v.Dealer[0])
	if !ok {
		return "", fmt.Errorf("harness: vector %q: bad dealer %q", v.Name, v.Dealer)
	}
	boardNumber := int(dealer) + 1 // boards 1-4 cover N,E,S,W once each

	identifier := fmt.Sprintf("%d-%s", boardNumber, v.Deal)
	if v.Calls != "" {
		identifier += ":" + v.Calls
	}
	if _, err := boardid.Decode(identifier); err != nil {
		return "", fmt.Errorf("harness: vector %q: built identifier %q does not round-trip: %w", v.Name, identifier, err)
	}
	return identifier, nil
}
