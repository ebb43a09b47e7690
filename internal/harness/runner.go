package harness

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/bridgebot/internal/engine"
)

// Runner replays Vectors against an Engine and reports PASS/FAIL per case.
type Runner struct {
	engine *engine.Engine
	logger zerolog.Logger
	clock  quartz.Clock
}

// NewRunner builds a Runner. clock defaults to the real wall clock; a caller
// can inject a quartz.NewMock() clock for deterministic timestamps.
func NewRunner(eng *engine.Engine, logger zerolog.Logger, clock quartz.Clock) *Runner {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Runner{engine: eng, logger: logger, clock: clock}
}

// CaseResult is one vector's outcome.
type CaseResult struct {
	Name       string `json:"name"`
	Pass       bool   `json:"pass"`
	Expected   string `json:"expected_call"`
	Actual     string `json:"actual_call,omitempty"`
	RuleName   string `json:"rule_name,omitempty"`
	FailReason string `json:"fail_reason,omitempty"`
}

// Report is the full snapshot a harness run produces for one suite.
type Report struct {
	Suite     string       `json:"suite"`
	RanAt     time.Time    `json:"ran_at"`
	Cases     []CaseResult `json:"cases"`
	Passed    int          `json:"passed"`
	Failed    int          `json:"failed"`
}

// Run replays every vector and produces a Report.
func (r *Runner) Run(suite string, vectors []Vector) *Report {
	report := &Report{Suite: suite, RanAt: r.clock.Now().UTC()}
	for _, v := range vectors {
		result := r.runOne(v)
		report.Cases = append(report.Cases, result)
		if result.Pass {
			report.Passed++
		} else {
			report.Failed++
		}
	}
	return report
}

func (r *Runner) runOne(v Vector) CaseResult {
	identifier, err := v.BuildIdentifier()
	if err != nil {
		r.logger.Error().Err(err).Str("vector", v.Name).Msg("failed to build identifier")
		return CaseResult{Name: v.Name, Expected: v.ExpectedCall, FailReason: err.Error()}
	}

	interp, err := r.engine.SuggestCall(identifier)
	if err != nil {
		r.logger.Error().Err(err).Str("vector", v.Name).Msg("suggest_call failed")
		return CaseResult{Name: v.Name, Expected: v.ExpectedCall, FailReason: err.Error()}
	}

	actual := interp.Call.String()
	pass := actual == v.ExpectedCall
	if v.ExpectedRuleName != "" {
		pass = pass && interp.RuleName == v.ExpectedRuleName
	}

	result := CaseResult{
		Name:     v.Name,
		Pass:     pass,
		Expected: v.ExpectedCall,
		Actual:   actual,
		RuleName: interp.RuleName,
	}
	if !pass {
		result.FailReason = fmt.Sprintf("got %s (%s), want %s (%s)", actual, interp.RuleName, v.ExpectedCall, v.ExpectedRuleName)
	}
	r.logger.Debug().Str("vector", v.Name).Bool("pass", pass).Msg("ran vector")
	return result
}

// WriteSnapshot marshals report as indented JSON to path.
func WriteSnapshot(path string, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("harness: marshaling snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("harness: creating snapshot dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSnapshot loads a previously written Report from path.
func ReadSnapshot(fsys fs.FS, path string) (*Report, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("harness: reading snapshot: %w", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("harness: parsing snapshot: %w", err)
	}
	return &report, nil
}

// Diff compares a fresh report against a previously recorded snapshot,
// returning the names of cases whose pass/fail status changed or that are
// absent from the snapshot.
func Diff(fresh, recorded *Report) []string {
	recordedByName := make(map[string]bool, len(recorded.Cases))
	for _, c := range recorded.Cases {
		recordedByName[c.Name] = c.Pass
	}
	var changed []string
	for _, c := range fresh.Cases {
		if prior, ok := recordedByName[c.Name]; !ok || prior != c.Pass {
			changed = append(changed, c.Name)
		}
	}
	return changed
}
