// Package engineconfig provides environment-variable configuration for the
// bidding engine's runtime knobs, mirroring the poker SDK's BotConfig.FromEnv
// shape: a small, flat set of named env vars with explicit defaults.
package engineconfig

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// EnvSnapshotUpdate, when set to a truthy value, tells the test harness
	// to rewrite its expectation snapshots instead of comparing against them.
	EnvSnapshotUpdate = "BRIDGEBOT_UPDATE_SNAPSHOTS"

	// EnvDoubleDummyHook, when set to a truthy value, sets
	// EngineConfig.DoubleDummyHook. No double-dummy strategy ships and no
	// package reads the flag, so the fallback always uses the
	// sound-points/LOTT heuristic.
	EnvDoubleDummyHook = "BRIDGEBOT_DOUBLE_DUMMY"

	// EnvRulesDir overrides the directory the rule shard loader reads from.
	EnvRulesDir = "BRIDGEBOT_RULES_DIR"
)

// EngineConfig holds configuration parsed from environment variables.
type EngineConfig struct {
	// UpdateSnapshots rewrites harness expectation snapshots on run.
	UpdateSnapshots bool

	// DoubleDummyHook records the double-dummy toggle; nothing reads it, so
	// it does not change how the engine bids.
	DoubleDummyHook bool

	// RulesDir is the directory rule shards are loaded from.
	RulesDir string
}

// FromEnv parses configuration from environment variables, applying
// defaults for anything unset.
func FromEnv() (*EngineConfig, error) {
	cfg := &EngineConfig{RulesDir: "rules"}

	if v := os.Getenv(EnvSnapshotUpdate); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", EnvSnapshotUpdate, v, err)
		}
		cfg.UpdateSnapshots = b
	}

	if v := os.Getenv(EnvDoubleDummyHook); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", EnvDoubleDummyHook, v, err)
		}
		cfg.DoubleDummyHook = b
	}

	if dir := os.Getenv(EnvRulesDir); dir != "" {
		cfg.RulesDir = dir
	}

	return cfg, nil
}
