// Command bridge-harness replays YAML test vectors against the bidding
// engine and compares the results to recorded JSON snapshots.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/bridgebot/internal/engine"
	"github.com/lox/bridgebot/internal/engineconfig"
	"github.com/lox/bridgebot/internal/harness"
	"github.com/lox/bridgebot/internal/rules"
)

type CLI struct {
	Config      string `kong:"default='harness.hcl',help='Path to harness HCL config'"`
	RulesDir    string `kong:"help='Directory of YAML rule shards (overrides BRIDGEBOT_RULES_DIR)'"`
	Update      bool   `kong:"help='Rewrite snapshots instead of comparing against them'"`
	Debug       bool   `kong:"help='Enable debug logging'"`
	OutputFile  string `kong:"help='Write the fresh report JSON here in addition to the snapshot dir'"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("bridge-harness"),
		kong.Description("Replay bidding test vectors and compare to snapshots"),
		kong.UsageOnError(),
	)

	level := zerolog.InfoLevel
	if cli.Debug {
		level = zerolog.DebugLevel
	}
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	hcfg, err := harness.LoadConfig(cli.Config)
	if err != nil {
		kctx.Fatalf("loading harness config: %v", err)
	}
	if cli.Update {
		hcfg.Snapshots.UpdateOnRun = true
	}

	ecfg, err := engineconfig.FromEnv()
	if err != nil {
		kctx.Fatalf("engine config: %v", err)
	}
	if cli.RulesDir != "" {
		ecfg.RulesDir = cli.RulesDir
	}

	rs, err := rules.Load(os.DirFS(ecfg.RulesDir), ".")
	if err != nil {
		kctx.Fatalf("loading rules from %s: %v", ecfg.RulesDir, err)
	}

	vectors, err := harness.LoadVectors(os.DirFS(hcfg.Vectors.Dir), ".")
	if err != nil {
		kctx.Fatalf("loading vectors from %s: %v", hcfg.Vectors.Dir, err)
	}

	engineLogger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{Prefix: "HARNESS"})
	eng := engine.New(rs, engineLogger)

	runner := harness.NewRunner(eng, zlog, quartz.NewReal())
	report := runner.Run("bridge-harness", vectors)

	snapshotPath := hcfg.Snapshots.Dir + "/report.json"
	if hcfg.Snapshots.UpdateOnRun || ecfg.UpdateSnapshots {
		if err := harness.WriteSnapshot(snapshotPath, report); err != nil {
			kctx.Fatalf("writing snapshot: %v", err)
		}
		zlog.Info().Str("path", snapshotPath).Msg("snapshot updated")
	} else if recorded, err := harness.ReadSnapshot(os.DirFS("."), snapshotPath); err == nil {
		changed := harness.Diff(report, recorded)
		for _, name := range changed {
			zlog.Warn().Str("vector", name).Msg("result changed since last recorded snapshot")
		}
	}

	if cli.OutputFile != "" {
		if err := harness.WriteSnapshot(cli.OutputFile, report); err != nil {
			kctx.Fatalf("writing output file: %v", err)
		}
	}

	fmt.Printf("%d passed, %d failed (%d total)\n", report.Passed, report.Failed, len(report.Cases))
	for _, c := range report.Cases {
		if !c.Pass {
			fmt.Printf("FAIL %s: %s\n", c.Name, c.FailReason)
		}
	}
	if report.Failed > 0 {
		os.Exit(1)
	}
}
