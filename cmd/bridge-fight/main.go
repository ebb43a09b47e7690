// Command bridge-fight compares this engine's suggested calls against a
// reference bidder reachable over WebSocket, across a batch of boards drawn
// from the test vector shards.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"

	"github.com/lox/bridgebot/internal/engine"
	"github.com/lox/bridgebot/internal/engineconfig"
	"github.com/lox/bridgebot/internal/fight"
	"github.com/lox/bridgebot/internal/harness"
	"github.com/lox/bridgebot/internal/rules"
)

type CLI struct {
	ReferenceURL string `kong:"required,help='WebSocket URL of the reference bidder'"`
	VectorsDir   string `kong:"default='testdata/vectors',help='Directory of YAML vector shards to draw boards from'"`
	RulesDir     string `kong:"help='Directory of YAML rule shards (overrides BRIDGEBOT_RULES_DIR)'"`
	Workers      int    `kong:"default='4',help='Concurrent comparison workers'"`
	TimeoutMs    int    `kong:"default='2000',help='Per-comparison reference bidder timeout in milliseconds'"`
	BaselineDir  string `kong:"help='Directory of a prior vector batch to statistically compare this run against'"`
	Debug        bool   `kong:"help='Enable debug logging'"`
}

func runBatch(ctx context.Context, kctx *kong.Context, eng *engine.Engine, logger *charmlog.Logger, cli CLI, vectorsDir string) fight.Summary {
	vectors, err := harness.LoadVectors(os.DirFS(vectorsDir), ".")
	if err != nil {
		kctx.Fatalf("loading vectors from %s: %v", vectorsDir, err)
	}

	var cases []fight.Case
	for _, v := range vectors {
		identifier, err := v.BuildIdentifier()
		if err != nil {
			logger.Warn("skipping vector with unbuildable identifier", "vector", v.Name, "error", err)
			continue
		}
		cases = append(cases, fight.Case{Name: v.Name, Identifier: identifier})
	}
	if len(cases) == 0 {
		kctx.Fatalf("no comparable boards found under %s", vectorsDir)
	}

	ref := fight.NewReferenceClient(cli.ReferenceURL, logger)
	if err := ref.Connect(); err != nil {
		kctx.Fatalf("connecting to reference bidder: %v", err)
	}
	defer ref.Close()

	summary, err := fight.RunBatch(ctx, eng, ref, cases, cli.Workers, time.Duration(cli.TimeoutMs)*time.Millisecond)
	if err != nil {
		kctx.Fatalf("batch run: %v", err)
	}
	return summary
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("bridge-fight"),
		kong.Description("Compare local bidding calls against a reference bidder"),
		kong.UsageOnError(),
	)

	level := charmlog.InfoLevel
	if cli.Debug {
		level = charmlog.DebugLevel
	}
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{Prefix: "FIGHT"})
	logger.SetLevel(level)

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
	eng := engine.New(rs, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Info("received interrupt, shutting down")
		cancel()
	}()

	summary := runBatch(ctx, kctx, eng, logger, cli, cli.VectorsDir)

	fmt.Printf("%d/%d agree with reference bidder\n", summary.Agreements, summary.Total)
	for _, d := range summary.Disagreements {
		fmt.Printf("DISAGREE %s: engine=%s reference=%s\n", d.Name, d.EngineCall, d.ReferenceCall)
	}
	for _, e := range summary.Errors {
		fmt.Printf("ERROR %s: %v\n", e.Name, e.Err)
	}

	rate := fight.RateStats(summary)
	fmt.Printf("agreement rate %.1f%% (95%% CI %.1f%%-%.1f%%)\n", rate.Rate*100, rate.CI95Low*100, rate.CI95High*100)

	if cli.BaselineDir != "" {
		baselineSummary := runBatch(ctx, kctx, eng, logger, cli, cli.BaselineDir)
		baselineRate := fight.RateStats(baselineSummary)
		cmp := fight.CompareRates(baselineRate, rate)
		fmt.Printf("vs baseline %s: difference %.1f%% (95%% CI %.1f%%-%.1f%%), p=%.4f (%s), effect size %.2f (%s)\n",
			cli.BaselineDir, cmp.Difference*100, cmp.CI95Low*100, cmp.CI95High*100,
			cmp.PValue, fight.InterpretPValue(cmp.PValue, 0.05),
			cmp.EffectSize, fight.InterpretEffectSize(cmp.EffectSize))
	}
}
