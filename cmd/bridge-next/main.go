// Command bridge-next suggests the next call for a board identifier.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"

	"github.com/lox/bridgebot/internal/engine"
	"github.com/lox/bridgebot/internal/engineconfig"
	"github.com/lox/bridgebot/internal/rules"
)

type CLI struct {
	Identifier string `arg:"" help:"Board identifier: <board>-<26 hex chars>[:<calls-csv>]"`
	RulesDir   string `short:"r" help:"Directory of YAML rule shards" default:""`
	Debug      bool   `help:"Enable debug logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("bridge-next"),
		kong.Description("Suggest the next SAYC call for a board"),
		kong.UsageOnError(),
	)

	cfg, err := engineconfig.FromEnv()
	if err != nil {
		kctx.Fatalf("config: %v", err)
	}
	if cli.RulesDir != "" {
		cfg.RulesDir = cli.RulesDir
	}

	level := charmlog.InfoLevel
	if cli.Debug {
		level = charmlog.DebugLevel
	}
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{Prefix: "NEXT"})
	logger.SetLevel(level)

	rs, err := rules.Load(os.DirFS(cfg.RulesDir), ".")
	if err != nil {
		kctx.Fatalf("loading rules from %s: %v", cfg.RulesDir, err)
	}

	eng := engine.New(rs, logger)
	interp, err := eng.SuggestCall(cli.Identifier)
	if err != nil {
		kctx.Fatalf("suggest call: %v", err)
	}

	fmt.Printf("%s  (%s)\n", interp.Call, interp.RuleName)
	if interp.Description != "" {
		fmt.Println(interp.Description)
	}
	if interp.Forcing != "" {
		fmt.Printf("forcing: %s\n", interp.Forcing)
	}
}
