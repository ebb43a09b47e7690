// Command bridge-debug prints the full reasoning behind a board's suggested
// call: the auction, every rule variant considered for every legal call
// (matched or failed, with each constraint's individual verdict), and the
// partner profile inferred to get there.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"

	"github.com/lox/bridgebot/internal/bidding"
	"github.com/lox/bridgebot/internal/card"
	"github.com/lox/bridgebot/internal/engine"
	"github.com/lox/bridgebot/internal/engineconfig"
	"github.com/lox/bridgebot/internal/evalctx"
	"github.com/lox/bridgebot/internal/rules"
)

type CLI struct {
	Identifier string `arg:"" help:"Board identifier: <board-number>-<26-hex-deal>[:<calls-csv>]"`
	RulesDir   string `short:"r" help:"Directory of YAML rule shards" default:""`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("bridge-debug"),
		kong.Description("Show the full matched/failed variant breakdown and partner profile behind a board's suggested call"),
		kong.UsageOnError(),
	)

	cfg, err := engineconfig.FromEnv()
	if err != nil {
		kctx.Fatalf("config: %v", err)
	}
	if cli.RulesDir != "" {
		cfg.RulesDir = cli.RulesDir
	}

	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{Prefix: "DEBUG"})

	rs, err := rules.Load(os.DirFS(cfg.RulesDir), ".")
	if err != nil {
		kctx.Fatalf("loading rules from %s: %v", cfg.RulesDir, err)
	}

	eng := engine.New(rs, logger)
	diag, err := eng.Diagnose(cli.Identifier)
	if err != nil {
		kctx.Fatalf("diagnose: %v", err)
	}

	seat := diag.Board.Auction.CurrentTurn()
	fmt.Printf("board %d, dealer %s, seat on turn %s\n", diag.Board.Number, diag.Board.Dealer, seat)
	fmt.Printf("auction: %s\n", auctionString(diag.Board.Auction))
	fmt.Printf("hand: %s\n\n", formatHand(diag.Board.Deal[seat]))

	fmt.Println("partner profile:")
	fmt.Printf("  hcp %d-%d\n", diag.Partner.MinHCP(), diag.Partner.MaxHCP())
	for _, s := range card.All {
		min := diag.Partner.MinLength(s)
		if min == 0 {
			continue
		}
		fmt.Printf("  %s: %d+%s\n", s, min, stopperSuffix(diag.Partner, s))
	}
	fmt.Println()

	fmt.Println("variants considered:")
	for _, v := range diag.Variants {
		status := "FAIL"
		if v.Matched {
			status = "MATCH"
		}
		fmt.Printf("  [%s] %-6s %s (priority %d)\n", status, v.Call, v.Variant.Name, v.Variant.Priority)
		for _, c := range v.Constraints {
			mark := "fail"
			if c.Passed {
				mark = "pass"
			}
			fmt.Printf("      %-4s %s\n", mark, evalctx.DescribeConstraint(c.Constraint))
		}
	}
	if len(diag.Variants) == 0 {
		fmt.Println("  (no rule in an active context has a currently legal call)")
	}

	fmt.Println()
	forcing := diag.Interpretation.Forcing
	if forcing == "" {
		forcing = "-"
	}
	fmt.Printf("suggested call: %s  (%s, forcing=%s)\n", diag.Interpretation.Call, diag.Interpretation.RuleName, forcing)
	fmt.Printf("  %s\n", diag.Interpretation.Description)
}

func stopperSuffix(p evalctx.PartnerView, s card.Suit) string {
	if p.HasStopper(s) {
		return " (stopper)"
	}
	return ""
}

func auctionString(a *bidding.AuctionHistory) string {
	if len(a.Calls) == 0 {
		return "(no calls yet)"
	}
	return bidding.FormatCalls(a.Calls)
}

// formatHand renders a hand suit by suit, spades down to clubs, each suit's
// cards in descending rank.
func formatHand(h card.Hand) string {
	bySuit := map[card.Suit][]card.Card{}
	for _, c := range h.Cards() {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}
	suits := []card.Suit{card.Spades, card.Hearts, card.Diamonds, card.Clubs}
	parts := make([]string, 0, 4)
	for _, s := range suits {
		cards := bySuit[s]
		ranks := make([]string, len(cards))
		for i, c := range cards {
			ranks[len(cards)-1-i] = c.Rank.String()
		}
		parts = append(parts, fmt.Sprintf("%s %s", s, strings.Join(ranks, "")))
	}
	return strings.Join(parts, " ")
}
