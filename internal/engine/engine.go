// Package engine implements the facade (C9): the three public operations
// that wire the card, auction, rule, context, partner, selector, and
// fallback packages together into a single request/response surface.
package engine

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"

	"github.com/lox/bridgebot/internal/bidding"
	"github.com/lox/bridgebot/internal/boardid"
	"github.com/lox/bridgebot/internal/card"
	"github.com/lox/bridgebot/internal/context"
	"github.com/lox/bridgebot/internal/evalctx"
	"github.com/lox/bridgebot/internal/fallback"
	"github.com/lox/bridgebot/internal/partner"
	"github.com/lox/bridgebot/internal/rules"
	"github.com/lox/bridgebot/internal/selector"
)

// Interpretation is the facade's public result type: a call, the rule (or
// fallback) name behind it, and a human description, as spec'd for the UI.
type Interpretation struct {
	Call        bidding.Call
	RuleName    string
	Description string
	Forcing     string
	IsFallback  bool
}

// Engine holds the read-only rule set every request evaluates against. It
// is safe for concurrent use: nothing here mutates shared state.
type Engine struct {
	rules  *rules.RuleSet
	logger *charmlog.Logger
}

// New builds an Engine over an already-loaded rule set.
func New(rs *rules.RuleSet, logger *charmlog.Logger) *Engine {
	if logger == nil {
		logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{Prefix: "ENGINE"})
	}
	return &Engine{rules: rs, logger: logger}
}

// InvalidHandError wraps a hand-validation error at the facade boundary.
// Invalid identifiers and auctions surface as boardid.ErrInvalidIdentifier
// and boardid.ErrInvalidAuction; this package defines no separate types
// for them.
type InvalidHandError struct{ Err error }

func (e *InvalidHandError) Error() string { return fmt.Sprintf("invalid hand: %v", e.Err) }
func (e *InvalidHandError) Unwrap() error { return e.Err }

// SuggestCall parses a board identifier, computes the current seat and
// hand, runs the selector and (if nothing matched) the natural fallback,
// and returns the chosen call with its explanation.
func (e *Engine) SuggestCall(identifier string) (Interpretation, error) {
	board, err := boardid.Decode(identifier)
	if err != nil {
		return Interpretation{}, err
	}

	seat := board.Auction.CurrentTurn()
	hand := board.Deal[seat]
	vulnerable := board.Vulnerability.IsVulnerable(seat)

	interp := e.evaluate(board.Auction, seat, hand, vulnerable)
	e.logger.Debug("suggest_call", "identifier", identifier, "seat", seat, "call", interp.Call, "rule", interp.RuleName)
	return interp, nil
}

// NextCall behaves like SuggestCall but returns only the Call, for robot
// turns where the caller doesn't need the explanation.
func (e *Engine) NextCall(identifier string) (bidding.Call, error) {
	interp, err := e.SuggestCall(identifier)
	if err != nil {
		return bidding.Call{}, err
	}
	return interp.Call, nil
}

// InterpretCalls lists, for the seat on turn, up to every legal call's
// plausible interpretations from the schema alone (no hand required),
// used by the "Explore" UI. It never reaches the natural fallback (C8) —
// which is the only vulnerability-sensitive path — so it takes no
// vulnerability parameter; a dealer position alone can't determine
// vulnerability anyway (boards 1, 5, 9, and 13 share a dealer but differ).
func (e *Engine) InterpretCalls(callsCSV string, dealer bidding.Position) ([]Interpretation, error) {
	calls, err := bidding.ParseCalls(callsCSV)
	if err != nil {
		return nil, err
	}
	auction := bidding.NewAuction(dealer)
	auction.Calls = calls
	if !auction.IsValid() {
		return nil, &boardid.ErrInvalidAuction{Auction: auction}
	}

	tags := context.Classify(auction)
	raw := selector.InterpretAll(e.rules, tags, auction)
	out := make([]Interpretation, len(raw))
	for i, r := range raw {
		out[i] = Interpretation{Call: r.Call, RuleName: r.RuleName, Description: r.Description, Forcing: r.Forcing}
	}
	return out, nil
}

// Diagnosis is the full per-constraint breakdown behind a board's suggested
// call, for tooling that wants to show its reasoning rather than just the
// chosen interpretation: the auction context considered, every rule variant
// evaluated for every legal call (matched or not, with its constraints'
// individual pass/fail), and the partner profile inferred to get there.
type Diagnosis struct {
	Board          *boardid.Board
	Interpretation Interpretation
	Variants       []selector.VariantEvaluation
	Partner        evalctx.PartnerView
}

// Diagnose decodes identifier, runs the same context classification,
// partner inference, and selector pass SuggestCall does, but keeps every
// variant considered (not just the winner) alongside the final suggestion.
func (e *Engine) Diagnose(identifier string) (Diagnosis, error) {
	board, err := boardid.Decode(identifier)
	if err != nil {
		return Diagnosis{}, err
	}

	seat := board.Auction.CurrentTurn()
	hand := board.Deal[seat]
	vulnerable := board.Vulnerability.IsVulnerable(seat)

	tags := context.Classify(board.Auction)
	profile := partner.Infer(e.rules, board.Auction, seat)
	req := evalctx.Request{
		Hand:    hand,
		Partner: profile,
		Auction: board.Auction,
		Seat:    seat,
		Atoms:   e.rules.Atoms(),
	}

	variants := selector.EvaluateAll(e.rules, tags, req, board.Auction)
	interp := e.evaluate(board.Auction, seat, hand, vulnerable)

	return Diagnosis{
		Board:          board,
		Interpretation: interp,
		Variants:       variants,
		Partner:        profile,
	}, nil
}

// evaluate is the shared core of SuggestCall: classify context, infer the
// partner profile, run the selector, and fall back to C8 if nothing fired.
// vulnerable is the calling seat's partnership vulnerability, threaded
// through to the fallback's LOTT-based level calculation.
func (e *Engine) evaluate(auction *bidding.AuctionHistory, seat bidding.Position, hand card.Hand, vulnerable bool) Interpretation {
	tags := context.Classify(auction)
	profile := partner.Infer(e.rules, auction, seat)

	req := evalctx.Request{
		Hand:    hand,
		Partner: profile,
		Auction: auction,
		Seat:    seat,
		Atoms:   e.rules.Atoms(),
	}

	if match, ok := selector.Select(e.rules, tags, req, auction); ok {
		si := selector.FromMatch(match)
		return Interpretation{Call: si.Call, RuleName: si.RuleName, Description: si.Description, Forcing: si.Forcing}
	}

	fb := fallback.Choose(hand, profile, auction, seat, vulnerable)
	return Interpretation{Call: fb.Call, RuleName: fb.RuleName, Description: fb.Description, IsFallback: true}
}
