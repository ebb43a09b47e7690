// Package selector implements the rule selector (C7): enumerate matching
// variants for all legal calls, resolve by priority, and produce a chosen
// call plus the explanation behind it.
package selector

import (
	"github.com/lox/bridgebot/internal/bidding"
	"github.com/lox/bridgebot/internal/evalctx"
	"github.com/lox/bridgebot/internal/rules"
)

// Match is a winning (rule, variant) pair for a single legal call.
type Match struct {
	Call    bidding.Call
	Rule    *rules.BidRule
	Variant *rules.Variant
}

// Select runs the full C7 algorithm: it walks every rule in the active
// contexts whose call is currently legal, finds that rule's
// highest-priority matching variant (if any), then picks the single
// overall winner by variant priority, breaking ties by schema order. It
// returns (Match{}, false) when nothing matched, signalling the caller to
// hand off to the natural fallback (C8).
func Select(rs *rules.RuleSet, contexts []rules.Context, req evalctx.Request, auction *bidding.AuctionHistory) (Match, bool) {
	seen := make(map[*rules.BidRule]bool)
	var winners []Match

	for _, ctx := range contexts {
		for _, r := range rs.RulesInContext(ctx) {
			if seen[r] {
				continue
			}
			call, err := bidding.ParseCall(r.Call)
			if err != nil || !auction.IsLegal(call) {
				continue
			}
			seen[r] = true

			if v := bestMatchingVariant(r, req); v != nil {
				winners = append(winners, Match{Call: call, Rule: r, Variant: v})
			}
		}
	}

	if len(winners) == 0 {
		return Match{}, false
	}

	best := winners[0]
	for _, w := range winners[1:] {
		if betterMatch(w, best) {
			best = w
		}
	}
	return best, true
}

// bestMatchingVariant walks a rule's variants in descending priority and
// returns the first whose constraints all match; nil if none do.
func bestMatchingVariant(r *rules.BidRule, req evalctx.Request) *rules.Variant {
	var best *rules.Variant
	for i := range r.Variants {
		v := &r.Variants[i]
		if best != nil && v.Priority <= best.Priority {
			continue
		}
		if evalctx.MatchVariant(req, v) {
			if best == nil || v.Priority > best.Priority {
				best = v
			}
		}
	}
	return best
}

// betterMatch reports whether candidate should replace current as the
// overall winner: strictly higher priority wins outright; equal priority
// falls back to schema (load) order, earlier wins.
func betterMatch(candidate, current Match) bool {
	if candidate.Variant.Priority != current.Variant.Priority {
		return candidate.Variant.Priority > current.Variant.Priority
	}
	return candidate.Rule.SourceIndex() < current.Rule.SourceIndex()
}

// Interpretation is the C9-facing description of a chosen (or fallback)
// call: the call itself, the rule/variant name it matched, and a
// human-readable description.
type Interpretation struct {
	Call        bidding.Call
	RuleName    string
	Description string
	Forcing     string
	IsFallback  bool
}

// FromMatch converts a selector Match into an Interpretation.
func FromMatch(m Match) Interpretation {
	return Interpretation{
		Call:        m.Call,
		RuleName:    m.Variant.Name,
		Description: m.Variant.Description,
		Forcing:     m.Variant.Forcing,
	}
}

// VariantEvaluation is a single (rule, variant) pair considered for one
// legal call, with the full per-constraint breakdown behind its verdict —
// used by diagnostic tooling that needs more than Select's winner-only view.
type VariantEvaluation struct {
	Call        bidding.Call
	Rule        *rules.BidRule
	Variant     *rules.Variant
	Matched     bool
	Constraints []evalctx.ConstraintResult
}

// EvaluateAll walks every rule in the active contexts whose call is
// currently legal and evaluates every one of its variants (not just the
// best-matching one), returning the full matched/failed breakdown for each.
func EvaluateAll(rs *rules.RuleSet, contexts []rules.Context, req evalctx.Request, auction *bidding.AuctionHistory) []VariantEvaluation {
	var out []VariantEvaluation
	seen := make(map[*rules.BidRule]bool)
	for _, ctx := range contexts {
		for _, r := range rs.RulesInContext(ctx) {
			if seen[r] {
				continue
			}
			call, err := bidding.ParseCall(r.Call)
			if err != nil || !auction.IsLegal(call) {
				continue
			}
			seen[r] = true
			for i := range r.Variants {
				v := &r.Variants[i]
				matched, results := evalctx.EvaluateVariant(req, v)
				out = append(out, VariantEvaluation{
					Call:        call,
					Rule:        r,
					Variant:     v,
					Matched:     matched,
					Constraints: results,
				})
			}
		}
	}
	return out
}

// InterpretAll enumerates, for every legal call in the current auction, the
// interpretations any matching rule variant would attach to it — used by
// the "Explore" facade operation (interpret_calls), which lists plausible
// meanings without requiring a concrete hand.
func InterpretAll(rs *rules.RuleSet, contexts []rules.Context, auction *bidding.AuctionHistory) []Interpretation {
	var out []Interpretation
	seen := make(map[*rules.BidRule]bool)
	for _, ctx := range contexts {
		for _, r := range rs.RulesInContext(ctx) {
			if seen[r] {
				continue
			}
			call, err := bidding.ParseCall(r.Call)
			if err != nil || !auction.IsLegal(call) {
				continue
			}
			seen[r] = true
			for i := range r.Variants {
				v := &r.Variants[i]
				out = append(out, Interpretation{
					Call:        call,
					RuleName:    v.Name,
					Description: v.Description,
					Forcing:     v.Forcing,
				})
			}
		}
	}
	return out
}
