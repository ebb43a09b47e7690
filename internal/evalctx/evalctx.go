// Package evalctx implements the constraint evaluator (C4): a pure function
// deciding whether a hand, combined with the inferred partner profile and
// auction so far, satisfies a single rule variant.
package evalctx

import (
	"fmt"

	"github.com/lox/bridgebot/internal/bidding"
	"github.com/lox/bridgebot/internal/card"
	"github.com/lox/bridgebot/internal/rules"
)

// PartnerView is the subset of the partner-profile inferencer's output the
// evaluator needs. Package partner's Profile satisfies this.
type PartnerView interface {
	MinHCP() int
	MaxHCP() int
	MinLength(s card.Suit) int
	HasStopper(s card.Suit) bool
	ShownGenuineSuit(s card.Suit) bool
}

// Request bundles everything a single constraint evaluation needs.
type Request struct {
	Hand    card.Hand
	Partner PartnerView
	Auction *bidding.AuctionHistory
	Seat    bidding.Position
	Atoms   *rules.AtomRegistry
}

// atomView adapts a Request to rules.AtomView so the auction-predicate
// registry can evaluate its named functions against it.
type atomView struct{ req Request }

func (a atomView) Auction() *bidding.AuctionHistory         { return a.req.Auction }
func (a atomView) Seat() bidding.Position                   { return a.req.Seat }
func (a atomView) Hand() card.Hand                          { return a.req.Hand }
func (a atomView) PartnerMinHCP() int                       { return a.req.Partner.MinHCP() }
func (a atomView) PartnerMaxHCP() int                       { return a.req.Partner.MaxHCP() }
func (a atomView) PartnerMinLength(s card.Suit) int         { return a.req.Partner.MinLength(s) }
func (a atomView) PartnerHasStopper(s card.Suit) bool       { return a.req.Partner.HasStopper(s) }
func (a atomView) PartnerShownGenuineSuit(s card.Suit) bool { return a.req.Partner.ShownGenuineSuit(s) }

// MatchVariant reports whether req's hand satisfies every constraint in v
// (a conjunction). It has no side effects: it never mutates req.Partner.
func MatchVariant(req Request, v *rules.Variant) bool {
	for _, c := range v.Constraints {
		if !matchConstraint(req, c) {
			return false
		}
	}
	return true
}

// ConstraintResult pairs a single constraint with whether req satisfied it,
// for diagnostic tooling that wants the full breakdown rather than just the
// overall pass/fail MatchVariant gives.
type ConstraintResult struct {
	Constraint rules.Constraint
	Passed     bool
}

// EvaluateVariant is MatchVariant's diagnostic twin: it evaluates every
// constraint in v, without short-circuiting on the first failure, and
// returns both the overall conjunction and the per-constraint breakdown.
func EvaluateVariant(req Request, v *rules.Variant) (bool, []ConstraintResult) {
	results := make([]ConstraintResult, len(v.Constraints))
	ok := true
	for i, c := range v.Constraints {
		passed := matchConstraint(req, c)
		results[i] = ConstraintResult{Constraint: c, Passed: passed}
		if !passed {
			ok = false
		}
	}
	return ok, results
}

// DescribeConstraint renders a constraint as a short human-readable
// condition, for printing alongside its pass/fail result.
func DescribeConstraint(c rules.Constraint) string {
	switch c.Type {
	case rules.ConstraintMinHCP:
		return fmt.Sprintf("hcp >= %d", c.Min)
	case rules.ConstraintMaxHCP:
		return fmt.Sprintf("hcp <= %d", c.Max)
	case rules.ConstraintMinLength:
		return fmt.Sprintf("%s length >= %d", c.Suit, c.Count)
	case rules.ConstraintMaxLength:
		return fmt.Sprintf("%s length <= %d", c.Suit, c.Count)
	case rules.ConstraintExactLength:
		return fmt.Sprintf("%s length == %d", c.Suit, c.Count)
	case rules.ConstraintShape:
		return fmt.Sprintf("shape matches %v", c.Shape)
	case rules.ConstraintSuitQuality:
		return fmt.Sprintf("%s quality >= %v", c.Suit, c.Quality)
	case rules.ConstraintHandShapeClass:
		return fmt.Sprintf("hand shape == %v", c.Class)
	case rules.ConstraintStopper:
		return fmt.Sprintf("%s stopper", c.Suit)
	case rules.ConstraintAllStopped:
		return "stopper in every suit"
	case rules.ConstraintMinCombinedHCP:
		return fmt.Sprintf("combined hcp >= %d", c.CombinedMin)
	case rules.ConstraintMinCombinedLength:
		return fmt.Sprintf("combined %s length >= %d", c.Suit, c.Count)
	case rules.ConstraintNotAlreadyGame:
		return "partnership not already at game"
	case rules.ConstraintRuleOfTwenty:
		return "rule of twenty"
	case rules.ConstraintRuleOfFifteen:
		return "rule of fifteen"
	case rules.ConstraintExactAceCount:
		return fmt.Sprintf("ace count == %d", c.Count)
	case rules.ConstraintAuctionPredicate:
		return fmt.Sprintf("predicate %s(%v)", c.Predicate, c.Args)
	default:
		return string(c.Type)
	}
}

func matchConstraint(req Request, c rules.Constraint) bool {
	h := req.Hand
	switch c.Type {
	case rules.ConstraintMinHCP:
		return h.HCP() >= c.Min
	case rules.ConstraintMaxHCP:
		return h.HCP() <= c.Max
	case rules.ConstraintMinLength:
		return h.Length(c.Suit) >= c.Count
	case rules.ConstraintMaxLength:
		return h.Length(c.Suit) <= c.Count
	case rules.ConstraintExactLength:
		return h.Length(c.Suit) == c.Count
	case rules.ConstraintShape:
		return matchShape(h.SortedShape(), c.Shape)
	case rules.ConstraintSuitQuality:
		return h.Quality(c.Suit) >= c.Quality
	case rules.ConstraintHandShapeClass:
		return h.Classify() == c.Class
	case rules.ConstraintStopper:
		return h.HasStopper(c.Suit)
	case rules.ConstraintAllStopped:
		for _, s := range card.All {
			if !h.HasStopper(s) {
				return false
			}
		}
		return true
	case rules.ConstraintMinCombinedHCP:
		return h.HCP()+req.Partner.MinHCP() >= c.CombinedMin
	case rules.ConstraintMinCombinedLength:
		return h.Length(c.Suit)+req.Partner.MinLength(c.Suit) >= c.Count
	case rules.ConstraintNotAlreadyGame:
		return !partnershipAlreadyAtGame(req.Auction, req.Seat)
	case rules.ConstraintRuleOfTwenty:
		return h.RuleOfTwenty()
	case rules.ConstraintRuleOfFifteen:
		return h.RuleOfFifteen()
	case rules.ConstraintExactAceCount:
		return h.AceCount() == c.Count
	case rules.ConstraintAuctionPredicate:
		if req.Atoms == nil {
			return false
		}
		fn, err := req.Atoms.Lookup(c.Predicate)
		if err != nil {
			return false
		}
		return fn(atomView{req})
	default:
		return false
	}
}

// matchShape compares a hand's descending-sorted suit lengths against a
// pattern; a zero entry in the pattern is a wildcard matching any length.
func matchShape(shape [4]int, pattern [4]int) bool {
	for i := 0; i < 4; i++ {
		if pattern[i] != 0 && pattern[i] != shape[i] {
			return false
		}
	}
	return true
}

// partnershipAlreadyAtGame reports whether the auction's last bid was made
// by the calling side's partnership and is at or above game level in the
// strain it named (3NT, 4H/4S, 5C/5D). A game bid by our side that the
// opponents have since overcalled does not count.
func partnershipAlreadyAtGame(a *bidding.AuctionHistory, seat bidding.Position) bool {
	idx, bid := a.LastBid()
	if idx < 0 {
		return false
	}
	bidder := a.PositionOf(idx)
	if !bidder.SamePartnership(seat) {
		return false
	}
	return isGameLevel(bid)
}

func isGameLevel(c bidding.Call) bool {
	if !c.IsBid() {
		return false
	}
	switch c.Strain {
	case bidding.Notrump:
		return c.Level >= 3
	case bidding.HeartsStrain, bidding.SpadesStrain:
		return c.Level >= 4
	default:
		return c.Level >= 5
	}
}
