// Package partner implements the partner-profile inferencer (C6): for a
// seat about to call, reconstruct the weakest-compatible profile of what
// its partner has shown so far in the auction.
package partner

import (
	"github.com/lox/bridgebot/internal/bidding"
	"github.com/lox/bridgebot/internal/card"
	"github.com/lox/bridgebot/internal/context"
	"github.com/lox/bridgebot/internal/rules"
)

// Profile is the inferred shape of a partnership's other hand: bounds on
// HCP, minimum shown length per suit, which suits carry an implied
// stopper, and a couple of informational flags used by rule constraints.
type Profile struct {
	minHCP        int
	maxHCP        int
	minLength     [4]int
	stoppers      [4]bool
	shownGenuine  [4]bool
	isOpener      bool
	hasLimitedHand bool
}

func (p *Profile) MinHCP() int                       { return p.minHCP }
func (p *Profile) MaxHCP() int                       { return p.maxHCP }
func (p *Profile) MinLength(s card.Suit) int         { return p.minLength[s] }
func (p *Profile) HasStopper(s card.Suit) bool       { return p.stoppers[s] }
func (p *Profile) ShownGenuineSuit(s card.Suit) bool { return p.shownGenuine[s] }
func (p *Profile) IsOpener() bool                    { return p.isOpener }
func (p *Profile) HasLimitedHand() bool              { return p.hasLimitedHand }

// Infer builds seat's PartnerProfile from the auction so far, by replaying
// each of partner's calls, finding every rule variant that could have
// produced it given the rule set, and joining their extracted Bounds by the
// monotone lattice rule (min of mins, max of maxes, stopper/genuine flags
// surviving only when every candidate requires them).
//
// When a partner call matches no rule variant at all (natural fallback
// territory, per C8), Infer falls back to the same coarse level/suit
// heuristic the natural-bidding model itself uses: 1-level opening shows
// 4+ cards and an opening hand, 2-level shows 5+, 3-level+ shows 6+.
func Infer(rs *rules.RuleSet, auction *bidding.AuctionHistory, seat bidding.Position) *Profile {
	partnerSeat := seat.Partner()
	profile := &Profile{maxHCP: 37}

	if len(auction.Calls) == 0 {
		return profile
	}

	for i, call := range auction.Calls {
		if auction.PositionOf(i) != partnerSeat {
			continue
		}
		if !call.IsBid() {
			continue
		}
		prefix := auction.Prefix(i)
		bounds, matched := candidateBounds(rs, prefix, partnerSeat, call)
		if !matched {
			bounds = heuristicBounds(call)
		}
		applyBounds(profile, bounds)
		if i == firstBidIndex(auction, partnerSeat) {
			profile.isOpener = call.Level == 1 || (call.IsBid() && call.Strain != bidding.Notrump && call.Level <= 3)
		}
	}
	return profile
}

// applyBounds merges bounds into profile in place. Because each successive
// call by the same seat only ever adds information (SAYC auctions don't
// retract earlier promises), later calls join with, rather than replace,
// the running profile.
func applyBounds(p *Profile, b rules.Bounds) {
	cur := rules.Bounds{MinHCP: p.minHCP, MaxHCP: p.maxHCP}
	cur = widen(cur, b)
	p.minHCP, p.maxHCP = cur.MinHCP, cur.MaxHCP
	for _, s := range card.All {
		if b.MinLength[s] > p.minLength[s] {
			p.minLength[s] = b.MinLength[s]
		}
		if b.Stoppers[s] {
			p.stoppers[s] = true
		}
		if b.ShownGenuine[s] {
			p.shownGenuine[s] = true
		}
	}
	if b.MaxHCP-b.MinHCP <= 3 {
		p.hasLimitedHand = true
	}
}

// widen combines the running profile's HCP bounds with a new call's bounds
// by narrowing the range further (a partnership's information about its
// own hand only ever accumulates: the minimum can rise and the maximum can
// fall as more calls are made), unlike the across-candidate join in
// package rules which widens.
func widen(cur, next rules.Bounds) rules.Bounds {
	out := cur
	if next.MinHCP > out.MinHCP {
		out.MinHCP = next.MinHCP
	}
	if next.MaxHCP < out.MaxHCP {
		out.MaxHCP = next.MaxHCP
	}
	return out
}

// firstBidIndex returns the index of seat's first bid, or -1.
func firstBidIndex(a *bidding.AuctionHistory, seat bidding.Position) int {
	for i, c := range a.Calls {
		if a.PositionOf(i) == seat && c.IsBid() {
			return i
		}
	}
	return -1
}

// candidateBounds finds every variant, across every rule whose call token
// matches the actual call made, that is a plausible candidate given the
// context the caller was in, and joins their Bounds across candidates (the
// across-candidate join widens: min of mins, max of maxes).
func candidateBounds(rs *rules.RuleSet, prefixBeforeCall *bidding.AuctionHistory, caller bidding.Position, call bidding.Call) (rules.Bounds, bool) {
	ctxTags := context.Classify(prefixBeforeCall)
	var candidates []rules.Bounds

	for _, tag := range ctxTags {
		for _, r := range rs.RulesInContext(tag) {
			parsed, err := bidding.ParseCall(r.Call)
			if err != nil || parsed != call {
				continue
			}
			for i := range r.Variants {
				candidates = append(candidates, rules.ExtractBounds(&r.Variants[i]))
			}
		}
	}

	if len(candidates) == 0 {
		return rules.Bounds{}, false
	}
	joined := candidates[0]
	for _, b := range candidates[1:] {
		joined = joined.Join(b)
	}
	return joined, true
}

// heuristicBounds is the coarse natural-bidding fallback used when a
// partner call matches no schema rule at all: 1-level suit bids show 4+
// cards and an opening hand, 2-level shows 5+, 3+ shows 6+; notrump bids
// use the standard 1NT/2NT/3NT point ranges.
func heuristicBounds(call bidding.Call) rules.Bounds {
	b := rules.Bounds{MaxHCP: 37}
	if call.Strain == bidding.Notrump {
		switch call.Level {
		case 1:
			b.MinHCP, b.MaxHCP = 15, 17
		case 2:
			b.MinHCP, b.MaxHCP = 20, 21
		case 3:
			b.MinHCP = 25
		default:
			b.MinHCP = 13
		}
		return b
	}
	b.MinHCP = 13
	switch {
	case call.Level == 1:
		b.MinLength[call.Strain] = 4
	case call.Level == 2:
		b.MinLength[call.Strain] = 5
	default:
		b.MinLength[call.Strain] = 6
	}
	b.ShownGenuine[call.Strain] = true
	return b
}
