// Package context implements the context classifier (C5): from the auction
// so far, decide which rule families apply to the seat about to call.
package context

import (
	"github.com/lox/bridgebot/internal/bidding"
	"github.com/lox/bridgebot/internal/rules"
)

// Classify returns every context tag applicable to the seat on turn in a,
// in the order they should be consulted (opening-like contexts before
// competitive ones). The result can have more than one tag: a seat can
// simultaneously be "responder to partner's 1NT" and "in competition".
func Classify(a *bidding.AuctionHistory) []rules.Context {
	seat := a.CurrentTurn()
	calls := a.Calls

	if len(calls) == 0 {
		return []rules.Context{rules.ContextOpening}
	}

	idx, lastBid := a.LastBid()
	if idx < 0 {
		tags := []rules.Context{rules.ContextOpening}
		if wouldPassOut(a) {
			tags = append(tags, rules.ContextBalancing)
		}
		return tags
	}

	bidderSeat := a.PositionOf(idx)
	seatOpened, _ := firstBidBySeat(a, seat)
	partnerOpened, partnerOpenedIdx := firstBidBySeat(a, seat.Partner())

	var tags []rules.Context

	if isArtificialStrongClub(a, partnerOpenedIdx) {
		tags = append(tags, rules.ContextStrongClubContinuation)
	}
	if isSlamAsk(lastBid) && bidderSeat.SamePartnership(seat) {
		tags = append(tags, rules.ContextAfterBlackwood, rules.ContextAfterSlamAsk)
	}

	switch {
	case partnerOpened && seatRespondingToPartner(a, seat):
		tags = append(tags, rules.ContextResponse)
		if isPreemptOpening(firstBidValue(a, seat.Partner())) {
			tags = append(tags, rules.ContextPreempt)
		}
	case seatOpened && seatIsRebidding(a, seat):
		tags = append(tags, rules.ContextOpenerRebid)
	case partnerOpened && seatIsRebidding(a, seat):
		tags = append(tags, rules.ContextResponderRebid)
	case !bidderSeat.SamePartnership(seat) && !seatHasActed(a, seat):
		tags = append(tags, rules.ContextOvercall)
	}

	if _, lastNonPass := a.LastNonPass(); lastNonPass.Kind == bidding.KindDouble {
		doublerIdx, _ := a.LastNonPass()
		doubler := a.PositionOf(doublerIdx)
		if !doubler.SamePartnership(seat) {
			if isTakeoutPosition(a, doublerIdx) {
				tags = append(tags, rules.ContextTakeoutDouble)
			} else {
				tags = append(tags, rules.ContextNegativeDouble)
			}
		}
	}

	if wouldPassOut(a) {
		tags = append(tags, rules.ContextBalancing)
	}

	if len(tags) == 0 {
		tags = []rules.Context{rules.ContextOpening}
	}
	return tags
}

// wouldPassOut reports whether the auction would terminate if the seat on
// turn passed, i.e. this is the last chance to reopen the bidding.
func wouldPassOut(a *bidding.AuctionHistory) bool {
	if !a.IsOpen() {
		return false
	}
	extended := a.Clone()
	extended.AddCall(bidding.Pass)
	return extended.IsComplete()
}

// firstBidBySeat reports whether seat has made a bid (not pass/double/
// redouble) yet, and the index of their first one.
func firstBidBySeat(a *bidding.AuctionHistory, seat bidding.Position) (bool, int) {
	for i, c := range a.Calls {
		if a.PositionOf(i) == seat && c.IsBid() {
			return true, i
		}
	}
	return false, -1
}

func firstBidValue(a *bidding.AuctionHistory, seat bidding.Position) bidding.Call {
	_, idx := firstBidBySeat(a, seat)
	if idx < 0 {
		return bidding.Call{}
	}
	return a.Calls[idx]
}

// seatIsRebidding reports whether seat has already made a bid earlier in
// the auction (so any further bid from them is a rebid, not a first call).
func seatIsRebidding(a *bidding.AuctionHistory, seat bidding.Position) bool {
	count := 0
	for i, c := range a.Calls {
		if a.PositionOf(i) == seat && c.IsBid() {
			count++
		}
	}
	return count >= 1
}

// seatHasActed reports whether seat has made any call at all yet.
func seatHasActed(a *bidding.AuctionHistory, seat bidding.Position) bool {
	for i := range a.Calls {
		if a.PositionOf(i) == seat {
			return true
		}
	}
	return false
}

// seatRespondingToPartner reports whether seat's partner opened and seat
// has not yet made a bid of its own (first response, not a rebid).
func seatRespondingToPartner(a *bidding.AuctionHistory, seat bidding.Position) bool {
	opened, _ := firstBidBySeat(a, seat.Partner())
	return opened && !seatIsRebidding(a, seat)
}

// isPreemptOpening reports whether an opening call shows a preemptive
// (weak, high-level) hand: any opening bid of level 2 or higher in a suit
// (the artificial strong 2C is the one named exception).
func isPreemptOpening(c bidding.Call) bool {
	if !c.IsBid() || c.Strain == bidding.Notrump {
		return false
	}
	if c.Level == 2 && c.Strain == bidding.ClubsStrain {
		return false
	}
	return c.Level >= 2
}

// isArtificialStrongClub reports whether the seat's partner's opening bid
// (at openedIdx) was an artificial strong 2C. Classify uses it to tag the
// opener's partner's calls as a "strong club continuation"; calls by the
// opener or by the opponents are not tagged this way.
func isArtificialStrongClub(a *bidding.AuctionHistory, openedIdx int) bool {
	if openedIdx < 0 {
		return false
	}
	c := a.Calls[openedIdx]
	return c.IsBid() && c.Level == 2 && c.Strain == bidding.ClubsStrain
}

// isSlamAsk reports whether a call is a conventional slam-asking bid
// (4NT Blackwood or its gadget variants); the rule schema's own variants
// carry the authoritative semantics, this only sets context.
func isSlamAsk(c bidding.Call) bool {
	return c.IsBid() && c.Level == 4 && c.Strain == bidding.Notrump
}

// isTakeoutPosition is a simplified heuristic: a double made when at most
// one bid (by either side) precedes it is presumptively takeout;
// a double made later, after the partnership has exchanged information, is
// presumptively negative/penalty. The rule schema's own constraints refine
// this per variant; this only steers which rule family is consulted first.
func isTakeoutPosition(a *bidding.AuctionHistory, doubleIdx int) bool {
	bidsBeforeDouble := 0
	for i := 0; i < doubleIdx; i++ {
		if a.Calls[i].IsBid() {
			bidsBeforeDouble++
		}
	}
	return bidsBeforeDouble <= 1
}
