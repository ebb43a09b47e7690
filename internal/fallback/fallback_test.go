package fallback

import (
	"testing"

	"github.com/lox/bridgebot/internal/bidding"
	"github.com/lox/bridgebot/internal/card"
)

// fakePartner is a minimal evalctx.PartnerView for exercising Choose/
// generateCandidates without going through the real inferencer.
type fakePartner struct {
	minHCP, maxHCP int
	minLength      map[card.Suit]int
	stoppers       map[card.Suit]bool
	genuine        map[card.Suit]bool
}

func (p fakePartner) MinHCP() int { return p.minHCP }
func (p fakePartner) MaxHCP() int { return p.maxHCP }
func (p fakePartner) MinLength(s card.Suit) int {
	if p.minLength == nil {
		return 0
	}
	return p.minLength[s]
}
func (p fakePartner) HasStopper(s card.Suit) bool {
	return p.stoppers != nil && p.stoppers[s]
}
func (p fakePartner) ShownGenuineSuit(s card.Suit) bool {
	return p.genuine != nil && p.genuine[s]
}

func mustHand(t *testing.T, spec string) card.Hand {
	t.Helper()
	suits := []card.Suit{card.Clubs, card.Diamonds, card.Hearts, card.Spades}
	var cards []card.Card
	group := 0
	for i := 0; i < len(spec); i++ {
		c := spec[i]
		if c == '.' {
			group++
			continue
		}
		r, ok := card.RankFromChar(c)
		if !ok {
			t.Fatalf("bad rank char %q in %q", c, spec)
		}
		cards = append(cards, card.Card{Suit: suits[group], Rank: r})
	}
	h, err := card.New(cards)
	if err != nil {
		t.Fatalf("card.New(%q): %v", spec, err)
	}
	return h
}

func TestChooseYarboroughPasses(t *testing.T) {
	// A 0-HCP hand facing a 0-minimum partner never clears the level-1
	// sound-points threshold (16 combined) or the 8-card LOTT floor for any
	// suit, and isn't balanced-with-stoppers either: no candidate at all is
	// generated, so Choose must fall back to Pass.
	hand := mustHand(t, "432.432.432.5432") // 4-card spades, 0 HCP, balanced
	partner := fakePartner{minHCP: 0, maxHCP: 40}
	auction := bidding.NewAuction(bidding.North)
	auction.AddCall(bidding.Pass)

	interp := Choose(hand, partner, auction, bidding.South, true)
	if interp.Call != bidding.Pass {
		t.Fatalf("Choose() = %v, want Pass (nothing justified)", interp.Call)
	}
}

func TestChooseRaisesFitToGameByLOTT(t *testing.T) {
	// Own hand: 4 spades, low points. Partner shown 6+ spades (a big fit),
	// combined length 10+ drives the Law of Total Tricks to game (10-6=4).
	hand := mustHand(t, "432.432.432.AQ32") // spades A Q 3 2 = 4 cards, some HCP
	partner := fakePartner{
		minHCP:    6,
		maxHCP:    10,
		minLength: map[card.Suit]int{card.Spades: 6},
	}
	auction := bidding.NewAuction(bidding.North)
	auction.AddCall(bidding.Bid(1, bidding.SpadesStrain))
	auction.AddCall(bidding.Pass)

	interp := Choose(hand, partner, auction, bidding.South, true)
	if interp.Call.Strain != bidding.SpadesStrain {
		t.Errorf("Choose() call = %v, want a spades raise", interp.Call)
	}
	if interp.Call.Level != 4 {
		t.Errorf("Choose() level = %d, want game (4) driven by combined length 10", interp.Call.Level)
	}
}

func TestChooseRaisesOneLevelHigherNonVulnerable(t *testing.T) {
	// Same fit as above, but non-vulnerable: the rule of 2-3-4 lets the
	// LOTT-justified level (10-6=4) go one level higher, to 5.
	hand := mustHand(t, "432.432.432.AQ32")
	partner := fakePartner{
		minHCP:    6,
		maxHCP:    10,
		minLength: map[card.Suit]int{card.Spades: 6},
	}
	auction := bidding.NewAuction(bidding.North)
	auction.AddCall(bidding.Bid(1, bidding.SpadesStrain))
	auction.AddCall(bidding.Pass)

	interp := Choose(hand, partner, auction, bidding.South, false)
	if interp.Call != bidding.Bid(5, bidding.SpadesStrain) {
		t.Errorf("Choose() non-vulnerable = %v, want 5S (LOTT level 4, bumped by rule of 2-3-4)", interp.Call)
	}
}

func TestChooseLOTTPreemptNonVulnerableThirdSeat(t *testing.T) {
	// spec.md §8 scenario 5: 7-3-2-1 shape, 5 HCP, 7-card club suit, partner
	// assumed to hold only 1 club. LOTT gives level 7+1-6=2; non-vulnerable,
	// the rule of 2-3-4 bumps that to level 3, so 3C.
	hand := mustHand(t, "KQT9876.432.32.5") // clubs KQT9876 (7), diamonds 432 (3), hearts 32 (2), spades 5 (1)
	partner := fakePartner{minHCP: 0, maxHCP: 40, minLength: map[card.Suit]int{card.Clubs: 1}}
	auction := bidding.NewAuction(bidding.North)
	auction.AddCall(bidding.Pass)
	auction.AddCall(bidding.Pass)

	interp := Choose(hand, partner, auction, bidding.South, false)
	if interp.Call != bidding.Bid(3, bidding.ClubsStrain) {
		t.Errorf("Choose() = %v, want 3C (LOTT level 2 bumped to 3 non-vulnerable)", interp.Call)
	}
}

func TestChooseNeverFailsWithNoLegalCandidate(t *testing.T) {
	// Auction already complete: no call can ever be legal, so Choose must
	// fall back to the indeterminate Pass branch without panicking.
	hand := mustHand(t, "AKQJ.AKQ.AKQ.AKQ")
	partner := fakePartner{minHCP: 10, maxHCP: 15}
	auction := &bidding.AuctionHistory{Dealer: bidding.North}
	auction.AddCall(bidding.Pass)
	auction.AddCall(bidding.Pass)
	auction.AddCall(bidding.Pass)
	auction.AddCall(bidding.Pass)

	interp := Choose(hand, partner, auction, bidding.North, false)
	if interp.Call != bidding.Pass {
		t.Errorf("Choose() on a complete auction = %v, want Pass", interp.Call)
	}
	if interp.RuleName != "natural-fallback/no-rule-matched" {
		t.Errorf("RuleName = %q, want the no-rule-matched fallback name", interp.RuleName)
	}
}

func TestLevelBySoundPointsMonotonic(t *testing.T) {
	if got := levelBySoundPoints(0, false); got != 0 {
		t.Errorf("levelBySoundPoints(0, false) = %d, want 0 (below the level-1 threshold of 16)", got)
	}
	if got := levelBySoundPoints(16, false); got != 1 {
		t.Errorf("levelBySoundPoints(16, false) = %d, want 1", got)
	}
	if got := levelBySoundPoints(25, false); got < 4 {
		t.Errorf("levelBySoundPoints(25, false) = %d, want at least game level", got)
	}
	if got := levelBySoundPoints(37, false); got != 7 {
		t.Errorf("levelBySoundPoints(37, false) = %d, want 7 (grand slam threshold)", got)
	}
}

func TestZoneForCall(t *testing.T) {
	cases := []struct {
		call bidding.Call
		want Zone
	}{
		{bidding.Bid(1, bidding.Notrump), Partscore},
		{bidding.Bid(3, bidding.Notrump), Game},
		{bidding.Bid(4, bidding.SpadesStrain), Game},
		{bidding.Bid(3, bidding.SpadesStrain), Partscore},
		{bidding.Bid(5, bidding.ClubsStrain), Game},
		{bidding.Bid(6, bidding.ClubsStrain), Slam},
	}
	for _, c := range cases {
		if got := zoneForCall(c.call); got != c.want {
			t.Errorf("zoneForCall(%v) = %v, want %v", c.call, got, c.want)
		}
	}
}

func TestPreferOverSlamBeatsGame(t *testing.T) {
	slam := Candidate{Call: bidding.Bid(6, bidding.SpadesStrain), Zone: Slam, IsMajor: true, IsFit: true}
	game := Candidate{Call: bidding.Bid(4, bidding.SpadesStrain), Zone: Game, IsMajor: true, IsFit: true}
	auction := bidding.NewAuction(bidding.North)
	if !preferOver(slam, game, auction, bidding.North) {
		t.Errorf("preferOver: slam should beat game")
	}
	if preferOver(game, slam, auction, bidding.North) {
		t.Errorf("preferOver: game should not beat slam")
	}
}

func TestPreferOverMajorGameBeatsNotrumpGame(t *testing.T) {
	major := Candidate{Call: bidding.Bid(4, bidding.SpadesStrain), Zone: Game, IsMajor: true, IsFit: true}
	nt := Candidate{Call: bidding.Bid(3, bidding.Notrump), Zone: Game, AllStopped: true}
	auction := bidding.NewAuction(bidding.North)
	if !preferOver(major, nt, auction, bidding.North) {
		t.Errorf("preferOver: major game with a fit should beat all-stopped NT game")
	}
}

func TestPreferOverCheaperWinsTies(t *testing.T) {
	cheap := Candidate{Call: bidding.Bid(2, bidding.ClubsStrain), Zone: Partscore}
	costly := Candidate{Call: bidding.Bid(3, bidding.ClubsStrain), Zone: Partscore}
	auction := bidding.NewAuction(bidding.North)
	if !preferOver(cheap, costly, auction, bidding.North) {
		t.Errorf("preferOver: cheaper call should win among equal-tier partscore bids")
	}
}

func TestPreferOverDoesNotReRaiseReachedGame(t *testing.T) {
	auction := bidding.NewAuction(bidding.North)
	auction.AddCall(bidding.Pass)                         // North
	auction.AddCall(bidding.Bid(4, bidding.SpadesStrain)) // East already bid game in spades
	auction.AddCall(bidding.Pass)                         // South

	candidate := Candidate{Call: bidding.Bid(5, bidding.SpadesStrain), Zone: Game, IsMajor: true, IsFit: true}
	current := Candidate{Call: bidding.Bid(3, bidding.Notrump), Zone: Game, AllStopped: true}
	if preferOver(candidate, current, auction, bidding.East) {
		t.Errorf("preferOver: should not re-raise a strain the partnership already reached game in")
	}
}
