package fallback

import (
	"github.com/lox/bridgebot/internal/bidding"
	"github.com/lox/bridgebot/internal/card"
	"github.com/lox/bridgebot/internal/evalctx"
)

// Candidate is one strain/level combination the natural fallback justifies
// before the preference hierarchy narrows down to a single call.
type Candidate struct {
	Call           bidding.Call
	Zone           Zone
	CombinedHCP    int
	CombinedLength int // suited candidates only
	AllStopped     bool
	IsMajor        bool
	IsFit          bool // true if partner has shown 4+ cards in the candidate suit and the hand holds 2+
	Forcing        string
}

// Interpretation mirrors selector.Interpretation so C9 can treat a fallback
// choice uniformly with a matched rule.
type Interpretation struct {
	Call        bidding.Call
	RuleName    string
	Description string
	Forcing     string
}

// Choose runs the C8 algorithm: generate every strain/level candidate the
// hand justifies via the sound-points table or the Law of Total Tricks,
// then apply the preference hierarchy to pick one. vulnerable is the
// calling side's vulnerability, which loosens the LOTT-driven level by the
// rule of 2-3-4 when false. When nothing is justified — the
// FallbackIndeterminate case — it returns Pass, which must never fail.
func Choose(hand card.Hand, partner evalctx.PartnerView, auction *bidding.AuctionHistory, seat bidding.Position, vulnerable bool) Interpretation {
	candidates := generateCandidates(hand, partner, auction, vulnerable)

	var legal []Candidate
	for _, c := range candidates {
		if auction.IsLegal(c.Call) {
			legal = append(legal, c)
		}
	}
	if len(legal) == 0 {
		return Interpretation{
			Call:        bidding.Pass,
			RuleName:    "natural-fallback/no-rule-matched",
			Description: "no conventional rule or natural bid justified; passing",
		}
	}

	best := legal[0]
	for _, c := range legal[1:] {
		if preferOver(c, best, auction, seat) {
			best = c
		}
	}
	return Interpretation{
		Call:        best.Call,
		RuleName:    "natural-fallback/" + best.Call.String(),
		Description: describeCandidate(best),
		Forcing:     best.Forcing,
	}
}

// generateCandidates enumerates: a raise of any strain partner has shown
// 4+ cards of, a new bid of any 4+ card suit of the hand's own, and a
// notrump bid when the hand is balanced with stoppers in every suit
// partner hasn't supported.
func generateCandidates(hand card.Hand, partner evalctx.PartnerView, auction *bidding.AuctionHistory, vulnerable bool) []Candidate {
	var out []Candidate
	combinedHCP := hand.HCP() + partner.MinHCP()

	for _, s := range card.All {
		ownLen := hand.Length(s)
		partnerLen := partner.MinLength(s)
		combinedLen := ownLen + partnerLen
		isFit := partnerLen >= 4 && ownLen >= 2
		if !isFit && ownLen < 4 {
			continue
		}

		pointsLevel := levelBySoundPoints(combinedHCP, false)
		lottLevel := SafeLevelByLOTT(combinedLen, vulnerable)
		level := maxInt(pointsLevel, lottLevel)
		if level < 1 {
			continue
		}
		strain := bidding.Strain(s)
		call := bidding.Bid(level, strain)
		out = append(out, Candidate{
			Call:           call,
			Zone:           zoneForCall(call),
			CombinedHCP:    combinedHCP,
			CombinedLength: combinedLen,
			IsMajor:        strain.IsMajor(),
			IsFit:          isFit,
			Forcing:        forcingFor(call, isFit),
		})
	}

	if hand.IsBalanced() {
		allStopped := true
		for _, s := range card.All {
			if partner.MinLength(s) >= 4 {
				continue // partner's suit; no stopper needed there
			}
			if !hand.HasStopper(s) {
				allStopped = false
				break
			}
		}
		if allStopped {
			level := levelBySoundPoints(combinedHCP, true)
			if level >= 1 {
				call := bidding.Bid(level, bidding.Notrump)
				out = append(out, Candidate{
					Call:        call,
					Zone:        zoneForCall(call),
					CombinedHCP: combinedHCP,
					AllStopped:  true,
					Forcing:     forcingFor(call, false),
				})
			}
		}
	}

	return out
}

func levelBySoundPoints(combinedHCP int, notrump bool) int {
	for level := 7; level >= 1; level-- {
		threshold := MinPointsForSuitedBid(level)
		if notrump {
			threshold = MinPointsForNotrumpBid(level)
		}
		if combinedHCP >= threshold {
			return level
		}
	}
	return 0
}

func zoneForCall(c bidding.Call) Zone {
	if c.Level >= 6 {
		return Slam
	}
	switch {
	case c.Strain == bidding.Notrump:
		if c.Level >= 3 {
			return Game
		}
	case c.Strain.IsMajor():
		if c.Level >= 4 {
			return Game
		}
	default:
		if c.Level >= 5 {
			return Game
		}
	}
	return Partscore
}

func forcingFor(c bidding.Call, isFit bool) string {
	switch {
	case c.Level >= 6:
		return "forcing"
	case zoneForCall(c) == Game:
		return "non_forcing"
	case isFit:
		return "invitational"
	default:
		return "non_forcing"
	}
}

// preferOver applies the §4.8 preference hierarchy, top to bottom, stopping
// at the first decisive rule. The no-re-raise check (step 3) runs before the
// game ranking, so a re-raise of a game already reached never wins on its
// strain alone.
func preferOver(candidate, current Candidate, auction *bidding.AuctionHistory, seat bidding.Position) bool {
	// 1. Slam > Game > Partscore.
	if candidate.Zone != current.Zone {
		return candidate.Zone > current.Zone
	}

	// 2. Within slams: notrump slam > suited slam.
	if candidate.Zone == Slam {
		candidateNT := candidate.Call.Strain == bidding.Notrump
		currentNT := current.Call.Strain == bidding.Notrump
		if candidateNT != currentNT {
			return candidateNT
		}
	}

	// 3. Don't re-raise a strain the partnership has already reached game
	// in at a higher non-slam level.
	candidateReRaise := candidate.Zone != Slam && alreadyAtGameLevel(auction, seat, candidate.Call.Strain)
	currentReRaise := current.Zone != Slam && alreadyAtGameLevel(auction, seat, current.Call.Strain)
	if candidateReRaise != currentReRaise {
		return currentReRaise
	}

	// 4. Within games: major > NT > minor, except NT wins when all-stopped
	// and no known 4-4-or-better major fit is in play.
	if candidate.Zone == Game {
		candidateRank := gameRank(candidate)
		currentRank := gameRank(current)
		if candidateRank != currentRank {
			return candidateRank > currentRank
		}
	}

	// 5. Among equal-tier bids, prefer the cheaper (lower) call; a jump is
	// only ever introduced by the sound-points/LOTT computation itself
	// (never by this tie-break), so cheaper always wins here.
	if candidate.Call.Level != current.Call.Level {
		return candidate.Call.Level < current.Call.Level
	}
	return candidate.Call.Strain < current.Call.Strain
}

// gameRank orders game-level candidates per the major > NT > minor rule,
// with the all-stopped exception promoting NT above a major without a
// known 4-4-or-better fit.
func gameRank(c Candidate) int {
	switch {
	case c.IsMajor && c.IsFit:
		return 3
	case c.Call.Strain == bidding.Notrump && c.AllStopped:
		return 2
	case c.IsMajor:
		return 1
	default:
		return 0
	}
}

func alreadyAtGameLevel(auction *bidding.AuctionHistory, seat bidding.Position, strain bidding.Strain) bool {
	idx, bid := auction.LastBid()
	if idx < 0 || !bid.IsBid() {
		return false
	}
	if bid.Strain != strain {
		return false
	}
	if !auction.PositionOf(idx).SamePartnership(seat) {
		return false
	}
	return zoneForCall(bid) == Game
}

func describeCandidate(c Candidate) string {
	switch {
	case c.Zone == Slam:
		return "natural slam try by combined points/fit"
	case c.Zone == Game:
		return "natural game bid by combined points/fit"
	default:
		return "natural partscore bid by combined points/fit"
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
