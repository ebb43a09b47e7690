package card

import (
	"fmt"
	"math/bits"
	"sort"

	"gopkg.in/yaml.v3"
)

// Hand is a 13-card bridge hand, held as a 52-bit set (one bit per Card.ID).
// The layout mirrors the poker evaluator's bit-packed representation: each
// suit occupies a contiguous 13-bit lane, so per-suit masks and popcounts are
// single shift-and-mask operations rather than a loop over 13 cards.
type Hand uint64

const suitLaneWidth = 13
const suitLaneMask = uint64(1<<suitLaneWidth) - 1

// ErrInvalidHand is returned when a hand cannot be built from the given
// cards: not exactly 13 of them, or a duplicate.
type ErrInvalidHand struct {
	Reason string
}

func (e *ErrInvalidHand) Error() string { return fmt.Sprintf("invalid hand: %s", e.Reason) }

// New builds a Hand from exactly 13 distinct cards. Supplying any other
// count, or a duplicate card, is a programmer error and returns
// ErrInvalidHand.
func New(cards []Card) (Hand, error) {
	if len(cards) != 13 {
		return 0, &ErrInvalidHand{Reason: fmt.Sprintf("need exactly 13 cards, got %d", len(cards))}
	}
	var h Hand
	for _, c := range cards {
		bit := Hand(1) << uint(c.ID())
		if h&bit != 0 {
			return 0, &ErrInvalidHand{Reason: fmt.Sprintf("duplicate card %s", c)}
		}
		h |= bit
	}
	return h, nil
}

// HasCard reports whether the hand holds the given card.
func (h Hand) HasCard(c Card) bool {
	return h&(Hand(1)<<uint(c.ID())) != 0
}

// Count returns the number of cards in the hand.
func (h Hand) Count() int {
	return bits.OnesCount64(uint64(h))
}

// SuitMask returns the 13-bit rank mask for the given suit; bit i set means
// rank Rank(i) is present.
func (h Hand) SuitMask(s Suit) uint16 {
	offset := uint(s) * suitLaneWidth
	return uint16((uint64(h) >> offset) & suitLaneMask)
}

// Length returns the number of cards held in the given suit.
func (h Hand) Length(s Suit) int {
	return bits.OnesCount16(h.SuitMask(s))
}

// Cards returns the hand's 13 cards in no particular order.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, 13)
	for id := 0; id < 52; id++ {
		if h&(Hand(1)<<uint(id)) != 0 {
			c, _ := FromID(id)
			cards = append(cards, c)
		}
	}
	return cards
}

// HCP returns the hand's high-card point count: 4·A + 3·K + 2·Q + 1·J.
func (h Hand) HCP() int {
	total := 0
	for _, s := range All {
		mask := h.SuitMask(s)
		if mask&(1<<uint(Ace)) != 0 {
			total += 4
		}
		if mask&(1<<uint(King)) != 0 {
			total += 3
		}
		if mask&(1<<uint(Queen)) != 0 {
			total += 2
		}
		if mask&(1<<uint(Jack)) != 0 {
			total += 1
		}
	}
	return total
}

// Distribution returns the suit lengths, indexed by Suit.
type Distribution [4]int

// Lengths returns the hand's per-suit lengths, indexed by Suit (Clubs=0..Spades=3).
func (h Hand) Lengths() Distribution {
	var d Distribution
	for _, s := range All {
		d[s] = h.Length(s)
	}
	return d
}

// SortedShape returns the suit lengths sorted descending, e.g. {5,4,3,1}.
func (h Hand) SortedShape() [4]int {
	d := h.Lengths()
	shape := [4]int{d[0], d[1], d[2], d[3]}
	sort.Sort(sort.Reverse(sort.IntSlice(shape[:])))
	return shape
}

// Shape classifies the hand's distribution.
type Shape int

const (
	Unbalanced Shape = iota
	SemiBalanced
	Balanced
)

func (s Shape) String() string {
	switch s {
	case Balanced:
		return "balanced"
	case SemiBalanced:
		return "semi-balanced"
	default:
		return "unbalanced"
	}
}

// LessRestrictive reports whether s allows more shapes than other, i.e.
// s == Unbalanced is the least restrictive, Balanced the most. Used by the
// partner-profile inferencer's lattice join over MaxShape bounds.
func (s Shape) LessRestrictive(other Shape) bool { return s < other }

// UnmarshalYAML lets rule shards write "balanced" / "semi_balanced" /
// "unbalanced" instead of raw integers.
func (s *Shape) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	switch name {
	case "balanced":
		*s = Balanced
	case "semi_balanced":
		*s = SemiBalanced
	case "unbalanced":
		*s = Unbalanced
	default:
		return fmt.Errorf("card: unknown hand shape class %q", name)
	}
	return nil
}

// Classify returns the hand's Shape per spec: Balanced has no void, no
// singleton, and at most one doubleton (4-3-3-3, 4-4-3-2, 5-3-3-2).
// SemiBalanced additionally allows 5-4-2-2/6-3-2-2 (two doubletons, longest
// suit <=6, no void) or a single singleton (5-4-3-1) with longest suit <=6.
// Everything else, including any void, is Unbalanced.
func (h Hand) Classify() Shape {
	shape := h.SortedShape()
	longest := shape[0]
	var doubletons, singletons, voids int
	for _, l := range shape {
		switch l {
		case 2:
			doubletons++
		case 1:
			singletons++
		case 0:
			voids++
		}
	}
	switch {
	case singletons == 0 && voids == 0 && doubletons <= 1:
		return Balanced
	case voids == 0 && longest <= 6 && (singletons == 1 || doubletons == 2):
		return SemiBalanced
	default:
		return Unbalanced
	}
}

// IsBalanced reports whether Classify() == Balanced.
func (h Hand) IsBalanced() bool { return h.Classify() == Balanced }

// IsSemiBalanced reports whether Classify() == SemiBalanced.
func (h Hand) IsSemiBalanced() bool { return h.Classify() == SemiBalanced }

// TopHonors counts how many of the top n honor ranks (A,K,Q,J,T, in that
// order) the hand holds in the given suit. TopHonors(s, 3) counts among
// {A,K,Q}; TopHonors(s, 5) counts among {A,K,Q,J,T}.
func (h Hand) TopHonors(s Suit, n int) int {
	honors := [5]Rank{Ace, King, Queen, Jack, Ten}
	if n > len(honors) {
		n = len(honors)
	}
	mask := h.SuitMask(s)
	count := 0
	for _, r := range honors[:n] {
		if mask&(1<<uint(r)) != 0 {
			count++
		}
	}
	return count
}

// SuitQuality classifies a suit's honor strength for length-showing bids.
type SuitQuality int

const (
	Poor SuitQuality = iota
	Decent
	Good
	Strong
)

// UnmarshalYAML lets rule shards write "poor" / "decent" / "good" / "strong"
// instead of raw integers.
func (sq *SuitQuality) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	switch name {
	case "poor":
		*sq = Poor
	case "decent":
		*sq = Decent
	case "good":
		*sq = Good
	case "strong":
		*sq = Strong
	default:
		return fmt.Errorf("card: unknown suit quality %q", name)
	}
	return nil
}

func (sq SuitQuality) String() string {
	switch sq {
	case Strong:
		return "strong"
	case Good:
		return "good"
	case Decent:
		return "decent"
	default:
		return "poor"
	}
}

// Quality scores suit texture from the count of top-3 and top-5 honors:
// Strong: 3 of top 3 (AKQ), or 4+ of top 5.
// Good:   2 of top 3, or 3 of top 5.
// Decent: 1 of top 3 with at least 2 of top 5, or exactly 2 of top 5.
// Poor:   otherwise.
func (h Hand) Quality(s Suit) SuitQuality {
	top3 := h.TopHonors(s, 3)
	top5 := h.TopHonors(s, 5)
	switch {
	case top3 >= 3 || top5 >= 4:
		return Strong
	case top3 >= 2 || top5 >= 3:
		return Good
	case top5 >= 2:
		return Decent
	default:
		return Poor
	}
}

// HasStopper reports whether the hand holds a stopper in the given suit:
// A; or Kx+ (king plus at least one more card); or Qxx+ (queen, length>=3);
// or Jxxx+ (jack, length>=4). Grounded on the SAYC engine rewrite's
// has_stopper (ace, or king with a low card, or queen with two low cards, or
// jack with three low cards) rather than any length-only heuristic.
func (h Hand) HasStopper(s Suit) bool {
	mask := h.SuitMask(s)
	length := bits.OnesCount16(mask)
	has := func(r Rank) bool { return mask&(1<<uint(r)) != 0 }
	switch {
	case has(Ace):
		return true
	case has(King) && length >= 2:
		return true
	case has(Queen) && length >= 3:
		return true
	case has(Jack) && length >= 4:
		return true
	default:
		return false
	}
}

// RuleOfTwenty reports whether HCP plus the lengths of the two longest suits
// is at least 20 (a fourth-seat / marginal opening heuristic).
func (h Hand) RuleOfTwenty() bool {
	shape := h.SortedShape()
	return h.HCP()+shape[0]+shape[1] >= 20
}

// RuleOfFifteen reports whether HCP plus spade length is at least 15 (the
// balancing-seat opening heuristic in 4th seat with short values).
func (h Hand) RuleOfFifteen() bool {
	return h.HCP()+h.Length(Spades) >= 15
}

// AceCount returns the number of aces held, for Blackwood-style ace-asking
// responses.
func (h Hand) AceCount() int {
	count := 0
	for _, s := range All {
		if h.SuitMask(s)&(1<<uint(Ace)) != 0 {
			count++
		}
	}
	return count
}
