package evalctx

import (
	"testing"

	"github.com/lox/bridgebot/internal/bidding"
	"github.com/lox/bridgebot/internal/card"
	"github.com/lox/bridgebot/internal/rules"
)

type fakePartner struct {
	minHCP, maxHCP int
	minLength      map[card.Suit]int
}

func (p fakePartner) MinHCP() int                       { return p.minHCP }
func (p fakePartner) MaxHCP() int                       { return p.maxHCP }
func (p fakePartner) MinLength(s card.Suit) int         { return p.minLength[s] }
func (p fakePartner) HasStopper(s card.Suit) bool       { return false }
func (p fakePartner) ShownGenuineSuit(s card.Suit) bool { return false }

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

func exactAceCountVariant(count int) *rules.Variant {
	return &rules.Variant{
		Name:     "test-ace-count",
		Priority: 10,
		Constraints: []rules.Constraint{
			{Type: rules.ConstraintExactAceCount, Count: count},
		},
	}
}

func TestMatchVariantExactAceCountZero(t *testing.T) {
	hand := mustHand(t, "432.432.432.5432") // no aces
	req := Request{Hand: hand, Partner: fakePartner{}, Seat: bidding.North}
	if !MatchVariant(req, exactAceCountVariant(0)) {
		t.Errorf("MatchVariant: 0-ace hand should match exact_ace_count count=0")
	}
	if MatchVariant(req, exactAceCountVariant(4)) {
		t.Errorf("MatchVariant: 0-ace hand should not match exact_ace_count count=4")
	}
}

func TestMatchVariantExactAceCountFour(t *testing.T) {
	// All four aces: the blackwood-response-4-aces case a plain count=0
	// constraint would otherwise miss.
	hand := mustHand(t, "A32.A32.A2.A2345")
	if hand.AceCount() != 4 {
		t.Fatalf("AceCount() = %d, want 4", hand.AceCount())
	}
	req := Request{Hand: hand, Partner: fakePartner{}, Seat: bidding.North}
	if MatchVariant(req, exactAceCountVariant(0)) {
		t.Errorf("MatchVariant: 4-ace hand should not match exact_ace_count count=0")
	}
	if !MatchVariant(req, exactAceCountVariant(4)) {
		t.Errorf("MatchVariant: 4-ace hand should match exact_ace_count count=4")
	}
}

func TestEvaluateVariantReportsEveryConstraint(t *testing.T) {
	hand := mustHand(t, "AKQJ2.A32.32.432") // 14 HCP, only 2 hearts
	partner := fakePartner{minHCP: 0, maxHCP: 40}
	req := Request{Hand: hand, Partner: partner, Seat: bidding.North}
	v := &rules.Variant{
		Name: "mixed",
		Constraints: []rules.Constraint{
			{Type: rules.ConstraintMinHCP, Min: 12},                        // passes: 14 >= 12
			{Type: rules.ConstraintMinLength, Suit: card.Hearts, Count: 5}, // fails: 2 hearts
		},
	}
	ok, results := EvaluateVariant(req, v)
	if ok {
		t.Errorf("EvaluateVariant() ok = true, want false (heart length constraint fails)")
	}
	if len(results) != 2 {
		t.Fatalf("EvaluateVariant() returned %d results, want 2 (no short-circuit)", len(results))
	}
	if !results[0].Passed {
		t.Errorf("results[0].Passed = false, want true (min_hcp 12 satisfied)")
	}
	if results[1].Passed {
		t.Errorf("results[1].Passed = true, want false (min_length hearts 5 not satisfied)")
	}
}

func TestDescribeConstraintRendersEachType(t *testing.T) {
	cases := []rules.Constraint{
		{Type: rules.ConstraintMinHCP, Min: 15},
		{Type: rules.ConstraintExactAceCount, Count: 4},
		{Type: rules.ConstraintMinLength, Suit: card.Spades, Count: 5},
	}
	for _, c := range cases {
		if got := DescribeConstraint(c); got == "" {
			t.Errorf("DescribeConstraint(%v) returned empty string", c)
		}
	}
}
