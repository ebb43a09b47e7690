package card

import "testing"

// parseSuits builds a hand from a "clubs.diamonds.hearts.spades" string like
// "AKQJT98765432..." (each dot separates a suit's ranks), matching the
// notation used by the SAYC engine's own test fixtures.
func parseSuits(t *testing.T, spec string) Hand {
	t.Helper()
	suits := []Suit{Clubs, Diamonds, Hearts, Spades}
	var cards []Card
	group := 0
	for i := 0; i < len(spec); i++ {
		c := spec[i]
		if c == '.' {
			group++
			continue
		}
		r, ok := RankFromChar(c)
		if !ok {
			t.Fatalf("bad rank char %q in %q", c, spec)
		}
		cards = append(cards, Card{Suit: suits[group], Rank: r})
	}
	h, err := New(cards)
	if err != nil {
		t.Fatalf("New(%q): %v", spec, err)
	}
	return h
}

func TestHCP(t *testing.T) {
	// AKQJ clubs, AKQ diamonds, AKQ hearts, AKQ spades = 4+3+2+1 + 4+3+2 x3
	h := parseSuits(t, "AKQJ.AKQ.AKQ.AKQ")
	if got, want := h.HCP(), 4+3+2+1+4+3+2+4+3+2+4+3+2; got != want {
		t.Errorf("HCP() = %d, want %d", got, want)
	}
}

func TestLengthsSumToThirteen(t *testing.T) {
	h := parseSuits(t, "AKQJ2.AKQ.AK.AKQ")
	sum := 0
	for _, s := range All {
		sum += h.Length(s)
	}
	if sum != 13 {
		t.Errorf("sum of lengths = %d, want 13", sum)
	}
}

func TestClassifyBalanced(t *testing.T) {
	cases := []string{
		"AKQ.AKQ.AKQ.AKQJ",     // 4-3-3-3
		"AK.AKQ.AKQJ.AKQJ",     // 4-4-3-2
		"AK.AKQ.AKQ.AKQJT",     // 5-3-3-2
	}
	for _, spec := range cases {
		h := parseSuits(t, spec)
		if h.Classify() != Balanced {
			t.Errorf("Classify(%q) = %v, want Balanced (shape %v)", spec, h.Classify(), h.SortedShape())
		}
	}
}

func TestClassifySemiBalanced(t *testing.T) {
	cases := []string{
		"AK.AK.AKQJ.AKQJT",  // 5-4-2-2
		"AK.AK.AKQ.AKQJT9",  // 6-3-2-2
		"A.AKQ.AKQJ.AKQJT",  // 5-4-3-1
	}
	for _, spec := range cases {
		h := parseSuits(t, spec)
		if h.Classify() != SemiBalanced {
			t.Errorf("Classify(%q) = %v, want SemiBalanced (shape %v)", spec, h.Classify(), h.SortedShape())
		}
	}
}

func TestClassifyUnbalanced(t *testing.T) {
	cases := []string{
		".AKQJ.AKQJ.AKQJT", // 5-4-4-0, has a void
		"A.AK.AKQ.AKQJT98", // 7-3-2-1
	}
	for _, spec := range cases {
		h := parseSuits(t, spec)
		if h.Classify() != Unbalanced {
			t.Errorf("Classify(%q) = %v, want Unbalanced (shape %v)", spec, h.Classify(), h.SortedShape())
		}
	}
}

func TestTopHonors(t *testing.T) {
	// hearts holds A,Q,7,5,3 -> 2 of top 3, 2 of top 5
	h := parseSuits(t, "432.32.AQ753.432")
	if got := h.TopHonors(Hearts, 3); got != 2 {
		t.Errorf("TopHonors(Hearts,3) = %d, want 2", got)
	}

	// clubs holds K,8,4,3,2 -> 1 of top 3, 1 of top 5
	h2 := parseSuits(t, "K8432.432.432.32")
	if got := h2.TopHonors(Clubs, 3); got != 1 {
		t.Errorf("TopHonors(Clubs,3) = %d, want 1", got)
	}
	if got := h2.TopHonors(Clubs, 5); got != 1 {
		t.Errorf("TopHonors(Clubs,5) = %d, want 1", got)
	}
}

func TestHasStopper(t *testing.T) {
	// spades: bare ace is a stopper
	h := parseSuits(t, "5432.5432.5432.A")
	if !h.HasStopper(Spades) {
		t.Errorf("bare ace should be a stopper")
	}
	// A single king (length 1) is not a stopper.
	h2, err := New(append([]Card{{Suit: Spades, Rank: King}}, fillOtherSuits(12)...))
	if err != nil {
		t.Fatal(err)
	}
	if h2.HasStopper(Spades) {
		t.Errorf("singleton king should not be a stopper")
	}
}

func TestHasStopperQxx(t *testing.T) {
	h := parseSuits(t, "5432.5432.32.QT2")
	if !h.HasStopper(Spades) {
		t.Errorf("Qxx should be a stopper")
	}
	h2 := parseSuits(t, "5432.5432.432.QT")
	if h2.HasStopper(Spades) {
		t.Errorf("Qx should not be a stopper")
	}
}

func TestRuleOfTwenty(t *testing.T) {
	// 11 HCP + 6 + 4 = 21 >= 20
	h := parseSuits(t, "AK9832.KJ87.32.4")
	if !h.RuleOfTwenty() {
		t.Errorf("expected Rule of Twenty to be satisfied, hcp=%d shape=%v", h.HCP(), h.SortedShape())
	}
}

// fillOtherSuits returns n filler cards in diamonds/hearts/clubs low ranks,
// used by tests that only care about one suit's holding.
func fillOtherSuits(n int) []Card {
	ranks := []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen}
	suits := []Suit{Diamonds, Hearts, Clubs}
	var cards []Card
	for i := 0; i < n; i++ {
		cards = append(cards, Card{Suit: suits[i%len(suits)], Rank: ranks[i/len(suits)]})
	}
	return cards
}
