package bidding

import "testing"

func mustCalls(t *testing.T, csv string) []Call {
	t.Helper()
	calls, err := ParseCalls(csv)
	if err != nil {
		t.Fatalf("ParseCalls(%q): %v", csv, err)
	}
	return calls
}

func TestParseCallRoundTrip(t *testing.T) {
	cases := []string{"P", "X", "XX", "1C", "3N", "7S"}
	for _, tok := range cases {
		c, err := ParseCall(tok)
		if err != nil {
			t.Fatalf("ParseCall(%q): %v", tok, err)
		}
		if got := c.String(); got != tok {
			t.Errorf("ParseCall(%q).String() = %q, want %q", tok, got, tok)
		}
	}
}

func TestParseCallAliases(t *testing.T) {
	cases := map[string]Call{
		"pass":     Pass,
		"dbl":      Double,
		"double":   Double,
		"rdbl":     Redouble,
		"redouble": Redouble,
	}
	for tok, want := range cases {
		got, err := ParseCall(tok)
		if err != nil {
			t.Fatalf("ParseCall(%q): %v", tok, err)
		}
		if got != want {
			t.Errorf("ParseCall(%q) = %v, want %v", tok, got, want)
		}
	}
}

func TestParseCallInvalid(t *testing.T) {
	for _, tok := range []string{"", "Z", "8C", "0N", "1Z"} {
		if _, err := ParseCall(tok); err == nil {
			t.Errorf("ParseCall(%q): expected error", tok)
		}
	}
}

func TestAuctionCurrentTurn(t *testing.T) {
	a := NewAuction(East)
	if got := a.CurrentTurn(); got != East {
		t.Fatalf("CurrentTurn() = %v, want East", got)
	}
	a.AddCall(Pass)
	a.AddCall(Bid(1, Notrump))
	if got := a.CurrentTurn(); got != West {
		t.Fatalf("CurrentTurn() after 2 calls from East = %v, want West", got)
	}
}

func TestAuctionIsCompleteFourPass(t *testing.T) {
	a := &AuctionHistory{Dealer: North, Calls: mustCalls(t, "P,P,P,P")}
	if !a.IsComplete() {
		t.Errorf("four passes should be a complete (passed-out) auction")
	}
}

func TestAuctionIsCompleteThreePassesAfterBid(t *testing.T) {
	a := &AuctionHistory{Dealer: North, Calls: mustCalls(t, "1N,P,P,P")}
	if !a.IsComplete() {
		t.Errorf("1N followed by three passes should be complete")
	}
}

func TestAuctionNotCompleteMidway(t *testing.T) {
	a := &AuctionHistory{Dealer: North, Calls: mustCalls(t, "1N,P,2C,P")}
	if a.IsComplete() {
		t.Errorf("auction with a live response should not be complete")
	}
}

func TestAuctionNotCompleteBelowFourCalls(t *testing.T) {
	a := &AuctionHistory{Dealer: North, Calls: mustCalls(t, "P,P,P")}
	if a.IsComplete() {
		t.Errorf("three calls can never close an auction")
	}
}

func TestValidatePrefixRejectsUnderbid(t *testing.T) {
	calls := mustCalls(t, "1N,P,1C,P")
	if ValidatePrefix(calls) {
		t.Errorf("1C after 1N should be illegal (does not outrank)")
	}
}

func TestValidatePrefixDoubleRequiresOpposingBid(t *testing.T) {
	// double immediately on an empty auction, with no bid yet, is illegal.
	calls := []Call{Double}
	if ValidatePrefix(calls) {
		t.Errorf("double with no preceding bid should be illegal")
	}
	// double of partner's own bid is illegal: North opens 1N (seat 0), East
	// passes (seat 1), South (North's partner, seat 2) may not double it.
	calls = mustCalls(t, "1N,P")
	calls = append(calls, Double)
	if ValidatePrefix(calls) {
		t.Errorf("partner doubling their own side's bid should be illegal")
	}
}

func TestValidatePrefixDoubleOfOpponentBid(t *testing.T) {
	calls := mustCalls(t, "1N,X")
	if !ValidatePrefix(calls) {
		t.Errorf("doubling opponent's 1N should be legal")
	}
}

func TestValidatePrefixRedoubleRequiresDouble(t *testing.T) {
	calls := mustCalls(t, "1N,P,P")
	calls = append(calls, Redouble)
	if ValidatePrefix(calls) {
		t.Errorf("redouble with no preceding double should be illegal")
	}
}

func TestValidatePrefixNoCallAfterFinish(t *testing.T) {
	calls := mustCalls(t, "1N,P,P,P,P")
	if ValidatePrefix(calls) {
		t.Errorf("a call after the auction has finished should be illegal")
	}
}

func TestIsLegalRejectsCompleteAuction(t *testing.T) {
	a := &AuctionHistory{Dealer: North, Calls: mustCalls(t, "1N,P,P,P")}
	if a.IsLegal(Pass) {
		t.Errorf("no call should be legal once the auction is complete")
	}
}

func TestLegalCallsIncludesHigherBidsOnly(t *testing.T) {
	a := &AuctionHistory{Dealer: North, Calls: mustCalls(t, "1H")}
	legal := a.LegalCalls()
	found1C := false
	found1S := false
	for _, c := range legal {
		if c == Bid(1, ClubsStrain) {
			found1C = true
		}
		if c == Bid(1, SpadesStrain) {
			found1S = true
		}
	}
	if found1C {
		t.Errorf("1C should not be legal after 1H")
	}
	if !found1S {
		t.Errorf("1S should be legal after 1H")
	}
}

func TestLastBidSkipsPasses(t *testing.T) {
	a := &AuctionHistory{Dealer: North, Calls: mustCalls(t, "1S,P,4N,P")}
	idx, call := a.LastBid()
	if idx != 2 || call != Bid(4, Notrump) {
		t.Errorf("LastBid() = (%d, %v), want (2, 4N)", idx, call)
	}
}

func TestPositionPartnerAndSamePartnership(t *testing.T) {
	if North.Partner() != South {
		t.Errorf("North.Partner() = %v, want South", North.Partner())
	}
	if !North.SamePartnership(South) {
		t.Errorf("North and South should be partners")
	}
	if North.SamePartnership(East) {
		t.Errorf("North and East should not be partners")
	}
}

func TestDealerForBoard(t *testing.T) {
	cases := map[int]Position{1: North, 2: East, 3: South, 4: West, 5: North, 8: West}
	for board, want := range cases {
		if got := DealerForBoard(board); got != want {
			t.Errorf("DealerForBoard(%d) = %v, want %v", board, got, want)
		}
	}
}

func TestVulnerabilityForBoard(t *testing.T) {
	cases := map[int]Vulnerability{1: VulnNone, 2: VulnNS, 3: VulnEW, 4: VulnBoth, 16: VulnEW}
	for board, want := range cases {
		if got := VulnerabilityForBoard(board); got != want {
			t.Errorf("VulnerabilityForBoard(%d) = %v, want %v", board, got, want)
		}
	}
}
