package bidding

// AuctionHistory is a dealer plus the ordered sequence of calls made so far.
type AuctionHistory struct {
	Dealer Position
	Calls  []Call
}

// NewAuction creates an empty auction with the given dealer.
func NewAuction(dealer Position) *AuctionHistory {
	return &AuctionHistory{Dealer: dealer}
}

// CurrentTurn returns the seat on turn to call next.
func (a *AuctionHistory) CurrentTurn() Position {
	p := a.Dealer
	for i := 0; i < len(a.Calls); i++ {
		p = p.Next()
	}
	return p
}

// PositionOf returns the seat that made the call at the given index.
func (a *AuctionHistory) PositionOf(index int) Position {
	p := a.Dealer
	for i := 0; i < index; i++ {
		p = p.Next()
	}
	return p
}

// LastBid returns the index and call of the most recent Bid, or (-1, Call{})
// if no bid has been made.
func (a *AuctionHistory) LastBid() (int, Call) {
	for i := len(a.Calls) - 1; i >= 0; i-- {
		if a.Calls[i].IsBid() {
			return i, a.Calls[i]
		}
	}
	return -1, Call{}
}

// LastNonPass returns the index and call of the most recent non-Pass call,
// or (-1, Call{}) if every call so far has been Pass.
func (a *AuctionHistory) LastNonPass() (int, Call) {
	for i := len(a.Calls) - 1; i >= 0; i-- {
		if a.Calls[i].Kind != KindPass {
			return i, a.Calls[i]
		}
	}
	return -1, Call{}
}

// IsOpen reports whether any bid has been made yet.
func (a *AuctionHistory) IsOpen() bool {
	idx, _ := a.LastBid()
	return idx >= 0
}

// isFinishedAt mirrors the reference engine's is_finished_at: an auction of
// length >= 4 whose last 3 calls are all Pass is finished (the opening
// all-pass deal-out completes in exactly 4).
func isFinishedAt(calls []Call, length int) bool {
	if length < 4 {
		return false
	}
	prefix := calls[:length]
	allPass := true
	for _, c := range prefix {
		if c.Kind != KindPass {
			allPass = false
			break
		}
	}
	if allPass {
		return len(prefix) >= 4
	}
	last3 := prefix[length-3:]
	for _, c := range last3 {
		if c.Kind != KindPass {
			return false
		}
	}
	return true
}

// IsComplete reports whether the auction has terminated: >=4 calls with the
// last three all Pass (including the trivial four-pass deal-out).
func (a *AuctionHistory) IsComplete() bool {
	return isFinishedAt(a.Calls, len(a.Calls))
}

// ValidatePrefix reports whether the given call sequence is legal from
// scratch: turn order is implicit (calls are just a sequence; legality here
// is about bid/double/redouble structure, not who is on turn, matching the
// reference engine's validate_calls). It does not check whether the auction
// is already finished before the final call, except that no call may follow
// a finished auction.
func ValidatePrefix(calls []Call) bool {
	var lastBid *Call
	lastBidIndex := -1
	lastDoubleIndex := -1
	redoubled := false

	for i, call := range calls {
		if i > 0 && isFinishedAt(calls, i) {
			return false
		}
		switch call.Kind {
		case KindPass:
			// always legal structurally
		case KindBid:
			if call.Level < 1 || call.Level > 7 {
				return false
			}
			if lastBid != nil && !call.higherThan(*lastBid) {
				return false
			}
			c := call
			lastBid = &c
			lastBidIndex = i
			lastDoubleIndex = -1
			redoubled = false
		case KindDouble:
			if lastBidIndex < 0 {
				return false
			}
			if lastDoubleIndex >= 0 || redoubled {
				return false
			}
			if (i-lastBidIndex)%2 == 0 {
				return false
			}
			lastDoubleIndex = i
		case KindRedouble:
			if lastDoubleIndex < 0 {
				return false
			}
			if redoubled {
				return false
			}
			if (i-lastDoubleIndex)%2 == 0 {
				return false
			}
			redoubled = true
			lastDoubleIndex = -1
		}
	}
	return true
}

// IsValid reports whether the auction's full call sequence is structurally legal.
func (a *AuctionHistory) IsValid() bool {
	return ValidatePrefix(a.Calls)
}

// IsLegal reports whether call would be a legal next call in this auction.
func (a *AuctionHistory) IsLegal(call Call) bool {
	if a.IsComplete() {
		return false
	}
	test := make([]Call, len(a.Calls)+1)
	copy(test, a.Calls)
	test[len(a.Calls)] = call
	return ValidatePrefix(test)
}

// LegalCalls enumerates every call that would be legal as the next call.
func (a *AuctionHistory) LegalCalls() []Call {
	if a.IsComplete() {
		return nil
	}
	var result []Call
	result = append(result, Pass)
	for level := 1; level <= 7; level++ {
		for strain := ClubsStrain; strain <= Notrump; strain++ {
			c := Bid(level, strain)
			if a.IsLegal(c) {
				result = append(result, c)
			}
		}
	}
	for _, c := range []Call{Double, Redouble} {
		if a.IsLegal(c) {
			result = append(result, c)
		}
	}
	return result
}

// AddCall appends a call to the auction without checking legality; callers
// that need validated input should check IsLegal first.
func (a *AuctionHistory) AddCall(c Call) {
	a.Calls = append(a.Calls, c)
}

// Clone returns a deep copy of the auction, used when the engine needs to
// replay a prefix without mutating the original.
func (a *AuctionHistory) Clone() *AuctionHistory {
	calls := make([]Call, len(a.Calls))
	copy(calls, a.Calls)
	return &AuctionHistory{Dealer: a.Dealer, Calls: calls}
}

// Prefix returns a new AuctionHistory containing only the first n calls.
func (a *AuctionHistory) Prefix(n int) *AuctionHistory {
	if n > len(a.Calls) {
		n = len(a.Calls)
	}
	calls := make([]Call, n)
	copy(calls, a.Calls[:n])
	return &AuctionHistory{Dealer: a.Dealer, Calls: calls}
}
