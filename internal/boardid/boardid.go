// Package boardid encodes and decodes the board-identifier envelope: a
// bijective packing of dealer, deal, and auction into a single opaque
// string, per the format
//
//	<board-number>-<26-hex-chars>[:<calls-csv>]
//
// The engine facade (C9) treats this format as an external interface; it is
// otherwise a self-contained codec exercising the deal and call model from
// package card and package bidding.
package boardid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/bridgebot/internal/bidding"
	"github.com/lox/bridgebot/internal/card"
)

// Deal is the four hands of a board, indexed by Position.
type Deal [4]card.Hand

// Board bundles a fully decoded identifier: the board metadata, the deal,
// and whatever auction prefix accompanied it.
type Board struct {
	Number        int
	Dealer        bidding.Position
	Vulnerability bidding.Vulnerability
	Deal          Deal
	Auction       *bidding.AuctionHistory
}

// ErrInvalidIdentifier is returned for any malformed board identifier:
// bad hex length, bad call token, or board number out of range.
type ErrInvalidIdentifier struct {
	Identifier string
	Reason     string
}

func (e *ErrInvalidIdentifier) Error() string {
	return fmt.Sprintf("boardid: invalid identifier %q: %s", e.Identifier, e.Reason)
}

const hexAlphabet = "0123456789abcdef"

// Decode parses a board identifier into its Board. The auction portion, if
// present, is validated for structural legality (§3 invariants); an
// illegal call sequence is reported as InvalidAuction via
// ErrInvalidAuction, distinct from a malformed identifier.
func Decode(identifier string) (*Board, error) {
	dashIdx := strings.IndexByte(identifier, '-')
	if dashIdx < 0 {
		return nil, &ErrInvalidIdentifier{identifier, "missing board-number separator"}
	}
	numberStr := identifier[:dashIdx]
	rest := identifier[dashIdx+1:]

	number, err := strconv.Atoi(numberStr)
	if err != nil || number < 1 || number > 16 {
		return nil, &ErrInvalidIdentifier{identifier, "board number must be in [1,16]"}
	}

	dealPart := rest
	var callsPart string
	hasCalls := false
	if colonIdx := strings.IndexByte(rest, ':'); colonIdx >= 0 {
		dealPart = rest[:colonIdx]
		callsPart = rest[colonIdx+1:]
		hasCalls = true
	}

	deal, err := decodeHexDeal(dealPart)
	if err != nil {
		return nil, &ErrInvalidIdentifier{identifier, err.Error()}
	}

	dealer := bidding.DealerForBoard(number)
	vuln := bidding.VulnerabilityForBoard(number)
	auction := bidding.NewAuction(dealer)

	if hasCalls {
		calls, err := bidding.ParseCalls(callsPart)
		if err != nil {
			return nil, &ErrInvalidIdentifier{identifier, err.Error()}
		}
		auction.Calls = calls
		if !auction.IsValid() {
			return nil, &ErrInvalidAuction{Auction: auction}
		}
	}

	return &Board{
		Number:        number,
		Dealer:        dealer,
		Vulnerability: vuln,
		Deal:          deal,
		Auction:       auction,
	}, nil
}

// ErrInvalidAuction reports that an identifier parsed but its call sequence
// violates the auction legality invariants.
type ErrInvalidAuction struct {
	Auction *bidding.AuctionHistory
}

func (e *ErrInvalidAuction) Error() string {
	return fmt.Sprintf("boardid: auction %s is not legal", bidding.FormatCalls(e.Auction.Calls))
}

// decodeHexDeal unpacks the 26-hex-char deal string into four hands: each
// hex digit packs two adjacent card IDs, high*4+low, where high is the
// position holding card 2*i and low holds card 2*i+1.
func decodeHexDeal(s string) (Deal, error) {
	var deal Deal
	if len(s) != 26 {
		return deal, fmt.Errorf("deal must be exactly 26 hex chars, got %d", len(s))
	}
	var cardsByPosition [4][]card.Card
	for i := 0; i < 26; i++ {
		v, err := hexDigit(s[i])
		if err != nil {
			return deal, err
		}
		high := v / 4
		low := v % 4
		highCardID := i * 2
		lowCardID := i*2 + 1
		highCard, err := card.FromID(highCardID)
		if err != nil {
			return deal, err
		}
		lowCard, err := card.FromID(lowCardID)
		if err != nil {
			return deal, err
		}
		cardsByPosition[high] = append(cardsByPosition[high], highCard)
		cardsByPosition[low] = append(cardsByPosition[low], lowCard)
	}
	for pos := 0; pos < 4; pos++ {
		hand, err := card.New(cardsByPosition[pos])
		if err != nil {
			return deal, fmt.Errorf("position %s: %w", bidding.Position(pos), err)
		}
		deal[pos] = hand
	}
	return deal, nil
}

func hexDigit(c byte) (int, error) {
	idx := strings.IndexByte(hexAlphabet, toLowerHex(c))
	if idx < 0 {
		return 0, fmt.Errorf("invalid hex digit %q", c)
	}
	return idx, nil
}

func toLowerHex(c byte) byte {
	if c >= 'A' && c <= 'F' {
		return c - 'A' + 'a'
	}
	return c
}

// Encode renders a Board back into its identifier string. Encode(Decode(x))
// == x for any x accepted by Decode with a canonicalized (uppercase,
// comma-separated) call list.
func Encode(number int, deal Deal, calls []bidding.Call) string {
	id := fmt.Sprintf("%d-%s", number, encodeHexDeal(deal))
	if len(calls) > 0 {
		id += ":" + bidding.FormatCalls(calls)
	}
	return id
}

func encodeHexDeal(deal Deal) string {
	var positionForCard [52]int
	for pos := 0; pos < 4; pos++ {
		for _, c := range deal[pos].Cards() {
			positionForCard[c.ID()] = pos
		}
	}
	var sb strings.Builder
	sb.Grow(26)
	for i := 0; i < 26; i++ {
		high := positionForCard[i*2]
		low := positionForCard[i*2+1]
		v := high*4 + low
		sb.WriteByte(hexAlphabet[v])
	}
	return sb.String()
}
