// Package card implements the 52-card universe and 13-card hand model (C1):
// hand construction, HCP, distribution, suit quality, and the
// balanced/semi-balanced/unbalanced classification used throughout the
// bidding engine.
package card

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Suit represents a card suit, ordered clubs < diamonds < hearts < spades so
// that Suit values compare the way bridge strains do (see bidding.Strain).
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// All lists every suit in ascending order.
var All = [4]Suit{Clubs, Diamonds, Hearts, Spades}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsMinor reports whether the suit is a minor (clubs or diamonds).
func (s Suit) IsMinor() bool { return s == Clubs || s == Diamonds }

// IsMajor reports whether the suit is a major (hearts or spades).
func (s Suit) IsMajor() bool { return s == Hearts || s == Spades }

// SuitFromName parses a lowercase suit name ("clubs", "diamonds", "hearts",
// "spades") as used in the YAML rule shards.
func SuitFromName(name string) (Suit, bool) {
	switch name {
	case "clubs":
		return Clubs, true
	case "diamonds":
		return Diamonds, true
	case "hearts":
		return Hearts, true
	case "spades":
		return Spades, true
	default:
		return 0, false
	}
}

// UnmarshalYAML lets rule shards write suit names instead of raw integers.
func (s *Suit) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	suit, ok := SuitFromName(name)
	if !ok {
		return fmt.Errorf("card: unknown suit name %q", name)
	}
	*s = suit
	return nil
}

// Rank represents a card rank, 2 through Ace, indexed 0..12.
type Rank uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

func (r Rank) String() string {
	const chars = "23456789TJQKA"
	if int(r) >= len(chars) {
		return "?"
	}
	return string(chars[r])
}

// RankFromChar parses a single rank character (case-insensitive for T/J/Q/K/A).
func RankFromChar(c byte) (Rank, bool) {
	switch c {
	case '2':
		return Two, true
	case '3':
		return Three, true
	case '4':
		return Four, true
	case '5':
		return Five, true
	case '6':
		return Six, true
	case '7':
		return Seven, true
	case '8':
		return Eight, true
	case '9':
		return Nine, true
	case 'T', 't':
		return Ten, true
	case 'J', 'j':
		return Jack, true
	case 'Q', 'q':
		return Queen, true
	case 'K', 'k':
		return King, true
	case 'A', 'a':
		return Ace, true
	default:
		return 0, false
	}
}

// Card is a single playing card, identified by suit and rank.
type Card struct {
	Suit Suit
	Rank Rank
}

// ID returns the card's canonical identity in [0,51]: suit*13 + rank.
func (c Card) ID() int { return int(c.Suit)*13 + int(c.Rank) }

// FromID builds a Card from its canonical identity in [0,51].
func FromID(id int) (Card, error) {
	if id < 0 || id > 51 {
		return Card{}, fmt.Errorf("card: id %d out of range [0,51]", id)
	}
	return Card{Suit: Suit(id / 13), Rank: Rank(id % 13)}, nil
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// HCPValue returns the high-card points contributed by this card's rank:
// A=4, K=3, Q=2, J=1, else 0.
func (c Card) HCPValue() int {
	switch c.Rank {
	case Ace:
		return 4
	case King:
		return 3
	case Queen:
		return 2
	case Jack:
		return 1
	default:
		return 0
	}
}
