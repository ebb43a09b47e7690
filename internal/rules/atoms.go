package rules

import (
	"fmt"

	"github.com/lox/bridgebot/internal/bidding"
	"github.com/lox/bridgebot/internal/card"
)

// AtomFunc is a named auction predicate: a pure function over the current
// seat, the auction so far, and that seat's partner's inferred profile.
// The partner profile (partner.Profile) is declared in package partner, but
// to avoid an import cycle (partner needs rules for Variant bounds) atoms
// take the narrower AtomView interface instead.
type AtomFunc func(view AtomView) bool

// AtomView is everything an auction predicate atom needs. The engine
// facade's concrete partner profile and auction wiring satisfy it.
type AtomView interface {
	Auction() *bidding.AuctionHistory
	Seat() bidding.Position
	Hand() card.Hand
	PartnerMinHCP() int
	PartnerMaxHCP() int
	PartnerMinLength(s card.Suit) int
	PartnerHasStopper(s card.Suit) bool
	PartnerShownGenuineSuit(s card.Suit) bool
}

// AtomRegistry resolves auction-predicate names to their implementations.
// It is built once at startup from the fixed built-in atom set; rule shards
// reference atoms by name only.
//
// Lookups are served from a plain map; a secondary minimal-perfect-hash
// index (github.com/opencoff/go-chd) is built alongside it once the atom
// set is frozen at startup. Lookup consults that index but always answers
// from the map, so the index is not load-bearing for correctness.
type AtomRegistry struct {
	byName map[string]AtomFunc
	names  []string
	index  *chdIndex
}

// NewAtomRegistry builds the registry from the built-in atom table.
func NewAtomRegistry() *AtomRegistry {
	r := &AtomRegistry{byName: make(map[string]AtomFunc, len(builtinAtoms))}
	for name, fn := range builtinAtoms {
		r.byName[name] = fn
		r.names = append(r.names, name)
	}
	r.index = buildCHDIndex(r.names)
	return r
}

// Lookup resolves a predicate name, returning an error if unknown so the
// loader can surface RuleLoadError at startup rather than panicking at
// evaluation time.
func (r *AtomRegistry) Lookup(name string) (AtomFunc, error) {
	if r.index != nil {
		if pos, ok := r.index.find(name); ok && r.names[pos] == name {
			return r.byName[name], nil
		}
	}
	fn, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("rules: unknown auction predicate %q", name)
	}
	return fn, nil
}

// Known reports whether name is a registered predicate.
func (r *AtomRegistry) Known(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// builtinAtoms is the fixed set of named auction predicates rule shards may
// reference. Each is a pure function of the current seat's view.
var builtinAtoms = map[string]AtomFunc{
	"partner_opened": func(v AtomView) bool {
		return v.PartnerMinHCP() > 0 || v.PartnerMaxHCP() > 0
	},
	"partner_opened_major": func(v AtomView) bool {
		return v.PartnerMinLength(card.Hearts) >= 4 || v.PartnerMinLength(card.Spades) >= 4
	},
	"partner_opened_minor": func(v AtomView) bool {
		return v.PartnerMinLength(card.Clubs) >= 4 || v.PartnerMinLength(card.Diamonds) >= 4
	},
	"partner_opened_notrump": func(v AtomView) bool {
		return v.PartnerMinHCP() >= 15 && v.PartnerMaxHCP() <= 21 && v.PartnerMaxHCP() > 0
	},
	"partner_opened_suit": func(v AtomView) bool {
		opened := v.PartnerMinHCP() > 0 || v.PartnerMaxHCP() > 0
		notrump := v.PartnerMinHCP() >= 15 && v.PartnerMaxHCP() <= 21 && v.PartnerMaxHCP() > 0
		return opened && !notrump
	},
	"partner_has_not_shown_clubs": func(v AtomView) bool { return !v.PartnerShownGenuineSuit(card.Clubs) },
	"partner_has_not_shown_diamonds": func(v AtomView) bool {
		return !v.PartnerShownGenuineSuit(card.Diamonds)
	},
	"partner_has_not_shown_hearts": func(v AtomView) bool { return !v.PartnerShownGenuineSuit(card.Hearts) },
	"partner_has_not_shown_spades": func(v AtomView) bool { return !v.PartnerShownGenuineSuit(card.Spades) },
	"we_have_8_card_fit_clubs": func(v AtomView) bool {
		return v.Hand().Length(card.Clubs)+v.PartnerMinLength(card.Clubs) >= 8
	},
	"we_have_8_card_fit_diamonds": func(v AtomView) bool {
		return v.Hand().Length(card.Diamonds)+v.PartnerMinLength(card.Diamonds) >= 8
	},
	"we_have_8_card_fit_hearts": func(v AtomView) bool {
		return v.Hand().Length(card.Hearts)+v.PartnerMinLength(card.Hearts) >= 8
	},
	"we_have_8_card_fit_spades": func(v AtomView) bool {
		return v.Hand().Length(card.Spades)+v.PartnerMinLength(card.Spades) >= 8
	},
	"partner_bid_clubs_genuine": func(v AtomView) bool { return v.PartnerShownGenuineSuit(card.Clubs) },
	"partner_bid_diamonds_genuine": func(v AtomView) bool {
		return v.PartnerShownGenuineSuit(card.Diamonds)
	},
	"partner_bid_hearts_genuine": func(v AtomView) bool { return v.PartnerShownGenuineSuit(card.Hearts) },
	"partner_bid_spades_genuine": func(v AtomView) bool { return v.PartnerShownGenuineSuit(card.Spades) },
	"rho_passed": func(v AtomView) bool {
		calls := v.Auction().Calls
		if len(calls) == 0 {
			return false
		}
		return calls[len(calls)-1].Kind == bidding.KindPass
	},
	"rho_doubled": func(v AtomView) bool {
		calls := v.Auction().Calls
		if len(calls) == 0 {
			return false
		}
		return calls[len(calls)-1].Kind == bidding.KindDouble
	},
	"auction_would_pass_out": func(v AtomView) bool {
		a := v.Auction()
		if !a.IsOpen() {
			return false
		}
		extended := a.Clone()
		extended.AddCall(bidding.Pass)
		return extended.IsComplete()
	},
}
