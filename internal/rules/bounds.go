package rules

import "github.com/lox/bridgebot/internal/card"

// Bounds is the conservative (hcp, length, stopper) envelope a single
// variant's constraints imply about the hand that satisfies it. The
// partner-profile inferencer (C6) extracts Bounds from every candidate
// variant that could have produced a prior call and joins them by the
// monotone lattice rule: min of mins, max of maxes.
type Bounds struct {
	MinHCP      int
	MaxHCP      int // 37 (the HCP ceiling) if the variant does not cap it
	MinLength   [4]int
	Stoppers    [4]bool // true only when the variant requires a stopper there
	ShownGenuine [4]bool // true for suits this variant shows real length in
}

const maxPossibleHCP = 37

// ExtractBounds walks a variant's constraint conjunction and derives the
// weakest bounds a hand satisfying all of them must meet. Constraints this
// function does not model as a static bound (auction predicates, shape
// patterns) are treated as non-contributing; they still gate which variants
// are candidates in the first place, evaluated separately by package
// evalctx against the actual hand when one is available.
func ExtractBounds(v *Variant) Bounds {
	b := Bounds{MaxHCP: maxPossibleHCP}
	for _, c := range v.Constraints {
		switch c.Type {
		case ConstraintMinHCP:
			if c.Min > b.MinHCP {
				b.MinHCP = c.Min
			}
		case ConstraintMaxHCP:
			if c.Max < b.MaxHCP {
				b.MaxHCP = c.Max
			}
		case ConstraintMinLength:
			if c.Count > b.MinLength[c.Suit] {
				b.MinLength[c.Suit] = c.Count
			}
			if c.Genuine {
				b.ShownGenuine[c.Suit] = true
			}
		case ConstraintExactLength:
			if c.Count > b.MinLength[c.Suit] {
				b.MinLength[c.Suit] = c.Count
			}
			if c.Genuine {
				b.ShownGenuine[c.Suit] = true
			}
		case ConstraintStopper:
			b.Stoppers[c.Suit] = true
		}
	}
	return b
}

// Join merges another Bounds into b per the monotone lattice: minimum
// across min-bounds widens downward, maximum across max-bounds widens
// upward, and a stopper/genuine flag only survives if every candidate
// requires it.
func (b Bounds) Join(other Bounds) Bounds {
	joined := Bounds{MaxHCP: maxPossibleHCP}
	if b.MinHCP < other.MinHCP {
		joined.MinHCP = b.MinHCP
	} else {
		joined.MinHCP = other.MinHCP
	}
	if b.MaxHCP > other.MaxHCP {
		joined.MaxHCP = b.MaxHCP
	} else {
		joined.MaxHCP = other.MaxHCP
	}
	for _, s := range card.All {
		if b.MinLength[s] < other.MinLength[s] {
			joined.MinLength[s] = b.MinLength[s]
		} else {
			joined.MinLength[s] = other.MinLength[s]
		}
		joined.Stoppers[s] = b.Stoppers[s] && other.Stoppers[s]
		joined.ShownGenuine[s] = b.ShownGenuine[s] && other.ShownGenuine[s]
	}
	return joined
}
