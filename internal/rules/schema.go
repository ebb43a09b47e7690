// Package rules implements the bidding-rule schema and loader (C3): parsing
// declarative YAML shards into BidRule/Variant/Constraint data, and
// validating that data at load time.
package rules

import (
	"fmt"

	"github.com/lox/bridgebot/internal/bidding"
	"github.com/lox/bridgebot/internal/card"
)

// Context tags a BidRule with the auction situation it applies to, matching
// the context classifier's (C5) vocabulary.
type Context string

const (
	ContextOpening                Context = "opening"
	ContextResponse                Context = "response"
	ContextOpenerRebid             Context = "opener_rebid"
	ContextResponderRebid          Context = "responder_rebid"
	ContextOvercall                Context = "overcall"
	ContextTakeoutDouble           Context = "takeout_double"
	ContextNegativeDouble          Context = "negative_double"
	ContextBalancing               Context = "balancing"
	ContextAfterSlamAsk            Context = "after_slam_ask"
	ContextAfterBlackwood          Context = "after_blackwood"
	ContextPreempt                 Context = "preempt"
	ContextStrongClubContinuation  Context = "strong_club_continuation"
)

// BidRule is one call paired with an ordered set of candidate variants, all
// scoped to a single context.
type BidRule struct {
	Context   Context   `yaml:"context"`
	Call      string    `yaml:"call"`
	Variants  []Variant `yaml:"variants"`
	sourceIdx int       // schema order within the loaded rule set, for tie-breaks
}

// SourceIndex returns the rule's position in load order, used as the final
// tie-break in the selector (C7) when priorities are equal.
func (r *BidRule) SourceIndex() int { return r.sourceIdx }

// Variant is one disjunct of a BidRule: a name, an integer priority
// (higher wins), a human description, and a conjunction of constraints.
type Variant struct {
	Name        string       `yaml:"name"`
	Priority    int          `yaml:"priority"`
	Description string       `yaml:"description"`
	Forcing     string       `yaml:"forcing,omitempty"` // "forcing" | "invitational" | "non_forcing", informational
	Constraints []Constraint `yaml:"constraints"`
}

// Constraint is a tagged sum over the kinds enumerated in the data model:
// HCP range, suit length, exact shape, suit quality, hand shape class,
// stopper, and named auction predicates. Exactly one field group is
// populated per Type.
type Constraint struct {
	Type ConstraintType `yaml:"type"`

	// MinHCP / MaxHCP
	Min int `yaml:"min,omitempty"`
	Max int `yaml:"max,omitempty"`

	// Length / ExactLength / SuitQuality / Stopper / MinCombinedLength
	Suit  card.Suit `yaml:"suit,omitempty"`
	Count int       `yaml:"count,omitempty"`

	// SuitQuality
	Quality card.SuitQuality `yaml:"quality,omitempty"`

	// Shape (pattern over sorted lengths; 0 acts as a wildcard "any")
	Shape [4]int `yaml:"shape,omitempty"`

	// HandShapeClass
	Class card.Shape `yaml:"class,omitempty"`

	// Genuine marks whether a Length/ExactLength constraint shows length in
	// its nominal suit (true) or is purely conventional (false). ExtractBounds
	// takes min-length from a length constraint whether or not it is genuine;
	// Genuine only decides whether the suit is marked as shown (ShownGenuine).
	Genuine bool `yaml:"genuine,omitempty"`

	// MinCombinedHCP
	CombinedMin int `yaml:"combined_min,omitempty"`

	// AuctionPredicate
	Predicate string   `yaml:"predicate,omitempty"`
	Args      []string `yaml:"args,omitempty"`
}

// ConstraintType names the Constraint's active variant.
type ConstraintType string

const (
	ConstraintMinHCP            ConstraintType = "min_hcp"
	ConstraintMaxHCP            ConstraintType = "max_hcp"
	ConstraintMinLength         ConstraintType = "min_length"
	ConstraintMaxLength         ConstraintType = "max_length"
	ConstraintExactLength       ConstraintType = "exact_length"
	ConstraintShape             ConstraintType = "shape"
	ConstraintSuitQuality       ConstraintType = "suit_quality"
	ConstraintHandShapeClass    ConstraintType = "hand_shape_class"
	ConstraintStopper           ConstraintType = "stopper"
	ConstraintAllStopped        ConstraintType = "all_stopped"
	ConstraintMinCombinedHCP    ConstraintType = "min_combined_hcp"
	ConstraintMinCombinedLength ConstraintType = "min_combined_length"
	ConstraintAuctionPredicate  ConstraintType = "auction_predicate"
	ConstraintNotAlreadyGame    ConstraintType = "not_already_game"
	ConstraintRuleOfTwenty      ConstraintType = "rule_of_twenty"
	ConstraintRuleOfFifteen     ConstraintType = "rule_of_fifteen"
	ConstraintExactAceCount     ConstraintType = "exact_ace_count"
)

// RuleSet is the fully loaded, read-only collection of rules, grouped by
// context for fast lookup. It is constructed once at startup and shared by
// reference; nothing mutates it afterward.
type RuleSet struct {
	byContext map[Context][]*BidRule
	all       []*BidRule
	atoms     *AtomRegistry
}

// RulesInContext returns the rules scoped to a given context, in schema
// (load) order.
func (rs *RuleSet) RulesInContext(ctx Context) []*BidRule {
	return rs.byContext[ctx]
}

// All returns every loaded rule, in schema order.
func (rs *RuleSet) All() []*BidRule {
	return rs.all
}

// Atoms returns the auction-predicate registry backing this rule set.
func (rs *RuleSet) Atoms() *AtomRegistry {
	return rs.atoms
}

// RuleLoadError reports a fatal schema or reference validation failure
// discovered while loading a rule shard. Loading stops at first error.
type RuleLoadError struct {
	Shard  string
	Reason string
}

func (e *RuleLoadError) Error() string {
	return fmt.Sprintf("rules: failed to load shard %q: %s", e.Shard, e.Reason)
}

// ParsedCallToken is the minimal information the loader needs about a rule's
// call string to validate it parses as a legal bridge call.
func ParsedCallToken(token string) (bidding.Call, error) {
	return bidding.ParseCall(token)
}
