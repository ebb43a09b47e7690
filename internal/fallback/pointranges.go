// Package fallback implements the natural-bidding fallback (C8): when no
// conventional rule fires, derive a call from combined-points or Law of
// Total Tricks heuristics, subject to the game/slam/partscore preference
// hierarchy.
package fallback

// Zone is the target contract tier a combined-points count justifies.
type Zone int

const (
	Partscore Zone = iota
	Game
	Slam
)

// minSuitedPoints is the combined-HCP threshold to safely contract for a
// suited bid at the given level (index 0 unused, levels 1-7).
var minSuitedPoints = [8]int{0, 16, 19, 22, 25, 28, 33, 37}

// minNotrumpPoints is the same table for notrump contracts.
var minNotrumpPoints = [8]int{0, 19, 22, 25, 28, 30, 33, 37}

// MinPointsForSuitedBid returns the minimum combined HCP needed to safely
// contract for a suit at level.
func MinPointsForSuitedBid(level int) int {
	if level < 1 || level > 7 {
		return 40
	}
	return minSuitedPoints[level]
}

// MinPointsForNotrumpBid returns the minimum combined HCP needed to safely
// contract for notrump at level.
func MinPointsForNotrumpBid(level int) int {
	if level < 1 || level > 7 {
		return 40
	}
	return minNotrumpPoints[level]
}

// TargetZone classifies a combined HCP count into partscore/game/slam.
func TargetZone(combinedHCP int) Zone {
	switch {
	case combinedHCP < 25:
		return Partscore
	case combinedHCP < 30:
		return Game
	default:
		return Slam
	}
}

// SafeLevelByLOTT applies the Law of Total Tricks: for a strain with
// combinedLength trumps, the safe contract level is combinedLength-6,
// clamped to [1,7]. Callers should only use this when combinedLength>=8
// (an established 8-card-or-better fit); shorter fits return 0 (no safe
// level implied by LOTT alone). Non-vulnerable, the rule of 2-3-4 lets a
// preemptive raise go one level beyond what LOTT alone justifies.
func SafeLevelByLOTT(combinedLength int, vulnerable bool) int {
	if combinedLength < 8 {
		return 0
	}
	level := combinedLength - 6
	if !vulnerable {
		level++
	}
	if level > 7 {
		level = 7
	}
	return level
}
