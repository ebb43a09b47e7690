// Package bidding implements the call and auction model (C2): calls, turn
// order, legality, and auction termination, plus the Position/Vulnerability
// types the rest of the engine threads through.
package bidding

import "fmt"

// Position is a seat at the table, clockwise N -> E -> S -> W.
type Position uint8

const (
	North Position = iota
	East
	South
	West
)

func (p Position) String() string {
	switch p {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return "?"
	}
}

// PositionFromChar parses a single-letter seat code, case-insensitively.
func PositionFromChar(c byte) (Position, bool) {
	switch c {
	case 'N', 'n':
		return North, true
	case 'E', 'e':
		return East, true
	case 'S', 's':
		return South, true
	case 'W', 'w':
		return West, true
	default:
		return 0, false
	}
}

// Next returns the next seat clockwise.
func (p Position) Next() Position { return (p + 1) % 4 }

// Partner returns the seat across the table.
func (p Position) Partner() Position { return (p + 2) % 4 }

// SamePartnership reports whether p and other belong to the same partnership.
func (p Position) SamePartnership(other Position) bool { return p%2 == other%2 }

// DealerForBoard returns the dealer for a 1-indexed board number, using the
// canonical (n-1) mod 4 mapping: 1->N, 2->E, 3->S, 4->W, then repeating.
func DealerForBoard(boardNumber int) Position {
	idx := ((boardNumber - 1) % 4 + 4) % 4
	return Position(idx)
}

// Vulnerability records which partnership(s), if any, are vulnerable.
type Vulnerability uint8

const (
	VulnNone Vulnerability = iota
	VulnNS
	VulnEW
	VulnBoth
)

func (v Vulnerability) String() string {
	switch v {
	case VulnNS:
		return "NS"
	case VulnEW:
		return "EW"
	case VulnBoth:
		return "Both"
	default:
		return "None"
	}
}

// IsVulnerable reports whether the given seat's partnership is vulnerable.
func (v Vulnerability) IsVulnerable(p Position) bool {
	switch v {
	case VulnBoth:
		return true
	case VulnNS:
		return p == North || p == South
	case VulnEW:
		return p == East || p == West
	default:
		return false
	}
}

// vulnTable is the standard 16-board vulnerability cycle.
// http://www.jazclass.aust.com/bridge/scoring/score11.htm
var vulnTable = [16]Vulnerability{
	1:  VulnNone,
	2:  VulnNS,
	3:  VulnEW,
	4:  VulnBoth,
	5:  VulnNS,
	6:  VulnEW,
	7:  VulnBoth,
	8:  VulnNone,
	9:  VulnEW,
	10: VulnBoth,
	11: VulnNone,
	12: VulnNS,
	13: VulnBoth,
	14: VulnNone,
	15: VulnNS,
	0:  VulnEW, // board 16 mod 16 == 0
}

// VulnerabilityForBoard returns the vulnerability for a 1-indexed board
// number per the standard 16-board duplicate cycle.
func VulnerabilityForBoard(boardNumber int) Vulnerability {
	idx := ((boardNumber % 16) + 16) % 16
	return vulnTable[idx]
}

// validatePosition is used by call sites that accept a raw int seat index.
func validatePosition(p Position) error {
	if p > West {
		return fmt.Errorf("bidding: invalid position %d", p)
	}
	return nil
}
