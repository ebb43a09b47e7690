package rules

import (
	"hash/fnv"

	"github.com/opencoff/go-chd"
)

// chdLoadFactor is the load factor passed to chd's Freeze, matching the
// library's own documented default.
const chdLoadFactor = 0.85

// chdIndex wraps a minimal-perfect-hash table over the atom registry's name
// set, built once after the builtin atom table is known. It is an
// accelerator only: AtomRegistry.Lookup falls back to the plain map if the
// index disagrees or wasn't built, so a construction failure here never
// makes a predicate name unresolvable.
type chdIndex struct {
	h *chd.Chd
}

// buildCHDIndex constructs a CHD minimal perfect hash over names. Returns
// nil if the builder reports an error (e.g. the name set is too small for
// the algorithm's bucket sizing), in which case AtomRegistry relies solely
// on the plain map.
func buildCHDIndex(names []string) *chdIndex {
	if len(names) == 0 {
		return nil
	}
	b, err := chd.New()
	if err != nil {
		return nil
	}
	for _, n := range names {
		if err := b.Add(hashName(n)); err != nil {
			return nil
		}
	}
	h, err := b.Freeze(chdLoadFactor)
	if err != nil {
		return nil
	}
	return &chdIndex{h: h}
}

// hashName maps a name to the uint64 key space chd operates over.
func hashName(name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return h.Sum64()
}

// find returns the index names[pos] hashes to under the CHD table.
// Callers must re-verify names[pos] == key themselves, since CHD only
// guarantees no collisions among the original key set — an unknown key
// hashes to an arbitrary slot.
func (c *chdIndex) find(key string) (int, bool) {
	if c == nil || c.h == nil {
		return 0, false
	}
	pos := c.h.Find(hashName(key))
	if pos >= uint64(c.h.Len()) {
		return 0, false
	}
	return int(pos), true
}
