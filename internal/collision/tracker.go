// Package collision guards the predictor's per-symbol memory against
// xxHash64 collisions between distinct trade symbols.
package collision

// Tracker records which distinct symbol strings have been observed under
// each 64-bit symbol hash, so a caller keying a map by hash instead of by
// string can detect when two different symbols landed in the same bucket
// and must fall back to an exact string comparison within that bucket.
//
// xxHash64 collisions on real instrument identifiers are vanishingly rare,
// but "rare" is not "impossible": a predictor that silently shared state
// between two different symbols because their hashes matched would
// forecast one symbol's price and quantity from the other's trades, not
// from its own last-observed values as §4.3 defines. Tracker makes that
// failure mode structurally unreachable instead of merely unlikely.
type Tracker struct {
	buckets        map[uint64][]string
	collisionCount int
}

// NewTracker creates an empty collision tracker.
func NewTracker() *Tracker {
	return &Tracker{buckets: make(map[uint64][]string)}
}

// Observe registers symbol under its hash id.
//
// It returns the index of symbol within that hash's bucket (stable across
// calls for the same symbol) and whether this call introduced a new,
// previously-unseen collision (a second distinct symbol sharing id).
// Callers that keep a parallel per-symbol state slice should append to it
// exactly when Observe appends, so the returned index stays valid as a key
// into both structures.
func (t *Tracker) Observe(id uint64, symbol string) (idx int, isNewCollision bool) {
	names := t.buckets[id]
	for i, name := range names {
		if name == symbol {
			return i, false
		}
	}

	idx = len(names)
	t.buckets[id] = append(names, symbol)
	if idx > 0 {
		t.collisionCount++
		isNewCollision = true
	}

	return idx, isNewCollision
}

// CollisionCount returns the number of distinct symbols that landed in a
// bucket already occupied by a different symbol.
func (t *Tracker) CollisionCount() int {
	return t.collisionCount
}

// Reset clears all tracked buckets and the collision count, allowing the
// tracker to be reused for a new pass over the same source.
func (t *Tracker) Reset() {
	for k := range t.buckets {
		delete(t.buckets, k)
	}
	t.collisionCount = 0
}
