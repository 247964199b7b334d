// Transposition table shared by all search workers of one request

package engine

import (
	dragon "github.com/dylhunn/dragontoothmg"
)

// The eval for a TT entry can be exact, a lower bound, or an upper bound
type ttBoundT uint8

const (
	ttInvalid ttBoundT = iota // must be the 0 item
	ttBoundExact
	ttBoundLower // from beta cut-off
	ttBoundUpper // from alpha cut-off
)

// Members ordered by descending size for better packing
type ttEntryT struct {
	zobrist   uint64 // Zobrist hash from dragontoothmg
	score     EvalCp
	bestMove  dragon.Move
	depthToGo uint8
	bound     ttBoundT
}

// DefaultTTCapacity is the per-request slot count (power of 2).
const DefaultTTCapacity = 1 << 20

// TranspositionTable is a fixed-capacity cache of search results keyed by
// position hash. One table is created per search request and shared by
// reference across that request's workers.
//
// Access is deliberately lock-free: workers race on the slots, and a reader
// may observe a stale or torn entry while another worker overwrites it.
// That only ever costs search effort - probe results are validated against
// the probing position's zobrist, TT best-moves are re-checked against the
// legal move list before use, and the search re-derives every score it
// doesn't get a depth-consistent hit for.
type TranspositionTable struct {
	slots []ttEntryT
	mask  uint64
}

// NewTranspositionTable allocates a table with at least the given number of
// slots, rounded up to a power of 2 so slot indexing is a simple mask.
func NewTranspositionTable(capacity int) *TranspositionTable {
	if capacity < 1 {
		capacity = 1
	}
	nSlots := 1
	for nSlots < capacity {
		nSlots <<= 1
	}
	return &TranspositionTable{
		slots: make([]ttEntryT, nSlots),
		mask:  uint64(nSlots - 1),
	}
}

func (tt *TranspositionTable) index(zobrist uint64) int {
	return int(zobrist & tt.mask)
}

// Return a copy of the TT entry, and whether it is a hit.
// We copy to avoid entry overwrite shenanigans from concurrent workers.
func (tt *TranspositionTable) probe(zobrist uint64) (ttEntryT, bool) {
	entry := tt.slots[tt.index(zobrist)]

	return entry, entry.bound != ttInvalid && entry.zobrist == zobrist
}

// Write back a search result. We keep the incumbent when it is strictly
// deeper - under worker contention a deep entry is worth more than a fresh
// shallow one.
func (tt *TranspositionTable) store(zobrist uint64, score EvalCp, bestMove dragon.Move, depthToGo int, bound ttBoundT) {
	i := tt.index(zobrist)

	old := tt.slots[i]
	if old.bound != ttInvalid && old.zobrist == zobrist && int(old.depthToGo) > depthToGo {
		return
	}

	// Full struct overwrite to obliterate old data
	tt.slots[i] = ttEntryT{
		zobrist:   zobrist,
		score:     score,
		bestMove:  bestMove,
		depthToGo: uint8(depthToGo),
		bound:     bound,
	}
}
