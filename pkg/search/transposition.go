package search

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/seekerror/logw"
	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/eval"
)

// Bound classifies how a stored score relates to the true value of the node.
// Unlike a pure best-first table that only ever stores exact values, an
// alpha-beta search prunes subtrees on cutoffs, so most entries are one-sided.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound        // score is a lower bound: true value is >= score (failed high)
	UpperBound        // score is an upper bound: true value is <= score (failed low)
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	default:
		return "?"
	}
}

// TranspositionTable caches search results keyed by position hash. The engine
// here runs single-threaded (spec has no Lazy SMP / pondering), so, unlike a
// concurrent engine, entries need no atomic pointer swap to stay race-free.
type TranspositionTable interface {
	Read(hash uint64) (Bound, int, eval.Score, board.Move, bool)
	Write(hash uint64, bound Bound, depth int, score eval.Score, move board.Move)
	Size() uint64
	Used() float64
}

type entry struct {
	hash  uint64
	bound Bound
	depth int
	score eval.Score
	move  board.Move
	valid bool
}

const entrySize = 40 // bytes, approximate: hash(8)+score(4)+move(~20)+depth/bound(4)

type table struct {
	entries []entry
	mask    uint64
	used    int
}

// TranspositionTableFactory builds a TranspositionTable of the given size in
// bytes, letting callers swap in alternate replacement policies.
type TranspositionTableFactory func(ctx context.Context, size uint64) TranspositionTable

// NewTranspositionTable allocates a table sized to fit within size bytes,
// rounded down to the nearest power of two entry count.
func NewTranspositionTable(ctx context.Context, size uint64) TranspositionTable {
	n := uint64(1)
	if size > entrySize {
		shift := 63 - bits.LeadingZeros64(size/entrySize)
		n = uint64(1) << uint(shift)
	}
	logw.Infof(ctx, "allocating %vMB transposition table with %v entries", size>>20, n)

	return &table{entries: make([]entry, n), mask: n - 1}
}

func (t *table) Size() uint64 {
	return uint64(len(t.entries)) * entrySize
}

func (t *table) Used() float64 {
	return float64(t.used) / float64(len(t.entries))
}

func (t *table) Read(hash uint64) (Bound, int, eval.Score, board.Move, bool) {
	e := &t.entries[hash&t.mask]
	if e.valid && e.hash == hash {
		return e.bound, e.depth, e.score, e.move, true
	}
	return 0, 0, 0, board.Move{}, false
}

// Write stores the entry, replacing the incumbent unless it is valid, for the
// same position, and searched strictly deeper. This always-replace-unless-
// deeper policy favors recency, which matters most in an iterative-deepening
// search where shallow entries from earlier iterations quickly go stale.
func (t *table) Write(hash uint64, bound Bound, depth int, score eval.Score, move board.Move) {
	e := &t.entries[hash&t.mask]
	if e.valid && e.hash == hash && e.depth > depth {
		return
	}
	if !e.valid {
		t.used++
	}
	*e = entry{hash: hash, bound: bound, depth: depth, score: score, move: move, valid: true}
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%vMB @ %d%%]", t.Size()>>20, int(100*t.Used()))
}

// NoTranspositionTable disables caching entirely.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Read(hash uint64) (Bound, int, eval.Score, board.Move, bool) {
	return 0, 0, 0, board.Move{}, false
}
func (NoTranspositionTable) Write(hash uint64, bound Bound, depth int, score eval.Score, move board.Move) {
}
func (NoTranspositionTable) Size() uint64  { return 0 }
func (NoTranspositionTable) Used() float64 { return 0 }
