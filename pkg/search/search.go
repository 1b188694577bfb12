// Package search contains the game-tree search: negamax alpha-beta with a
// transposition table, quiescence, killer moves and null-move pruning.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/eval"
)

// ErrHalted is returned by Search when the context was cancelled mid-search.
var ErrHalted = errors.New("search: halted")

// PV is the principal variation found for a given depth.
type PV struct {
	Depth int
	Nodes uint64
	Score eval.Score
	Moves []board.Move
	Time  time.Duration
	Hash  float64 // transposition table utilization, [0;1]
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%d score=%v nodes=%d time=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Time, p.Moves)
}

// Context carries the objects shared across one search tree: the transposition
// table and the killer-move table. It is created once per Launch and threaded
// through every recursive call instead of being rebuilt per node.
type Context struct {
	TT      TranspositionTable
	Killers *Killers
}

// Search runs a fixed-depth search from the current position of b and returns
// the node count, score, and principal variation.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int, alpha, beta eval.Score) (uint64, eval.Score, []board.Move, error)
}
