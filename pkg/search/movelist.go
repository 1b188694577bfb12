package search

import (
	"container/heap"

	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/eval"
)

// Priority orders moves within a MoveList; higher values come out of Next first.
type Priority int32

const (
	bestMovePriority  Priority = 1_000_000
	killerPriority    Priority = 900
	promotionPriority Priority = 800
)

// MoveList is a priority queue over a fixed set of moves, used to try the most
// promising moves first: this is what makes alpha-beta's cutoffs cheap.
type MoveList struct {
	h moveHeap
}

// NewMoveList builds a MoveList ranking moves by fn, highest priority first.
func NewMoveList(moves []board.Move, fn func(board.Move) Priority) *MoveList {
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		h[i] = elm{m: m, val: fn(m)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

func (ml *MoveList) Next() (board.Move, bool) {
	if ml.h.Len() == 0 {
		return board.Move{}, false
	}
	e := heap.Pop(&ml.h).(elm)
	return e.m, true
}

func (ml *MoveList) Len() int {
	return ml.h.Len()
}

type elm struct {
	m   board.Move
	val Priority
}

type moveHeap []elm

func (h moveHeap) Len() int            { return len(h) }
func (h moveHeap) Less(i, j int) bool  { return h[i].val > h[j].val }
func (h moveHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *moveHeap) Push(x interface{}) { *h = append(*h, x.(elm)) }
func (h *moveHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// OrderingFor builds a priority function for pos favoring, in order: the
// transposition table's best move, MVV-LVA for captures and promotions, then
// the ply's killer moves, then everything else at zero.
func OrderingFor(pos *board.Position, best board.Move, ply int, killers *Killers) func(board.Move) Priority {
	hasBest := !best.IsNull()
	return func(m board.Move) Priority {
		if hasBest && m.From == best.From && m.To == best.To && m.Promote == best.Promote {
			return bestMovePriority
		}
		if m.Kind.IsCapture() {
			return Priority(100*eval.MVVLVAGain(pos, m)) - Priority(eval.NominalValue(m.Piece))
		}
		if m.Kind.IsPromotion() {
			return promotionPriority + Priority(eval.NominalValue(m.Promote))
		}
		if killers != nil && killers.Contains(ply, m) {
			return killerPriority
		}
		return 0
	}
}
