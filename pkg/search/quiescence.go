package search

import (
	"context"

	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/eval"
)

// Quiescence extends search past the horizon along capture/promotion lines
// only, with a stand-pat option at every node, so the static evaluator is
// never asked to judge a position in the middle of a capture sequence.
type Quiescence struct {
	MaxPly int // 0 means unbounded; bounded only as a safety valve against pathological lines
}

func (q Quiescence) Search(ctx context.Context, ev eval.Evaluator, b *board.Board, alpha, beta eval.Score) (uint64, eval.Score) {
	run := &runQuiescence{eval: ev, b: b, maxPly: q.MaxPly}
	score := run.search(ctx, 0, alpha, beta)
	return run.nodes, score
}

type runQuiescence struct {
	eval   eval.Evaluator
	b      *board.Board
	maxPly int
	nodes  uint64
}

func (r *runQuiescence) search(ctx context.Context, ply int, alpha, beta eval.Score) eval.Score {
	r.nodes++
	if r.nodes%nodePollInterval == 0 && contextx.IsCancelled(ctx) {
		return 0
	}

	pos := r.b.Position()
	if r.b.IsRepetition() || pos.HasInsufficientMaterial() {
		return eval.Draw
	}

	standPat := r.eval.Evaluate(ctx, pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if r.maxPly > 0 && ply >= r.maxPly {
		return alpha
	}

	us := pos.SideToMove
	pseudo := pos.GeneratePseudoLegalMoves(nil)
	captures := onlyCapturesAndPromotions(pseudo)
	list := NewMoveList(captures, func(m board.Move) Priority {
		return Priority(100*eval.MVVLVAGain(pos, m)) - Priority(eval.NominalValue(m.Piece))
	})

	for {
		m, ok := list.Next()
		if !ok {
			break
		}

		r.b.MakeMove(m)
		if pos.IsAttacked(pos.KingSquare(us), us.Opponent()) {
			r.b.UnmakeMove()
			continue
		}

		score := -r.search(ctx, ply+1, -beta, -alpha)
		r.b.UnmakeMove()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

func onlyCapturesAndPromotions(moves []board.Move) []board.Move {
	ret := moves[:0]
	for _, m := range moves {
		if m.Kind.IsCapture() || m.Kind.IsPromotion() {
			ret = append(ret, m)
		}
	}
	return ret
}
