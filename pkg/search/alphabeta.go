package search

import (
	"context"

	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/eval"
)

// nodePollInterval is how often, in visited nodes, the search checks for
// cancellation. Checking every node would dominate run time at the leaves;
// checking too rarely makes "stop" feel unresponsive.
const nodePollInterval = 1024

// nullMoveReduction is how many plies a null-move search is reduced by.
const nullMoveReduction = 2

// AlphaBeta is negamax search with alpha-beta pruning, a transposition table,
// null-move pruning, and quiescence at the search horizon. Pseudocode:
//
//	function negamax(node, depth, α, β) is
//	    if depth = 0 or node is terminal then
//	        return quiescence(node, α, β)
//	    value := −∞
//	    for each child of node do
//	        value := max(value, −negamax(child, depth−1, −β, −α))
//	        α := max(α, value)
//	        if α ≥ β then
//	            break (* β cutoff *)
//	    return value
//
// See: https://en.wikipedia.org/wiki/Negamax
type AlphaBeta struct {
	Eval         eval.Evaluator
	Quiescence   Quiescence
	DisableNullMove bool
}

func (p AlphaBeta) Search(ctx context.Context, sctx *Context, b *board.Board, depth int, alpha, beta eval.Score) (uint64, eval.Score, []board.Move, error) {
	run := &runAlphaBeta{
		eval:       p.Eval,
		quiescence: p.Quiescence,
		tt:         sctx.TT,
		killers:    sctx.Killers,
		b:          b,
		allowNull:  !p.DisableNullMove,
	}

	score, pv := run.search(ctx, depth, 0, alpha, beta)
	if contextx.IsCancelled(ctx) {
		return run.nodes, 0, nil, ErrHalted
	}
	return run.nodes, score, pv, nil
}

type runAlphaBeta struct {
	eval       eval.Evaluator
	quiescence Quiescence
	tt         TranspositionTable
	killers    *Killers
	b          *board.Board
	allowNull  bool
	nodes      uint64
}

func (r *runAlphaBeta) cancelled(ctx context.Context) bool {
	r.nodes++
	return r.nodes%nodePollInterval == 0 && contextx.IsCancelled(ctx)
}

func (r *runAlphaBeta) search(ctx context.Context, depth, ply int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	if r.cancelled(ctx) {
		return 0, nil
	}

	pos := r.b.Position()
	if ply > 0 && (r.b.IsRepetition() || pos.HasInsufficientMaterial()) {
		return eval.Draw, nil
	}

	origAlpha := alpha
	var ttMove board.Move
	if bound, ttDepth, score, move, ok := r.tt.Read(pos.Hash); ok {
		ttMove = move
		if ply > 0 && ttDepth >= depth {
			switch bound {
			case ExactBound:
				return score, nil
			case LowerBound:
				if score >= beta {
					return score, nil
				}
			case UpperBound:
				if score <= alpha {
					return score, nil
				}
			}
		}
	}

	if depth <= 0 {
		nodes, score := r.quiescence.Search(ctx, r.eval, r.b, alpha, beta)
		r.nodes += nodes
		return score, nil
	}

	us := pos.SideToMove
	inCheck := pos.InCheck(us)

	if r.allowNull && !inCheck && depth >= 3 && hasNonPawnMaterial(pos, us) {
		prevEP, prevHash := pos.ApplyNull()
		score, _ := r.search(ctx, depth-1-nullMoveReduction, ply+1, -beta, -beta+1)
		score = -score
		pos.UndoNull(prevEP, prevHash)

		if score >= beta {
			return beta, nil
		}
	}

	pseudo := pos.GeneratePseudoLegalMoves(nil)
	order := OrderingFor(pos, ttMove, ply, r.killers)
	list := NewMoveList(pseudo, order)

	hasLegalMove := false
	bestMove := board.Move{}
	var pv []board.Move

	for {
		m, ok := list.Next()
		if !ok {
			break
		}

		mv := m
		r.b.MakeMove(mv)
		if pos.IsAttacked(pos.KingSquare(us), us.Opponent()) {
			r.b.UnmakeMove()
			continue
		}
		hasLegalMove = true

		score, childPV := r.search(ctx, depth-1, ply+1, -beta, -alpha)
		score = -score
		r.b.UnmakeMove()

		if contextx.IsCancelled(ctx) {
			return 0, nil
		}

		if score > alpha {
			alpha = score
			bestMove = mv
			pv = append([]board.Move{mv}, childPV...)
		}
		if alpha >= beta {
			if !mv.Kind.IsCapture() && r.killers != nil {
				r.killers.Add(ply, mv)
			}
			break
		}
	}

	if !hasLegalMove {
		if inCheck {
			return -eval.Mate + eval.Score(ply), nil
		}
		return eval.Draw, nil
	}

	bound := ExactBound
	switch {
	case alpha <= origAlpha:
		bound = UpperBound
	case alpha >= beta:
		bound = LowerBound
	}
	r.tt.Write(pos.Hash, bound, depth, alpha, bestMove)

	return alpha, pv
}

func hasNonPawnMaterial(pos *board.Position, c board.Color) bool {
	return pos.PieceBB(c, board.Knight)|pos.PieceBB(c, board.Bishop)|
		pos.PieceBB(c, board.Rook)|pos.PieceBB(c, board.Queen) != 0
}
