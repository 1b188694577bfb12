package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/eval"
)

func TestPawnStructureStartingPositionIsBalanced(t *testing.T) {
	pos := board.NewPosition()
	assert.Equal(t, eval.Score(0), eval.PawnStructure(pos))
}

func TestPawnStructureDoubledAndIsolatedPenalty(t *testing.T) {
	pos := board.Empty()
	pos.Put(board.White, board.King, board.E1)
	pos.Put(board.Black, board.King, board.E8)
	pos.Put(board.White, board.Pawn, board.A2)
	pos.Put(board.White, board.Pawn, board.A3)
	pos.SetSideToMove(board.White)

	// One doubled a-pawn pair (-20) plus isolation (-15 * 2 pawns on the
	// file, since there is no pawn on the b-file to support either one).
	assert.Equal(t, eval.Score(-50), eval.PawnStructure(pos))
}

func TestPawnStructureCenterPawnBonus(t *testing.T) {
	pos := board.Empty()
	pos.Put(board.White, board.King, board.E1)
	pos.Put(board.Black, board.King, board.E8)
	for _, sq := range []board.Square{board.A2, board.B2, board.C2, board.E2, board.F2, board.G2, board.H2} {
		pos.Put(board.White, board.Pawn, sq)
	}
	pos.Put(board.White, board.Pawn, board.D4)
	pos.SetSideToMove(board.White)

	assert.Equal(t, eval.Score(15), eval.PawnStructure(pos))
}

func TestPawnStructureBlockedCenterPawnRequiresFriendlyBlocker(t *testing.T) {
	withBlocker := func(blocker board.Color, piece board.Piece) eval.Score {
		pos := board.Empty()
		pos.Put(board.White, board.King, board.E1)
		pos.Put(board.Black, board.King, board.E8)
		pos.Put(board.White, board.Pawn, board.D2)
		pos.Put(blocker, piece, board.D3)
		pos.SetSideToMove(board.White)
		return eval.PawnStructure(pos)
	}

	enemyBlocked := withBlocker(board.Black, board.Knight)
	friendlyBlocked := withBlocker(board.White, board.Knight)

	// A friendly piece directly ahead costs an extra blockedCenterPenalty
	// beyond the isolated-pawn penalty both cases already pay; an enemy
	// piece merely standing in the way of the push does not.
	assert.Equal(t, eval.Score(-10), friendlyBlocked-enemyBlocked)
}

