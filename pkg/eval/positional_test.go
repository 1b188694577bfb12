package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/eval"
)

func TestMobilityStartingPositionIsSymmetric(t *testing.T) {
	pos := board.NewPosition()
	assert.Equal(t, eval.Score(0), eval.Mobility(pos))
}

func TestMobilityRewardsDevelopedKnight(t *testing.T) {
	pos := board.Empty()
	pos.Put(board.White, board.King, board.E1)
	pos.Put(board.Black, board.King, board.E8)
	pos.Put(board.White, board.Knight, board.D4)
	pos.SetSideToMove(board.White)

	assert.True(t, eval.Mobility(pos) > 0)
}

func TestRookFilesOpenFile(t *testing.T) {
	pos := board.Empty()
	pos.Put(board.White, board.King, board.E1)
	pos.Put(board.Black, board.King, board.E8)
	pos.Put(board.White, board.Rook, board.D1)
	pos.SetSideToMove(board.White)

	assert.Equal(t, eval.Score(20), eval.RookFiles(pos))
}

func TestRookFilesSemiOpenFile(t *testing.T) {
	pos := board.Empty()
	pos.Put(board.White, board.King, board.E1)
	pos.Put(board.Black, board.King, board.E8)
	pos.Put(board.White, board.Rook, board.D1)
	pos.Put(board.Black, board.Pawn, board.D7)
	pos.SetSideToMove(board.White)

	assert.Equal(t, eval.Score(10), eval.RookFiles(pos))
}

func TestRookFilesClosedFileIsZero(t *testing.T) {
	pos := board.Empty()
	pos.Put(board.White, board.King, board.E1)
	pos.Put(board.Black, board.King, board.E8)
	pos.Put(board.White, board.Rook, board.D1)
	pos.Put(board.White, board.Pawn, board.D2)
	pos.SetSideToMove(board.White)

	assert.Equal(t, eval.Score(0), eval.RookFiles(pos))
}

func TestKingSafetyRewardsAttackingKingRing(t *testing.T) {
	pos := board.Empty()
	pos.Put(board.White, board.King, board.A1)
	pos.Put(board.Black, board.King, board.E8)
	pos.Put(board.White, board.Queen, board.D7)
	pos.SetSideToMove(board.White)

	assert.True(t, eval.KingSafety(pos) > 0)
}
