package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wry-raven/raven/pkg/board"
)

func TestZobristHashIsDeterministicAcrossEquivalentConstruction(t *testing.T) {
	a := board.NewPosition()

	b := board.Empty()
	back := [8]board.Piece{board.Rook, board.Knight, board.Bishop, board.Queen, board.King, board.Bishop, board.Knight, board.Rook}
	for f := board.ZeroFile; f < board.NumFiles; f++ {
		b.Put(board.White, back[f], board.NewSquare(f, board.Rank1))
		b.Put(board.White, board.Pawn, board.NewSquare(f, board.Rank2))
		b.Put(board.Black, board.Pawn, board.NewSquare(f, board.Rank7))
		b.Put(board.Black, back[f], board.NewSquare(f, board.Rank8))
	}
	b.SetCastlingRights(board.FullCastling)

	assert.Equal(t, a.Hash, b.Hash)
}

func TestZobristHashChangesOnSideToMove(t *testing.T) {
	pos := board.NewPosition()
	before := pos.Hash
	pos.SetSideToMove(board.Black)
	assert.NotEqual(t, before, pos.Hash)
	pos.SetSideToMove(board.White)
	assert.Equal(t, before, pos.Hash)
}

func TestZobristHashChangesOnCastlingRights(t *testing.T) {
	pos := board.NewPosition()
	before := pos.Hash
	pos.SetCastlingRights(board.WhiteKingSide)
	assert.NotEqual(t, before, pos.Hash)
	pos.SetCastlingRights(board.FullCastling)
	assert.Equal(t, before, pos.Hash)
}

func TestZobristHashChangesOnEnPassant(t *testing.T) {
	pos := board.NewPosition()
	before := pos.Hash
	pos.SetEnPassant(board.E3)
	assert.NotEqual(t, before, pos.Hash)
	pos.SetEnPassant(board.NoSquare)
	assert.Equal(t, before, pos.Hash)
}

func TestApplyUndoPreservesHashAcrossSequence(t *testing.T) {
	pos := board.NewPosition()
	start := pos.Hash

	var played []board.Move
	for i := 0; i < 4; i++ {
		moves := pos.GenerateLegalMoves(nil)
		if len(moves) == 0 {
			break
		}
		m := moves[0]
		pos.Apply(&m)
		played = append(played, m)
	}

	for i := len(played) - 1; i >= 0; i-- {
		pos.Undo(played[i])
	}

	assert.Equal(t, start, pos.Hash)
}
