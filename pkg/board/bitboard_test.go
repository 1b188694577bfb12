package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wry-raven/raven/pkg/board"
)

func TestBitboardSetClearIsSet(t *testing.T) {
	var bb board.Bitboard
	bb = bb.Set(board.D4)
	assert.True(t, bb.IsSet(board.D4))
	assert.Equal(t, 1, bb.PopCount())

	bb = bb.Clear(board.D4)
	assert.False(t, bb.IsSet(board.D4))
	assert.Equal(t, 0, bb.PopCount())
}

func TestPopLSB(t *testing.T) {
	bb := board.BitMask(board.A1) | board.BitMask(board.H8)
	sq, rest := bb.PopLSB()
	assert.Equal(t, board.A1, sq)
	assert.Equal(t, board.BitMask(board.H8), rest)
}

func TestKnightAttackboardCorner(t *testing.T) {
	attacks := board.KnightAttackboard(board.A1)
	assert.True(t, attacks.IsSet(board.B3))
	assert.True(t, attacks.IsSet(board.C2))
	assert.Equal(t, 2, attacks.PopCount())
}

func TestKingAttackboardCorner(t *testing.T) {
	attacks := board.KingAttackboard(board.A1)
	assert.Equal(t, 3, attacks.PopCount())
	assert.True(t, attacks.IsSet(board.A2))
	assert.True(t, attacks.IsSet(board.B1))
	assert.True(t, attacks.IsSet(board.B2))
}

// Every square and a few occupancy patterns exercise the table-driven sliding
// attack generators against the independent ray-walk oracle.
func TestSlidingAttacksAgainstRayWalkOracle(t *testing.T) {
	occupancies := []board.Bitboard{
		board.EmptyBitboard,
		board.BitMask(board.D4),
		board.BitMask(board.D1) | board.BitMask(board.A4) | board.BitMask(board.H4) | board.BitMask(board.D8),
		board.BitMask(board.B2) | board.BitMask(board.F6) | board.BitMask(board.G7),
	}

	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		for _, occ := range occupancies {
			occ &^= board.BitMask(sq) // a piece can't occupy its own square as a blocker in these tables

			assert.Equal(t, board.RayWalkAttackboard(board.Rook, sq, occ), board.RookAttackboard(sq, occ),
				"rook mismatch at %v with occupancy %v", sq, occ)
			assert.Equal(t, board.RayWalkAttackboard(board.Bishop, sq, occ), board.BishopAttackboard(sq, occ),
				"bishop mismatch at %v with occupancy %v", sq, occ)
			assert.Equal(t, board.RayWalkAttackboard(board.Queen, sq, occ), board.QueenAttackboard(sq, occ),
				"queen mismatch at %v with occupancy %v", sq, occ)
		}
	}
}

func TestPawnAttackboard(t *testing.T) {
	white := board.PawnAttackboard(board.White, board.BitMask(board.D4))
	assert.True(t, white.IsSet(board.C5))
	assert.True(t, white.IsSet(board.E5))
	assert.Equal(t, 2, white.PopCount())

	black := board.PawnAttackboard(board.Black, board.BitMask(board.D4))
	assert.True(t, black.IsSet(board.C3))
	assert.True(t, black.IsSet(board.E3))
}

func TestPawnAttackboardEdgeFileDoesNotWrap(t *testing.T) {
	white := board.PawnAttackboard(board.White, board.BitMask(board.A4))
	assert.False(t, white.IsSet(board.H5), "must not wrap around the board edge")
	assert.True(t, white.IsSet(board.B5))
	assert.Equal(t, 1, white.PopCount())
}

func TestPawnPushboard(t *testing.T) {
	push := board.PawnPushboard(board.White, board.EmptyBitboard, board.BitMask(board.E2))
	assert.True(t, push.IsSet(board.E3))

	blocked := board.PawnPushboard(board.White, board.BitMask(board.E3), board.BitMask(board.E2))
	assert.Equal(t, board.EmptyBitboard, blocked)
}
