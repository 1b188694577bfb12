package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/search"
)

func TestKillersAddAndContains(t *testing.T) {
	k := search.NewKillers()
	m1 := board.Move{From: board.G1, To: board.F3, Piece: board.Knight}
	m2 := board.Move{From: board.B1, To: board.C3, Piece: board.Knight}

	assert.False(t, k.Contains(0, m1))

	k.Add(0, m1)
	assert.True(t, k.Contains(0, m1))

	k.Add(0, m2)
	assert.True(t, k.Contains(0, m1))
	assert.True(t, k.Contains(0, m2))

	m3 := board.Move{From: board.G8, To: board.F6, Piece: board.Knight}
	k.Add(0, m3)
	assert.False(t, k.Contains(0, m1), "oldest killer should be evicted")
	assert.True(t, k.Contains(0, m2))
	assert.True(t, k.Contains(0, m3))
}

func TestKillersAreScopedPerPly(t *testing.T) {
	k := search.NewKillers()
	m := board.Move{From: board.E2, To: board.E4, Piece: board.Pawn}
	k.Add(0, m)
	assert.False(t, k.Contains(1, m))
}

func TestKillersAddDuplicateIsNoOp(t *testing.T) {
	k := search.NewKillers()
	m1 := board.Move{From: board.G1, To: board.F3, Piece: board.Knight}
	m2 := board.Move{From: board.B1, To: board.C3, Piece: board.Knight}

	k.Add(0, m1)
	k.Add(0, m2)
	k.Add(0, m1)

	assert.True(t, k.Contains(0, m1))
	assert.True(t, k.Contains(0, m2))
}

func TestKillersOutOfRangePlyIsIgnored(t *testing.T) {
	k := search.NewKillers()
	m := board.Move{From: board.E2, To: board.E4, Piece: board.Pawn}
	k.Add(1000, m)
	assert.False(t, k.Contains(1000, m))
}
