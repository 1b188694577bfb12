package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/eval"
	"github.com/wry-raven/raven/pkg/search"
)

func newSearchContext() *search.Context {
	return &search.Context{
		TT:      search.NewTranspositionTable(context.Background(), 1<<20),
		Killers: search.NewKillers(),
	}
}

func newAlphaBeta() search.AlphaBeta {
	return search.AlphaBeta{
		Eval:       eval.NewComposite(eval.Random{}),
		Quiescence: search.Quiescence{},
	}
}

func TestAlphaBetaFindsBackRankMateInOne(t *testing.T) {
	pos := board.Empty()
	pos.Put(board.Black, board.King, board.G8)
	pos.Put(board.Black, board.Pawn, board.F7)
	pos.Put(board.Black, board.Pawn, board.G7)
	pos.Put(board.Black, board.Pawn, board.H7)
	pos.Put(board.White, board.Rook, board.A1)
	pos.Put(board.White, board.King, board.E1)
	pos.SetSideToMove(board.White)

	b := board.NewBoardFromPosition(pos)
	ab := newAlphaBeta()

	_, score, pv, err := ab.Search(context.Background(), newSearchContext(), b, 2, eval.NegInf, eval.Inf)
	require.NoError(t, err)

	require.NotEmpty(t, pv)
	assert.Equal(t, board.A1, pv[0].From)
	assert.Equal(t, board.A8, pv[0].To)

	mply, ok := score.MatePly()
	require.True(t, ok, "expected a mate score, got %v", score)
	assert.True(t, mply > 0, "positive mate ply means the side to move delivers mate")
}

func TestAlphaBetaCheckmatedPositionScoresNegativeMate(t *testing.T) {
	pos := board.Empty()
	pos.Put(board.White, board.King, board.A1)
	pos.Put(board.Black, board.King, board.A3)
	pos.Put(board.Black, board.Queen, board.A2)
	pos.SetSideToMove(board.White)

	b := board.NewBoardFromPosition(pos)
	ab := newAlphaBeta()

	_, score, pv, err := ab.Search(context.Background(), newSearchContext(), b, 1, eval.NegInf, eval.Inf)
	require.NoError(t, err)
	assert.Empty(t, pv)

	// The mate is already on the board at the root (ply 0), so the score is
	// exactly -Mate and MatePly reports zero plies to go.
	mply, ok := score.MatePly()
	require.True(t, ok)
	assert.Equal(t, 0, mply)
	assert.Equal(t, -eval.Mate, score, "side to move is checkmated, not delivering mate")
}

func TestAlphaBetaStalemateScoresDraw(t *testing.T) {
	pos := board.Empty()
	pos.Put(board.White, board.King, board.A1)
	pos.Put(board.Black, board.King, board.B3)
	pos.Put(board.Black, board.Queen, board.C2)
	pos.SetSideToMove(board.White)

	b := board.NewBoardFromPosition(pos)
	ab := newAlphaBeta()

	_, score, pv, err := ab.Search(context.Background(), newSearchContext(), b, 1, eval.NegInf, eval.Inf)
	require.NoError(t, err)
	assert.Empty(t, pv)
	assert.Equal(t, eval.Draw, score)
}

func TestAlphaBetaHaltedSearchReturnsError(t *testing.T) {
	pos := board.NewPosition()
	b := board.NewBoardFromPosition(pos)
	ab := newAlphaBeta()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := ab.Search(ctx, newSearchContext(), b, 6, eval.NegInf, eval.Inf)
	assert.ErrorIs(t, err, search.ErrHalted)
}
