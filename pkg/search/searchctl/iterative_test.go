package searchctl_test

import (
	"context"
	"testing"
	"time"

	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/eval"
	"github.com/wry-raven/raven/pkg/search"
	"github.com/wry-raven/raven/pkg/search/searchctl"
)

func newIterative() *searchctl.Iterative {
	return &searchctl.Iterative{
		Root: search.AlphaBeta{
			Eval:       eval.NewComposite(eval.Random{}),
			Quiescence: search.Quiescence{},
		},
	}
}

func TestIterativeStopsAtDepthLimit(t *testing.T) {
	b := board.NewBoardFromPosition(board.NewPosition())
	tt := search.NewTranspositionTable(context.Background(), 1<<20)
	it := newIterative()

	opt := searchctl.Options{DepthLimit: lang.Some(uint(2))}
	h, out := it.Launch(context.Background(), b, tt, opt)

	var last search.PV
	for pv := range out {
		last = pv
		assert.True(t, pv.Depth <= 2)
	}
	assert.Equal(t, 2, last.Depth)

	final := h.Halt()
	assert.Equal(t, last, final)
}

func TestIterativeHaltStopsSearchEarly(t *testing.T) {
	b := board.NewBoardFromPosition(board.NewPosition())
	tt := search.NewTranspositionTable(context.Background(), 1<<20)
	it := newIterative()

	h, out := it.Launch(context.Background(), b, tt, searchctl.Options{})

	select {
	case <-out:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for first iteration")
	}

	pv := h.Halt()
	assert.True(t, pv.Depth >= 1)

	// Halt is idempotent.
	assert.Equal(t, pv, h.Halt())
}

func TestOptionsStringFormatsSetFields(t *testing.T) {
	opt := searchctl.Options{DepthLimit: lang.Some(uint(5))}
	require.Contains(t, opt.String(), "depth=5")

	empty := searchctl.Options{}
	assert.Equal(t, "[]", empty.String())
}
