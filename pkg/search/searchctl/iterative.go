package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/eval"
	"github.com/wry-raven/raven/pkg/search"
)

// continuationFactor estimates how much longer the next iteration will take
// relative to the one just finished. A search tree's node count grows roughly
// with the branching factor per added ply, so refusing to start another
// iteration unless at least this multiple of time remains avoids starting an
// iteration that is very likely to be aborted mid-way, wasting the partial work.
const continuationFactor = 5

// Iterative runs progressively deeper full-width searches, reporting each
// completed depth on the returned channel, until a depth/time limit is hit,
// a forced mate is found within the searched width, or Halt is called.
type Iterative struct {
	Root search.Search
}

func (it *Iterative) Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, it.Root, b, tt, opt, out)
	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	mu sync.Mutex
	pv search.PV
}

func (h *handle) process(ctx context.Context, root search.Search, b *board.Board, tt search.TranspositionTable, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	sctx := &search.Context{TT: tt, Killers: search.NewKillers()}
	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, b.SideToMove())

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	searchStart := time.Now()
	depth := 1
	for !h.quit.IsClosed() {
		start := time.Now()

		nodes, score, moves, err := root.Search(wctx, sctx, b, depth, eval.NegInf, eval.Inf)
		if err != nil {
			if err == search.ErrHalted {
				return
			}
			logw.Errorf(ctx, "search failed at depth=%v: %v", depth, err)
			return
		}
		elapsed := time.Since(start)

		pv := search.PV{Depth: depth, Nodes: nodes, Score: score, Moves: moves, Time: elapsed, Hash: tt.Used()}
		logw.Debugf(ctx, "searched depth=%v: %v", depth, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()

		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) >= limit {
			return
		}
		if mply, ok := score.MatePly(); ok {
			if mply < 0 {
				mply = -mply
			}
			if mply <= depth {
				return // forced mate (for either side) found within the searched width
			}
		}
		if useSoft {
			remaining := soft - time.Since(searchStart)
			if remaining <= 0 || elapsed*continuationFactor > remaining {
				return
			}
		}
		depth++
	}
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}
