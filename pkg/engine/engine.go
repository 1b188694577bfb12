// Package engine ties board state, evaluation and search together behind the
// small stateful API the UCI driver talks to.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/board/fen"
	"github.com/wry-raven/raven/pkg/eval"
	"github.com/wry-raven/raven/pkg/search"
	"github.com/wry-raven/raven/pkg/search/searchctl"
)

var version = build.NewVersion(0, 1, 0)

// Options are runtime-tunable engine settings, surfaced as UCI options.
type Options struct {
	Depth uint // ply limit; 0 means no limit beyond time control
	Hash  uint // transposition table size in MB; 0 disables it
	Noise uint // evaluation noise in centipawns; 0 disables it
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v hash=%vMB noise=%vcp}", o.Depth, o.Hash, o.Noise)
}

// Engine holds one line of play plus the options controlling how it searches.
type Engine struct {
	name, author string
	factory      search.TranspositionTableFactory
	seed         int64
	opts         Options

	b         *board.Board
	tt        search.TranspositionTable
	evaluator eval.Composite
	active    searchctl.Handle

	mu sync.Mutex
}

type Option func(*Engine)

func WithTable(factory search.TranspositionTableFactory) Option {
	return func(e *Engine) { e.factory = factory }
}

func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:    name,
		author:  author,
		factory: search.NewTranspositionTable,
	}
	for _, fn := range opts {
		fn(e)
	}

	_ = e.Reset(ctx, fen.Initial)
	logw.Infof(ctx, "initialized engine %v, options=%v", e.Name(), e.opts)
	return e
}

func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Depth = depth
}

func (e *Engine) SetHash(sizeMB uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Hash = sizeMB
	e.tt = e.newTable()
}

func (e *Engine) SetNoise(centipawns uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Noise = centipawns
	e.evaluator = e.newEvaluator()
}

func (e *Engine) newTable() search.TranspositionTable {
	if e.opts.Hash == 0 {
		return search.NoTranspositionTable{}
	}
	return e.factory(context.Background(), uint64(e.opts.Hash)<<20)
}

func (e *Engine) newEvaluator() eval.Composite {
	var noise eval.Random
	if e.opts.Noise > 0 {
		noise = eval.NewRandom(int(e.opts.Noise), e.seed)
	}
	return eval.NewComposite(noise)
}

// Board returns an independent copy of the current line of play.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.b.Fork()
}

// Position returns the current position in FEN.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fen.Encode(e.b.Position())
}

// Reset replaces the current line of play with the position described by fenStr.
func (e *Engine) Reset(ctx context.Context, fenStr string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	pos, err := fen.Decode(fenStr)
	if err != nil {
		return err
	}

	e.b = board.NewBoardFromPosition(pos)
	e.tt = e.newTable()
	e.evaluator = e.newEvaluator()

	logw.Infof(ctx, "reset to %v", fenStr)
	return nil
}

// Move applies a move given in long algebraic notation, typically the
// opponent's reply relayed by the GUI.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	legal := e.b.Position().GenerateLegalMoves(nil)
	m, ok := board.ParseMove(move, legal)
	if !ok {
		return fmt.Errorf("illegal or invalid move: %v", move)
	}

	e.b.MakeMove(m)
	logw.Infof(ctx, "applied %v", m)
	return nil
}

// TakeBack undoes the most recent move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	if !e.b.CanUnmakeMove() {
		return fmt.Errorf("no move to take back")
	}
	e.b.UnmakeMove()
	logw.Infof(ctx, "take back")
	return nil
}

// Analyze launches an iterative-deepening search on a fork of the current
// position, so the GUI can keep issuing "position"/"go" without racing search.
func (e *Engine) Analyze(ctx context.Context, opt searchctl.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}
	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}

	logw.Infof(ctx, "analyze %v", opt)

	root := search.AlphaBeta{Eval: e.evaluator, Quiescence: search.Quiescence{}}
	launcher := &searchctl.Iterative{Root: root}

	handle, out := launcher.Launch(ctx, e.b.Fork(), e.tt, opt)
	e.active = handle
	return out, nil
}

// Halt stops the active search and returns its last completed PV.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active == nil {
		return search.PV{}, false
	}
	pv := e.active.Halt()
	logw.Infof(ctx, "search halted: %v", pv)
	e.active = nil
	return pv, true
}
