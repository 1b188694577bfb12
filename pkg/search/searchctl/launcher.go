// Package searchctl orchestrates iterative-deepening search under time and
// depth controls, on top of the fixed-depth primitives in package search.
package searchctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/search"
)

// Options hold the dynamic limits for a single search.
type Options struct {
	DepthLimit  lang.Optional[uint]
	TimeControl lang.Optional[TimeControl]
}

func (o Options) String() string {
	var parts []string
	if v, ok := o.DepthLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		parts = append(parts, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(parts, ", "))
}

// Launcher starts an iterative-deepening search and returns a handle plus a
// channel of progressively deeper principal variations.
type Launcher interface {
	Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, opt Options) (Handle, <-chan search.PV)
}

// Handle lets the caller stop an in-flight search and retrieve its final PV.
type Handle interface {
	// Halt stops the search, if running, and returns its last completed PV.
	// Idempotent: calling it more than once returns the same result.
	Halt() search.PV
}
