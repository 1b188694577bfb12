// perft is a move generation debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/seekerror/logw"
	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/board/fen"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *position == "" {
		*position = fen.Initial
	}

	pos, err := fen.Decode(*position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := perft(pos, i, *divide && i == *depth)
		duration := time.Since(start)

		fmt.Printf("perft,%v,%v,%v,%v\n", *position, i, nodes, duration.Microseconds())
	}
}

// perft counts the leaf nodes reachable from pos at the given depth, walking
// pseudo-legal moves and discarding any that leave the mover's own king in
// check after Apply. When d is set, the per-root-move subtree counts are
// printed first, so a perft mismatch can be chased down one root move at a time.
func perft(pos *board.Position, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}

	us := pos.SideToMove
	var nodes int64
	for _, m := range pos.GeneratePseudoLegalMoves(nil) {
		pos.Apply(&m)
		if !pos.IsAttacked(pos.KingSquare(us), us.Opponent()) {
			count := perft(pos, depth-1, false)
			if d {
				fmt.Printf("%v: %v\n", m, count)
			}
			nodes += count
		}
		pos.Undo(m)
	}
	return nodes
}
