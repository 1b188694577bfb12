// raven is a UCI chess engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/seekerror/logw"
	"github.com/wry-raven/raven/pkg/board/fen"
	"github.com/wry-raven/raven/pkg/engine"
	"github.com/wry-raven/raven/pkg/engine/uci"
)

var (
	depth    = flag.Uint("depth", 0, "Search depth limit (zero if no limit)")
	hash     = flag.Uint("hash", 32, "Transposition table size in MB (zero disables it)")
	noise    = flag.Uint("noise", 0, "Evaluation noise in centipawns (zero if deterministic)")
	position = flag.String("fen", "", "Start position (default to standard)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: raven [options]

RAVEN is a UCI chess engine using bitboard move generation and iterative-
deepening alpha-beta search.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	if *position == "" {
		*position = fen.Initial
	}

	e := engine.New(ctx, "raven", "wry-raven",
		engine.WithOptions(engine.Options{Depth: *depth, Hash: *hash, Noise: *noise}),
	)
	if err := e.Reset(ctx, *position); err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", *position, err)
	}

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
