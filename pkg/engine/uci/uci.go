// Package uci contains a driver for using the engine under the UCI protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
// See: https://en.wikipedia.org/wiki/Universal_Chess_Interface
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/seekerror/logw"
	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/board/fen"
	"github.com/wry-raven/raven/pkg/engine"
	"github.com/wry-raven/raven/pkg/search"
	"github.com/wry-raven/raven/pkg/search/searchctl"
	"go.uber.org/atomic"

	"github.com/seekerror/stdlib/pkg/lang"
)

// ProtocolName is the line a GUI sends to switch the engine into UCI mode.
const ProtocolName = "uci"

// Driver implements a UCI driver for an engine. It is activated if sent "uci".
type Driver struct {
	e *engine.Engine

	out chan<- string

	active       atomic.Bool    // user is waiting for engine to move
	ponder       chan search.PV // chan for intermediate search information
	lastPosition string         // last position line (empty if no last position)

	quit   chan struct{}
	closed atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		out:    out,
		ponder: make(chan search.PV, 400),
		quit:   make(chan struct{}),
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	// * uci
	//
	//	tell engine to use the uci (universal chess interface),
	//	this will be sent once as a first command after program boot to tell the
	//	engine to switch to uci mode. After receiving the uci command the engine
	//	must identify itself with the "id" command and send the "option" commands
	//	to tell the GUI which engine settings the engine supports if any. After
	//	that the engine should send "uciok" to acknowledge the uci mode.

	logw.Infof(ctx, "UCI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())

	// * option
	//
	//	This command tells the GUI which parameters can be changed in the
	//	engine. This should be sent once at engine startup after the "uci" and
	//	the "id" commands if any parameter can be changed in the engine.

	opt := d.e.Options()
	d.out <- fmt.Sprintf("option name Hash type spin default %v min 0 max 4096", opt.Hash)
	d.out <- fmt.Sprintf("option name Depth type spin default %v min 0 max 64", opt.Depth)
	d.out <- fmt.Sprintf("option name Noise type spin default %v min 0 max 1000", opt.Noise)

	// * uciok
	//
	//	Must be sent after the id and optional options to tell the GUI that the
	//	engine has sent all infos and is ready in uci mode.

	d.out <- "uciok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Split(strings.TrimSpace(line), " ")
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "isready":
				// * isready
				//
				//	this is used to synchronize the engine with the GUI. Must always
				//	be answered with "readyok", even while the engine is calculating.

				d.out <- "readyok"

			case "debug":
				// * debug [ on | off ]
				//
				//	switch the debug mode of the engine on and off. Ignored: logw's
				//	level already controls how much the engine traces.

			case "setoption":
				// * setoption name <id> [value <x>]
				//
				//	this is sent to the engine when the user wants to change the
				//	internal parameters of the engine.

				var name, value string
				if len(args) > 1 {
					name = args[1]
				}
				if len(args) > 3 {
					value = args[3]
				}

				n, err := strconv.Atoi(value)
				switch name {
				case "Hash":
					if err == nil && n >= 0 {
						d.e.SetHash(uint(n))
					}
				case "Depth":
					if err == nil && n >= 0 {
						d.e.SetDepth(uint(n))
					}
				case "Noise":
					if err == nil && n >= 0 {
						d.e.SetNoise(uint(n))
					}
				}

			case "register":
				// * register
				//
				//	registration is not required by this engine; ignored.

			case "ucinewgame":
				// * ucinewgame
				//
				//	this is sent to the engine when the next search will be from a
				//	different game. As the GUI should always follow this with
				//	"isready", no response is required here.

				d.ensureInactive(ctx)
				d.lastPosition = ""

			case "position":
				// * position [fen <fenstring> | startpos ] moves <move1> .... <movei>
				//
				//	set up the position described in fenstring on the internal board
				//	and play the moves on the internal chess board.

				d.ensureInactive(ctx)

				if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
					// Continuation of game.

					moves := strings.TrimSpace(strings.TrimPrefix(line, d.lastPosition))
					for _, arg := range strings.Split(moves, " ") {
						if arg == "" || arg == "moves" {
							continue
						}
						if err := d.e.Move(ctx, arg); err != nil {
							logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
							return
						}
					}

					d.lastPosition = line
					break
				}

				// New position.

				position := fen.Initial
				if len(args) >= 7 && args[0] == "fen" {
					position = strings.Join(args[1:7], " ")
				}

				if err := d.e.Reset(ctx, position); err != nil {
					logw.Errorf(ctx, "Invalid position: %v", line)
					return
				}

				move := false
				for _, arg := range args {
					if arg == "moves" {
						move = true
						continue
					}
					if !move {
						continue
					}
					if err := d.e.Move(ctx, arg); err != nil {
						logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
						return
					}
				}
				d.lastPosition = line

			case "go":
				// * go
				//
				//	start calculating on the current position set up with the
				//	"position" command. searchmoves, ponder, mate and nodes are not
				//	supported by this engine and are silently ignored.

				d.ensureInactive(ctx)

				var opt searchctl.Options
				var tc searchctl.TimeControl
				hasTimeControl := false
				infinite := false
				movetime := time.Duration(0)

				for i := 0; i < len(args); i++ {
					cmd := args[i]
					switch cmd {
					case "wtime", "btime", "winc", "binc", "movestogo", "depth", "movetime":
						i++
						if i == len(args) {
							logw.Errorf(ctx, "No argument for %v: %v", cmd, line)
							return
						}
						n, err := strconv.Atoi(args[i])
						if err != nil {
							logw.Errorf(ctx, "Invalid argument for %v: %v", line, err)
							return
						}

						switch cmd {
						case "depth":
							opt.DepthLimit = lang.Some(uint(n))
						case "wtime":
							hasTimeControl = true
							tc.White = time.Millisecond * time.Duration(n)
						case "btime":
							hasTimeControl = true
							tc.Black = time.Millisecond * time.Duration(n)
						case "winc":
							hasTimeControl = true
							tc.WhiteInc = time.Millisecond * time.Duration(n)
						case "binc":
							hasTimeControl = true
							tc.BlackInc = time.Millisecond * time.Duration(n)
						case "movestogo":
							hasTimeControl = true
							tc.MovesToGo = n
						case "movetime":
							hasTimeControl = true
							movetime = time.Millisecond * time.Duration(n)
						}

					case "infinite":
						infinite = true

					default:
						// searchmoves, ponder, mate, nodes: silently ignored.
					}
				}
				if movetime > 0 {
					tc.MoveTime = movetime
				}
				if hasTimeControl {
					opt.TimeControl = lang.Some(tc)
				}

				out, err := d.e.Analyze(ctx, opt)
				if err != nil {
					logw.Errorf(ctx, "Analyze failed: %v", err)
					return
				}
				d.active.Store(true)

				// Forward ponder info. Complete search if it ends, unless infinite.

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.ponder <- pv
					}
					if !infinite {
						d.searchCompleted(ctx, last)
					}
				}()

			case "stop":
				// * stop
				//
				//	stop calculating as soon as possible, don't forget the
				//	"bestmove" token when finishing the search.

				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "ponderhit":
				// * ponderhit
				//
				//	pondering is not supported by this engine; ignored.

			case "quit":
				// * quit
				//
				//	quit the program as soon as possible.

				return

			default:
				logw.Warningf(ctx, "Unknown command '%v': %v", cmd, args)
			}

		case pv := <-d.ponder:
			// * info
			//
			//	the engine wants to send infos to the GUI, e.g.
			//	"info depth 2 score cp 214 time 1242 nodes 2124 nps 34928 pv e2e4 e7e5 g1f3"

			if d.active.Load() {
				d.out <- printPV(pv)
			}

		case <-d.quit:
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if d.active.CAS(true, false) {
		if len(pv.Moves) > 0 {
			// * bestmove <move1> [ ponder <move2> ]
			//
			//	the engine has stopped searching and found the move <move> best in
			//	this position. Directly before, the engine sends a final "info"
			//	command with the final search information.

			d.out <- printPV(pv)
			d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
		} else {
			// No PV. Position is checkmate or stalemate. Send NullMove.

			d.out <- "bestmove 0000"
		}
	} // else: stale or duplicate result
}

func printPV(pv search.PV) string {
	// "info depth 2 score cp 214 time 1242 nodes 2124 nps 34928 pv e2e4 e7e5 g1f3"

	parts := []string{"info"}
	parts = append(parts, fmt.Sprintf("depth %v", pv.Depth))
	if mply, ok := pv.Score.MatePly(); ok {
		abs := mply
		if abs < 0 {
			abs = -abs
		}
		movesToMate := (abs + 1) / 2
		if mply < 0 {
			movesToMate = -movesToMate
		}
		parts = append(parts, fmt.Sprintf("score mate %v", movesToMate))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", int(pv.Score)))
	}
	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %v", pv.Time.Milliseconds()))
	}
	if pv.Nodes > 0 && pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("nps %v", uint64(time.Second)*pv.Nodes/uint64(pv.Time)))
	}
	if pv.Hash > 0 {
		parts = append(parts, fmt.Sprintf("hashfull %v", int(pv.Hash*1000)))
	}
	if len(pv.Moves) > 0 {
		parts = append(parts, "pv")
		parts = append(parts, board.FormatMoves(pv.Moves))
	}

	return strings.Join(parts, " ")
}

