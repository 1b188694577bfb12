package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/wry-raven/raven/pkg/board"
)

// moveTimeSafetyMargin is subtracted from a move-time budget to leave room for
// UCI I/O and engine overhead before the time control's hard limit bites.
const moveTimeSafetyMargin = 100 * time.Millisecond

// TimeControl mirrors the UCI "go" time fields: per-side remaining clock and
// increment, plus an optional moves-to-go count, or a flat per-move budget.
type TimeControl struct {
	White, Black         time.Duration
	WhiteInc, BlackInc   time.Duration
	MovesToGo            int // 0 == rest of game
	MoveTime             time.Duration // if set, overrides clock-based budgeting
}

// Limits returns the soft and hard deadlines for the side to move. Past the
// soft limit, no new iteration should be started; the hard limit cuts off a
// search already in flight. When MoveTime is set, the hard limit is MoveTime
// itself and the soft limit is MoveTime minus a small safety margin (or MoveTime,
// if it is shorter than the margin), matching a fixed-move-time "go movetime" request.
func (t TimeControl) Limits(c board.Color) (time.Duration, time.Duration) {
	if t.MoveTime > 0 {
		budget := t.MoveTime - moveTimeSafetyMargin
		if budget < 0 {
			budget = t.MoveTime
		}
		return budget, t.MoveTime
	}

	remainder, inc := t.White, t.WhiteInc
	if c == board.Black {
		remainder, inc = t.Black, t.BlackInc
	}

	movesToGo := time.Duration(40)
	if t.MovesToGo > 0 {
		movesToGo = time.Duration(t.MovesToGo)
	}

	soft := remainder/(2*movesToGo) + inc/2
	hard := 3 * soft
	if hard > remainder-moveTimeSafetyMargin && remainder > moveTimeSafetyMargin {
		hard = remainder - moveTimeSafetyMargin
	}
	return soft, hard
}

func (t TimeControl) String() string {
	if t.MoveTime > 0 {
		return fmt.Sprintf("movetime=%v", t.MoveTime)
	}
	return fmt.Sprintf("%v<>%v moves=%v", t.White, t.Black, t.MovesToGo)
}

// EnforceTimeControl schedules a hard halt if a time control is set, and
// returns the soft limit a caller should use to decide whether to begin
// another iteration.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], turn board.Color) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(turn)
	timer := time.AfterFunc(hard, func() { h.Halt() })
	go func() {
		<-ctx.Done()
		timer.Stop()
	}()

	logw.Debugf(ctx, "time control for %v: soft=%v hard=%v", c, soft, hard)
	return soft, true
}
