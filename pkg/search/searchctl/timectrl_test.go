package searchctl_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/search/searchctl"
)

func TestTimeControlLimitsMoveTimeOverridesClock(t *testing.T) {
	tc := searchctl.TimeControl{MoveTime: 2 * time.Second, White: 60 * time.Second}
	soft, hard := tc.Limits(board.White)

	assert.Equal(t, 2*time.Second, hard)
	assert.Equal(t, 2*time.Second-100*time.Millisecond, soft)
}

func TestTimeControlLimitsMoveTimeSmallerThanSafetyMargin(t *testing.T) {
	tc := searchctl.TimeControl{MoveTime: 50 * time.Millisecond}
	soft, hard := tc.Limits(board.White)

	assert.Equal(t, 50*time.Millisecond, hard)
	assert.Equal(t, 50*time.Millisecond, soft, "budget must not go negative")
}

func TestTimeControlLimitsDefaultMovesToGo(t *testing.T) {
	tc := searchctl.TimeControl{White: 40 * time.Second, Black: 40 * time.Second}
	soft, hard := tc.Limits(board.White)

	wantSoft := 40 * time.Second / 80
	assert.Equal(t, wantSoft, soft)
	assert.Equal(t, 3*wantSoft, hard)
}

func TestTimeControlLimitsRespectsMovesToGo(t *testing.T) {
	tc := searchctl.TimeControl{White: 10 * time.Second, MovesToGo: 5}
	soft, _ := tc.Limits(board.White)

	assert.Equal(t, 10*time.Second/10, soft)
}

func TestTimeControlLimitsPicksSideByColor(t *testing.T) {
	tc := searchctl.TimeControl{White: 20 * time.Second, Black: 2 * time.Second}
	whiteSoft, _ := tc.Limits(board.White)
	blackSoft, _ := tc.Limits(board.Black)
	assert.True(t, whiteSoft > blackSoft)
}

func TestTimeControlLimitsCapsHardByRemainder(t *testing.T) {
	tc := searchctl.TimeControl{White: 1 * time.Second, MovesToGo: 1}
	soft, hard := tc.Limits(board.White)

	// soft = remainder/2 = 500ms, hard would be 1500ms uncapped, but remainder
	// minus the safety margin is only 900ms.
	assert.Equal(t, 500*time.Millisecond, soft)
	assert.Equal(t, 900*time.Millisecond, hard)
}
