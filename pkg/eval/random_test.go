package eval_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wry-raven/raven/pkg/board"
	"github.com/wry-raven/raven/pkg/eval"
)

func TestRandomZeroValueNeverPerturbs(t *testing.T) {
	var r eval.Random
	pos := board.NewPosition()
	for i := 0; i < 10; i++ {
		assert.Equal(t, eval.Score(0), r.Evaluate(context.Background(), pos))
	}
}

func TestRandomIsBoundedByLimit(t *testing.T) {
	r := eval.NewRandom(20, 42)
	pos := board.NewPosition()
	for i := 0; i < 50; i++ {
		s := r.Evaluate(context.Background(), pos)
		assert.True(t, s >= -10 && s <= 9, "noise %v outside bound", s)
	}
}
