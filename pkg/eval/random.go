package eval

import (
	"context"
	"math/rand"

	"github.com/wry-raven/raven/pkg/board"
)

// Random adds a small amount of noise to evaluations, used to vary otherwise
// deterministic engine play across games. limit bounds the noise in
// centipawns, symmetric around zero; the zero value never perturbs anything.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{limit: limit, rand: rand.New(rand.NewSource(seed))}
}

func (n Random) Evaluate(ctx context.Context, pos *board.Position) Score {
	if n.limit <= 0 || n.rand == nil {
		return 0
	}
	return Score(n.rand.Intn(n.limit) - n.limit/2)
}
