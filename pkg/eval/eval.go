package eval

import (
	"context"

	"github.com/wry-raven/raven/pkg/board"
)

// Evaluator is a static position evaluator. It returns a side-to-move-relative
// score: positive always favors whoever is about to move, matching the
// negamax sign convention search uses throughout.
type Evaluator interface {
	Evaluate(ctx context.Context, pos *board.Position) Score
}

// Composite is the default evaluator: material plus the positional terms
// defined across this package, each independently weighted and summed.
type Composite struct {
	Noise Random
}

func NewComposite(noise Random) Composite {
	return Composite{Noise: noise}
}

func (c Composite) Evaluate(ctx context.Context, pos *board.Position) Score {
	if pos.HasInsufficientMaterial() {
		return Draw
	}

	s := Material(pos)
	s += PawnStructure(pos)
	s += Mobility(pos)
	s += RookFiles(pos)
	s += KingSafety(pos)
	s += c.Noise.Evaluate(ctx, pos)

	return Crop(s)
}
