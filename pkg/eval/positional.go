package eval

import "github.com/wry-raven/raven/pkg/board"

const (
	mobilityWeight    Score = 2
	openFileBonus     Score = 20
	semiOpenFileBonus Score = 10
	kingAttackWeight  Score = 5
)

// Mobility counts legal-ish destination squares for knights, bishops, rooks and
// queens (pseudo-legal, not filtered for leaving the king in check — an
// approximation standard for this cheap a term) and returns the side-to-move
// relative difference, scaled down since raw move counts run much higher than a
// centipawn-scale term should swing.
func Mobility(pos *board.Position) Score {
	return mobilityFor(pos, pos.SideToMove) - mobilityFor(pos, pos.SideToMove.Opponent())
}

func mobilityFor(pos *board.Position, c board.Color) Score {
	own := pos.OccupiedBy(c)
	occupied := pos.Occupied()

	count := 0
	for _, sq := range pos.PieceBB(c, board.Knight).Squares() {
		count += (board.KnightAttackboard(sq) &^ own).PopCount()
	}
	for _, sq := range pos.PieceBB(c, board.Bishop).Squares() {
		count += (board.BishopAttackboard(sq, occupied) &^ own).PopCount()
	}
	for _, sq := range pos.PieceBB(c, board.Rook).Squares() {
		count += (board.RookAttackboard(sq, occupied) &^ own).PopCount()
	}
	for _, sq := range pos.PieceBB(c, board.Queen).Squares() {
		count += (board.QueenAttackboard(sq, occupied) &^ own).PopCount()
	}
	return Score(count) * mobilityWeight
}

// RookFiles rewards rooks standing on open (no pawns of either color) or
// semi-open (no friendly pawn) files.
func RookFiles(pos *board.Position) Score {
	return rookFilesFor(pos, pos.SideToMove) - rookFilesFor(pos, pos.SideToMove.Opponent())
}

func rookFilesFor(pos *board.Position, c board.Color) Score {
	ownPawns := pos.PieceBB(c, board.Pawn)
	enemyPawns := pos.PieceBB(c.Opponent(), board.Pawn)

	var s Score
	for _, sq := range pos.PieceBB(c, board.Rook).Squares() {
		file := board.BitFile(sq.File())
		switch {
		case file&(ownPawns|enemyPawns) == 0:
			s += openFileBonus
		case file&ownPawns == 0:
			s += semiOpenFileBonus
		}
	}
	return s
}

// KingSafety rewards attacking the squares immediately around the enemy king,
// a cheap proxy for mating-attack potential.
//
// TODO: weight this by board.Board.HasCastled once Evaluator takes a Board
// instead of a bare Position — a king that has already castled should be
// judged by a tighter ring than one still on its home square.
func KingSafety(pos *board.Position) Score {
	return kingSafetyFor(pos, pos.SideToMove) - kingSafetyFor(pos, pos.SideToMove.Opponent())
}

func kingSafetyFor(pos *board.Position, c board.Color) Score {
	them := c.Opponent()
	ring := board.KingAttackboard(pos.KingSquare(them))

	attackers := 0
	for _, sq := range ring.Squares() {
		if pos.IsAttacked(sq, c) {
			attackers++
		}
	}
	return Score(attackers) * kingAttackWeight
}
