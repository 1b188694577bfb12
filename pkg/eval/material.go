package eval

import "github.com/wry-raven/raven/pkg/board"

// NominalValue is the absolute centipawn value of a piece kind, independent of
// position. The king has no material value: it can never be captured, and its
// safety is scored separately.
func NominalValue(p board.Piece) Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight, board.Bishop:
		return 300
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	default:
		return 0
	}
}

// Material returns the side-to-move-relative material balance.
func Material(pos *board.Position) Score {
	us, them := pos.SideToMove, pos.SideToMove.Opponent()

	var s Score
	for _, p := range board.AllPieces {
		diff := pos.PieceBB(us, p).PopCount() - pos.PieceBB(them, p).PopCount()
		s += Score(diff) * NominalValue(p)
	}
	return s
}

// GainOf returns the nominal material swing a move produces, read from its
// Apply-populated backup fields: captured piece value, plus promotion gain
// over the pawn it replaces. Only meaningful after Position.Apply has run.
func GainOf(m board.Move) Score {
	var s Score
	if m.Kind.IsCapture() {
		s += NominalValue(m.Captured)
	}
	if m.Kind.IsPromotion() {
		s += NominalValue(m.Promote) - NominalValue(board.Pawn)
	}
	return s
}

// MVVLVAGain estimates a pseudo-legal move's material gain before it is
// applied, for move ordering: captured piece value (read directly off the
// board, since m.Captured is not populated until Apply runs) plus promotion
// gain over the pawn it replaces.
func MVVLVAGain(pos *board.Position, m board.Move) Score {
	var s Score
	switch {
	case m.Kind == board.EnPassant:
		s += NominalValue(board.Pawn)
	case m.Kind.IsCapture():
		if p, _, ok := pos.PieceAt(m.To); ok {
			s += NominalValue(p)
		}
	}
	if m.Kind.IsPromotion() {
		s += NominalValue(m.Promote) - NominalValue(board.Pawn)
	}
	return s
}
