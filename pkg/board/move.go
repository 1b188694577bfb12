package board

import (
	"fmt"
	"strings"
)

// MoveKind classifies a move for apply/undo bookkeeping and move ordering. It is
// derived, never stored independently of the squares/pieces that produced it.
type MoveKind uint8

const (
	Quiet MoveKind = iota
	DoublePawnPush
	Capture
	EnPassant
	KingCastle
	QueenCastle
	Promotion
	PromotionCapture
)

func (k MoveKind) IsCapture() bool {
	return k == Capture || k == EnPassant || k == PromotionCapture
}

func (k MoveKind) IsCastle() bool {
	return k == KingCastle || k == QueenCastle
}

func (k MoveKind) IsPromotion() bool {
	return k == Promotion || k == PromotionCapture
}

// Move is a single ply, self-contained enough to be undone without recomputation.
// Fields below the dashed line are backup state filled in by Position.Apply and
// consumed by Position.Undo; callers generating moves only need to set the fields
// above it.
type Move struct {
	From, To Square
	Piece    Piece // the piece kind doing the moving, before promotion
	Promote  Piece // NoPiece unless Kind.IsPromotion()
	Kind     MoveKind

	// --- backup state, written by Apply ---
	Captured      Piece
	CapturedAt    Square // differs from To only for en passant
	PrevCastling  Castling
	PrevEnPassant Square // NoSquare if none
	PrevHalfmove  int
	PrevHash      uint64
}

// NullMove is the sentinel move used for null-move pruning: it passes the turn
// without moving a piece.
var NullMove = Move{From: NoSquare, To: NoSquare, Piece: NoPiece, Kind: Quiet}

func (m Move) IsNull() bool {
	return m.Piece == NoPiece && m.From == NoSquare && m.To == NoSquare
}

// String renders the move in long algebraic notation, e.g. "e2e4" or "e7e8q".
// This is the only textual move form the engine supports; SAN is out of scope.
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	if m.Kind.IsPromotion() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promote)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// ParseMove decodes long algebraic notation against the given legal move list,
// returning the matching Move. The UCI protocol never sends SAN, only this form.
func ParseMove(s string, legal []Move) (Move, bool) {
	if len(s) < 4 || len(s) > 5 {
		return Move{}, false
	}
	from, err := ParseSquareStr(s[0:2])
	if err != nil {
		return Move{}, false
	}
	to, err := ParseSquareStr(s[2:4])
	if err != nil {
		return Move{}, false
	}
	var promote Piece
	if len(s) == 5 {
		p, ok := ParsePiece(rune(s[4]))
		if !ok {
			return Move{}, false
		}
		promote = p
	}

	for _, mv := range legal {
		if mv.From == from && mv.To == to && mv.Promote == promote {
			return mv, true
		}
	}
	return Move{}, false
}

// FormatMoves renders a principal variation as space-separated long algebraic
// moves, e.g. "e2e4 e7e5 g1f3".
func FormatMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
