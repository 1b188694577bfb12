package board

import "strings"

// Castling represents a set of castling rights. 4 bits.
type Castling uint8

const (
	WhiteKingSide Castling = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

const (
	ZeroCastling Castling = 0
	NumCastling  Castling = 16 // 2^4 distinct combinations of the four rights.
	FullCastling          = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// RightsFor returns the king-side and queen-side rights belonging to the given color.
func RightsFor(c Color) (king, queen Castling) {
	if c == White {
		return WhiteKingSide, WhiteQueenSide
	}
	return BlackKingSide, BlackQueenSide
}

func (c Castling) Has(right Castling) bool {
	return c&right != 0
}

func (c Castling) String() string {
	if c == 0 {
		return "-"
	}

	var sb strings.Builder
	if c.Has(WhiteKingSide) {
		sb.WriteByte('K')
	}
	if c.Has(WhiteQueenSide) {
		sb.WriteByte('Q')
	}
	if c.Has(BlackKingSide) {
		sb.WriteByte('k')
	}
	if c.Has(BlackQueenSide) {
		sb.WriteByte('q')
	}
	return sb.String()
}

func ParseCastling(s string) (Castling, bool) {
	var ret Castling
	if s == "-" {
		return ret, true
	}
	for _, r := range s {
		switch r {
		case 'K':
			ret |= WhiteKingSide
		case 'Q':
			ret |= WhiteQueenSide
		case 'k':
			ret |= BlackKingSide
		case 'q':
			ret |= BlackQueenSide
		default:
			return 0, false
		}
	}
	return ret, true
}

// castlingSpec describes the fixed geometry of a single castling side: king
// origin/destination, the rook that moves with it, the squares that must be
// empty, and the squares (including the king's own) that must not be attacked.
type castlingSpec struct {
	Right               Castling
	KingFrom, KingTo    Square
	RookFrom, RookTo    Square
	Empty               Bitboard // must be fully unoccupied
	KingPath            [3]Square
	KingPathLen         int // number of KingPath squares the king must not be attacked on (origin, transit, dest)
}

var castlingSpecs = [4]castlingSpec{
	{ // White king-side: e1g1, h1f1
		Right: WhiteKingSide, KingFrom: E1, KingTo: G1, RookFrom: H1, RookTo: F1,
		Empty: BitMask(F1) | BitMask(G1), KingPath: [3]Square{E1, F1, G1}, KingPathLen: 3,
	},
	{ // White queen-side: e1c1, a1d1
		Right: WhiteQueenSide, KingFrom: E1, KingTo: C1, RookFrom: A1, RookTo: D1,
		Empty: BitMask(B1) | BitMask(C1) | BitMask(D1), KingPath: [3]Square{E1, D1, C1}, KingPathLen: 3,
	},
	{ // Black king-side: e8g8, h8f8
		Right: BlackKingSide, KingFrom: E8, KingTo: G8, RookFrom: H8, RookTo: F8,
		Empty: BitMask(F8) | BitMask(G8), KingPath: [3]Square{E8, F8, G8}, KingPathLen: 3,
	},
	{ // Black queen-side: e8c8, a8d8
		Right: BlackQueenSide, KingFrom: E8, KingTo: C8, RookFrom: A8, RookTo: D8,
		Empty: BitMask(B8) | BitMask(C8) | BitMask(D8), KingPath: [3]Square{E8, D8, C8}, KingPathLen: 3,
	},
}

// rookHomeRight returns the castling right lost, if any, when a piece moves from
// or captures onto the given square (a rook's starting square).
func rookHomeRight(sq Square) Castling {
	switch sq {
	case H1:
		return WhiteKingSide
	case A1:
		return WhiteQueenSide
	case H8:
		return BlackKingSide
	case A8:
		return BlackQueenSide
	default:
		return 0
	}
}

// kingHomeRights returns both rights lost when the king of the given color moves.
func kingHomeRights(c Color) Castling {
	if c == White {
		return WhiteKingSide | WhiteQueenSide
	}
	return BlackKingSide | BlackQueenSide
}
