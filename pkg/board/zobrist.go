package board

import "math/rand"

// Zobrist keys. The table is seeded deterministically so that hashes are stable
// across runs and processes, which matters for reproducing perft/search results.
const zobristSeed = 1070372

// castlingRights enumerates the four individual rights in a fixed order, used
// to size and index the per-right Zobrist key table.
var castlingRights = [4]Castling{WhiteKingSide, WhiteQueenSide, BlackKingSide, BlackQueenSide}

var (
	zobristPieceSquare [NumColors][NumPieces][NumSquares]uint64
	zobristSideToMove  uint64
	zobristCastling    [4]uint64 // one key per right, not per combination: castlingKey XORs the set ones
	zobristEnPassant   [NumFiles]uint64
)

func init() {
	rng := rand.New(rand.NewSource(zobristSeed))

	for c := ZeroColor; c < NumColors; c++ {
		for p := Pawn; p <= King; p++ {
			for sq := ZeroSquare; sq < NumSquares; sq++ {
				zobristPieceSquare[c][p][sq] = rng.Uint64()
			}
		}
	}
	zobristSideToMove = rng.Uint64()
	for i := range zobristCastling {
		zobristCastling[i] = rng.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.Uint64()
	}
}

func pieceSquareKey(c Color, p Piece, sq Square) uint64 {
	return zobristPieceSquare[c][p][sq]
}

func sideToMoveKey() uint64 {
	return zobristSideToMove
}

// castlingKey XORs together the per-right key of every right set in c, so
// castlingKey(ZeroCastling) is always 0 and toggling a single right is a
// self-contained XOR — no assumed baseline to keep in sync with.
func castlingKey(c Castling) uint64 {
	var key uint64
	for i, right := range castlingRights {
		if c.Has(right) {
			key ^= zobristCastling[i]
		}
	}
	return key
}

// enPassantKey returns the key contribution for an en passant target square, or 0
// if sq is NoSquare. Only the file matters: the rank is implied by the side to move.
func enPassantKey(sq Square) uint64 {
	if sq == NoSquare {
		return 0
	}
	return zobristEnPassant[sq.File()]
}
