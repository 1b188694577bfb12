// Package fen reads and writes chess positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/wry-raven/raven/pkg/board"
)

// Initial is the FEN for the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a Position. The two move clocks are carried
// on the returned Position itself (pos.Halfmove, pos.Fullmove); callers that
// want them standalone can read them back off pos.
func Decode(s string) (*board.Position, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 6 {
		return nil, fmt.Errorf("fen: expected 6 fields, got %d: %q", len(parts), s)
	}

	pos := board.Empty()

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen: expected 8 ranks, got %d: %q", len(ranks), s)
	}
	for i, rankStr := range ranks {
		r := board.Rank(7 - i)
		f := board.ZeroFile
		for _, ch := range rankStr {
			switch {
			case unicode.IsDigit(ch):
				f += board.File(ch - '0')
			case unicode.IsLetter(ch):
				if f >= board.NumFiles {
					return nil, fmt.Errorf("fen: rank %v overflows: %q", r, s)
				}
				c, p, ok := parsePiece(ch)
				if !ok {
					return nil, fmt.Errorf("fen: invalid piece %q: %q", ch, s)
				}
				pos.Put(c, p, board.NewSquare(f, r))
				f++
			default:
				return nil, fmt.Errorf("fen: invalid character %q: %q", ch, s)
			}
		}
		if f != board.NumFiles {
			return nil, fmt.Errorf("fen: rank %v has wrong length: %q", r, s)
		}
	}

	active, ok := board.ParseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("fen: invalid active color: %q", s)
	}
	pos.SetSideToMove(active)

	castling, ok := board.ParseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("fen: invalid castling field: %q", s)
	}
	pos.SetCastlingRights(castling)

	ep := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("fen: invalid en passant square: %q", s)
		}
		ep = sq
	}
	pos.SetEnPassant(ep)

	half, err := strconv.Atoi(parts[4])
	if err != nil || half < 0 {
		return nil, fmt.Errorf("fen: invalid halfmove clock: %q", s)
	}
	pos.Halfmove = half

	full, err := strconv.Atoi(parts[5])
	if err != nil || full < 1 {
		return nil, fmt.Errorf("fen: invalid fullmove number: %q", s)
	}
	pos.Fullmove = full

	return pos, nil
}

// Encode renders a position as a FEN record.
func Encode(pos *board.Position) string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		r := board.Rank(7 - i)
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			p, c, ok := pos.PieceAt(board.NewSquare(f, r))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(c, p))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if i < 7 {
			sb.WriteByte('/')
		}
	}

	ep := "-"
	if pos.EnPassant != board.NoSquare {
		ep = pos.EnPassant.String()
	}

	return fmt.Sprintf("%s %s %s %s %d %d",
		sb.String(), pos.SideToMove, pos.CastlingRights, ep, pos.Halfmove, pos.Fullmove)
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	p, ok := board.ParsePiece(r)
	if !ok {
		return board.ZeroColor, board.NoPiece, false
	}
	if unicode.IsUpper(r) {
		return board.White, p, true
	}
	return board.Black, p, true
}

func printPiece(c board.Color, p board.Piece) rune {
	r := []rune(p.String())[0]
	if c == board.White {
		return unicode.ToUpper(r)
	}
	return r
}
