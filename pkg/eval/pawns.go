package eval

import "github.com/wry-raven/raven/pkg/board"

const (
	doubledPawnPenalty   Score = -20
	isolatedPawnPenalty  Score = -15
	backwardPawnPenalty  Score = -10
	centerPawnBonus      Score = 15
	blockedCenterPenalty Score = -10
)

// adjacentFiles returns the bitboard of the files neighboring f, used to test
// for isolation and backwardness.
func adjacentFiles(f board.File) board.Bitboard {
	var bb board.Bitboard
	if f > board.FileA {
		bb |= board.BitFile(f - 1)
	}
	if f < board.FileH {
		bb |= board.BitFile(f + 1)
	}
	return bb
}

// PawnStructure scores doubled, isolated and backward pawns, and rewards pawns
// anchored on the center files/ranks. It returns the side-to-move-relative
// balance.
func PawnStructure(pos *board.Position) Score {
	return pawnStructureFor(pos, pos.SideToMove) - pawnStructureFor(pos, pos.SideToMove.Opponent())
}

func pawnStructureFor(pos *board.Position, c board.Color) Score {
	pawns := pos.PieceBB(c, board.Pawn)
	var s Score

	for f := board.ZeroFile; f < board.NumFiles; f++ {
		onFile := (pawns & board.BitFile(f)).PopCount()
		if onFile > 1 {
			s += doubledPawnPenalty * Score(onFile-1)
		}
		if onFile == 0 {
			continue
		}
		if pawns&adjacentFiles(f) == 0 {
			s += isolatedPawnPenalty * Score(onFile)
		}
	}

	for _, sq := range pawns.Squares() {
		if sq.File() == board.FileD || sq.File() == board.FileE {
			if sq.Rank() == board.PawnJumpRank(c) {
				s += centerPawnBonus
			}
		}
	}

	s += blockedCenterPawns(pos, c)
	s += backwardPawns(pos, c)
	return s
}

// blockedCenterPawns penalizes a d- or e-pawn still on its starting square with
// a friendly piece directly blocking its single push, a classic sign of a
// cramped opening position.
func blockedCenterPawns(pos *board.Position, c board.Color) Score {
	var s Score
	start := board.PawnStartRank(c)
	for _, f := range [...]board.File{board.FileD, board.FileE} {
		sq := board.NewSquare(f, start)
		if !pos.PieceBB(c, board.Pawn).IsSet(sq) {
			continue
		}
		aheadRank := start + 1
		if c == board.Black {
			aheadRank = start - 1
		}
		aheadSq := board.NewSquare(f, aheadRank)
		if _, color, ok := pos.PieceAt(aheadSq); ok && color == c {
			s += blockedCenterPenalty
		}
	}
	return s
}

// backwardPawns penalizes a pawn that has no friendly pawn on an adjacent file
// level with or behind it and cannot safely advance because the square ahead is
// controlled by an enemy pawn.
func backwardPawns(pos *board.Position, c board.Color) Score {
	pawns := pos.PieceBB(c, board.Pawn)
	them := c.Opponent()
	enemyPawns := pos.PieceBB(them, board.Pawn)

	var s Score
	for _, sq := range pawns.Squares() {
		f, r := sq.File(), sq.Rank()
		support := adjacentFiles(f) & pawns
		behindOrLevel := false
		for _, sup := range support.Squares() {
			if (c == board.White && sup.Rank() <= r) || (c == board.Black && sup.Rank() >= r) {
				behindOrLevel = true
				break
			}
		}
		if behindOrLevel {
			continue
		}

		ahead := board.PawnPushboard(c, pos.Occupied(), board.BitMask(sq))
		if ahead == 0 {
			continue
		}
		aheadSq := ahead.LSB()
		if board.PawnAttackboard(them, board.BitMask(aheadSq))&enemyPawns != 0 {
			s += backwardPawnPenalty
		}
	}
	return s
}
