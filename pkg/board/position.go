package board

// Position is the full mutable board state: piece placement, side to move,
// castling rights, en passant target, and the two clocks from FEN. It has no
// history of its own — Apply/Undo mutate it in place and rely entirely on the
// backup fields stashed in the Move passed to them, so making and unmaking a
// move costs no allocation.
type Position struct {
	pieces     [NumColors][NumPieces]Bitboard
	occupied   Bitboard
	occupiedBy [NumColors]Bitboard
	mailbox    [NumSquares]Piece
	colorbox   [NumSquares]Color

	SideToMove     Color
	CastlingRights Castling
	EnPassant      Square // NoSquare if none
	Halfmove       int    // halfmove clock since last capture or pawn push
	Fullmove       int    // starts at 1, increments after Black moves

	Hash uint64
}

// NewPosition returns the standard chess starting position.
func NewPosition() *Position {
	pos := &Position{EnPassant: NoSquare, Fullmove: 1}

	back := [8]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := ZeroFile; f < NumFiles; f++ {
		pos.put(White, back[f], NewSquare(f, Rank1))
		pos.put(White, Pawn, NewSquare(f, Rank2))
		pos.put(Black, Pawn, NewSquare(f, Rank7))
		pos.put(Black, back[f], NewSquare(f, Rank8))
	}
	pos.CastlingRights = FullCastling
	pos.Hash ^= castlingKey(pos.CastlingRights)
	return pos
}

// Empty returns a position with no pieces placed and White to move, used by the
// FEN decoder to build up an arbitrary position square by square.
func Empty() *Position {
	return &Position{EnPassant: NoSquare, Fullmove: 1}
}

func (pos *Position) put(c Color, p Piece, sq Square) {
	pos.pieces[c][p] = pos.pieces[c][p].Set(sq)
	pos.occupied = pos.occupied.Set(sq)
	pos.occupiedBy[c] = pos.occupiedBy[c].Set(sq)
	pos.mailbox[sq] = p
	pos.colorbox[sq] = c
	pos.Hash ^= pieceSquareKey(c, p, sq)
}

func (pos *Position) remove(c Color, p Piece, sq Square) {
	pos.pieces[c][p] = pos.pieces[c][p].Clear(sq)
	pos.occupied = pos.occupied.Clear(sq)
	pos.occupiedBy[c] = pos.occupiedBy[c].Clear(sq)
	pos.mailbox[sq] = NoPiece
	pos.Hash ^= pieceSquareKey(c, p, sq)
}

// Put places a piece on an empty square and updates the hash. Used by the FEN
// decoder; Apply/Undo use the unexported put/remove directly.
func (pos *Position) Put(c Color, p Piece, sq Square) {
	pos.put(c, p, sq)
}

// SetSideToMove, SetCastlingRights and SetEnPassant update the corresponding
// field along with its Zobrist contribution. They exist for the FEN decoder,
// which sets this state directly rather than through Apply.
func (pos *Position) SetSideToMove(c Color) {
	if c != pos.SideToMove {
		pos.Hash ^= sideToMoveKey()
		pos.SideToMove = c
	}
}

func (pos *Position) SetCastlingRights(c Castling) {
	pos.Hash ^= castlingKey(pos.CastlingRights)
	pos.CastlingRights = c
	pos.Hash ^= castlingKey(c)
}

func (pos *Position) SetEnPassant(sq Square) {
	pos.Hash ^= enPassantKey(pos.EnPassant)
	pos.EnPassant = sq
	pos.Hash ^= enPassantKey(sq)
}

func (pos *Position) PieceAt(sq Square) (Piece, Color, bool) {
	p := pos.mailbox[sq]
	if p == NoPiece {
		return NoPiece, ZeroColor, false
	}
	return p, pos.colorbox[sq], true
}

func (pos *Position) Occupied() Bitboard            { return pos.occupied }
func (pos *Position) OccupiedBy(c Color) Bitboard   { return pos.occupiedBy[c] }
func (pos *Position) PieceBB(c Color, p Piece) Bitboard { return pos.pieces[c][p] }

func (pos *Position) KingSquare(c Color) Square {
	return pos.pieces[c][King].LSB()
}

// Clone returns an independent copy. Position holds no pointers, so this is a
// plain value copy.
func (pos *Position) Clone() *Position {
	cp := *pos
	return &cp
}

// IsAttacked reports whether sq is attacked by any piece of color by, given the
// current occupancy. Used both for check detection and for the castling king-path
// safety rule.
func (pos *Position) IsAttacked(sq Square, by Color) bool {
	if PawnAttackboard(by.Opponent(), BitMask(sq))&pos.pieces[by][Pawn] != 0 {
		return true
	}
	if KnightAttackboard(sq)&pos.pieces[by][Knight] != 0 {
		return true
	}
	if KingAttackboard(sq)&pos.pieces[by][King] != 0 {
		return true
	}
	bishopsQueens := pos.pieces[by][Bishop] | pos.pieces[by][Queen]
	if bishopsQueens != 0 && BishopAttackboard(sq, pos.occupied)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := pos.pieces[by][Rook] | pos.pieces[by][Queen]
	if rooksQueens != 0 && RookAttackboard(sq, pos.occupied)&rooksQueens != 0 {
		return true
	}
	return false
}

func (pos *Position) InCheck(c Color) bool {
	return pos.IsAttacked(pos.KingSquare(c), c.Opponent())
}

func castlingSpecFor(kind MoveKind, c Color) castlingSpec {
	king, queen := RightsFor(c)
	want := king
	if kind == QueenCastle {
		want = queen
	}
	for _, s := range castlingSpecs {
		if s.Right == want {
			return s
		}
	}
	panic("board: invalid castling kind/color")
}

// Apply plays m against pos, mutating it in place and recording everything
// needed to undo it back into m's backup fields. Callers must pass m by pointer
// and keep the same value to later call Undo.
func (pos *Position) Apply(m *Move) {
	m.PrevCastling = pos.CastlingRights
	m.PrevEnPassant = pos.EnPassant
	m.PrevHalfmove = pos.Halfmove
	m.PrevHash = pos.Hash

	us := pos.SideToMove
	them := us.Opponent()

	if pos.EnPassant != NoSquare {
		pos.Hash ^= enPassantKey(pos.EnPassant)
	}

	pos.remove(us, m.Piece, m.From)

	m.Captured = NoPiece
	m.CapturedAt = NoSquare
	switch {
	case m.Kind == EnPassant:
		capSq := NewSquare(m.To.File(), m.From.Rank())
		m.Captured = Pawn
		m.CapturedAt = capSq
		pos.remove(them, Pawn, capSq)
	case pos.mailbox[m.To] != NoPiece:
		m.Captured = pos.mailbox[m.To]
		m.CapturedAt = m.To
		pos.remove(them, m.Captured, m.To)
	}

	dest := m.Piece
	if m.Kind.IsPromotion() {
		dest = m.Promote
	}
	pos.put(us, dest, m.To)

	if m.Kind.IsCastle() {
		spec := castlingSpecFor(m.Kind, us)
		pos.remove(us, Rook, spec.RookFrom)
		pos.put(us, Rook, spec.RookTo)
	}

	newRights := pos.CastlingRights
	if m.Piece == King {
		newRights &^= kingHomeRights(us)
	}
	newRights &^= rookHomeRight(m.From)
	newRights &^= rookHomeRight(m.To)
	if newRights != pos.CastlingRights {
		pos.Hash ^= castlingKey(pos.CastlingRights)
		pos.Hash ^= castlingKey(newRights)
		pos.CastlingRights = newRights
	}

	pos.EnPassant = NoSquare
	if m.Kind == DoublePawnPush {
		pos.EnPassant = Square((int(m.From) + int(m.To)) / 2)
		pos.Hash ^= enPassantKey(pos.EnPassant)
	}

	if m.Piece == Pawn || m.Kind.IsCapture() {
		pos.Halfmove = 0
	} else {
		pos.Halfmove++
	}
	if us == Black {
		pos.Fullmove++
	}

	pos.Hash ^= sideToMoveKey()
	pos.SideToMove = them
}

// Undo reverses a move previously played with Apply. m must be the exact value
// Apply populated; passing a different move is undefined.
func (pos *Position) Undo(m Move) {
	them := pos.SideToMove
	us := them.Opponent()

	dest := pos.mailbox[m.To]
	pos.remove(us, dest, m.To)
	pos.put(us, m.Piece, m.From)

	if m.Kind.IsCastle() {
		spec := castlingSpecFor(m.Kind, us)
		pos.remove(us, Rook, spec.RookTo)
		pos.put(us, Rook, spec.RookFrom)
	}

	if m.Kind.IsCapture() {
		pos.put(them, m.Captured, m.CapturedAt)
	}

	pos.CastlingRights = m.PrevCastling
	pos.EnPassant = m.PrevEnPassant
	pos.Halfmove = m.PrevHalfmove
	pos.Hash = m.PrevHash
	pos.SideToMove = us
	if us == Black {
		pos.Fullmove--
	}
}

// ApplyNull passes the move without moving a piece, used by null-move pruning.
// It returns the state Undo needs, since there is no Move value to stash it in.
func (pos *Position) ApplyNull() (prevEnPassant Square, prevHash uint64) {
	prevEnPassant, prevHash = pos.EnPassant, pos.Hash
	if pos.EnPassant != NoSquare {
		pos.Hash ^= enPassantKey(pos.EnPassant)
		pos.EnPassant = NoSquare
	}
	pos.Hash ^= sideToMoveKey()
	pos.SideToMove = pos.SideToMove.Opponent()
	return prevEnPassant, prevHash
}

func (pos *Position) UndoNull(prevEnPassant Square, prevHash uint64) {
	pos.SideToMove = pos.SideToMove.Opponent()
	pos.EnPassant = prevEnPassant
	pos.Hash = prevHash
}

// GeneratePseudoLegalMoves appends every move for the side to move that obeys
// piece movement rules but may leave its own king in check. dst may be nil.
func (pos *Position) GeneratePseudoLegalMoves(dst []Move) []Move {
	us := pos.SideToMove
	them := us.Opponent()
	occupied := pos.occupied
	ownOccupied := pos.occupiedBy[us]
	enemyOccupied := pos.occupiedBy[them]

	dst = pos.generatePawnMoves(dst, us, occupied, enemyOccupied)

	for _, sq := range pos.pieces[us][Knight].Squares() {
		targets := KnightAttackboard(sq) &^ ownOccupied
		dst = appendTargets(dst, sq, Knight, targets, enemyOccupied)
	}
	for _, sq := range pos.pieces[us][Bishop].Squares() {
		targets := BishopAttackboard(sq, occupied) &^ ownOccupied
		dst = appendTargets(dst, sq, Bishop, targets, enemyOccupied)
	}
	for _, sq := range pos.pieces[us][Rook].Squares() {
		targets := RookAttackboard(sq, occupied) &^ ownOccupied
		dst = appendTargets(dst, sq, Rook, targets, enemyOccupied)
	}
	for _, sq := range pos.pieces[us][Queen].Squares() {
		targets := QueenAttackboard(sq, occupied) &^ ownOccupied
		dst = appendTargets(dst, sq, Queen, targets, enemyOccupied)
	}

	king := pos.KingSquare(us)
	targets := KingAttackboard(king) &^ ownOccupied
	dst = appendTargets(dst, king, King, targets, enemyOccupied)
	dst = pos.generateCastles(dst, us)

	return dst
}

func appendTargets(dst []Move, from Square, p Piece, targets, enemyOccupied Bitboard) []Move {
	for _, to := range targets.Squares() {
		kind := Quiet
		if enemyOccupied.IsSet(to) {
			kind = Capture
		}
		dst = append(dst, Move{From: from, To: to, Piece: p, Kind: kind})
	}
	return dst
}

func (pos *Position) generatePawnMoves(dst []Move, us Color, occupied, enemyOccupied Bitboard) []Move {
	pawns := pos.pieces[us][Pawn]
	promoRank := PawnPromotionRank(us)
	forward := 8
	if us == Black {
		forward = -8
	}

	singles := PawnPushboard(us, occupied, pawns)
	for _, to := range singles.Squares() {
		from := Square(int(to) - forward)
		dst = appendPawnAdvance(dst, from, to, promoRank, Quiet)
	}

	startRankPawns := pawns & BitRank(PawnStartRank(us))
	onceAdvanced := PawnPushboard(us, occupied, startRankPawns)
	doubles := PawnPushboard(us, occupied, onceAdvanced)
	for _, to := range doubles.Squares() {
		from := Square(int(to) - 2*forward)
		dst = append(dst, Move{From: from, To: to, Piece: Pawn, Kind: DoublePawnPush})
	}

	for _, from := range pawns.Squares() {
		attacks := PawnAttackboard(us, BitMask(from)) & enemyOccupied
		for _, to := range attacks.Squares() {
			dst = appendPawnAdvance(dst, from, to, promoRank, Capture)
		}
	}

	if pos.EnPassant != NoSquare {
		attackersFrom := PawnAttackboard(us.Opponent(), BitMask(pos.EnPassant)) & pawns
		for _, from := range attackersFrom.Squares() {
			dst = append(dst, Move{From: from, To: pos.EnPassant, Piece: Pawn, Kind: EnPassant})
		}
	}

	return dst
}

func appendPawnAdvance(dst []Move, from, to Square, promoRank Rank, kind MoveKind) []Move {
	if to.Rank() == promoRank {
		promoKind := Promotion
		if kind == Capture {
			promoKind = PromotionCapture
		}
		for _, promote := range PromotionPieces {
			dst = append(dst, Move{From: from, To: to, Piece: Pawn, Promote: promote, Kind: promoKind})
		}
		return dst
	}
	return append(dst, Move{From: from, To: to, Piece: Pawn, Kind: kind})
}

func (pos *Position) generateCastles(dst []Move, us Color) []Move {
	kingRight, queenRight := RightsFor(us)
	them := us.Opponent()

	tryCastle := func(right Castling, kind MoveKind) []Move {
		if !pos.CastlingRights.Has(right) {
			return dst
		}
		spec := castlingSpecFor(kind, us)
		if spec.Empty&pos.occupied != 0 {
			return dst
		}
		for i := 0; i < spec.KingPathLen; i++ {
			if pos.IsAttacked(spec.KingPath[i], them) {
				return dst
			}
		}
		return append(dst, Move{From: spec.KingFrom, To: spec.KingTo, Piece: King, Kind: kind})
	}

	dst = tryCastle(kingRight, KingCastle)
	dst = tryCastle(queenRight, QueenCastle)
	return dst
}

// GenerateLegalMoves returns every move that does not leave the mover's own king
// in check. Castling legality is already fully validated during generation, so
// only non-castle moves need the apply/check/undo filter.
func (pos *Position) GenerateLegalMoves(dst []Move) []Move {
	pseudo := pos.GeneratePseudoLegalMoves(nil)
	us := pos.SideToMove

	for _, m := range pseudo {
		if m.Kind.IsCastle() {
			dst = append(dst, m)
			continue
		}
		mv := m
		pos.Apply(&mv)
		if !pos.IsAttacked(pos.KingSquare(us), us.Opponent()) {
			dst = append(dst, m)
		}
		pos.Undo(mv)
	}
	return dst
}

// HasInsufficientMaterial reports the three drawn-by-material configurations in
// scope: king vs king, king and one minor vs king, and king and two knights vs
// king (on either side). No other configuration (e.g. same-colored bishops) is
// treated as drawn.
func (pos *Position) HasInsufficientMaterial() bool {
	for _, c := range [...]Color{White, Black} {
		if pos.pieces[c][Pawn]|pos.pieces[c][Rook]|pos.pieces[c][Queen] != 0 {
			return false
		}
	}

	minorCount := func(c Color) int {
		return pos.pieces[c][Bishop].PopCount() + pos.pieces[c][Knight].PopCount()
	}
	wMinors, bMinors := minorCount(White), minorCount(Black)

	switch {
	case wMinors == 0 && bMinors == 0:
		return true
	case wMinors == 1 && bMinors == 0, wMinors == 0 && bMinors == 1:
		return true
	case wMinors == 2 && bMinors == 0 && pos.pieces[White][Knight].PopCount() == 2:
		return true
	case bMinors == 2 && wMinors == 0 && pos.pieces[Black][Knight].PopCount() == 2:
		return true
	default:
		return false
	}
}
