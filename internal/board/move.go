package board

// SpecialMove tags moves whose board mechanics differ from a plain
// relocation (plus capture on the destination square).
type SpecialMove uint8

const (
	NoSpecial SpecialMove = iota
	EnPassant
	CastleKingside
	CastleQueenside
	PawnPromotion
)

// String returns the tag name.
func (s SpecialMove) String() string {
	switch s {
	case EnPassant:
		return "EnPassant"
	case CastleKingside:
		return "CastleKingside"
	case CastleQueenside:
		return "CastleQueenside"
	case PawnPromotion:
		return "PawnPromotion"
	default:
		return "None"
	}
}

// Move is one fully specified transition. Piece is the mover before the
// move. Captured is nil for quiet moves; for en passant it sits beside the
// destination, not on it. Promotion is NoPieceType unless Special is
// PawnPromotion.
type Move struct {
	From      Square
	To        Square
	Piece     Piece
	Captured  *Piece
	Special   SpecialMove
	Promotion PieceType
}

// NewMove creates a move of p to to, capturing whatever piece the board
// holds on to.
func NewMove(b *Board, p Piece, to Square) Move {
	m := Move{From: p.Square, To: to, Piece: p, Promotion: NoPieceType}
	if target, ok := b.PieceAt(to); ok {
		m.Captured = &target
	}
	return m
}

// WithPromotion returns a copy of the move tagged as a promotion to pt.
func (m Move) WithPromotion(pt PieceType) Move {
	m.Special = PawnPromotion
	m.Promotion = pt
	return m
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.Captured != nil
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Special == CastleKingside || m.Special == CastleQueenside
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Special == PawnPromotion
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promotion.Char())
	}
	return s
}
