package board

import "fmt"

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PawnDirection returns +1 for White and -1 for Black.
func (c Color) PawnDirection() int {
	if c == White {
		return 1
	}
	return -1
}

// BackRank returns the rank a pawn of this color promotes on.
func (c Color) BackRank() int {
	if c == White {
		return 7
	}
	return 0
}

// PawnRank returns the rank this color's pawns start on.
func (c Color) PawnRank() int {
	if c == White {
		return 1
	}
	return 6
}

// HomeRank returns the rank this color's king and rooks start on.
func (c Color) HomeRank() int {
	if c == White {
		return 0
	}
	return 7
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{'p', 'n', 'b', 'r', 'q', 'k', ' '}
	if pt > NoPieceType {
		return ' '
	}
	return chars[pt]
}

// IsPromotionTarget reports whether a pawn may promote to this type.
func (pt PieceType) IsPromotionTarget() bool {
	return pt == Knight || pt == Bishop || pt == Rook || pt == Queen
}

// PieceTypeFromChar converts a FEN letter of either case to a PieceType.
func PieceTypeFromChar(c byte) PieceType {
	switch c {
	case 'p', 'P':
		return Pawn
	case 'n', 'N':
		return Knight
	case 'b', 'B':
		return Bishop
	case 'r', 'R':
		return Rook
	case 'q', 'Q':
		return Queen
	case 'k', 'K':
		return King
	default:
		return NoPieceType
	}
}

// Piece is an immutable piece value. A move never changes a Piece in place;
// MoveTo and Promote return the replacement value and the Board stores it.
type Piece struct {
	Type     PieceType
	Color    Color
	Square   Square
	HasMoved bool
}

// NewPiece creates an unmoved piece on sq.
func NewPiece(pt PieceType, c Color, sq Square) Piece {
	return Piece{Type: pt, Color: c, Square: sq}
}

// MoveTo returns the piece relocated to sq and marked as moved.
func (p Piece) MoveTo(sq Square) Piece {
	p.Square = sq
	p.HasMoved = true
	return p
}

// Promote returns the piece that replaces this pawn on sq.
// Panics if p is not a pawn or pt is not a legal promotion target.
func (p Piece) Promote(pt PieceType, sq Square) Piece {
	if p.Type != Pawn {
		panic(fmt.Sprintf("board: cannot promote %s", p.Type))
	}
	if !pt.IsPromotionTarget() {
		panic(fmt.Sprintf("board: cannot promote to %s", pt))
	}
	return Piece{Type: pt, Color: p.Color, Square: sq, HasMoved: true}
}

// Char returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) Char() byte {
	c := p.Type.Char()
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return c
}

// String returns e.g. "White Knight on g1".
func (p Piece) String() string {
	return fmt.Sprintf("%s %s on %s", p.Color, p.Type, p.Square)
}

// PieceFromChar converts a FEN character to a piece type and color.
// ok is false for anything that is not one of "PNBRQKpnbrqk".
func PieceFromChar(c byte) (pt PieceType, color Color, ok bool) {
	pt = PieceTypeFromChar(c)
	if pt == NoPieceType {
		return NoPieceType, NoColor, false
	}
	if c >= 'a' && c <= 'z' {
		return pt, Black, true
	}
	return pt, White, true
}
