package board

import (
	"fmt"
	"strings"
)

// Board maps squares to pieces, at most one piece per square. It owns the
// authoritative Piece values; a Piece's Square always matches the index it
// is stored under.
type Board struct {
	squares [64]*Piece
}

// NewBoard creates a board holding the given pieces.
// A later piece on an already occupied square replaces the earlier one.
func NewBoard(pieces ...Piece) *Board {
	b := &Board{}
	for _, p := range pieces {
		b.SetPiece(p)
	}
	return b
}

// NewStandardBoard creates the standard starting position.
func NewStandardBoard() *Board {
	b := &Board{}
	backRank := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, pt := range backRank {
		b.SetPiece(NewPiece(pt, White, NewSquare(file, White.HomeRank())))
		b.SetPiece(NewPiece(Pawn, White, NewSquare(file, White.PawnRank())))
		b.SetPiece(NewPiece(pt, Black, NewSquare(file, Black.HomeRank())))
		b.SetPiece(NewPiece(Pawn, Black, NewSquare(file, Black.PawnRank())))
	}
	return b
}

// PieceAt returns the piece on sq, and false if the square is empty.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	if !sq.IsValid() || b.squares[sq] == nil {
		return Piece{}, false
	}
	return *b.squares[sq], true
}

// IsEmpty returns true if the square is empty.
func (b *Board) IsEmpty(sq Square) bool {
	return b.squares[sq] == nil
}

// SetPiece places p on p.Square, replacing whatever was there.
func (b *Board) SetPiece(p Piece) {
	b.squares[p.Square] = &p
}

// RemovePiece removes and returns the piece on sq.
func (b *Board) RemovePiece(sq Square) (Piece, bool) {
	p := b.squares[sq]
	if p == nil {
		return Piece{}, false
	}
	b.squares[sq] = nil
	return *p, true
}

// MovePiece moves the piece on from to to, replacing any piece on to, and
// returns the moved piece. Panics if from is empty.
func (b *Board) MovePiece(from, to Square) Piece {
	p, ok := b.RemovePiece(from)
	if !ok {
		panic(fmt.Sprintf("board: no piece on %s", from))
	}
	moved := p.MoveTo(to)
	b.SetPiece(moved)
	return moved
}

// Pieces returns every piece on the board in square order (a1, b1, ..., h8).
func (b *Board) Pieces() []Piece {
	pieces := make([]Piece, 0, 32)
	for _, p := range b.squares {
		if p != nil {
			pieces = append(pieces, *p)
		}
	}
	return pieces
}

// PiecesOf returns the pieces of one color in square order.
func (b *Board) PiecesOf(c Color) []Piece {
	pieces := make([]Piece, 0, 16)
	for _, p := range b.squares {
		if p != nil && p.Color == c {
			pieces = append(pieces, *p)
		}
	}
	return pieces
}

// King returns the king of the given color, and false if there is none.
func (b *Board) King(c Color) (Piece, bool) {
	for _, p := range b.squares {
		if p != nil && p.Type == King && p.Color == c {
			return *p, true
		}
	}
	return Piece{}, false
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{}
	for sq, p := range b.squares {
		if p != nil {
			cp := *p
			c.squares[sq] = &cp
		}
	}
	return c
}

// Equal reports whether both boards hold the same pieces on the same squares,
// including HasMoved flags.
func (b *Board) Equal(other *Board) bool {
	for sq := range b.squares {
		p, q := b.squares[sq], other.squares[sq]
		if (p == nil) != (q == nil) {
			return false
		}
		if p != nil && *p != *q {
			return false
		}
	}
	return true
}

// String returns a visual representation of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			if p, ok := b.PieceAt(NewSquare(file, rank)); ok {
				sb.WriteByte(p.Char())
			} else {
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
