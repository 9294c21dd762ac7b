// Package rules implements chess move legality on top of the board package:
// pseudo-legal movement per piece type, check and attack detection, castling
// and en passant assembly, and end-of-game predicates.
//
// Everything here is a pure function of its arguments. Boards passed in are
// only read; legality tests work on clones.
package rules

import (
	"fmt"

	"github.com/hailam/chessrules/internal/board"
)

type offset struct{ df, dr int }

var (
	knightOffsets = []offset{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingOffsets   = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirs      = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs    = []offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

type moveGenerator func(p board.Piece, b *board.Board) []board.Square

// generators is indexed by board.PieceType.
var generators = [...]moveGenerator{
	board.Pawn:   pawnMoves,
	board.Knight: knightMoves,
	board.Bishop: bishopMoves,
	board.Rook:   rookMoves,
	board.Queen:  queenMoves,
	board.King:   kingMoves,
}

// PseudoLegalMoves returns the squares p could move to on b, ignoring
// whether the move would leave its own king in check. Castling and en
// passant are not included. Panics on an unknown piece type.
func PseudoLegalMoves(p board.Piece, b *board.Board) []board.Square {
	if int(p.Type) >= len(generators) {
		panic(fmt.Sprintf("rules: no movement rules for piece type %d", p.Type))
	}
	return generators[p.Type](p, b)
}

func pawnMoves(p board.Piece, b *board.Board) []board.Square {
	var moves []board.Square
	dir := p.Color.PawnDirection()

	// Forward 1, then forward 2 from the starting rank
	if one, ok := p.Square.Offset(0, dir); ok && b.IsEmpty(one) {
		moves = append(moves, one)
		if p.Square.Rank() == p.Color.PawnRank() {
			if two, ok := p.Square.Offset(0, 2*dir); ok && b.IsEmpty(two) {
				moves = append(moves, two)
			}
		}
	}

	// Diagonal captures
	for _, df := range []int{-1, 1} {
		target, ok := p.Square.Offset(df, dir)
		if !ok {
			continue
		}
		if other, occupied := b.PieceAt(target); occupied && other.Color != p.Color {
			moves = append(moves, target)
		}
	}
	return moves
}

func knightMoves(p board.Piece, b *board.Board) []board.Square {
	return stepMoves(p, b, knightOffsets)
}

func kingMoves(p board.Piece, b *board.Board) []board.Square {
	return stepMoves(p, b, kingOffsets)
}

func bishopMoves(p board.Piece, b *board.Board) []board.Square {
	return rayMoves(p, b, bishopDirs)
}

func rookMoves(p board.Piece, b *board.Board) []board.Square {
	return rayMoves(p, b, rookDirs)
}

func queenMoves(p board.Piece, b *board.Board) []board.Square {
	return append(rayMoves(p, b, rookDirs), rayMoves(p, b, bishopDirs)...)
}

// stepMoves returns the in-bounds offsets from p not occupied by its own side.
func stepMoves(p board.Piece, b *board.Board, offsets []offset) []board.Square {
	moves := make([]board.Square, 0, len(offsets))
	for _, o := range offsets {
		target, ok := p.Square.Offset(o.df, o.dr)
		if !ok {
			continue
		}
		if other, occupied := b.PieceAt(target); occupied && other.Color == p.Color {
			continue
		}
		moves = append(moves, target)
	}
	return moves
}

// rayMoves walks each direction until the board edge or the first occupied
// square, which is included only if it holds an opponent piece.
func rayMoves(p board.Piece, b *board.Board, dirs []offset) []board.Square {
	var moves []board.Square
	for _, d := range dirs {
		target, ok := p.Square.Offset(d.df, d.dr)
		for ok {
			if other, occupied := b.PieceAt(target); occupied {
				if other.Color != p.Color {
					moves = append(moves, target)
				}
				break
			}
			moves = append(moves, target)
			target, ok = target.Offset(d.df, d.dr)
		}
	}
	return moves
}

// pawnAttacks returns the two diagonal-forward squares of a pawn regardless
// of what stands on them.
func pawnAttacks(p board.Piece) []board.Square {
	attacks := make([]board.Square, 0, 2)
	for _, df := range []int{-1, 1} {
		if target, ok := p.Square.Offset(df, p.Color.PawnDirection()); ok {
			attacks = append(attacks, target)
		}
	}
	return attacks
}
