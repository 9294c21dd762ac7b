package rules

import (
	"github.com/hailam/chessrules/internal/board"
)

// IsSquareAttacked reports whether any piece of defender's opponent attacks
// sq. Pawns attack their two forward diagonals whether or not anything
// stands there; every other piece attacks its pseudo-legal destinations.
func IsSquareAttacked(b *board.Board, sq board.Square, defender board.Color) bool {
	for _, p := range b.PiecesOf(defender.Other()) {
		var targets []board.Square
		if p.Type == board.Pawn {
			targets = pawnAttacks(p)
		} else {
			targets = PseudoLegalMoves(p, b)
		}
		for _, t := range targets {
			if t == sq {
				return true
			}
		}
	}
	return false
}

// IsInCheck reports whether c's king is attacked. A board without a king of
// that color is never in check.
func IsInCheck(b *board.Board, c board.Color) bool {
	king, ok := b.King(c)
	if !ok {
		return false
	}
	return IsSquareAttacked(b, king.Square, c)
}

// LegalMoves returns the legal moves of p on b, including castling for a
// king and the en passant capture for a pawn when enPassant is a valid
// square. Pass board.NoSquare when there is no en passant target.
//
// Pawn moves onto the back rank are returned untagged; choosing the
// promotion piece is up to the caller.
func LegalMoves(p board.Piece, b *board.Board, enPassant board.Square) []board.Move {
	var moves []board.Move
	for _, to := range PseudoLegalMoves(p, b) {
		m := board.NewMove(b, p, to)
		if IsMoveLegal(m, b) {
			moves = append(moves, m)
		}
	}

	switch p.Type {
	case board.King:
		moves = append(moves, CastlingMoves(p, b)...)
	case board.Pawn:
		if enPassant.IsValid() {
			if m, ok := EnPassantMove(p, b, enPassant); ok {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// IsMoveLegal reports whether making m on b leaves the mover's king safe.
// Only the mover and the captured piece are relocated on the scratch board:
// king safety does not depend on where a castling rook lands.
func IsMoveLegal(m board.Move, b *board.Board) bool {
	scratch := b.Clone()
	scratch.RemovePiece(m.From)
	if m.Captured != nil {
		scratch.RemovePiece(m.Captured.Square)
	}
	scratch.SetPiece(m.Piece.MoveTo(m.To))
	return !IsInCheck(scratch, m.Piece.Color)
}

// CastlingMoves returns the castling moves available to king. Castling needs
// an unmoved king and an unmoved rook of the same color in the corner, empty
// squares between them, and no attack on the squares the king starts on,
// crosses or lands on.
func CastlingMoves(king board.Piece, b *board.Board) []board.Move {
	if king.Type != board.King || king.HasMoved {
		return nil
	}

	var moves []board.Move
	sides := []struct {
		rookFile int
		kingTo   int
		special  board.SpecialMove
	}{
		{7, 6, board.CastleKingside},
		{0, 2, board.CastleQueenside},
	}
	for _, side := range sides {
		rank := king.Square.Rank()
		if king.Square.File() == side.kingTo {
			continue
		}
		rook, ok := b.PieceAt(board.NewSquare(side.rookFile, rank))
		if !ok || rook.Type != board.Rook || rook.Color != king.Color || rook.HasMoved {
			continue
		}
		if !emptyBetween(b, rank, king.Square.File(), side.rookFile) {
			continue
		}
		if kingPathAttacked(b, king, side.kingTo) {
			continue
		}
		moves = append(moves, board.Move{
			From:      king.Square,
			To:        board.NewSquare(side.kingTo, rank),
			Piece:     king,
			Special:   side.special,
			Promotion: board.NoPieceType,
		})
	}
	return moves
}

// emptyBetween reports whether every square strictly between files a and b
// on rank is empty.
func emptyBetween(b *board.Board, rank, fileA, fileB int) bool {
	lo, hi := fileA, fileB
	if lo > hi {
		lo, hi = hi, lo
	}
	for file := lo + 1; file < hi; file++ {
		if !b.IsEmpty(board.NewSquare(file, rank)) {
			return false
		}
	}
	return true
}

// kingPathAttacked reports whether any square from the king's square to
// toFile (inclusive) on its rank is attacked.
func kingPathAttacked(b *board.Board, king board.Piece, toFile int) bool {
	step := 1
	if toFile < king.Square.File() {
		step = -1
	}
	rank := king.Square.Rank()
	for file := king.Square.File(); ; file += step {
		if IsSquareAttacked(b, board.NewSquare(file, rank), king.Color) {
			return true
		}
		if file == toFile {
			return false
		}
	}
}

// EnPassantMove returns the en passant capture of pawn onto target, if the
// target is one of its forward diagonals, an opponent pawn stands beside
// it, and the capture is legal.
func EnPassantMove(pawn board.Piece, b *board.Board, target board.Square) (board.Move, bool) {
	if pawn.Type != board.Pawn {
		return board.Move{}, false
	}
	for _, df := range []int{-1, 1} {
		to, ok := pawn.Square.Offset(df, pawn.Color.PawnDirection())
		if !ok || to != target {
			continue
		}
		victim, ok := b.PieceAt(board.NewSquare(target.File(), pawn.Square.Rank()))
		if !ok || victim.Type != board.Pawn || victim.Color == pawn.Color {
			continue
		}
		m := board.Move{
			From:      pawn.Square,
			To:        target,
			Piece:     pawn,
			Captured:  &victim,
			Special:   board.EnPassant,
			Promotion: board.NoPieceType,
		}
		if IsMoveLegal(m, b) {
			return m, true
		}
	}
	return board.Move{}, false
}

// AllLegalMoves returns the legal moves of every piece of color c, pieces
// taken in square order.
func AllLegalMoves(b *board.Board, c board.Color, enPassant board.Square) []board.Move {
	var moves []board.Move
	for _, p := range b.PiecesOf(c) {
		moves = append(moves, LegalMoves(p, b, enPassant)...)
	}
	return moves
}

// HasLegalMoves reports whether c has at least one legal move.
func HasLegalMoves(b *board.Board, c board.Color, enPassant board.Square) bool {
	for _, p := range b.PiecesOf(c) {
		if len(LegalMoves(p, b, enPassant)) > 0 {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether c is in check with no legal move.
func IsCheckmate(b *board.Board, c board.Color, enPassant board.Square) bool {
	return IsInCheck(b, c) && !HasLegalMoves(b, c, enPassant)
}

// IsStalemate reports whether c is not in check but has no legal move.
func IsStalemate(b *board.Board, c board.Color, enPassant board.Square) bool {
	return !IsInCheck(b, c) && !HasLegalMoves(b, c, enPassant)
}

// HasInsufficientMaterial returns true for K v K, K v K plus one knight or
// bishop, and K v K plus two bishops standing on the same square color.
// Anything else, including a lone rook or pawn, is sufficient.
func HasInsufficientMaterial(b *board.Board) bool {
	var kings int
	var others []board.Piece
	for _, p := range b.Pieces() {
		if p.Type == board.King {
			kings++
			continue
		}
		others = append(others, p)
	}
	if kings != 2 {
		return false
	}

	switch len(others) {
	case 0:
		return true
	case 1:
		return others[0].Type == board.Bishop || others[0].Type == board.Knight
	case 2:
		return others[0].Type == board.Bishop && others[1].Type == board.Bishop &&
			others[0].Square.IsLight() == others[1].Square.IsLight()
	}
	return false
}
