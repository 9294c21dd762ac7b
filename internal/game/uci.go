package game

import (
	"fmt"

	"github.com/hailam/chessrules/internal/board"
)

// ParseMove parses a move in UCI long algebraic form ("e2e4", "e7e8q").
// The promotion is board.NoPieceType when the string has no fifth letter.
func ParseMove(s string) (from, to board.Square, promotion board.PieceType, err error) {
	if len(s) != 4 && len(s) != 5 {
		return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("%w: %q", ErrInvalidMoveString, s)
	}

	from, err = board.ParseSquare(s[0:2])
	if err != nil {
		return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("%w: %v", ErrInvalidMoveString, err)
	}
	to, err = board.ParseSquare(s[2:4])
	if err != nil {
		return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("%w: %v", ErrInvalidMoveString, err)
	}

	promotion = board.NoPieceType
	if len(s) == 5 {
		promotion = board.PieceTypeFromChar(s[4])
		if !promotion.IsPromotionTarget() {
			return board.NoSquare, board.NoSquare, board.NoPieceType, fmt.Errorf("%w: bad promotion %q", ErrInvalidMoveString, s[4])
		}
	}
	return from, to, promotion, nil
}

// MakeUCIMove parses s with ParseMove and plays it with MakeMove.
func (s *GameState) MakeUCIMove(uci string) (MoveResult, error) {
	from, to, promotion, err := ParseMove(uci)
	if err != nil {
		return MoveResult{}, err
	}
	return s.MakeMove(from, to, promotion)
}
