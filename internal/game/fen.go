package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hailam/chessrules/internal/board"
)

// StartFEN is the FEN of the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FromFEN parses a FEN string into a game state. The half-move clock and
// full-move number may be omitted and default to 0 and 1.
//
// The castling field is only used to guess which kings and rooks have
// moved; see board.ParseFEN.
func FromFEN(fen string) (*GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return nil, fmt.Errorf("%w: need 4 to 6 fields, got %d", board.ErrInvalidFEN, len(parts))
	}

	b, err := board.ParseFEN(parts[0], parts[2])
	if err != nil {
		return nil, err
	}

	s := NewCustom(b, board.White)

	switch parts[1] {
	case "w":
	case "b":
		s.turn = board.Black
	default:
		return nil, fmt.Errorf("%w: invalid side to move %q", board.ErrInvalidFEN, parts[1])
	}

	if parts[3] != "-" {
		sq, err := board.ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant square %q", board.ErrInvalidFEN, parts[3])
		}
		s.enPassant = sq
	}

	if len(parts) > 4 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: invalid half-move clock %q", board.ErrInvalidFEN, parts[4])
		}
		s.halfMoveClock = n
	}
	if len(parts) > 5 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: invalid full-move number %q", board.ErrInvalidFEN, parts[5])
		}
		s.fullMoveNumber = n
	}

	return s, nil
}

// ToFEN returns the six-field FEN of the state. The castling field is
// always "-": castling eligibility lives in the pieces' HasMoved flags,
// not in a rights field, so the output does not carry it.
func (s *GameState) ToFEN() string {
	var sb strings.Builder

	sb.WriteString(s.board.FEN())

	if s.turn == board.White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	sb.WriteString("- ")

	if s.enPassant.IsValid() {
		sb.WriteString(s.enPassant.String())
	} else {
		sb.WriteByte('-')
	}

	fmt.Fprintf(&sb, " %d %d", s.halfMoveClock, s.fullMoveNumber)

	return sb.String()
}

// String returns the FEN.
func (s *GameState) String() string {
	return s.ToFEN()
}
