package game

import (
	"fmt"
	"strings"

	"github.com/hailam/chessrules/internal/board"
)

// SAN returns the Standard Algebraic Notation of m, which must be a legal
// move in s (promotions tagged).
func (s *GameState) SAN(m board.Move) string {
	return s.san(m, s.Apply(m))
}

// san renders m given next, the state after it.
func (s *GameState) san(m board.Move, next *GameState) string {
	var sb strings.Builder

	switch {
	case m.Special == board.CastleKingside:
		sb.WriteString("O-O")
	case m.Special == board.CastleQueenside:
		sb.WriteString("O-O-O")
	case m.Piece.Type == board.Pawn:
		if m.IsCapture() {
			sb.WriteByte(byte('a' + m.From.File()))
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(m.Promotion.Char() - 'a' + 'A')
		}
	default:
		sb.WriteByte(m.Piece.Type.Char() - 'a' + 'A')
		sb.WriteString(s.disambiguate(m))
		if m.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
	}

	switch {
	case next.endReason == Checkmate:
		sb.WriteByte('#')
	case next.IsInCheck():
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguate returns the origin file, rank, or both when another piece of
// the same type could also reach m.To.
func (s *GameState) disambiguate(m board.Move) string {
	var sameFile, sameRank, ambiguous bool
	for _, other := range s.LegalMoves() {
		if other.To != m.To || other.From == m.From || other.Piece.Type != m.Piece.Type {
			continue
		}
		ambiguous = true
		if other.From.File() == m.From.File() {
			sameFile = true
		}
		if other.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	from := m.From.String()
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return from[:1]
	case !sameRank:
		return from[1:]
	default:
		return from
	}
}

// ParseSAN finds the legal move written as san in s. Check markers, "x"
// and "=" are optional; "0-0" is accepted for castling.
func (s *GameState) ParseSAN(san string) (board.Move, error) {
	in := strings.TrimSpace(san)
	in = strings.TrimRight(in, "+#!?")

	// Handle castling
	switch in {
	case "O-O", "0-0":
		return s.findMove(san, func(m board.Move) bool { return m.Special == board.CastleKingside })
	case "O-O-O", "0-0-0":
		return s.findMove(san, func(m board.Move) bool { return m.Special == board.CastleQueenside })
	}

	// Parse promotion
	promotion := board.NoPieceType
	if idx := strings.IndexByte(in, '='); idx >= 0 {
		if idx+2 != len(in) {
			return board.Move{}, fmt.Errorf("%w: %q", ErrInvalidMoveString, san)
		}
		promotion = board.PieceTypeFromChar(in[idx+1])
		if !promotion.IsPromotionTarget() {
			return board.Move{}, fmt.Errorf("%w: bad promotion in %q", ErrInvalidMoveString, san)
		}
		in = in[:idx]
	}

	isCapture := strings.Contains(in, "x")
	in = strings.ReplaceAll(in, "x", "")

	// Determine piece type
	pt := board.Pawn
	if len(in) > 0 && in[0] >= 'A' && in[0] <= 'Z' {
		pt = board.PieceTypeFromChar(in[0])
		if pt == board.NoPieceType || pt == board.Pawn {
			return board.Move{}, fmt.Errorf("%w: bad piece in %q", ErrInvalidMoveString, san)
		}
		in = in[1:]
	}

	// Destination is the last two characters
	if len(in) < 2 {
		return board.Move{}, fmt.Errorf("%w: %q", ErrInvalidMoveString, san)
	}
	to, err := board.ParseSquare(in[len(in)-2:])
	if err != nil {
		return board.Move{}, fmt.Errorf("%w: %v", ErrInvalidMoveString, err)
	}
	in = in[:len(in)-2]

	// Disambiguation: file, rank, or both
	fromFile, fromRank := -1, -1
	for i := 0; i < len(in); i++ {
		switch c := in[i]; {
		case c >= 'a' && c <= 'h':
			fromFile = int(c - 'a')
		case c >= '1' && c <= '8':
			fromRank = int(c - '1')
		default:
			return board.Move{}, fmt.Errorf("%w: %q", ErrInvalidMoveString, san)
		}
	}

	m, err := s.findMove(san, func(m board.Move) bool {
		switch {
		case m.To != to || m.Piece.Type != pt || m.IsCastling():
			return false
		case fromFile >= 0 && m.From.File() != fromFile:
			return false
		case fromRank >= 0 && m.From.Rank() != fromRank:
			return false
		case isCapture && !m.IsCapture():
			return false
		}
		return true
	})
	if err != nil {
		return board.Move{}, err
	}

	if isPromotionSquare(m.Piece, m.To) {
		if promotion == board.NoPieceType {
			return board.Move{}, fmt.Errorf("%w: %q", ErrPromotionTypeRequired, san)
		}
		return m.WithPromotion(promotion), nil
	}
	if promotion != board.NoPieceType {
		return board.Move{}, fmt.Errorf("%w: %q is not a promotion", ErrIllegalMove, san)
	}
	return m, nil
}

// findMove returns the single legal move accepted by match.
func (s *GameState) findMove(san string, match func(board.Move) bool) (board.Move, error) {
	var (
		found board.Move
		n     int
	)
	for _, m := range s.LegalMoves() {
		if match(m) {
			found = m
			n++
		}
	}
	switch n {
	case 0:
		return board.Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, san)
	case 1:
		return found, nil
	default:
		return board.Move{}, fmt.Errorf("%w: %s is ambiguous", ErrIllegalMove, san)
	}
}

// MakeSANMove parses san with ParseSAN and plays it with MakeMove.
func (s *GameState) MakeSANMove(san string) (MoveResult, error) {
	if s.IsGameOver() {
		return MoveResult{}, fmt.Errorf("%w: %s by %s", ErrGameOver, s.result, s.endReason)
	}
	m, err := s.ParseSAN(san)
	if err != nil {
		return MoveResult{}, err
	}
	return s.MakeMove(m.From, m.To, m.Promotion)
}
