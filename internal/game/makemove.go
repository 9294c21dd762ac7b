package game

import (
	"fmt"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/rules"
)

// MoveResult describes a successful MakeMove. The flags describe the new
// position from the point of view of the side now to move.
type MoveResult struct {
	Move        board.Move
	State       *GameState
	SAN         string
	IsCheck     bool
	IsCheckmate bool
	IsStalemate bool
}

// MakeMove validates and plays the move from -> to. promotion is required
// when a pawn reaches the back rank and ignored otherwise; pass
// board.NoPieceType when there is none.
//
// Rule violations are returned as errors and leave s untouched.
func (s *GameState) MakeMove(from, to board.Square, promotion board.PieceType) (MoveResult, error) {
	if s.IsGameOver() {
		return MoveResult{}, fmt.Errorf("%w: %s by %s", ErrGameOver, s.result, s.endReason)
	}

	p, ok := s.board.PieceAt(from)
	if !ok {
		return MoveResult{}, fmt.Errorf("%w: %s", ErrNoPieceAtSource, from)
	}
	if p.Color != s.turn {
		return MoveResult{}, fmt.Errorf("%w: %s to move", ErrNotYourTurn, s.turn)
	}

	var (
		m     board.Move
		found bool
	)
	for _, candidate := range rules.LegalMoves(p, s.board, s.enPassant) {
		if candidate.To == to {
			m, found = candidate, true
			break
		}
	}
	if !found {
		return MoveResult{}, fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}

	if isPromotionSquare(p, to) {
		if promotion == board.NoPieceType {
			return MoveResult{}, fmt.Errorf("%w: %s%s", ErrPromotionTypeRequired, from, to)
		}
		if !promotion.IsPromotionTarget() {
			return MoveResult{}, fmt.Errorf("%w: cannot promote to %s", ErrIllegalMove, promotion)
		}
		m = m.WithPromotion(promotion)
	}

	next := s.Apply(m)
	return MoveResult{
		Move:        m,
		State:       next,
		SAN:         s.san(m, next),
		IsCheck:     next.IsInCheck(),
		IsCheckmate: next.endReason == Checkmate,
		IsStalemate: next.endReason == Stalemate,
	}, nil
}

func isPromotionSquare(p board.Piece, to board.Square) bool {
	return p.Type == board.Pawn && to.Rank() == p.Color.BackRank()
}

// Apply plays m without validating it and returns the successor state. m
// must come from LegalMoves (or LegalMovesForPiece) on s, with back-rank
// pawn moves tagged through WithPromotion. Apply does not refuse moves on a
// finished game.
func (s *GameState) Apply(m board.Move) *GameState {
	next := s.Clone()
	b := next.board

	switch m.Special {
	case board.CastleKingside, board.CastleQueenside:
		b.MovePiece(m.From, m.To)
		rank := m.From.Rank()
		if m.Special == board.CastleKingside {
			b.MovePiece(board.NewSquare(7, rank), board.NewSquare(5, rank))
		} else {
			b.MovePiece(board.NewSquare(0, rank), board.NewSquare(3, rank))
		}
	case board.EnPassant:
		b.RemovePiece(m.Captured.Square)
		b.MovePiece(m.From, m.To)
	case board.PawnPromotion:
		b.RemovePiece(m.From)
		b.RemovePiece(m.To)
		b.SetPiece(m.Piece.Promote(m.Promotion, m.To))
	default:
		if m.Captured != nil {
			b.RemovePiece(m.Captured.Square)
		}
		b.MovePiece(m.From, m.To)
	}

	next.enPassant = board.NoSquare
	if m.Piece.Type == board.Pawn {
		if dr := m.To.Rank() - m.From.Rank(); dr == 2 || dr == -2 {
			next.enPassant = board.NewSquare(m.From.File(), m.From.Rank()+dr/2)
		}
	}

	if m.Piece.Type == board.Pawn || m.Captured != nil {
		next.halfMoveClock = 0
	} else {
		next.halfMoveClock++
	}
	if m.Piece.Color == board.Black {
		next.fullMoveNumber++
	}
	next.turn = s.turn.Other()
	next.history = append(next.history, m)

	next.detectEnd(m.Piece.Color)
	return next
}

// detectEnd sets the result from the position the side to move faces.
// Checkmate, stalemate, insufficient material and the fifty-move rule are
// tried in that order.
func (s *GameState) detectEnd(mover board.Color) {
	hasMoves := rules.HasLegalMoves(s.board, s.turn, s.enPassant)
	switch {
	case !hasMoves && rules.IsInCheck(s.board, s.turn):
		s.result, s.endReason = winFor(mover), Checkmate
	case !hasMoves:
		s.result, s.endReason = Draw, Stalemate
	case rules.HasInsufficientMaterial(s.board):
		s.result, s.endReason = Draw, InsufficientMaterial
	case s.halfMoveClock >= fiftyMoveLimit:
		s.result, s.endReason = Draw, FiftyMoveRule
	default:
		s.result, s.endReason = InProgress, NoEndReason
	}
}
