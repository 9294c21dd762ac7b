// Package game tracks a chess game as a chain of immutable states. Every
// transition returns a new GameState and leaves the old one usable.
package game

import (
	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/rules"
)

// Result is the outcome of a game.
type Result uint8

const (
	InProgress Result = iota
	WhiteWin
	BlackWin
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWin:
		return "1-0"
	case BlackWin:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// winFor returns the result of c winning.
func winFor(c board.Color) Result {
	if c == board.White {
		return WhiteWin
	}
	return BlackWin
}

// EndReason explains why a game ended.
type EndReason uint8

const (
	NoEndReason EndReason = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	FiftyMoveRule
	Resignation
	DrawAgreement
)

func (r EndReason) String() string {
	switch r {
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	case InsufficientMaterial:
		return "InsufficientMaterial"
	case FiftyMoveRule:
		return "FiftyMoveRule"
	case Resignation:
		return "Resignation"
	case DrawAgreement:
		return "DrawAgreement"
	default:
		return "None"
	}
}

// fiftyMoveLimit is the half-move clock value that ends the game.
const fiftyMoveLimit = 100

// GameState is an immutable snapshot of a game. Methods never modify the
// receiver.
type GameState struct {
	board          *board.Board
	turn           board.Color
	history        []board.Move
	enPassant      board.Square // NoSquare if none
	halfMoveClock  int
	fullMoveNumber int
	result         Result
	endReason      EndReason
}

// NewStandard returns a game at the standard starting position.
func NewStandard() *GameState {
	return NewCustom(board.NewStandardBoard(), board.White)
}

// NewCustom returns a game starting from a copy of b with turn to move.
func NewCustom(b *board.Board, turn board.Color) *GameState {
	return &GameState{
		board:          b.Clone(),
		turn:           turn,
		enPassant:      board.NoSquare,
		fullMoveNumber: 1,
	}
}

// Board returns a copy of the current board.
func (s *GameState) Board() *board.Board {
	return s.board.Clone()
}

// Turn returns the side to move.
func (s *GameState) Turn() board.Color {
	return s.turn
}

// History returns the moves played since the state was created.
func (s *GameState) History() []board.Move {
	return append([]board.Move(nil), s.history...)
}

// EnPassantTarget returns the square a pawn skipped on the previous move,
// or board.NoSquare.
func (s *GameState) EnPassantTarget() board.Square {
	return s.enPassant
}

// HalfMoveClock returns the number of half-moves since the last pawn move
// or capture.
func (s *GameState) HalfMoveClock() int {
	return s.halfMoveClock
}

// FullMoveNumber starts at 1 and increments after Black's move.
func (s *GameState) FullMoveNumber() int {
	return s.fullMoveNumber
}

func (s *GameState) Result() Result {
	return s.result
}

func (s *GameState) EndReason() EndReason {
	return s.endReason
}

// IsGameOver reports whether the game has a result.
func (s *GameState) IsGameOver() bool {
	return s.result != InProgress
}

// LegalMoves returns every legal move for the side to move.
func (s *GameState) LegalMoves() []board.Move {
	return rules.AllLegalMoves(s.board, s.turn, s.enPassant)
}

// LegalMovesForPiece returns the legal moves of the piece on p.Square.
// It returns nil if p does not belong to the side to move or the square
// holds a different piece.
func (s *GameState) LegalMovesForPiece(p board.Piece) []board.Move {
	if p.Color != s.turn {
		return nil
	}
	current, ok := s.board.PieceAt(p.Square)
	if !ok || current.Type != p.Type || current.Color != p.Color {
		return nil
	}
	return rules.LegalMoves(current, s.board, s.enPassant)
}

// IsInCheck reports whether the side to move is in check.
func (s *GameState) IsInCheck() bool {
	return rules.IsInCheck(s.board, s.turn)
}

// Resign returns the state after the side to move resigns. A finished
// game is returned unchanged.
func (s *GameState) Resign() *GameState {
	if s.IsGameOver() {
		return s
	}
	next := s.Clone()
	next.result = winFor(s.turn.Other())
	next.endReason = Resignation
	return next
}

// AgreeToDraw returns the state after both sides agree to a draw. A
// finished game is returned unchanged.
func (s *GameState) AgreeToDraw() *GameState {
	if s.IsGameOver() {
		return s
	}
	next := s.Clone()
	next.result = Draw
	next.endReason = DrawAgreement
	return next
}

// Clone returns a deep copy of the state.
func (s *GameState) Clone() *GameState {
	c := *s
	c.board = s.board.Clone()
	c.history = append([]board.Move(nil), s.history...)
	return &c
}

// Hash returns a Zobrist key for the position: placement, castling
// eligibility, side to move and en passant file.
func (s *GameState) Hash() uint64 {
	h := s.board.Hash()
	if s.turn == board.Black {
		h ^= board.ZobristSideToMove()
	}
	if s.enPassant.IsValid() {
		h ^= board.ZobristEnPassant(s.enPassant.File())
	}
	return h
}
