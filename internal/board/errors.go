package board

import "errors"

var (
	ErrInvalidAlgebraicNotation = errors.New("invalid algebraic notation")
	ErrInvalidFEN               = errors.New("invalid FEN")
)
