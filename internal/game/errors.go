package game

import "errors"

var (
	ErrNoPieceAtSource       = errors.New("no piece at source square")
	ErrNotYourTurn           = errors.New("not your turn")
	ErrIllegalMove           = errors.New("illegal move")
	ErrPromotionTypeRequired = errors.New("promotion type required")
	ErrGameOver              = errors.New("game is over")
	ErrInvalidMoveString     = errors.New("invalid move string")
)
