package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartPlacement is the piece placement field of the starting position.
const StartPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// ParseFEN builds a board from the piece placement field of a FEN string.
//
// FEN does not record which pieces have moved, so HasMoved is reconstructed
// from castling, the castling rights field ("-" or any of "KQkq"; "" means
// none): a king or rook counts as unmoved only if it stands on its starting
// square and a matching right is granted. Pawns on their starting rank are
// unmoved. Other pieces are unmoved only on their standard starting squares.
func ParseFEN(placement, castling string) (*Board, error) {
	rights, err := parseCastlingRights(castling)
	if err != nil {
		return nil, err
	}

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	b := &Board{}
	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file > 7 {
				return nil, fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			pt, color, ok := PieceFromChar(c)
			if !ok {
				return nil, fmt.Errorf("%w: invalid piece character %q", ErrInvalidFEN, c)
			}
			sq := NewSquare(file, rank)
			b.SetPiece(Piece{Type: pt, Color: color, Square: sq, HasMoved: !startsUnmoved(pt, color, sq, rights)})
			file++
		}

		if file != 8 {
			return nil, fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, rank+1, file)
		}
	}

	return b, nil
}

// FEN returns the piece placement field for the board.
func (b *Board) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p, ok := b.PieceAt(NewSquare(file, rank))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}

// castlingRights is the FEN castling field as a bitset.
type castlingRights uint8

const (
	whiteKingSide castlingRights = 1 << iota // K
	whiteQueenSide                           // Q
	blackKingSide                            // k
	blackQueenSide                           // q
)

func parseCastlingRights(castling string) (castlingRights, error) {
	var cr castlingRights
	if castling == "-" {
		return cr, nil
	}
	for i := 0; i < len(castling); i++ {
		switch castling[i] {
		case 'K':
			cr |= whiteKingSide
		case 'Q':
			cr |= whiteQueenSide
		case 'k':
			cr |= blackKingSide
		case 'q':
			cr |= blackQueenSide
		default:
			return 0, fmt.Errorf("%w: invalid castling character %q", ErrInvalidFEN, castling[i])
		}
	}
	return cr, nil
}

func (cr castlingRights) has(c Color, kingSide bool) bool {
	return cr&castlingBit(c, kingSide) != 0
}

var standardBackRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func startsUnmoved(pt PieceType, c Color, sq Square, rights castlingRights) bool {
	switch pt {
	case Pawn:
		return sq.Rank() == c.PawnRank()
	case King:
		return sq == NewSquare(4, c.HomeRank()) && (rights.has(c, true) || rights.has(c, false))
	case Rook:
		switch sq {
		case NewSquare(7, c.HomeRank()):
			return rights.has(c, true)
		case NewSquare(0, c.HomeRank()):
			return rights.has(c, false)
		}
		return false
	default:
		return sq.Rank() == c.HomeRank() && standardBackRank[sq.File()] == pt
	}
}
