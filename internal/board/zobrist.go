package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [2][6][64]uint64 // [Color][PieceType][Square]
	zobristEnPassant  [8]uint64        // One per file
	zobristCastling   [16]uint64       // All 16 castling combinations
	zobristSideToMove uint64           // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234) // Fixed seed

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}

	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}

	zobristSideToMove = rng.next()
}

// Hash returns the Zobrist hash of the piece placement plus castling
// eligibility, i.e. which unmoved king/rook pairs still stand on their
// starting squares.
func (b *Board) Hash() uint64 {
	var hash uint64
	for _, p := range b.squares {
		if p != nil {
			hash ^= zobristPiece[p.Color][p.Type][p.Square]
		}
	}
	return hash ^ zobristCastling[b.castlingEligibility()]
}

func (b *Board) castlingEligibility() castlingRights {
	var cr castlingRights
	for c := White; c <= Black; c++ {
		king := b.squares[NewSquare(4, c.HomeRank())]
		if king == nil || king.Type != King || king.Color != c || king.HasMoved {
			continue
		}
		if b.unmovedRook(c, 7) {
			cr |= castlingBit(c, true)
		}
		if b.unmovedRook(c, 0) {
			cr |= castlingBit(c, false)
		}
	}
	return cr
}

func (b *Board) unmovedRook(c Color, file int) bool {
	r := b.squares[NewSquare(file, c.HomeRank())]
	return r != nil && r.Type == Rook && r.Color == c && !r.HasMoved
}

func castlingBit(c Color, kingSide bool) castlingRights {
	switch {
	case c == White && kingSide:
		return whiteKingSide
	case c == White:
		return whiteQueenSide
	case kingSide:
		return blackKingSide
	default:
		return blackQueenSide
	}
}

// ZobristSideToMove returns the Zobrist key for side to move.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}

// ZobristEnPassant returns the Zobrist key for an en passant file.
func ZobristEnPassant(file int) uint64 {
	return zobristEnPassant[file]
}
