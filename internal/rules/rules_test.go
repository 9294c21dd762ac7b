package rules

import (
	"sort"
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

func mustBoard(t *testing.T, placement, castling string) *board.Board {
	t.Helper()
	b, err := board.ParseFEN(placement, castling)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", placement, err)
	}
	return b
}

func mustPiece(t *testing.T, b *board.Board, sq board.Square) board.Piece {
	t.Helper()
	p, ok := b.PieceAt(sq)
	if !ok {
		t.Fatalf("no piece on %s", sq)
	}
	return p
}

func destinations(moves []board.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.To.String()
	}
	sort.Strings(out)
	return out
}

func TestPseudoLegalMoves(t *testing.T) {
	tests := []struct {
		name      string
		placement string
		from      board.Square
		want      int
	}{
		{"queen on empty board", "8/8/8/8/3Q4/8/8/8", board.D4, 27},
		{"rook on empty board", "8/8/8/8/3R4/8/8/8", board.D4, 14},
		{"bishop in corner", "8/8/8/8/8/8/8/B7", board.A1, 7},
		{"knight in corner", "8/8/8/8/8/8/8/N7", board.A1, 2},
		{"king in corner", "8/8/8/8/8/8/8/K7", board.A1, 3},
		{"pawn from start", "8/8/8/8/8/8/4P3/8", board.E2, 2},
		{"pawn double step blocked", "8/8/8/8/4n3/8/4P3/8", board.E2, 1},
		{"pawn single step blocked", "8/8/8/8/8/4n3/4P3/8", board.E2, 0},
		{"pawn captures both ways", "8/8/8/8/8/3n1n2/4P3/8", board.E2, 4},
		{"pawn ignores own pieces diagonally", "8/8/8/8/8/3N1N2/4P3/8", board.E2, 2},
		{"black pawn moves down", "8/3p4/8/8/8/8/8/8", board.D7, 2},
		{"rook stops at own piece", "8/8/8/8/8/8/P7/R1N5", board.A1, 1},
		{"rook captures first enemy", "8/8/8/8/8/p7/p7/Rn6", board.A1, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.placement, "-")
			got := PseudoLegalMoves(mustPiece(t, b, tc.from), b)
			if len(got) != tc.want {
				t.Errorf("got %d moves %v, want %d", len(got), got, tc.want)
			}
		})
	}
}

func TestPseudoLegalMovesUnknownType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("unknown piece type should panic")
		}
	}()
	PseudoLegalMoves(board.Piece{Type: board.NoPieceType, Square: board.E4}, board.NewBoard())
}

func TestStartingPositionMoves(t *testing.T) {
	b := board.NewStandardBoard()
	if n := len(AllLegalMoves(b, board.White, board.NoSquare)); n != 20 {
		t.Errorf("white has %d legal moves, want 20", n)
	}
	if n := len(AllLegalMoves(b, board.Black, board.NoSquare)); n != 20 {
		t.Errorf("black has %d legal moves, want 20", n)
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	b := mustBoard(t, "4r1k1/8/8/8/8/8/4B3/4K3", "-")
	if moves := LegalMoves(mustPiece(t, b, board.E2), b, board.NoSquare); len(moves) != 0 {
		t.Errorf("pinned bishop has moves %v", destinations(moves))
	}

	// A pinned rook may still slide along the pin.
	b = mustBoard(t, "4r1k1/8/8/8/8/8/4R3/4K3", "-")
	got := destinations(LegalMoves(mustPiece(t, b, board.E2), b, board.NoSquare))
	want := []string{"e3", "e4", "e5", "e6", "e7", "e8"}
	if len(got) != len(want) {
		t.Fatalf("pinned rook moves = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pinned rook moves = %v, want %v", got, want)
			break
		}
	}
}

func TestKingCannotCaptureDefendedPiece(t *testing.T) {
	// Black rook on d2 is defended by the rook on d8.
	b := mustBoard(t, "3rk3/8/8/8/8/8/3r4/4K3", "-")
	for _, m := range LegalMoves(mustPiece(t, b, board.E1), b, board.NoSquare) {
		if m.To == board.D2 {
			t.Error("king may not capture a defended rook")
		}
	}
}

func TestCastlingMoves(t *testing.T) {
	tests := []struct {
		name      string
		placement string
		castling  string
		king      board.Square
		want      []string
	}{
		{"both sides", "r3k2r/8/8/8/8/8/8/R3K2R", "KQkq", board.E1, []string{"c1", "g1"}},
		{"black both sides", "r3k2r/8/8/8/8/8/8/R3K2R", "KQkq", board.E8, []string{"c8", "g8"}},
		{"queen rook moved", "r3k2r/8/8/8/8/8/8/R3K2R", "K", board.E1, []string{"g1"}},
		{"king moved", "r3k2r/8/8/8/8/8/8/R3K2R", "kq", board.E1, nil},
		{"blocked by knight", "4k3/8/8/8/8/8/8/RN2K1NR", "KQ", board.E1, nil},
		{"through check", "4kr2/8/8/8/8/8/8/R3K2R", "KQ", board.E1, []string{"c1"}},
		{"landing in check", "4k1r1/8/8/8/8/8/8/R3K2R", "KQ", board.E1, []string{"c1"}},
		{"out of check", "4k3/8/8/4q3/8/8/8/R3K2R", "KQ", board.E1, nil},
		{"b1 attacked is fine", "1r2k3/8/8/8/8/8/8/R3K2R", "KQ", board.E1, []string{"c1", "g1"}},
		{"pawn guards f1", "4k3/8/8/8/8/8/6p1/R3K2R", "KQ", board.E1, []string{"c1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.placement, tc.castling)
			got := destinations(CastlingMoves(mustPiece(t, b, tc.king), b))
			if len(got) != len(tc.want) {
				t.Fatalf("castling = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("castling = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestCastlingMoveTags(t *testing.T) {
	b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R", "KQkq")
	for _, m := range CastlingMoves(mustPiece(t, b, board.E1), b) {
		switch m.To {
		case board.G1:
			if m.Special != board.CastleKingside {
				t.Errorf("e1g1 tagged %s", m.Special)
			}
		case board.C1:
			if m.Special != board.CastleQueenside {
				t.Errorf("e1c1 tagged %s", m.Special)
			}
		default:
			t.Errorf("unexpected castling destination %s", m.To)
		}
		if m.IsCapture() {
			t.Errorf("castling %s should not capture", m)
		}
	}
}

func TestEnPassantMove(t *testing.T) {
	b := mustBoard(t, "4k3/8/8/3pP3/8/8/8/4K3", "-")
	pawn := mustPiece(t, b, board.E5)

	m, ok := EnPassantMove(pawn, b, board.D6)
	if !ok {
		t.Fatal("expected en passant capture on d6")
	}
	if m.Special != board.EnPassant || m.To != board.D6 {
		t.Errorf("move = %s (%s), want e5d6 en passant", m, m.Special)
	}
	if m.Captured == nil || m.Captured.Square != board.D5 {
		t.Errorf("captured = %v, want pawn on d5", m.Captured)
	}

	if _, ok := EnPassantMove(pawn, b, board.F6); ok {
		t.Error("no pawn beside f6, en passant should not be available")
	}

	moves := LegalMoves(pawn, b, board.D6)
	if got := destinations(moves); len(got) != 2 {
		t.Errorf("pawn moves with target = %v, want [d6 e6]", got)
	}
	if got := destinations(LegalMoves(pawn, b, board.NoSquare)); len(got) != 1 {
		t.Errorf("pawn moves without target = %v, want [e6]", got)
	}
}

func TestEnPassantPin(t *testing.T) {
	// Capturing en passant would expose the black king on a4 to the rook on h4.
	b := mustBoard(t, "8/8/8/8/k2Pp2R/8/8/4K3", "-")
	if _, ok := EnPassantMove(mustPiece(t, b, board.E4), b, board.D3); ok {
		t.Error("en passant out of a horizontal pin should be illegal")
	}
	if n := len(AllLegalMoves(b, board.Black, board.D3)); n != 6 {
		t.Errorf("black has %d legal moves, want 6", n)
	}
}

func TestCheckDetection(t *testing.T) {
	tests := []struct {
		name      string
		placement string
		color     board.Color
		want      bool
	}{
		{"rook on file", "4k3/8/8/8/8/8/8/4R1K1", board.Black, true},
		{"blocked rook", "4k3/4p3/8/8/8/8/8/4R1K1", board.Black, false},
		{"knight", "4k3/8/3N4/8/8/8/8/6K1", board.Black, true},
		{"white pawn", "4k3/3P4/8/8/8/8/8/6K1", board.Black, true},
		{"pawn does not check straight ahead", "4k3/4P3/8/8/8/8/8/6K1", board.Black, false},
		{"black pawn", "8/8/8/8/8/8/5p2/4K1k1", board.White, true},
		{"no king", "8/8/8/8/8/8/8/R7", board.White, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.placement, "-")
			if got := IsInCheck(b, tc.color); got != tc.want {
				t.Errorf("IsInCheck = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCheckmate(t *testing.T) {
	// Back rank mate: black king h8 boxed in by its own pawns.
	b := mustBoard(t, "R6k/6pp/8/8/8/8/8/K7", "-")
	if !IsCheckmate(b, board.Black, board.NoSquare) {
		t.Error("expected checkmate")
	}
	if IsStalemate(b, board.Black, board.NoSquare) {
		t.Error("checkmate is not stalemate")
	}

	// King can capture the checking rook.
	b = mustBoard(t, "6Rk/8/8/8/8/8/8/K7", "-")
	if IsCheckmate(b, board.Black, board.NoSquare) {
		t.Error("expected NOT checkmate")
	}
}

func TestStalemate(t *testing.T) {
	b := mustBoard(t, "k7/8/1Q6/8/8/8/8/2K5", "-")
	if !IsStalemate(b, board.Black, board.NoSquare) {
		t.Error("expected stalemate")
	}
	if IsCheckmate(b, board.Black, board.NoSquare) {
		t.Error("stalemate is not checkmate")
	}
	if IsStalemate(b, board.White, board.NoSquare) {
		t.Error("white has moves")
	}
}

func TestHasInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name      string
		placement string
		want      bool
	}{
		{"K v K", "4k3/8/8/8/8/8/8/4K3", true},
		{"KB v K", "4k3/8/8/8/8/8/8/2B1K3", true},
		{"KN v K", "4k3/8/8/8/8/8/8/1N2K3", true},
		{"K v KN", "1n2k3/8/8/8/8/8/8/4K3", true},
		{"KB v KB opposite colors", "2b1k3/8/8/8/8/8/8/2B1K3", false},
		{"KB v KB same color", "4kb2/8/8/8/8/8/8/2B1K3", true},
		{"KBB same color", "4k3/8/8/8/8/8/8/B1B1K3", true},
		{"KBB opposite colors", "4k3/8/8/8/8/8/8/2BBK3", false},
		{"KR v K", "4k3/8/8/8/8/8/8/R3K3", false},
		{"KP v K", "4k3/8/8/8/8/8/4P3/4K3", false},
		{"KNN v K", "4k3/8/8/8/8/8/8/1N2K1N1", false},
		{"start", board.StartPlacement, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.placement, "-")
			if got := HasInsufficientMaterial(b); got != tc.want {
				t.Errorf("HasInsufficientMaterial = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsMoveLegalDoesNotTouchBoard(t *testing.T) {
	b := board.NewStandardBoard()
	before := b.Clone()
	AllLegalMoves(b, board.White, board.NoSquare)
	if !b.Equal(before) {
		t.Error("legal move generation mutated the board")
	}
}
