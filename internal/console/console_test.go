package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/perft"
)

func run(t *testing.T, c *Console, script string) string {
	t.Helper()
	var out bytes.Buffer
	c.out = &out
	if err := c.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestPositionAndMoves(t *testing.T) {
	c := New(nil, nil)
	run(t, c, "position startpos moves e2e4 e7e5\n")

	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w - e6 0 2"
	if got := c.State().ToFEN(); got != want {
		t.Errorf("FEN = %q, want %q", got, want)
	}

	run(t, c, "position fen 4k3/8/8/8/8/8/8/4K2R w K - 0 1 moves e1g1\n")
	if got := c.State().ToFEN(); got != "4k3/8/8/8/8/8/8/5RK1 b - - 1 1" {
		t.Errorf("FEN after castling = %q", got)
	}
}

func TestMoveAndUndo(t *testing.T) {
	c := New(nil, nil)
	out := run(t, c, "move e2e4\nmove e5\nmove g1f3\n")
	for _, want := range []string{"1. e4", "1... e5", "2. Nf3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out = run(t, c, "undo\nundo\nundo\nundo\n")
	if c.State().ToFEN() != game.NewStandard().ToFEN() {
		t.Errorf("after undo FEN = %q, want start", c.State().ToFEN())
	}
	if !strings.Contains(out, "Nothing to undo") {
		t.Errorf("fourth undo should report an empty history:\n%s", out)
	}
}

func TestIllegalMoveKeepsState(t *testing.T) {
	c := New(nil, nil)
	out := run(t, c, "move e2e5\nmove e7e5\nmove x\n")
	if strings.Count(out, "Invalid move") != 3 {
		t.Errorf("want three rejections:\n%s", out)
	}
	if c.State().ToFEN() != game.NewStandard().ToFEN() {
		t.Errorf("rejected moves changed the position: %s", c.State().ToFEN())
	}
}

func TestGameOverStatus(t *testing.T) {
	c := New(nil, nil)
	out := run(t, c, "position startpos moves e2e4 e7e5 d1h5 b8c6 f1c4 g8f6\nmove h5f7\nmove e8e7\n")
	if !strings.Contains(out, "4. Qxf7#") {
		t.Errorf("output missing mating move:\n%s", out)
	}
	if !strings.Contains(out, "Game over: 1-0 (Checkmate)") {
		t.Errorf("output missing result:\n%s", out)
	}
	if !strings.Contains(out, "game is over") {
		t.Errorf("move after mate should be rejected:\n%s", out)
	}

	c = New(nil, nil)
	out = run(t, c, "resign\n")
	if !strings.Contains(out, "Game over: 0-1 (Resignation)") {
		t.Errorf("resign output:\n%s", out)
	}
	out = run(t, c, "undo\ndraw\n")
	if !strings.Contains(out, "Game over: 1/2-1/2 (DrawAgreement)") {
		t.Errorf("draw output:\n%s", out)
	}
}

func TestListMoves(t *testing.T) {
	c := New(nil, nil)
	out := run(t, c, "moves\n")
	if !strings.HasPrefix(out, "20 legal moves:") {
		t.Errorf("moves output = %q", out)
	}
	if !strings.Contains(out, "g1f3(Nf3)") {
		t.Errorf("moves output missing g1f3(Nf3): %q", out)
	}
}

func TestPerftCommands(t *testing.T) {
	c := New(perft.NewTable(1), nil)
	out := run(t, c, "perft 3\n")
	if !strings.Contains(out, "Nodes: 8,902") {
		t.Errorf("perft output:\n%s", out)
	}

	out = run(t, c, "divide 2\n")
	if !strings.Contains(out, "e2e4: 20") || !strings.Contains(out, "Nodes: 400") {
		t.Errorf("divide output:\n%s", out)
	}

	out = run(t, c, "perft zero\n")
	if !strings.Contains(out, "Invalid depth") {
		t.Errorf("bad depth output:\n%s", out)
	}
}

func TestDisplayAndQuit(t *testing.T) {
	c := New(nil, nil)
	out := run(t, c, "d\nquit\nmove e2e4\n")
	if !strings.Contains(out, "Fen: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1") {
		t.Errorf("display output:\n%s", out)
	}
	if c.State().ToFEN() != game.NewStandard().ToFEN() {
		t.Error("commands after quit were executed")
	}

	out = run(t, c, "bogus\n")
	if !strings.Contains(out, "Unknown command: bogus") {
		t.Errorf("unknown command output: %q", out)
	}
}
