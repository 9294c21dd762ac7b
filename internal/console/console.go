// Package console implements a line-oriented command loop over the rules
// engine, in the style of a UCI debug shell:
//
//	position startpos [moves e2e4 e7e5 ...]
//	position fen <fen> [moves ...]
//	move <move>     play one move, UCI or SAN
//	moves           list legal moves
//	undo            return to the previous position
//	resign | draw   end the game
//	d               print the board
//	perft <depth>   count leaf nodes
//	divide <depth>  count leaf nodes per root move
//	quit
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/perft"
)

// Console holds the current game and the positions that led to it.
type Console struct {
	state   *game.GameState
	history []*game.GameState // earlier states, for undo

	cache perft.Cache
	out   io.Writer
}

// New creates a console at the standard starting position. cache may be
// nil.
func New(cache perft.Cache, out io.Writer) *Console {
	return &Console{
		state: game.NewStandard(),
		cache: cache,
		out:   out,
	}
}

// State returns the current game state.
func (c *Console) State() *game.GameState {
	return c.state
}

// SetState replaces the current game and clears the undo history.
func (c *Console) SetState(s *game.GameState) {
	c.state = s
	c.history = nil
}

// Run reads commands from in until EOF or "quit". ctx cancels a running
// perft.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "position":
			c.handlePosition(args)
		case "move":
			c.handleMove(args)
		case "moves":
			c.handleMoves()
		case "undo":
			c.handleUndo()
		case "resign":
			c.push(c.state.Resign())
			c.printStatus()
		case "draw":
			c.push(c.state.AgreeToDraw())
			c.printStatus()
		case "d":
			c.handleDisplay()
		case "perft":
			c.handlePerft(ctx, args, false)
		case "divide":
			c.handlePerft(ctx, args, true)
		case "quit":
			return nil
		default:
			fmt.Fprintf(c.out, "Unknown command: %s\n", cmd)
		}
	}
	return scanner.Err()
}

func (c *Console) push(next *game.GameState) {
	c.history = append(c.history, c.state)
	c.state = next
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (c *Console) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	// Find "moves" keyword
	setupEnd, moveStart := len(args), len(args)
	for i, arg := range args {
		if arg == "moves" {
			setupEnd, moveStart = i, i+1
			break
		}
	}

	var s *game.GameState
	switch args[0] {
	case "startpos":
		s = game.NewStandard()
	case "fen":
		var err error
		s, err = game.FromFEN(strings.Join(args[1:setupEnd], " "))
		if err != nil {
			fmt.Fprintf(c.out, "Invalid FEN: %v\n", err)
			return
		}
	default:
		fmt.Fprintf(c.out, "Unknown position type: %s\n", args[0])
		return
	}

	// Apply moves
	var history []*game.GameState
	for _, moveStr := range args[moveStart:] {
		res, err := s.MakeUCIMove(moveStr)
		if err != nil {
			fmt.Fprintf(c.out, "Invalid move %s: %v\n", moveStr, err)
			return
		}
		history = append(history, s)
		s = res.State
	}

	c.state = s
	c.history = history
}

func (c *Console) handleMove(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: move <uci>")
		return
	}
	prev := c.state
	res, err := prev.MakeUCIMove(args[0])
	if errors.Is(err, game.ErrInvalidMoveString) {
		res, err = prev.MakeSANMove(args[0])
	}
	if err != nil {
		fmt.Fprintf(c.out, "Invalid move %s: %v\n", args[0], err)
		return
	}
	c.push(res.State)
	if prev.Turn() == board.White {
		fmt.Fprintf(c.out, "%d. %s\n", prev.FullMoveNumber(), res.SAN)
	} else {
		fmt.Fprintf(c.out, "%d... %s\n", prev.FullMoveNumber(), res.SAN)
	}
	c.printStatus()
}

func (c *Console) handleMoves() {
	moves := perft.Moves(c.state)
	sans := make([]string, 0, len(moves))
	for _, m := range moves {
		sans = append(sans, fmt.Sprintf("%s(%s)", m, c.state.SAN(m)))
	}
	fmt.Fprintf(c.out, "%d legal moves: %s\n", len(sans), strings.Join(sans, " "))
}

func (c *Console) handleUndo() {
	if len(c.history) == 0 {
		fmt.Fprintln(c.out, "Nothing to undo")
		return
	}
	c.state = c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	fmt.Fprintf(c.out, "Fen: %s\n", c.state.ToFEN())
}

func (c *Console) handleDisplay() {
	fmt.Fprint(c.out, c.state.Board().String())
	fmt.Fprintf(c.out, "Fen: %s\n", c.state.ToFEN())
	fmt.Fprintf(c.out, "Key: %016X\n", c.state.Hash())
	if c.state.IsInCheck() {
		fmt.Fprintln(c.out, "Check")
	}
}

func (c *Console) printStatus() {
	switch {
	case c.state.IsGameOver():
		fmt.Fprintf(c.out, "Game over: %s (%s)\n", c.state.Result(), c.state.EndReason())
	case c.state.IsInCheck():
		fmt.Fprintf(c.out, "%s is in check\n", c.state.Turn())
	}
}

// handlePerft runs a perft test.
func (c *Console) handlePerft(ctx context.Context, args []string, divide bool) {
	depth := 3
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			fmt.Fprintf(c.out, "Invalid depth: %s\n", args[0])
			return
		}
		depth = d
	}

	start := time.Now()
	var nodes uint64
	if divide {
		entries, err := perft.Divide(ctx, c.state, depth, c.cache)
		if err != nil {
			fmt.Fprintf(c.out, "perft stopped: %v\n", err)
			return
		}
		for _, e := range entries {
			fmt.Fprintf(c.out, "%s: %d\n", e.Move, e.Nodes)
		}
		nodes = perft.Total(entries)
	} else {
		var err error
		nodes, err = perft.Count(ctx, c.state, depth, c.cache)
		if err != nil {
			fmt.Fprintf(c.out, "perft stopped: %v\n", err)
			return
		}
	}
	elapsed := time.Since(start)

	fmt.Fprintf(c.out, "Nodes: %s\n", humanize.Comma(int64(nodes)))
	fmt.Fprintf(c.out, "Time: %v\n", elapsed.Round(time.Millisecond))
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(c.out, "NPS: %s\n", humanize.Comma(int64(nps)))
	}
}
