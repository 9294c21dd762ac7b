// Package perft counts the leaf nodes of the legal move tree. Matching the
// published counts for well-known positions is the standard way to verify
// move generation.
package perft

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
)

// Cache stores subtree node counts keyed by position hash and depth.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(hash uint64, depth int) (uint64, bool)
	Put(hash uint64, depth int, nodes uint64) error
}

// Entry is the node count below one root move.
type Entry struct {
	Move  string // UCI
	Nodes uint64
}

var promotionTypes = [...]board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight}

// Moves returns the legal moves of s with every back-rank pawn move
// expanded into its four promotions.
func Moves(s *game.GameState) []board.Move {
	legal := s.LegalMoves()
	moves := make([]board.Move, 0, len(legal))
	for _, m := range legal {
		if m.Piece.Type == board.Pawn && m.To.Rank() == m.Piece.Color.BackRank() {
			for _, pt := range promotionTypes {
				moves = append(moves, m.WithPromotion(pt))
			}
			continue
		}
		moves = append(moves, m)
	}
	return moves
}

// Count returns the number of leaf nodes depth plies below s. cache may be
// nil. Results at depth 2 and above are read from and written to the cache.
func Count(ctx context.Context, s *game.GameState, depth int, cache Cache) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	moves := Moves(s)
	if depth == 1 {
		return uint64(len(moves)), nil
	}

	var hash uint64
	if cache != nil {
		hash = s.Hash()
		if n, ok := cache.Get(hash, depth); ok {
			return n, nil
		}
	}

	var nodes uint64
	for _, m := range moves {
		n, err := Count(ctx, s.Apply(m), depth-1, cache)
		if err != nil {
			return 0, err
		}
		nodes += n
	}

	if cache != nil {
		if err := cache.Put(hash, depth, nodes); err != nil {
			return 0, err
		}
	}
	return nodes, nil
}

// Divide returns the node count below each root move, sorted by move.
// Root moves are counted in parallel, one goroutine per CPU.
func Divide(ctx context.Context, s *game.GameState, depth int, cache Cache) ([]Entry, error) {
	if depth <= 0 {
		return nil, nil
	}

	moves := Moves(s)
	entries := make([]Entry, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			n, err := Count(ctx, s.Apply(m), depth-1, cache)
			if err != nil {
				return err
			}
			entries[i] = Entry{Move: m.String(), Nodes: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Move < entries[j].Move })
	return entries, nil
}

// Total sums the node counts of a Divide result.
func Total(entries []Entry) uint64 {
	var total uint64
	for _, e := range entries {
		total += e.Nodes
	}
	return total
}
