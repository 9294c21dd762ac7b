package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"

	"github.com/hailam/chessrules/internal/console"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/perft"
	"github.com/hailam/chessrules/internal/storage"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	fen        = flag.String("fen", "", "start from this FEN instead of the standard position")
	cacheMode  = flag.String("cache", "memory", "perft cache: none, memory or disk")
	cacheDir   = flag.String("cachedir", "", "directory for the disk cache (default: user cache dir)")
	hashMB     = flag.Int("hash", 64, "memory cache size in MB")
	perftDepth = flag.Int("perft", 0, "run perft to this depth and exit")
	divide     = flag.Bool("divide", false, "with -perft, print per-move counts")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cache, closeCache, err := openCache(*cacheMode, *cacheDir, *hashMB)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	c := console.New(cache, os.Stdout)
	if *fen != "" {
		s, err := game.FromFEN(*fen)
		if err != nil {
			log.Fatal(err)
		}
		c.SetState(s)
	}

	if *perftDepth > 0 {
		cmd := "perft"
		if *divide {
			cmd = "divide"
		}
		script := fmt.Sprintf("%s %d\n", cmd, *perftDepth)
		if err := c.Run(ctx, strings.NewReader(script)); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := c.Run(ctx, os.Stdin); err != nil {
		log.Fatal(err)
	}
}

// openCache returns the perft cache for mode and a function releasing it.
func openCache(mode, dir string, sizeMB int) (perft.Cache, func(), error) {
	switch mode {
	case "none":
		return nil, func() {}, nil
	case "memory":
		return perft.NewTable(sizeMB), func() {}, nil
	case "disk":
		if dir == "" {
			var err error
			dir, err = storage.GetPerftDir()
			if err != nil {
				return nil, nil, fmt.Errorf("locate cache dir: %w", err)
			}
		}
		db, err := storage.Open(dir)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Perft cache: %s", dir)
		return db, func() {
			if err := db.Close(); err != nil {
				log.Printf("Warning: closing perft cache: %v", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache mode %q", mode)
	}
}
