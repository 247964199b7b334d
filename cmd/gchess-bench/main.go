// gchess-bench runs the bot search over a suite of positions and reports
// move, score and node throughput per position. Handy for eyeballing search
// quality and for CPU profiling the engine under real Lazy SMP contention.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/pkg/profile"
	"golang.org/x/sync/errgroup"

	"github.com/gbourquet/gChess-sub002/bot"
)

// A small suite covering the opening, a tactic, a forced mate and an endgame.
var benchFens = []string{
	dragon.Startpos,
	"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"6k1/5ppp/8/8/8/8/8/R6K w - - 0 1",
	"8/5pk1/6p1/8/5P2/6P1/5K2/8 w - - 0 1",
}

func main() {
	difficulty := flag.String("difficulty", string(bot.Medium), "difficulty tier to search at")
	fen := flag.String("fen", "", "single FEN to search instead of the built-in suite")
	concurrency := flag.Int("concurrency", 1, "how many positions to search at once")
	cpuprofile := flag.Bool("cpuprofile", false, "write a CPU profile")
	flag.Parse()

	if *cpuprofile {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	fens := benchFens
	if *fen != "" {
		fens = []string{*fen}
	}

	var group errgroup.Group
	group.SetLimit(*concurrency)

	start := time.Now()
	for _, f := range fens {
		f := f
		group.Go(func() error {
			board := dragon.ParseFen(f)

			searchStart := time.Now()
			eval, err := bot.CalculateBestMove(&board, bot.Difficulty(*difficulty))
			if err != nil {
				return fmt.Errorf("search %q: %w", f, err)
			}

			elapsed := time.Since(searchStart)
			nps := float64(eval.Nodes) / elapsed.Seconds()
			fmt.Printf("%-72s bestmove %-6s score %6d depth %d nodes %9d nps %9.0f\n",
				f, &eval.Move, eval.Score, eval.Depth, eval.Nodes, nps)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("suite done in %.2fs\n", time.Since(start).Seconds())
}
