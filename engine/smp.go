// Lazy SMP: every worker searches the full tree to the same depth against
// one shared transposition table. No work partitioning - workers reaching a
// subtree late ride on the cut-offs and best-moves cached by whoever got
// there first, and per-worker quiet-move shuffling keeps them from all
// walking the tree in lock-step.

package engine

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/google/uuid"
)

// SearchConfig fixes the shape of one search request. One instance exists
// per difficulty tier; never mutated at runtime.
type SearchConfig struct {
	Depth   int // plies, every worker searches to exactly this depth
	Workers int // concurrent searchers sharing the request's TT
}

// Evaluation is the engine's answer: the best move found, its score from the
// root mover's perspective in centipawns, and the depth it was proven at.
type Evaluation struct {
	Move  dragon.Move
	Score EvalCp
	Depth int
	Nodes uint64 // total nodes over all workers, for the curious
}

var (
	// ErrNoLegalMoves - the root is already checkmate or stalemate. Which of
	// the two it is belongs to the rules layer, not here.
	ErrNoLegalMoves = errors.New("engine: no legal moves at root")

	// ErrAllWorkersFailed - every search worker died; infrastructure-level.
	ErrAllWorkersFailed = errors.New("engine: all search workers failed")
)

type workerResult struct {
	move  dragon.Move
	score EvalCp
	stats SearchStatsT
}

// Search picks the best move for the side to move by running
// cfg.Workers concurrent alpha-beta searchers over a shared transposition
// table and reducing their root results. The caller's board is never
// touched - each worker searches its own copy.
func Search(board *dragon.Board, cfg SearchConfig) (Evaluation, error) {
	legalMoves := board.GenerateLegalMoves()
	if len(legalMoves) == 0 {
		return Evaluation{}, ErrNoLegalMoves
	}

	// A forced move needs no search - score it one ply deep and get on with it.
	if len(legalMoves) == 1 {
		return searchForcedMove(*board, legalMoves[0]), nil
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	depth := clampDepth(cfg.Depth)

	requestID := uuid.NewString()
	tt := NewTranspositionTable(DefaultTTCapacity)
	results := make(chan workerResult, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			// A single worker blowing up is isolated; the request only
			// fails if every worker does.
			defer func() {
				if r := recover(); r != nil {
					log.Printf("engine: search %s: worker %d failed: %v", requestID, workerID, r)
				}
			}()

			// Worker 0 searches unperturbed; the rest shuffle their quiet
			// moves with distinct seeds.
			var rng *rand.Rand
			if workerID > 0 {
				rng = rand.New(rand.NewSource(int64(workerID)))
			}

			s := NewSearchT(*board, tt, rng)
			move, score := s.NegAlphaBeta(depth, 0, -InfEval, InfEval)
			if move == NoMove {
				log.Printf("engine: search %s: worker %d found no move", requestID, workerID)
				return
			}
			results <- workerResult{move: move, score: score, stats: s.Stats()}
		}(i)
	}
	wg.Wait()
	close(results)

	best, stats, ok := reduceResults(results)
	if !ok {
		return Evaluation{}, fmt.Errorf("%w (search %s)", ErrAllWorkersFailed, requestID)
	}

	return Evaluation{
		Move:  best.move,
		Score: best.score,
		Depth: depth,
		Nodes: stats.Nodes,
	}, nil
}

// reduceResults picks the surviving result with the maximum score, ties
// broken in favour of the earliest-completing worker (channel order is
// completion order). Alpha-beta at a fixed depth is exact whatever the move
// ordering, so the workers agree on the true score - taking the max merely
// shrugs off the odd worker that got misled by a stale shared-cache entry.
func reduceResults(results <-chan workerResult) (workerResult, SearchStatsT, bool) {
	var best workerResult
	var stats SearchStatsT
	ok := false

	for r := range results {
		stats.add(&r.stats)
		if !ok || r.score > best.score {
			best = r
			ok = true
		}
	}

	return best, stats, ok
}

// searchForcedMove scores the only legal move one ply deep. The forced move
// may itself end the game, so the child position gets the same terminal
// treatment as any other node before falling back to static eval.
func searchForcedMove(board dragon.Board, move dragon.Move) Evaluation {
	unapply := board.Apply(move)
	var score EvalCp
	if len(board.GenerateLegalMoves()) == 0 {
		score = -negaMateEval(&board, 1)
	} else {
		score = -NegaStaticEval(&board)
	}
	unapply()

	return Evaluation{
		Move:  move,
		Score: score,
		Depth: 1,
		Nodes: 1,
	}
}
