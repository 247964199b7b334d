package engine

import (
	"math/rand"

	dragon "github.com/dylhunn/dragontoothmg"
)

const NoMove dragon.Move = 0

// MaxDepth bounds the nominal search depth; mate-distance decay stays far
// inside the sentinel headroom at this depth.
const MaxDepth = 64

// clampDepth keeps a requested search depth usable: at least one ply so a
// search always looks at its moves, and at most MaxDepth.
func clampDepth(depth int) int {
	if depth < 1 {
		return 1
	}
	if depth > MaxDepth {
		return MaxDepth
	}
	return depth
}

// SearchT is a single search worker: its own board copy and quiet-move rng,
// plus a reference to the request's shared transposition table. Not safe for
// concurrent use - the Lazy SMP layer runs one goroutine per SearchT.
type SearchT struct {
	board *dragon.Board
	tt    *TranspositionTable
	rng   *rand.Rand
	stats SearchStatsT
}

// NewSearchT makes a worker around its own copy of the board. A nil rng
// makes the worker fully deterministic (no quiet-move perturbation).
func NewSearchT(board dragon.Board, tt *TranspositionTable, rng *rand.Rand) *SearchT {
	return &SearchT{
		board: &board,
		tt:    tt,
		rng:   rng,
	}
}

// Stats of the worker's last search.
func (s *SearchT) Stats() SearchStatsT {
	return s.stats
}

// NegAlphaBeta returns the best eval attainable from the current position
// through fail-soft negamax alpha-beta search, along with the move leading
// to the principal variation.
func (s *SearchT) NegAlphaBeta(depthToGo int, depthFromRoot int, alpha EvalCp, beta EvalCp) (dragon.Move, EvalCp) {
	s.stats.Nodes++

	// Generate all legal moves - thanks dragontoothmg!
	legalMoves := s.board.GenerateLegalMoves()

	// Check for checkmate or stalemate
	if len(legalMoves) == 0 {
		s.stats.Mates++
		return NoMove, negaMateEval(s.board, depthFromRoot)
	}

	if depthToGo <= 0 {
		return NoMove, NegaStaticEval(s.board)
	}

	s.stats.NonLeafs++

	// Remember these to decide whether our final eval is exact or a bound
	origAlpha, origBeta := alpha, beta

	// Probe the transposition table
	ttMove := NoMove
	if entry, isHit := s.tt.probe(s.board.Hash()); isHit {
		s.stats.TTHits++

		// Never trust a TT move blindly - under racy shared-table writes it
		// can belong to a colliding position.
		if isLegalMove(legalMoves, entry.bestMove) {
			ttMove = entry.bestMove
		}

		if int(entry.depthToGo) >= depthToGo {
			ttEval := mateScoreFromTT(entry.score, depthFromRoot)
			switch entry.bound {
			case ttBoundExact:
				s.stats.TTCuts++
				return ttMove, ttEval
			case ttBoundLower:
				if ttEval >= beta {
					s.stats.TTCuts++
					return ttMove, ttEval
				}
			case ttBoundUpper:
				if ttEval <= alpha {
					s.stats.TTCuts++
					return ttMove, ttEval
				}
			}
		}
	}

	// Sort the moves heuristically
	if len(legalMoves) > 1 {
		orderMoves(s.board, legalMoves, ttMove, s.rng)
	}

	bestMove := NoMove
	bestEval := -InfEval

	for _, move := range legalMoves {
		// Make the move
		unapply := s.board.Apply(move)

		// Get the (deep) eval
		_, eval := s.NegAlphaBeta(depthToGo-1, depthFromRoot+1, -beta, -alpha)
		eval = -eval // back to our perspective

		// Take back the move
		unapply()

		// Maximise our eval.
		// Note - this MUST be strictly > because we fail-soft AT the current best eval - beware!
		if eval > bestEval {
			bestEval, bestMove = eval, move
		}

		if alpha < bestEval {
			alpha = bestEval
		}

		// Note that this is aggressive, and we fail-soft AT the parent's best eval - be very ware!
		if alpha >= beta {
			// beta cut-off
			s.stats.BetaCuts++
			break
		}
	}

	if bestEval < origBeta {
		s.stats.AllChildren++
	}

	bound := ttBoundExact
	if bestEval >= origBeta {
		bound = ttBoundLower
	} else if bestEval <= origAlpha {
		bound = ttBoundUpper
	}
	s.tt.store(s.board.Hash(), mateScoreToTT(bestEval, depthFromRoot), bestMove, depthToGo, bound)

	return bestMove, bestEval
}

// Mate scores decay with distance from the root, but a TT entry can be hit
// from a different root distance via a transposition. We store mate scores
// relative to the entry's node and rebase them on probe, so a rehit always
// reports the true mate distance from its own root.
func mateScoreToTT(score EvalCp, depthFromRoot int) EvalCp {
	if score > HighMateThreshold {
		return score + EvalCp(depthFromRoot)
	}
	if score < -HighMateThreshold {
		return score - EvalCp(depthFromRoot)
	}
	return score
}

func mateScoreFromTT(score EvalCp, depthFromRoot int) EvalCp {
	if score > HighMateThreshold {
		return score - EvalCp(depthFromRoot)
	}
	if score < -HighMateThreshold {
		return score + EvalCp(depthFromRoot)
	}
	return score
}

// Return the eval for stalemate or checkmate from the current mover's
// perspective. Only valid if there are no legal moves.
// Closer to the root is a more extreme score, so forced mates are taken
// (or dodged) as early as possible.
func negaMateEval(board *dragon.Board, depthFromRoot int) EvalCp {
	if board.OurKingInCheck() {
		// checkmate - we lose
		return -(MateEval - EvalCp(depthFromRoot))
	}
	// stalemate
	return DrawEval
}

func isLegalMove(legalMoves []dragon.Move, move dragon.Move) bool {
	if move == NoMove {
		return false
	}
	for _, legal := range legalMoves {
		if legal == move {
			return true
		}
	}
	return false
}
