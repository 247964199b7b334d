// Heuristic move ordering - pure pruning fuel, never affects search correctness

package engine

import (
	"math/rand"
	"sort"

	dragon "github.com/dylhunn/dragontoothmg"
)

// Ordering tiers, highest first. Within the capture tier moves are ranked by
// MVV-LVA - most valuable victim first, least valuable attacker as the
// tie-break - so a pawn capturing a queen outranks a queen capturing a pawn.
const (
	orderTTMove    = 1 << 30
	orderCapture   = 1 << 20
	orderPromotion = 1 << 10
)

// orderMoves sorts legalMoves in place for maximum cut-off likelihood:
// the TT best-move first, then captures by MVV-LVA, then promotions (queen
// above the rest), then the remaining quiet moves in generator order.
//
// When rng is non-nil the quiet tier is shuffled with it first; per-worker
// seeds diversify which subtrees the Lazy SMP workers explore first. With a
// nil rng ordering is fully deterministic.
func orderMoves(board *dragon.Board, legalMoves []dragon.Move, ttMove dragon.Move, rng *rand.Rand) {
	if rng != nil {
		shuffleQuietMoves(board, legalMoves, ttMove, rng)
	}

	scores := make([]int, len(legalMoves))
	for i := range legalMoves {
		scores[i] = moveOrderScore(board, legalMoves[i], ttMove)
	}

	sort.SliceStable(legalMoves, func(i, j int) bool {
		return scores[i] > scores[j]
	})
}

func moveOrderScore(board *dragon.Board, move dragon.Move, ttMove dragon.Move) int {
	if move != NoMove && move == ttMove {
		return orderTTMove
	}

	score := 0

	if victim := captureVictim(board, move); victim != dragon.Nothing {
		attacker := pieceOnSquare(ourBitboards(board), uint8(move.From()))
		score += orderCapture + int(victim)*8 - int(attacker)
	}

	if promote := move.Promote(); promote != dragon.Nothing {
		score += orderPromotion + int(promote)
	}

	return score
}

// Shuffle the quiet (non-capture, non-promotion, non-TT) moves among their
// slots, leaving every other move where it was. The subsequent stable sort
// preserves the shuffled relative order within the quiet tier.
func shuffleQuietMoves(board *dragon.Board, legalMoves []dragon.Move, ttMove dragon.Move, rng *rand.Rand) {
	quietAt := make([]int, 0, len(legalMoves))
	for i, move := range legalMoves {
		if move == ttMove || move.Promote() != dragon.Nothing {
			continue
		}
		if captureVictim(board, move) != dragon.Nothing {
			continue
		}
		quietAt = append(quietAt, i)
	}

	rng.Shuffle(len(quietAt), func(i, j int) {
		legalMoves[quietAt[i]], legalMoves[quietAt[j]] = legalMoves[quietAt[j]], legalMoves[quietAt[i]]
	})
}

// captureVictim returns the piece kind taken by the move, or Nothing for a
// quiet move. An en-passant capture lands on an empty square, so a pawn
// moving diagonally onto nothing still counts a pawn victim.
func captureVictim(board *dragon.Board, move dragon.Move) dragon.Piece {
	from, to := uint8(move.From()), uint8(move.To())

	victim := pieceOnSquare(theirBitboards(board), to)
	if victim != dragon.Nothing {
		return victim
	}

	if pieceOnSquare(ourBitboards(board), from) == dragon.Pawn && from%8 != to%8 {
		// diagonal pawn move to an empty square - en passant
		return dragon.Pawn
	}

	return dragon.Nothing
}

func ourBitboards(board *dragon.Board) *dragon.Bitboards {
	if board.Wtomove {
		return &board.White
	}
	return &board.Black
}

func theirBitboards(board *dragon.Board) *dragon.Bitboards {
	if board.Wtomove {
		return &board.Black
	}
	return &board.White
}

func pieceOnSquare(bbs *dragon.Bitboards, sq uint8) dragon.Piece {
	sqBit := uint64(1) << sq
	switch {
	case bbs.Pawns&sqBit != 0:
		return dragon.Pawn
	case bbs.Knights&sqBit != 0:
		return dragon.Knight
	case bbs.Bishops&sqBit != 0:
		return dragon.Bishop
	case bbs.Rooks&sqBit != 0:
		return dragon.Rook
	case bbs.Queens&sqBit != 0:
		return dragon.Queen
	case bbs.Kings&sqBit != 0:
		return dragon.King
	}
	return dragon.Nothing
}
