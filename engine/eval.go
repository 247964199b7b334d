package engine

import (
	"math/bits"

	dragon "github.com/dylhunn/dragontoothmg"
)

// Eval in centi-pawns, i.e. 100 === 1 pawn
type EvalCp int32

// MateEval is the checkmate sentinel magnitude. It has to dwarf any material
// swing the eval can produce (a full queen is only 900cp), and it decays by
// one per ply from the root so that a faster mate always scores strictly
// higher than a slower one.
const MateEval EvalCp = 100_000

// HighMateThreshold - any score beyond this is a provable mate line rather
// than a material/positional advantage.
const HighMateThreshold EvalCp = 90_000

// InfEval bounds the alpha-beta window; nothing the search produces may reach it.
const InfEval EvalCp = 1_000_000

const DrawEval EvalCp = 0

// Piece values
const nothingVal = 0
const pawnVal = 100
const knightVal = 300
const bishopVal = 300
const rookVal = 500
const queenVal = 900
const kingVal = 0

var pieceVals = [7]EvalCp{
	nothingVal,
	pawnVal,
	knightVal,
	bishopVal,
	rookVal,
	queenVal,
	kingVal}

var nothingPosVals = [64]int8{}

// Piece-square tables from SunFish, inverted to match dragontoothmg's
// square ordering (A1 == 0). Black re-uses the white tables through the
// sq^56 rank mirror.
var pawnPosVals = [64]int8{
	0, 0, 0, 0, 0, 0, 0, 0,
	-31, 8, -7, -37, -36, -14, 3, -31,
	-22, 9, 5, -11, -10, -2, 3, -19,
	-26, 3, 10, 9, 6, 1, 0, -23,
	-17, 16, -2, 15, 14, 0, 15, -13,
	7, 29, 21, 44, 40, 31, 44, 7,
	78, 83, 86, 73, 102, 82, 85, 90,
	0, 0, 0, 0, 0, 0, 0, 0}

var knightPosVals = [64]int8{
	-74, -23, -26, -24, -19, -35, -22, -69,
	-23, -15, 2, 0, 2, 0, -23, -20,
	-18, 10, 13, 22, 18, 15, 11, -14,
	-1, 5, 31, 21, 22, 35, 2, 0,
	24, 24, 45, 37, 33, 41, 25, 17,
	10, 67, 1, 74, 73, 27, 62, -2,
	-3, -6, 100, -36, 4, 62, -4, -14,
	-66, -53, -75, -75, -10, -55, -58, -70}

var bishopPosVals = [64]int8{
	-7, 2, -15, -12, -14, -15, -10, -10,
	19, 20, 11, 6, 7, 6, 20, 16,
	14, 25, 24, 15, 8, 25, 20, 15,
	13, 10, 17, 23, 17, 16, 0, 7,
	25, 17, 20, 34, 26, 25, 15, 10,
	-9, 39, -32, 41, 52, -10, 28, -14,
	-11, 20, 35, -42, -39, 31, 2, -22,
	-59, -78, -82, -76, -23, -107, -37, -50}

var rookPosVals = [64]int8{
	-30, -24, -18, 5, -2, -18, -31, -32,
	-53, -38, -31, -26, -29, -43, -44, -53,
	-42, -28, -42, -25, -25, -35, -26, -46,
	-28, -35, -16, -21, -13, -29, -46, -30,
	0, 5, 16, 13, 18, -4, -9, -6,
	19, 35, 28, 33, 45, 27, 25, 15,
	55, 29, 56, 67, 55, 62, 34, 60,
	35, 29, 33, 4, 37, 33, 56, 50}

var queenPosVals = [64]int8{
	-39, -30, -31, -13, -31, -36, -34, -42,
	-36, -18, 0, -19, -15, -15, -21, -38,
	-30, -6, -13, -11, -16, -11, -16, -27,
	-14, -15, -2, -5, -1, -10, -20, -22,
	1, -16, 22, 17, 25, 20, -13, -6,
	-2, 43, 32, 60, 72, 63, 43, 2,
	14, 32, 60, -10, 20, 76, 57, 24,
	6, 1, -8, -104, 69, 24, 88, 26}

var kingPosVals = [64]int8{
	17, 30, -3, -14, 6, -1, 40, 18,
	-4, 3, -14, -50, -57, -18, 13, 4,
	-47, -42, -43, -79, -64, -32, -29, -32,
	-55, -43, -52, -28, -51, -47, -8, -50,
	-55, 50, 11, -4, -19, 13, 0, -49,
	-62, 12, -57, 44, -67, 28, 37, -31,
	-32, 10, 55, 56, 56, 55, 10, 3,
	4, 54, 47, -99, -99, 60, 83, -62}

var piecePosVals = [7]*[64]int8{
	&nothingPosVals,
	&pawnPosVals,
	&knightPosVals,
	&bishopPosVals,
	&rookPosVals,
	&queenPosVals,
	&kingPosVals}

// StaticEval is the classic material + piece-square evaluation from white's
// perspective. Pure and deterministic - no side effects on the board.
func StaticEval(board *dragon.Board) EvalCp {
	return bitboardsEval(&board.White, false) - bitboardsEval(&board.Black, true)
}

// NegaStaticEval is StaticEval from the perspective of the side to move,
// which is what negamax wants.
func NegaStaticEval(board *dragon.Board) EvalCp {
	eval := StaticEval(board)
	if board.Wtomove {
		return eval
	}
	return -eval
}

func bitboardsEval(bbs *dragon.Bitboards, mirror bool) EvalCp {
	eval := pieceEval(bbs.Pawns, dragon.Pawn, mirror)
	eval += pieceEval(bbs.Knights, dragon.Knight, mirror)
	eval += pieceEval(bbs.Bishops, dragon.Bishop, mirror)
	eval += pieceEval(bbs.Rooks, dragon.Rook, mirror)
	eval += pieceEval(bbs.Queens, dragon.Queen, mirror)
	eval += pieceEval(bbs.Kings, dragon.King, mirror)
	return eval
}

// Eval for all pieces of one kind of one color.
// Black positions are mirrored onto the white piece-square tables.
func pieceEval(bitboard uint64, piece dragon.Piece, mirror bool) EvalCp {
	eval := EvalCp(0)
	posVals := piecePosVals[piece]

	for bitboard != 0 {
		sq := uint8(bits.TrailingZeros64(bitboard))
		bitboard &= bitboard - 1

		posSq := sq
		if mirror {
			posSq = sq ^ 56
		}
		eval += pieceVals[piece] + EvalCp(posVals[posSq])
	}

	return eval
}
