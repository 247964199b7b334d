package engine

import (
	"testing"

	dragon "github.com/dylhunn/dragontoothmg"
)

// Teacher-known terminal positions
var whiteInCheckmate = "rnb1kbnr/pppp1ppp/4p3/8/5PPq/8/PPPPP2P/RNBQKBNR w KQkq - 1 3"
var whiteInStalemate = "2k5/8/8/8/8/1q6/r7/2K5 w - - 0 1"

// White mates with Ra8
var mateInOne = "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1"

// Black queen on d4 is undefended; Nf3 takes it
var hangingQueen = "k7/8/8/8/3q4/5N2/8/7K w - - 0 1"

// White queen on d4 is attacked by the c5 pawn, which is defended by b6
var attackedQueen = "k7/8/1p6/2p5/3Q4/8/8/7K w - - 0 1"

func newTestSearch(fen string) *SearchT {
	board := dragon.ParseFen(fen)
	return NewSearchT(board, NewTranspositionTable(1<<16), nil)
}

func squareOf(file, rank int) uint8 {
	return uint8(rank*8 + file)
}

func TestSearchCheckmateRoot(t *testing.T) {
	s := newTestSearch(whiteInCheckmate)

	move, eval := s.NegAlphaBeta(3, 0, -InfEval, InfEval)
	if move != NoMove {
		t.Errorf("expected no move from a mated root, got %s", &move)
	}
	if eval != -MateEval {
		t.Errorf("expected mated eval %d, got %d", -MateEval, eval)
	}
}

func TestSearchStalemateRoot(t *testing.T) {
	s := newTestSearch(whiteInStalemate)

	move, eval := s.NegAlphaBeta(3, 0, -InfEval, InfEval)
	if move != NoMove {
		t.Errorf("expected no move from a stalemated root, got %s", &move)
	}
	if eval != DrawEval {
		t.Errorf("expected draw eval, got %d", eval)
	}
}

func TestSearchFindsMateInOne(t *testing.T) {
	s := newTestSearch(mateInOne)

	move, eval := s.NegAlphaBeta(2, 0, -InfEval, InfEval)

	want := mustParseMove(t, "a1a8")
	if move != want {
		t.Errorf("expected mating move a1a8, got %s", &move)
	}
	if eval <= HighMateThreshold {
		t.Errorf("expected a mate score > %d, got %d", HighMateThreshold, eval)
	}
}

func TestSearchPrefersFasterMate(t *testing.T) {
	// Searching deeper must not dilute the mate score: the sentinel decays
	// one per ply, so mate-in-one scores MateEval-1 at any nominal depth.
	s := newTestSearch(mateInOne)

	_, eval := s.NegAlphaBeta(4, 0, -InfEval, InfEval)
	if eval != MateEval-1 {
		t.Errorf("expected mate-in-one score %d, got %d", MateEval-1, eval)
	}
}

func TestSearchGrabsHangingQueen(t *testing.T) {
	s := newTestSearch(hangingQueen)

	move, eval := s.NegAlphaBeta(3, 0, -InfEval, InfEval)

	want := mustParseMove(t, "f3d4")
	if move != want {
		t.Errorf("expected f3d4 queen grab, got %s", &move)
	}
	if eval <= 500 {
		t.Errorf("winning a queen should score > 500, got %d", eval)
	}
}

func TestSearchSavesAttackedQueen(t *testing.T) {
	s := newTestSearch(attackedQueen)

	move, eval := s.NegAlphaBeta(2, 0, -InfEval, InfEval)

	d4 := squareOf(3, 3)
	if uint8(move.From()) != d4 {
		t.Fatalf("expected the queen on d4 to move, got %s", &move)
	}

	// Not onto either pawn-covered square
	b4, c5 := squareOf(1, 3), squareOf(2, 4)
	if to := uint8(move.To()); to == b4 || to == c5 {
		t.Errorf("queen moved onto a defended square: %s", &move)
	}
	if eval <= 300 {
		t.Errorf("saving the queen should keep white well ahead, got %d", eval)
	}
}

func TestSearchPromotesToQueen(t *testing.T) {
	s := newTestSearch("k7/4P3/8/8/8/8/8/K7 w - - 0 1")

	move, _ := s.NegAlphaBeta(2, 0, -InfEval, InfEval)

	if uint8(move.From()) != squareOf(4, 6) || uint8(move.To()) != squareOf(4, 7) {
		t.Fatalf("expected the e7 pawn to promote, got %s", &move)
	}
	if move.Promote() != dragon.Queen {
		t.Errorf("expected promotion to queen, got %s", &move)
	}
}

func TestSearchIsDeterministicWithoutRng(t *testing.T) {
	first := newTestSearch(hangingQueen)
	second := newTestSearch(hangingQueen)

	moveA, evalA := first.NegAlphaBeta(3, 0, -InfEval, InfEval)
	moveB, evalB := second.NegAlphaBeta(3, 0, -InfEval, InfEval)

	if moveA != moveB || evalA != evalB {
		t.Errorf("independent deterministic searches disagree: %s/%d vs %s/%d",
			&moveA, evalA, &moveB, evalB)
	}
}

func TestSearchTTCutsRepeatSearch(t *testing.T) {
	board := dragon.ParseFen(hangingQueen)
	tt := NewTranspositionTable(1 << 16)

	s1 := NewSearchT(board, tt, nil)
	move1, eval1 := s1.NegAlphaBeta(3, 0, -InfEval, InfEval)

	// A fresh worker on the warmed-up table must agree immediately
	s2 := NewSearchT(board, tt, nil)
	move2, eval2 := s2.NegAlphaBeta(3, 0, -InfEval, InfEval)

	if move1 != move2 || eval1 != eval2 {
		t.Errorf("warm-table search disagrees: %s/%d vs %s/%d", &move1, eval1, &move2, eval2)
	}
	if s2.Stats().TTCuts == 0 {
		t.Error("second search never cut on the warmed-up table")
	}
	if s2.Stats().Nodes >= s1.Stats().Nodes {
		t.Errorf("warm table did not shrink the search: %d vs %d nodes", s2.Stats().Nodes, s1.Stats().Nodes)
	}
}

func TestSearchRebasesTTMateScores(t *testing.T) {
	board := dragon.ParseFen(mateInOne)
	tt := NewTranspositionTable(1 << 10)

	s1 := NewSearchT(board, tt, nil)
	_, rootEval := s1.NegAlphaBeta(2, 0, -InfEval, InfEval)
	if rootEval != MateEval-1 {
		t.Fatalf("expected mate-in-one score %d, got %d", MateEval-1, rootEval)
	}

	// Rehit the cached entry as if the same position were reached four plies
	// into another line. The mate is still one ply away from this node, so
	// the score must decay by the node's own root distance, not the distance
	// the entry was stored at.
	s2 := NewSearchT(board, tt, nil)
	_, eval := s2.NegAlphaBeta(2, 4, -InfEval, InfEval)
	if eval != MateEval-5 {
		t.Errorf("expected rebased mate score %d, got %d", MateEval-5, eval)
	}
	if s2.Stats().TTCuts == 0 {
		t.Error("expected the rehit to come from the table")
	}
}

func TestMateScoreTTRoundTrip(t *testing.T) {
	// A mate two plies below a node six plies from the root
	atNode := MateEval - 8

	stored := mateScoreToTT(atNode, 6)
	if stored != MateEval-2 {
		t.Errorf("expected node-relative score %d, got %d", MateEval-2, stored)
	}
	if got := mateScoreFromTT(stored, 3); got != MateEval-5 {
		t.Errorf("expected rebased score %d, got %d", MateEval-5, got)
	}

	// Getting mated rebases symmetrically
	if got := mateScoreFromTT(mateScoreToTT(-atNode, 6), 3); got != -(MateEval - 5) {
		t.Errorf("expected rebased mated score %d, got %d", -(MateEval - 5), got)
	}

	// Ordinary material scores pass through untouched
	if got := mateScoreFromTT(mateScoreToTT(350, 6), 3); got != 350 {
		t.Errorf("material score mangled: %d", got)
	}
}

func TestSearchLeafIsStaticEval(t *testing.T) {
	board := dragon.ParseFen(dragon.Startpos)
	s := NewSearchT(board, NewTranspositionTable(16), nil)

	_, eval := s.NegAlphaBeta(0, 0, -InfEval, InfEval)
	if eval != NegaStaticEval(&board) {
		t.Errorf("depth-0 search %d != static eval %d", eval, NegaStaticEval(&board))
	}
}
