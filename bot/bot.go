// Package bot is the public face of the move-search engine: it maps
// difficulty tiers to search configurations and hands requests to the
// Lazy SMP search in the engine package.
package bot

import (
	"errors"
	"fmt"

	dragon "github.com/dylhunn/dragontoothmg"

	"github.com/gbourquet/gChess-sub002/engine"
)

// Difficulty selects how hard the bot tries: deeper search and more workers
// as the tiers go up.
type Difficulty string

const (
	Beginner Difficulty = "beginner"
	Easy     Difficulty = "easy"
	Medium   Difficulty = "medium"
	Hard     Difficulty = "hard"
	Expert   Difficulty = "expert"
)

var ErrUnknownDifficulty = errors.New("bot: unknown difficulty")

// The difficulty table is fixed at startup and read-only thereafter.
var searchConfigs = map[Difficulty]engine.SearchConfig{
	Beginner: {Depth: 1, Workers: 4},
	Easy:     {Depth: 2, Workers: 8},
	Medium:   {Depth: 3, Workers: 16},
	Hard:     {Depth: 4, Workers: 32},
	Expert:   {Depth: 5, Workers: 64},
}

// ConfigFor resolves a difficulty tier to its search configuration.
func ConfigFor(difficulty Difficulty) (engine.SearchConfig, error) {
	cfg, ok := searchConfigs[difficulty]
	if !ok {
		return engine.SearchConfig{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}
	return cfg, nil
}

// CalculateBestMove picks the bot's move for the given position at the given
// difficulty. On success the returned move is always one of the position's
// legal moves; a root with no legal moves yields engine.ErrNoLegalMoves.
func CalculateBestMove(board *dragon.Board, difficulty Difficulty) (engine.Evaluation, error) {
	cfg, err := ConfigFor(difficulty)
	if err != nil {
		return engine.Evaluation{}, err
	}

	return engine.Search(board, cfg)
}
