// Package ai (Artificial Intelligence) defines the evaluation functions used to score Connect Four boards
// at the leaves of the search.
package ai

import (
	"maps"
	"slices"
	"strings"

	"github.com/janpfeifer/connect4/internal/searchers"
	. "github.com/janpfeifer/connect4/internal/state"
	"github.com/pkg/errors"
)

// WinGameScore for the winning side. For the losing side it is -WinGameScore.
// It is larger than any heuristic score of an unfinished board.
const WinGameScore = float32(10000)

// EvalFn is the evaluation function type for Connect Four boards.
type EvalFn = searchers.EvalFn[*Board, PlayerNum]

// DefaultEvaluator is the name of the evaluator used if none is configured.
const DefaultEvaluator = "patterns"

// Evaluators registered by name, used to configure AI players.
var Evaluators = map[string]EvalFn{
	"patterns": PatternScore,
	"outcome":  OutcomeScore,
}

// EvaluatorByName returns the registered evaluator, or an error listing the valid ones.
func EvaluatorByName(name string) (EvalFn, error) {
	if name == "" {
		name = DefaultEvaluator
	}
	eval, found := Evaluators[name]
	if !found {
		return nil, errors.Errorf("unknown evaluator %q, valid values are %q", name, slices.Sorted(maps.Keys(Evaluators)))
	}
	return eval, nil
}

// IsEndGameAndScore returns whether someone won, and the hard-coded score of the win or loss
// for agent if so. If isEnd is false, the score should be ignored.
//
// A full board without winners is not handled here, since the heuristics still apply.
func IsEndGameAndScore(b *Board, agent, adversary PlayerNum) (isEnd bool, score float32) {
	if b.HasWon(agent) {
		return true, WinGameScore
	}
	if b.HasWon(adversary) {
		return true, -WinGameScore
	}
	return false, 0
}

// OutcomeScore only scores wins and losses, everything else is 0.
func OutcomeScore(b *Board, agent, adversary PlayerNum) float32 {
	_, score := IsEndGameAndScore(b, agent, adversary)
	return score
}

// Pattern of a line, with "A" for agent pieces, "B" for adversary pieces and "." for empty cells.
type Pattern struct {
	Pattern string
	Weight  float32
}

// Patterns counted by PatternScore: almost complete lines of 4, with one gap to fill.
// The agent's are worth more than the adversary's, to favor attacking.
var Patterns = []Pattern{
	{"A.AA", 5}, {"AA.A", 5}, {"AAA.", 5}, {".AAA", 5},
	{"B.BB", -3}, {"BB.B", -3}, {"BBB.", -3}, {".BBB", -3},
}

// PatternScore returns ±WinGameScore if agent or adversary won. Otherwise, for every row, column and diagonal
// of the board, it adds the weight of each of the Patterns found in the line.
//
// A pattern is counted once per line, even if it appears more than once.
func PatternScore(b *Board, agent, adversary PlayerNum) float32 {
	if isEnd, score := IsEndGameAndScore(b, agent, adversary); isEnd {
		return score
	}
	var score float32
	for _, line := range b.Lines() {
		text := lineString(line, agent, adversary)
		for _, p := range Patterns {
			if strings.Contains(text, p.Pattern) {
				score += p.Weight
			}
		}
	}
	return score
}

func lineString(line []PlayerNum, agent, adversary PlayerNum) string {
	var sb strings.Builder
	for _, p := range line {
		switch p {
		case agent:
			sb.WriteByte('A')
		case adversary:
			sb.WriteByte('B')
		default:
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
