// Package players provides a factory of AI players from configuration strings.
package players

import (
	"fmt"
	"time"

	"github.com/janpfeifer/connect4/internal/ai"
	"github.com/janpfeifer/connect4/internal/parameters"
	"github.com/janpfeifer/connect4/internal/searchers"
	"github.com/janpfeifer/connect4/internal/searchers/alphabeta"
	"github.com/janpfeifer/connect4/internal/searchers/minimax"
	. "github.com/janpfeifer/connect4/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Player is anything that is able to play the game.
type Player interface {
	// Play returns the action chosen, the next board position (after the action is taken)
	// and the score of the action, from the point of view of the player.
	//
	// It returns an error wrapping ErrNoAction if there are no legal actions.
	Play(board *Board) (action Action, nextBoard *Board, score float32, err error)

	fmt.Stringer
}

// ErrNoAction is returned (wrapped) by Player.Play when the board has no legal actions.
var ErrNoAction = errors.New("no legal action available")

// DefaultPlayerConfig is used if no configuration was given to the AI.
var DefaultPlayerConfig = "ab,max_depth=2"

// Searcher used by SearcherPlayer.
type Searcher = searchers.Searcher[*Board, Action]

// statsReporter is implemented by the searchers that keep statistics of their last search.
type statsReporter interface {
	Stats() searchers.Stats
}

// SearcherPlayer is the standard AI set up: a searcher over Connect Four boards, using one of the
// ai.Evaluators. It implements the Player interface.
type SearcherPlayer struct {
	PlayerNum PlayerNum
	Searcher  Searcher
	EvalName  string

	// Stats of all the searches done by this player.
	Stats searchers.Stats

	statsFrom statsReporter
}

// Assert SearcherPlayer is a Player.
var _ Player = (*SearcherPlayer)(nil)

// New creates a new AI player for playerNum, given the configuration string.
//
// Args:
//
//   - config: a comma-separated list of parameters with optional values associated. Exactly one searcher
//     ("minimax" or "ab") must be given. If empty, DefaultPlayerConfig is used. E.g.: "ab,max_depth=3".
//
// Parameters:
//
//   - minimax (bool): Use the Minimax search algorithm.
//   - ab (bool): Use the Alpha-Beta pruning search algorithm. It returns the same actions as minimax, visiting
//     fewer nodes.
//   - max_depth (int): Max depth of search, default is 2. Each unit of depth is one move of each player.
//   - eval (string): Name of the evaluation function, see ai.Evaluators. Default is "patterns".
//   - parallelism (int): Number of root actions scored concurrently. Only for "minimax".
//   - randomness (float): Adds a layer of randomness in the search: the first level choice is
//     distributed according to a softmax of the scores of each move, divided by this value.
//     So lower values (closer to 0) means less randomness, higher value means more randomness,
//     hence more exploration. Default is 0. Only for "minimax".
//   - max_move_randomness (int): Move number from which randomness is no longer used. Default is 8.
func New(config string, playerNum PlayerNum) (*SearcherPlayer, error) {
	if config == "" {
		config = DefaultPlayerConfig
	}
	if playerNum != PlayerFirst && playerNum != PlayerSecond {
		return nil, errors.Errorf("invalid player %s for AI %q", playerNum, config)
	}
	params := parameters.NewFromConfigString(config)
	player, err := newFromParams(params, playerNum)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create AI player from %q", config)
	}
	return player, nil
}

func newFromParams(params parameters.Params, playerNum PlayerNum) (*SearcherPlayer, error) {
	searcherName, err := parameters.PopOneOf(params, "minimax", "ab")
	if err != nil {
		return nil, err
	}
	maxDepth, err := parameters.PopParamOr(params, "max_depth", minimax.DefaultMaxDepth)
	if err != nil {
		return nil, err
	}
	if maxDepth < 0 {
		return nil, errors.Errorf("max_depth must be >= 0, got %d", maxDepth)
	}
	evalName, err := parameters.PopParamOr(params, "eval", ai.DefaultEvaluator)
	if err != nil {
		return nil, err
	}
	eval, err := ai.EvaluatorByName(evalName)
	if err != nil {
		return nil, err
	}
	parallelism, err := parameters.PopParamOr(params, "parallelism", 1)
	if err != nil {
		return nil, err
	}
	randomness, err := parameters.PopParamOr(params, "randomness", float32(0))
	if err != nil {
		return nil, err
	}
	if randomness < 0 {
		return nil, errors.Errorf("randomness must be >= 0, got %g", randomness)
	}
	maxMoveRandomness, err := parameters.PopParamOr(params, "max_move_randomness", 8)
	if err != nil {
		return nil, err
	}
	if err = parameters.CheckAllUsed(params); err != nil {
		return nil, err
	}

	adversary := playerNum.Opponent()
	player := &SearcherPlayer{PlayerNum: playerNum, EvalName: evalName}
	switch searcherName {
	case "ab":
		if parallelism > 1 || randomness > 0 {
			return nil, errors.New(`"parallelism" and "randomness" are only supported by the "minimax" searcher`)
		}
		player.Searcher = alphabeta.New[*Board, Action, PlayerNum](Game{}, eval, playerNum, adversary).
			WithMaxDepth(maxDepth)
	case "minimax":
		mm := minimax.New[*Board, Action, PlayerNum](Game{}, eval, playerNum, adversary).
			WithMaxDepth(maxDepth).
			WithParallelism(parallelism)
		player.Searcher = mm
		if randomness > 0 {
			player.Searcher = searchers.NewRandomized[*Board, Action](mm, randomness, maxMoveRandomness).(*searchers.Randomized[*Board, Action]).
				WithMoveNumber(func(b *Board) int { return b.MoveNumber }).
				WithWinScore(ai.WinGameScore)
			player.statsFrom = mm
		}
	}
	if player.statsFrom == nil {
		player.statsFrom, _ = player.Searcher.(statsReporter)
	}
	return player, nil
}

// String implements fmt.Stringer.
func (p *SearcherPlayer) String() string {
	return fmt.Sprintf("AI %s (%s, eval=%s)", p.PlayerNum, p.Searcher, p.EvalName)
}

// Play implements the Player interface: it chooses an action given a Board.
func (p *SearcherPlayer) Play(b *Board) (action Action, nextBoard *Board, score float32, err error) {
	start := time.Now()
	var ok bool
	action, score, ok = p.Searcher.Search(b)
	if !ok {
		err = errors.Wrapf(ErrNoAction, "%s at move #%d (%s)", p, b.MoveNumber, b.FinishReason())
		return
	}
	nextBoard = b.Act(p.PlayerNum, action)
	if p.statsFrom != nil {
		p.Stats.Add(p.statsFrom.Stats())
	}
	if klog.V(1).Enabled() {
		klog.Infof("Move #%d: %s playing %s, score=%.1f, time=%s", b.MoveNumber, p, action, score, time.Since(start))
	}
	return
}
