// Package minimax implements a depth-bounded Minimax searcher for any searchers.Game.
//
// See: wikipedia.org/wiki/Minimax
package minimax

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/janpfeifer/connect4/internal/searchers"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// DefaultMaxDepth for search. Each unit of depth is one move of the agent followed by one move of the adversary.
const DefaultMaxDepth = 2

// Searcher implements searchers.ScoringSearcher with a plain Minimax: every node up to the max depth is visited.
//
// It is not safe for concurrent use: create one Searcher per goroutine.
type Searcher[S any, A comparable, P comparable] struct {
	game             searchers.Game[S, A, P]
	eval             searchers.EvalFn[S, P]
	agent, adversary P
	maxDepth         int
	parallelism      int
	stats            searchers.Stats
}

// Assert that Searcher implements searchers.ScoringSearcher.
var _ searchers.ScoringSearcher[int, int] = (*Searcher[int, int, bool])(nil)

// New returns a Minimax searcher that selects actions for agent, assuming adversary plays the other moves.
//
// It panics if agent and adversary are the same.
func New[S any, A comparable, P comparable](game searchers.Game[S, A, P], eval searchers.EvalFn[S, P], agent, adversary P) *Searcher[S, A, P] {
	// Validate arguments early.
	_ = searchers.NewTraversal(game, eval, agent, adversary, DefaultMaxDepth)
	return &Searcher[S, A, P]{
		game:        game,
		eval:        eval,
		agent:       agent,
		adversary:   adversary,
		maxDepth:    DefaultMaxDepth,
		parallelism: 1,
	}
}

// WithMaxDepth sets the depth of the search. With 0, each action is scored directly by the evaluation function.
// Negative values are taken as 0.
//
// The default is 2 (DefaultMaxDepth).
func (s *Searcher[S, A, P]) WithMaxDepth(maxDepth int) *Searcher[S, A, P] {
	s.maxDepth = max(maxDepth, 0)
	return s
}

// WithParallelism sets the number of root actions scored concurrently. Values <= 1 mean sequential search.
//
// The result is the same as the sequential search: the game and evaluation function must be safe
// for concurrent use.
func (s *Searcher[S, A, P]) WithParallelism(parallelism int) *Searcher[S, A, P] {
	s.parallelism = max(parallelism, 1)
	return s
}

// MaxDepth returns the configured depth of search.
func (s *Searcher[S, A, P]) MaxDepth() int { return s.maxDepth }

// Stats returns the statistics of the last search.
func (s *Searcher[S, A, P]) Stats() searchers.Stats { return s.stats }

// String implements fmt.Stringer.
func (s *Searcher[S, A, P]) String() string {
	return fmt.Sprintf("minimax(max_depth=%d)", s.maxDepth)
}

// Search implements searchers.Searcher.
func (s *Searcher[S, A, P]) Search(root S) (action A, score float32, ok bool) {
	start := time.Now()
	if s.parallelism <= 1 {
		t := s.newTraversal()
		action, score, ok = t.Root(root, nil)
		s.stats = t.Stats
	} else {
		var actions []A
		var scores []float32
		actions, scores = s.ActionScores(root)
		score = math32.Inf(-1)
		for ii, actionScore := range scores {
			if !ok || actionScore > score {
				action, score, ok = actions[ii], actionScore, true
			}
		}
	}
	if klog.V(2).Enabled() {
		elapsed := time.Since(start)
		klog.Infof("%s: best action %v, score=%g, %s, nodes/s=%.1f",
			s, action, score, s.stats, float64(s.stats.Nodes)/elapsed.Seconds())
	}
	return
}

// ActionScores implements searchers.ScoringSearcher. If parallelism was configured, the actions
// are scored concurrently.
func (s *Searcher[S, A, P]) ActionScores(root S) (actions []A, scores []float32) {
	actions = s.game.LegalActions(root)
	scores = make([]float32, len(actions))
	stats := make([]searchers.Stats, len(actions))

	var g errgroup.Group
	g.SetLimit(s.parallelism)
	for ii, action := range actions {
		g.Go(func() error {
			t := s.newTraversal()
			scores[ii] = t.ScoreAction(root, action, nil)
			stats[ii] = t.Stats
			return nil
		})
	}
	_ = g.Wait() // Tasks never fail.

	s.stats = searchers.Stats{Nodes: 1} // Root.
	for _, st := range stats {
		s.stats.Add(st)
	}
	return
}

func (s *Searcher[S, A, P]) newTraversal() *searchers.Traversal[S, A, P] {
	return searchers.NewTraversal(s.game, s.eval, s.agent, s.adversary, s.maxDepth)
}
