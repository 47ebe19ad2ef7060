// Package alphabeta implements a depth-bounded Alpha-Beta pruning searcher for any searchers.Game.
//
// It returns the same action and score as minimax, visiting at most as many nodes.
//
// See: wikipedia.org/wiki/Alpha-beta_pruning
package alphabeta

import (
	"fmt"
	"time"

	"github.com/janpfeifer/connect4/internal/searchers"
	"k8s.io/klog/v2"
)

// DefaultMaxDepth for search. Each unit of depth is one move of the agent followed by one move of the adversary.
const DefaultMaxDepth = 2

// Searcher implements the searchers.Searcher interface.
// It is used by players.SearcherPlayer, along with an evaluation function, to implement an AI player.
//
// It is not safe for concurrent use: create one Searcher per goroutine.
type Searcher[S any, A comparable, P comparable] struct {
	game             searchers.Game[S, A, P]
	eval             searchers.EvalFn[S, P]
	agent, adversary P
	maxDepth         int
	stats            searchers.Stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher[int, int] = (*Searcher[int, int, bool])(nil)

// New returns an Alpha-Beta Pruning based searchers.Searcher implementation, that selects actions for
// agent, assuming adversary plays the other moves.
// See Searcher.WithMaxDepth for further configuration.
//
// It panics if agent and adversary are the same.
func New[S any, A comparable, P comparable](game searchers.Game[S, A, P], eval searchers.EvalFn[S, P], agent, adversary P) *Searcher[S, A, P] {
	_ = searchers.NewTraversal(game, eval, agent, adversary, DefaultMaxDepth)
	return &Searcher[S, A, P]{
		game:      game,
		eval:      eval,
		agent:     agent,
		adversary: adversary,
		maxDepth:  DefaultMaxDepth,
	}
}

// WithMaxDepth sets the depth of the search. With 0, each action is scored directly by the evaluation function.
// Negative values are taken as 0.
//
// The default is 2 (DefaultMaxDepth).
func (ab *Searcher[S, A, P]) WithMaxDepth(maxDepth int) *Searcher[S, A, P] {
	ab.maxDepth = max(maxDepth, 0)
	return ab
}

// MaxDepth returns the configured depth of search.
func (ab *Searcher[S, A, P]) MaxDepth() int { return ab.maxDepth }

// Stats returns the statistics of the last search.
func (ab *Searcher[S, A, P]) Stats() searchers.Stats { return ab.stats }

// String implements fmt.Stringer.
func (ab *Searcher[S, A, P]) String() string {
	return fmt.Sprintf("alpha-beta(max_depth=%d)", ab.maxDepth)
}

// Search implements the Searcher interface.
//
// The returned score is exact for the chosen action. Other root actions may have been cut short,
// which is why the Searcher doesn't offer scores for all actions.
func (ab *Searcher[S, A, P]) Search(root S) (action A, score float32, ok bool) {
	start := time.Now()
	t := searchers.NewTraversal(ab.game, ab.eval, ab.agent, ab.adversary, ab.maxDepth)
	action, score, ok = t.Root(root, searchers.Unbounded())
	ab.stats = t.Stats
	if klog.V(2).Enabled() {
		elapsed := time.Since(start)
		klog.Infof("%s: best action %v, score=%g, %s, nodes/s=%.1f",
			ab, action, score, ab.stats, float64(ab.stats.Nodes)/elapsed.Seconds())
	}
	return
}
