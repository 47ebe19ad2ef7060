package searchers

import (
	"github.com/chewxy/math32"
	"github.com/gomlx/exceptions"
)

// Bounds holds the alpha-beta pruning window.
//
// Alpha is the best score the maximizing agent can already secure, and Beta the best (lowest) score
// the minimizing adversary can already secure.
type Bounds struct {
	Alpha, Beta float32
}

// Unbounded returns the widest window, used at the root of an alpha-beta search.
func Unbounded() *Bounds {
	return &Bounds{Alpha: math32.Inf(-1), Beta: math32.Inf(1)}
}

// Traversal is the recursive minimax skeleton shared by the search algorithms.
//
// When given nil Bounds it is a plain minimax, otherwise it prunes with alpha-beta.
//
// One unit of depth is a full pair of moves: the agent's move followed by the adversary's move.
// So the depth is incremented only after the adversary moves.
type Traversal[S any, A comparable, P comparable] struct {
	Game             Game[S, A, P]
	Eval             EvalFn[S, P]
	Agent, Adversary P
	MaxDepth         int

	// Stats is updated as the traversal progresses.
	Stats Stats
}

// NewTraversal creates a Traversal, and checks that agent and adversary are different.
func NewTraversal[S any, A comparable, P comparable](game Game[S, A, P], eval EvalFn[S, P], agent, adversary P, maxDepth int) *Traversal[S, A, P] {
	if agent == adversary {
		exceptions.Panicf("searchers: agent and adversary must be different, got %v for both", agent)
	}
	if game == nil || eval == nil {
		exceptions.Panicf("searchers: game and evaluation function must be given")
	}
	return &Traversal[S, A, P]{
		Game:      game,
		Eval:      eval,
		Agent:     agent,
		Adversary: adversary,
		MaxDepth:  max(maxDepth, 0),
	}
}

// Root scores each legal action of the agent in root, and returns the best one.
//
// Ties are broken by the order of Game.LegalActions: the first action reaching the best score is kept.
//
// With non-nil bounds, alpha is tightened after each root action is scored: the root is a maximizing node,
// so this only prunes deeper and never changes the chosen action.
//
// If root has no legal actions, ok is false.
func (t *Traversal[S, A, P]) Root(root S, bounds *Bounds) (bestAction A, bestScore float32, ok bool) {
	t.Stats.Nodes++
	bestScore = math32.Inf(-1)
	for _, action := range t.Game.LegalActions(root) {
		score := t.ScoreAction(root, action, bounds)
		if !ok || score > bestScore {
			bestAction, bestScore, ok = action, score, true
		}
		if bounds != nil {
			bounds.Alpha = max(bounds.Alpha, bestScore)
		}
	}
	return
}

// ScoreAction returns the backed-up score of the agent taking action in root.
func (t *Traversal[S, A, P]) ScoreAction(root S, action A, bounds *Bounds) float32 {
	return t.Value(t.Game.Apply(root, t.Agent, action), t.Adversary, 0, bounds)
}

// Value returns the backed-up score of state, with acting to play, at the given depth.
func (t *Traversal[S, A, P]) Value(state S, acting P, depth int, bounds *Bounds) float32 {
	t.Stats.Nodes++
	if depth >= t.MaxDepth {
		return t.evaluate(state, false)
	}
	if t.Game.IsTerminalFor(state, t.Agent) || t.Game.IsTerminalFor(state, t.Adversary) {
		return t.evaluate(state, true)
	}
	actions := t.Game.LegalActions(state)
	if len(actions) == 0 {
		// Not flagged as terminal, but nothing to play: there is nothing to back up, so it's a cutoff.
		return t.evaluate(state, true)
	}

	// Bounds are passed by value down the tree: changes here must not leak to the caller.
	if bounds != nil {
		local := *bounds
		bounds = &local
	}

	if acting == t.Agent {
		v := math32.Inf(-1)
		for ii, action := range actions {
			v = max(v, t.Value(t.Game.Apply(state, t.Agent, action), t.Adversary, depth, bounds))
			if bounds == nil {
				continue
			}
			if v >= bounds.Beta {
				// The minimizing ancestor already has a better option: it will never choose this branch.
				t.countPrune(ii, len(actions))
				return v
			}
			bounds.Alpha = max(bounds.Alpha, v)
		}
		return v
	}

	v := math32.Inf(1)
	for ii, action := range actions {
		v = min(v, t.Value(t.Game.Apply(state, t.Adversary, action), t.Agent, depth+1, bounds))
		if bounds == nil {
			continue
		}
		if v <= bounds.Alpha {
			// The maximizing ancestor already has a better option.
			t.countPrune(ii, len(actions))
			return v
		}
		bounds.Beta = min(bounds.Beta, v)
	}
	return v
}

func (t *Traversal[S, A, P]) evaluate(state S, terminal bool) float32 {
	t.Stats.Evals++
	if terminal {
		t.Stats.Terminals++
	}
	return t.Eval(state, t.Agent, t.Adversary)
}

// countPrune only counts cutoffs that actually skipped siblings.
func (t *Traversal[S, A, P]) countPrune(idx, numActions int) {
	if idx < numActions-1 {
		t.Stats.Prunes++
	}
}
