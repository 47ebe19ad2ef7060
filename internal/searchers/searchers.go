// Package searchers defines what the search algorithms need from a game, and what they offer in return.
//
// A game is described by Game: the search algorithms are generic over the state, action and player
// types, and never look inside them. The subpackages minimax and alphabeta implement Searcher for any Game.
package searchers

import (
	"fmt"
)

// Game is the contract any two-player, zero-sum, perfect-information game must fulfill to be searched.
//
// States must be treated as immutable values: Apply returns a new state and leaves the given one untouched.
type Game[S any, A comparable, P comparable] interface {
	// LegalActions returns the actions available in state. An empty slice means no move is possible,
	// typically because the game is over.
	//
	// The returned slice is only read by the searchers, so implementations may return an internal slice.
	LegalActions(state S) []A

	// Apply returns the state after agent takes action in state.
	// The action must be one returned by LegalActions(state): this is not checked.
	Apply(state S, agent P, action A) S

	// IsTerminalFor returns whether agent has reached a winning (or otherwise terminal) configuration in state.
	IsTerminalFor(state S, agent P) bool
}

// EvalFn statically scores state from agent's point of view: higher is better for agent.
//
// It must be defined for every reachable state and be deterministic. It is only called at a depth
// cutoff, at terminal states, or at states without legal actions.
type EvalFn[S any, P comparable] func(state S, agent, adversary P) float32

// Searcher is the interface that any of the search algorithms must adhere to.
type Searcher[S any, A comparable] interface {
	// Search returns the action to take in state along with its backed-up score.
	// If state has no legal actions, ok is false and action is the zero value: it must not be applied.
	Search(state S) (action A, score float32, ok bool)
}

// ScoringSearcher is a Searcher that can also return the exact backed-up score of every action
// available in a state.
//
// Alpha-beta pruning can't provide this, since pruned actions only get bounds on their scores.
type ScoringSearcher[S any, A comparable] interface {
	Searcher[S, A]

	// ActionScores returns the legal actions of state and their backed-up scores, in the same order.
	ActionScores(state S) (actions []A, scores []float32)
}

// Stats collected during one search: for benchmarking, monitoring and debugging purposes.
type Stats struct {
	// Nodes is the number of states visited, including the root.
	Nodes int

	// Evals is the number of calls to the evaluation function.
	Evals int

	// Terminals is the number of evaluations triggered by a terminal state or a state without legal actions,
	// as opposed to a depth cutoff.
	Terminals int

	// Prunes is the number of alpha or beta cutoffs that skipped at least one sibling.
	Prunes int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Nodes += other.Nodes
	s.Evals += other.Evals
	s.Terminals += other.Terminals
	s.Prunes += other.Prunes
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	return fmt.Sprintf("nodes=%d, evals=%d (terminals=%d), prunes=%d", s.Nodes, s.Evals, s.Terminals, s.Prunes)
}
