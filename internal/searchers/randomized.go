package searchers

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/chewxy/math32"
	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"
)

// Randomized adds randomness to the action taken by a ScoringSearcher.
//
// It is a meta Searcher: it samples the action from a softmax of the scores of the base searcher divided
// by the randomness, except if there is a winning move or the match is past a configured move number.
type Randomized[S any, A comparable] struct {
	base              ScoringSearcher[S, A]
	randomness        float32
	maxMoveRandomness int
	moveNumber        func(S) int
	winScore          float32
	rng               *rand.Rand
}

// Assert Randomized is a Searcher.
var _ Searcher[int, int] = (*Randomized[int, int])(nil)

// NewRandomized returns a Searcher that randomizes the choices of base.
//
// Args:
//
//   - base: Baseline searcher, it must provide the scores of all actions.
//   - randomness (>=0): it is applied as a divisor to the scores returned by the base searcher.
//     The larger the value the more it leads to randomness (exploration), and lower values
//     lead to "pick the best scoring move" (exploitation), with zero meaning no randomness.
//   - maxMoveRandomness: starting at this move number no more randomness is used. This allows
//     randomness to be used only earlier in the match. It only takes effect with WithMoveNumber.
//
// If randomness <= 0, it returns base itself.
func NewRandomized[S any, A comparable](base ScoringSearcher[S, A], randomness float32, maxMoveRandomness int) Searcher[S, A] {
	if randomness <= 0 {
		return base
	}
	return &Randomized[S, A]{
		base:              base,
		randomness:        randomness,
		maxMoveRandomness: maxMoveRandomness,
		winScore:          math32.Inf(1),
		rng:               rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithMoveNumber configures how to read the move number of a state, used with maxMoveRandomness.
func (r *Randomized[S, A]) WithMoveNumber(moveNumber func(S) int) *Randomized[S, A] {
	r.moveNumber = moveNumber
	return r
}

// WithWinScore sets the score at or above which an action is considered a win. Winning actions are always taken.
func (r *Randomized[S, A]) WithWinScore(winScore float32) *Randomized[S, A] {
	r.winScore = winScore
	return r
}

// WithSeed makes the random choices reproducible.
func (r *Randomized[S, A]) WithSeed(seed uint64) *Randomized[S, A] {
	r.rng = rand.New(rand.NewPCG(seed, seed))
	return r
}

// String implements fmt.Stringer.
func (r *Randomized[S, A]) String() string {
	return fmt.Sprintf("randomized(%v, randomness=%g)", r.base, r.randomness)
}

// Search implements the Searcher interface.
func (r *Randomized[S, A]) Search(state S) (action A, score float32, ok bool) {
	actions, scores := r.base.ActionScores(state)
	if len(actions) == 0 {
		return
	}
	if len(scores) != len(actions) {
		exceptions.Panicf("randomized: searcher returned %d scores for %d actions", len(scores), len(actions))
	}

	// Best action: first one with the highest score.
	bestIdx := 0
	for ii, s := range scores {
		if s > scores[bestIdx] {
			bestIdx = ii
		}
	}
	if len(actions) == 1 || scores[bestIdx] >= r.winScore || math32.IsInf(scores[bestIdx], -1) ||
		(r.moveNumber != nil && r.moveNumber(state) >= r.maxMoveRandomness) {
		return actions[bestIdx], scores[bestIdx], true
	}

	logits := make([]float32, len(scores))
	for ii, s := range scores {
		logits[ii] = s / r.randomness
	}
	probabilities := softmax(logits)

	chance := r.rng.Float32()
	for actionIdx, value := range probabilities {
		if chance > value && actionIdx < len(probabilities)-1 {
			chance -= value
			continue
		}
		if klog.V(2).Enabled() {
			klog.Infof("randomized selection: action=%v, score=%g (best %v, score=%g)",
				actions[actionIdx], scores[actionIdx], actions[bestIdx], scores[bestIdx])
		}
		return actions[actionIdx], scores[actionIdx], true
	}
	// It should not reach here.
	exceptions.Panicf("randomized: nothing selected!? remaining chance=%f, probabilities=%v", chance, probabilities)
	return
}

func softmax(values []float32) (probs []float32) {
	probs = make([]float32, len(values))
	var sum float32

	// Subtracting the max value keeps the probabilities the same, but it is numerically more stable.
	maxValue := slices.Max(values)
	for ii, value := range values {
		if math32.IsInf(value, -1) {
			continue
		}
		probs[ii] = math32.Exp(value - maxValue)
		sum += probs[ii]
	}
	for ii := range probs {
		probs[ii] /= sum
	}
	return
}
