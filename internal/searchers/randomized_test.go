package searchers_test

import (
	"testing"

	"github.com/janpfeifer/connect4/internal/searchers"
	"github.com/janpfeifer/connect4/internal/searchers/minimax"
	. "github.com/janpfeifer/connect4/internal/searchers/treetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRandomized(randomness float32, maxMoveRandomness int) *searchers.Randomized[*Node, int] {
	base := minimax.New[*Node, int, Player](Game{}, Score, Max, Min)
	return searchers.NewRandomized[*Node, int](base, randomness, maxMoveRandomness).(*searchers.Randomized[*Node, int])
}

func TestRandomizedDisabled(t *testing.T) {
	base := minimax.New[*Node, int, Player](Game{}, Score, Max, Min)
	got := searchers.NewRandomized[*Node, int](base, 0, 10)
	assert.Same(t, base, got)
}

func TestRandomizedExploration(t *testing.T) {
	root := Labeled(Branch(Leaf(3), Leaf(7), Leaf(2)))
	r := newRandomized(1e6, 100).WithSeed(1)
	counts := make(map[int]int)
	for range 300 {
		action, score, ok := r.Search(root)
		require.True(t, ok)
		assert.Equal(t, root.Children[action].Score, score)
		counts[action]++
	}
	assert.Len(t, counts, 3, "with a large randomness all actions should be taken")
}

func TestRandomizedExploitation(t *testing.T) {
	root := Labeled(Branch(Leaf(3), Leaf(7), Leaf(2)))
	r := newRandomized(1e-3, 100).WithSeed(1)
	for range 100 {
		action, _, _ := r.Search(root)
		assert.Equal(t, 1, action)
	}
}

func TestRandomizedWinningAndLateMoves(t *testing.T) {
	root := Labeled(Branch(Leaf(3), Leaf(7), Leaf(2)))

	// Winning actions are always taken.
	r := newRandomized(1e6, 100).WithSeed(1).WithWinScore(7)
	for range 100 {
		action, _, _ := r.Search(root)
		assert.Equal(t, 1, action)
	}

	// Past maxMoveRandomness there is no randomness.
	r = newRandomized(1e6, 5).WithSeed(1).WithMoveNumber(func(*Node) int { return 5 })
	for range 100 {
		action, _, _ := r.Search(root)
		assert.Equal(t, 1, action)
	}
}

func TestRandomizedNoActions(t *testing.T) {
	_, _, ok := newRandomized(1, 100).Search(Leaf(0))
	assert.False(t, ok)
}

func TestStatsAdd(t *testing.T) {
	s := searchers.Stats{Nodes: 1, Evals: 2, Terminals: 1, Prunes: 3}
	s.Add(searchers.Stats{Nodes: 10, Evals: 20, Terminals: 10, Prunes: 30})
	assert.Equal(t, searchers.Stats{Nodes: 11, Evals: 22, Terminals: 11, Prunes: 33}, s)
	assert.Equal(t, "nodes=11, evals=22 (terminals=11), prunes=33", s.String())
}
