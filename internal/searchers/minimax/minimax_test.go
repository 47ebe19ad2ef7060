package minimax

import (
	"math/rand/v2"
	"testing"

	. "github.com/janpfeifer/connect4/internal/searchers/treetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTreeSearcher(eval func(n *Node, agent, adversary Player) float32) *Searcher[*Node, int, Player] {
	return New[*Node, int, Player](Game{}, eval, Max, Min)
}

func TestOnePly(t *testing.T) {
	root := Labeled(Branch(Leaf(3), Leaf(7), Leaf(2)))
	action, score, ok := newTreeSearcher(Score).Search(root)
	require.True(t, ok)
	assert.Equal(t, 1, action)
	assert.Equal(t, float32(7), score)
}

func TestTwoPlies(t *testing.T) {
	root := FromScores([][]float32{{1, 5}, {9, 2}})
	searcher := newTreeSearcher(Score)
	action, score, ok := searcher.Search(root)
	require.True(t, ok)
	assert.Equal(t, 1, action, "min(1,5)=1 < min(9,2)=2, the second action should be taken")
	assert.Equal(t, float32(2), score)
	// Root, 2 inner nodes and 4 leaves.
	assert.Equal(t, 7, searcher.Stats().Nodes)
	assert.Equal(t, 4, searcher.Stats().Evals)
	assert.Zero(t, searcher.Stats().Prunes)
}

func TestFirstBestActionWins(t *testing.T) {
	action, _, _ := newTreeSearcher(Score).Search(Labeled(Branch(Leaf(5), Leaf(5), Leaf(1))))
	assert.Equal(t, 0, action)
	action, _, _ = newTreeSearcher(Score).Search(Labeled(Branch(Leaf(1), Leaf(5), Leaf(5))))
	assert.Equal(t, 1, action)
}

func TestDepthZero(t *testing.T) {
	root := FromScores([][]float32{{1, 5}, {9, 2}})
	root.Children[0].Score = 10
	root.Children[1].Score = -3

	recorder := &Recorder{}
	action, score, ok := newTreeSearcher(recorder.Eval()).WithMaxDepth(0).Search(root)
	require.True(t, ok)
	assert.Equal(t, 0, action, "with depth 0 it should greedily take the best scored successor")
	assert.Equal(t, float32(10), score)
	assert.Equal(t, []string{"0", "1"}, recorder.Labels)
}

func TestTerminalShortCircuit(t *testing.T) {
	root := Labeled(Branch(
		Win(Max, 100, Branch(Leaf(-1000), Leaf(-1000))),
		Branch(Leaf(1), Win(Min, -50, Leaf(1000)))))
	recorder := &Recorder{}
	searcher := newTreeSearcher(recorder.Eval()).WithMaxDepth(5)
	action, score, ok := searcher.Search(root)
	require.True(t, ok)
	assert.Equal(t, 0, action)
	assert.Equal(t, float32(100), score)
	assert.Equal(t, []string{"0", "1.0", "1.1"}, recorder.Labels, "children of terminal nodes should not be visited")
	assert.Equal(t, 3, searcher.Stats().Terminals)
}

func TestNoLegalActions(t *testing.T) {
	searcher := newTreeSearcher(Score)
	_, _, ok := searcher.Search(Leaf(3))
	assert.False(t, ok)

	_, _, ok = searcher.Search(Win(Min, -1, Leaf(3)))
	assert.False(t, ok)

	actions, scores := searcher.ActionScores(Leaf(3))
	assert.Empty(t, actions)
	assert.Empty(t, scores)
}

func TestEmptySuccessorsBeforeDepthLimit(t *testing.T) {
	// The second branch has no moves for the adversary and is not terminal: it is evaluated directly.
	root := Labeled(Branch(Branch(Leaf(1), Leaf(4)), Leaf(3)))
	action, score, ok := newTreeSearcher(Score).WithMaxDepth(3).Search(root)
	require.True(t, ok)
	assert.Equal(t, 1, action)
	assert.Equal(t, float32(3), score)
}

func TestActionScores(t *testing.T) {
	root := FromScores([][]float32{{1, 5}, {9, 2}, {4, 8, 6}})
	actions, scores := newTreeSearcher(Score).ActionScores(root)
	assert.Equal(t, []int{0, 1, 2}, actions)
	assert.Equal(t, []float32{1, 2, 4}, scores)
}

func TestParallelism(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	for range 20 {
		root := Random(rng, 6, 4)
		sequential := newTreeSearcher(Score).WithMaxDepth(3)
		parallel := newTreeSearcher(Score).WithMaxDepth(3).WithParallelism(4)
		wantAction, wantScore, _ := sequential.Search(root)
		gotAction, gotScore, _ := parallel.Search(root)
		assert.Equal(t, wantAction, gotAction)
		assert.Equal(t, wantScore, gotScore)
		assert.Equal(t, sequential.Stats(), parallel.Stats())
	}
}

func TestSameAgentAndAdversary(t *testing.T) {
	assert.Panics(t, func() { New[*Node, int, Player](Game{}, Score, Max, Max) })
}
