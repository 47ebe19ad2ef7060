// Package treetest provides explicit game trees implementing searchers.Game, to test search algorithms
// on hand-crafted or randomly generated trees.
package treetest

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/janpfeifer/connect4/internal/searchers"
)

// Player in a tree game. Max is the agent being optimized for, Min its adversary.
type Player int

const (
	NoPlayer Player = iota
	Max
	Min
)

// String implements fmt.Stringer.
func (p Player) String() string {
	switch p {
	case Max:
		return "Max"
	case Min:
		return "Min"
	}
	return "None"
}

// Node of a game tree. The actions available at a node are the indices of its children.
type Node struct {
	// Label identifies the node in tests, e.g. "0.1" for the second child of the first child of the root.
	Label string

	// Score is the static evaluation of the node, from Max's point of view.
	Score float32

	// Winner, if set, makes the node terminal for that player.
	Winner Player

	Children []*Node
}

// Leaf creates a node without children.
func Leaf(score float32) *Node {
	return &Node{Score: score}
}

// Win creates a node that is terminal for winner, with the given score, and optional children that
// should never be explored.
func Win(winner Player, score float32, children ...*Node) *Node {
	return &Node{Winner: winner, Score: score, Children: children}
}

// Branch creates an inner node with the given children.
func Branch(children ...*Node) *Node {
	return &Node{Children: children}
}

// FromScores creates a tree of depth 2 whose leaves have the given scores: one branch per row of scores.
func FromScores(scores [][]float32) *Node {
	root := &Node{}
	for _, row := range scores {
		branch := &Node{}
		for _, score := range row {
			branch.Children = append(branch.Children, Leaf(score))
		}
		root.Children = append(root.Children, branch)
	}
	return Labeled(root)
}

// Labeled sets the labels of all nodes in the tree, and returns root.
func Labeled(root *Node) *Node {
	var label func(n *Node, prefix string)
	label = func(n *Node, prefix string) {
		n.Label = prefix
		for ii, child := range n.Children {
			if prefix == "" {
				label(child, fmt.Sprintf("%d", ii))
			} else {
				label(child, fmt.Sprintf("%s.%d", prefix, ii))
			}
		}
	}
	label(root, "")
	return root
}

// Random creates a tree where every inner node has between 1 and maxBranching children, and all
// leaves are numPlies deep. Every node gets a distinct score, so there are never ties.
func Random(rng *rand.Rand, numPlies, maxBranching int) *Node {
	var nodes []*Node
	var build func(ply int) *Node
	build = func(ply int) *Node {
		n := &Node{}
		nodes = append(nodes, n)
		if ply < numPlies {
			numChildren := 1 + rng.IntN(maxBranching)
			for range numChildren {
				n.Children = append(n.Children, build(ply+1))
			}
		}
		return n
	}
	root := build(0)
	for ii, score := range rng.Perm(len(nodes)) {
		nodes[ii].Score = float32(score) - float32(len(nodes))/2
	}
	return Labeled(root)
}

// Solve returns the exact minimax value of the tree with Max to play at n, ignoring scores of inner nodes.
func Solve(n *Node, toPlay Player) float32 {
	if n.Winner != NoPlayer || len(n.Children) == 0 {
		return n.Score
	}
	next := Max
	if toPlay == Max {
		next = Min
	}
	best := Solve(n.Children[0], next)
	for _, child := range n.Children[1:] {
		v := Solve(child, next)
		if (toPlay == Max && v > best) || (toPlay == Min && v < best) {
			best = v
		}
	}
	return best
}

// Game implements searchers.Game over trees of Node.
type Game struct{}

// Assert Game implements searchers.Game.
var _ searchers.Game[*Node, int, Player] = Game{}

// LegalActions implements searchers.Game.
func (Game) LegalActions(n *Node) []int {
	if n.Winner != NoPlayer {
		return nil
	}
	actions := make([]int, len(n.Children))
	for ii := range actions {
		actions[ii] = ii
	}
	return actions
}

// Apply implements searchers.Game.
func (Game) Apply(n *Node, _ Player, action int) *Node {
	return n.Children[action]
}

// IsTerminalFor implements searchers.Game.
func (Game) IsTerminalFor(n *Node, agent Player) bool {
	return n.Winner == agent
}

// Score is the searchers.EvalFn for trees: it returns the node score from Max's point of view.
func Score(n *Node, agent, _ Player) float32 {
	if agent == Min {
		return -n.Score
	}
	return n.Score
}

// Recorder wraps an evaluation function and records the labels of the evaluated nodes.
type Recorder struct {
	mu     sync.Mutex
	Labels []string
}

// Eval returns an evaluation function that scores with Score and records the evaluated node.
func (r *Recorder) Eval() searchers.EvalFn[*Node, Player] {
	return func(n *Node, agent, adversary Player) float32 {
		r.mu.Lock()
		r.Labels = append(r.Labels, n.Label)
		r.mu.Unlock()
		return Score(n, agent, adversary)
	}
}

// String implements fmt.Stringer.
func (r *Recorder) String() string {
	return strings.Join(r.Labels, ",")
}
