package state

import (
	"github.com/janpfeifer/connect4/internal/searchers"
)

// Game adapts Connect Four to searchers.Game.
type Game struct{}

// Assert Game implements searchers.Game.
var _ searchers.Game[*Board, Action, PlayerNum] = Game{}

// LegalActions implements searchers.Game.
func (Game) LegalActions(b *Board) []Action {
	return b.Derived.Actions
}

// Apply implements searchers.Game.
func (Game) Apply(b *Board, player PlayerNum, action Action) *Board {
	return b.Act(player, action)
}

// IsTerminalFor implements searchers.Game: whether player won.
func (Game) IsTerminalFor(b *Board, player PlayerNum) bool {
	return b.HasWon(player)
}
