// Package statetest provides helper functions to create tests using Connect Four boards.
package statetest

import (
	"strings"

	"github.com/gomlx/exceptions"
	. "github.com/janpfeifer/connect4/internal/state"
)

// BuildBoard parses the layout of a board (see state.ParseBoard), and panics if it's invalid.
// Lines can be given separately or in a single multi-line string.
func BuildBoard(layout ...string) *Board {
	b, err := ParseBoard(strings.Join(layout, "\n"))
	if err != nil {
		exceptions.Panicf("statetest.BuildBoard: %+v", err)
	}
	return b
}

// Play takes the actions alternating players, starting with b.NextPlayer, and returns the final board.
func Play(b *Board, actions ...Action) *Board {
	for _, action := range actions {
		b = b.Act(b.NextPlayer, action)
	}
	return b
}
