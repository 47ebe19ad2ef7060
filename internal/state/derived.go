package state

// This file holds the rules: derived information (legal actions and wins) and moves.

import (
	"fmt"

	"github.com/gomlx/exceptions"
)

// Derived information of a Board, built once after each move.
type Derived struct {
	// Actions are the columns that are not full, in increasing order. It's empty if any player won.
	// It must not be modified.
	Actions []Action

	// Wins holds whether each player has ToWin aligned pieces.
	Wins [NumPlayers]bool

	// Full is true if there are no empty cells left.
	Full bool
}

// directions of lines: horizontal, vertical, and the two diagonals.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// BuildDerived rebuilds b.Derived by scanning the whole board.
func (b *Board) BuildDerived() {
	d := &Derived{}
	for row := range b.rows {
		for col := range b.cols {
			if p := b.At(row, col); p != PlayerInvalid && !d.Wins[p] && b.connects(row, col) {
				d.Wins[p] = true
			}
		}
	}
	b.Derived = d
	b.buildActions()
}

// buildActions lists the columns with room, assuming Derived.Wins is set.
func (b *Board) buildActions() {
	d := b.Derived
	d.Actions = make([]Action, 0, b.cols)
	for col := range b.cols {
		if b.At(0, col) == PlayerInvalid {
			d.Actions = append(d.Actions, Action(col))
		}
	}
	d.Full = len(d.Actions) == 0
	if d.Wins[PlayerFirst] || d.Wins[PlayerSecond] {
		d.Actions = d.Actions[:0]
	}
}

// connects returns whether the piece at row, col is part of ToWin aligned pieces of the same player.
func (b *Board) connects(row, col int) bool {
	p := b.At(row, col)
	for _, dir := range directions {
		count := 1
		for _, sign := range [2]int{1, -1} {
			r, c := row+sign*dir[0], col+sign*dir[1]
			for b.At(r, c) == p {
				count++
				r, c = r+sign*dir[0], c+sign*dir[1]
			}
		}
		if count >= ToWin {
			return true
		}
	}
	return false
}

// Act returns a new board with a piece of player dropped in the column given by action.
//
// The action must be one of Derived.Actions, or at least a column that is not full: otherwise it panics.
// It doesn't check that it is player's turn, and it can be used to continue playing after a win.
func (b *Board) Act(player PlayerNum, action Action) *Board {
	col := int(action)
	if col < 0 || col >= b.cols {
		exceptions.Panicf("invalid action %d for board with %d columns", col, b.cols)
	}
	if player != PlayerFirst && player != PlayerSecond {
		exceptions.Panicf("invalid player %s", player)
	}
	row := b.rows - 1
	for row >= 0 && b.At(row, col) != PlayerInvalid {
		row--
	}
	if row < 0 {
		exceptions.Panicf("%s is full", action)
	}

	newB := &Board{
		rows:       b.rows,
		cols:       b.cols,
		cells:      make([]PlayerNum, len(b.cells)),
		MoveNumber: b.MoveNumber + 1,
		NextPlayer: player.Opponent(),
	}
	copy(newB.cells, b.cells)
	newB.cells[row*b.cols+col] = player

	// Only lines through the new piece can create a new win.
	newB.Derived = &Derived{Wins: b.Derived.Wins}
	if !newB.Derived.Wins[player] && newB.connects(row, col) {
		newB.Derived.Wins[player] = true
	}
	newB.buildActions()
	return newB
}

// HasWon returns whether player has ToWin aligned pieces.
func (b *Board) HasWon(player PlayerNum) bool {
	return player < NumPlayers && b.Derived.Wins[player]
}

// IsValid returns whether action is one of the legal actions.
func (b *Board) IsValid(action Action) bool {
	for _, validAction := range b.Derived.Actions {
		if action == validAction {
			return true
		}
	}
	return false
}

// NumActions returns the number of legal actions.
func (b *Board) NumActions() int {
	return len(b.Derived.Actions)
}

// IsFinished returns whether the board represents a finished match: a player won or the board is full.
func (b *Board) IsFinished() bool {
	return b.Derived.Wins[PlayerFirst] || b.Derived.Wins[PlayerSecond] || b.Derived.Full
}

// Draw returns whether the match finished without a single winner.
func (b *Board) Draw() bool {
	return b.IsFinished() && b.Derived.Wins[PlayerFirst] == b.Derived.Wins[PlayerSecond]
}

// Winner returns the player that won on the current board.
// If it is a Draw or the match is not finished, it returns PlayerInvalid.
func (b *Board) Winner() PlayerNum {
	if !b.IsFinished() || b.Draw() {
		return PlayerInvalid
	}
	if b.Derived.Wins[PlayerFirst] {
		return PlayerFirst
	}
	return PlayerSecond
}

// FinishReason describes why the match is finished.
func (b *Board) FinishReason() string {
	switch {
	case !b.IsFinished():
		return "game not finished yet"
	case b.Winner() != PlayerInvalid:
		return fmt.Sprintf("%s player connected %d", b.Winner(), ToWin)
	case b.Derived.Wins[PlayerFirst]:
		return fmt.Sprintf("both players connected %d", ToWin)
	default:
		return "the board is full"
	}
}

// Lines returns every row, column and diagonal of the board that is long enough to hold ToWin pieces,
// each as a slice of the owners of its cells.
func (b *Board) Lines() [][]PlayerNum {
	var lines [][]PlayerNum
	walk := func(row, col, dRow, dCol int) {
		var line []PlayerNum
		for r, c := row, col; r >= 0 && r < b.rows && c >= 0 && c < b.cols; r, c = r+dRow, c+dCol {
			line = append(line, b.At(r, c))
		}
		if len(line) >= ToWin {
			lines = append(lines, line)
		}
	}
	for row := range b.rows {
		walk(row, 0, 0, 1)
	}
	for col := range b.cols {
		walk(0, col, 1, 0)
	}
	// Diagonals going down-right start at the top row or the left column, and down-left ones
	// at the top row or the right column.
	for col := range b.cols {
		walk(0, col, 1, 1)
		walk(0, col, 1, -1)
	}
	for row := 1; row < b.rows; row++ {
		walk(row, 0, 1, 1)
		walk(row, b.cols-1, 1, -1)
	}
	return lines
}
