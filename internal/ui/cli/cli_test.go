package cli

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/janpfeifer/connect4/internal/state"
	. "github.com/janpfeifer/connect4/internal/state/statetest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardString(t *testing.T) {
	ui := NewWithIO(strings.NewReader(""), &bytes.Buffer{}, false)
	b := BuildBoard(
		". . .",
		". X .",
		"O O X",
	)
	want := "" +
		"|   |   |   |\n" +
		"|   | X |   |\n" +
		"| O | O | X |\n" +
		"+---+---+---+\n" +
		"  1   2   3  \n"
	assert.Equal(t, want, ui.BoardString(b))
}

func TestReadAction(t *testing.T) {
	b := Play(NewBoard(), 0, 0, 0, 0, 0, 0)
	var out bytes.Buffer
	ui := NewWithIO(strings.NewReader("abc\n1\n4\n"), &out, false)
	action, err := ui.ReadAction(b)
	require.NoError(t, err)
	assert.Equal(t, Action(3), action)
	assert.Contains(t, out.String(), `Failed to parse your input "abc"`)
	assert.Contains(t, out.String(), "Column 1 is not a valid move, choose one of [2, 3, 4, 5, 6, 7]")
	assert.Contains(t, out.String(), "First Player (O) column (1-7) > ")

	// Last line without a new line.
	ui = NewWithIO(strings.NewReader(" 7"), &out, false)
	action, err = ui.ReadAction(b)
	require.NoError(t, err)
	assert.Equal(t, Action(6), action)

	ui = NewWithIO(strings.NewReader("0\n8\n\n2\n"), &out, false)
	_, err = ui.ReadAction(b)
	assert.True(t, errors.Is(err, ErrTooManyAttempts))

	ui = NewWithIO(strings.NewReader(""), &out, false)
	_, err = ui.ReadAction(b)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrTooManyAttempts))
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	// First player stacks column 1, second player column 2.
	ui := NewWithIO(strings.NewReader("1\n2\n1\n2\n1\n2\n1\n"), &out, false)
	b, err := ui.Run(NewBoard())
	require.NoError(t, err)
	assert.Equal(t, PlayerFirst, b.Winner())
	assert.Contains(t, out.String(), "*** FIRST PLAYER (O) WINS!! Congratulations! ***")
	assert.Contains(t, out.String(), "Move #6")

	out.Reset()
	ui = NewWithIO(strings.NewReader(""), &out, false)
	ui.PrintWinner(BuildBoard(
		"O O X X",
		"X X O O",
		"O O X X",
		"X X O O",
	))
	assert.Contains(t, out.String(), "*** DRAW: the board is full! ***")
}

func TestColor(t *testing.T) {
	var out bytes.Buffer
	ui := NewWithIO(strings.NewReader(""), &out, true)
	b := Play(NewBoard(), 3)
	// Colors may or may not be rendered depending on the environment, but the contents are the same.
	assert.Equal(t, NewWithIO(strings.NewReader(""), &out, false).BoardString(b),
		ansiFilter.ReplaceAllString(ui.BoardString(b), ""))
	ui.PrintPlayer(PlayerSecond)
	assert.Contains(t, ansiFilter.ReplaceAllString(out.String(), ""), "Second Player (X)")
}
