// Package state holds the Connect Four board, its rules and the searchers.Game adapter used by the AI.
//
// Boards are immutable once built: Board.Act returns a new Board.
package state

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

const (
	// NumPlayers is always 2.
	NumPlayers = 2

	// DefaultRows and DefaultCols of the classic board.
	DefaultRows = 6
	DefaultCols = 7

	// ToWin is the number of aligned pieces needed to win.
	ToWin = 4
)

// PlayerNum is the either 0 or 1 corresponding to the first player to move or the second player to move.
type PlayerNum uint8

const (
	PlayerFirst PlayerNum = iota
	PlayerSecond

	// PlayerInvalid represents an invalid PlayerNum. It's also used for empty cells and for no winner.
	PlayerInvalid
)

var (
	playerNames   = [...]string{"First", "Second", "Invalid"}
	playerSymbols = [...]string{"O", "X", "."}
)

// String returns the player name.
func (p PlayerNum) String() string {
	if p > PlayerInvalid {
		return fmt.Sprintf("PlayerNum(%d)", p)
	}
	return playerNames[p]
}

// Symbol used to display the player pieces: "O" for the first player, "X" for the second and "." for no player.
func (p PlayerNum) Symbol() string {
	return playerSymbols[min(p, PlayerInvalid)]
}

// Opponent returns the other player.
func (p PlayerNum) Opponent() PlayerNum {
	return 1 - p
}

// Action is the column (starting from 0) where the piece is dropped.
type Action int

// String returns the human-friendly column number, starting from 1.
func (a Action) String() string {
	return fmt.Sprintf("column %d", int(a)+1)
}

// Board is the state of a match. Row 0 is the top of the board, where pieces are dropped from.
type Board struct {
	rows, cols int
	cells      []PlayerNum

	// MoveNumber is the number of pieces played so far.
	MoveNumber int

	// NextPlayer is the player expected to move next, only used by front-ends: the searchers
	// always say explicitly which player moves.
	NextPlayer PlayerNum

	// Derived information is built after each move.
	Derived *Derived
}

// NewBoard creates an empty board of the default size.
func NewBoard() *Board {
	return NewBoardWithShape(DefaultRows, DefaultCols)
}

// NewBoardWithShape creates an empty board with the given number of rows and columns.
func NewBoardWithShape(rows, cols int) *Board {
	b := &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]PlayerNum, rows*cols),
	}
	for ii := range b.cells {
		b.cells[ii] = PlayerInvalid
	}
	b.BuildDerived()
	return b
}

// Rows in the board.
func (b *Board) Rows() int { return b.rows }

// Cols in the board.
func (b *Board) Cols() int { return b.cols }

// At returns the owner of the piece at row, col, or PlayerInvalid if the cell is empty or out of the board.
func (b *Board) At(row, col int) PlayerNum {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return PlayerInvalid
	}
	return b.cells[row*b.cols+col]
}

// Equal returns whether both boards have the same shape and the same pieces.
// MoveNumber and NextPlayer are not compared.
func (b *Board) Equal(other *Board) bool {
	return b.rows == other.rows && b.cols == other.cols && slices.Equal(b.cells, other.cells)
}

// Hash of the pieces on the board: equal boards have the same hash.
func (b *Board) Hash() uint64 {
	h := fnv.New64a()
	var shape [16]byte
	binary.LittleEndian.PutUint64(shape[:8], uint64(b.rows))
	binary.LittleEndian.PutUint64(shape[8:], uint64(b.cols))
	_, _ = h.Write(shape[:])
	cells := make([]byte, len(b.cells))
	for ii, p := range b.cells {
		cells[ii] = byte(p)
	}
	_, _ = h.Write(cells)
	return h.Sum64()
}

// String returns the board one row per line, from the top, with "." for empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.rows {
		for col := range b.cols {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.At(row, col).Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard parses the format returned by Board.String: one row per line from the top, "O" for the
// first player, "X" for the second and "." for empty cells. Spaces and empty lines are ignored.
//
// NextPlayer is set to the player with fewer pieces, or PlayerFirst if both have the same number.
func ParseBoard(text string) (*Board, error) {
	var rows [][]PlayerNum
	for lineNum, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line == "" {
			continue
		}
		row := make([]PlayerNum, 0, len(line))
		for _, r := range line {
			switch r {
			case '.':
				row = append(row, PlayerInvalid)
			case 'O', 'o':
				row = append(row, PlayerFirst)
			case 'X', 'x':
				row = append(row, PlayerSecond)
			default:
				return nil, errors.Errorf("invalid cell %q in line %d of board", r, lineNum+1)
			}
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, errors.Errorf("line %d of board has %d cells, previous lines have %d", lineNum+1, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, errors.New("empty board")
	}

	b := &Board{rows: len(rows), cols: len(rows[0])}
	var counts [NumPlayers]int
	for row, cells := range rows {
		for col, p := range cells {
			if p == PlayerInvalid {
				continue
			}
			if row+1 < len(rows) && rows[row+1][col] == PlayerInvalid {
				return nil, errors.Errorf("piece at row %d, column %d is floating over an empty cell", row+1, col+1)
			}
			counts[p]++
		}
		b.cells = append(b.cells, cells...)
	}
	b.MoveNumber = counts[PlayerFirst] + counts[PlayerSecond]
	if counts[PlayerSecond] < counts[PlayerFirst] {
		b.NextPlayer = PlayerSecond
	}
	b.BuildDerived()
	return b, nil
}
