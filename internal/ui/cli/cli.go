// Package cli implements a command-line UI for the game.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	. "github.com/janpfeifer/connect4/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// MaxInputAttempts is the number of times the user is asked for a column before ReadAction gives up.
const MaxInputAttempts = 3

// ErrTooManyAttempts is returned when the user fails to input a valid column MaxInputAttempts times.
var ErrTooManyAttempts = errors.Errorf("failed to read a valid column %d times", MaxInputAttempts)

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the number of runes left.
func displayWidth(s string) int {
	return len([]rune(ansiFilter.ReplaceAllString(s, "")))
}

var (
	pieceStyles = map[PlayerNum]lipgloss.Style{
		PlayerFirst:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		PlayerSecond: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	}
	playerStyles = map[PlayerNum]lipgloss.Style{
		PlayerFirst:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("9")),
		PlayerSecond: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
	}
	bannerStyle = lipgloss.NewStyle().Padding(1, 2).Bold(true)
	drawStyle   = lipgloss.NewStyle().
			Background(lipgloss.Color("13")).
			Foreground(lipgloss.Color("0")).
			Padding(1, 2)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("5"))
)

// UI renders boards and reads the human player's moves.
type UI struct {
	color, clearScreen bool
	reader             *bufio.Reader
	out                io.Writer
	width              int // Terminal width, 0 if not known.
}

// New creates a UI on the standard input and output.
// If stdout is a terminal, the board is centered on it.
func New(color, clearScreen bool) *UI {
	ui := NewWithIO(os.Stdin, os.Stdout, color)
	ui.clearScreen = clearScreen
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		ui.width, _, _ = term.GetSize(fd)
	}
	return ui
}

// NewWithIO creates a UI reading from in and writing to out.
func NewWithIO(in io.Reader, out io.Writer, color bool) *UI {
	return &UI{
		color:  color,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Output where the UI is printed.
func (ui *UI) Output() io.Writer { return ui.out }

func (ui *UI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(ui.out, format, args...)
}

func (ui *UI) printCentered(block string) {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := strings.Repeat(" ", max((ui.width-blockWidth)/2, 0))
	for _, line := range lines {
		if line == "" {
			ui.printf("\n")
			continue
		}
		ui.printf("%s%s\n", indent, line)
	}
}

func (ui *UI) render(style lipgloss.Style, s string) string {
	if !ui.color {
		return s
	}
	return style.Render(s)
}

// Run plays a match between humans only, until the game is finished.
func (ui *UI) Run(board *Board) (*Board, error) {
	for !board.IsFinished() {
		var err error
		board, err = ui.RunNextMove(board)
		if err != nil {
			return board, err
		}
	}
	ui.Print(board)
	ui.PrintWinner(board)
	return board, nil
}

// RunNextMove prints the board, reads the next player's column and returns the board after it is played.
func (ui *UI) RunNextMove(board *Board) (*Board, error) {
	ui.Print(board)
	action, err := ui.ReadAction(board)
	if err != nil {
		return board, err
	}
	return board.Act(board.NextPlayer, action), nil
}

// ReadAction asks the next player for a column (1-based, as displayed) until a valid one is given.
// It returns ErrTooManyAttempts after MaxInputAttempts failures.
func (ui *UI) ReadAction(b *Board) (action Action, err error) {
	for range MaxInputAttempts {
		ui.printf("    %s column (1-%d) > ", ui.playerString(b.NextPlayer), b.Cols())
		var text string
		text, err = ui.reader.ReadString('\n')
		text = strings.TrimSpace(text)
		if err != nil && (err != io.EOF || text == "") {
			return 0, errors.Wrap(err, "failed to read column")
		}
		err = nil
		if text == "" {
			ui.printf("    * Please type the number of the column to play.\n")
			continue
		}
		col, parseErr := strconv.Atoi(text)
		if parseErr != nil {
			ui.printf("    * Failed to parse your input %q, please try again.\n", text)
			continue
		}
		action = Action(col - 1)
		if !b.IsValid(action) {
			ui.printf("    * Column %d is not a valid move, choose one of %s.\n", col, columnsList(b))
			continue
		}
		return action, nil
	}
	return 0, ErrTooManyAttempts
}

func columnsList(b *Board) string {
	parts := make([]string, 0, len(b.Derived.Actions))
	for _, action := range b.Derived.Actions {
		parts = append(parts, strconv.Itoa(int(action)+1))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Print the move number, the board and whose turn it is.
func (ui *UI) Print(board *Board) {
	if ui.clearScreen {
		ui.printf("\033c")
	}
	ui.printf("\nMove #%d\n\n", board.MoveNumber)
	ui.PrintBoard(board)
	if !board.IsFinished() {
		ui.printf("\n    %s to play\n", ui.playerString(board.NextPlayer))
	}
}

// PrintBoard renders the board with the column numbers at the bottom.
func (ui *UI) PrintBoard(board *Board) {
	ui.printCentered(ui.BoardString(board))
}

// BoardString returns the board rendering used by PrintBoard.
func (ui *UI) BoardString(board *Board) string {
	var sb strings.Builder
	separator := "+" + strings.Repeat("---+", board.Cols()) + "\n"
	for row := range board.Rows() {
		sb.WriteString("|")
		for col := range board.Cols() {
			cell := board.At(row, col)
			symbol := cell.Symbol()
			if cell == PlayerInvalid {
				symbol = " "
			} else {
				symbol = ui.render(pieceStyles[cell], symbol)
			}
			sb.WriteString(" " + symbol + " |")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(separator)
	sb.WriteString(" ")
	for col := range board.Cols() {
		sb.WriteString(fmt.Sprintf("%-4s", centerString(strconv.Itoa(col+1), 3)))
	}
	sb.WriteString("\n")
	return sb.String()
}

func centerString(s string, fit int) string {
	if len(s) >= fit {
		return s
	}
	marginLeft := (fit - len(s)) / 2
	return strings.Repeat(" ", marginLeft) + s + strings.Repeat(" ", fit-len(s)-marginLeft)
}

func (ui *UI) playerString(player PlayerNum) string {
	return ui.render(playerStyles[player], fmt.Sprintf("%s Player (%s)", player, player.Symbol()))
}

// PrintPlayer prints the player and its symbol.
func (ui *UI) PrintPlayer(player PlayerNum) {
	ui.printf("%s", ui.playerString(player))
}

// PrintWinner prints a banner with the result of a finished match.
func (ui *UI) PrintWinner(b *Board) {
	ui.printf("\n")
	winner := b.Winner()
	if winner == PlayerInvalid {
		ui.printCentered(ui.render(drawStyle, fmt.Sprintf("*** DRAW: %s! ***", b.FinishReason())))
	} else {
		msg := fmt.Sprintf("*** %s PLAYER (%s) WINS!! Congratulations! ***", strings.ToUpper(winner.String()), winner.Symbol())
		ui.printCentered(ui.render(bannerStyle.Inherit(playerStyles[winner]), msg))
	}
	ui.printf("\n")
}

// Prompt prints a highlighted message, used to tell the user what is going on (e.g.: the AI is thinking).
func (ui *UI) Prompt(msg string) {
	ui.printf("    %s ", ui.render(promptStyle, msg))
}
