// connect4 plays Connect Four on the terminal: human against AI (default), AI against AI (-watch)
// or human against human (-hotseat).
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/connect4/internal/players"
	. "github.com/janpfeifer/connect4/internal/state"
	"github.com/janpfeifer/connect4/internal/ui/cli"
	"github.com/janpfeifer/connect4/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagHotseat   = flag.Bool("hotseat", false, "Hotseat match: human vs human")
	flagWatch     = flag.Bool("watch", false, "Watch mode: AI vs AI playing")
	flagFirst     = flag.String("first", "", "Who plays first: human or ai. Default is random.")
	flagAIConfig  = flag.String("config", players.DefaultPlayerConfig, "AI configuration against which to play, e.g.: \"ab,max_depth=3\".")
	flagAIConfig2 = flag.String("config2", players.DefaultPlayerConfig, "Second AI configuration, if playing AI vs AI with -watch")
	flagRows      = flag.Int("rows", DefaultRows, "Number of rows of the board.")
	flagCols      = flag.Int("cols", DefaultCols, "Number of columns of the board.")
	flagColor     = flag.Bool("color", true, "Use colors on the terminal.")
	flagClear     = flag.Bool("clear", false, "Clear the screen before printing the board.")

	// aiPlayers: if nil, it's a human playing.
	aiPlayers [NumPlayers]players.Player

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagRows <= 0 || *flagCols <= 0 || (*flagRows < ToWin && *flagCols < ToWin) {
		klog.Exitf("Invalid board shape %dx%d, either -rows or -cols must be >= %d", *flagRows, *flagCols, ToWin)
	}

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	createPlayers()

	board := NewBoardWithShape(*flagRows, *flagCols)
	ui := cli.New(*flagColor, *flagClear)
	for !board.IsFinished() {
		if globalCtx.Err() != nil {
			klog.Exitf("Match interrupted: %v", globalCtx.Err())
		}
		aiPlayer := aiPlayers[board.NextPlayer]
		if aiPlayer == nil {
			newBoard, err := ui.RunNextMove(board)
			if err != nil {
				klog.Exitf("Failed to run match: %+v", err)
			}
			board = newBoard
			continue
		}

		// AI plays.
		if *flagWatch {
			ui.Print(board)
		}
		ui.Prompt(aiPlayer.String())
		s := spinning.New(globalCtx, ui.Output(), spinning.ThemeClock)
		action, newBoard, score, err := aiPlayer.Play(board)
		s.Done()
		must.M(err)
		fmt.Printf(" plays %s (score=%.1f)\n", action, score)
		board = newBoard
	}

	ui.Print(board)
	ui.PrintWinner(board)
}

// createPlayers in aiPlayers.
func createPlayers() {
	if *flagHotseat && *flagWatch {
		klog.Exitf("-hotseat and -watch cannot be used together")
	}
	if *flagHotseat {
		// Both players are human, nothing to do.
		return
	}

	var aiPlayerNum PlayerNum
	switch strings.ToLower(*flagFirst) {
	case "human":
		aiPlayerNum = PlayerSecond
	case "ai":
		aiPlayerNum = PlayerFirst
	case "":
		aiPlayerNum = PlayerNum(rand.IntN(NumPlayers))
	default:
		exceptions.Panicf("invalid -first=%q, only valid values are \"human\" or \"ai\"", *flagFirst)
	}
	if *flagWatch {
		aiPlayerNum = PlayerFirst
	}
	aiPlayers[aiPlayerNum] = must.M1(players.New(*flagAIConfig, aiPlayerNum))
	klog.V(1).Infof("%s created", aiPlayers[aiPlayerNum])
	if !*flagWatch {
		return
	}

	otherPlayerNum := aiPlayerNum.Opponent()
	aiPlayers[otherPlayerNum] = must.M1(players.New(*flagAIConfig2, otherPlayerNum))
	klog.V(1).Infof("%s created", aiPlayers[otherPlayerNum])
}
