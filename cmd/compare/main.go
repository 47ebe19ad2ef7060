// compare plays matches between two AI configurations and reports the results.
//
// The AIs alternate playing first. Example:
//
//	$ go run ./cmd/compare -ai1="ab,max_depth=3" -ai2="minimax,max_depth=2,randomness=0.5" -num_matches=20
package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/janpfeifer/connect4/internal/players"
	"github.com/janpfeifer/connect4/internal/profilers"
	"github.com/janpfeifer/connect4/internal/searchers"
	. "github.com/janpfeifer/connect4/internal/state"
	"github.com/janpfeifer/connect4/internal/ui/cli"
	"github.com/janpfeifer/connect4/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

var (
	flagAI1Config   = flag.String("ai1", "", "1st AI configuration, e.g.: \"ab,max_depth=3\".")
	flagAI2Config   = flag.String("ai2", "", "2nd AI configuration.")
	flagNumMatches  = flag.Int("num_matches", 10, "Number of matches to play.")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many matches simultaneously.")
	flagRows       = flag.Int("rows", DefaultRows, "Number of rows of the board.")
	flagCols       = flag.Int("cols", DefaultCols, "Number of columns of the board.")
	flagPrintSteps = flag.Bool("print_steps", false, "Print board at each step. "+
		"Very verbose, and you probably want to set -parallelism=1.")
)

// globalCtx is cancelled on interrupt (Ctrl+C) or at the end of the program.
var globalCtx = context.Background()

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagAI1Config == "" || *flagAI2Config == "" {
		klog.Exitf("You must configure both AIs to compare with flags -ai1 and -ai2")
	}

	var globalCancel func()
	globalCtx, globalCancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(globalCancel, 5*time.Second)
	defer globalCancel()

	p := must.M1(profilers.Setup(globalCtx))
	defer p.Stop()

	// Validate configurations before starting.
	configs := [NumPlayers]string{*flagAI1Config, *flagAI2Config}
	for _, config := range configs {
		must.M1(players.New(config, PlayerFirst))
	}
	must.M(runMatches(globalCtx, configs))
}

// Results of the matches, indexed by AI (0 for -ai1, 1 for -ai2).
type Results struct {
	mu                   sync.Mutex
	start                time.Time
	winsAs1st, winsAs2nd [NumPlayers]int
	draws                [NumPlayers]int // Indexed by the AI that played first.
	stats                [NumPlayers]searchers.Stats
	played, total        int
}

// Record the result of a match, given which AI played first and the winner (PlayerInvalid for a draw).
func (r *Results) Record(firstAI int, winner PlayerNum, stats [NumPlayers]searchers.Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played++
	for aiIdx := range NumPlayers {
		r.stats[aiIdx].Add(stats[aiIdx])
	}
	switch winner {
	case PlayerInvalid:
		r.draws[firstAI]++
	case PlayerFirst:
		r.winsAs1st[firstAI]++
	default:
		r.winsAs2nd[1-firstAI]++
	}
}

func (r *Results) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var parts []string
	parts = append(parts, fmt.Sprintf("Played %d of %d: ", r.played, r.total))
	for aiIdx := range NumPlayers {
		parts = append(parts,
			fmt.Sprintf("AI-%d: %d Wins (1st: %d, 2nd: %d) / ",
				aiIdx+1, r.winsAs1st[aiIdx]+r.winsAs2nd[aiIdx],
				r.winsAs1st[aiIdx], r.winsAs2nd[aiIdx]))
	}
	parts = append(parts, fmt.Sprintf("%d draws (%d AI-1 as 1st, %d AI-2 as 1st) - ",
		r.draws[0]+r.draws[1], r.draws[0], r.draws[1]))
	parts = append(parts, time.Since(r.start).Round(time.Millisecond).String())
	parts = append(parts, "\033[0K")
	return strings.Join(parts, "")
}

func runMatches(ctx context.Context, configs [NumPlayers]string) error {
	r := &Results{
		start: time.Now(),
		total: *flagNumMatches,
	}
	var g errgroup.Group
	g.SetLimit(getParallelism())
	fmt.Printf("\r%s", r)

	for matchIdx := range r.total {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			// AIs alternate playing first.
			firstAI := matchIdx % 2
			winner, stats, err := runMatch(ctx, matchIdx, firstAI, configs)
			if err != nil || ctx.Err() != nil {
				return err
			}
			r.Record(firstAI, winner, stats)
			fmt.Printf("\r%s", r)
			return nil
		})
	}
	err := g.Wait()
	fmt.Printf("\r%s\n", r)
	if ctx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", ctx.Err())
		return nil
	}
	if err == nil && klog.V(1).Enabled() {
		for aiIdx, config := range configs {
			klog.Infof("AI-%d (%q) search totals: %s", aiIdx+1, config, r.stats[aiIdx])
		}
	}
	return err
}

var (
	stepUI   = cli.New(true, false)
	muStepUI sync.Mutex
)

// runMatch plays one match with new players, since searchers are not safe for concurrent use.
// It returns the winner and the search statistics of each AI.
func runMatch(ctx context.Context, matchIdx, firstAI int, configs [NumPlayers]string) (
	winner PlayerNum, stats [NumPlayers]searchers.Stats, err error) {
	matchName := fmt.Sprintf("Match-%05d", matchIdx)
	var matchPlayers [NumPlayers]*players.SearcherPlayer
	for aiIdx, config := range configs {
		playerNum := PlayerFirst
		if aiIdx != firstAI {
			playerNum = PlayerSecond
		}
		matchPlayers[playerNum], err = players.New(config, playerNum)
		if err != nil {
			return
		}
	}
	klog.V(1).Infof("%s: starting, %s vs %s", matchName, matchPlayers[PlayerFirst], matchPlayers[PlayerSecond])

	board := NewBoardWithShape(*flagRows, *flagCols)
	for !board.IsFinished() {
		if ctx.Err() != nil {
			klog.V(1).Infof("%s interrupted: %s", matchName, ctx.Err())
			return PlayerInvalid, stats, nil
		}
		var action Action
		var nextBoard *Board
		action, nextBoard, _, err = matchPlayers[board.NextPlayer].Play(board)
		if err != nil {
			err = errors.WithMessagef(err, "%s", matchName)
			return
		}
		if *flagPrintSteps {
			muStepUI.Lock()
			fmt.Printf("\n%s, move #%d: %s plays %s\n", matchName, board.MoveNumber, board.NextPlayer, action)
			stepUI.PrintBoard(nextBoard)
			muStepUI.Unlock()
		}
		board = nextBoard
	}
	klog.V(1).Infof("%s: finished at move #%d, %s", matchName, board.MoveNumber, board.FinishReason())

	for aiIdx := range NumPlayers {
		playerNum := PlayerFirst
		if aiIdx != firstAI {
			playerNum = PlayerSecond
		}
		stats[aiIdx] = matchPlayers[playerNum].Stats
	}
	return board.Winner(), stats, nil
}

// getParallelism returns the number of matches to play simultaneously.
func getParallelism() int {
	if *flagParallelism > 0 {
		return *flagParallelism
	}
	return runtime.GOMAXPROCS(0)
}
