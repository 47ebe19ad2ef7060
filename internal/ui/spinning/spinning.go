// Package spinning shows a spinning symbol on the terminal while the AI is thinking.
package spinning

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"k8s.io/klog/v2"
)

// Themes of symbols to cycle through.
var (
	ThemeAscii = []rune(`|/-\`)
	ThemeMoon  = []rune("🌑🌒🌓🌔🌕🌖🌗🌘")
	ThemeClock = []rune("🕐🕑🕒🕓🕔🕕🕖🕗🕘🕙🕚🕛")
)

// Interval between symbols.
var Interval = 250 * time.Millisecond

const (
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
	resetColor = "\033[39;49;0m"
)

// Spinner runs on a separate goroutine until Done is called.
type Spinner struct {
	out    io.Writer
	theme  []rune
	wg     sync.WaitGroup
	cancel func()
}

// New starts a spinner writing to out, cycling through theme. If theme is empty, ThemeAscii is used.
func New(ctx context.Context, out io.Writer, theme []rune) *Spinner {
	if len(theme) == 0 {
		theme = ThemeAscii
	}
	s := &Spinner{out: out, theme: theme}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.run(ctx)
	return s
}

func (s *Spinner) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(Interval)
	defer ticker.Stop()
	fmt.Fprint(s.out, hideCursor)
	defer fmt.Fprint(s.out, showCursor)

	// Wide symbols (emojis) take 2 columns: "\b\b" plus 2 spaces clears both cases.
	fmt.Fprint(s.out, "  ")
	for idx := 0; ; idx = (idx + 1) % len(s.theme) {
		fmt.Fprintf(s.out, "\b\b  \b\b%c", s.theme[idx])
		select {
		case <-ctx.Done():
			fmt.Fprint(s.out, "\b\b  \b\b")
			return
		case <-ticker.C:
		}
	}
}

// Done stops the spinner and waits for it to clean up the terminal. It can be called more than once.
func (s *Spinner) Done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}

// SafeInterrupt captures SIGINT (Ctrl+C) and SIGTERM and calls onInterrupt (if not nil).
// If the program hasn't exited after gracePeriod, it resets the terminal and exits.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		fmt.Println()
		klog.Errorf("Interrupted (signal %q), shutting down in %s", sig, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}
		time.Sleep(gracePeriod)
		Reset(os.Stdout)
		klog.Exitf("Grace period of %s expired, exiting.", gracePeriod)
	}()
}

// Reset the terminal: make the cursor visible and restore the default colors.
func Reset(out io.Writer) {
	fmt.Fprint(out, showCursor+resetColor+"\n")
}
