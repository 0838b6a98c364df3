// Package prompt asks the user to pick from a list or confirm an action,
// through a full screen picker, fzf, or a plain numbered prompt.
package prompt

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/chmouel/cgc/internal/theme"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("selection cancelled")

// errNoItems is returned when Select has nothing to offer.
var errNoItems = errors.New("nothing to select")

// Prompter is the interactive capability used by commands.
type Prompter interface {
	// Select returns the index of the chosen item.
	Select(ctx context.Context, title string, items []string, defaultIndex int) (int, error)
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, message string, defaultYes bool) (bool, error)
}

// Modes accepted by New.
const (
	ModeAuto   = "auto"
	ModeTUI    = "tui"
	ModeFzf    = "fzf"
	ModePrompt = "prompt"
)

// isTerminal is swapped in tests.
var isTerminal = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec
}

// New returns the Prompter for mode. Auto uses the full screen picker when
// in is a terminal and the numbered prompt otherwise.
func New(mode string, in io.Reader, out io.Writer, thm *theme.Theme) Prompter {
	stdio := NewStdio(in, out)
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModePrompt:
		return stdio
	case ModeFzf:
		return &Fzf{Fallback: stdio, Out: out}
	case ModeTUI:
		return &TUI{In: in, Out: out, Theme: thm}
	default:
		if isTerminal(in) {
			return &TUI{In: in, Out: out, Theme: thm}
		}
		return stdio
	}
}

func clampDefault(defaultIndex, n int) int {
	if defaultIndex < 0 || defaultIndex >= n {
		return 0
	}
	return defaultIndex
}
