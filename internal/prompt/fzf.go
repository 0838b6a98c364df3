package prompt

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// fzfLookPath is replaceable in tests.
var fzfLookPath = exec.LookPath

// runFzf pipes input through fzf and returns the chosen line.
var runFzf = func(ctx context.Context, input string, stderr io.Writer, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "fzf", args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stderr = stderr
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Fzf selects through fzf when installed and falls back otherwise.
// Confirmations always go to the fallback.
type Fzf struct {
	Fallback Prompter
	Out      io.Writer
}

// Select implements Prompter.
func (f *Fzf) Select(ctx context.Context, title string, items []string, defaultIndex int) (int, error) {
	if len(items) == 0 {
		return -1, errNoItems
	}
	if _, err := fzfLookPath("fzf"); err != nil {
		return f.Fallback.Select(ctx, title, items, defaultIndex)
	}
	defaultIndex = clampDefault(defaultIndex, len(items))

	// the default goes first so fzf preselects it
	order := make([]int, 0, len(items))
	order = append(order, defaultIndex)
	for i := range items {
		if i != defaultIndex {
			order = append(order, i)
		}
	}
	lines := make([]string, 0, len(items))
	for _, i := range order {
		lines = append(lines, fmt.Sprintf("%d\t%s", i+1, strings.Join(strings.Fields(items[i]), " ")))
	}

	out, err := runFzf(ctx, strings.Join(lines, "\n"), f.Out,
		"--prompt", title+"> ",
		"--with-nth", "2..",
		"--delimiter", "\t",
		"--no-multi",
	)
	if err != nil {
		return -1, ErrCancelled
	}

	selected := strings.TrimSpace(out)
	if selected == "" {
		return -1, ErrCancelled
	}
	num, _, _ := strings.Cut(selected, "\t")
	idx, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil || idx < 1 || idx > len(items) {
		return -1, fmt.Errorf("unexpected fzf selection: %q", selected)
	}
	return idx - 1, nil
}

// Confirm implements Prompter.
func (f *Fzf) Confirm(ctx context.Context, message string, defaultYes bool) (bool, error) {
	return f.Fallback.Confirm(ctx, message, defaultYes)
}
