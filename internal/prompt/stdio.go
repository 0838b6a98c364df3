package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Stdio prompts with a numbered list on a reader/writer pair.
type Stdio struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdio builds a Stdio prompter.
func NewStdio(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{in: bufio.NewReader(in), out: out}
}

func (s *Stdio) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", ErrCancelled
	}
	return strings.TrimSpace(line), nil
}

// Select prints items numbered from 1 and reads the choice. An empty answer
// picks the default.
func (s *Stdio) Select(ctx context.Context, title string, items []string, defaultIndex int) (int, error) {
	if len(items) == 0 {
		return -1, errNoItems
	}
	defaultIndex = clampDefault(defaultIndex, len(items))

	fmt.Fprintf(s.out, "\n%s:\n\n", title)
	for i, item := range items {
		marker := " "
		if i == defaultIndex {
			marker = ">"
		}
		fmt.Fprintf(s.out, "%s [%d] %s\n", marker, i+1, item)
	}
	fmt.Fprintf(s.out, "\nSelect [1-%d] (default %d): ", len(items), defaultIndex+1)

	if err := ctx.Err(); err != nil {
		return -1, err
	}
	text, err := s.readLine()
	if err != nil {
		return -1, err
	}
	if text == "" {
		return defaultIndex, nil
	}

	idx, err := strconv.Atoi(text)
	if err != nil {
		return -1, fmt.Errorf("invalid selection: %q", text)
	}
	if idx < 1 || idx > len(items) {
		return -1, fmt.Errorf("selection out of range: %d (must be 1-%d)", idx, len(items))
	}
	return idx - 1, nil
}

// Confirm asks a y/n question. An empty answer picks the default.
func (s *Stdio) Confirm(ctx context.Context, message string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprintf(s.out, "%s %s: ", message, hint)

	if err := ctx.Err(); err != nil {
		return false, err
	}
	text, err := s.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(text) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid answer: %q", text)
	}
}
