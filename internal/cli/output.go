package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/chmouel/cgc/internal/theme"
	"golang.org/x/term"
)

const defaultWidth = 80

// Output prints user facing messages.
type Output struct {
	W       io.Writer
	Styles  theme.Styles
	Verbose bool
	Width   int
}

// terminalWidth is swapped in tests.
var terminalWidth = func(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd())) //nolint:gosec
	if err != nil {
		return 0
	}
	return width
}

// NewOutput builds an Output writing to w.
func NewOutput(w io.Writer, thm *theme.Theme, verbose bool) *Output {
	width := terminalWidth(w)
	if width <= 0 {
		width = defaultWidth
	}
	return &Output{W: w, Styles: theme.NewStyles(thm), Verbose: verbose, Width: width}
}

// Printf writes an unstyled line.
func (o *Output) Printf(format string, args ...any) {
	fmt.Fprintf(o.W, format+"\n", args...)
}

// Successf writes a line in the success style.
func (o *Output) Successf(format string, args ...any) {
	fmt.Fprintln(o.W, o.Styles.Success.Render(fmt.Sprintf(format, args...)))
}

// Warnf writes a line in the warning style.
func (o *Output) Warnf(format string, args ...any) {
	fmt.Fprintln(o.W, o.Styles.Warn.Render(fmt.Sprintf(format, args...)))
}

// Errorf writes a line in the error style.
func (o *Output) Errorf(format string, args ...any) {
	fmt.Fprintln(o.W, o.Styles.Error.Render(fmt.Sprintf(format, args...)))
}

// Verbosef writes a muted line only when verbose.
func (o *Output) Verbosef(format string, args ...any) {
	if !o.Verbose {
		return
	}
	fmt.Fprintln(o.W, o.Styles.Muted.Render(fmt.Sprintf(format, args...)))
}

// Notify adapts Output to the git notification callback.
func (o *Output) Notify(message, severity string) {
	switch severity {
	case "error":
		o.Errorf("Error: %s", message)
	case "warn":
		o.Warnf("%s", message)
	default:
		o.Printf("%s", message)
	}
}
