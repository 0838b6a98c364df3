package git

import (
	"context"
	"strings"
)

type call struct {
	dir  string
	args []string
}

type response struct {
	out string
	err error
}

// fakeRunner answers commands from a table keyed by the joined args.
type fakeRunner struct {
	responses map[string]response
	calls     []call
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: map[string]response{}}
}

func (f *fakeRunner) on(cmd, out string, err error) *fakeRunner {
	f.responses[cmd] = response{out: out, err: err}
	return f
}

func (f *fakeRunner) Run(_ context.Context, dir string, args ...string) (string, error) {
	f.calls = append(f.calls, call{dir: dir, args: append([]string(nil), args...)})
	r := f.responses[strings.Join(args, " ")]
	return r.out, r.err
}

func (f *fakeRunner) commands() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, strings.Join(c.args, " "))
	}
	return out
}
