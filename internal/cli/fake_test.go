package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/chmouel/cgc/internal/config"
	"github.com/chmouel/cgc/internal/prompt"
	"github.com/chmouel/cgc/internal/theme"
)

type fakeGitService struct {
	status      string
	statusFn    func() string
	statusErr   error
	commitCount int
	branch      string
	branchErr   error
	branches    []string
	branchesErr error

	commitErr error
	pushErr   error
	addErr    error
	switchErr error
	stashErr  error
	popErr    error

	committed  []string
	pushedArgs [][]string
	excluded   []string
	switchedTo []string
	stashed    int
	popped     int
}

func (f *fakeGitService) Status(_ context.Context) (string, error) {
	if f.statusFn != nil {
		return f.statusFn(), f.statusErr
	}
	return f.status, f.statusErr
}

func (f *fakeGitService) CommitCount(_ context.Context) int {
	return f.commitCount
}

func (f *fakeGitService) CurrentBranch(_ context.Context) (string, error) {
	return f.branch, f.branchErr
}

func (f *fakeGitService) AddWithExclude(_ context.Context, exclude []string) error {
	f.excluded = append(f.excluded, exclude...)
	return f.addErr
}

func (f *fakeGitService) Commit(_ context.Context, message string) error {
	f.committed = append(f.committed, message)
	return f.commitErr
}

func (f *fakeGitService) Push(_ context.Context, args ...string) error {
	f.pushedArgs = append(f.pushedArgs, args)
	return f.pushErr
}

func (f *fakeGitService) Stash(_ context.Context) error {
	f.stashed++
	return f.stashErr
}

func (f *fakeGitService) StashPop(_ context.Context) error {
	f.popped++
	return f.popErr
}

func (f *fakeGitService) Switch(_ context.Context, branch string) error {
	f.switchedTo = append(f.switchedTo, branch)
	return f.switchErr
}

func (f *fakeGitService) Branches(_ context.Context) ([]string, error) {
	return f.branches, f.branchesErr
}

type fakePrompter struct {
	selectIndex   int
	selectErr     error
	confirm       bool
	confirmErr    error
	gotItems      []string
	gotDefault    int
	gotConfirmMsg string
}

var _ prompt.Prompter = (*fakePrompter)(nil)

func (p *fakePrompter) Select(_ context.Context, _ string, items []string, defaultIndex int) (int, error) {
	p.gotItems = items
	p.gotDefault = defaultIndex
	return p.selectIndex, p.selectErr
}

func (p *fakePrompter) Confirm(_ context.Context, message string, _ bool) (bool, error) {
	p.gotConfirmMsg = message
	return p.confirm, p.confirmErr
}

func newTestOutput(verbose bool) (*Output, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &Output{W: buf, Styles: theme.NewStyles(nil), Verbose: verbose, Width: defaultWidth}, buf
}

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	return config.DefaultConfig()
}
