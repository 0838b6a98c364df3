package git

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExecRunnerDefaultsToGit(t *testing.T) {
	assert.Equal(t, "git", NewExecRunner("  ").Binary)
	assert.Equal(t, "/usr/bin/git", NewExecRunner("/usr/bin/git").Binary)
}

func TestPrepareAllowedCommand(t *testing.T) {
	ctx := context.Background()

	cmd, err := prepareAllowedCommand(ctx, "/opt/bin/git", []string{"status"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/bin/git", "status"}, cmd.Args)

	_, err = prepareAllowedCommand(ctx, "git.exe", nil)
	require.NoError(t, err)

	_, err = prepareAllowedCommand(ctx, "bash", []string{"-c", "rm -rf /"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported command")
}

func TestExecRunnerRejectsOtherBinaries(t *testing.T) {
	_, err := (&ExecRunner{Binary: "sh"}).Run(context.Background(), "", "status")
	require.Error(t, err)
}

func TestExecRunnerReportsFailure(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()

	_, err := NewExecRunner("").Run(context.Background(), dir, "rev-parse", "--show-toplevel")
	require.Error(t, err)

	var gitErr *Error
	require.True(t, errors.As(err, &gitErr))
	assert.Equal(t, "rev-parse", gitErr.Op)
	assert.Contains(t, gitErr.Output, "not a git repository")
}

func TestOpName(t *testing.T) {
	assert.Equal(t, "commit", opName([]string{"commit", "-m", "x"}))
	assert.Equal(t, "status", opName([]string{"--no-pager", "status"}))
	assert.Equal(t, "git", opName(nil))
}

func TestErrorMessage(t *testing.T) {
	base := errors.New("exit status 1")
	assert.Equal(t, "push: rejected", (&Error{Op: "push", Output: "rejected", Err: base}).Error())
	assert.Equal(t, "push: exit status 1", (&Error{Op: "push", Err: base}).Error())
	assert.Equal(t, "push: failed", (&Error{Op: "push"}).Error())
	assert.ErrorIs(t, &Error{Op: "commit", Err: ErrNothingToCommit}, ErrNothingToCommit)
}
