package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceDefaults(t *testing.T) {
	s := NewService(nil, "/repo")
	assert.Equal(t, "/repo", s.Dir())
	assert.IsType(t, &ExecRunner{}, s.runner)
	assert.NotNil(t, s.notify)
}

func TestStatus(t *testing.T) {
	r := newFakeRunner().on("status --porcelain", " M a.go\n", nil)
	s := NewService(r, "/repo")

	out, err := s.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, " M a.go\n", out)
	require.Len(t, r.calls, 1)
	assert.Equal(t, "/repo", r.calls[0].dir)
}

func TestStatusError(t *testing.T) {
	r := newFakeRunner().on("status --porcelain", "", &Error{Op: "status", Output: "fatal: not a git repository"})
	_, err := NewService(r, "/repo").Status(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fatal: not a git repository")
}

func TestAddWithExclude(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "commit_message.md"), nil, 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o750))

	var notices []string
	r := newFakeRunner()
	s := NewService(r, dir, WithNotify(func(msg, _ string) { notices = append(notices, msg) }))

	err := s.AddWithExclude(context.Background(), []string{"commit_message.md", "missing.md", "", "data"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"add --all",
		"restore --staged -- commit_message.md data",
	}, r.commands())
	assert.Equal(t, []string{"Skipping missing.md: not found"}, notices)
}

func TestAddWithExcludeNothingToRestore(t *testing.T) {
	r := newFakeRunner()
	require.NoError(t, NewService(r, t.TempDir()).AddWithExclude(context.Background(), nil))
	assert.Equal(t, []string{"add --all"}, r.commands())
}

func TestAddWithExcludeStopsOnAddFailure(t *testing.T) {
	r := newFakeRunner().on("add --all", "", &Error{Op: "add", Output: "boom"})
	err := NewService(r, t.TempDir()).AddWithExclude(context.Background(), []string{"x"})
	require.Error(t, err)
	assert.Equal(t, []string{"add --all"}, r.commands())
}

func TestCommit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := newFakeRunner()
		require.NoError(t, NewService(r, "").Commit(context.Background(), "[3]\n\nmsg"))
		assert.Equal(t, []string{"commit", "-m", "[3]\n\nmsg"}, r.calls[0].args)
	})

	t.Run("nothing to commit", func(t *testing.T) {
		r := newFakeRunner().on("commit -m msg",
			"On branch main\nnothing to commit, working tree clean\n",
			&Error{Op: "commit", Output: "On branch main\nnothing to commit, working tree clean"})
		err := NewService(r, "").Commit(context.Background(), "msg")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNothingToCommit)
	})

	t.Run("other failure", func(t *testing.T) {
		r := newFakeRunner().on("commit -m msg", "", &Error{Op: "commit", Output: "hook failed"})
		err := NewService(r, "").Commit(context.Background(), "msg")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNothingToCommit)
		assert.Contains(t, err.Error(), "hook failed")
	})
}

func TestPushPassesArgs(t *testing.T) {
	r := newFakeRunner()
	require.NoError(t, NewService(r, "").Push(context.Background(), "--force-with-lease", "origin", "main"))
	assert.Equal(t, []string{"push --force-with-lease origin main"}, r.commands())
}

func TestStashAndPop(t *testing.T) {
	r := newFakeRunner()
	s := NewService(r, "")
	require.NoError(t, s.Stash(context.Background()))
	require.NoError(t, s.StashPop(context.Background()))
	assert.Equal(t, []string{"stash -u", "stash pop"}, r.commands())
}

func TestSwitch(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		r := newFakeRunner()
		require.NoError(t, NewService(r, "").Switch(context.Background(), " feat/x "))
		assert.Equal(t, []string{"switch feat/x"}, r.commands())
	})

	t.Run("unknown branch", func(t *testing.T) {
		r := newFakeRunner().on("switch nope", "", &Error{Op: "switch", Output: "fatal: invalid reference: nope"})
		err := NewService(r, "").Switch(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrBranchNotFound)
	})

	t.Run("empty", func(t *testing.T) {
		r := newFakeRunner()
		err := NewService(r, "").Switch(context.Background(), "")
		assert.ErrorIs(t, err, ErrBranchNotFound)
		assert.Empty(t, r.calls)
	})
}

func TestBranches(t *testing.T) {
	r := newFakeRunner().on("branch", "  dev\n* main\n+ wt-branch\n  (HEAD detached at 1234abc)\n\n", nil)
	branches, err := NewService(r, "").Branches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"dev", "main", "wt-branch"}, branches)
}

func TestCurrentBranch(t *testing.T) {
	t.Run("branch", func(t *testing.T) {
		r := newFakeRunner().on("rev-parse --abbrev-ref HEAD", "feat/login\n", nil)
		b, err := NewService(r, "").CurrentBranch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "feat/login", b)
	})

	t.Run("detached", func(t *testing.T) {
		r := newFakeRunner().on("rev-parse --abbrev-ref HEAD", "HEAD\n", nil)
		_, err := NewService(r, "").CurrentBranch(context.Background())
		assert.ErrorIs(t, err, ErrDetachedHead)
	})

	t.Run("unborn branch", func(t *testing.T) {
		r := newFakeRunner().
			on("rev-parse --abbrev-ref HEAD", "", &Error{Op: "rev-parse", Output: "ambiguous argument 'HEAD'"}).
			on("symbolic-ref --short HEAD", "main\n", nil)
		b, err := NewService(r, "").CurrentBranch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "main", b)
	})
}

func TestCommitCount(t *testing.T) {
	tests := []struct {
		name string
		out  string
		err  error
		want int
	}{
		{name: "count", out: "41\n", want: 41},
		{name: "no commits", err: errors.New("exit status 128"), want: 0},
		{name: "garbage", out: "abc", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newFakeRunner().on("rev-list --count HEAD", tt.out, tt.err)
			assert.Equal(t, tt.want, NewService(r, "").CommitCount(context.Background()))
		})
	}
}

func TestRunnerFunc(t *testing.T) {
	var got []string
	rf := RunnerFunc(func(_ context.Context, _ string, args ...string) (string, error) {
		got = args
		return "ok", nil
	})
	out, err := NewService(rf, "").run(context.Background(), "status")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, []string{"status"}, got)
}
