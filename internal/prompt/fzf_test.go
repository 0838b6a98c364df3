package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubFzf(t *testing.T, installed bool, run func(input string, args []string) (string, error)) {
	t.Helper()
	origLook, origRun := fzfLookPath, runFzf
	t.Cleanup(func() { fzfLookPath, runFzf = origLook, origRun })

	fzfLookPath = func(string) (string, error) {
		if installed {
			return "/usr/bin/fzf", nil
		}
		return "", errors.New("not found")
	}
	runFzf = func(_ context.Context, input string, _ io.Writer, args ...string) (string, error) {
		return run(input, args)
	}
}

func TestFzfSelect(t *testing.T) {
	var gotInput string
	var gotArgs []string
	stubFzf(t, true, func(input string, args []string) (string, error) {
		gotInput, gotArgs = input, args
		return "3\tmain\n", nil
	})

	f := &Fzf{Fallback: NewStdio(strings.NewReader(""), &bytes.Buffer{})}
	idx, err := f.Select(context.Background(), "Choose a branch", []string{"dev", "feat/x", "main"}, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.Equal(t, "2\tfeat/x\n1\tdev\n3\tmain", gotInput)
	assert.Contains(t, gotArgs, "Choose a branch> ")
}

func TestFzfSelectCancelled(t *testing.T) {
	stubFzf(t, true, func(string, []string) (string, error) {
		return "", errors.New("exit status 130")
	})
	f := &Fzf{Fallback: NewStdio(strings.NewReader(""), &bytes.Buffer{})}
	_, err := f.Select(context.Background(), "x", []string{"a"}, 0)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestFzfSelectBadOutput(t *testing.T) {
	stubFzf(t, true, func(string, []string) (string, error) {
		return "oops\n", nil
	})
	f := &Fzf{Fallback: NewStdio(strings.NewReader(""), &bytes.Buffer{})}
	_, err := f.Select(context.Background(), "x", []string{"a"}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected fzf selection")
}

func TestFzfFallsBackWhenMissing(t *testing.T) {
	stubFzf(t, false, func(string, []string) (string, error) {
		t.Fatal("fzf should not run")
		return "", nil
	})
	f := &Fzf{Fallback: NewStdio(strings.NewReader("1\ny\n"), &bytes.Buffer{})}

	idx, err := f.Select(context.Background(), "x", []string{"a", "b"}, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	ok, err := f.Confirm(context.Background(), "sure?", false)
	require.NoError(t, err)
	assert.True(t, ok)
}
