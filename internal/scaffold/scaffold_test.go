package scaffold

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chmouel/cgc/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	status    string
	statusErr error
	count     int
	branch    string
	branchErr error
}

func (f fakeSource) Status(context.Context) (string, error) {
	return f.status, f.statusErr
}

func (f fakeSource) CommitCount(context.Context) int {
	return f.count
}

func (f fakeSource) CurrentBranch(context.Context) (string, error) {
	return f.branch, f.branchErr
}

func TestRender(t *testing.T) {
	doc := Document{
		Header:  "[12]",
		Changed: []string{"src/main.rs", "src/utils.rs"},
		Deleted: []string{"old.rs"},
	}
	want := "[12]\n\n\n" +
		"- `src/main.rs`:\n\n\t\n\n" +
		"- `src/utils.rs`:\n\n\t\n\n" +
		"- `old.rs`: deleted\n\n"
	assert.Equal(t, want, doc.Render())
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "[1]\n\n\n", Document{Header: "[1]"}.Render())
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "[5]", Header("", 5, "main"))
	assert.Equal(t, "login #5", Header("{branch} #{count}", 5, "login"))
	assert.Equal(t, "static", Header("static", 5, "x"))
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	gitignore := filepath.Join(dir, ".gitignore")
	commitignore := filepath.Join(dir, ".commitignore")
	require.NoError(t, os.WriteFile(gitignore, []byte("target/\n"), 0o600))
	require.NoError(t, os.WriteFile(commitignore, []byte("# skip data\ndata/year_2015\nCargo.lock\n"), 0o600))

	src := fakeSource{
		status: strings.Join([]string{
			"M  src/main.rs",
			"A  data/year_2015/puzzles/day_01.md",
			"M  Cargo.lock",
			"A  target/debug/out",
			"M  commit_message.md",
			" D data/year_2015/gone.md",
			"",
		}, "\n"),
		count: 41,
	}

	b := &Builder{
		Source:      src,
		IgnoreFiles: []string{gitignore, commitignore, filepath.Join(dir, "missing")},
		Exclude:     []string{"commit_message.md"},
	}
	doc, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[42]", doc.Header)
	assert.Equal(t, []string{"src/main.rs"}, doc.Changed)
	assert.Equal(t, []string{"data/year_2015/gone.md"}, doc.Deleted)
}

func TestBuildUsesRules(t *testing.T) {
	src := fakeSource{status: " M a.go\n?? b.go\n"}

	doc, err := (&Builder{Source: src}).Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Changed)

	doc, err = (&Builder{Source: src, Rules: status.WorktreeRules}).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "b.go"}, doc.Changed)
}

func TestBuildBranchHeader(t *testing.T) {
	b := &Builder{
		Source:         fakeSource{branch: "feat/login", count: 2},
		HeaderTemplate: "[{count}] {branch}:",
	}
	doc, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[3] login:", doc.Header)

	b.Source = fakeSource{branchErr: errors.New("detached"), count: 0}
	doc, err = b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[1] :", doc.Header)
}

func TestBuildStatusError(t *testing.T) {
	_, err := (&Builder{Source: fakeSource{statusErr: errors.New("boom")}}).Build(context.Background())
	require.Error(t, err)

	_, err = (&Builder{}).Build(context.Background())
	require.Error(t, err)
}

func TestWriteTruncates(t *testing.T) {
	p := filepath.Join(t.TempDir(), "commit_message.md")
	require.NoError(t, os.WriteFile(p, []byte(strings.Repeat("stale\n", 50)), 0o600))

	require.NoError(t, Write(p, Document{Header: "[1]", Deleted: []string{"x"}}))
	data, err := os.ReadFile(p) //nolint:gosec
	require.NoError(t, err)
	assert.Equal(t, "[1]\n\n\n- `x`: deleted\n\n", string(data))
}

func TestEnsureFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".commitignore"), []byte("keep\n"), 0o600))

	created, err := EnsureFiles(dir, "commit_message.md", ".commitignore", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"commit_message.md"}, created)

	data, err := os.ReadFile(filepath.Join(dir, ".commitignore")) //nolint:gosec
	require.NoError(t, err)
	assert.Equal(t, "keep\n", string(data))

	created, err = EnsureFiles(dir, "commit_message.md")
	require.NoError(t, err)
	assert.Empty(t, created)
}
