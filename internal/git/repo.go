package git

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// DefaultCommitTypes are the conventional prefixes stripped from branch names.
var DefaultCommitTypes = []string{"chore", "feat", "fix", "test"}

// FindProjectRoot returns the top level of the working tree containing start,
// walking up parent directories. ErrNotGitRepo is returned when there is none.
func FindProjectRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}
	if fi, err := os.Stat(abs); err == nil && !fi.IsDir() {
		abs = filepath.Dir(abs)
	}

	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%s: %w", abs, ErrNotGitRepo)
		}
		return "", fmt.Errorf("failed to open repository at %s: %w", abs, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, gogit.ErrIsBareRepository) {
			return "", fmt.Errorf("%s is a bare repository: %w", abs, ErrNotGitRepo)
		}
		return "", fmt.Errorf("failed to open worktree at %s: %w", abs, err)
	}
	return wt.Filesystem.Root(), nil
}

// AddToGitExclude appends each path missing from .git/info/exclude under
// root, creating the file and its directories when needed.
func AddToGitExclude(root string, paths ...string) error {
	excludeFile := filepath.Join(root, ".git", "info", "exclude")
	if err := os.MkdirAll(filepath.Dir(excludeFile), 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(excludeFile), err)
	}

	existing := map[string]struct{}{}
	endsWithNewline := true
	data, err := os.ReadFile(excludeFile) //nolint:gosec
	switch {
	case err == nil:
		scanner := bufio.NewScanner(strings.NewReader(string(data)))
		for scanner.Scan() {
			existing[strings.TrimSpace(scanner.Text())] = struct{}{}
		}
		endsWithNewline = len(data) == 0 || data[len(data)-1] == '\n'
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("failed to read %s: %w", excludeFile, err)
	}

	var b strings.Builder
	if !endsWithNewline {
		b.WriteString("\n")
	}
	added := 0
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := existing[p]; ok {
			continue
		}
		existing[p] = struct{}{}
		b.WriteString(p)
		b.WriteString("\n")
		added++
	}
	if added == 0 {
		return nil
	}

	f, err := os.OpenFile(excludeFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", excludeFile, err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", excludeFile, err)
	}
	return f.Close()
}

// FormatBranchName removes every "<type>/" segment from branch, so
// "feat/login" becomes "login".
func FormatBranchName(types []string, branch string) string {
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		branch = strings.ReplaceAll(branch, t+"/", "")
	}
	return branch
}
