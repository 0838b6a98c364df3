// Package git wraps the git commands used by cgc.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/chmouel/cgc/internal/log"
)

// NotifyFn receives user facing notices such as skipped paths.
type NotifyFn func(message string, severity string)

// Option configures a Service.
type Option func(*Service)

// WithNotify sets the notification callback.
func WithNotify(fn NotifyFn) Option {
	return func(s *Service) {
		if fn != nil {
			s.notify = fn
		}
	}
}

// Service runs git operations for one repository directory.
type Service struct {
	runner Runner
	dir    string
	notify NotifyFn
}

// NewService constructs a Service running commands in dir through runner.
// A nil runner uses the git binary from PATH.
func NewService(runner Runner, dir string, opts ...Option) *Service {
	if runner == nil {
		runner = NewExecRunner("")
	}
	s := &Service{
		runner: runner,
		dir:    dir,
		notify: func(string, string) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the working directory commands run in.
func (s *Service) Dir() string {
	return s.dir
}

func (s *Service) run(ctx context.Context, args ...string) (string, error) {
	return s.runner.Run(ctx, s.dir, args...)
}

// Status returns the raw `git status --porcelain` output.
func (s *Service) Status(ctx context.Context) (string, error) {
	out, err := s.run(ctx, "status", "--porcelain")
	if err != nil {
		return "", fmt.Errorf("failed to read git status: %w", err)
	}
	return out, nil
}

// AddAll stages every change, including untracked files and deletions.
func (s *Service) AddAll(ctx context.Context) error {
	if _, err := s.run(ctx, "add", "--all"); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	return nil
}

// RestoreStaged unstages paths, leaving the working tree untouched.
func (s *Service) RestoreStaged(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"restore", "--staged", "--"}, paths...)
	if _, err := s.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to unstage %s: %w", strings.Join(paths, ", "), err)
	}
	return nil
}

// AddWithExclude stages everything then unstages each excluded path that
// exists on disk. Missing exclusions are reported and skipped.
func (s *Service) AddWithExclude(ctx context.Context, exclude []string) error {
	if err := s.AddAll(ctx); err != nil {
		return err
	}

	var present []string
	for _, p := range exclude {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.dir, p)); err != nil {
			s.notify(fmt.Sprintf("Skipping %s: not found", p), "warn")
			log.Printf("exclude: %s does not exist, skipped", p)
			continue
		}
		present = append(present, p)
	}
	return s.RestoreStaged(ctx, present...)
}

// Commit records the staged changes with message. A refusal because nothing
// is staged is reported as ErrNothingToCommit.
func (s *Service) Commit(ctx context.Context, message string) error {
	out, err := s.run(ctx, "commit", "-m", message)
	if err == nil {
		return nil
	}

	var gitErr *Error
	detail := out
	if errors.As(err, &gitErr) {
		detail += "\n" + gitErr.Output
	}
	if isNothingToCommit(detail) {
		return &Error{Op: "commit", Cmd: "git commit", Err: ErrNothingToCommit}
	}
	return fmt.Errorf("failed to commit: %w", err)
}

func isNothingToCommit(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "nothing to commit") ||
		strings.Contains(lower, "no changes added to commit") ||
		strings.Contains(lower, "nothing added to commit")
}

// Push runs `git push` with extra args passed through untouched.
func (s *Service) Push(ctx context.Context, args ...string) error {
	full := append([]string{"push"}, args...)
	if _, err := s.run(ctx, full...); err != nil {
		return fmt.Errorf("failed to push: %w", err)
	}
	return nil
}

// Stash stashes local changes including untracked files.
func (s *Service) Stash(ctx context.Context) error {
	if _, err := s.run(ctx, "stash", "-u"); err != nil {
		return fmt.Errorf("failed to stash changes: %w", err)
	}
	return nil
}

// StashPop re-applies the most recent stash.
func (s *Service) StashPop(ctx context.Context) error {
	if _, err := s.run(ctx, "stash", "pop"); err != nil {
		return fmt.Errorf("failed to pop stash: %w", err)
	}
	return nil
}

// Switch checks out branch.
func (s *Service) Switch(ctx context.Context, branch string) error {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return fmt.Errorf("failed to switch branch: %w", ErrBranchNotFound)
	}
	if _, err := s.run(ctx, "switch", branch); err != nil {
		var gitErr *Error
		if errors.As(err, &gitErr) && strings.Contains(gitErr.Output, "invalid reference") {
			return fmt.Errorf("failed to switch to %s: %w", branch, ErrBranchNotFound)
		}
		return fmt.Errorf("failed to switch to %s: %w", branch, err)
	}
	return nil
}

// Branches lists local branch names in git's order.
func (s *Service) Branches(ctx context.Context) ([]string, error) {
	out, err := s.run(ctx, "branch")
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return parseBranches(out), nil
}

func parseBranches(raw string) []string {
	branches := []string{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		line = strings.TrimPrefix(line, "* ")
		line = strings.TrimPrefix(line, "+ ")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "(") {
			continue
		}
		branches = append(branches, line)
	}
	return branches
}

// CurrentBranch returns the checked out branch. An unborn branch is resolved
// through the symbolic ref. Detached HEAD yields ErrDetachedHead.
func (s *Service) CurrentBranch(ctx context.Context) (string, error) {
	out, err := s.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		ref, refErr := s.run(ctx, "symbolic-ref", "--short", "HEAD")
		if refErr != nil {
			return "", fmt.Errorf("failed to resolve current branch: %w", err)
		}
		out = ref
	}
	branch := strings.TrimSpace(out)
	if branch == "" || branch == "HEAD" {
		return "", ErrDetachedHead
	}
	return branch, nil
}

// CommitCount returns the number of commits reachable from HEAD, 0 when
// HEAD has none.
func (s *Service) CommitCount(ctx context.Context) int {
	out, err := s.run(ctx, "rev-list", "--count", "HEAD")
	if err != nil {
		log.Printf("rev-list failed, assuming no commits: %v", err)
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
