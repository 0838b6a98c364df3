package git

import "errors"

// Git operation errors.
var (
	// ErrNotGitRepo indicates the path is not inside a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrNothingToCommit indicates git refused to commit because nothing is staged.
	ErrNothingToCommit = errors.New("nothing to commit")

	// ErrBranchNotFound indicates the requested branch does not exist.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrDetachedHead indicates HEAD does not point to a branch.
	ErrDetachedHead = errors.New("not currently on a branch (detached HEAD)")
)

// Error wraps a failed git invocation.
type Error struct {
	Op     string // operation that failed, e.g. "commit"
	Cmd    string // command line that was run
	Output string // trimmed stderr, or stdout when stderr was empty
	Err    error
}

func (e *Error) Error() string {
	if e.Output != "" {
		return e.Op + ": " + e.Output
	}
	if e.Err == nil {
		return e.Op + ": failed"
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
