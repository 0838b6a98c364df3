// Package cli implements the cgc commands on top of the git service.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/chmouel/cgc/internal/config"
	"github.com/chmouel/cgc/internal/git"
	"github.com/chmouel/cgc/internal/prompt"
	"github.com/chmouel/cgc/internal/scaffold"
	"github.com/chmouel/cgc/internal/status"
	"github.com/chmouel/cgc/internal/utils"
	"github.com/muesli/reflow/wrap"
)

var (
	osReadFile      = os.ReadFile
	addToGitExclude = git.AddToGitExclude
)

type gitService interface {
	Status(ctx context.Context) (string, error)
	CommitCount(ctx context.Context) int
	CurrentBranch(ctx context.Context) (string, error)
	AddWithExclude(ctx context.Context, exclude []string) error
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context, args ...string) error
	Stash(ctx context.Context) error
	StashPop(ctx context.Context) error
	Switch(ctx context.Context, branch string) error
	Branches(ctx context.Context) ([]string, error)
}

var _ gitService = (*git.Service)(nil)

func newBuilder(gitSvc gitService, cfg *config.AppConfig, root string) *scaffold.Builder {
	return &scaffold.Builder{
		Source: gitSvc,
		Rules:  cfg.Rules(),
		IgnoreFiles: []string{
			utils.ResolveIn(root, cfg.GitignoreFile),
			utils.ResolveIn(root, cfg.CommitignoreFile),
		},
		// the scaffold never lists itself
		Exclude:        []string{cfg.CommitMessageFile},
		HeaderTemplate: cfg.HeaderTemplate,
		CommitTypes:    cfg.CommitTypes,
	}
}

// Generate creates the scaffold and ignore files when missing, then rewrites
// the scaffold from the current status.
func Generate(ctx context.Context, gitSvc gitService, cfg *config.AppConfig, root string, out *Output) (scaffold.Document, error) {
	out.Verbosef("Creating the needed files...")
	created, err := scaffold.EnsureFiles(root, cfg.CommitMessageFile, cfg.CommitignoreFile)
	if err != nil {
		return scaffold.Document{}, err
	}
	for _, name := range []string{cfg.CommitMessageFile, cfg.CommitignoreFile} {
		state := "already exists"
		for _, c := range created {
			if c == name {
				state = "created"
			}
		}
		out.Verbosef("\t`%s` %s", name, state)
	}

	if cfg.ExcludeScaffold {
		if err := addToGitExclude(root, cfg.CommitMessageFile, cfg.CommitignoreFile); err != nil {
			return scaffold.Document{}, fmt.Errorf("failed to update git exclude: %w", err)
		}
	}

	doc, err := newBuilder(gitSvc, cfg, root).Build(ctx)
	if err != nil {
		return scaffold.Document{}, err
	}
	if err := scaffold.Write(utils.ResolveIn(root, cfg.CommitMessageFile), doc); err != nil {
		return scaffold.Document{}, err
	}
	out.Successf("%s created (%d changed, %d deleted)", cfg.CommitMessageFile, len(doc.Changed), len(doc.Deleted))
	return doc, nil
}

// CommitOptions configures Commit.
type CommitOptions struct {
	Push     bool
	PushArgs []string
}

// Commit commits with the scaffold content, then pushes when asked.
func Commit(ctx context.Context, gitSvc gitService, cfg *config.AppConfig, root string, opts CommitOptions, out *Output) error {
	path := utils.ResolveIn(root, cfg.CommitMessageFile)
	data, err := osReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s not found, run `cgc generate` first: %w", cfg.CommitMessageFile, err)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	message := string(data)

	if out.Verbose {
		printCommitMessage(out, message)
		out.Printf("Committing...")
	}

	if err := gitSvc.Commit(ctx, message); err != nil {
		out.Errorf("Commit failed.")
		return err
	}
	out.Successf("Commit successful.")

	if !opts.Push {
		return nil
	}
	args := opts.PushArgs
	if len(args) == 0 {
		args = cfg.PushArgs
	}
	return Push(ctx, gitSvc, args, out)
}

func printCommitMessage(out *Output, message string) {
	delimiter := strings.Repeat("-", 48)
	width := out.Width
	if width <= 0 {
		width = defaultWidth
	}
	out.Printf("\nCommit message:\n%s\n%s\n%s", delimiter, wrap.String(strings.TrimRight(message, "\n"), width), delimiter)
}

// Push runs git push with args.
func Push(ctx context.Context, gitSvc gitService, args []string, out *Output) error {
	out.Verbosef("Pushing...")
	if err := gitSvc.Push(ctx, args...); err != nil {
		out.Errorf("Push failed.")
		return err
	}
	out.Successf("Push successful.")
	return nil
}

// AddAndExclude stages everything except the given paths.
func AddAndExclude(ctx context.Context, gitSvc gitService, exclude []string, out *Output) error {
	out.Verbosef("Excluding: %s", strings.Join(exclude, ", "))
	if err := gitSvc.AddWithExclude(ctx, exclude); err != nil {
		out.Errorf("Error adding the files")
		return err
	}
	out.Successf("Added the files")
	return nil
}

// SwitchOptions configures Switch.
type SwitchOptions struct {
	Stash      bool
	ApplyStash bool
}

// Switch lets the user pick a branch, confirms, switches and optionally
// re-applies stashed changes. Declining prints "Aborted" and is not an error.
func Switch(ctx context.Context, gitSvc gitService, p prompt.Prompter, opts SwitchOptions, out *Output) error {
	if opts.Stash {
		out.Printf("Stashing changes...")
		if err := gitSvc.Stash(ctx); err != nil {
			return err
		}
	}

	branches, err := gitSvc.Branches(ctx)
	if err != nil {
		return err
	}
	if len(branches) == 0 {
		return fmt.Errorf("no branches to switch to: %w", git.ErrBranchNotFound)
	}

	defaultIndex := 0
	if current, err := gitSvc.CurrentBranch(ctx); err == nil {
		for i, b := range branches {
			if b == current {
				defaultIndex = i
				break
			}
		}
	}

	idx, err := p.Select(ctx, "Choose a branch", branches, defaultIndex)
	if errors.Is(err, prompt.ErrCancelled) {
		aborted(out, opts)
		return nil
	}
	if err != nil {
		return err
	}
	chosen := branches[idx]

	ok, err := p.Confirm(ctx, fmt.Sprintf("Switch to branch: %s ?", chosen), true)
	if errors.Is(err, prompt.ErrCancelled) || (err == nil && !ok) {
		aborted(out, opts)
		return nil
	}
	if err != nil {
		return err
	}

	if err := gitSvc.Switch(ctx, chosen); err != nil {
		out.Errorf("Failed to switch branch.")
		return err
	}
	out.Successf("Switched to %s", chosen)

	if opts.ApplyStash {
		if err := gitSvc.StashPop(ctx); err != nil {
			return err
		}
		out.Verbosef("Stash applied")
	}
	return nil
}

func aborted(out *Output, opts SwitchOptions) {
	out.Printf("Aborted")
	if opts.Stash {
		out.Warnf("Changes are still stashed, run `git stash pop` to restore them.")
	}
}

// ListStatusFiles prints the distinct non-deleted status paths, one per
// line, for shell completion.
func ListStatusFiles(ctx context.Context, gitSvc gitService, out *Output) error {
	raw, err := gitSvc.Status(ctx)
	if err != nil {
		return err
	}
	for _, f := range status.StatusFiles(raw) {
		out.Printf("%s", f)
	}
	return nil
}
