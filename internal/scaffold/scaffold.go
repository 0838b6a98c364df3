// Package scaffold builds the commit message template that lists every
// changed and deleted file for the author to describe.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chmouel/cgc/internal/git"
	"github.com/chmouel/cgc/internal/ignore"
	log "github.com/chmouel/cgc/internal/log"
	"github.com/chmouel/cgc/internal/status"
)

// DefaultHeaderTemplate numbers the commit.
const DefaultHeaderTemplate = "[{count}]"

// Document is a scaffold ready to be rendered.
type Document struct {
	Header  string
	Changed []string
	Deleted []string
}

// Render returns the scaffold text.
func (d Document) Render() string {
	var b strings.Builder
	b.WriteString(d.Header)
	b.WriteString("\n\n\n")
	for _, f := range d.Changed {
		fmt.Fprintf(&b, "- `%s`:\n\n\t\n\n", f)
	}
	for _, f := range d.Deleted {
		fmt.Fprintf(&b, "- `%s`: deleted\n\n", f)
	}
	return b.String()
}

// Header expands {count} and {branch} in tmpl. An empty template falls back
// to DefaultHeaderTemplate.
func Header(tmpl string, count int, branch string) string {
	if strings.TrimSpace(tmpl) == "" {
		tmpl = DefaultHeaderTemplate
	}
	return strings.NewReplacer(
		"{count}", strconv.Itoa(count),
		"{branch}", branch,
	).Replace(tmpl)
}

// Source is the slice of git used to build a scaffold.
type Source interface {
	Status(ctx context.Context) (string, error)
	CommitCount(ctx context.Context) int
	CurrentBranch(ctx context.Context) (string, error)
}

// Builder turns repository state into a Document.
type Builder struct {
	Source Source
	Rules  status.Rules
	// IgnoreFiles are read and unioned into the exclusion set.
	IgnoreFiles []string
	// Exclude holds extra entries added to the exclusion set.
	Exclude        []string
	HeaderTemplate string
	CommitTypes    []string
}

// Build reads the status and assembles the Document. Exclusions only apply
// to changed files; deletions are always listed.
func (b *Builder) Build(ctx context.Context) (Document, error) {
	if b.Source == nil {
		return Document{}, errors.New("scaffold: no git source configured")
	}
	rules := b.Rules
	if rules.Changed == nil || rules.Deleted == nil {
		rules = status.StagedRules
	}

	raw, err := b.Source.Status(ctx)
	if err != nil {
		return Document{}, err
	}
	changed, deleted := rules.ParseChanges(raw)

	exclusions, err := ignore.LoadAll(b.IgnoreFiles...)
	if err != nil {
		return Document{}, err
	}
	for _, e := range b.Exclude {
		if e = strings.TrimSpace(e); e != "" {
			exclusions.Add(e)
		}
	}
	kept := ignore.FilterExcluded(changed, exclusions)
	log.Printf("scaffold: %d changed (%d excluded), %d deleted", len(kept), len(changed)-len(kept), len(deleted))

	return Document{
		Header:  b.header(ctx),
		Changed: kept,
		Deleted: deleted,
	}, nil
}

func (b *Builder) header(ctx context.Context) string {
	tmpl := b.HeaderTemplate
	if strings.TrimSpace(tmpl) == "" {
		tmpl = DefaultHeaderTemplate
	}
	count := b.Source.CommitCount(ctx) + 1

	branch := ""
	if strings.Contains(tmpl, "{branch}") {
		current, err := b.Source.CurrentBranch(ctx)
		if err != nil {
			log.Printf("scaffold: no branch for header: %v", err)
		} else {
			types := b.CommitTypes
			if len(types) == 0 {
				types = git.DefaultCommitTypes
			}
			branch = git.FormatBranchName(types, current)
		}
	}
	return Header(tmpl, count, branch)
}

// Write replaces the content of path with the rendered document.
func Write(path string, doc Document) error {
	if err := os.WriteFile(path, []byte(doc.Render()), 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// EnsureFiles creates every missing file in names under dir, leaving existing
// ones untouched, and returns the names it created.
func EnsureFiles(dir string, names ...string) ([]string, error) {
	var created []string
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		p := name
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, name)
		}
		if _, err := os.Stat(p); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return created, fmt.Errorf("failed to check %s: %w", p, err)
		}
		f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644) //nolint:gosec
		if err != nil {
			return created, fmt.Errorf("failed to create %s: %w", p, err)
		}
		_ = f.Close()
		created = append(created, name)
	}
	return created, nil
}
