// Package status parses `git status --porcelain` output into changed and deleted paths.
package status

import (
	"regexp"
	"sort"
	"strings"
)

// Category classifies a porcelain entry.
type Category int

// Porcelain entry categories.
const (
	Unknown Category = iota
	Modified
	Added
	Renamed
	Copied
	Updated
	Untracked
	Deleted
	IgnoredMarker
)

func (c Category) String() string {
	switch c {
	case Modified:
		return "modified"
	case Added:
		return "added"
	case Renamed:
		return "renamed"
	case Copied:
		return "copied"
	case Updated:
		return "updated"
	case Untracked:
		return "untracked"
	case Deleted:
		return "deleted"
	case IgnoredMarker:
		return "ignored"
	default:
		return "unknown"
	}
}

// Entry is a single decoded porcelain line.
type Entry struct {
	Index    byte // X column: index/staged state
	Worktree byte // Y column: working tree state
	Path     string
}

// Code returns the two-character XY status code.
func (e Entry) Code() string {
	return string([]byte{e.Index, e.Worktree})
}

// Category derives the entry category. A D in either column wins, otherwise the
// index column decides and the worktree column is used when the index is clean.
func (e Entry) Category() Category {
	if e.Index == 'D' || e.Worktree == 'D' {
		return Deleted
	}
	c := e.Index
	if c == ' ' {
		c = e.Worktree
	}
	switch c {
	case 'M', 'T':
		return Modified
	case 'A':
		return Added
	case 'R':
		return Renamed
	case 'C':
		return Copied
	case 'U':
		return Updated
	case '?':
		return Untracked
	case '!':
		return IgnoredMarker
	default:
		return Unknown
	}
}

func isStatusChar(c byte) bool {
	return strings.IndexByte("MTARCUD?! ", c) >= 0
}

// ParseEntry decodes one porcelain line. Lines that are too short, carry an
// unknown status character or lack the separating whitespace are rejected.
func ParseEntry(line string) (Entry, bool) {
	line = strings.TrimSuffix(line, "\r")
	if len(line) < 4 {
		return Entry{}, false
	}
	if !isStatusChar(line[0]) || !isStatusChar(line[1]) {
		return Entry{}, false
	}
	if line[2] != ' ' && line[2] != '\t' {
		return Entry{}, false
	}
	path := strings.TrimLeft(line[2:], " \t")
	if path == "" {
		return Entry{}, false
	}
	return Entry{Index: line[0], Worktree: line[1], Path: path}, true
}

// ParseEntries decodes every well-formed line of raw, skipping the rest.
func ParseEntries(raw string) []Entry {
	var entries []Entry
	for _, line := range splitLines(raw) {
		if entry, ok := ParseEntry(line); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Rules holds the pattern rules used to classify porcelain lines. Each
// expression must capture the path in its first group.
type Rules struct {
	Name    string
	Changed *regexp.Regexp
	Deleted *regexp.Regexp
}

// Rule set names accepted by RulesByName.
const (
	StagedRulesName   = "staged"
	WorktreeRulesName = "worktree"
)

var (
	// StagedRules only reports changes whose index column is a change letter.
	// Deletions are recognised from the worktree column or after an index letter.
	StagedRules = Rules{
		Name:    StagedRulesName,
		Changed: regexp.MustCompile(`^[MTARCU][A-CE-Z?! ]\s+(.*)$`),
		Deleted: regexp.MustCompile(`^(?:\sD|[A-Z]D)\s+([A-Za-z0-9/_.\-]+)$`),
	}

	// WorktreeRules reports any non-clean entry, including untracked,
	// unmerged and ignored markers, and a D in either column as deleted.
	WorktreeRules = Rules{
		Name:    WorktreeRulesName,
		Changed: regexp.MustCompile(`^(?:[MTARCU?!][A-CE-Z?! ]| [MTARCU?!])\s+(.*)$`),
		Deleted: regexp.MustCompile(`^(?:D[A-Z ]|[A-Z ]D)\s+([A-Za-z0-9/_.\-]+)$`),
	}

	completionRule = regexp.MustCompile(`^[MARCU? ][MARCU? ]\s+(.*)$`)
)

// RulesByName returns the named rule set. Unknown or empty names fall back to
// StagedRules and report false.
func RulesByName(name string) (Rules, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case StagedRulesName:
		return StagedRules, true
	case WorktreeRulesName:
		return WorktreeRules, true
	default:
		return StagedRules, false
	}
}

// ParseChanges splits raw porcelain output into changed and deleted paths
// using StagedRules.
func ParseChanges(raw string) (changed, deleted []string) {
	return StagedRules.ParseChanges(raw)
}

// ParseChanges classifies each line of raw. The deleted rule is checked first so
// a line ends up in at most one list. Order is preserved and duplicates are kept.
func (r Rules) ParseChanges(raw string) (changed, deleted []string) {
	changed = []string{}
	deleted = []string{}
	for _, line := range splitLines(raw) {
		if m := r.Deleted.FindStringSubmatch(line); m != nil {
			deleted = append(deleted, m[1])
			continue
		}
		if m := r.Changed.FindStringSubmatch(line); m != nil {
			changed = append(changed, m[1])
		}
	}
	return changed, deleted
}

// StatusFiles returns the distinct paths listed in raw, sorted, leaving out
// anything marked deleted. It feeds shell completion.
func StatusFiles(raw string) []string {
	seen := make(map[string]struct{})
	for _, line := range splitLines(raw) {
		if entry, ok := ParseEntry(line); ok && entry.Category() == Deleted {
			continue
		}
		m := completionRule.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		seen[m[1]] = struct{}{}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

func splitLines(raw string) []string {
	if raw == "" {
		return nil
	}
	lines := strings.Split(raw, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
