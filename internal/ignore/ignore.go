// Package ignore loads .gitignore/.commitignore style entry lists and decides
// whether a path is covered by one of them.
//
// Entries are literal file paths or directory prefixes. Wildcards are not
// expanded: `*.log` only matches a file literally named `*.log`.
package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// Set is an unordered collection of ignore entries.
type Set map[string]struct{}

// NewSet builds a Set holding entries.
func NewSet(entries ...string) Set {
	s := make(Set, len(entries))
	for _, e := range entries {
		s.Add(e)
	}
	return s
}

// Add inserts an entry.
func (s Set) Add(entry string) {
	s[entry] = struct{}{}
}

// Contains reports whether entry is literally present.
func (s Set) Contains(entry string) bool {
	_, ok := s[entry]
	return ok
}

// Len returns the number of entries.
func (s Set) Len() int {
	return len(s)
}

// Union adds every entry of other to s and returns s.
func (s Set) Union(other Set) Set {
	for e := range other {
		s.Add(e)
	}
	return s
}

// Sorted returns the entries in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// ParseEntries reads entries from r. Lines starting with '#' and blank lines
// are skipped, everything else is trimmed and kept as is.
func ParseEntries(r io.Reader) (Set, error) {
	set := NewSet()
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" && !strings.HasPrefix(line, "#") {
			if line = strings.TrimSpace(line); line != "" {
				set.Add(line)
			}
		}
		if errors.Is(err, io.EOF) {
			return set, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// LoadEntries reads the ignore file at p. A missing file yields an empty set.
func LoadEntries(p string) (Set, error) {
	f, err := os.Open(p) //nolint:gosec // path comes from local configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewSet(), nil
		}
		return nil, fmt.Errorf("failed to open ignore file %s: %w", p, err)
	}
	defer func() { _ = f.Close() }()

	set, err := ParseEntries(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore file %s: %w", p, err)
	}
	return set, nil
}

// LoadAll unions the entries of every file in paths. Empty paths are skipped.
func LoadAll(paths ...string) (Set, error) {
	set := NewSet()
	for _, p := range paths {
		if p == "" {
			continue
		}
		entries, err := LoadEntries(p)
		if err != nil {
			return nil, err
		}
		set.Union(entries)
	}
	return set, nil
}

// IsUnder reports whether boundary is an ancestor directory of candidate. The
// parent chain of candidate is walked one component at a time, so "data/"
// covers "data/x/y.md" while "dat" does not.
func IsUnder(candidate, boundary string) bool {
	boundary = normalize(boundary)
	if boundary == "" {
		return false
	}
	current := normalize(candidate)
	for {
		parent := parentOf(current)
		if parent == "" {
			return false
		}
		if parent == boundary {
			return true
		}
		current = parent
	}
}

// IsExcluded reports whether p is listed in set or lives under one of its entries.
func IsExcluded(p string, set Set) bool {
	if set.Contains(p) {
		return true
	}
	for entry := range set {
		if IsUnder(p, entry) {
			return true
		}
	}
	return false
}

// FilterExcluded returns the paths not excluded by set, keeping their order.
func FilterExcluded(paths []string, set Set) []string {
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if IsExcluded(p, set) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func normalize(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.TrimPrefix(path.Clean(p), "./")
	if p == "." || p == "/" {
		return ""
	}
	return p
}

func parentOf(p string) string {
	parent := path.Dir(p)
	if parent == "." || parent == "/" || parent == p {
		return ""
	}
	return parent
}
