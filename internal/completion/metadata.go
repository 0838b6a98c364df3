// Package completion describes the cgc command line for shell completion
// scripts and renders those scripts.
package completion

import "github.com/chmouel/cgc/internal/theme"

// FlagInfo contains metadata about a command-line flag for completion generation.
type FlagInfo struct {
	Name        string   // Flag name without dashes
	Short       string   // Single letter alias, if any
	Description string   // Human-readable description
	HasValue    bool     // true for string flags, false for bool flags
	ValueHint   string   // Hint for value type (e.g., "PATH", "NAME")
	Values      []string // Enumerated values for completion (e.g., theme names)
	// ValuesCommand is a cgc subcommand whose output lists candidate values.
	ValuesCommand string
}

// CommandInfo describes a subcommand.
type CommandInfo struct {
	Name        string
	Alias       string
	Description string
	Flags       []FlagInfo
	// Args are enumerated positional values.
	Args []string
	// ArgsCommand is a cgc subcommand whose output lists positional candidates.
	ArgsCommand string
}

// Names returns the command name followed by its alias.
func (c CommandInfo) Names() []string {
	if c.Alias == "" {
		return []string{c.Name}
	}
	return []string{c.Name, c.Alias}
}

// Shells lists the supported shells.
func Shells() []string {
	return []string{"bash", "zsh", "fish"}
}

// GlobalFlags returns metadata for the flags accepted by every command.
func GlobalFlags() []FlagInfo {
	return []FlagInfo{
		{
			Name:        "verbose",
			Short:       "v",
			Description: "Print more information about each operation",
		},
		{
			Name:        "debug-log",
			Description: "Path to debug log file",
			HasValue:    true,
			ValueHint:   "PATH",
		},
		{
			Name:        "config-file",
			Description: "Path to configuration file",
			HasValue:    true,
			ValueHint:   "FILE",
		},
		{
			Name:        "config",
			Short:       "C",
			Description: "Override config values, repeatable: cgc.key=value",
			HasValue:    true,
			ValueHint:   "KEY=VALUE",
		},
		{
			Name:        "theme",
			Short:       "t",
			Description: "Override the UI theme",
			HasValue:    true,
			ValueHint:   "NAME",
			Values:      theme.AvailableThemes(),
		},
		{
			Name:        "repo",
			Short:       "r",
			Description: "Run against the repository containing this path",
			HasValue:    true,
			ValueHint:   "DIR",
		},
	}
}

// Commands returns metadata for every subcommand. This is the single source
// of truth for the generated scripts.
func Commands() []CommandInfo {
	pushArgs := FlagInfo{
		Name:        "args",
		Short:       "a",
		Description: "Extra arguments for git push, repeatable",
		HasValue:    true,
		ValueHint:   "ARG",
	}
	return []CommandInfo{
		{
			Name:        "commit",
			Alias:       "c",
			Description: "Commit with the content of the commit message file",
			Flags: []FlagInfo{
				{Name: "push", Short: "p", Description: "Push after a successful commit"},
				pushArgs,
			},
		},
		{
			Name:        "generate",
			Alias:       "g",
			Description: "Generate the commit message file",
			Flags: []FlagInfo{
				{Name: "watch", Short: "w", Description: "Regenerate whenever the working tree changes"},
			},
		},
		{
			Name:        "push",
			Alias:       "p",
			Description: "Push the current branch",
			Flags:       []FlagInfo{pushArgs},
		},
		{
			Name:        "add",
			Alias:       "a",
			Description: "Stage everything except the excluded paths",
			Flags: []FlagInfo{
				{
					Name:          "exclude",
					Short:         "e",
					Description:   "Path to leave unstaged, repeatable",
					HasValue:      true,
					ValueHint:     "PATH",
					ValuesCommand: "files",
				},
			},
			ArgsCommand: "files",
		},
		{
			Name:        "switch",
			Alias:       "s",
			Description: "Pick a branch and switch to it",
			Flags: []FlagInfo{
				{Name: "stash", Short: "s", Description: "Stash changes before switching"},
				{Name: "apply-stash", Short: "a", Description: "Pop the stash after switching"},
			},
		},
		{
			Name:        "status",
			Description: "Show classified status entries",
			Flags: []FlagInfo{
				{Name: "icons", Description: "Show file type icons"},
			},
		},
		{
			Name:        "files",
			Description: "List changed files, one per line",
		},
		{
			Name:        "completion",
			Description: "Generate shell completion script",
			Args:        Shells(),
		},
	}
}
