package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chmouel/cgc/internal/cli"
	"github.com/chmouel/cgc/internal/config"
	"github.com/chmouel/cgc/internal/git"
	"github.com/chmouel/cgc/internal/log"
	"github.com/chmouel/cgc/internal/prompt"
	"github.com/chmouel/cgc/internal/theme"
	"github.com/chmouel/cgc/internal/utils"
	urfavecli "github.com/urfave/cli/v3"
)

// Swapped in tests.
var (
	findProjectRoot = git.FindProjectRoot
	loadConfig      = config.Load
	getwd           = os.Getwd
	newRunner       = func() git.Runner { return git.NewExecRunner("") }
	newPrompter     = prompt.New
)

// session holds everything a subcommand needs once the repository and the
// configuration are resolved.
type session struct {
	cfg    *config.AppConfig
	root   string
	cwd    string // where relative paths given on the command line start
	git    *git.Service
	out    *cli.Output // progress and errors
	stdout *cli.Output // listings meant for pipes
	in     io.Reader
}

func streams(cmd *urfavecli.Command) (io.Reader, io.Writer, io.Writer) {
	root := cmd.Root()
	var (
		in     io.Reader = os.Stdin
		stdout io.Writer = os.Stdout
		stderr io.Writer = os.Stderr
	)
	if root.Reader != nil {
		in = root.Reader
	}
	if root.Writer != nil {
		stdout = root.Writer
	}
	if root.ErrWriter != nil {
		stderr = root.ErrWriter
	}
	return in, stdout, stderr
}

func setupDebugLog(path string, stderr io.Writer) {
	if expanded, err := utils.ExpandPath(path); err == nil {
		path = expanded
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(stderr, "Error opening debug log file %q: %v\n", path, err)
	}
}

// newSession resolves the repository, loads the configuration and builds the
// git service for cmd.
func newSession(cmd *urfavecli.Command) (*session, error) {
	in, stdout, stderr := streams(cmd)
	verbose := cmd.Bool("verbose")

	// Set up debug logging before loading config
	debugLog := cmd.String("debug-log")
	if debugLog != "" {
		setupDebugLog(debugLog, stderr)
	}
	if verbose {
		log.SetEcho(stderr)
	}

	wd, wdErr := getwd()
	start := cmd.String("repo")
	if start == "" {
		if wdErr != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", wdErr)
		}
		start = wd
	} else if expanded, err := utils.ExpandPath(start); err == nil {
		start = expanded
	}
	root, err := findProjectRoot(start)
	if err != nil {
		return nil, err
	}
	if wdErr != nil {
		wd = root
	}

	cfg, err := loadCLIConfig(cmd.String("config-file"), root, cmd.StringSlice("config"), stderr)
	if err != nil {
		return nil, err
	}

	// If debug log wasn't set via flag, check if it's in the config
	if debugLog == "" {
		if cfg.DebugLog != "" {
			setupDebugLog(cfg.DebugLog, stderr)
		} else {
			_ = log.SetFile("")
		}
	}

	if err := applyThemeConfig(cfg, cmd.String("theme")); err != nil {
		return nil, err
	}
	thm := theme.GetTheme(cfg.Theme)

	s := &session{
		cfg:    cfg,
		root:   root,
		cwd:    wd,
		out:    cli.NewOutput(stderr, thm, verbose),
		stdout: cli.NewOutput(stdout, thm, verbose),
		in:     in,
	}
	s.git = git.NewService(newRunner(), root, git.WithNotify(s.out.Notify))
	log.Printf("session: root=%s rules=%s picker=%s", root, cfg.StatusRules, cfg.Picker)
	return s, nil
}

func (s *session) prompter() prompt.Prompter {
	return newPrompter(s.cfg.Picker, s.in, s.out.W, theme.GetTheme(s.cfg.Theme))
}

// repoPaths rewrites command line paths, relative to the current directory,
// into paths relative to the repository root.
func (s *session) repoPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(s.cwd, p)
		}
		rel, err := filepath.Rel(s.root, abs)
		if err != nil {
			out = append(out, p)
			continue
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func (s *session) close() {
	_ = log.Close()
}

// loadCLIConfig loads the configuration for repoPath. A broken config file is
// reported on stderr and the remaining sources still apply.
func loadCLIConfig(configFile, repoPath string, overrides []string, stderr io.Writer) (*config.AppConfig, error) {
	cfg, err := loadConfig(config.LoadOptions{
		ConfigFile: configFile,
		RepoPath:   repoPath,
		Overrides:  overrides,
	})
	var fileErr *config.FileError
	if errors.As(err, &fileErr) {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyThemeConfig applies the --theme flag, rejecting unknown names.
func applyThemeConfig(cfg *config.AppConfig, themeName string) error {
	if themeName == "" {
		return nil
	}
	normalized := theme.Normalize(themeName)
	if normalized == "" {
		return fmt.Errorf("unknown theme %q, available: %s", themeName, strings.Join(theme.AvailableThemes(), ", "))
	}
	cfg.Theme = normalized
	return nil
}
