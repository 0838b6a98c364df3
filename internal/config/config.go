// Package config loads cgc settings from YAML, git config and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chmouel/cgc/internal/status"
	"github.com/chmouel/cgc/internal/theme"
	"github.com/chmouel/cgc/internal/utils"
	"gopkg.in/yaml.v3"
)

// Picker modes.
const (
	PickerAuto   = "auto"
	PickerTUI    = "tui"
	PickerFzf    = "fzf"
	PickerPrompt = "prompt"
)

// AppConfig defines the cgc settings.
type AppConfig struct {
	CommitMessageFile string
	CommitignoreFile  string
	GitignoreFile     string
	StatusRules       string
	HeaderTemplate    string
	CommitTypes       []string
	PushArgs          []string
	ExcludeScaffold   bool
	Picker            string
	Theme             string
	DebugLog          string
	ShowIcons         bool
	WatchDebounceMs   int
}

// DefaultConfig returns the defaults used when nothing is configured.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		CommitMessageFile: "commit_message.md",
		CommitignoreFile:  ".commitignore",
		GitignoreFile:     ".gitignore",
		StatusRules:       status.StagedRulesName,
		HeaderTemplate:    "[{count}]",
		CommitTypes:       []string{"chore", "feat", "fix", "test"},
		PushArgs:          []string{},
		Picker:            PickerAuto,
		WatchDebounceMs:   600,
	}
}

// Rules returns the status rule set selected by StatusRules.
func (c *AppConfig) Rules() status.Rules {
	r, _ := status.RulesByName(c.StatusRules)
	return r
}

func normalizeList(value any, split func(string) []string) []string {
	if value == nil {
		return []string{}
	}

	switch v := value.(type) {
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return []string{}
		}
		return split(text)
	case []any:
		items := []string{}
		for _, item := range v {
			if item == nil {
				continue
			}
			text := strings.TrimSpace(fmt.Sprintf("%v", item))
			if text != "" {
				items = append(items, text)
			}
		}
		return items
	case []string:
		items := []string{}
		for _, item := range v {
			if text := strings.TrimSpace(item); text != "" {
				items = append(items, text)
			}
		}
		return items
	}
	return []string{}
}

// normalizeArgsList splits strings on whitespace, for argument lists.
func normalizeArgsList(value any) []string {
	return normalizeList(value, strings.Fields)
}

// normalizeNameList splits strings on commas or whitespace, for name lists.
func normalizeNameList(value any) []string {
	return normalizeList(value, func(s string) []string {
		return strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
	})
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

func stringValue(data map[string]any, key string) (string, bool) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return "", false
	}
	var text string
	switch v := raw.(type) {
	case string:
		text = v
	case []any:
		// repeated keys: last one wins
		if len(v) == 0 {
			return "", false
		}
		text = fmt.Sprintf("%v", v[len(v)-1])
	default:
		text = fmt.Sprintf("%v", v)
	}
	text = strings.TrimSpace(text)
	return text, text != ""
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()
	cfg.apply(data)
	return cfg
}

// apply overlays the keys present in data onto c.
func (c *AppConfig) apply(data map[string]any) {
	if v, ok := stringValue(data, "commit_message_file"); ok {
		c.CommitMessageFile = v
	}
	if v, ok := stringValue(data, "commitignore_file"); ok {
		c.CommitignoreFile = v
	}
	if v, ok := stringValue(data, "gitignore_file"); ok {
		c.GitignoreFile = v
	}
	if v, ok := stringValue(data, "status_rules"); ok {
		if r, known := status.RulesByName(v); known {
			c.StatusRules = r.Name
		}
	}
	if v, ok := stringValue(data, "header_template"); ok {
		c.HeaderTemplate = v
	}
	if raw, ok := data["commit_types"]; ok {
		if types := normalizeNameList(raw); len(types) > 0 {
			c.CommitTypes = types
		}
	}
	if raw, ok := data["push_args"]; ok {
		c.PushArgs = normalizeArgsList(raw)
	}
	if raw, ok := data["exclude_scaffold"]; ok {
		c.ExcludeScaffold = coerceBool(raw, c.ExcludeScaffold)
	}
	if v, ok := stringValue(data, "picker"); ok {
		switch v = strings.ToLower(v); v {
		case PickerAuto, PickerTUI, PickerFzf, PickerPrompt:
			c.Picker = v
		}
	}
	if v, ok := stringValue(data, "theme"); ok {
		if name := theme.Normalize(v); name != "" {
			c.Theme = name
		}
	}
	if v, ok := stringValue(data, "debug_log"); ok {
		c.DebugLog = v
	}
	if raw, ok := data["show_icons"]; ok {
		c.ShowIcons = coerceBool(raw, c.ShowIcons)
	}
	if raw, ok := data["watch_debounce_ms"]; ok {
		if ms := coerceInt(raw, c.WatchDebounceMs); ms > 0 {
			c.WatchDebounceMs = ms
		}
	}
}

// getConfigDir is swapped in tests.
var getConfigDir = func() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// ConfigDir returns the directory holding config.yaml.
func ConfigDir() string {
	return filepath.Clean(filepath.Join(getConfigDir(), "cgc"))
}

// LoadConfig reads the YAML configuration. An empty configPath looks for
// config.yaml then config.yml in ConfigDir. Missing files yield defaults.
func LoadConfig(configPath string) (*AppConfig, error) {
	var paths []string
	if configPath != "" {
		expanded, err := utils.ExpandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{expanded}
	} else {
		paths = []string{
			filepath.Join(ConfigDir(), "config.yaml"),
			filepath.Join(ConfigDir(), "config.yml"),
		}
	}

	for _, path := range paths {
		data, err := os.ReadFile(path) //nolint:gosec
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && configPath == "" {
				continue
			}
			return DefaultConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return parseConfig(yamlData), nil
	}

	return DefaultConfig(), nil
}

// FileError reports an unreadable or invalid configuration file. Load still
// returns usable settings alongside it.
type FileError struct {
	Err error
}

func (e *FileError) Error() string { return e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// LoadOptions gathers every configuration source.
type LoadOptions struct {
	ConfigFile string
	// RepoPath enables the local git config overlay when set.
	RepoPath  string
	Overrides []string
}

// Load reads YAML, then global and local git config, then CLI overrides,
// later sources winning. A broken YAML file is reported alongside the
// defaults so callers can warn and continue.
func Load(opts LoadOptions) (*AppConfig, error) {
	cfg, loadErr := LoadConfig(opts.ConfigFile)

	if err := cfg.ApplyGitConfig(opts.RepoPath); err != nil {
		return cfg, err
	}
	if len(opts.Overrides) > 0 {
		if err := cfg.ApplyCLIOverrides(opts.Overrides); err != nil {
			return cfg, fmt.Errorf("error applying config overrides: %w", err)
		}
	}
	if cfg.Theme == "" {
		cfg.Theme = theme.Detect()
	}
	if cfg.DebugLog != "" {
		if expanded, err := utils.ExpandPath(cfg.DebugLog); err == nil {
			cfg.DebugLog = expanded
		}
	}
	if loadErr != nil {
		return cfg, &FileError{Err: loadErr}
	}
	return cfg, nil
}

// ApplyGitConfig overlays cgc.* keys from global git config, then from the
// repository at repoPath when given.
func (c *AppConfig) ApplyGitConfig(repoPath string) error {
	global, err := loadGitConfig(true, "")
	if err != nil {
		return fmt.Errorf("failed to read global git config: %w", err)
	}
	c.apply(global)

	if repoPath == "" {
		return nil
	}
	local, err := loadGitConfig(false, repoPath)
	if err != nil {
		return fmt.Errorf("failed to read local git config: %w", err)
	}
	c.apply(local)
	return nil
}

// ApplyCLIOverrides overlays --config=cgc.key=value entries.
func (c *AppConfig) ApplyCLIOverrides(overrides []string) error {
	data, err := parseCLIConfigOverrides(overrides)
	if err != nil {
		return err
	}
	c.apply(data)
	return nil
}
