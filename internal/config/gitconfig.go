package config

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/chmouel/cgc/internal/git"
)

const gitConfigPrefix = "cgc."

// knownKeys maps the separator-free lower case form of each key, which is
// what git reports for camelCase names, to its canonical name.
var knownKeys = func() map[string]string {
	keys := []string{
		"commit_message_file",
		"commitignore_file",
		"gitignore_file",
		"status_rules",
		"header_template",
		"commit_types",
		"push_args",
		"exclude_scaffold",
		"picker",
		"theme",
		"debug_log",
		"show_icons",
		"watch_debounce_ms",
	}
	m := make(map[string]string, len(keys))
	for _, k := range keys {
		m[strings.ReplaceAll(k, "_", "")] = k
	}
	return m
}()

// normalizeKey accepts snake_case, kebab-case and camelCase spellings.
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "-", "_")
	if canonical, ok := knownKeys[strings.ReplaceAll(key, "_", "")]; ok {
		return canonical
	}
	return key
}

// gitConfigMock allows tests to mock git config output.
var gitConfigMock func(args []string, repoPath string) (string, error)

// runGitConfig executes git config and returns its raw output.
func runGitConfig(args []string, repoPath string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(args, repoPath)
	}

	out, err := git.NewExecRunner("").Run(context.Background(), repoPath, args...)
	if err != nil {
		// exit code 1 means no matching key
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return out, nil
}

// parseGitConfigOutput parses `git config --get-regexp` output into a
// multi-value map keyed by canonical key.
// Input format: "cgc.theme nord\ncgc.push-args --force-with-lease\n"
func parseGitConfigOutput(output string) map[string][]string {
	configMap := make(map[string][]string)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// values may contain spaces; a key without value is a boolean true
		name, value, found := strings.Cut(line, " ")
		if !found {
			value = "true"
		}
		if !strings.HasPrefix(strings.ToLower(name), gitConfigPrefix) {
			continue
		}
		key := normalizeKey(name[len(gitConfigPrefix):])
		if key == "" {
			continue
		}
		configMap[key] = append(configMap[key], value)
	}
	return configMap
}

// convertGitConfig turns multi-value git config into the shape apply expects.
func convertGitConfig(gitCfg map[string][]string) map[string]any {
	result := make(map[string]any)
	for key, values := range gitCfg {
		switch len(values) {
		case 0:
			continue
		case 1:
			result[key] = values[0]
		default:
			anySlice := make([]any, len(values))
			for i, v := range values {
				anySlice[i] = v
			}
			result[key] = anySlice
		}
	}
	return result
}

// loadGitConfig reads cgc.* keys from the global or the local git config.
func loadGitConfig(globalOnly bool, repoPath string) (map[string]any, error) {
	args := []string{"config"}
	if globalOnly {
		args = append(args, "--global")
	} else {
		args = append(args, "--local")
	}
	args = append(args, "--get-regexp", `^cgc\.`)

	output, err := runGitConfig(args, repoPath)
	if err != nil {
		return nil, err
	}
	return convertGitConfig(parseGitConfigOutput(output)), nil
}

// parseCLIConfigOverrides parses --config=cgc.key=value entries. Repeating a
// key builds a list.
func parseCLIConfigOverrides(overrides []string) (map[string]any, error) {
	values := make(map[string][]string)
	for _, override := range overrides {
		fullKey, value, found := strings.Cut(override, "=")
		if !found {
			return nil, fmt.Errorf("invalid config override: %q, expected format: cgc.key=value (note: use = not space)", override)
		}
		if !strings.HasPrefix(fullKey, gitConfigPrefix) {
			return nil, fmt.Errorf("config override key must start with 'cgc.': %q", fullKey)
		}
		key := normalizeKey(strings.TrimPrefix(fullKey, gitConfigPrefix))
		if key == "" {
			return nil, fmt.Errorf("empty config key in override: %q", override)
		}
		values[key] = append(values[key], value)
	}
	return convertGitConfig(values), nil
}
