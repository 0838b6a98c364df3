// Package buildinfo holds the build metadata of the cgc binary. The linker
// injects values into cmd/cgc/main.go, which forwards them with Set.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

const (
	unsetCommit = "none"
	unsetValue  = "unknown"
)

var (
	version = "dev"
	commit  = unsetCommit
	date    = unsetValue
	builtBy = unsetValue
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Set stores the build metadata received from linker-injected variables.
func Set(v, c, d, b string) {
	version = v
	commit = c
	date = d
	builtBy = b
}

// Version returns the build version string.
func Version() string { return version }

// Commit returns the build commit hash.
func Commit() string { return commit }

// Date returns the build date string.
func Date() string { return date }

// BuiltBy returns the build agent string.
func BuiltBy() string { return builtBy }

// Summary is the line printed by --version.
func Summary() string {
	return fmt.Sprintf("%s (commit %s, built %s by %s)", version, commit, date, builtBy)
}

// Enrich fills the values the linker left unset from the module build info:
// commit and date from the VCS stamp, builtBy from the Go version.
func Enrich() {
	if commit != unsetCommit && date != unsetValue && builtBy != unsetValue {
		return
	}

	info, ok := readBuildInfo()
	if !ok {
		return
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if commit == unsetCommit {
				commit = setting.Value
			}
		case "vcs.time":
			if date == unsetValue {
				date = setting.Value
			}
		}
	}

	if builtBy == unsetValue {
		builtBy = info.GoVersion
	}
}
