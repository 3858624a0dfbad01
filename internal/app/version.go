package app

import (
	"fmt"
	"runtime/debug"
)

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/heartmarshall/concept-clarity/internal/app.Version=1.0.0"
// When Commit or BuildTime are left unset, the VCS stamp that `go build`
// embeds in the binary is used instead.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string for startup logs, the
// health endpoint and `clarity version`.
func BuildVersion() string {
	commit, built := stamp(debug.ReadBuildInfo)
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, commit, built)
}

// stamp resolves commit and build time, preferring ldflags values.
func stamp(read func() (*debug.BuildInfo, bool)) (commit, built string) {
	commit, built = Commit, BuildTime
	if commit != "unknown" && built != "unknown" {
		return commit, built
	}

	info, ok := read()
	if !ok {
		return commit, built
	}
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "unknown" && s.Value != "" {
				commit = s.Value
				if len(commit) > 12 {
					commit = commit[:12]
				}
			}
		case "vcs.time":
			if built == "unknown" && s.Value != "" {
				built = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty && commit != "unknown" && Commit == "unknown" {
		commit += "-dirty"
	}
	return commit, built
}
