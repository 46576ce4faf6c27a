// Package version carries the build metadata of the gitrewind binary.
package version

import "runtime/debug"

// Build metadata, overridden at link time with -ldflags "-X".
var (
	Version = "dev"
	Commit  = "<unknown>"
	Date    = "<unknown>"
)

const (
	develVersion  = "(devel)"
	settingCommit = "vcs.revision"
	settingDate   = "vcs.time"
)

// InitBinaryVersion fills metadata left unset by the linker from the build
// info embedded by the Go toolchain.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	apply(info)
}

func apply(info *debug.BuildInfo) {
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != develVersion {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case settingCommit:
			if Commit == "<unknown>" && setting.Value != "" {
				Commit = setting.Value
			}
		case settingDate:
			if Date == "<unknown>" && setting.Value != "" {
				Date = setting.Value
			}
		}
	}
}

// String returns the one-line version banner.
func String() string {
	return "gitrewind " + Version + " (commit: " + Commit + ", built: " + Date + ")"
}
