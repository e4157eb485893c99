package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X scry/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String is the version with the commit and build date when known. Without
// ldflags the commit falls back to the VCS revision stamped by the Go tool.
func String() string {
	base := Version
	commit := Commit
	if commit == "" {
		commit = vcsRevision()
	}
	if commit != "" {
		base += fmt.Sprintf(" (%s)", commit)
	}
	if Date != "" {
		base += " " + Date
	}
	return base
}

// Runtime describes the toolchain and platform, for bug reports.
func Runtime() string {
	return fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
