// Package buildinfo carries the version stamped in with -ldflags, falling
// back to the VCS revision recorded by the Go toolchain.
package buildinfo

import (
	"runtime/debug"

	"go.uber.org/zap"
)

// Set with -ldflags "-X coverflow/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var readBuildInfo = debug.ReadBuildInfo

// Short returns the most specific identifier available: a release version,
// then a commit, then "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c := commit(); c != "" {
		return c
	}
	return "dev"
}

// Fields returns the build identifiers as log fields.
func Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", Version),
		zap.String("commit", commit()),
		zap.String("date", Date),
	}
}

func commit() string {
	if Commit != "" && Commit != "unknown" {
		return shorten(Commit)
	}
	bi, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return shorten(s.Value)
		}
	}
	return ""
}

func shorten(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
