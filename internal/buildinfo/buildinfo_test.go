package buildinfo

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stamp(t *testing.T, version, commit string, settings ...debug.BuildSetting) {
	t.Helper()
	oldV, oldC, oldRead := Version, Commit, readBuildInfo
	t.Cleanup(func() { Version, Commit, readBuildInfo = oldV, oldC, oldRead })
	Version, Commit = version, commit
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: settings}, true
	}
}

func TestShortPrefersVersion(t *testing.T) {
	stamp(t, "v1.2.0", "0123456789abcdef")
	assert.Equal(t, "v1.2.0", Short())
}

func TestShortFallsBackToCommit(t *testing.T) {
	stamp(t, "dev", "0123456789abcdef")
	assert.Equal(t, "0123456789ab", Short())
}

func TestShortUsesVCSRevision(t *testing.T) {
	stamp(t, "dev", "unknown", debug.BuildSetting{Key: "vcs.revision", Value: "feedface"})
	assert.Equal(t, "feedface", Short())
}

func TestShortDev(t *testing.T) {
	stamp(t, "", "")
	assert.Equal(t, "dev", Short())
}

func TestFields(t *testing.T) {
	stamp(t, "v0.1.0", "abc")
	f := Fields()
	if assert.Len(t, f, 3) {
		assert.Equal(t, "version", f[0].Key)
		assert.Equal(t, "v0.1.0", f[0].String)
		assert.Equal(t, "abc", f[1].String)
	}
}
