package version_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.codecgarden.dev/qs/version"
)

func TestGoRuntimeFields(t *testing.T) {
	t.Parallel()

	assert.Equal(t, runtime.Version(), version.GoVersion)
	assert.Equal(t, runtime.GOOS, version.GoOS)
	assert.Equal(t, runtime.GOARCH, version.GoArch)
}

func TestRevisionIsNeverEmpty(t *testing.T) {
	t.Parallel()

	// getRevision always falls back to "unknown" when build info carries
	// no vcs.revision setting, so Revision is never the empty string.
	assert.NotEmpty(t, version.Revision)
}

func TestLdflagVarsDefaultEmpty(t *testing.T) {
	t.Parallel()

	// These are populated via -ldflags at release build time; under go
	// test they are left at their zero value.
	assert.Empty(t, version.Version)
	assert.Empty(t, version.Branch)
	assert.Empty(t, version.BuildUser)
	assert.Empty(t, version.BuildDate)
}
