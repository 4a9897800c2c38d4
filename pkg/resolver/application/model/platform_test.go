package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatform(t *testing.T) {
	for input, want := range map[string]Platform{
		"linux":   PlatformLinux,
		"windows": PlatformWindows,
		"mac":     PlatformMac,
		"darwin":  PlatformMac,
	} {
		got, err := ParsePlatform(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParsePlatform("plan9")
	assert.Error(t, err)
}

func TestPlatformPaths(t *testing.T) {
	paths := PlatformPaths{Linux: "/mnt/a", Windows: `P:\a`}

	assert.Equal(t, "/mnt/a", paths.For(PlatformLinux))
	assert.Equal(t, `P:\a`, paths.For(PlatformWindows))
	assert.Empty(t, paths.For(PlatformMac))

	assert.Equal(t, "linux_path", PlatformLinux.PathField())
	assert.Equal(t, "windows_path", PlatformWindows.PathField())
	assert.Equal(t, "mac_path", PlatformMac.PathField())
}
