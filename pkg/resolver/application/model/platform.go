package model

import "fmt"

type Platform string

const (
	PlatformLinux   Platform = "linux"
	PlatformWindows Platform = "windows"
	PlatformMac     Platform = "mac"
)

func ParsePlatform(s string) (Platform, error) {
	switch s {
	case "linux":
		return PlatformLinux, nil
	case "windows":
		return PlatformWindows, nil
	case "mac", "darwin":
		return PlatformMac, nil
	}
	return "", fmt.Errorf("unsupported platform %q", s)
}

// PathField returns the tracking service field holding paths for the platform.
func (p Platform) PathField() string {
	switch p {
	case PlatformWindows:
		return "windows_path"
	case PlatformMac:
		return "mac_path"
	default:
		return "linux_path"
	}
}

type PlatformPaths struct {
	Linux   string
	Windows string
	Mac     string
}

func (paths PlatformPaths) For(platform Platform) string {
	switch platform {
	case PlatformLinux:
		return paths.Linux
	case PlatformWindows:
		return paths.Windows
	case PlatformMac:
		return paths.Mac
	}
	return ""
}
