package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform represents a target platform with OS and Architecture.
// Both OS and Arch can be "any" to match any platform
// or a specific value like "linux", "windows", "amd64", etc.
type Platform struct {
	OS   string `yaml:"os" json:"os"`
	Arch string `yaml:"arch" json:"arch"`
}

// currentPlatformFunc is swapped in tests to fake the running platform.
var currentPlatformFunc = detectPlatform

func detectPlatform() Platform {
	goos := runtime.GOOS
	if goos == "" {
		goos = "unknown"
	}

	goarch := runtime.GOARCH
	if goarch == "" {
		goarch = "unknown"
	}

	return Platform{
		OS:   NormalizeOS(goos),
		Arch: NormalizeArch(goarch),
	}
}

// CurrentPlatform returns the current platform (OS and architecture)
func CurrentPlatform() Platform {
	return currentPlatformFunc()
}

// Detect returns the normalized OS and architecture of the running system.
func Detect() (string, string) {
	p := CurrentPlatform()
	return p.OS, p.Arch
}

// Matches checks if this platform matches the target platform
// "any" is a wildcard that matches any value
func (p Platform) Matches(target Platform) bool {
	return (p.OS == AnyOS || target.OS == AnyOS || p.OS == target.OS) &&
		(p.Arch == AnyArch || target.Arch == AnyArch || p.Arch == target.Arch)
}

// String returns a string representation of the platform
func (p Platform) String() string {
	return fmt.Sprintf("%s/%s", p.OS, p.Arch)
}

// NormalizeOS normalizes OS names to a common format
func NormalizeOS(os string) string {
	os = strings.ToLower(strings.TrimSpace(os))
	switch os {
	case "darwin", "macos", "osx":
		return OSMacOS
	case "win", "windows":
		return OSWindows
	default:
		return os
	}
}

// NormalizeArch normalizes architecture names to a common format
func NormalizeArch(arch string) string {
	arch = strings.ToLower(strings.TrimSpace(arch))
	switch {
	case arch == "x86_64" || arch == "x64" || arch == "amd64":
		return ArchAMD64
	case arch == "x86" || arch == "i386" || arch == "i486" || arch == "i586" || arch == "i686":
		return Arch386
	case arch == "arm64" || arch == "aarch64":
		return ArchARM64
	case strings.HasPrefix(arch, "armv") || arch == "arm":
		return ArchARM
	default:
		return arch
	}
}

// IsCompatible checks if the current platform is compatible with the target platform
func IsCompatible(targetOS, targetArch string) bool {
	current := CurrentPlatform()
	targetOS = NormalizeOS(targetOS)
	targetArch = NormalizeArch(targetArch)

	osMatch := targetOS == AnyOS || targetOS == "" || current.OS == targetOS
	archMatch := targetArch == AnyArch || targetArch == "" || current.Arch == targetArch

	return osMatch && archMatch
}
