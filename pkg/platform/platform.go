// Package platform reports the live environment facts that package
// declarations are filtered against: hostname, CPU architecture and OS.
//
// Architecture and OS values use the names people write in declarations
// (x86_64, aarch64, linux, macos). The Go toolchain spellings (amd64,
// arm64, darwin) are accepted as aliases when matching.
package platform

import (
	"os"
	"runtime"
)

// Facts describes the environment a declaration is evaluated in
type Facts interface {
	Hostname() (string, error)
	Arch() string
	OS() string
}

// Canonical architecture names
const (
	ArchX86_64  = "x86_64"
	ArchAarch64 = "aarch64"
	ArchX86     = "x86"
	ArchArm     = "arm"
)

// Canonical OS names
const (
	OSLinux   = "linux"
	OSMacOS   = "macos"
	OSWindows = "windows"
)

var archNames = map[string]string{
	"amd64": ArchX86_64,
	"arm64": ArchAarch64,
	"386":   ArchX86,
	"arm":   ArchArm,
}

var osNames = map[string]string{
	"darwin": OSMacOS,
}

// Host reads facts from the running machine
type Host struct{}

// Hostname returns the kernel-reported hostname
func (Host) Hostname() (string, error) {
	return os.Hostname()
}

// Arch returns the canonical architecture name
func (Host) Arch() string {
	return CanonicalArch(runtime.GOARCH)
}

// OS returns the canonical OS name
func (Host) OS() string {
	return CanonicalOS(runtime.GOOS)
}

// CanonicalArch maps a Go architecture name to its declaration spelling
func CanonicalArch(goarch string) string {
	if name, ok := archNames[goarch]; ok {
		return name
	}
	return goarch
}

// CanonicalOS maps a Go OS name to its declaration spelling
func CanonicalOS(goos string) string {
	if name, ok := osNames[goos]; ok {
		return name
	}
	return goos
}

// ArchAllowed reports whether the live arch is a member of allowed
func ArchAllowed(allowed []string, live string) bool {
	live = CanonicalArch(live)
	for _, a := range allowed {
		if CanonicalArch(a) == live {
			return true
		}
	}
	return false
}

// OSAllowed reports whether the live OS is a member of allowed
func OSAllowed(allowed []string, live string) bool {
	live = CanonicalOS(live)
	for _, o := range allowed {
		if CanonicalOS(o) == live {
			return true
		}
	}
	return false
}

// Static is a fixed set of facts, used by tests and dry evaluations
type Static struct {
	Host         string
	HostErr      error
	Architecture string
	System       string
}

func (s Static) Hostname() (string, error) {
	return s.Host, s.HostErr
}

func (s Static) Arch() string {
	return CanonicalArch(s.Architecture)
}

func (s Static) OS() string {
	return CanonicalOS(s.System)
}
