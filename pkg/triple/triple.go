package triple

import (
	"runtime"
	"strings"
)

// Unknown is the sentinel used for any triple field that could not be
// determined. Fields are never empty; indeterminate fields hold this value.
const Unknown = "unknown"

// HostTriple is the structured form of a host triple. Values are immutable
// once constructed: Parse and Native return them by value and nothing in
// this package mutates a triple after construction.
type HostTriple struct {
	// Arch is the CPU architecture (e.g. "x86_64", "aarch64", "arm").
	Arch string `json:"arch" validate:"required"`

	// Sub is the optional sub-architecture variant fused onto Arch in the
	// textual form (e.g. "v7" in "armv7"). Empty when absent.
	Sub string `json:"sub,omitempty"`

	// Vendor is the vendor field (e.g. "apple", "pc", or "unknown").
	Vendor string `json:"vendor" validate:"required"`

	// Sys is the operating system or environment (e.g. "linux", "darwin").
	Sys string `json:"sys" validate:"required"`

	// ABI is the ABI/environment field (e.g. "gnu", "gnueabihf", "musl").
	ABI string `json:"abi" validate:"required"`
}

// String returns the canonical text form <arch><sub>-<vendor>-<sys>-<abi>.
// Indeterminate fields render as "unknown", so the result always has four
// components and round-trips through Parse.
func (t HostTriple) String() string {
	return strings.Join([]string{t.Arch + t.Sub, t.Vendor, t.Sys, t.ABI}, "-")
}

// IsFullyKnown reports whether every field (Sub excluded, it is optional)
// holds a recognized value rather than the "unknown" sentinel.
func (t HostTriple) IsFullyKnown() bool {
	return t.Arch != Unknown && t.Vendor != Unknown && t.Sys != Unknown && t.ABI != Unknown
}

// Normalized returns a copy with alias fields rewritten to their canonical
// spellings (e.g. arch "amd64" -> "x86_64", sys "macos" -> "darwin").
// Unrecognized values pass through untouched. Parse never normalizes; this
// is an explicit opt-in so parsed triples stay faithful to their input.
func (t HostTriple) Normalized() HostTriple {
	if canonical, ok := archAliases[t.Arch]; ok {
		t.Arch = canonical
	}
	if canonical, ok := sysAliases[t.Sys]; ok {
		t.Sys = canonical
	}
	return t
}

// Native returns the triple of the machine this process is running on,
// derived from the Go runtime. Vendor and ABI are best-effort: only
// platforms with a conventional vendor ("apple", "pc") get one, everything
// else is "unknown".
func Native() HostTriple {
	t := HostTriple{
		Arch:   runtime.GOARCH,
		Vendor: Unknown,
		Sys:    runtime.GOOS,
		ABI:    Unknown,
	}
	if canonical, ok := archAliases[t.Arch]; ok {
		t.Arch = canonical
	}
	switch runtime.GOOS {
	case "darwin":
		t.Vendor = "apple"
	case "windows":
		t.Vendor = "pc"
	}
	return t
}
