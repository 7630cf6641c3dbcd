package settings

import (
	"time"

	"github.com/benfogle/crossbuild/pkg/triple"
)

// Config is the validated build configuration produced by a Resolver. It
// is immutable once constructed: downstream consumers only read it, and
// re-configuration always builds a new Config rather than mutating one in
// place, so a published Config is safe for concurrent readers.
type Config struct {
	// Host is the parsed host triple, or nil for a native build.
	Host *triple.HostTriple `json:"host,omitempty"`

	// HostRaw is the host value exactly as it appeared in the settings
	// mapping ("native" when absent).
	HostRaw string `json:"host_raw" validate:"required"`

	// HostPrefix is the host Python installation prefix, empty if unset.
	HostPrefix string `json:"host_prefix,omitempty"`

	// Sysroot is the host filesystem root on the build machine, empty if
	// unset. Accepted as an opaque string; existence checks are a
	// downstream concern.
	Sysroot string `json:"sysroot,omitempty"`

	// PlatformTag overrides platform tag detection; "auto" by default.
	PlatformTag string `json:"platform_tag" validate:"required"`

	// IncludeDirs is the compiler include search path.
	IncludeDirs []string `json:"include_dirs"`

	// LibDirs is the linker library search path.
	LibDirs []string `json:"lib_dirs"`

	// CC is the C compiler argv override, nil if unset.
	CC []string `json:"cc,omitempty"`

	// CXX is the C++ compiler argv override, nil if unset.
	CXX []string `json:"c++,omitempty"`

	// CFlags, CXXFlags and LDFlags are pre-split flag tokens.
	CFlags   []string `json:"cflags"`
	CXXFlags []string `json:"cxxflags"`
	LDFlags  []string `json:"ldflags"`

	// Extra holds every unrecognized settings key untouched, so other
	// consumers sharing the mapping can still read their keys.
	Extra map[string]any `json:"extra,omitempty"`

	// ResolvedAt is when this configuration was resolved.
	ResolvedAt time.Time `json:"resolved_at"`
}

// IsCrossCompiling reports whether this configuration targets a host other
// than the build machine's native environment. Derived, never stored: a
// Config is cross-compiling exactly when a host triple was resolved.
func (c *Config) IsCrossCompiling() bool {
	return c.Host != nil
}

// HostString returns the canonical text of the host triple, or the native
// sentinel for native builds.
func (c *Config) HostString() string {
	if c.Host == nil {
		return NativeHost
	}
	return c.Host.String()
}
