package settings

import "strings"

// Settings is the flat mapping exchanged between build frontends and
// backends. Values are strings for scalar keys and []string (or []any of
// strings, as produced by JSON/YAML decoding) for list keys.
type Settings map[string]any

// NativeHost is the sentinel host value meaning "no cross-compilation".
const NativeHost = "native"

// Recognized settings keys.
const (
	KeyHost        = "host"
	KeyHostPrefix  = "host_prefix"
	KeySysroot     = "sysroot"
	KeyPlatformTag = "platform_tag"
	KeyIncludeDirs = "include_dirs"
	KeyLibDirs     = "lib_dirs"
	KeyCC          = "cc"
	KeyCXX         = "c++"
	KeyCFlags      = "cflags"
	KeyCXXFlags    = "cxxflags"
	KeyLDFlags     = "ldflags"
)

// DefaultPlatformTag selects automatic platform tag detection downstream.
const DefaultPlatformTag = "auto"

// scalarKeys are the recognized keys whose value must be a single string.
var scalarKeys = map[string]bool{
	KeyHost:        true,
	KeyHostPrefix:  true,
	KeySysroot:     true,
	KeyPlatformTag: true,
}

// listKeys are the recognized keys whose value must be a sequence of
// already shell-split string tokens. Handing them a bare scalar string is
// a frequent integration bug and is rejected outright.
var listKeys = map[string]bool{
	KeyIncludeDirs: true,
	KeyLibDirs:     true,
	KeyCC:          true,
	KeyCXX:         true,
	KeyCFlags:      true,
	KeyCXXFlags:    true,
	KeyLDFlags:     true,
}

// IsRecognizedKey reports whether key is part of the settings contract.
func IsRecognizedKey(key string) bool {
	return scalarKeys[key] || listKeys[key]
}

// IsNamespacedKey reports whether key uses the "<backend>:<key>" form that
// backend-specific settings adopt to avoid collisions (e.g.
// "meson:cross_file"). Namespaced keys pass through without a warning.
func IsNamespacedKey(key string) bool {
	return strings.Contains(key, ":")
}

// IsCrossCompiling is the exact cross-compiling predicate over a raw
// settings mapping: true iff the "host" key is present and differs from
// the native sentinel. It is intentionally true even when the configured
// host triple textually equals the build machine's own triple, which
// supports "null" cross-compile testing.
func IsCrossCompiling(s Settings) bool {
	v, ok := s[KeyHost]
	if !ok {
		return false
	}
	h, ok := v.(string)
	if !ok {
		// Not the native sentinel, whatever it is. Resolve will reject it.
		return true
	}
	return h != NativeHost
}
