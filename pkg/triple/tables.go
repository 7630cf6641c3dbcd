package triple

// The tables below are heuristic lookup sets, not a closed registry. They
// exist to classify components during parsing; components missing from
// them are still accepted verbatim.

// subArchRoots lists architecture roots that may carry a fused
// sub-architecture suffix (e.g. "armv7" = "arm" + "v7"). Order matters:
// longer roots are checked first so "armeb" wins over "arm".
var subArchRoots = []string{
	"thumbeb",
	"armeb",
	"thumb",
	"arm",
}

// subArchSuffixes lists recognized sub-architecture suffixes for the roots
// above, per the usual ARM variant spellings.
var subArchSuffixes = map[string]bool{
	"v4":    true,
	"v4t":   true,
	"v5":    true,
	"v5t":   true,
	"v5te":  true,
	"v6":    true,
	"v6k":   true,
	"v6m":   true,
	"v6t2":  true,
	"v7":    true,
	"v7a":   true,
	"v7em":  true,
	"v7k":   true,
	"v7m":   true,
	"v7r":   true,
	"v7s":   true,
	"v8":    true,
	"v8a":   true,
	"v8m":   true,
	"v8r":   true,
	"v8.1a": true,
	"v8.2a": true,
	"v9":    true,
	"v9a":   true,
}

// knownSys lists operating system / environment names used to disambiguate
// three-component triples. This is a heuristic: a triple whose last
// component happens to collide with an OS name will be read as
// arch-vendor-sys even if the author meant an ABI. Notably "android" is
// kept out of this set because it conventionally appears in the ABI slot
// ("aarch64-linux-android").
var knownSys = map[string]bool{
	"aix":        true,
	"cygwin":     true,
	"darwin":     true,
	"dragonfly":  true,
	"emscripten": true,
	"freebsd":    true,
	"fuchsia":    true,
	"haiku":      true,
	"illumos":    true,
	"ios":        true,
	"linux":      true,
	"macos":      true,
	"mingw32":    true,
	"netbsd":     true,
	"none":       true,
	"openbsd":    true,
	"plan9":      true,
	"solaris":    true,
	"tvos":       true,
	"wasi":       true,
	"watchos":    true,
	"win32":      true,
	"windows":    true,
}

// archAliases maps alternate architecture spellings (Go runtime names
// among them) to the canonical triple spellings.
var archAliases = map[string]string{
	"amd64":   "x86_64",
	"arm64":   "aarch64",
	"i686":    "i386",
	"x64":     "x86_64",
	"x86":     "i386",
	"386":     "i386",
	"ppc64le": "powerpc64le",
	"ppc64":   "powerpc64",
}

// sysAliases maps alternate OS spellings to canonical ones.
var sysAliases = map[string]string{
	"macos": "darwin",
	"osx":   "darwin",
	"win32": "windows",
}
