package settings

import "sync/atomic"

// current holds the most recently resolved configuration for the whole
// process. Build helper scripts and spawned build steps read it through
// Current so they observe the same configuration without re-resolving.
//
// Lifecycle contract: absent until the first Resolve, then always the
// latest resolution, replaced wholesale (never mutated) on each Resolve.
// Concurrent readers are safe because a published Config is immutable.
// Overlapping builds in one process are out of contract and must
// serialize their Resolve calls themselves; the reference itself is
// last-writer-wins.
var current atomic.Pointer[Config]

// Current returns the most recently published configuration, or nil if no
// configuration has been resolved in this process yet.
func Current() *Config {
	return current.Load()
}

// ResetCurrent clears the published configuration. Intended for tests and
// for frontends that want a clean slate between independent builds.
func ResetCurrent() {
	current.Store(nil)
}

func publishCurrent(c *Config) {
	current.Store(c)
}
