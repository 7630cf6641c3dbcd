// Package settings resolves the flat key-value settings mapping that build
// frontends hand to build backends into a validated cross-compilation
// configuration.
//
// The mapping is a shared wire contract: recognized keys get documented
// defaults, list-valued keys must arrive pre-split into argv-style tokens,
// and unrecognized keys are preserved untouched for other consumers.
// Resolution itself is pure; the only process-wide side effect is the
// explicitly documented published configuration (see Current), replaced
// wholesale on every Resolve so build helpers and subprocesses observe one
// consistent configuration per build.
package settings
