// Package triple parses and normalizes host triples, the structured
// identifiers (e.g. "aarch64-unknown-linux-gnu") that name the machine a
// cross-compiled artifact will run on.
//
// Parsing is deliberately permissive: toolchains invent new triples
// continuously, so unrecognized components are preserved verbatim and
// missing fields default to "unknown" rather than failing. The only hard
// failures are structurally unparseable inputs (empty string, empty
// components, more than four components).
package triple
