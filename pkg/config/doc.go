// Package config loads the flat cross-compilation settings mapping from
// files on disk. Frontends typically keep settings in CUE (with schema
// validation and positioned error reporting), but plain YAML and JSON
// files are accepted too since backends often receive the mapping as
// serialized data.
//
// Loading stops at producing a settings.Settings mapping; resolution into
// a validated configuration is the settings package's job. Parse and
// schema errors carry file, line and column information:
//
//	ValidationError{
//	    File: "cross.cue",
//	    Line: 12,
//	    Column: 3,
//	    Message: "cflags: conflicting values ...",
//	    Severity: "error",
//	}
//
// All types in this package are safe for concurrent use.
package config
