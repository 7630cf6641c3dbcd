package config

import (
	"fmt"
	"time"

	"github.com/benfogle/crossbuild/pkg/settings"
)

// ParsedSettings is the result of loading a settings file.
type ParsedSettings struct {
	// Settings is the flat mapping ready for resolution. Nil when Errors
	// is non-empty.
	Settings settings.Settings `json:"settings"`

	// SourceFile is the file the settings were loaded from ("inline" for
	// in-memory content).
	SourceFile string `json:"source_file"`

	// Format is the detected input format (cue, yaml, json).
	Format string `json:"format"`

	// LoadedAt is when the settings were loaded.
	LoadedAt time.Time `json:"loaded_at"`

	// Errors lists parse and schema validation errors.
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a load error with location information.
type ValidationError struct {
	// File is the source file path.
	File string `json:"file,omitempty"`

	// Line is the line number (1-indexed, 0 when unknown).
	Line int `json:"line,omitempty"`

	// Column is the column number (1-indexed, 0 when unknown).
	Column int `json:"column,omitempty"`

	// Path is the settings key path the error refers to, if any.
	Path string `json:"path,omitempty"`

	// Message is the error message.
	Message string `json:"message"`

	// Severity is the error severity (error, warning).
	Severity string `json:"severity"`
}

// Error implements the error interface so a ValidationError can be
// returned directly where a single failure suffices.
func (e ValidationError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}
