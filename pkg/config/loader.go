package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/benfogle/crossbuild/pkg/settings"
	"github.com/benfogle/crossbuild/pkg/telemetry"
)

// Loader loads settings mappings from files.
type Loader struct {
	ctx      *cue.Context
	registry *SchemaRegistry
	logger   zerolog.Logger
	metrics  *telemetry.Metrics
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// Metrics, when non-nil, receives load counters.
	Metrics *telemetry.Metrics
}

// NewLoader creates a settings file loader.
func NewLoader(logger zerolog.Logger, opts LoaderOptions) *Loader {
	return &Loader{
		ctx:      cuecontext.New(),
		registry: NewSchemaRegistry(),
		logger:   logger.With().Str("component", "settings-loader").Logger(),
		metrics:  opts.Metrics,
	}
}

// Load loads a settings mapping from path. The format is detected from
// the file extension: .cue, .yaml/.yml, or .json. Parse and schema
// failures are reported in ParsedSettings.Errors rather than as a Go
// error; the error return is reserved for I/O problems.
func (l *Loader) Load(ctx context.Context, path string) (*ParsedSettings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		l.recordLoad(formatForPath(path), false)
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	parsed := l.LoadInline(ctx, string(content), formatForPath(path))
	parsed.SourceFile = path

	// Stamp the real filename into errors that only know "inline"
	for i := range parsed.Errors {
		if parsed.Errors[i].File == "" || parsed.Errors[i].File == "inline" {
			parsed.Errors[i].File = path
		}
	}

	return parsed, nil
}

// LoadInline parses settings from in-memory content in the given format
// (cue, yaml, json).
func (l *Loader) LoadInline(ctx context.Context, content, format string) *ParsedSettings {
	parsed := &ParsedSettings{
		SourceFile: "inline",
		Format:     format,
		LoadedAt:   time.Now(),
	}

	var raw map[string]any
	switch format {
	case "cue":
		raw = l.parseCUE(content, parsed)
	case "yaml":
		if err := yaml.Unmarshal([]byte(content), &raw); err != nil {
			parsed.Errors = append(parsed.Errors, ValidationError{
				Message:  fmt.Sprintf("invalid YAML: %v", err),
				Severity: "error",
			})
		}
	case "json":
		if err := json.Unmarshal([]byte(content), &raw); err != nil {
			parsed.Errors = append(parsed.Errors, ValidationError{
				Message:  fmt.Sprintf("invalid JSON: %v", err),
				Severity: "error",
			})
		}
	default:
		parsed.Errors = append(parsed.Errors, ValidationError{
			Message:  fmt.Sprintf("unsupported settings format %q", format),
			Severity: "error",
		})
	}

	if len(parsed.Errors) > 0 {
		l.recordLoad(format, false)
		return parsed
	}
	if raw == nil {
		// Empty file: a valid, all-defaults settings mapping
		raw = map[string]any{}
	}

	// The schema is the same regardless of the input format.
	if err := l.registry.ValidateAgainstSchema(ctx, "settings", raw); err != nil {
		parsed.Errors = append(parsed.Errors, l.convertCUEErrors(err)...)
		l.recordLoad(format, false)
		return parsed
	}

	parsed.Settings = settings.Settings(raw)
	l.recordLoad(format, true)
	l.logger.Debug().
		Str("format", format).
		Int("keys", len(raw)).
		Msg("Settings loaded")
	return parsed
}

// parseCUE compiles CUE content and decodes the top-level struct into a
// plain mapping.
func (l *Loader) parseCUE(content string, parsed *ParsedSettings) map[string]any {
	val := l.ctx.CompileString(content, cue.Filename(parsed.SourceFile))
	if err := val.Err(); err != nil {
		parsed.Errors = append(parsed.Errors, l.convertCUEErrors(err)...)
		return nil
	}

	var raw map[string]any
	if err := val.Decode(&raw); err != nil {
		parsed.Errors = append(parsed.Errors, l.convertCUEErrors(err)...)
		return nil
	}
	return raw
}

// convertCUEErrors converts CUE errors to positioned ValidationErrors.
// Non-CUE errors become a single position-less entry.
func (l *Loader) convertCUEErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	for _, e := range cueerrors.Errors(err) {
		pos := cueerrors.Positions(e)
		var file string
		var line, column int
		if len(pos) > 0 {
			file = pos[0].Filename()
			line = pos[0].Line()
			column = pos[0].Column()
		}

		validationErrors = append(validationErrors, ValidationError{
			File:     file,
			Line:     line,
			Column:   column,
			Message:  cueerrors.Details(e, nil),
			Severity: "error",
		})
	}

	if len(validationErrors) == 0 {
		validationErrors = append(validationErrors, ValidationError{
			Message:  err.Error(),
			Severity: "error",
		})
	}

	return validationErrors
}

func (l *Loader) recordLoad(format string, ok bool) {
	if l.metrics != nil {
		l.metrics.RecordSettingsLoad(format, ok)
	}
}

// formatForPath maps a file extension to a settings format name. Unknown
// extensions fall back to CUE, the frontend's preferred format.
func formatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	default:
		return "cue"
	}
}
