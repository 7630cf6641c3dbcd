package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/benfogle/crossbuild/pkg/telemetry"
	"github.com/benfogle/crossbuild/pkg/triple"
)

// Resolver turns a raw settings mapping into a validated Config.
type Resolver struct {
	logger      zerolog.Logger
	validate    *validator.Validate
	metrics     *telemetry.Metrics
	skipPublish bool
}

// ResolverOptions configures a Resolver. The zero value gives a resolver
// that publishes every resolved Config as the process-wide current
// configuration and records no metrics.
type ResolverOptions struct {
	// Metrics, when non-nil, receives resolution and parse counters.
	Metrics *telemetry.Metrics

	// SkipPublish disables publishing resolved configurations via Current.
	// Intended for speculative resolutions (validation, dry runs) that must
	// not disturb the active build configuration.
	SkipPublish bool
}

// NewResolver creates a resolver logging through the given logger.
func NewResolver(logger zerolog.Logger, opts ResolverOptions) *Resolver {
	return &Resolver{
		logger:      logger.With().Str("component", "settings-resolver").Logger(),
		validate:    validator.New(),
		metrics:     opts.Metrics,
		skipPublish: opts.SkipPublish,
	}
}

// Resolve applies the documented per-key defaults to the settings mapping
// and returns the validated configuration.
//
// Recognized scalar keys must be strings and recognized list keys must be
// sequences of pre-split string tokens; either shape violation fails with
// MalformedConfigError. A "host" other than the native sentinel is parsed
// via triple.Parse. Unrecognized keys are never rejected or dropped: they
// are carried in Config.Extra for other consumers, with a warning for keys
// that are not backend-namespaced.
//
// Resolve reads nothing but its arguments and, unless SkipPublish was set,
// has exactly one side effect: replacing the published current
// configuration.
func (r *Resolver) Resolve(ctx context.Context, s Settings) (*Config, error) {
	start := time.Now()

	cfg := &Config{
		HostRaw:     NativeHost,
		PlatformTag: DefaultPlatformTag,
		IncludeDirs: []string{},
		LibDirs:     []string{},
		CFlags:      []string{},
		CXXFlags:    []string{},
		LDFlags:     []string{},
		ResolvedAt:  start,
	}

	for key, value := range s {
		switch {
		case scalarKeys[key]:
			str, ok := value.(string)
			if !ok {
				return nil, &MalformedConfigError{
					Key:    key,
					Reason: fmt.Sprintf("expected string, got %T", value),
				}
			}
			switch key {
			case KeyHost:
				cfg.HostRaw = str
			case KeyHostPrefix:
				cfg.HostPrefix = str
			case KeySysroot:
				cfg.Sysroot = str
			case KeyPlatformTag:
				cfg.PlatformTag = str
			}

		case listKeys[key]:
			tokens, err := stringList(key, value)
			if err != nil {
				return nil, err
			}
			switch key {
			case KeyIncludeDirs:
				cfg.IncludeDirs = tokens
			case KeyLibDirs:
				cfg.LibDirs = tokens
			case KeyCC:
				cfg.CC = tokens
			case KeyCXX:
				cfg.CXX = tokens
			case KeyCFlags:
				cfg.CFlags = tokens
			case KeyCXXFlags:
				cfg.CXXFlags = tokens
			case KeyLDFlags:
				cfg.LDFlags = tokens
			}

		default:
			if cfg.Extra == nil {
				cfg.Extra = make(map[string]any)
			}
			cfg.Extra[key] = value
			if !IsNamespacedKey(key) {
				r.logger.Warn().
					Str("key", key).
					Msg("Unrecognized settings key preserved for other consumers")
			}
		}
	}

	if cfg.HostRaw != NativeHost {
		t, err := triple.Parse(cfg.HostRaw)
		if err != nil {
			r.recordParse(false)
			return nil, &MalformedConfigError{Key: KeyHost, Reason: "invalid host triple", Err: err}
		}
		r.recordParse(true)
		cfg.Host = &t
	}

	if err := r.validate.StructCtx(ctx, cfg); err != nil {
		return nil, fmt.Errorf("resolved configuration failed validation: %w", err)
	}

	if !r.skipPublish {
		publishCurrent(cfg)
	}

	mode := "native"
	if cfg.IsCrossCompiling() {
		mode = "cross"
	}
	if r.metrics != nil {
		r.metrics.RecordResolution(mode, time.Since(start))
	}

	r.logger.Debug().
		Str("host", cfg.HostString()).
		Bool("cross_compiling", cfg.IsCrossCompiling()).
		Str("platform_tag", cfg.PlatformTag).
		Msg("Settings resolved")

	return cfg, nil
}

func (r *Resolver) recordParse(ok bool) {
	if r.metrics != nil {
		r.metrics.RecordTripleParse(ok)
	}
}

// stringList coerces a list-typed setting value into []string. Decoded
// JSON and YAML arrive as []any, direct callers tend to pass []string;
// both are accepted. A bare string is rejected because it means the
// producer skipped shell tokenization.
func stringList(key string, value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return nil, &MalformedConfigError{
					Key:    key,
					Reason: fmt.Sprintf("element %d: expected string, got %T", i, elem),
				}
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return nil, &MalformedConfigError{
			Key:    key,
			Reason: "scalar string given for list-valued key; tokens must be pre-split per shell quoting rules",
		}
	default:
		return nil, &MalformedConfigError{
			Key:    key,
			Reason: fmt.Sprintf("expected list of strings, got %T", value),
		}
	}
}
