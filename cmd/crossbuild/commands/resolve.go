package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/benfogle/crossbuild/pkg/config"
	"github.com/benfogle/crossbuild/pkg/settings"
	"github.com/benfogle/crossbuild/pkg/stores"
	"github.com/benfogle/crossbuild/pkg/telemetry"
)

func newResolveCommand() *cobra.Command {
	var traceEndpoint string

	cmd := &cobra.Command{
		Use:   "resolve <settings-file>",
		Short: "Resolve a settings file into a full configuration",
		Long: `Resolve a settings file into a complete cross-compilation configuration.

The file may be CUE, YAML, or JSON. Every documented key receives its
default when absent, the host triple is parsed, and the result is
published as the process-wide current configuration. With --store, the
resolution is also recorded in the history database.`,
		Example: `  # Resolve a YAML settings file
  crossbuild resolve crossbuild.yaml

  # Resolve and record to a history database
  crossbuild resolve --store ./history.db crossbuild.yaml

  # Machine-readable output
  crossbuild resolve --json crossbuild.cue`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			tracer, err := telemetry.NewTracer(telemetry.TracingConfig{
				Enabled:      traceEndpoint != "",
				Exporter:     "otlp",
				Endpoint:     traceEndpoint,
				SamplingRate: 1.0,
				Insecure:     true,
			}, "crossbuild", cmd.Root().Version, "cli")
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = tracer.Shutdown(shutdownCtx)
			}()

			buildID := uuid.New().String()
			ctx, span := tracer.StartResolveSpan(ctx, buildID, path)
			defer span.End()

			loader := config.NewLoader(log.Logger, config.LoaderOptions{})
			parsed, err := loadSettings(ctx, loader, path)
			if err != nil {
				telemetry.RecordError(span, err)
				return err
			}

			resolver := settings.NewResolver(log.Logger, settings.ResolverOptions{})
			cfg, err := resolver.Resolve(ctx, parsed.Settings)
			if err != nil {
				telemetry.RecordError(span, err)
				return err
			}
			telemetry.RecordSuccess(span)

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
				if _, err := recordResolution(ctx, store, parsed, cfg); err != nil {
					return err
				}
			}

			return printConfig(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&traceEndpoint, "trace-endpoint", "", "OTLP endpoint for trace export (e.g. localhost:4317)")

	return cmd
}

// recordResolution writes a resolved configuration to the history store
// and returns the new record's ID.
func recordResolution(ctx context.Context, store *stores.SQLiteStore, parsed *config.ParsedSettings, cfg *settings.Config) (string, error) {
	rawJSON, err := json.Marshal(parsed.Settings)
	if err != nil {
		return "", fmt.Errorf("failed to encode raw settings: %w", err)
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode configuration: %w", err)
	}

	res := &stores.Resolution{
		ID:             uuid.New().String(),
		SourceFile:     parsed.SourceFile,
		Host:           cfg.HostString(),
		CrossCompiling: cfg.IsCrossCompiling(),
		PlatformTag:    cfg.PlatformTag,
		RawSettings:    string(rawJSON),
		Config:         string(cfgJSON),
		ResolvedAt:     cfg.ResolvedAt,
		CreatedAt:      time.Now(),
	}

	if err := store.CreateResolution(ctx, res); err != nil {
		return "", err
	}

	log.Info().Str("id", res.ID).Str("host", res.Host).Msg("Resolution recorded")
	return res.ID, nil
}

func printConfig(cmd *cobra.Command, cfg *settings.Config) error {
	w := cmd.OutOrStdout()

	if jsonOutput {
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
		return nil
	}

	fmt.Fprintf(w, "host:         %s\n", cfg.HostString())
	fmt.Fprintf(w, "cross:        %t\n", cfg.IsCrossCompiling())
	fmt.Fprintf(w, "host_prefix:  %s\n", cfg.HostPrefix)
	fmt.Fprintf(w, "sysroot:      %s\n", cfg.Sysroot)
	fmt.Fprintf(w, "platform_tag: %s\n", cfg.PlatformTag)
	fmt.Fprintf(w, "include_dirs: %s\n", strings.Join(cfg.IncludeDirs, " "))
	fmt.Fprintf(w, "lib_dirs:     %s\n", strings.Join(cfg.LibDirs, " "))
	if cfg.CC != nil {
		fmt.Fprintf(w, "cc:           %s\n", strings.Join(cfg.CC, " "))
	}
	if cfg.CXX != nil {
		fmt.Fprintf(w, "c++:          %s\n", strings.Join(cfg.CXX, " "))
	}
	fmt.Fprintf(w, "cflags:       %s\n", strings.Join(cfg.CFlags, " "))
	fmt.Fprintf(w, "cxxflags:     %s\n", strings.Join(cfg.CXXFlags, " "))
	fmt.Fprintf(w, "ldflags:      %s\n", strings.Join(cfg.LDFlags, " "))

	if len(cfg.Extra) > 0 {
		keys := make([]string, 0, len(cfg.Extra))
		for k := range cfg.Extra {
			keys = append(keys, k)
		}
		fmt.Fprintf(w, "extra keys:   %s\n", strings.Join(keys, " "))
	}

	return nil
}
