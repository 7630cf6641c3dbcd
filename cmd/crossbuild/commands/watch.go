package commands

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/benfogle/crossbuild/pkg/config"
	"github.com/benfogle/crossbuild/pkg/settings"
	"github.com/benfogle/crossbuild/pkg/telemetry"
)

func newWatchCommand() *cobra.Command {
	var (
		metricsAddr string
		debounce    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <settings-file>",
		Short: "Watch a settings file and re-resolve on change",
		Long: `Watch a settings file and re-resolve it whenever it changes.

Each successful resolution replaces the process-wide current
configuration. A file that becomes invalid keeps the previous
configuration in place and logs the failure. With --metrics-addr, a
Prometheus endpoint reports resolution and load counters.`,
		Example: `  # Re-resolve on every change
  crossbuild watch crossbuild.yaml

  # Record every resolution and expose metrics
  crossbuild watch --store ./history.db --metrics-addr :9090 crossbuild.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			telCfg := telemetry.DefaultConfig()
			telCfg.ServiceVersion = cmd.Root().Version
			if metricsAddr != "" {
				telCfg.Metrics.Enabled = true
				telCfg.Metrics.ListenAddress = metricsAddr
			}

			tel, err := telemetry.NewTelemetry(telCfg)
			if err != nil {
				return err
			}
			ctx = tel.WithContext(ctx)
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = tel.Shutdown(shutdownCtx)
			}()

			if metricsAddr != "" {
				if err := tel.Metrics.StartMetricsServer(); err != nil {
					return err
				}
			}
			events := tel.Events

			loader := config.NewLoader(log.Logger, config.LoaderOptions{Metrics: tel.Metrics})
			resolver := settings.NewResolver(log.Logger, settings.ResolverOptions{Metrics: tel.Metrics})

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			reload := func(initial bool) {
				parsed, err := loadSettings(ctx, loader, path)
				if err != nil {
					log.Error().Err(err).Str("path", path).Msg("Settings reload failed")
					_ = events.PublishSettingsLoadFailed(path, err)
					return
				}

				cfg, err := resolver.Resolve(ctx, parsed.Settings)
				if err != nil {
					log.Error().Err(err).Str("path", path).Msg("Settings resolution failed")
					_ = events.PublishSettingsLoadFailed(path, err)
					return
				}

				if store != nil {
					if _, err := recordResolution(ctx, store, parsed, cfg); err != nil {
						log.Error().Err(err).Msg("Failed to record resolution")
					}
				}

				if initial {
					log.Info().Str("host", cfg.HostString()).Msg("Settings resolved")
				} else {
					_ = events.PublishSettingsReloaded(path, cfg.HostString())
					log.Info().Str("host", cfg.HostString()).Msg("Settings reloaded")
				}
			}

			reload(true)

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()

			// Watch the directory, not the file: editors replace files by
			// rename, which drops a watch on the file itself.
			dir := filepath.Dir(path)
			if err := watcher.Add(dir); err != nil {
				return err
			}

			target, err := filepath.Abs(path)
			if err != nil {
				return err
			}

			var timer *time.Timer
			for {
				select {
				case <-ctx.Done():
					log.Info().Msg("Watch stopped")
					return nil

				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					name, err := filepath.Abs(event.Name)
					if err != nil || name != target {
						continue
					}
					if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
						continue
					}

					// Coalesce bursts of events from a single save
					if timer != nil {
						timer.Stop()
					}
					timer = time.AfterFunc(debounce, func() { reload(false) })

				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					log.Warn().Err(err).Msg("Watcher error")
				}
			}
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address for the Prometheus metrics endpoint")
	cmd.Flags().DurationVar(&debounce, "debounce", 250*time.Millisecond, "delay before re-resolving after a change")

	return cmd
}
