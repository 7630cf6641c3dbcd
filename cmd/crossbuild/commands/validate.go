package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/benfogle/crossbuild/pkg/config"
	"github.com/benfogle/crossbuild/pkg/policy"
	"github.com/benfogle/crossbuild/pkg/settings"
	"github.com/benfogle/crossbuild/pkg/stores"
)

func newValidateCommand() *cobra.Command {
	var policyPaths []string

	cmd := &cobra.Command{
		Use:   "validate <settings-file>",
		Short: "Validate a settings file against schema and policies",
		Long: `Validate a settings file without publishing a configuration.

This command checks:
  - Syntax validity (CUE, YAML, or JSON)
  - Schema conformance
  - Key shapes (scalar vs. list keys)
  - Policy compliance (OPA/rego)

The resolution is speculative: the process-wide current configuration is
left untouched.`,
		Example: `  # Validate against the built-in policies
  crossbuild validate crossbuild.yaml

  # Include custom policies from a directory
  crossbuild validate --policy ./policies crossbuild.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			loader := config.NewLoader(log.Logger, config.LoaderOptions{})
			parsed, err := loadSettings(ctx, loader, path)
			if err != nil {
				return err
			}

			// Speculative resolution: do not disturb the published config.
			resolver := settings.NewResolver(log.Logger, settings.ResolverOptions{SkipPublish: true})
			cfg, err := resolver.Resolve(ctx, parsed.Settings)
			if err != nil {
				return err
			}

			engine, err := policy.NewEngine(log.Logger, policy.EngineOptions{})
			if err != nil {
				return err
			}
			if len(policyPaths) > 0 {
				if err := engine.LoadPolicies(ctx, policyPaths); err != nil {
					return err
				}
			}

			result, err := engine.Evaluate(ctx, cfg)
			if err != nil {
				return err
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
				id, err := recordResolution(ctx, store, parsed, cfg)
				if err != nil {
					return err
				}
				if err := recordViolations(cmd, store, id, result); err != nil {
					return err
				}
			}

			if err := printResult(cmd, result); err != nil {
				return err
			}

			if !result.Allowed {
				return fmt.Errorf("configuration rejected by policy")
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&policyPaths, "policy", nil, "additional policy file or directory (repeatable)")

	return cmd
}

func recordViolations(cmd *cobra.Command, store *stores.SQLiteStore, resolutionID string, result *policy.Result) error {
	if len(result.Violations) == 0 {
		return nil
	}

	records := make([]*stores.ViolationRecord, 0, len(result.Violations))
	for _, v := range result.Violations {
		rec := &stores.ViolationRecord{
			Policy:     v.Policy,
			Severity:   string(v.Severity),
			Message:    v.Message,
			DetectedAt: v.DetectedAt,
		}
		if v.Remediation != "" {
			remediation := v.Remediation
			rec.Remediation = &remediation
		}
		if rec.DetectedAt.IsZero() {
			rec.DetectedAt = time.Now()
		}
		records = append(records, rec)
	}

	return store.AddViolations(cmd.Context(), resolutionID, records)
}

func printResult(cmd *cobra.Command, result *policy.Result) error {
	w := cmd.OutOrStdout()

	if jsonOutput {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
		return nil
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "WARN  %s\n", warning)
	}
	for _, v := range result.Violations {
		fmt.Fprintf(w, "%-8s %s: %s\n", v.Severity, v.Policy, v.Message)
		if v.Remediation != "" {
			fmt.Fprintf(w, "         remediation: %s\n", v.Remediation)
		}
	}

	if result.Allowed {
		fmt.Fprintln(w, "Configuration allowed")
	} else {
		fmt.Fprintln(w, "Configuration rejected")
	}

	return nil
}
