package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benfogle/crossbuild/pkg/stores"
)

func newHistoryCommand() *cobra.Command {
	var (
		limit  int
		offset int
		host   string
		latest bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded resolutions",
		Long: `Show resolutions recorded in the history database, newest first.

Requires --store pointing at a database previously written by resolve or
validate.`,
		Example: `  # Last ten resolutions
  crossbuild history --store ./history.db

  # Resolutions for one host triple
  crossbuild history --store ./history.db --host aarch64-unknown-linux-gnu

  # Only the most recent resolution, as JSON
  crossbuild history --store ./history.db --latest --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if storePath == "" {
				return fmt.Errorf("history requires --store")
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if latest {
				res, err := store.LatestResolution(ctx)
				if err != nil {
					return err
				}
				return printResolutions(cmd, []*stores.Resolution{res})
			}

			var resolutions []*stores.Resolution
			if host != "" {
				resolutions, err = store.ListResolutionsByHost(ctx, host, limit, offset)
			} else {
				resolutions, err = store.ListResolutions(ctx, limit, offset)
			}
			if err != nil {
				return err
			}

			return printResolutions(cmd, resolutions)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of resolutions to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of resolutions to skip")
	cmd.Flags().StringVar(&host, "host", "", "only show resolutions for this host triple")
	cmd.Flags().BoolVar(&latest, "latest", false, "show only the most recent resolution")

	return cmd
}

func printResolutions(cmd *cobra.Command, resolutions []*stores.Resolution) error {
	w := cmd.OutOrStdout()

	if jsonOutput {
		out, err := json.MarshalIndent(resolutions, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
		return nil
	}

	if len(resolutions) == 0 {
		fmt.Fprintln(w, "No resolutions recorded")
		return nil
	}

	for _, res := range resolutions {
		mode := "native"
		if res.CrossCompiling {
			mode = "cross"
		}
		fmt.Fprintf(w, "%s  %s  %-6s  %s  %s\n",
			res.ResolvedAt.Format("2006-01-02 15:04:05"),
			res.ID,
			mode,
			res.Host,
			res.SourceFile,
		)
	}

	return nil
}
