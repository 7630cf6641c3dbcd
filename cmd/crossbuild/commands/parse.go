package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benfogle/crossbuild/pkg/triple"
)

func newParseCommand() *cobra.Command {
	var (
		native    bool
		normalize bool
	)

	cmd := &cobra.Command{
		Use:   "parse [triple]",
		Short: "Parse a host triple into its components",
		Long: `Parse a host triple string into architecture, sub-architecture, vendor,
operating system, and ABI components. Unrecognized component values are
accepted verbatim; omitted components default to "unknown".`,
		Example: `  # Parse a full triple
  crossbuild parse aarch64-unknown-linux-gnu

  # Parse a short form; vendor and ABI default to unknown
  crossbuild parse armv7-linux

  # Show the triple describing the build machine
  crossbuild parse --native`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var t triple.HostTriple

			switch {
			case native:
				if len(args) > 0 {
					return fmt.Errorf("--native takes no triple argument")
				}
				t = triple.Native()
			case len(args) == 1:
				parsed, err := triple.Parse(args[0])
				if err != nil {
					return err
				}
				t = parsed
			default:
				return fmt.Errorf("requires a triple argument or --native")
			}

			if normalize {
				t = t.Normalized()
			}

			if jsonOutput {
				out, err := json.MarshalIndent(t, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "arch:      %s\n", t.Arch)
			fmt.Fprintf(w, "sub:       %s\n", displayComponent(t.Sub))
			fmt.Fprintf(w, "vendor:    %s\n", t.Vendor)
			fmt.Fprintf(w, "sys:       %s\n", t.Sys)
			fmt.Fprintf(w, "abi:       %s\n", t.ABI)
			fmt.Fprintf(w, "canonical: %s\n", t.String())

			return nil
		},
	}

	cmd.Flags().BoolVar(&native, "native", false, "parse the build machine's own triple")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "apply architecture and OS aliases")

	return cmd
}

func displayComponent(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
