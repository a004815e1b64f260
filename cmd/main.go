// FILE: lixenwraith/cliconfig/cmd/main.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/cliconfig"
)

// Version is set at build time
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	logger := zerolog.Nop()

	rootCmd := &cobra.Command{
		Use:           "cliconfig",
		Short:         "Inspect and convert cliconfig configuration files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if verbose {
				logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	rootCmd.AddCommand(newExpandCmd(&logger))
	rootCmd.AddCommand(newConvertCmd(&logger))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cliconfig version: %s\n", Version)
		},
	})

	return rootCmd
}

func newExpandCmd(logger *zerolog.Logger) *cobra.Command {
	var order []string

	cmd := &cobra.Command{
		Use:   "expand FILE",
		Short: "Print every series combination of a config file as one JSON line",
		Long: `Reads a JSON, YAML or TOML config file and expands its __series__ key
into the Cartesian product of the candidate values. Series keys nest in the
order the file lists them, the last one varying fastest. Keys listed with
--order come first instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, fileOrder, err := cliconfig.ReadConfigFileOrdered(args[0])
			if err != nil {
				return err
			}

			combos, err := cliconfig.ExpandSeries(raw, append(order, fileOrder...))
			if err != nil {
				return err
			}
			logger.Info().Str("path", args[0]).Int("combinations", len(combos)).Msg("series expanded")

			return writeJSONLines(cmd.OutOrStdout(), combos)
		},
	}
	cmd.Flags().StringSliceVar(&order, "order", nil, "series keys in nesting order, outermost first")

	return cmd
}

func newConvertCmd(logger *zerolog.Logger) *cobra.Command {
	var expand bool

	cmd := &cobra.Command{
		Use:   "convert SRC DST",
		Short: "Re-encode a config file in the format of the destination extension",
		Long: `Reads SRC and writes its mapping to DST, choosing JSON, YAML or TOML from
DST's extension. With --expand, DST gets one file per series combination,
numbered DST-0, DST-1 and so on before the extension.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			raw, seriesOrder, err := cliconfig.ReadConfigFileOrdered(src)
			if err != nil {
				return err
			}

			if !expand {
				if err := cliconfig.WriteConfigFile(dst, raw); err != nil {
					return err
				}
				logger.Info().Str("src", src).Str("dst", dst).Msg("config converted")
				return nil
			}

			combos, err := cliconfig.ExpandSeries(raw, seriesOrder)
			if err != nil {
				return err
			}
			for i, combo := range combos {
				path := numberedPath(dst, i)
				if err := cliconfig.WriteConfigFile(path, combo); err != nil {
					return err
				}
				logger.Info().Str("src", src).Str("dst", path).Msg("combination written")
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&expand, "expand", false, "write one file per series combination")

	return cmd
}

func writeJSONLines(w io.Writer, combos []map[string]any) error {
	enc := json.NewEncoder(w)
	for _, combo := range combos {
		if err := enc.Encode(combo); err != nil {
			return fmt.Errorf("failed to encode combination: %w", err)
		}
	}
	return nil
}

// numberedPath inserts "-i" before the extension: runs.toml -> runs-0.toml
func numberedPath(path string, i int) string {
	dot := strings.LastIndex(path, ".")
	if dot <= strings.LastIndexAny(path, `/\`) {
		return fmt.Sprintf("%s-%d", path, i)
	}
	return fmt.Sprintf("%s-%d%s", path[:dot], i, path[dot:])
}
