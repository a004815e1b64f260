// FILE: lixenwraith/cliconfig/help.go
package cliconfig

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// writeHelp renders usage, description and one line per visible option:
// flags, value label and help text.
func (c *CLI) writeHelp(w io.Writer, cmd *cobra.Command) {
	fmt.Fprintf(w, "Usage: %s [OPTIONS]\n", cmd.CommandPath())
	if cmd.Short != "" {
		fmt.Fprintf(w, "\n  %s\n", cmd.Short)
	}
	fmt.Fprintln(w, "\nOptions:")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, spec := range c.options {
		if spec.Hidden {
			continue
		}
		writeOptionLine(tw, strings.Join(spec.Flags, ", "), spec.Label(), spec.Help)
	}
	writeOptionLine(tw, "--"+c.configName, "FILE", "Read configuration from a JSON, YAML or TOML file.")

	helpFlags := "--help"
	if f := cmd.Flags().Lookup("help"); f != nil && f.Shorthand != "" {
		helpFlags = "-" + f.Shorthand + ", --help"
	}
	writeOptionLine(tw, helpFlags, "", "Show this message and exit.")
	tw.Flush()
}

func writeOptionLine(w io.Writer, flags, label, help string) {
	left := "  " + flags
	if label != "" {
		left += " " + label
	}
	fmt.Fprintf(w, "%s\t%s\n", left, help)
}
