package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Karanja-eng/jengacost/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the work-item catalog",
	Long:  "Commands for listing work-item types and showing their input schemas.",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported work-item types",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat := catalog.New()

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TYPE\tUNIT\tFIELDS")
		for _, name := range cat.Types() {
			s, err := cat.Get(name)
			if err != nil {
				return eris.Wrap(err, "catalog list")
			}
			var fields []string
			for _, f := range s.Fields {
				fields = append(fields, f.Name)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", s.TypeName, s.Unit, strings.Join(fields, ","))
		}
		return tw.Flush()
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <type>",
	Short: "Show the input schema of a work-item type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalog.New()

		s, err := cat.Get(args[0])
		if err != nil {
			return eris.Wrap(err, "catalog show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	rootCmd.AddCommand(catalogCmd)
}
