package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Karanja-eng/jengacost/internal/export"
	"github.com/Karanja-eng/jengacost/internal/model"
)

var (
	rateSetFlags []string
	rateJSON     bool
)

var rateCmd = &cobra.Command{
	Use:   "rate <type>",
	Short: "Compute a unit rate for a work item",
	Long:  "Runs the parametric rate formula for one work-item type and prints the itemized breakdown as a text report or JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, eng, err := initEngine()
		if err != nil {
			return err
		}

		in := model.WorkItemInput{}
		for _, kv := range rateSetFlags {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return eris.Errorf("invalid --set %q, expected field=value", kv)
			}
			in[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}

		res, err := eng.Compute(args[0], in)
		if err != nil {
			return eris.Wrap(err, "rate")
		}

		if rateJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		fmt.Print(export.Text(res))
		return nil
	},
}

func init() {
	rateCmd.Flags().StringArrayVar(&rateSetFlags, "set", nil, "input field as field=value (repeatable)")
	rateCmd.Flags().BoolVar(&rateJSON, "json", false, "print the RateResult as JSON")
	rateCmd.AddCommand(rateBatchCmd)
	rootCmd.AddCommand(rateCmd)
}
