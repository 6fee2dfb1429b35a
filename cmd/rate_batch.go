package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Karanja-eng/jengacost/internal/model"
)

var batchConcurrency int

// batchItem is one entry of a batch input file.
type batchItem struct {
	Description string            `yaml:"description"`
	Type        string            `yaml:"type"`
	Input       map[string]string `yaml:"input"`
}

var rateBatchCmd = &cobra.Command{
	Use:   "batch <file.yaml>",
	Short: "Compute rates for many work items from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, eng, err := initEngine()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read batch file %s", args[0])
		}

		var items []batchItem
		if err := yaml.Unmarshal(data, &items); err != nil {
			return eris.Wrap(err, "parse batch file")
		}

		results := make([]*model.RateResult, len(items))

		g, _ := errgroup.WithContext(cmd.Context())
		g.SetLimit(batchConcurrency)
		for i, item := range items {
			g.Go(func() error {
				res, err := eng.Compute(item.Type, model.WorkItemInput(item.Input))
				if err != nil {
					return eris.Wrapf(err, "item %d (%s)", i, item.Description)
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DESCRIPTION\tTYPE\tQTY\tUNIT\tRATE\tTOTAL\tWARNINGS")
		var grand float64
		for i, item := range items {
			r := results[i]
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%.2f\t%.2f\t%d\n",
				item.Description, item.Type, r.Quantity, r.Unit, r.UnitRate, r.TotalCost, len(r.Warnings))
			grand += r.TotalCost
		}
		fmt.Fprintf(tw, "\t\t\t\t\t%.2f\t\n", grand)
		if err := tw.Flush(); err != nil {
			return err
		}

		zap.L().Info("batch complete",
			zap.Int("items", len(items)),
			zap.Float64("grand_total", grand),
		)
		return nil
	},
}

func init() {
	rateBatchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "max concurrent computations")
}
