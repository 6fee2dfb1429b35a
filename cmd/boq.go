package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Karanja-eng/jengacost/internal/boq"
	"github.com/Karanja-eng/jengacost/internal/export"
	"github.com/Karanja-eng/jengacost/internal/model"
)

var boqCmd = &cobra.Command{
	Use:   "boq",
	Short: "Build and export Bills of Quantities",
	Long:  "Commands for maintaining a project's bill lines and exporting the aggregated, priced bill.",
}

// -- boq init --

var boqInitCmd = &cobra.Command{
	Use:   "init <project>",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		p, err := st.CreateProject(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "boq init")
		}
		fmt.Printf("Created project %q (%s)\n", p.Name, p.ID)
		return nil
	},
}

// -- boq add / add-header --

var (
	addBillNo   string
	addItemNo   string
	addUnit     string
	addQuantity float64
	addRate     float64
)

var boqAddCmd = &cobra.Command{
	Use:   "add <project> <description>",
	Short: "Append a billed item line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		p, err := st.GetProject(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "boq add")
		}

		line := model.Item{
			BillNo:      addBillNo,
			ItemNo:      addItemNo,
			Description: args[1],
			Unit:        addUnit,
			Quantity:    addQuantity,
			Rate:        addRate,
		}
		return eris.Wrap(st.AppendLine(ctx, p.ID, line), "boq add")
	},
}

var boqAddHeaderCmd = &cobra.Command{
	Use:   "add-header <project> <description>",
	Short: "Append a section header line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		p, err := st.GetProject(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "boq add-header")
		}

		line := model.Header{BillNo: addBillNo, Description: args[1]}
		return eris.Wrap(st.AppendLine(ctx, p.ID, line), "boq add-header")
	},
}

// -- boq dim --

var (
	dimTimesing  float64
	dimLength    float64
	dimWidth     float64
	dimHeight    float64
	dimDeduction bool
)

var boqDimCmd = &cobra.Command{
	Use:   "dim <project>",
	Short: "Attach a dimension-paper entry to the last item line",
	Long:  "Appends one timesing/length/width/height row to the most recent item line. Pass a negative width or height to omit that dimension.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		p, err := st.GetProject(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "boq dim")
		}

		lines, err := st.GetLines(ctx, p.ID)
		if err != nil {
			return eris.Wrap(err, "boq dim")
		}

		// Find the last item line.
		last := -1
		for i := len(lines) - 1; i >= 0; i-- {
			if _, ok := lines[i].(model.Item); ok {
				last = i
				break
			}
		}
		if last < 0 {
			return eris.New("boq dim: project has no item line to dimension")
		}

		d := model.Dimension{
			Timesing:  dimTimesing,
			Length:    model.Float(dimLength),
			Deduction: dimDeduction,
		}
		if dimWidth >= 0 {
			d.Width = model.Float(dimWidth)
		}
		if dimHeight >= 0 {
			d.Height = model.Float(dimHeight)
		}

		item := lines[last].(model.Item)
		item.Dimensions = append(item.Dimensions, d)
		lines[last] = item

		return eris.Wrap(st.ReplaceLines(ctx, p.ID, lines), "boq dim")
	},
}

// -- boq show / total --

var boqShowCmd = &cobra.Command{
	Use:   "show <project>",
	Short: "Show the aggregated bill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bill, err := loadBill(cmd, args[0])
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ITEM\tDESCRIPTION\tUNIT\tQTY\tRATE\tAMOUNT")
		for _, l := range bill.Lines {
			switch v := l.(type) {
			case model.Header:
				fmt.Fprintf(tw, "\t%s\t\t\t\t\n", strings.ToUpper(v.Description))
			case model.Item:
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\n",
					v.ItemNo, v.Description, v.Unit, v.Quantity, v.Rate, v.Amount)
			}
		}
		fmt.Fprintf(tw, "\tGRAND TOTAL\t\t\t\t%.2f\n", bill.TotalAmount)
		return tw.Flush()
	},
}

var boqTotalCmd = &cobra.Command{
	Use:   "total <project>",
	Short: "Print the bill grand total",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bill, err := loadBill(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%.2f\n", bill.TotalAmount)
		return nil
	},
}

// -- boq export --

var (
	exportFormat string
	exportOut    string
)

var boqExportCmd = &cobra.Command{
	Use:   "export <project>",
	Short: "Export the aggregated bill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bill, err := loadBill(cmd, args[0])
		if err != nil {
			return err
		}

		switch exportFormat {
		case "csv":
			out := os.Stdout
			if exportOut != "" {
				f, err := os.Create(exportOut)
				if err != nil {
					return eris.Wrapf(err, "boq export: create %s", exportOut)
				}
				defer f.Close() //nolint:errcheck
				out = f
			}
			return export.WriteCSV(out, bill)
		case "xlsx":
			if exportOut == "" {
				return eris.New("boq export: xlsx requires --out")
			}
			return export.WriteXLSX(exportOut, bill)
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(bill)
		default:
			return eris.Errorf("boq export: unknown format %q", exportFormat)
		}
	},
}

// loadBill reads a project's lines and aggregates them into a priced bill.
func loadBill(cmd *cobra.Command, projectName string) (model.Bill, error) {
	ctx := cmd.Context()
	st, err := initStore(ctx)
	if err != nil {
		return model.Bill{}, err
	}
	defer st.Close() //nolint:errcheck

	p, err := st.GetProject(ctx, projectName)
	if err != nil {
		return model.Bill{}, eris.Wrap(err, "load bill")
	}
	lines, err := st.GetLines(ctx, p.ID)
	if err != nil {
		return model.Bill{}, eris.Wrap(err, "load bill")
	}
	return boq.Aggregate(lines), nil
}

func init() {
	boqAddCmd.Flags().StringVar(&addBillNo, "bill", "", "bill number")
	boqAddCmd.Flags().StringVar(&addItemNo, "item", "", "item reference, e.g. A")
	boqAddCmd.Flags().StringVar(&addUnit, "unit", "", "unit of measurement")
	boqAddCmd.Flags().Float64Var(&addQuantity, "qty", 0, "direct-entry quantity (ignored once dimensions are attached)")
	boqAddCmd.Flags().Float64Var(&addRate, "rate", 0, "unit rate in KES")
	boqAddHeaderCmd.Flags().StringVar(&addBillNo, "bill", "", "bill number")

	boqDimCmd.Flags().Float64Var(&dimTimesing, "times", 1, "timesing (repeat count)")
	boqDimCmd.Flags().Float64Var(&dimLength, "length", 0, "length in metres")
	boqDimCmd.Flags().Float64Var(&dimWidth, "width", -1, "width in metres")
	boqDimCmd.Flags().Float64Var(&dimHeight, "height", -1, "height in metres")
	boqDimCmd.Flags().BoolVar(&dimDeduction, "deduct", false, "mark as a deduction row")

	boqExportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv, xlsx or json")
	boqExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout for csv/json)")

	boqCmd.AddCommand(boqInitCmd)
	boqCmd.AddCommand(boqAddCmd)
	boqCmd.AddCommand(boqAddHeaderCmd)
	boqCmd.AddCommand(boqDimCmd)
	boqCmd.AddCommand(boqShowCmd)
	boqCmd.AddCommand(boqTotalCmd)
	boqCmd.AddCommand(boqExportCmd)
	rootCmd.AddCommand(boqCmd)
}
