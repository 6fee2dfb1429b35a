package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/Karanja-eng/jengacost/internal/model"
)

// WriteXLSX writes a bill as a priced spreadsheet with a grand-total row.
// Unlike the CSV surface, the spreadsheet carries rates and amounts.
func WriteXLSX(path string, bill model.Bill) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Bill of Quantities")
	if err != nil {
		return eris.Wrap(err, "export: add xlsx sheet")
	}

	header := sheet.AddRow()
	for _, col := range []string{"Item", "Description", "Unit", "Quantity", "Rate", "Amount"} {
		header.AddCell().Value = col
	}

	for _, l := range bill.Lines {
		row := sheet.AddRow()
		switch v := l.(type) {
		case model.Header:
			row.AddCell()
			row.AddCell().Value = v.Description
		case model.Item:
			row.AddCell().Value = v.ItemNo
			row.AddCell().Value = v.Description
			row.AddCell().Value = v.Unit
			row.AddCell().SetFloatWithFormat(v.Quantity, "0.00")
			row.AddCell().SetFloatWithFormat(v.Rate, "#,##0.00")
			row.AddCell().SetFloatWithFormat(v.Amount, "#,##0.00")
		default:
			return eris.Errorf("export: unknown line type %T", l)
		}
	}

	total := sheet.AddRow()
	total.AddCell()
	total.AddCell().Value = "GRAND TOTAL"
	total.AddCell()
	total.AddCell()
	total.AddCell()
	total.AddCell().SetFloatWithFormat(bill.TotalAmount, "#,##0.00")

	return eris.Wrapf(f.Save(path), "export: save xlsx %s", path)
}
