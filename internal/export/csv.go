package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/Karanja-eng/jengacost/internal/model"
)

// WriteCSV writes a bill with the header row Item,Description,Unit,Quantity.
// Section headers are emitted as rows with only the description filled, so
// a printed bill keeps its trade sections. encoding/csv quotes descriptions
// containing commas.
func WriteCSV(w io.Writer, bill model.Bill) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Item", "Description", "Unit", "Quantity"}); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}

	for _, l := range bill.Lines {
		var record []string
		switch v := l.(type) {
		case model.Header:
			record = []string{"", v.Description, "", ""}
		case model.Item:
			record = []string{
				v.ItemNo,
				v.Description,
				v.Unit,
				strconv.FormatFloat(v.Quantity, 'f', 2, 64),
			}
		default:
			return eris.Errorf("export: unknown line type %T", l)
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}
