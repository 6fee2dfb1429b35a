package export

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/Karanja-eng/jengacost/internal/model"
)

func sampleResult() *model.RateResult {
	return &model.RateResult{
		UnitRate:  2450.75,
		Unit:      "KES/m2",
		Quantity:  10,
		TotalCost: 24507.50,
		Breakdown: model.CostBreakdown{
			Materials:   map[string]float64{"Tiles": 9165.75, "Adhesive": 2125, "Grout": 630},
			Labour:      map[string]float64{"Tiling fixer": 1750, "Surface preparation": 300},
			Equipment:   map[string]float64{"Tile cutter hire": 1200},
			Overhead:    1517.08,
			Contingency: 1517.08,
			Profit:      2275.61,
		},
	}
}

func sampleBill() model.Bill {
	return model.Bill{
		Lines: []model.Line{
			model.Header{BillNo: "1", Description: "BILL NO.1: FINISHES, WALLS"},
			model.Item{BillNo: "1", ItemNo: "A", Description: "Glazed wall tiling, standard", Unit: "m2", Quantity: 10, Rate: 2450.75, Amount: 24507.50},
			model.Item{BillNo: "1", ItemNo: "B", Description: "Skirting, 100mm high, tiled", Unit: "m", Quantity: 24, Rate: 310, Amount: 7440},
		},
		TotalAmount: 31947.50,
	}
}

func TestTextReportSectionsInOrder(t *testing.T) {
	out := Text(sampleResult())

	for _, want := range []string{
		"QUANTITY:  10.00 m2",
		"UNIT RATE: KES 2,450.75 per m2",
		"TOTAL COST: KES 24,507.50",
		"MATERIALS:", "LABOUR:", "EQUIPMENT:", "OTHER COSTS:",
		"TILES: KES 9,165.75",
		"TILING FIXER: KES 1,750.00",
		"OVERHEAD: KES 1,517.08",
		"PROFIT: KES 2,275.61",
	} {
		assert.Contains(t, out, want)
	}

	// Fixed ordering: materials before labour before equipment before other.
	mi := strings.Index(out, "MATERIALS:")
	li := strings.Index(out, "LABOUR:")
	ei := strings.Index(out, "EQUIPMENT:")
	oi := strings.Index(out, "OTHER COSTS:")
	assert.True(t, mi < li && li < ei && ei < oi)
}

func TestTextReportDeterministic(t *testing.T) {
	r := sampleResult()
	assert.Equal(t, Text(r), Text(r))
}

func TestTextReportWarnings(t *testing.T) {
	r := sampleResult()
	r.Warnings = []model.Warning{{Field: "area", Code: "zero_quantity", Message: "area is zero, unit rate set to 0"}}
	out := Text(r)
	assert.Contains(t, out, "WARNINGS:")
	assert.Contains(t, out, "[zero_quantity]")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleBill()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"Item", "Description", "Unit", "Quantity"}, records[0])
	// Header line becomes a section row.
	assert.Equal(t, []string{"", "BILL NO.1: FINISHES, WALLS", "", ""}, records[1])
	assert.Equal(t, []string{"A", "Glazed wall tiling, standard", "m2", "10.00"}, records[2])
	assert.Equal(t, []string{"B", "Skirting, 100mm high, tiled", "m", "24.00"}, records[3])
}

func TestWriteCSVQuotesCommas(t *testing.T) {
	var buf bytes.Buffer
	bill := model.Bill{Lines: []model.Line{
		model.Item{ItemNo: "A", Description: "Excavate, cart away, level", Unit: "m3", Quantity: 5},
	}}
	require.NoError(t, WriteCSV(&buf, bill))

	assert.Contains(t, buf.String(), `"Excavate, cart away, level"`)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bill.xlsx")
	require.NoError(t, WriteXLSX(path, sampleBill()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	assert.Equal(t, "Bill of Quantities", sheet.Name)
	// header + 3 lines + grand total
	require.Len(t, sheet.Rows, 5)
	assert.Equal(t, "Item", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "GRAND TOTAL", sheet.Rows[4].Cells[1].String())
}
