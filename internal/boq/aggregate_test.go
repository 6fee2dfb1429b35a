package boq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Karanja-eng/jengacost/internal/model"
)

func TestAggregateHeaderAndTwoItems(t *testing.T) {
	lines := []model.Line{
		model.Header{BillNo: "1", Description: "BILL NO.1: SUBSTRUCTURE"},
		model.Item{BillNo: "1", ItemNo: "A", Description: "Excavation", Unit: "m3", Quantity: 5, Rate: 100},
		model.Item{BillNo: "1", ItemNo: "B", Description: "Blinding", Unit: "m2", Quantity: 3, Rate: 50},
	}

	bill := Aggregate(lines)

	require.Len(t, bill.Lines, 3)
	assert.InDelta(t, 650, bill.TotalAmount, 0.001)

	item, ok := bill.Lines[1].(model.Item)
	require.True(t, ok)
	assert.InDelta(t, 500, item.Amount, 0.001)
}

func TestAggregateRecomputesAmount(t *testing.T) {
	// A stale caller-supplied amount must not survive aggregation.
	bill := Aggregate([]model.Line{
		model.Item{ItemNo: "A", Quantity: 4, Rate: 250, Amount: 999999},
	})

	item := bill.Lines[0].(model.Item)
	assert.InDelta(t, 1000, item.Amount, 0.001)
	assert.InDelta(t, 1000, bill.TotalAmount, 0.001)
}

func TestAggregateSquaresDimensionLines(t *testing.T) {
	bill := Aggregate([]model.Line{
		model.Item{
			ItemNo: "A", Unit: "m2", Rate: 85,
			// Direct quantity must be ignored when dimensions exist.
			Quantity: 12345,
			Dimensions: []model.Dimension{
				{Timesing: 2, Length: model.Float(5.0), Width: model.Float(2.0)},
				{Timesing: 1, Length: model.Float(1.0), Width: model.Float(1.0), Deduction: true},
			},
		},
	})

	item := bill.Lines[0].(model.Item)
	assert.InDelta(t, 19.0, item.Quantity, 0.0001)
	assert.InDelta(t, 19.0*85, item.Amount, 0.001)
}

func TestAggregateDirectEntryMode(t *testing.T) {
	bill := Aggregate([]model.Line{
		model.Item{ItemNo: "A", Unit: "m", Quantity: 36.5, Rate: 10},
	})
	item := bill.Lines[0].(model.Item)
	assert.InDelta(t, 36.5, item.Quantity, 0.0001)
	assert.InDelta(t, 365, bill.TotalAmount, 0.001)
}

func TestAggregateIdempotent(t *testing.T) {
	lines := []model.Line{
		model.Header{BillNo: "2", Description: "BILL NO.2: WALLING"},
		model.Item{BillNo: "2", ItemNo: "A", Unit: "m2", Quantity: 44.4, Rate: 1325.55},
		model.Item{
			BillNo: "2", ItemNo: "B", Unit: "m2", Rate: 90.9,
			Dimensions: []model.Dimension{{Timesing: 3, Length: model.Float(2.2), Width: model.Float(1.1)}},
		},
	}

	once := Aggregate(lines)
	twice := Aggregate(once.Lines)

	assert.Equal(t, once, twice)
}

func TestAggregatePreservesOrder(t *testing.T) {
	lines := []model.Line{
		model.Item{ItemNo: "A", Quantity: 1, Rate: 1},
		model.Header{Description: "SECTION"},
		model.Item{ItemNo: "B", Quantity: 2, Rate: 2},
	}
	bill := Aggregate(lines)

	require.Len(t, bill.Lines, 3)
	assert.Equal(t, "A", bill.Lines[0].(model.Item).ItemNo)
	_, isHeader := bill.Lines[1].(model.Header)
	assert.True(t, isHeader)
	assert.Equal(t, "B", bill.Lines[2].(model.Item).ItemNo)
}

func TestAggregateEmpty(t *testing.T) {
	bill := Aggregate(nil)
	assert.Empty(t, bill.Lines)
	assert.Zero(t, bill.TotalAmount)
}
