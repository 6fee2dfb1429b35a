package boq

import (
	"math"

	"github.com/Karanja-eng/jengacost/internal/model"
)

// Aggregate builds a priced bill from lines. For every item line the
// quantity is squared from its dimension entries when it has any, otherwise
// taken verbatim from the line (direct-entry mode), and the amount is
// recomputed as quantity x rate rather than trusted from the caller. Header
// lines pass through unchanged and contribute nothing to the total.
//
// Aggregation preserves order and is idempotent: aggregating an aggregated
// bill's lines yields the same totals.
func Aggregate(lines []model.Line) model.Bill {
	out := model.Bill{Lines: make([]model.Line, 0, len(lines))}
	for _, l := range lines {
		switch v := l.(type) {
		case model.Item:
			if len(v.Dimensions) > 0 {
				v.Quantity = LineQuantity(v.Dimensions)
			}
			v.Amount = round2(v.Quantity * v.Rate)
			out.Lines = append(out.Lines, v)
			out.TotalAmount += v.Amount
		default:
			out.Lines = append(out.Lines, l)
		}
	}
	out.TotalAmount = round2(out.TotalAmount)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
