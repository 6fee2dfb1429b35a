// Package boq implements dimension-paper squaring and Bill of Quantities
// aggregation: Timesing x Dimension = Squaring, then lines into a priced,
// totaled bill.
package boq

import "github.com/Karanja-eng/jengacost/internal/model"

// Square computes one dimension-paper row:
// timesing x length x (width or 1) x (height or 1).
// A row without a length is a placeholder and squares to 0. A zero timesing
// counts as 1, the dimension-paper default.
func Square(d model.Dimension) float64 {
	if d.Length == nil {
		return 0
	}
	timesing := d.Timesing
	if timesing == 0 {
		timesing = 1
	}
	v := timesing * *d.Length
	if d.Width != nil {
		v *= *d.Width
	}
	if d.Height != nil {
		v *= *d.Height
	}
	return v
}

// LineQuantity squares every entry and nets deductions:
// sum of non-deduction rows minus sum of deduction rows.
func LineQuantity(dims []model.Dimension) float64 {
	var qty float64
	for _, d := range dims {
		if d.Deduction {
			qty -= Square(d)
		} else {
			qty += Square(d)
		}
	}
	return qty
}
