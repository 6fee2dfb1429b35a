package rate

import "github.com/Karanja-eng/jengacost/internal/model"

// masonryFormula prices block walling per m2.
//
// Multiplier order: overhead (10%), contingency (8%) and profit (12%) are
// taken on the raw materials+labour+equipment subtotal; the regional
// multiplier is then applied to the marked-up total.
func masonryFormula() formula {
	return formula{
		fields: []string{"area", "block_type", "wall_thickness_mm", "region"},
		compute: func(r *reader, p PriceBook) *model.RateResult {
			area := r.number("area")
			blockType := r.enum("block_type")
			region := r.enum("region")
			labour := p.LabourFor(region)

			// Default case: 200 mm wall.
			mortarPerM2 := 0.025
			if r.enum("wall_thickness_mm") == "150" {
				mortarPerM2 = 0.018
			}

			// 12.5 blocks per m2 at standard coursing, 5% cutting waste.
			blocks := area * 12.5 * 1.05
			mortarM3 := area * mortarPerM2

			materials := map[string]float64{
				"Blocks":        round2(blocks * p.Material("block", blockType)),
				"Mortar cement": round2(mortarM3 * 8.0 * p.Material("cement_bag", "")),
				"Mortar sand":   round2(mortarM3 * 1.1 * p.Material("sand_m3", "")),
			}

			// A mason and helper lay 10 m2/day.
			labourCosts := map[string]float64{
				"Mason":  round2(area / 10.0 * labour.Skilled),
				"Helper": round2(area / 10.0 * labour.Unskilled),
			}

			equipment := map[string]float64{"Scaffolding": 0}
			if area > 20 {
				equipment["Scaffolding"] = p.EquipmentFee("scaffolding")
			}

			b := model.CostBreakdown{Materials: materials, Labour: labourCosts, Equipment: equipment}

			subtotal := b.Subtotal()
			b.Overhead = round2(subtotal * 0.10)
			b.Contingency = round2(subtotal * 0.08)
			b.Profit = round2(subtotal * 0.12)

			total := (subtotal + b.Overhead + b.Contingency + b.Profit) * p.RegionMultiplier(region)
			return finish("KES/m2", area, total, b, r, "area")
		},
	}
}
