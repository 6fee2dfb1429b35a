package rate

import "github.com/Karanja-eng/jengacost/internal/model"

// trenchWidth returns the trench width in metres for a pipe diameter.
// Default case: 150 mm pipe.
func trenchWidth(diameter string) float64 {
	switch diameter {
	case "100":
		return 0.45
	case "225":
		return 0.6
	default:
		return 0.5
	}
}

// pipeworkFormula prices laid drainage pipe per metre run, trench included.
//
// Multiplier order: the regional multiplier scales the
// materials+labour+equipment subtotal before overhead (11%), contingency
// (9%) and profit (13%).
func pipeworkFormula() formula {
	return formula{
		fields: []string{"length", "pipe_diameter_mm", "trench_depth_m", "bedding", "region"},
		compute: func(r *reader, p PriceBook) *model.RateResult {
			length := r.number("length")
			diameter := r.enum("pipe_diameter_mm")
			depth := r.number("trench_depth_m")
			region := r.enum("region")
			labour := p.LabourFor(region)

			width := trenchWidth(diameter)
			if depth <= 0 {
				// Minimum cover for a drain run.
				depth = 0.6
			}
			trenchVolume := length * width * depth

			materials := map[string]float64{
				"Pipes and fittings": round2(length * 1.05 * p.Material("pipe_m", diameter)),
				"Bedding":            0,
			}
			// Default case: lay on trimmed trench bottom, no bedding.
			switch r.enum("bedding") {
			case "Sand":
				materials["Bedding"] = round2(length * width * 0.1 * p.Material("bedding_sand_m3", ""))
			case "Granular":
				materials["Bedding"] = round2(length * width * 0.15 * p.Material("bedding_granular_m3", ""))
			}

			labourCosts := map[string]float64{
				"Trench excavation": round2(trenchVolume / 3.5 * labour.Unskilled),
				"Pipe layer":        round2(length / 12.0 * labour.Skilled),
				"Backfilling":       round2(trenchVolume / 6.0 * labour.Unskilled),
			}

			equipment := map[string]float64{"Trench compactor": 0}
			if length > 0 {
				equipment["Trench compactor"] = p.EquipmentFee("trench_compactor")
			}

			b := model.CostBreakdown{Materials: materials, Labour: labourCosts, Equipment: equipment}

			scaled := b.Subtotal() * p.RegionMultiplier(region)
			b.Overhead = round2(scaled * 0.11)
			b.Contingency = round2(scaled * 0.09)
			b.Profit = round2(scaled * 0.13)

			total := scaled + b.Overhead + b.Contingency + b.Profit
			return finish("KES/m", length, total, b, r, "length")
		},
	}
}

// manholeDays returns mason gang days to build one manhole of the given
// type. Default case: Standard.
func manholeDays(manholeType string) float64 {
	switch manholeType {
	case "Shallow":
		return 4
	case "Deep":
		return 12
	default:
		return 7
	}
}

// manholeFormula prices manhole construction per number. Region enters only
// through the labour day rates; no regional multiplier is applied to the
// subtotal. Overhead (10%), contingency (10%) and profit (12%) are taken on
// the per-item subtotal.
func manholeFormula() formula {
	return formula{
		fields: []string{"manhole_type", "count", "region"},
		compute: func(r *reader, p PriceBook) *model.RateResult {
			manholeType := r.enum("manhole_type")
			count := r.number("count")
			region := r.enum("region")
			labour := p.LabourFor(region)

			if count <= 0 {
				count = 1
			}

			days := manholeDays(manholeType)

			// Per-manhole components; the whole breakdown is itemized for the
			// full count.
			materials := map[string]float64{
				"Blockwork and concrete": round2(count * p.Material("manhole_blocks", manholeType)),
				"Cover slab and frame":   round2(count * p.Material("manhole_cover", manholeType)),
				"Benching mortar":        round2(count * 2.0 * p.Material("cement_bag", "")),
			}
			labourCosts := map[string]float64{
				"Mason gang": round2(count * days * (labour.Skilled + 2*labour.Unskilled)),
			}
			equipment := map[string]float64{
				"Shutter and props": round2(count * 1500),
			}

			b := model.CostBreakdown{Materials: materials, Labour: labourCosts, Equipment: equipment}

			subtotal := b.Subtotal()
			b.Overhead = round2(subtotal * 0.10)
			b.Contingency = round2(subtotal * 0.10)
			b.Profit = round2(subtotal * 0.12)

			total := subtotal + b.Overhead + b.Contingency + b.Profit
			return finish("KES/Nr", count, total, b, r, "count")
		},
	}
}
