package rate

import "github.com/Karanja-eng/jengacost/internal/model"

// excavationFormula prices bulk excavation per m3.
//
// Multiplier order: the materials+labour+equipment subtotal is scaled by the
// regional multiplier and the depth factor first; overhead (10%),
// contingency (10%) and profit (12%) are then taken on that scaled subtotal.
func excavationFormula() formula {
	return formula{
		fields: []string{"volume", "soil_type", "depth_m", "water_table", "cart_away", "region"},
		compute: func(r *reader, p PriceBook) *model.RateResult {
			volume := r.number("volume")
			depth := r.number("depth_m")
			region := r.enum("region")

			// Default case: Medium ground.
			soilFactor := 1.3
			switch r.enum("soil_type") {
			case "Soft":
				soilFactor = 1.0
			case "Medium":
				soilFactor = 1.3
			case "Hard":
				soilFactor = 1.75
			case "Rock":
				soilFactor = 2.5
			}

			// Default case: dry ground.
			waterFactor := 1.0
			wet := false
			switch r.enum("water_table") {
			case "Low":
				waterFactor = 1.15
			case "High":
				waterFactor = 1.35
				wet = true
			}

			deep := depth > 1.5
			depthFactor := 1.0
			if deep {
				depthFactor = 1.2
			}

			labour := p.LabourFor(region)

			// A hand-dig gang moves 4 m3/day in soft ground; harder or wetter
			// ground slows it proportionally.
			gangDays := volume / 4.0 * soilFactor * waterFactor

			materials := map[string]float64{"Shoring timber": 0}
			if deep && volume > 0 {
				// Perimeter shoring approximated at 0.8 m of timber per m3.
				materials["Shoring timber"] = round2(volume * 0.8 * p.Material("shoring_timber_m", ""))
			}

			labourCosts := map[string]float64{
				"Excavation gang": round2(gangDays * labour.Unskilled),
				"Supervision":     round2(gangDays * 0.15 * labour.Skilled),
				"Spoil loading":   0,
			}
			equipment := map[string]float64{
				"Compactor hire":  0,
				"Dewatering pump": 0,
				"Tipper hire":     0,
			}
			if volume > 0 {
				equipment["Compactor hire"] = p.EquipmentFee("compactor")
			}
			if wet && volume > 0 {
				equipment["Dewatering pump"] = p.EquipmentFee("dewatering_pump")
			}
			if r.boolean("cart_away") && volume > 0 {
				// Bulked spoil at 1.25, one 7 m3 tipper trip per load.
				trips := volume * 1.25 / 7.0
				equipment["Tipper hire"] = round2(trips * 3500)
				labourCosts["Spoil loading"] = round2(volume / 10.0 * labour.Unskilled)
			}

			b := model.CostBreakdown{Materials: materials, Labour: labourCosts, Equipment: equipment}

			scaled := b.Subtotal() * p.RegionMultiplier(region) * depthFactor
			b.Overhead = round2(scaled * 0.10)
			b.Contingency = round2(scaled * 0.10)
			b.Profit = round2(scaled * 0.12)

			total := scaled + b.Overhead + b.Contingency + b.Profit
			return finish("KES/m3", volume, total, b, r, "volume")
		},
	}
}
