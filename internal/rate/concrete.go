package rate

import "github.com/Karanja-eng/jengacost/internal/model"

// cementBagsPerM3 returns the cement consumption for a concrete class.
// Default case: C20.
func cementBagsPerM3(class string) float64 {
	switch class {
	case "C15":
		return 5.8
	case "C25":
		return 7.4
	default:
		return 6.5
	}
}

// massConcreteFormula prices mass concrete per m3.
//
// Multiplier order: regional multiplier is applied to the
// materials+labour+equipment subtotal before overhead (12%), contingency
// (8%) and profit (15%).
func massConcreteFormula() formula {
	return formula{
		fields: []string{"volume", "concrete_class", "mixing", "region"},
		compute: func(r *reader, p PriceBook) *model.RateResult {
			volume := r.number("volume")
			class := r.enum("concrete_class")
			region := r.enum("region")
			readyMix := r.enum("mixing") == "Ready Mix"
			labour := p.LabourFor(region)

			materials := map[string]float64{
				"Cement":            0,
				"Sand":              0,
				"Ballast":           0,
				"Ready-mix concrete": 0,
			}
			if readyMix {
				materials["Ready-mix concrete"] = round2(volume * p.Material("readymix_m3", class))
			} else {
				materials["Cement"] = round2(volume * cementBagsPerM3(class) * p.Material("cement_bag", ""))
				materials["Sand"] = round2(volume * 0.45 * p.Material("sand_m3", ""))
				materials["Ballast"] = round2(volume * 0.9 * p.Material("ballast_m3", ""))
			}

			// Site-mixed: a gang places 5 m3/day; ready-mix doubles output.
			output := 5.0
			if readyMix {
				output = 10.0
			}
			gangDays := volume / output
			labourCosts := map[string]float64{
				"Mixing and placing gang": round2(gangDays * (2*labour.Skilled + 4*labour.Unskilled)),
			}

			equipment := map[string]float64{
				"Mixer hire":     0,
				"Poker vibrator": 0,
			}
			if volume > 0 {
				equipment["Poker vibrator"] = p.EquipmentFee("poker_vibrator")
				if !readyMix {
					equipment["Mixer hire"] = p.EquipmentFee("mixer")
				}
			}

			b := model.CostBreakdown{Materials: materials, Labour: labourCosts, Equipment: equipment}

			scaled := b.Subtotal() * p.RegionMultiplier(region)
			b.Overhead = round2(scaled * 0.12)
			b.Contingency = round2(scaled * 0.08)
			b.Profit = round2(scaled * 0.15)

			total := scaled + b.Overhead + b.Contingency + b.Profit
			return finish("KES/m3", volume, total, b, r, "volume")
		},
	}
}

// concreteSlabFormula prices reinforced suspended slab concrete per m3,
// including reinforcement and formwork.
//
// Multiplier order: same as mass concrete, region before the markups
// (overhead 12%, contingency 8%, profit 15%).
func concreteSlabFormula() formula {
	return formula{
		fields: []string{"volume", "concrete_class", "steel_ratio_kg_m3", "formwork_quality", "region"},
		compute: func(r *reader, p PriceBook) *model.RateResult {
			volume := r.number("volume")
			class := r.enum("concrete_class")
			steelRatio := r.number("steel_ratio_kg_m3")
			formQuality := r.enum("formwork_quality")
			region := r.enum("region")
			labour := p.LabourFor(region)

			steelKg := volume * steelRatio
			// Soffit and edge formwork approximated at 3.5 m2 per m3 of slab.
			formArea := volume * 3.5

			steelCost := round2(steelKg * p.Material("rebar_kg", ""))
			materials := map[string]float64{
				"Cement":         round2(volume * cementBagsPerM3(class) * p.Material("cement_bag", "")),
				"Sand":           round2(volume * 0.45 * p.Material("sand_m3", "")),
				"Ballast":        round2(volume * 0.9 * p.Material("ballast_m3", "")),
				"Reinforcement":  steelCost,
				"Binding wire":   round2(steelCost * 0.02),
				"Formwork":       round2(formArea * p.Material("formwork_m2", formQuality)),
			}

			labourCosts := map[string]float64{
				"Concrete gang":      round2(volume / 5.0 * (2*labour.Skilled + 4*labour.Unskilled)),
				"Steel fixer":        round2(steelKg / 120.0 * labour.Skilled),
				"Formwork carpenter": round2(formArea / 10.0 * labour.Skilled),
			}

			equipment := map[string]float64{
				"Mixer hire":     0,
				"Poker vibrator": 0,
			}
			if volume > 0 {
				equipment["Mixer hire"] = p.EquipmentFee("mixer")
				equipment["Poker vibrator"] = p.EquipmentFee("poker_vibrator")
			}

			b := model.CostBreakdown{Materials: materials, Labour: labourCosts, Equipment: equipment}

			scaled := b.Subtotal() * p.RegionMultiplier(region)
			b.Overhead = round2(scaled * 0.12)
			b.Contingency = round2(scaled * 0.08)
			b.Profit = round2(scaled * 0.15)

			total := scaled + b.Overhead + b.Contingency + b.Profit
			return finish("KES/m3", volume, total, b, r, "volume")
		},
	}
}
