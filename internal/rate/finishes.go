package rate

import "github.com/Karanja-eng/jengacost/internal/model"

// tileCoverage returns tiles per m2 for a tile size. Default case: 30x30.
func tileCoverage(size string) float64 {
	switch size {
	case "40x40":
		return 6.25
	case "60x60":
		return 2.78
	default:
		return 11.11
	}
}

// patternFactor scales tile count and fixing labour for the laying pattern.
// Default case: Straight.
func patternFactor(pattern string) float64 {
	switch pattern {
	case "Diagonal":
		return 1.15
	case "Herringbone":
		return 1.25
	default:
		return 1.0
	}
}

// tilingFormula prices wall or floor tiling per m2. The two trades share the
// consumption math; they differ in the surface condition branches (walls:
// Good/Fair/Poor prep factors; floors: Uneven prep or a levelling screed).
//
// Multiplier order: overhead (10%), contingency (10%) and profit (15%) are
// taken on the raw subtotal; the regional multiplier then scales the
// marked-up total.
func tilingFormula(floor bool) formula {
	conditionField := "wall_condition"
	if floor {
		conditionField = "floor_condition"
	}
	return formula{
		fields: []string{"area", "tile_size", "quality", "wastage_percent", "pattern", conditionField, "region"},
		compute: func(r *reader, p PriceBook) *model.RateResult {
			area := r.number("area")
			quality := r.enum("quality")
			wastage := r.percent("wastage_percent")
			pattern := patternFactor(r.enum("pattern"))
			region := r.enum("region")
			labour := p.LabourFor(region)

			// tiles = area x coverage x (1 + wastage) x pattern factor.
			tilesNeeded := area * tileCoverage(r.enum("tile_size")) * (1 + wastage) * pattern

			// Default case: sound surface, no prep premium.
			conditionFactor := 1.0
			screed := false
			switch r.enum(conditionField) {
			case "Fair":
				conditionFactor = 1.15
			case "Poor":
				conditionFactor = 1.35
			case "Uneven":
				conditionFactor = 1.2
			case "Screed Required":
				conditionFactor = 1.2
				screed = true
			}

			materials := map[string]float64{
				"Tiles":    round2(tilesNeeded * p.Material("tile", quality)),
				"Adhesive": round2(area / 4.0 * p.Material("adhesive_bag", "")),
				"Grout":    round2(area * 0.35 * p.Material("grout_kg", "")),
				"Screed":   0,
			}
			if screed {
				materials["Screed"] = round2(area * p.Material("screed_m2", ""))
			}

			// A fixer lays 8 m2/day; pattern complexity and surface prep both
			// slow the trade.
			labourCosts := map[string]float64{
				"Tiling fixer":        round2(area / 8.0 * labour.Skilled * pattern),
				"Surface preparation": round2(area / 20.0 * labour.Unskilled * conditionFactor),
			}

			equipment := map[string]float64{"Tile cutter hire": 0}
			if area > 0 {
				equipment["Tile cutter hire"] = p.EquipmentFee("tile_cutter")
			}

			b := model.CostBreakdown{Materials: materials, Labour: labourCosts, Equipment: equipment}

			subtotal := b.Subtotal()
			b.Overhead = round2(subtotal * 0.10)
			b.Contingency = round2(subtotal * 0.10)
			b.Profit = round2(subtotal * 0.15)

			total := (subtotal + b.Overhead + b.Contingency + b.Profit) * p.RegionMultiplier(region)
			return finish("KES/m2", area, total, b, r, "area")
		},
	}
}

// paintingFormula prices emulsion painting per m2.
//
// Multiplier order: overhead (10%), contingency (8%) and profit (12%) are
// taken on the raw subtotal; the regional multiplier then scales the
// marked-up total.
func paintingFormula() formula {
	return formula{
		fields: []string{"area", "coats", "paint_quality", "surface_condition", "region"},
		compute: func(r *reader, p PriceBook) *model.RateResult {
			area := r.number("area")
			coats := r.number("coats")
			quality := r.enum("paint_quality")
			region := r.enum("region")
			labour := p.LabourFor(region)

			// Default case: previously painted sound surface.
			prepFactor := 1.0
			primer := false
			filler := false
			switch r.enum("surface_condition") {
			case "New":
				primer = true
			case "Flaking":
				prepFactor = 1.3
				filler = true
			}

			// Emulsion covers 11 m2 per litre per coat.
			litres := area * coats / 11.0

			materials := map[string]float64{
				"Emulsion paint": round2(litres * p.Material("paint_litre", quality)),
				"Primer":         0,
				"Filler":         0,
				"Sundries":       0,
			}
			if primer {
				materials["Primer"] = round2(area / 12.0 * p.Material("primer_litre", ""))
			}
			if filler {
				materials["Filler"] = round2(area * 0.05 * p.Material("filler_kg", ""))
			}
			if area > 0 {
				materials["Sundries"] = 500
			}

			// A painter covers 20 m2 per coat per day.
			labourCosts := map[string]float64{
				"Painter":             round2(area * coats / 20.0 * labour.SemiSkilled),
				"Surface preparation": round2(area / 25.0 * labour.Unskilled * prepFactor),
			}

			equipment := map[string]float64{"Ladder and trestle hire": 0}
			if area > 0 {
				equipment["Ladder and trestle hire"] = p.EquipmentFee("ladder_trestle")
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
