package rate

import (
	"math"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Karanja-eng/jengacost/internal/catalog"
	"github.com/Karanja-eng/jengacost/internal/model"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(catalog.New(), DefaultPriceBook())
	require.NoError(t, err)
	return e
}

// sampleInputs returns a positive-quantity input for every catalog type.
func sampleInputs() map[string]model.WorkItemInput {
	return map[string]model.WorkItemInput{
		catalog.TypeSiteExcavation: {
			"volume": "32", "soil_type": "Hard", "depth_m": "2.0",
			"water_table": "High", "cart_away": "true", "region": "Nairobi",
		},
		catalog.TypeMassConcrete: {
			"volume": "12", "concrete_class": "C20", "mixing": "Site Mixed", "region": "Coast",
		},
		catalog.TypeConcreteSlab: {
			"volume": "8", "concrete_class": "C25", "steel_ratio_kg_m3": "110",
			"formwork_quality": "Fair", "region": "Nairobi",
		},
		catalog.TypeMasonryWalling: {
			"area": "45", "block_type": "Machine Cut", "wall_thickness_mm": "200", "region": "Western",
		},
		catalog.TypeWallTiling: {
			"area": "18", "tile_size": "40x40", "quality": "Premium",
			"wastage_percent": "7.5", "pattern": "Diagonal", "wall_condition": "Fair", "region": "Coast",
		},
		catalog.TypeFloorTiling: {
			"area": "25", "tile_size": "60x60", "quality": "Standard",
			"wastage_percent": "5", "pattern": "Straight", "floor_condition": "Screed Required", "region": "Nairobi",
		},
		catalog.TypePainting: {
			"area": "120", "coats": "2", "paint_quality": "Economy",
			"surface_condition": "Flaking", "region": "Western",
		},
		catalog.TypePipework: {
			"length": "40", "pipe_diameter_mm": "150", "trench_depth_m": "0.9",
			"bedding": "Sand", "region": "Coast",
		},
		catalog.TypeManhole: {
			"manhole_type": "Standard", "count": "3", "region": "Nairobi",
		},
	}
}

func TestComputeRateInvariantAllTypes(t *testing.T) {
	e := newTestEngine(t)
	cat := catalog.New()

	for typeName, in := range sampleInputs() {
		t.Run(typeName, func(t *testing.T) {
			res, err := e.Compute(typeName, in)
			require.NoError(t, err)

			schema, err := cat.Get(typeName)
			require.NoError(t, err)
			assert.Equal(t, schema.Unit, res.Unit)

			assert.Greater(t, res.Quantity, 0.0)
			assert.Greater(t, res.TotalCost, 0.0)
			assert.Less(t, math.Abs(res.TotalCost-res.UnitRate*res.Quantity), 0.01)

			for name, v := range res.Breakdown.Materials {
				assert.GreaterOrEqual(t, v, 0.0, "material %s", name)
			}
			for name, v := range res.Breakdown.Labour {
				assert.GreaterOrEqual(t, v, 0.0, "labour %s", name)
			}
			for name, v := range res.Breakdown.Equipment {
				assert.GreaterOrEqual(t, v, 0.0, "equipment %s", name)
			}
			assert.GreaterOrEqual(t, res.Breakdown.Overhead, 0.0)
			assert.GreaterOrEqual(t, res.Breakdown.Contingency, 0.0)
			assert.GreaterOrEqual(t, res.Breakdown.Profit, 0.0)
		})
	}
}

func TestWallTilingScenario(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Compute(catalog.TypeWallTiling, model.WorkItemInput{
		"area":            "10",
		"tile_size":       "30x30",
		"quality":         "Standard",
		"wastage_percent": "10",
		"pattern":         "Straight",
		"wall_condition":  "Good",
		"region":          "Western",
	})
	require.NoError(t, err)

	assert.Equal(t, "KES/m2", res.Unit)
	assert.InDelta(t, 10.0, res.Quantity, 0.001)
	assert.Greater(t, res.TotalCost, 0.0)
	assert.Less(t, math.Abs(res.TotalCost-res.UnitRate*10), 0.01)
	assert.Empty(t, res.Warnings)

	// tilesNeeded = 10 x 11.11 x 1.10 x 1.0 = 122.21 at KES 75 each.
	assert.InDelta(t, 122.21*75, res.Breakdown.Materials["Tiles"], 0.01)
}

func TestZeroVolumeGuard(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Compute(catalog.TypeMassConcrete, model.WorkItemInput{
		"volume":         "0",
		"concrete_class": "C20",
		"mixing":         "Site Mixed",
		"region":         "Nairobi",
	})
	require.NoError(t, err)

	assert.Zero(t, res.Quantity)
	assert.Zero(t, res.UnitRate)
	assert.Zero(t, res.TotalCost)

	var codes []string
	for _, w := range res.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, model.WarnZeroQuantity)
}

func TestUnsupportedType(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Compute("Borehole Drilling", model.WorkItemInput{"depth": "80"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnsupported))
	assert.Nil(t, res)
	assert.False(t, e.Supports("Borehole Drilling"))
}

func TestRegionMonotonicity(t *testing.T) {
	e := newTestEngine(t)

	rates := make(map[string]float64)
	for _, region := range []string{"Nairobi", "Coast", "Western"} {
		res, err := e.Compute(catalog.TypeMasonryWalling, model.WorkItemInput{
			"area": "30", "block_type": "Concrete Block", "wall_thickness_mm": "200", "region": region,
		})
		require.NoError(t, err)
		rates[region] = res.UnitRate
	}

	assert.Greater(t, rates["Nairobi"], rates["Coast"])
	assert.Greater(t, rates["Coast"], rates["Western"])
}

func TestMissingAndBadNumbersCoerceWithWarnings(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Compute(catalog.TypePainting, model.WorkItemInput{
		"coats":             "two",
		"paint_quality":     "Standard",
		"surface_condition": "Good",
		"region":            "Coast",
	})
	require.NoError(t, err)

	codes := make(map[string][]string)
	for _, w := range res.Warnings {
		codes[w.Field] = append(codes[w.Field], w.Code)
	}
	assert.Contains(t, codes["area"], model.WarnMissingField)
	assert.Contains(t, codes["area"], model.WarnZeroQuantity)
	assert.Contains(t, codes["coats"], model.WarnBadNumber)
	assert.Zero(t, res.TotalCost)
}

func TestUnrecognizedEnumUsesDefaultBranch(t *testing.T) {
	e := newTestEngine(t)

	base := model.WorkItemInput{
		"area": "10", "tile_size": "30x30", "quality": "Standard",
		"wastage_percent": "0", "pattern": "Straight", "wall_condition": "Good", "region": "Western",
	}
	withBogus := model.WorkItemInput{
		"area": "10", "tile_size": "35x35", "quality": "Standard",
		"wastage_percent": "0", "pattern": "Zigzag", "wall_condition": "Good", "region": "Upcountry",
	}

	want, err := e.Compute(catalog.TypeWallTiling, base)
	require.NoError(t, err)
	got, err := e.Compute(catalog.TypeWallTiling, withBogus)
	require.NoError(t, err)

	// 35x35 -> 30x30 coverage, Zigzag -> Straight, Upcountry -> Western basis.
	assert.InDelta(t, want.UnitRate, got.UnitRate, 0.01)
}

func TestBreakdownKeysAlwaysPresent(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Compute(catalog.TypePainting, model.WorkItemInput{
		"area": "40", "coats": "1", "paint_quality": "Standard",
		"surface_condition": "Good", "region": "Western",
	})
	require.NoError(t, err)

	// Primer and filler do not apply to a sound surface but the components
	// stay in the breakdown at zero.
	primer, ok := res.Breakdown.Materials["Primer"]
	require.True(t, ok)
	assert.Zero(t, primer)

	filler, ok := res.Breakdown.Materials["Filler"]
	require.True(t, ok)
	assert.Zero(t, filler)
}

func TestManholePerItemResult(t *testing.T) {
	e := newTestEngine(t)

	one, err := e.Compute(catalog.TypeManhole, model.WorkItemInput{
		"manhole_type": "Deep", "count": "1", "region": "Western",
	})
	require.NoError(t, err)
	assert.Equal(t, "KES/Nr", one.Unit)
	assert.InDelta(t, one.UnitRate, one.TotalCost, 0.01)

	three, err := e.Compute(catalog.TypeManhole, model.WorkItemInput{
		"manhole_type": "Deep", "count": "3", "region": "Western",
	})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, three.Quantity, 0.001)
	assert.InDelta(t, one.UnitRate, three.UnitRate, 0.01)
	assert.Less(t, math.Abs(three.TotalCost-three.UnitRate*3), 0.01)
}

func TestEngineDoesNotMutateInput(t *testing.T) {
	e := newTestEngine(t)

	in := model.WorkItemInput{
		"volume": "5", "concrete_class": "C15", "mixing": "Ready Mix", "region": "Coast",
	}
	snapshot := model.WorkItemInput{}
	for k, v := range in {
		snapshot[k] = v
	}

	_, err := e.Compute(catalog.TypeMassConcrete, in)
	require.NoError(t, err)
	assert.Equal(t, snapshot, in)
}

func TestReadyMixSkipsMixerHire(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Compute(catalog.TypeMassConcrete, model.WorkItemInput{
		"volume": "10", "concrete_class": "C25", "mixing": "Ready Mix", "region": "Western",
	})
	require.NoError(t, err)

	assert.Zero(t, res.Breakdown.Equipment["Mixer hire"])
	assert.Greater(t, res.Breakdown.Materials["Ready-mix concrete"], 0.0)
	assert.Zero(t, res.Breakdown.Materials["Cement"])
}
