package rate

// LabourRates holds day rates in KES for one region.
type LabourRates struct {
	Skilled     float64 `yaml:"skilled" mapstructure:"skilled"`
	SemiSkilled float64 `yaml:"semi_skilled" mapstructure:"semi_skilled"`
	Unskilled   float64 `yaml:"unskilled" mapstructure:"unskilled"`
}

// PriceBook holds the pricing tables every formula draws from: material
// unit prices by quality tier, regional labour day rates, regional cost
// multipliers and flat equipment hire fees.
type PriceBook struct {
	Materials map[string]map[string]float64 `yaml:"materials" mapstructure:"materials"`
	Labour    map[string]LabourRates        `yaml:"labour" mapstructure:"labour"`
	Regions   map[string]float64            `yaml:"regions" mapstructure:"regions"`
	Equipment map[string]float64            `yaml:"equipment" mapstructure:"equipment"`
}

// standardTier is the fallback quality tier when a material has no entry for
// the requested tier.
const standardTier = "Standard"

// Material returns the unit price for a material at the given quality tier.
// An unknown tier falls back to the Standard tier; an unknown material
// prices at zero.
func (p PriceBook) Material(name, tier string) float64 {
	tiers, ok := p.Materials[name]
	if !ok {
		return 0
	}
	if v, ok := tiers[tier]; ok {
		return v
	}
	return tiers[standardTier]
}

// LabourFor returns the day rates for a region. Unknown regions use the
// Western basis, the catalog's documented default.
func (p PriceBook) LabourFor(region string) LabourRates {
	if r, ok := p.Labour[region]; ok {
		return r
	}
	return p.Labour["Western"]
}

// RegionMultiplier returns the cost multiplier for a region, 1.0 when the
// region is not recognized.
func (p PriceBook) RegionMultiplier(region string) float64 {
	if m, ok := p.Regions[region]; ok {
		return m
	}
	return 1.0
}

// EquipmentFee returns the flat hire fee for an equipment item, 0 when
// unpriced.
func (p PriceBook) EquipmentFee(name string) float64 {
	return p.Equipment[name]
}

// DefaultPriceBook returns the built-in KES price tables. Config overrides
// are merged over these in config.Load.
func DefaultPriceBook() PriceBook {
	flat := func(v float64) map[string]float64 {
		return map[string]float64{standardTier: v}
	}
	return PriceBook{
		Materials: map[string]map[string]float64{
			"cement_bag":       flat(780),
			"sand_m3":          flat(2300),
			"ballast_m3":       flat(2800),
			"shoring_timber_m": flat(650),
			"readymix_m3": {
				"C15": 9500, "C20": 10500, "C25": 11800, standardTier: 10500,
			},
			"rebar_kg":       flat(185),
			"binding_wire_kg": flat(320),
			"formwork_m2": {
				"Rough": 450, "Fair": 600, "Wrot": 850, standardTier: 600,
			},
			"block": {
				"Machine Cut": 65, "Quarry Dressed": 85, "Concrete Block": 55, standardTier: 65,
			},
			"tile": {
				"Economy": 45, standardTier: 75, "Premium": 140,
			},
			"adhesive_bag": flat(850),
			"grout_kg":     flat(180),
			"screed_m2":    flat(350),
			"paint_litre": {
				"Economy": 320, standardTier: 520, "Premium": 780,
			},
			"primer_litre": flat(420),
			"filler_kg":    flat(240),
			"pipe_m": {
				"100": 590, "150": 980, "225": 1850, standardTier: 980,
			},
			"bedding_sand_m3":     flat(2300),
			"bedding_granular_m3": flat(3000),
			"manhole_blocks": {
				"Shallow": 14000, standardTier: 22000, "Deep": 38000,
			},
			"manhole_cover": {
				"Shallow": 6500, standardTier: 8500, "Deep": 12000,
			},
		},
		Labour: map[string]LabourRates{
			"Nairobi": {Skilled: 1800, SemiSkilled: 1200, Unskilled: 800},
			"Coast":   {Skilled: 1600, SemiSkilled: 1050, Unskilled: 700},
			"Western": {Skilled: 1400, SemiSkilled: 900, Unskilled: 600},
		},
		Regions: map[string]float64{
			"Nairobi": 1.25,
			"Coast":   1.15,
			"Western": 1.0,
		},
		Equipment: map[string]float64{
			"compactor":       2500,
			"dewatering_pump": 4000,
			"mixer":           3000,
			"poker_vibrator":  1500,
			"scaffolding":     2000,
			"tile_cutter":     1200,
			"ladder_trestle":  800,
			"trench_compactor": 1800,
		},
	}
}
