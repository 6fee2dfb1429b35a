// Package catalog is the static registry of supported work-item types and
// their input schemas.
package catalog

import (
	"github.com/rotisserie/eris"

	"github.com/Karanja-eng/jengacost/internal/model"
)

// ErrNotFound is returned when a work-item type is not in the catalog.
var ErrNotFound = eris.New("catalog: work item type not found")

// Supported work-item type names.
const (
	TypeSiteExcavation  = "Site Excavation"
	TypeMassConcrete    = "Mass Concrete Foundation"
	TypeConcreteSlab    = "Reinforced Concrete Slab"
	TypeMasonryWalling  = "Masonry Walling"
	TypeWallTiling      = "Wall Tiling"
	TypeFloorTiling     = "Floor Tiling"
	TypePainting        = "Painting"
	TypePipework        = "Drainage Pipework"
	TypeManhole         = "Manhole Construction"
)

// Regions with dedicated labour rates and multipliers. Any other region
// string falls back to the Western cost basis.
var Regions = []string{"Nairobi", "Coast", "Western"}

// Catalog maps work-item type names to their immutable input schemas.
type Catalog struct {
	schemas map[string]model.WorkItemSchema
	order   []string
}

// New builds the catalog with every supported work-item schema registered.
func New() *Catalog {
	c := &Catalog{schemas: make(map[string]model.WorkItemSchema)}
	for _, s := range schemas() {
		c.schemas[s.TypeName] = s
		c.order = append(c.order, s.TypeName)
	}
	return c
}

// Get returns the schema for typeName, or ErrNotFound.
func (c *Catalog) Get(typeName string) (*model.WorkItemSchema, error) {
	s, ok := c.schemas[typeName]
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "catalog: %q", typeName)
	}
	return &s, nil
}

// Types returns all type names in registration order.
func (c *Catalog) Types() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func regionField() model.Field {
	return model.Field{Name: "region", Kind: model.FieldEnum, Options: Regions, Required: true}
}

func schemas() []model.WorkItemSchema {
	return []model.WorkItemSchema{
		{
			TypeName: TypeSiteExcavation,
			Unit:     "KES/m3",
			Fields: []model.Field{
				{Name: "volume", Kind: model.FieldNumber, Required: true},
				{Name: "soil_type", Kind: model.FieldEnum, Options: []string{"Soft", "Medium", "Hard", "Rock"}, Required: true},
				{Name: "depth_m", Kind: model.FieldNumber},
				{Name: "water_table", Kind: model.FieldEnum, Options: []string{"None", "Low", "High"}},
				{Name: "cart_away", Kind: model.FieldBoolean},
				regionField(),
			},
		},
		{
			TypeName: TypeMassConcrete,
			Unit:     "KES/m3",
			Fields: []model.Field{
				{Name: "volume", Kind: model.FieldNumber, Required: true},
				{Name: "concrete_class", Kind: model.FieldEnum, Options: []string{"C15", "C20", "C25"}, Required: true},
				{Name: "mixing", Kind: model.FieldEnum, Options: []string{"Site Mixed", "Ready Mix"}},
				regionField(),
			},
		},
		{
			TypeName: TypeConcreteSlab,
			Unit:     "KES/m3",
			Fields: []model.Field{
				{Name: "volume", Kind: model.FieldNumber, Required: true},
				{Name: "concrete_class", Kind: model.FieldEnum, Options: []string{"C15", "C20", "C25"}, Required: true},
				{Name: "steel_ratio_kg_m3", Kind: model.FieldNumber, Required: true},
				{Name: "formwork_quality", Kind: model.FieldEnum, Options: []string{"Rough", "Fair", "Wrot"}},
				regionField(),
			},
		},
		{
			TypeName: TypeMasonryWalling,
			Unit:     "KES/m2",
			Fields: []model.Field{
				{Name: "area", Kind: model.FieldNumber, Required: true},
				{Name: "block_type", Kind: model.FieldEnum, Options: []string{"Machine Cut", "Quarry Dressed", "Concrete Block"}, Required: true},
				{Name: "wall_thickness_mm", Kind: model.FieldEnum, Options: []string{"150", "200"}},
				regionField(),
			},
		},
		{
			TypeName: TypeWallTiling,
			Unit:     "KES/m2",
			Fields: []model.Field{
				{Name: "area", Kind: model.FieldNumber, Required: true},
				{Name: "tile_size", Kind: model.FieldEnum, Options: []string{"30x30", "40x40", "60x60"}, Required: true},
				{Name: "quality", Kind: model.FieldEnum, Options: []string{"Economy", "Standard", "Premium"}},
				{Name: "wastage_percent", Kind: model.FieldNumber},
				{Name: "pattern", Kind: model.FieldEnum, Options: []string{"Straight", "Diagonal", "Herringbone"}},
				{Name: "wall_condition", Kind: model.FieldEnum, Options: []string{"Good", "Fair", "Poor"}},
				regionField(),
			},
		},
		{
			TypeName: TypeFloorTiling,
			Unit:     "KES/m2",
			Fields: []model.Field{
				{Name: "area", Kind: model.FieldNumber, Required: true},
				{Name: "tile_size", Kind: model.FieldEnum, Options: []string{"30x30", "40x40", "60x60"}, Required: true},
				{Name: "quality", Kind: model.FieldEnum, Options: []string{"Economy", "Standard", "Premium"}},
				{Name: "wastage_percent", Kind: model.FieldNumber},
				{Name: "pattern", Kind: model.FieldEnum, Options: []string{"Straight", "Diagonal", "Herringbone"}},
				{Name: "floor_condition", Kind: model.FieldEnum, Options: []string{"Good", "Uneven", "Screed Required"}},
				regionField(),
			},
		},
		{
			TypeName: TypePainting,
			Unit:     "KES/m2",
			Fields: []model.Field{
				{Name: "area", Kind: model.FieldNumber, Required: true},
				{Name: "coats", Kind: model.FieldNumber, Required: true},
				{Name: "paint_quality", Kind: model.FieldEnum, Options: []string{"Economy", "Standard", "Premium"}},
				{Name: "surface_condition", Kind: model.FieldEnum, Options: []string{"New", "Good", "Flaking"}},
				regionField(),
			},
		},
		{
			TypeName: TypePipework,
			Unit:     "KES/m",
			Fields: []model.Field{
				{Name: "length", Kind: model.FieldNumber, Required: true},
				{Name: "pipe_diameter_mm", Kind: model.FieldEnum, Options: []string{"100", "150", "225"}, Required: true},
				{Name: "trench_depth_m", Kind: model.FieldNumber},
				{Name: "bedding", Kind: model.FieldEnum, Options: []string{"None", "Sand", "Granular"}},
				regionField(),
			},
		},
		{
			TypeName: TypeManhole,
			Unit:     "KES/Nr",
			Fields: []model.Field{
				{Name: "manhole_type", Kind: model.FieldEnum, Options: []string{"Shallow", "Standard", "Deep"}, Required: true},
				{Name: "count", Kind: model.FieldNumber, Required: true},
				regionField(),
			},
		},
	}
}
