// Package rate implements the parametric rate engine: per work-item-type
// formulas that turn raw inputs into an itemized cost breakdown and a unit
// rate.
package rate

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Karanja-eng/jengacost/internal/catalog"
	"github.com/Karanja-eng/jengacost/internal/model"
)

// ErrUnsupported is returned for a type the engine has no formula for.
// No partial breakdown is produced in that case.
var ErrUnsupported = eris.New("rate: unsupported work item type")

// formula computes one work-item type. fields declares every input field the
// formula reads; registration validates them against the catalog schema.
type formula struct {
	fields  []string
	compute func(r *reader, p PriceBook) *model.RateResult
}

// Engine dispatches rate computations through a per-type formula table.
type Engine struct {
	book     PriceBook
	formulas map[string]formula
}

// New builds an engine over the catalog. It fails if any formula reads a
// field the corresponding schema does not declare, or if a catalog type has
// no formula.
func New(cat *catalog.Catalog, book PriceBook) (*Engine, error) {
	e := &Engine{book: book, formulas: map[string]formula{
		catalog.TypeSiteExcavation: excavationFormula(),
		catalog.TypeMassConcrete:   massConcreteFormula(),
		catalog.TypeConcreteSlab:   concreteSlabFormula(),
		catalog.TypeMasonryWalling: masonryFormula(),
		catalog.TypeWallTiling:     tilingFormula(false),
		catalog.TypeFloorTiling:    tilingFormula(true),
		catalog.TypePainting:       paintingFormula(),
		catalog.TypePipework:       pipeworkFormula(),
		catalog.TypeManhole:        manholeFormula(),
	}}

	for typeName, f := range e.formulas {
		schema, err := cat.Get(typeName)
		if err != nil {
			return nil, eris.Wrapf(err, "rate: formula %q has no catalog schema", typeName)
		}
		for _, field := range f.fields {
			if _, ok := schema.Field(field); !ok {
				return nil, eris.Errorf("rate: formula %q reads undeclared field %q", typeName, field)
			}
		}
	}
	for _, typeName := range cat.Types() {
		if _, ok := e.formulas[typeName]; !ok {
			return nil, eris.Errorf("rate: catalog type %q has no formula", typeName)
		}
	}
	return e, nil
}

// Compute runs the formula for typeName against the input. Degenerate inputs
// (missing numbers, zero quantities, unrecognized enum values) never fail;
// they produce a well-typed result carrying warnings. The input map is never
// mutated.
func (e *Engine) Compute(typeName string, in model.WorkItemInput) (*model.RateResult, error) {
	f, ok := e.formulas[typeName]
	if !ok {
		return nil, eris.Wrapf(ErrUnsupported, "rate: %q", typeName)
	}

	r := newReader(in)
	result := f.compute(r, e.book)
	result.Warnings = r.warnings

	zap.L().Debug("rate computed",
		zap.String("type", typeName),
		zap.Float64("quantity", result.Quantity),
		zap.Float64("unit_rate", result.UnitRate),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

// Supports reports whether the engine has a formula for typeName.
func (e *Engine) Supports(typeName string) bool {
	_, ok := e.formulas[typeName]
	return ok
}

// round2 rounds a currency amount to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// perUnit derives a unit rate, guarding the zero-quantity divisor. A zero or
// negative quantity yields rate 0 with a zero_quantity warning.
func perUnit(total, quantity float64, r *reader, field string) float64 {
	if quantity <= 0 {
		r.warn(field, model.WarnZeroQuantity, "%s is zero, unit rate set to 0", field)
		return 0
	}
	return round2(total / quantity)
}

// finish assembles the result for a per-quantity item so that
// TotalCost = UnitRate x Quantity holds exactly after rounding.
func finish(unit string, quantity, total float64, b model.CostBreakdown, r *reader, qtyField string) *model.RateResult {
	unitRate := perUnit(total, quantity, r, qtyField)
	return &model.RateResult{
		UnitRate:  unitRate,
		Unit:      unit,
		Quantity:  quantity,
		TotalCost: round2(unitRate * quantity),
		Breakdown: b,
	}
}
