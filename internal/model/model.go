// Package model defines the shared data types for rate computation and
// Bill of Quantities aggregation.
package model

// FieldKind is the data kind of a work-item input field.
type FieldKind string

const (
	FieldNumber  FieldKind = "number"
	FieldEnum    FieldKind = "enum"
	FieldBoolean FieldKind = "boolean"
)

// Field describes one input field of a work-item schema.
type Field struct {
	Name     string    `json:"name"`
	Kind     FieldKind `json:"kind"`
	Options  []string  `json:"options,omitempty"`
	Required bool      `json:"required"`
}

// WorkItemSchema enumerates the inputs a work-item type accepts. Schemas are
// immutable once registered in the catalog.
type WorkItemSchema struct {
	TypeName string  `json:"type_name"`
	Unit     string  `json:"unit"`
	Fields   []Field `json:"fields"`
}

// Field returns the named field, if the schema declares it.
func (s *WorkItemSchema) Field(name string) (*Field, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// WorkItemInput is the raw, unvalidated field values for one calculation
// request. The rate engine never mutates it.
type WorkItemInput map[string]string

// CostBreakdown itemizes a priced work item. Every component the formula
// computes is present in its map even when the value is zero.
type CostBreakdown struct {
	Materials   map[string]float64 `json:"materials"`
	Labour      map[string]float64 `json:"labour"`
	Equipment   map[string]float64 `json:"equipment"`
	Overhead    float64            `json:"overhead"`
	Contingency float64            `json:"contingency"`
	Profit      float64            `json:"profit"`
}

// Subtotal sums materials, labour and equipment components before markups.
func (b CostBreakdown) Subtotal() float64 {
	var sum float64
	for _, v := range b.Materials {
		sum += v
	}
	for _, v := range b.Labour {
		sum += v
	}
	for _, v := range b.Equipment {
		sum += v
	}
	return sum
}

// Warning records a recovered input problem. Degenerate inputs never abort a
// computation; they surface here so zero-by-default results stay observable.
type Warning struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Warning codes emitted by the rate engine.
const (
	WarnMissingField = "missing_field"
	WarnBadNumber    = "bad_number"
	WarnZeroQuantity = "zero_quantity"
)

// RateResult is the fully itemized outcome of one rate computation.
// TotalCost == UnitRate x Quantity within float rounding for per-quantity
// units; for per-item units (KES/Nr) the quantity is the item count.
type RateResult struct {
	UnitRate  float64       `json:"unit_rate"`
	Unit      string        `json:"unit"`
	Quantity  float64       `json:"quantity"`
	TotalCost float64       `json:"total_cost"`
	Breakdown CostBreakdown `json:"breakdown"`
	Warnings  []Warning     `json:"warnings,omitempty"`
}

// Dimension is one dimension-paper row. A zero Timesing counts as 1. A nil
// Length makes the row a placeholder that squares to zero. Deduction rows
// subtract from the line quantity.
type Dimension struct {
	Timesing  float64  `json:"timesing,omitempty"`
	Length    *float64 `json:"length,omitempty"`
	Width     *float64 `json:"width,omitempty"`
	Height    *float64 `json:"height,omitempty"`
	Deduction bool     `json:"deduction,omitempty"`
}

// Float returns a pointer to v, for building optional dimension fields.
func Float(v float64) *float64 { return &v }
