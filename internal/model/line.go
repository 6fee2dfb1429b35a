package model

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// Line is one row of a bill: either a section Header or a priced Item.
// The two cases carry different fields, so they are separate types rather
// than one record with conditionally meaningful columns.
type Line interface {
	Bill() string
	line()
}

// Header is a section heading. It carries no quantity and contributes
// nothing to the bill total.
type Header struct {
	BillNo      string `json:"bill_no"`
	Description string `json:"description"`
}

// Item is a billed work item. Quantity either comes from its dimension
// entries (squared on aggregation) or, when Dimensions is empty, is taken
// verbatim from the Quantity field.
type Item struct {
	BillNo      string      `json:"bill_no"`
	ItemNo      string      `json:"item_no"`
	Description string      `json:"description"`
	Unit        string      `json:"unit"`
	Quantity    float64     `json:"quantity"`
	Rate        float64     `json:"rate"`
	Amount      float64     `json:"amount"`
	Dimensions  []Dimension `json:"dimensions,omitempty"`
}

func (h Header) Bill() string { return h.BillNo }
func (h Header) line()        {}

func (i Item) Bill() string { return i.BillNo }
func (i Item) line()        {}

// Bill is an ordered sequence of lines with a derived grand total.
type Bill struct {
	Lines       []Line  `json:"-"`
	TotalAmount float64 `json:"total_amount"`
}

const (
	lineKindHeader = "header"
	lineKindItem   = "item"
)

type lineEnvelope struct {
	Kind   string  `json:"kind"`
	Header *Header `json:"header,omitempty"`
	Item   *Item   `json:"item,omitempty"`
}

// MarshalLine encodes a line as a {"kind": ...} JSON envelope for storage
// and API transport.
func MarshalLine(l Line) ([]byte, error) {
	var env lineEnvelope
	switch v := l.(type) {
	case Header:
		env = lineEnvelope{Kind: lineKindHeader, Header: &v}
	case Item:
		env = lineEnvelope{Kind: lineKindItem, Item: &v}
	default:
		return nil, eris.Errorf("model: unknown line type %T", l)
	}
	b, err := json.Marshal(env)
	return b, eris.Wrap(err, "model: marshal line")
}

// UnmarshalLine decodes a line envelope produced by MarshalLine.
func UnmarshalLine(data []byte) (Line, error) {
	var env lineEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, eris.Wrap(err, "model: unmarshal line")
	}
	switch env.Kind {
	case lineKindHeader:
		if env.Header == nil {
			return nil, eris.New("model: header envelope missing payload")
		}
		return *env.Header, nil
	case lineKindItem:
		if env.Item == nil {
			return nil, eris.New("model: item envelope missing payload")
		}
		return *env.Item, nil
	default:
		return nil, eris.Errorf("model: unknown line kind %q", env.Kind)
	}
}

type billJSON struct {
	Lines       []lineEnvelope `json:"lines"`
	TotalAmount float64        `json:"total_amount"`
}

// MarshalJSON encodes the bill with each line wrapped in its kind envelope.
func (b Bill) MarshalJSON() ([]byte, error) {
	out := billJSON{
		Lines:       make([]lineEnvelope, 0, len(b.Lines)),
		TotalAmount: b.TotalAmount,
	}
	for _, l := range b.Lines {
		switch v := l.(type) {
		case Header:
			out.Lines = append(out.Lines, lineEnvelope{Kind: lineKindHeader, Header: &v})
		case Item:
			out.Lines = append(out.Lines, lineEnvelope{Kind: lineKindItem, Item: &v})
		default:
			return nil, eris.Errorf("model: unknown line type %T", l)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a bill produced by MarshalJSON.
func (b *Bill) UnmarshalJSON(data []byte) error {
	var in billJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return eris.Wrap(err, "model: unmarshal bill")
	}
	b.Lines = make([]Line, 0, len(in.Lines))
	for _, env := range in.Lines {
		switch {
		case env.Kind == lineKindHeader && env.Header != nil:
			b.Lines = append(b.Lines, *env.Header)
		case env.Kind == lineKindItem && env.Item != nil:
			b.Lines = append(b.Lines, *env.Item)
		default:
			return eris.Errorf("model: invalid line envelope kind %q", env.Kind)
		}
	}
	b.TotalAmount = in.TotalAmount
	return nil
}
