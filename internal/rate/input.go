package rate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Karanja-eng/jengacost/internal/model"
)

// reader coerces raw input values and records a warning for every default
// it substitutes, so a zero-by-default result is visible to the caller.
type reader struct {
	in       model.WorkItemInput
	warnings []model.Warning
}

func newReader(in model.WorkItemInput) *reader {
	return &reader{in: in}
}

func (r *reader) warn(field, code, format string, args ...any) {
	r.warnings = append(r.warnings, model.Warning{
		Field:   field,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// number returns the field coerced to float64. Missing or non-numeric
// values coerce to 0 with a warning.
func (r *reader) number(field string) float64 {
	raw, ok := r.in[field]
	if !ok || strings.TrimSpace(raw) == "" {
		r.warn(field, model.WarnMissingField, "%s not supplied, using 0", field)
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		r.warn(field, model.WarnBadNumber, "%s value %q is not numeric, using 0", field, raw)
		return 0
	}
	return v
}

// percent reads a percentage field and returns it as a fraction (10 -> 0.10).
func (r *reader) percent(field string) float64 {
	return r.number(field) / 100
}

// enum returns the raw field value; formulas match it against their known
// branches and fall through to the documented default case on anything else.
func (r *reader) enum(field string) string {
	return strings.TrimSpace(r.in[field])
}

// boolean reports whether the field parses as true. Anything unparseable is
// false.
func (r *reader) boolean(field string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(r.in[field]))
	return err == nil && v
}
