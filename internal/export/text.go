// Package export serializes rate results and bills into text, CSV and XLSX
// representations.
package export

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Karanja-eng/jengacost/internal/model"
)

var printer = message.NewPrinter(language.English)

// kes formats an amount with thousands grouping, e.g. "KES 12,345.50".
func kes(v float64) string {
	return printer.Sprintf("KES %.2f", v)
}

// quantityUnit extracts the measurement unit from a rate unit, e.g.
// "KES/m2" -> "m2".
func quantityUnit(rateUnit string) string {
	if i := strings.Index(rateUnit, "/"); i >= 0 {
		return rateUnit[i+1:]
	}
	return rateUnit
}

// Text renders a rate result as a plain-text report. Sections appear in a
// fixed order (materials, labour, equipment, other costs) with component
// names sorted, so the output is deterministic.
func Text(r *model.RateResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "QUANTITY:  %.2f %s\n", r.Quantity, quantityUnit(r.Unit))
	fmt.Fprintf(&b, "UNIT RATE: %s per %s\n", kes(r.UnitRate), quantityUnit(r.Unit))
	fmt.Fprintf(&b, "TOTAL COST: %s\n", kes(r.TotalCost))

	writeSection(&b, "MATERIALS:", r.Breakdown.Materials)
	writeSection(&b, "LABOUR:", r.Breakdown.Labour)
	writeSection(&b, "EQUIPMENT:", r.Breakdown.Equipment)

	b.WriteString("\nOTHER COSTS:\n")
	fmt.Fprintf(&b, "  OVERHEAD: %s\n", kes(r.Breakdown.Overhead))
	fmt.Fprintf(&b, "  CONTINGENCY: %s\n", kes(r.Breakdown.Contingency))
	fmt.Fprintf(&b, "  PROFIT: %s\n", kes(r.Breakdown.Profit))

	if len(r.Warnings) > 0 {
		b.WriteString("\nWARNINGS:\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  [%s] %s\n", w.Code, w.Message)
		}
	}

	return b.String()
}

func writeSection(b *strings.Builder, banner string, components map[string]float64) {
	b.WriteString("\n" + banner + "\n")
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(b, "  %s: %s\n", strings.ToUpper(name), kes(components[name]))
	}
}
