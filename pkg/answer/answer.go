// Package answer renders query results as human-readable text. Known
// metric questions get dedicated phrasing; everything else falls back
// to a generic scalar or pipe-delimited table rendering.
package answer

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/askcart/askcart/pkg/question"
	"github.com/askcart/askcart/pkg/store"
)

// maxTableRows caps the table rendering; rows beyond the cap are
// summarized in a trailing note.
const maxTableRows = 10

// Formatter turns query results into answer text.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter creates a formatter using English digit grouping.
func NewFormatter() *Formatter {
	return &Formatter{printer: message.NewPrinter(language.English)}
}

// Format renders a query result for the question that produced it.
// Formatting never fails: execution errors become error text and any
// panic during rendering degrades to an error string.
func (f *Formatter) Format(res *store.Result, q string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("Error formatting results: %v", r)
		}
	}()

	if !res.OK() {
		return fmt.Sprintf("Error executing query: %s", res.Err)
	}
	if res.Empty() {
		return "No data found for your query."
	}

	category := question.Classify(q)

	if scalar, ok := scalarValue(res); ok {
		return f.formatScalar(scalar, category)
	}

	if category == question.CategoryCPC && len(res.Rows) >= 1 && len(res.Rows[0]) >= 2 {
		return f.formatCPC(res.Rows[0][0], res.Rows[0][1])
	}

	return f.formatTable(res)
}

// scalarValue extracts the single cell of a 1x1 result.
func scalarValue(res *store.Result) (any, bool) {
	if len(res.Rows) == 1 && len(res.Rows[0]) == 1 {
		return res.Rows[0][0], true
	}
	return nil, false
}

func (f *Formatter) formatScalar(v any, category question.Category) string {
	switch category {
	case question.CategoryTotalSales:
		if v == nil {
			return "No sales data available."
		}
		return fmt.Sprintf("The total sales are: %s", f.currency(v))
	case question.CategoryRoAS:
		if v == nil {
			return "Cannot calculate RoAS. No ad spend data available."
		}
		return fmt.Sprintf("The Return on Ad Spend (RoAS) is: %.2f%%", toFloat(v))
	case question.CategoryCount:
		if v == nil {
			return "Count: 0"
		}
		return fmt.Sprintf("Count: %s", f.grouped(v))
	}

	if v == nil {
		return "Result: No data"
	}
	switch v.(type) {
	case float64, float32:
		return fmt.Sprintf("Result: %s", f.groupedFloat(toFloat(v)))
	case int, int64, int32:
		return fmt.Sprintf("Result: %s", f.grouped(v))
	}
	return fmt.Sprintf("Result: %v", v)
}

func (f *Formatter) formatCPC(itemID, cpc any) string {
	if itemID == nil || cpc == nil {
		return "Cannot determine the product with the highest CPC."
	}
	return fmt.Sprintf("The product with the highest CPC is item_id %v with a CPC of $%.2f", itemID, toFloat(cpc))
}

// formatTable renders a pipe-delimited table capped at maxTableRows.
func (f *Formatter) formatTable(res *store.Result) string {
	var sb strings.Builder
	sb.WriteString("Query Results:\n")

	if len(res.Columns) > 0 {
		header := strings.Join(res.Columns, " | ")
		sb.WriteString(header)
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat("-", len(header)))
		sb.WriteByte('\n')
	}

	limit := len(res.Rows)
	if limit > maxTableRows {
		limit = maxTableRows
	}
	for _, row := range res.Rows[:limit] {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = formatCell(cell)
		}
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteByte('\n')
	}

	if omitted := len(res.Rows) - limit; omitted > 0 {
		sb.WriteString(fmt.Sprintf("... and %d more rows", omitted))
	}

	return sb.String()
}

func formatCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return "N/A"
	case float64:
		return fmt.Sprintf("%.2f", v)
	case float32:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// currency renders a value as dollars with grouping and two decimals.
func (f *Formatter) currency(v any) string {
	return "$" + f.groupedFloat(toFloat(v))
}

// groupedFloat renders a float with digit grouping and exactly two
// decimals.
func (f *Formatter) groupedFloat(v float64) string {
	return f.printer.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// grouped renders an integral value with digit grouping.
func (f *Formatter) grouped(v any) string {
	return f.printer.Sprintf("%v", number.Decimal(v))
}

// toFloat coerces the numeric types the SQLite driver produces.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	}
	panic(fmt.Sprintf("non-numeric value %v (%T)", v, v))
}
