// Package question classifies free-text analytic questions into metric
// categories. The answer formatter and the chart selector both branch on
// the same Category, so the "what is this question about" decision lives
// in exactly one place.
package question

import "strings"

// Category identifies the metric a question is asking about.
type Category int

const (
	// CategoryGeneric is the zero value: no known metric keyword matched.
	CategoryGeneric Category = iota
	CategoryTotalSales
	CategoryRoAS
	CategoryCPC
	CategoryAdSpend
	CategoryClicks
	CategoryCount
	CategoryConversionRate
	CategoryCTR
)

// String returns a short identifier for the category.
func (c Category) String() string {
	switch c {
	case CategoryTotalSales:
		return "total_sales"
	case CategoryRoAS:
		return "roas"
	case CategoryCPC:
		return "cpc"
	case CategoryAdSpend:
		return "ad_spend"
	case CategoryClicks:
		return "clicks"
	case CategoryCount:
		return "count"
	case CategoryConversionRate:
		return "conversion_rate"
	case CategoryCTR:
		return "ctr"
	}
	return "generic"
}

// categoryRule pairs a category with the substrings that select it.
type categoryRule struct {
	category Category
	keywords []string
}

// Rules are evaluated in order; the first rule with a matching keyword
// wins. The order is a documented precedence, not an accident: a
// question mentioning both "total sales" and "count" is a sales
// question.
var categoryRules = []categoryRule{
	{CategoryTotalSales, []string{"total sales"}},
	{CategoryRoAS, []string{"roas", "return on ad spend"}},
	{CategoryCPC, []string{"highest cpc", "cost per click"}},
	{CategoryAdSpend, []string{"total ad spend"}},
	{CategoryClicks, []string{"total clicks"}},
	{CategoryCount, []string{"count", "how many"}},
	{CategoryConversionRate, []string{"conversion rate"}},
	{CategoryCTR, []string{"ctr", "click-through rate", "click through rate"}},
}

// Classify maps a question to its metric category. Matching is
// case-insensitive substring containment.
func Classify(q string) Category {
	lower := strings.ToLower(q)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return CategoryGeneric
}

// Normalize trims a raw question. Returns the trimmed text and false if
// nothing useful remains.
func Normalize(raw string) (string, bool) {
	q := strings.TrimSpace(raw)
	return q, q != ""
}
