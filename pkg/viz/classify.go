// Package viz selects and renders a chart for every answered question.
// A visualization is always produced, including for errors and empty
// results, so the caller always has an artifact to reference.
package viz

import (
	"strings"

	"github.com/askcart/askcart/pkg/store"
)

// Kind is the chart archetype chosen for a result.
type Kind int

const (
	KindError Kind = iota
	KindNoData
	KindSingleValue
	KindTimeSeries
	KindBar
	KindPie
	KindGeneric
)

// String returns the kind's artifact filename prefix.
func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindNoData:
		return "nodata"
	case KindSingleValue:
		return "single_value"
	case KindTimeSeries:
		return "timeseries"
	case KindBar:
		return "barchart"
	case KindPie:
		return "piechart"
	}
	return "generic"
}

var (
	barKeywords = []string{"top", "highest", "lowest", "products"}
	pieKeywords = []string{"distribution", "percentage", "eligibility"}
)

// Classify picks the chart archetype for a result and question. The
// branches are evaluated top to bottom; the first match wins:
//
//  1. failed execution -> error
//  2. zero rows -> no data
//  3. single cell -> single value
//  4. date column present and multiple rows -> time series, even when
//     bar or pie keywords also match
//  5. bar keywords and multiple rows -> bar
//  6. pie keywords and at most 10 rows -> pie
//  7. anything else -> generic, shaped by the data
func Classify(res *store.Result, question string) Kind {
	if !res.OK() {
		return KindError
	}
	if res.Empty() {
		return KindNoData
	}
	if len(res.Rows) == 1 && len(res.Rows[0]) == 1 {
		return KindSingleValue
	}

	lower := strings.ToLower(question)

	if hasDateColumn(res.Columns) && len(res.Rows) > 1 {
		return KindTimeSeries
	}
	if containsAny(lower, barKeywords) && len(res.Rows) > 1 {
		return KindBar
	}
	if containsAny(lower, pieKeywords) && len(res.Rows) <= 10 {
		return KindPie
	}
	return KindGeneric
}

func hasDateColumn(columns []string) bool {
	for _, c := range columns {
		if strings.Contains(strings.ToLower(c), "date") {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
