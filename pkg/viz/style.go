package viz

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/askcart/askcart/pkg/question"
)

// singleValueStyle describes how a scalar result is charted for a given
// question category.
type singleValueStyle struct {
	label string
	yAxis string
	color drawing.Color
	title func(v float64) string
}

// styleFor returns the single-value chart styling for a category.
// Unknown categories get a gray "Result" bar.
func styleFor(cat question.Category) singleValueStyle {
	switch cat {
	case question.CategoryTotalSales:
		return singleValueStyle{
			label: "Total Sales",
			yAxis: "Sales Amount ($)",
			color: drawing.ColorFromHex("2E8B57"),
			title: func(v float64) string { return fmt.Sprintf("Total Sales: $%.2f", v) },
		}
	case question.CategoryRoAS:
		return singleValueStyle{
			label: "RoAS",
			yAxis: "RoAS (%)",
			color: drawing.ColorFromHex("FF6347"),
			title: func(v float64) string { return fmt.Sprintf("Return on Ad Spend: %.2f%%", v) },
		}
	case question.CategoryAdSpend:
		return singleValueStyle{
			label: "Total Ad Spend",
			yAxis: "Ad Spend ($)",
			color: drawing.ColorFromHex("4169E1"),
			title: func(v float64) string { return fmt.Sprintf("Total Ad Spend: $%.2f", v) },
		}
	case question.CategoryClicks:
		return singleValueStyle{
			label: "Total Clicks",
			yAxis: "Number of Clicks",
			color: drawing.ColorFromHex("32CD32"),
			title: func(v float64) string { return fmt.Sprintf("Total Clicks: %.0f", v) },
		}
	case question.CategoryCount:
		return singleValueStyle{
			label: "Count",
			yAxis: "Count",
			color: drawing.ColorFromHex("9370DB"),
			title: func(v float64) string { return fmt.Sprintf("Count: %.0f", v) },
		}
	case question.CategoryConversionRate:
		return singleValueStyle{
			label: "Conversion Rate",
			yAxis: "Conversion Rate (%)",
			color: drawing.ColorFromHex("FF8C00"),
			title: func(v float64) string { return fmt.Sprintf("Conversion Rate: %.2f%%", v) },
		}
	case question.CategoryCTR:
		return singleValueStyle{
			label: "Click-Through Rate",
			yAxis: "CTR (%)",
			color: drawing.ColorFromHex("20B2AA"),
			title: func(v float64) string { return fmt.Sprintf("Click-Through Rate: %.2f%%", v) },
		}
	}
	return singleValueStyle{
		label: "Result",
		yAxis: "Value",
		color: drawing.ColorFromHex("708090"),
		title: func(v float64) string { return fmt.Sprintf("Result: %.2f", v) },
	}
}

// seriesPalette colors the time-series lines.
var seriesPalette = []drawing.Color{
	drawing.ColorFromHex("FF6B6B"),
	drawing.ColorFromHex("4ECDC4"),
	drawing.ColorFromHex("45B7D1"),
}

// barPalette colors bar and pie segments, cycling when there are more
// segments than colors.
var barPalette = []drawing.Color{
	drawing.ColorFromHex("8DD3C7"),
	drawing.ColorFromHex("FFFFB3"),
	drawing.ColorFromHex("BEBADA"),
	drawing.ColorFromHex("FB8072"),
	drawing.ColorFromHex("80B1D3"),
	drawing.ColorFromHex("FDB462"),
	drawing.ColorFromHex("B3DE69"),
	drawing.ColorFromHex("FCCDE5"),
}
