package viz

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/askcart/askcart/pkg/question"
	"github.com/askcart/askcart/pkg/store"
)

// Row caps per chart kind, for readability.
const (
	maxBars        = 10
	maxPieSlices   = 8
	maxGenericRows = 15
	maxSeries      = 3
)

// Renderer writes chart artifacts for query results into an output
// directory.
type Renderer struct {
	dir string
	now func() time.Time
}

// NewRenderer creates a renderer writing into dir, creating it if
// needed.
func NewRenderer(dir string) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create visualization dir: %w", err)
	}
	return &Renderer{dir: dir, now: time.Now}, nil
}

// Dir returns the artifact output directory.
func (r *Renderer) Dir() string {
	return r.dir
}

// Render produces one chart artifact for the result and returns its
// filename. Rendering never fails to its caller: chart construction
// errors degrade to an error visualization, and if even that cannot be
// written an empty name is returned.
func (r *Renderer) Render(res *store.Result, q string) (name string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[viz] render panic: %v", rec)
			name = r.renderErrorArtifact(q, fmt.Sprint(rec))
		}
	}()

	kind := Classify(res, q)
	name = artifactName(kind, r.now())

	var err error
	switch kind {
	case KindError:
		err = r.messageImage(name, q, "Error: "+res.Err, drawing.ColorRed)
	case KindNoData:
		err = r.messageImage(name, q, "No Data Found", drawing.ColorFromHex("808080"))
	case KindSingleValue:
		err = r.singleValueChart(name, res, q)
	case KindTimeSeries:
		err = r.timeSeriesChart(name, res, q)
	case KindBar:
		err = r.barChart(name, res, q)
	case KindPie:
		err = r.pieChart(name, res, q)
	default:
		err = r.genericChart(name, res, q)
	}

	if err != nil {
		log.Printf("[viz] %s chart failed: %v", kind, err)
		if kind == KindError {
			return ""
		}
		return r.renderErrorArtifact(q, err.Error())
	}
	return name
}

// renderErrorArtifact writes the degraded error visualization. Returns
// an empty name when even that fails.
func (r *Renderer) renderErrorArtifact(q, errText string) string {
	name := artifactName(KindError, r.now())
	if err := r.messageImage(name, q, "Error: "+errText, drawing.ColorRed); err != nil {
		log.Printf("[viz] error visualization failed: %v", err)
		return ""
	}
	return name
}

// singleValueChart renders a one-bar chart styled by the question
// category. Non-numeric scalars get a plain text artifact instead.
func (r *Renderer) singleValueChart(name string, res *store.Result, q string) error {
	cell := res.Rows[0][0]
	v, ok := toFloat(cell)
	if !ok {
		return r.messageImage(name, q, fmt.Sprintf("Result: %v", cell), drawing.ColorFromHex("708090"))
	}

	style := styleFor(question.Classify(q))
	upper := v * 1.1
	if upper <= 0 {
		upper = 1
	}

	graph := chart.BarChart{
		Title:    style.title(v),
		Width:    1000,
		Height:   600,
		BarWidth: 120,
		YAxis: chart.YAxis{
			Name:  style.yAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: upper},
		},
		Bars: []chart.Value{
			{
				Value: v,
				Label: style.label,
				Style: chart.Style{FillColor: style.color, StrokeColor: style.color},
			},
		},
	}
	return r.writeChart(name, graph.Render)
}

// barChart renders the first two columns as labeled bars, capped at
// maxBars rows.
func (r *Renderer) barChart(name string, res *store.Result, q string) error {
	rows := res.Rows[:min(len(res.Rows), maxBars)]

	bars := make([]chart.Value, 0, len(rows))
	var top float64
	for i, row := range rows {
		label, value, err := labelValuePair(res, row)
		if err != nil {
			return err
		}
		if value > top {
			top = value
		}
		raw := any(1)
		if len(row) >= 2 {
			raw = row[1]
		}
		color := barPalette[i%len(barPalette)]
		bars = append(bars, chart.Value{
			Value: value,
			Label: barLabel(label, raw),
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}
	if top <= 0 {
		top = 1
	}

	graph := chart.BarChart{
		Title:      q,
		Width:      1200,
		Height:     800,
		BarWidth:   60,
		BarSpacing: 40,
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:  yAxisName(res),
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}
	return r.writeChart(name, graph.Render)
}

// pieChart renders the first two columns as slices with percentage
// labels, capped at maxPieSlices rows.
func (r *Renderer) pieChart(name string, res *store.Result, q string) error {
	rows := res.Rows[:min(len(res.Rows), maxPieSlices)]

	var total float64
	pairs := make([]struct {
		label string
		value float64
	}, 0, len(rows))
	for _, row := range rows {
		label, value, err := labelValuePair(res, row)
		if err != nil {
			return err
		}
		total += value
		pairs = append(pairs, struct {
			label string
			value float64
		}{label, value})
	}
	if total <= 0 {
		return fmt.Errorf("pie chart needs a positive value total")
	}

	values := make([]chart.Value, 0, len(pairs))
	for i, p := range pairs {
		color := barPalette[i%len(barPalette)]
		values = append(values, chart.Value{
			Value: p.value,
			Label: fmt.Sprintf("%s: %.1f%%", p.label, p.value*100/total),
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: drawing.ColorWhite,
				FontColor:   drawing.ColorBlack,
			},
		})
	}

	graph := chart.PieChart{
		Title:  q,
		Width:  900,
		Height: 800,
		Values: values,
	}
	return r.writeChart(name, graph.Render)
}

// timeSeriesChart parses the date column, sorts chronologically, and
// plots up to maxSeries numeric columns as separate lines.
func (r *Renderer) timeSeriesChart(name string, res *store.Result, q string) error {
	dateIdx := -1
	for i, c := range res.Columns {
		if strings.Contains(strings.ToLower(c), "date") {
			dateIdx = i
			break
		}
	}
	if dateIdx < 0 {
		return fmt.Errorf("no date column")
	}

	type point struct {
		t   time.Time
		row []any
	}
	points := make([]point, 0, len(res.Rows))
	for _, row := range res.Rows {
		t, err := parseDate(row[dateIdx])
		if err != nil {
			return err
		}
		points = append(points, point{t: t, row: row})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].t.Before(points[j].t) })

	xs := make([]time.Time, len(points))
	for i, p := range points {
		xs[i] = p.t
	}

	var series []chart.Series
	for colIdx, colName := range res.Columns {
		if colIdx == dateIdx || len(series) == maxSeries {
			continue
		}
		ys := make([]float64, len(points))
		numeric := true
		for i, p := range points {
			v, ok := toFloat(p.row[colIdx])
			if !ok {
				numeric = false
				break
			}
			ys[i] = v
		}
		if !numeric {
			continue
		}
		color := seriesPalette[len(series)%len(seriesPalette)]
		series = append(series, chart.TimeSeries{
			Name:    colName,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    4,
			},
		})
	}
	if len(series) == 0 {
		return fmt.Errorf("no numeric columns to plot")
	}

	graph := chart.Chart{
		Title:  q,
		Width:  1200,
		Height: 600,
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis:  chart.YAxis{Name: "Value"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return r.writeChart(name, graph.Render)
}

// genericChart is the shape-driven default: a bar of raw values when
// the second column is numeric, otherwise a frequency bar over the
// second column's values. Capped at maxGenericRows rows.
func (r *Renderer) genericChart(name string, res *store.Result, q string) error {
	rows := res.Rows[:min(len(res.Rows), maxGenericRows)]

	valueIdx := min(1, len(res.Columns)-1)
	numeric := true
	for _, row := range rows {
		if _, ok := toFloat(row[valueIdx]); !ok {
			numeric = false
			break
		}
	}

	var bars []chart.Value
	if numeric {
		for i, row := range rows {
			v, _ := toFloat(row[valueIdx])
			color := barPalette[i%len(barPalette)]
			bars = append(bars, chart.Value{
				Value: v,
				Label: cellString(row[0]),
				Style: chart.Style{FillColor: color, StrokeColor: color},
			})
		}
	} else {
		// Frequency bar over the value column, most common first.
		counts := make(map[string]int)
		var order []string
		for _, row := range rows {
			key := cellString(row[valueIdx])
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}
		sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
		for i, key := range order {
			color := barPalette[i%len(barPalette)]
			bars = append(bars, chart.Value{
				Value: float64(counts[key]),
				Label: key,
				Style: chart.Style{FillColor: color, StrokeColor: color},
			})
		}
	}

	var top float64
	for _, b := range bars {
		if b.Value > top {
			top = b.Value
		}
	}
	if top <= 0 {
		top = 1
	}

	graph := chart.BarChart{
		Title:      q,
		Width:      1000,
		Height:     600,
		BarWidth:   50,
		BarSpacing: 30,
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:  yAxisName(res),
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}
	return r.writeChart(name, graph.Render)
}

// messageImage writes a text-only artifact: the question as title and a
// body line in the given color. Used for error and no-data outcomes.
func (r *Renderer) messageImage(name, title, body string, color drawing.Color) error {
	const width, height = 1000, 600

	renderer, err := chart.PNG(width, height)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	renderer.SetDPI(chart.DefaultDPI)
	renderer.SetFont(font)

	renderer.SetFontColor(drawing.ColorBlack)
	renderer.SetFontSize(16)
	titleText := truncateText(title, 90)
	tb := renderer.MeasureText(titleText)
	renderer.Text(titleText, (width-tb.Width())/2, 60)

	renderer.SetFontColor(color)
	renderer.SetFontSize(24)
	bodyText := truncateText(body, 80)
	bb := renderer.MeasureText(bodyText)
	renderer.Text(bodyText, (width-bb.Width())/2, height/2)

	f, err := os.Create(filepath.Join(r.dir, name))
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer f.Close()
	return renderer.Save(f)
}

// writeChart creates the artifact file and renders into it.
func (r *Renderer) writeChart(name string, render func(chart.RendererProvider, io.Writer) error) error {
	f, err := os.Create(filepath.Join(r.dir, name))
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer f.Close()
	if err := render(chart.PNG, f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// labelValuePair extracts the (label, numeric value) convention from a
// row: first column labels, second column measures. Single-column rows
// count occurrences instead, so the value is 1.
func labelValuePair(res *store.Result, row []any) (string, float64, error) {
	label := cellString(row[0])
	if len(row) < 2 {
		return label, 1, nil
	}
	v, ok := toFloat(row[1])
	if !ok {
		return "", 0, fmt.Errorf("column %s is not numeric", yAxisName(res))
	}
	return label, v, nil
}

// barLabel composes an axis label carrying the bar's value: floats get
// two decimals, integral values none.
func barLabel(label string, value any) string {
	switch v := value.(type) {
	case float64:
		return fmt.Sprintf("%s (%.2f)", label, v)
	case float32:
		return fmt.Sprintf("%s (%.2f)", label, v)
	default:
		return fmt.Sprintf("%s (%v)", label, v)
	}
}

func yAxisName(res *store.Result) string {
	if len(res.Columns) > 1 {
		return res.Columns[1]
	}
	if len(res.Columns) == 1 {
		return res.Columns[0]
	}
	return "Value"
}

// dateFormats are tried in order when parsing the date column.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		for _, layout := range dateFormats {
			if t, err := time.Parse(layout, d); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable date %q", d)
	}
	return time.Time{}, fmt.Errorf("unparseable date %v (%T)", v, v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return "N/A"
	case float64:
		return fmt.Sprintf("%.2f", c)
	case float32:
		return fmt.Sprintf("%.2f", c)
	default:
		return fmt.Sprintf("%v", c)
	}
}

func truncateText(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
