package viz

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/askcart/askcart/pkg/store"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(t.TempDir())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func assertArtifact(t *testing.T, r *Renderer, name, wantPrefix string) {
	t.Helper()
	if name == "" {
		t.Fatal("Render returned empty artifact name")
	}
	if !strings.HasPrefix(name, wantPrefix+"_") {
		t.Errorf("artifact %q, want prefix %q", name, wantPrefix)
	}
	info, err := os.Stat(filepath.Join(r.Dir(), name))
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("artifact is empty")
	}
}

func TestRender_Kinds(t *testing.T) {
	r := newTestRenderer(t)

	tests := []struct {
		name       string
		result     *store.Result
		question   string
		wantPrefix string
	}{
		{
			name:       "error",
			result:     &store.Result{Err: "no such table: missing"},
			question:   "anything",
			wantPrefix: "error",
		},
		{
			name:       "no data",
			result:     &store.Result{Columns: []string{"item_id"}},
			question:   "anything",
			wantPrefix: "nodata",
		},
		{
			name: "single numeric value",
			result: &store.Result{
				Columns: []string{"total_sales"},
				Rows:    [][]any{{1234.5}},
			},
			question:   "What is my total sales?",
			wantPrefix: "single_value",
		},
		{
			name: "single text value",
			result: &store.Result{
				Columns: []string{"status"},
				Rows:    [][]any{{"ELIGIBLE"}},
			},
			question:   "What is the status?",
			wantPrefix: "single_value",
		},
		{
			name: "bar",
			result: &store.Result{
				Columns: []string{"item_id", "total_sales"},
				Rows: [][]any{
					{int64(1), 100.0},
					{int64(2), 80.0},
					{int64(3), 60.0},
				},
			},
			question:   "Show top products by sales",
			wantPrefix: "barchart",
		},
		{
			name: "pie",
			result: &store.Result{
				Columns: []string{"status", "count"},
				Rows: [][]any{
					{"ELIGIBLE", int64(300)},
					{"NOT_ELIGIBLE", int64(37)},
				},
			},
			question:   "Show the eligibility breakdown",
			wantPrefix: "piechart",
		},
		{
			name: "time series",
			result: &store.Result{
				Columns: []string{"date", "total_sales"},
				Rows: [][]any{
					{"2024-06-01", 100.0},
					{"2024-06-02", 120.0},
					{"2024-06-03", 90.0},
				},
			},
			question:   "Show sales over time",
			wantPrefix: "timeseries",
		},
		{
			name: "generic numeric",
			result: &store.Result{
				Columns: []string{"item_id", "clicks"},
				Rows: [][]any{
					{int64(1), int64(50)},
					{int64(2), int64(30)},
				},
			},
			question:   "Show clicks by item",
			wantPrefix: "generic",
		},
		{
			name: "generic categorical frequencies",
			result: &store.Result{
				Columns: []string{"item_id", "status"},
				Rows: [][]any{
					{int64(1), "ELIGIBLE"},
					{int64(2), "ELIGIBLE"},
					{int64(3), "NOT_ELIGIBLE"},
				},
			},
			question:   "Show status by item",
			wantPrefix: "generic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := r.Render(tt.result, tt.question)
			assertArtifact(t, r, name, tt.wantPrefix)
		})
	}
}

func TestRender_BadDataDegradesToError(t *testing.T) {
	r := newTestRenderer(t)

	// A time-series shape whose date cells cannot be parsed falls back
	// to the error visualization instead of failing.
	res := &store.Result{
		Columns: []string{"date", "total_sales"},
		Rows: [][]any{
			{"not a date", 100.0},
			{"also not", 120.0},
		},
	}
	name := r.Render(res, "Show sales over time")
	assertArtifact(t, r, name, "error")
}

func TestArtifactName(t *testing.T) {
	at := time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC)

	name := artifactName(KindBar, at)
	pattern := regexp.MustCompile(`^barchart_20240601_150405_[0-9a-f-]{8}\.png$`)
	if !pattern.MatchString(name) {
		t.Errorf("artifactName = %q, want match for %v", name, pattern)
	}

	// Same kind and timestamp must still give distinct names.
	if other := artifactName(KindBar, at); other == name {
		t.Errorf("artifactName produced duplicate %q for identical inputs", name)
	}
}

func TestBarLabel(t *testing.T) {
	tests := []struct {
		label string
		value any
		want  string
	}{
		{"1", 100.5, "1 (100.50)"},
		{"2", float32(3.125), "2 (3.12)"},
		{"3", int64(42), "3 (42)"},
		{"4", "ELIGIBLE", "4 (ELIGIBLE)"},
	}

	for _, tt := range tests {
		if got := barLabel(tt.label, tt.value); got != tt.want {
			t.Errorf("barLabel(%q, %v) = %q, want %q", tt.label, tt.value, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      any
		want    time.Time
		wantErr bool
	}{
		{"2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"2024-06-01 12:30:00", time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC), false},
		{time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"June first", time.Time{}, true},
		{int64(20240601), time.Time{}, true},
	}

	for _, tt := range tests {
		got, err := parseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDate(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && !got.Equal(tt.want) {
			t.Errorf("parseDate(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
