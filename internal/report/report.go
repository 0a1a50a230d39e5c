// Package report shapes a grade analysis into the chart and summary rows the
// dashboard renders.
package report

import (
	"math"
	"strings"

	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
	"github.com/denisok6893-rgb/warehouse-grading/internal/grading"
)

const (
	ColorStrong    = "#10B981"
	ColorAdequate  = "#F59E0B"
	ColorWeak      = "#EF4444"
	ColorRemaining = "#E5E7EB"

	chartNameLimit = 15
)

type ChartRow struct {
	Name         string  `json:"name"`
	AIWeight     int     `json:"ai_weight"`
	UserWeight   int     `json:"user_weight"`
	ScorePercent float64 `json:"score_percent"`
}

type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// KeyMetrics holds the summary ratios. A nil field means the inputs it needs were left blank.
type KeyMetrics struct {
	DocksPer10K      *float64 `json:"docks_per_10k,omitempty"`
	PlotUtilization  *float64 `json:"plot_utilization_percent,omitempty"`
	CirculationRatio *float64 `json:"circulation_ratio_percent,omitempty"`
}

type Report struct {
	Grade        int        `json:"grade"`
	Color        string     `json:"color"`
	Chart        []ChartRow `json:"chart"`
	Distribution []Slice    `json:"distribution"`
	Metrics      KeyMetrics `json:"key_metrics"`
}

func GradeColor(grade int) string {
	switch {
	case grade >= 80:
		return ColorStrong
	case grade >= 60:
		return ColorAdequate
	default:
		return ColorWeak
	}
}

func ChartRows(params []domain.Parameter) []ChartRow {
	rows := make([]ChartRow, 0, len(params))
	for _, p := range params {
		top := p.MaxScore
		if top <= 0 {
			top = domain.DefaultMaxScore
		}
		rows = append(rows, ChartRow{
			Name:         shorten(p.Name),
			AIWeight:     p.AIWeight,
			UserWeight:   p.UserWeight,
			ScorePercent: round1(p.Score / top * 100),
		})
	}
	return rows
}

func shorten(name string) string {
	r := []rune(name)
	if len(r) <= chartNameLimit {
		return name
	}
	return string(r[:chartNameLimit]) + "..."
}

// Distribution splits 100 into the achieved grade and the remainder.
func Distribution(grade int) []Slice {
	return []Slice{
		{Name: "Current Score", Value: grade, Color: GradeColor(grade)},
		{Name: "Remaining", Value: 100 - grade, Color: ColorRemaining},
	}
}

func Metrics(spec domain.PropertySpecification) KeyMetrics {
	var km KeyMetrics
	if blank(spec.WarehouseSize) {
		return km
	}
	size := grading.ParseNumber(spec.WarehouseSize)
	if size <= 0 {
		return km
	}
	if !blank(spec.NumberOfDocks) {
		v := round1(float64(grading.ParseInteger(spec.NumberOfDocks)) / (size / grading.DockDensityArea))
		km.DocksPer10K = &v
	}
	if !blank(spec.PlotArea) {
		if plot := grading.ParseNumber(spec.PlotArea); plot > 0 {
			v := round1(size / plot * 100)
			km.PlotUtilization = &v
		}
	}
	if !blank(spec.LMVCirculation) && !blank(spec.HMVCirculation) {
		circ := grading.ParseNumber(spec.LMVCirculation) + grading.ParseNumber(spec.HMVCirculation)
		v := round1(circ / size * 100)
		km.CirculationRatio = &v
	}
	return km
}

// Build assembles the dashboard view of an analysis. The chart shows the
// adjusted parameters so the bars match the grade.
func Build(spec domain.PropertySpecification, a domain.GradeAnalysis) Report {
	return Report{
		Grade:        a.Grade,
		Color:        GradeColor(a.Grade),
		Chart:        ChartRows(a.AdjustedParams),
		Distribution: Distribution(a.Grade),
		Metrics:      Metrics(spec),
	}
}

func blank(v domain.NumericText) bool { return strings.TrimSpace(string(v)) == "" }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
