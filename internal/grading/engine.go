package grading

import (
	"math"

	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
	"github.com/denisok6893-rgb/warehouse-grading/internal/logging"
)

// Score computes the 0..100 weighted grade. Weights are normalised by their
// actual sum; a zero sum yields 0.
func Score(params []domain.Parameter) int {
	var sumW, sum float64
	for _, p := range params {
		w := float64(p.UserWeight)
		sumW += w
		sum += p.Score / effectiveMax(p.MaxScore) * w
	}
	if sumW == 0 {
		return 0
	}
	grade := math.Round(sum / sumW * 100)
	return int(clamp(grade, 0, 100))
}

func totalWeight(params []domain.Parameter) int {
	n := 0
	for _, p := range params {
		n += p.UserWeight
	}
	return n
}

// Recompute adjusts params against spec, grades them and derives insights.
// params must be the base (template or user-edited) values, never a previous
// result: the computation keeps no state between calls.
func Recompute(params []domain.Parameter, spec domain.PropertySpecification) domain.GradeAnalysis {
	adjusted := Adjust(params, spec)
	if totalWeight(adjusted) == 0 {
		return domain.GradeAnalysis{Grade: 0, AdjustedParams: adjusted, Insights: []domain.Insight{}}
	}
	grade := Score(adjusted)
	return domain.GradeAnalysis{
		Grade:          grade,
		AdjustedParams: adjusted,
		Insights:       Insights(adjusted, spec, grade),
	}
}

type Engine struct {
	log logging.Logger
}

func NewEngine(log logging.Logger) *Engine {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Engine{log: log}
}

// Recompute is the logged form of the package-level Recompute.
func (e *Engine) Recompute(params []domain.Parameter, spec domain.PropertySpecification) domain.GradeAnalysis {
	a := Recompute(params, spec)

	adjusted := 0
	for _, p := range a.AdjustedParams {
		if len(p.AdjustmentReasons) > 0 {
			adjusted++
		}
	}
	m := DeriveMetrics(spec)
	e.log.Debug("grade recomputed",
		logging.Int("grade", a.Grade),
		logging.Int("parameters", len(a.AdjustedParams)),
		logging.Int("adjusted_parameters", adjusted),
		logging.Float64("dock_density", m.DockDensity),
		logging.Float64("circulation_ratio", m.CirculationRatio),
	)
	return a
}
