package grading

import (
	"math"

	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
)

// MinScore is the floor every adjusted score is clamped to.
const MinScore = 1.0

type rule struct {
	applies func(m domain.SpecMetrics, spec domain.PropertySpecification) bool
	delta   float64
	reason  string
}

// ruleGroup holds mutually exclusive branches; the first that applies wins.
type ruleGroup struct {
	category domain.Category
	rules    []rule
}

var ruleGroups = []ruleGroup{
	{
		category: domain.CategoryCapacity,
		rules: []rule{
			{
				applies: func(m domain.SpecMetrics, _ domain.PropertySpecification) bool { return m.EavesHeight >= 32 },
				delta:   1.5,
				reason:  "High ceiling height (+32ft) enhances storage capacity",
			},
			{
				applies: func(m domain.SpecMetrics, _ domain.PropertySpecification) bool { return m.EavesHeight >= 24 },
				delta:   0.5,
				reason:  "Good ceiling height (24-32ft) supports operations",
			},
			{
				applies: func(m domain.SpecMetrics, _ domain.PropertySpecification) bool {
					return m.EavesHeight > 0 && m.EavesHeight < 20
				},
				delta:  -1,
				reason: "Low ceiling height (<20ft) limits storage efficiency",
			},
		},
	},
	{
		category: domain.CategoryThroughput,
		rules: []rule{
			{
				applies: func(m domain.SpecMetrics, _ domain.PropertySpecification) bool { return m.DockDensity >= 3 },
				delta:   1,
				reason:  "Excellent dock density (3+ per 10k sqft)",
			},
			{
				applies: func(m domain.SpecMetrics, _ domain.PropertySpecification) bool { return m.DockDensity >= 1.5 },
				delta:   0.5,
				reason:  "Good dock-to-area ratio",
			},
			{
				applies: func(m domain.SpecMetrics, _ domain.PropertySpecification) bool {
					return m.DockDensity < 1 && m.NumberOfDocks > 0
				},
				delta:  -0.5,
				reason: "Low dock density may limit throughput",
			},
		},
	},
	{
		category: domain.CategoryCompliance,
		rules: []rule{
			{
				applies: func(_ domain.SpecMetrics, spec domain.PropertySpecification) bool {
					return spec.ConstructionType == domain.ConstructionRCC
				},
				delta:  0.5,
				reason: "RCC construction ensures structural integrity",
			},
			{
				applies: func(_ domain.SpecMetrics, spec domain.PropertySpecification) bool {
					return spec.ConstructionType == domain.ConstructionHybrid
				},
				delta:  0.3,
				reason: "Hybrid construction balances cost and durability",
			},
		},
	},
	{
		category: domain.CategoryCirculation,
		rules: []rule{
			{
				applies: func(m domain.SpecMetrics, _ domain.PropertySpecification) bool {
					return m.CirculationRatio >= 0.15 && m.CirculationRatio <= 0.25
				},
				delta:  0.5,
				reason: "Optimal circulation space (15-25% of total)",
			},
			{
				applies: func(m domain.SpecMetrics, _ domain.PropertySpecification) bool { return m.CirculationRatio > 0.25 },
				delta:   -0.3,
				reason:  "Excessive circulation space reduces storage efficiency",
			},
		},
	},
}

// Adjust applies the physical-specification rules to a copy of params.
// Scores always start from the values passed in and reasons are rebuilt from
// scratch, so feeding the same base parameters twice gives the same result.
func Adjust(params []domain.Parameter, spec domain.PropertySpecification) []domain.Parameter {
	m := DeriveMetrics(spec)
	out := make([]domain.Parameter, len(params))
	for i, p := range params {
		out[i] = adjustOne(p, m, spec)
	}
	return out
}

func adjustOne(p domain.Parameter, m domain.SpecMetrics, spec domain.PropertySpecification) domain.Parameter {
	q := p.Clone()
	q.MaxScore = effectiveMax(p.MaxScore)
	q.AdjustmentReasons = []string{}

	score := p.Score
	tags := categoriesOf(p)
	for _, g := range ruleGroups {
		if !hasCategory(tags, g.category) {
			continue
		}
		for _, r := range g.rules {
			if r.applies(m, spec) {
				score = clamp(score+r.delta, MinScore, q.MaxScore)
				q.AdjustmentReasons = append(q.AdjustmentReasons, r.reason)
				break
			}
		}
	}

	q.Score = clamp(round1(score), MinScore, q.MaxScore)
	return q
}

func hasCategory(tags []domain.Category, c domain.Category) bool {
	for _, t := range tags {
		if t == c {
			return true
		}
	}
	return false
}

// effectiveMax guards against templates that leave the ceiling unset.
func effectiveMax(v float64) float64 {
	if v < MinScore {
		return domain.DefaultMaxScore
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
