package grading

import (
	"strings"

	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
)

// LowScoreThreshold marks parameters listed as improvement areas.
const LowScoreThreshold = 6.0

// Insights derives the qualitative report for an adjusted parameter list.
// The first insight is always the grade tier summary.
func Insights(params []domain.Parameter, spec domain.PropertySpecification, grade int) []domain.Insight {
	out := []domain.Insight{gradeTier(grade)}
	m := DeriveMetrics(spec)

	if m.EavesHeight >= 32 {
		out = append(out, domain.Insight{
			Type: domain.InsightPositive,
			Text: "Excellent ceiling height enables high-density storage and automation",
		})
	}

	if m.WarehouseSize > 0 && m.NumberOfDocks > 0 && m.DockDensity < 1 {
		out = append(out, domain.Insight{
			Type: domain.InsightWarning,
			Text: "Low dock density may create bottlenecks during peak operations",
		})
	}

	if spec.ConstructionType == domain.ConstructionRCC {
		out = append(out, domain.Insight{
			Type: domain.InsightPositive,
			Text: "RCC construction provides superior durability and regulatory compliance",
		})
	}

	var low []string
	for _, p := range params {
		if p.Score < LowScoreThreshold {
			low = append(low, p.Name)
		}
	}
	if len(low) > 0 {
		out = append(out, domain.Insight{
			Type: domain.InsightWarning,
			Text: "Key improvement areas: " + strings.Join(low, ", "),
		})
	}

	return out
}

func gradeTier(grade int) domain.Insight {
	switch {
	case grade >= 85:
		return domain.Insight{Type: domain.InsightPositive, Text: "Exceptional property with strong investment potential across all criteria"}
	case grade >= 75:
		return domain.Insight{Type: domain.InsightPositive, Text: "Strong performer with minor areas for optimization"}
	case grade >= 60:
		return domain.Insight{Type: domain.InsightWarning, Text: "Adequate property with several improvement opportunities"}
	default:
		return domain.Insight{Type: domain.InsightNegative, Text: "Below-average property requiring significant improvements"}
	}
}
