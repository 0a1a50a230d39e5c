package grading

import "github.com/denisok6893-rgb/warehouse-grading/internal/domain"

// DockDensityArea is the floor area one dock-density unit is measured against.
const DockDensityArea = 10000.0

// DeriveMetrics computes the efficiency ratios used by the adjustment rules.
// Ratios whose denominator is missing stay at zero.
func DeriveMetrics(spec domain.PropertySpecification) domain.SpecMetrics {
	m := domain.SpecMetrics{
		WarehouseSize: ParseNumber(spec.WarehouseSize),
		PlotArea:      ParseNumber(spec.PlotArea),
		EavesHeight:   ParseNumber(spec.EavesHeight),
		NumberOfDocks: ParseInteger(spec.NumberOfDocks),
	}
	lmv := ParseNumber(spec.LMVCirculation)
	hmv := ParseNumber(spec.HMVCirculation)

	if m.WarehouseSize > 0 {
		m.DockDensity = float64(m.NumberOfDocks) / (m.WarehouseSize / DockDensityArea)
		m.CirculationRatio = (lmv + hmv) / m.WarehouseSize
	}
	if m.PlotArea > 0 {
		m.PlotUtilization = m.WarehouseSize / m.PlotArea
	}
	return m
}
