package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultMaxScore is the score ceiling used by every built-in template.
const DefaultMaxScore = 10.0

// Category tags a parameter with the physical-specification rules that apply to it.
type Category string

const (
	CategoryCapacity    Category = "capacity"
	CategoryThroughput  Category = "throughput"
	CategoryCompliance  Category = "compliance"
	CategoryCirculation Category = "circulation"
)

// Categories lists every tag in rule evaluation order.
var Categories = []Category{CategoryCapacity, CategoryThroughput, CategoryCompliance, CategoryCirculation}

// Valid reports whether c is one of the known tags.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

type Parameter struct {
	Name              string     `json:"name" yaml:"name"`
	AIWeight          int        `json:"ai_weight" yaml:"ai_weight"`
	UserWeight        int        `json:"user_weight" yaml:"user_weight"`
	Score             float64    `json:"score" yaml:"score"`
	MaxScore          float64    `json:"max_score" yaml:"max_score"`
	Description       string     `json:"description" yaml:"description"`
	Tags              []Category `json:"tags,omitempty" yaml:"tags,omitempty"`
	AdjustmentReasons []string   `json:"adjustment_reasons" yaml:"-"`
}

// HasTag reports whether the parameter carries tag c.
func (p Parameter) HasTag(c Category) bool {
	for _, t := range p.Tags {
		if t == c {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can edit scores and weights freely.
func (p Parameter) Clone() Parameter {
	out := p
	if p.Tags != nil {
		out.Tags = append([]Category(nil), p.Tags...)
	}
	if p.AdjustmentReasons != nil {
		out.AdjustmentReasons = append([]string(nil), p.AdjustmentReasons...)
	}
	return out
}

// CloneParameters deep-copies a parameter list.
func CloneParameters(in []Parameter) []Parameter {
	if in == nil {
		return nil
	}
	out := make([]Parameter, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

type ConstructionType string

const (
	ConstructionNone   ConstructionType = ""
	ConstructionPEB    ConstructionType = "PEB"
	ConstructionRCC    ConstructionType = "RCC"
	ConstructionHybrid ConstructionType = "PEB+RCC"
)

// NumericText is a numeric form field kept as the text the user typed.
// JSON and YAML accept either a string or a bare number.
type NumericText string

func (n *NumericText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumericText(s)
		return nil
	}
	*n = NumericText(b)
	return nil
}

func (n *NumericText) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*n = ""
		return nil
	}
	*n = NumericText(value.Value)
	return nil
}

// PropertySpecification holds the physical attributes entered for a candidate warehouse.
type PropertySpecification struct {
	Name             string           `json:"name" yaml:"name"`
	Address          string           `json:"address" yaml:"address"`
	WarehouseSize    NumericText      `json:"warehouse_size" yaml:"warehouse_size"`
	PlotArea         NumericText      `json:"plot_area" yaml:"plot_area"`
	ConstructionType ConstructionType `json:"construction_type" yaml:"construction_type"`
	EavesHeight      NumericText      `json:"eaves_height" yaml:"eaves_height"`
	NumberOfDocks    NumericText      `json:"number_of_docks" yaml:"number_of_docks"`
	LMVCirculation   NumericText      `json:"lmv_circulation" yaml:"lmv_circulation"`
	HMVCirculation   NumericText      `json:"hmv_circulation" yaml:"hmv_circulation"`
	ParkingSpaces    NumericText      `json:"parking_spaces" yaml:"parking_spaces"`
}

// SpecMetrics are efficiency ratios derived from a specification.
type SpecMetrics struct {
	WarehouseSize    float64 `json:"warehouse_size"`
	PlotArea         float64 `json:"plot_area"`
	EavesHeight      float64 `json:"eaves_height"`
	NumberOfDocks    int     `json:"number_of_docks"`
	DockDensity      float64 `json:"dock_density"`
	CirculationRatio float64 `json:"circulation_ratio"`
	PlotUtilization  float64 `json:"plot_utilization"`
}

type InsightType string

const (
	InsightPositive InsightType = "positive"
	InsightWarning  InsightType = "warning"
	InsightNegative InsightType = "negative"
)

type Insight struct {
	Type InsightType `json:"type"`
	Text string      `json:"text"`
}

type GradeAnalysis struct {
	Grade          int         `json:"grade"`
	AdjustedParams []Parameter `json:"adjusted_params"`
	Insights       []Insight   `json:"insights"`
}

// EvaluatedProperty is a saved snapshot of one graded property. It is never mutated after creation.
type EvaluatedProperty struct {
	ID           string                `json:"id"`
	Spec         PropertySpecification `json:"spec"`
	BusinessType string                `json:"business_type"`
	Analysis     GradeAnalysis         `json:"analysis"`
	CreatedAt    time.Time             `json:"created_at"`
}
