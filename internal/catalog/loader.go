package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
	"github.com/denisok6893-rgb/warehouse-grading/internal/grading"
)

type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

// LoadFromFile reads a YAML (or JSON) catalog. Parameters start with their
// user weight equal to the AI weight, a missing max_score means 10 and
// untagged parameters are tagged from their labels.
func LoadFromFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(b)
}

// Parse decodes catalog file contents.
func Parse(b []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	if len(f.Templates) == 0 {
		return nil, fmt.Errorf("%w: no templates", ErrInvalidCatalog)
	}
	for i := range f.Templates {
		params := f.Templates[i].Parameters
		for j := range params {
			normalizeParameter(&params[j])
		}
	}
	return New(f.Templates)
}

func normalizeParameter(p *domain.Parameter) {
	p.UserWeight = p.AIWeight
	if p.MaxScore == 0 {
		p.MaxScore = domain.DefaultMaxScore
	}
	if len(p.Tags) == 0 {
		p.Tags = grading.Classify(p.Name)
	}
	p.AdjustmentReasons = nil
}
