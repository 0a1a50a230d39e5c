// Package catalog holds the business-type templates: for each business type,
// the evaluation parameters with their AI-suggested weights and base scores.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
)

// ErrInvalidCatalog wraps every template validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Template is a named bundle of evaluation parameters for one business type.
type Template struct {
	Name       string             `json:"name" yaml:"name"`
	Parameters []domain.Parameter `json:"parameters" yaml:"parameters"`
}

// Catalog is read-only after construction; every accessor hands out copies.
type Catalog struct {
	templates []Template
	index     map[string]int
}

// New validates templates and builds a catalog preserving their order.
func New(templates []Template) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(templates))}
	for _, t := range templates {
		if err := validateTemplate(t); err != nil {
			return nil, err
		}
		if _, dup := c.index[t.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate template %q", ErrInvalidCatalog, t.Name)
		}
		c.index[t.Name] = len(c.templates)
		c.templates = append(c.templates, Template{Name: t.Name, Parameters: domain.CloneParameters(t.Parameters)})
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(builtinTemplates())
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in templates: %v", err))
	}
	return c
}

func validateTemplate(t Template) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: template without name", ErrInvalidCatalog)
	}
	if len(t.Parameters) == 0 {
		return fmt.Errorf("%w: template %q has no parameters", ErrInvalidCatalog, t.Name)
	}
	if err := ValidateParameters(t.Parameters); err != nil {
		return fmt.Errorf("template %q: %w", t.Name, err)
	}
	return nil
}

// ValidateParameters checks a parameter list the way catalog templates are
// checked: unique non-blank names, positive max scores, non-negative weights
// and known tags.
func ValidateParameters(params []domain.Parameter) error {
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: parameter without name", ErrInvalidCatalog)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: repeated parameter %q", ErrInvalidCatalog, p.Name)
		}
		seen[p.Name] = struct{}{}
		if p.MaxScore <= 0 {
			return fmt.Errorf("%w: parameter %q needs a positive max_score", ErrInvalidCatalog, p.Name)
		}
		if p.AIWeight < 0 || p.UserWeight < 0 {
			return fmt.Errorf("%w: parameter %q has a negative weight", ErrInvalidCatalog, p.Name)
		}
		for _, tag := range p.Tags {
			if !tag.Valid() {
				return fmt.Errorf("%w: parameter %q has unknown tag %q", ErrInvalidCatalog, p.Name, tag)
			}
		}
	}
	return nil
}

// Lookup returns a copy of the parameters for a business type.
// Unknown names yield an empty list and false.
func (c *Catalog) Lookup(name string) ([]domain.Parameter, bool) {
	i, ok := c.index[name]
	if !ok {
		return []domain.Parameter{}, false
	}
	return domain.CloneParameters(c.templates[i].Parameters), true
}

// Names lists the business types in definition order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.templates))
	for i, t := range c.templates {
		out[i] = t.Name
	}
	return out
}

func (c *Catalog) Templates() []Template {
	out := make([]Template, len(c.templates))
	for i, t := range c.templates {
		out[i] = Template{Name: t.Name, Parameters: domain.CloneParameters(t.Parameters)}
	}
	return out
}

func (c *Catalog) Len() int { return len(c.templates) }
