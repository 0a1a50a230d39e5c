package storage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
)

// LoadSpecificationsFromFile reads a YAML or JSON list of property specifications.
func LoadSpecificationsFromFile(path string) ([]domain.PropertySpecification, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read specifications file: %w", err)
	}

	var specs []domain.PropertySpecification
	if err := yaml.Unmarshal(b, &specs); err != nil {
		return nil, fmt.Errorf("unmarshal specifications: %w", err)
	}
	return specs, nil
}

// LoadSpecificationFromFile reads a single specification document.
func LoadSpecificationFromFile(path string) (domain.PropertySpecification, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.PropertySpecification{}, fmt.Errorf("read specification file: %w", err)
	}

	var spec domain.PropertySpecification
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return domain.PropertySpecification{}, fmt.Errorf("unmarshal specification: %w", err)
	}
	return spec, nil
}
