package grading

import (
	"strings"

	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
)

// categoryKeywords maps each tag to the label words that imply it for
// parameters defined without explicit tags.
var categoryKeywords = []struct {
	category domain.Category
	words    []string
}{
	{domain.CategoryCapacity, []string{"Storage", "Capacity", "Scalability"}},
	{domain.CategoryThroughput, []string{"Loading", "Fulfillment", "Infrastructure"}},
	{domain.CategoryCompliance, []string{"Compliance", "Quality", "Load"}},
	{domain.CategoryCirculation, []string{"Efficiency", "Circulation", "Access"}},
}

// Classify derives category tags from a parameter label. Matching is a
// case-sensitive substring test, so one label can land in several categories
// ("Heavy Equipment Load Capacity" is both capacity and compliance) or none.
func Classify(name string) []domain.Category {
	var out []domain.Category
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(name, w) {
				out = append(out, ck.category)
				break
			}
		}
	}
	return out
}

// categoriesOf returns the explicit tags of p, falling back to Classify.
func categoriesOf(p domain.Parameter) []domain.Category {
	if len(p.Tags) > 0 {
		return p.Tags
	}
	return Classify(p.Name)
}
