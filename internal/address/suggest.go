// Package address offers address autocompletion for the property form.
package address

import (
	"context"
	"strings"
)

// MinQueryLength is the shortest query worth sending to a Suggester.
const MinQueryLength = 3

// Suggester completes a partially typed address. A geocoding backend can
// replace the static list without touching callers.
type Suggester interface {
	Suggest(ctx context.Context, query string) ([]string, error)
}

// DefaultAddresses is the fixed list served when no other source is configured.
var DefaultAddresses = []string{
	"Industrial Estate, Bhiwandi, Maharashtra 421302",
	"Logistics Park, Aurangabad, Maharashtra 431001",
	"Warehouse Complex, Nagpur, Maharashtra 440001",
	"Industrial Zone, Pune, Maharashtra 411019",
	"Storage Facility, Mumbai, Maharashtra 400001",
}

// StaticSuggester filters a fixed list by case-insensitive substring.
type StaticSuggester struct {
	addresses []string
}

func NewStaticSuggester(addresses []string) *StaticSuggester {
	if addresses == nil {
		addresses = DefaultAddresses
	}
	return &StaticSuggester{addresses: append([]string(nil), addresses...)}
}

func (s *StaticSuggester) Suggest(ctx context.Context, query string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	out := []string{}
	for _, a := range s.addresses {
		if strings.Contains(strings.ToLower(a), q) {
			out = append(out, a)
		}
	}
	return out, nil
}
