package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
)

func evaluated(id, businessType, address string, grade int, at time.Time) domain.EvaluatedProperty {
	return domain.EvaluatedProperty{
		ID:           id,
		BusinessType: businessType,
		CreatedAt:    at,
		Spec: domain.PropertySpecification{
			Name:             "DC " + id,
			Address:          address,
			WarehouseSize:    "100000",
			ConstructionType: domain.ConstructionRCC,
			EavesHeight:      "34",
		},
		Analysis: domain.GradeAnalysis{
			Grade: grade,
			AdjustedParams: []domain.Parameter{{
				Name: "Cold Chain Infrastructure", AIWeight: 30, UserWeight: 30, Score: 8, MaxScore: 10,
				Tags:              []domain.Category{domain.CategoryThroughput},
				AdjustmentReasons: []string{"Excellent dock density (3+ per 10k sqft)"},
			}},
			Insights: []domain.Insight{{Type: domain.InsightPositive, Text: "Strong performer with minor areas for optimization"}},
		},
	}
}

func storeImplementations(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := OpenSQLite(uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sq,
	}
}

func seed(t *testing.T, s Store) {
	t.Helper()
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	items := []domain.EvaluatedProperty{
		evaluated("a", "Food & Beverage", "Industrial Estate, Bhiwandi, Maharashtra 421302", 76, base),
		evaluated("b", "Pharmaceuticals", "Industrial Zone, Pune, Maharashtra 411019", 88, base.Add(time.Minute)),
		evaluated("c", "Food & Beverage", "Storage Facility, Mumbai, Maharashtra 400001", 58, base.Add(2*time.Minute)),
		evaluated("d", "Food & Beverage", "Logistics Park, Aurangabad, Maharashtra 431001", 76, base.Add(3*time.Minute)),
	}
	for _, it := range items {
		require.NoError(t, s.Add(context.Background(), it))
	}
}

func ids(items []domain.EvaluatedProperty) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestStore_AddGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			want := evaluated("round", "Automotive Parts", "Warehouse Complex, Nagpur", 81, time.Date(2026, 10, 15, 8, 30, 0, 123, time.UTC))
			require.NoError(t, s.Add(ctx, want))

			got, err := s.Get(ctx, "round")
			require.NoError(t, err)
			assert.Equal(t, want, got)

			assert.ErrorIs(t, s.Add(ctx, want), ErrDuplicateID)

			_, err = s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_SnapshotsAreIsolated(t *testing.T) {
	ctx := context.Background()
	for name, s := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			p := evaluated("snap", "Pharmaceuticals", "Pune", 90, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
			require.NoError(t, s.Add(ctx, p))
			p.Analysis.AdjustedParams[0].Score = 1

			got, err := s.Get(ctx, "snap")
			require.NoError(t, err)
			assert.Equal(t, 8.0, got.Analysis.AdjustedParams[0].Score)

			got.Analysis.AdjustedParams[0].Score = 2
			again, err := s.Get(ctx, "snap")
			require.NoError(t, err)
			assert.Equal(t, 8.0, again.Analysis.AdjustedParams[0].Score)
		})
	}
}

func TestStore_ListFiltersAndSort(t *testing.T) {
	ctx := context.Background()
	for name, s := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s)

			all, total, err := s.List(ctx, Filter{})
			require.NoError(t, err)
			assert.Equal(t, 4, total)
			assert.Equal(t, []string{"a", "b", "c", "d"}, ids(all))

			fb, total, err := s.List(ctx, Filter{BusinessType: "Food & Beverage", Sort: SortGradeDesc})
			require.NoError(t, err)
			assert.Equal(t, 3, total)
			assert.Equal(t, []string{"a", "d", "c"}, ids(fb), "ties keep insertion order")

			asc, _, err := s.List(ctx, Filter{Sort: SortGradeAsc})
			require.NoError(t, err)
			assert.Equal(t, []string{"c", "a", "d", "b"}, ids(asc))

			good, total, err := s.List(ctx, Filter{MinGrade: 76, Address: "MAHARASHTRA 4"})
			require.NoError(t, err)
			assert.Equal(t, 3, total)
			assert.Equal(t, []string{"a", "b", "d"}, ids(good))

			pune, _, err := s.List(ctx, Filter{Address: "pune"})
			require.NoError(t, err)
			assert.Equal(t, []string{"b"}, ids(pune))
		})
	}
}

func TestStore_ListAddressIsLiteral(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	for name, s := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Add(ctx, evaluated("under", "Pharmaceuticals", `Shed 5_B, 100% Dock Road\East`, 70, at)))
			require.NoError(t, s.Add(ctx, evaluated("plain", "Pharmaceuticals", "Shed 5XB, 1000 Dock Road East", 70, at)))

			for _, addr := range []string{"5_b", "100%", `road\east`} {
				got, total, err := s.List(ctx, Filter{Address: addr})
				require.NoError(t, err, addr)
				assert.Equal(t, 1, total, addr)
				assert.Equal(t, []string{"under"}, ids(got), addr)
			}

			got, _, err := s.List(ctx, Filter{Address: "%"})
			require.NoError(t, err)
			assert.Equal(t, []string{"under"}, ids(got))
		})
	}
}

func TestStore_ListPaging(t *testing.T) {
	ctx := context.Background()
	for name, s := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s)

			page, total, err := s.List(ctx, Filter{Limit: 2, Offset: 1})
			require.NoError(t, err)
			assert.Equal(t, 4, total)
			assert.Equal(t, []string{"b", "c"}, ids(page))

			page, total, err = s.List(ctx, Filter{Limit: 2, Offset: 10})
			require.NoError(t, err)
			assert.Equal(t, 4, total)
			assert.Empty(t, page)

			page, _, err = s.List(ctx, Filter{Limit: -1, Offset: -5})
			require.NoError(t, err)
			assert.Len(t, page, 4)
		})
	}
}

func TestStore_DeleteAndCount(t *testing.T) {
	ctx := context.Background()
	for name, s := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s)

			require.NoError(t, s.Delete(ctx, "b"))
			assert.ErrorIs(t, s.Delete(ctx, "b"), ErrNotFound)

			n, err := s.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 3, n)

			_, err = s.Get(ctx, "b")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestFilter_Normalized(t *testing.T) {
	f := Filter{Limit: 1000, Offset: -3, Sort: "price_desc"}.normalized()
	assert.Equal(t, maxLimit, f.Limit)
	assert.Equal(t, 0, f.Offset)
	assert.Equal(t, SortCreated, f.Sort)

	assert.Equal(t, defaultLimit, Filter{}.normalized().Limit)
}

func TestOpenSQLite_EmptyName(t *testing.T) {
	_, err := OpenSQLite("  ")
	assert.Error(t, err)
}

func TestLoadSpecificationsFromFile(t *testing.T) {
	const doc = `
- name: Bhiwandi DC
  address: Industrial Estate, Bhiwandi
  warehouse_size: 100000
  construction_type: RCC
  eaves_height: "34"
  number_of_docks: 35
- name: Pune Annex
  warehouse_size: 40,000 sqft
  parking_spaces: ~
`
	path := filepath.Join(t.TempDir(), "specs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	specs, err := LoadSpecificationsFromFile(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, domain.NumericText("100000"), specs[0].WarehouseSize)
	assert.Equal(t, domain.ConstructionRCC, specs[0].ConstructionType)
	assert.Equal(t, domain.NumericText("34"), specs[0].EavesHeight)
	assert.Equal(t, domain.NumericText("35"), specs[0].NumberOfDocks)
	assert.Equal(t, domain.NumericText("40,000 sqft"), specs[1].WarehouseSize)
	assert.Equal(t, domain.NumericText(""), specs[1].ParkingSpaces)

	_, err = LoadSpecificationsFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSpecificationFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"X","eaves_height":28,"number_of_docks":"12"}`), 0o600))

	spec, err := LoadSpecificationFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "X", spec.Name)
	assert.Equal(t, domain.NumericText("28"), spec.EavesHeight)
	assert.Equal(t, domain.NumericText("12"), spec.NumberOfDocks)
}
