package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
)

// MemoryStore is a slice in insertion order guarded by a mutex.
type MemoryStore struct {
	mu    sync.RWMutex
	items []domain.EvaluatedProperty
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Add(_ context.Context, p domain.EvaluatedProperty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == p.ID {
			return ErrDuplicateID
		}
	}
	s.items = append(s.items, cloneEvaluated(p))
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (domain.EvaluatedProperty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			return cloneEvaluated(it), nil
		}
	}
	return domain.EvaluatedProperty{}, ErrNotFound
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]domain.EvaluatedProperty, int, error) {
	f = f.normalized()
	addr := strings.ToLower(strings.TrimSpace(f.Address))

	s.mu.RLock()
	matched := make([]domain.EvaluatedProperty, 0, len(s.items))
	for _, it := range s.items {
		if f.BusinessType != "" && it.BusinessType != f.BusinessType {
			continue
		}
		if f.MinGrade > 0 && it.Analysis.Grade < f.MinGrade {
			continue
		}
		if addr != "" && !strings.Contains(strings.ToLower(it.Spec.Address), addr) {
			continue
		}
		matched = append(matched, it)
	}
	s.mu.RUnlock()

	switch f.Sort {
	case SortGradeDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Analysis.Grade > matched[j].Analysis.Grade })
	case SortGradeAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Analysis.Grade < matched[j].Analysis.Grade })
	}

	total := len(matched)
	start := f.Offset
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}

	out := make([]domain.EvaluatedProperty, 0, end-start)
	for _, it := range matched[start:end] {
		out = append(out, cloneEvaluated(it))
	}
	return out, total, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

func (s *MemoryStore) Close() error { return nil }
