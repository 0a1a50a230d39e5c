package storage

import (
	"context"
	"errors"

	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
)

var (
	ErrNotFound    = errors.New("evaluated property not found")
	ErrDuplicateID = errors.New("evaluated property id already exists")
)

// Sort orders accepted by Filter.
const (
	SortCreated   = "created"
	SortGradeDesc = "grade_desc"
	SortGradeAsc  = "grade_asc"
)

const (
	defaultLimit = 20
	maxLimit     = 200
)

// Filter narrows a listing of saved evaluations. Zero values mean "any".
type Filter struct {
	BusinessType string
	MinGrade     int
	// Address matches as a case-insensitive substring.
	Address string
	Sort    string
	Limit   int
	Offset  int
}

func (f Filter) normalized() Filter {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	switch f.Sort {
	case SortGradeAsc, SortGradeDesc:
	default:
		f.Sort = SortCreated
	}
	return f
}

// Store keeps the evaluated properties saved during the process lifetime.
type Store interface {
	Add(ctx context.Context, p domain.EvaluatedProperty) error
	Get(ctx context.Context, id string) (domain.EvaluatedProperty, error)
	// List returns one page of matches plus the total match count.
	List(ctx context.Context, f Filter) ([]domain.EvaluatedProperty, int, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Close() error
}

func cloneEvaluated(p domain.EvaluatedProperty) domain.EvaluatedProperty {
	out := p
	out.Analysis.AdjustedParams = domain.CloneParameters(p.Analysis.AdjustedParams)
	if p.Analysis.Insights != nil {
		out.Analysis.Insights = append([]domain.Insight(nil), p.Analysis.Insights...)
	}
	return out
}
