// Package evaluation drives the grading engine on behalf of API and CLI callers:
// it resolves templates, applies the user's score and weight edits, and keeps
// the collection of saved evaluations.
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/denisok6893-rgb/warehouse-grading/internal/catalog"
	"github.com/denisok6893-rgb/warehouse-grading/internal/domain"
	"github.com/denisok6893-rgb/warehouse-grading/internal/grading"
	"github.com/denisok6893-rgb/warehouse-grading/internal/logging"
	"github.com/denisok6893-rgb/warehouse-grading/internal/storage"
)

var (
	ErrUnknownBusinessType = errors.New("unknown business type")
	ErrUnknownParameter    = errors.New("unknown parameter")
	ErrInvalidOverride     = errors.New("invalid override")
	ErrInvalidParameters   = errors.New("invalid parameters")
	ErrIncompleteProperty  = errors.New("name, address and business type are required")
)

// Templates is the read side of the template catalog.
type Templates interface {
	Lookup(name string) ([]domain.Parameter, bool)
	Names() []string
}

// Observer receives grading and collection-size events; *metrics.Metrics implements it.
type Observer interface {
	ObserveGrade(businessType string, grade int)
	SetSaved(n int)
}

type nopObserver struct{}

func (nopObserver) ObserveGrade(string, int) {}
func (nopObserver) SetSaved(int)             {}

// Override is a manual edit of one parameter. Nil fields keep the template value.
type Override struct {
	Score      *float64 `json:"score,omitempty" yaml:"score,omitempty"`
	UserWeight *int     `json:"user_weight,omitempty" yaml:"user_weight,omitempty"`
}

// CustomLabel is reported to the Observer for business types the catalog does
// not know.
const CustomLabel = "custom"

// Request is everything one grading pass needs. When Parameters is set it is
// graded as given and BusinessType is only a label; otherwise the template
// named by BusinessType is used.
type Request struct {
	BusinessType string                       `json:"business_type" yaml:"business_type"`
	Spec         domain.PropertySpecification `json:"spec" yaml:"spec"`
	Parameters   []domain.Parameter           `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Overrides    map[string]Override          `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

type Service struct {
	templates Templates
	engine    *grading.Engine
	store     storage.Store
	observer  Observer
	log       logging.Logger

	now   func() time.Time
	newID func() string
}

type Option func(*Service)

func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now for snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(templates Templates, store storage.Store, opts ...Option) *Service {
	s := &Service{
		templates: templates,
		store:     store,
		observer:  nopObserver{},
		log:       logging.NewNopLogger(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = grading.NewEngine(s.log.Named("grading"))
	return s
}

// BusinessTypes lists the selectable templates.
func (s *Service) BusinessTypes() []string { return s.templates.Names() }

// Template returns the base parameters of a business type.
func (s *Service) Template(name string) ([]domain.Parameter, bool) {
	return s.templates.Lookup(name)
}

// Evaluate grades one request from scratch.
func (s *Service) Evaluate(_ context.Context, req Request) (domain.GradeAnalysis, error) {
	params, err := s.resolve(req)
	if err != nil {
		return domain.GradeAnalysis{}, err
	}
	a := s.engine.Recompute(params, req.Spec)
	s.observer.ObserveGrade(s.gradeLabel(req.BusinessType), a.Grade)
	return a, nil
}

// gradeLabel keeps observer labels to catalog names; callers grading explicit
// parameters may send any business type.
func (s *Service) gradeLabel(businessType string) string {
	if _, ok := s.templates.Lookup(businessType); ok {
		return businessType
	}
	return CustomLabel
}

func (s *Service) resolve(req Request) ([]domain.Parameter, error) {
	var params []domain.Parameter
	if len(req.Parameters) > 0 {
		if err := catalog.ValidateParameters(req.Parameters); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
		}
		params = domain.CloneParameters(req.Parameters)
	} else {
		base, ok := s.templates.Lookup(req.BusinessType)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBusinessType, req.BusinessType)
		}
		params = base
	}
	if err := applyOverrides(params, req.Overrides); err != nil {
		return nil, err
	}
	return params, nil
}

func applyOverrides(params []domain.Parameter, overrides map[string]Override) error {
	for name, o := range overrides {
		i := indexOf(params, name)
		if i < 0 {
			return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
		}
		if o.Score != nil {
			if math.IsNaN(*o.Score) || math.IsInf(*o.Score, 0) {
				return fmt.Errorf("%w: score of %q", ErrInvalidOverride, name)
			}
			// Scores are whole points on the form slider.
			params[i].Score = math.Trunc(*o.Score)
		}
		if o.UserWeight != nil {
			if *o.UserWeight < 0 {
				return fmt.Errorf("%w: negative weight for %q", ErrInvalidOverride, name)
			}
			params[i].UserWeight = *o.UserWeight
		}
	}
	return nil
}

func indexOf(params []domain.Parameter, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Save grades req and stores the snapshot.
func (s *Service) Save(ctx context.Context, req Request) (domain.EvaluatedProperty, error) {
	if strings.TrimSpace(req.Spec.Name) == "" ||
		strings.TrimSpace(req.Spec.Address) == "" ||
		strings.TrimSpace(req.BusinessType) == "" {
		return domain.EvaluatedProperty{}, ErrIncompleteProperty
	}

	a, err := s.Evaluate(ctx, req)
	if err != nil {
		return domain.EvaluatedProperty{}, err
	}
	if len(a.AdjustedParams) == 0 {
		return domain.EvaluatedProperty{}, fmt.Errorf("%w: no parameters to grade", ErrIncompleteProperty)
	}

	p := domain.EvaluatedProperty{
		ID:           s.newID(),
		Spec:         req.Spec,
		BusinessType: req.BusinessType,
		Analysis:     a,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.Add(ctx, p); err != nil {
		return domain.EvaluatedProperty{}, fmt.Errorf("save evaluated property: %w", err)
	}
	s.refreshSaved(ctx)

	s.log.Info("property saved",
		logging.String("id", p.ID),
		logging.String("business_type", p.BusinessType),
		logging.Int("grade", a.Grade),
	)
	return p, nil
}

func (s *Service) List(ctx context.Context, f storage.Filter) ([]domain.EvaluatedProperty, int, error) {
	return s.store.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id string) (domain.EvaluatedProperty, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshSaved(ctx)
	s.log.Info("property deleted", logging.String("id", id))
	return nil
}

func (s *Service) refreshSaved(ctx context.Context) {
	n, err := s.store.Count(ctx)
	if err != nil {
		s.log.Warn("count saved properties", logging.Err(err))
		return
	}
	s.observer.SetSaved(n)
}
