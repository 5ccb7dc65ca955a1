package nutrition

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pet-health-assessment/internal/platform/logger"
	"pet-health-assessment/internal/platform/metrics"

	"github.com/google/uuid"
)

type Service struct {
	repo   Repository
	tables *Tables
	log    logger.Logger
	now    func() time.Time

	// serializa read-modify-write de planners
	mu sync.Mutex
}

type ServiceOptions struct {
	Tables *Tables       // nil => DefaultTables
	Logger logger.Logger // nil => no-op
	Now    func() time.Time
}

func NewService(repo Repository, opts ServiceOptions) *Service {
	t := opts.Tables
	if t == nil {
		t = DefaultTables()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:   repo,
		tables: t,
		log:    log.With(map[string]any{"module": "nutrition"}),
		now:    now,
	}
}

// PlannerView es el planner con su plan derivado y el score de comidas marcadas.
type PlannerView struct {
	Planner Planner
	Plan    Plan
	Score   int
}

// FormPatch: nil = no tocar.
type FormPatch struct {
	AnimalType    *AnimalType
	Age           *float64
	CurrentWeight *float64
	TargetWeight  *float64
	ActivityLevel *ActivityLevel
	FitnessGoal   *Goal
	DurationWeeks *int
}

func (p FormPatch) apply(f Form) Form {
	if p.AnimalType != nil {
		f.AnimalType = *p.AnimalType
	}
	if p.Age != nil {
		f.Age = *p.Age
	}
	if p.CurrentWeight != nil {
		f.CurrentWeight = *p.CurrentWeight
	}
	if p.TargetWeight != nil {
		f.TargetWeight = *p.TargetWeight
	}
	if p.ActivityLevel != nil {
		f.ActivityLevel = *p.ActivityLevel
	}
	if p.FitnessGoal != nil {
		f.FitnessGoal = *p.FitnessGoal
	}
	if p.DurationWeeks != nil {
		f.DurationWeeks = *p.DurationWeeks
	}
	return f
}

// Derive valida el formulario y calcula el plan. No persiste nada.
func (s *Service) Derive(f Form) (Plan, error) {
	if err := f.Validate(); err != nil {
		return Plan{}, err
	}
	p, err := s.tables.Derive(f)
	if err != nil {
		return Plan{}, err
	}
	countPlan(f)
	return p, nil
}

// countPlan cuenta planes derivados por pedido o por cambio de formulario; las lecturas no suman.
func countPlan(f Form) {
	metrics.NutritionPlans.WithLabelValues(string(f.AnimalType), string(f.FitnessGoal)).Inc()
}

// CreatePlanner arranca un planner. form nil => DefaultForm.
func (s *Service) CreatePlanner(ctx context.Context, form *Form) (PlannerView, error) {
	f := DefaultForm()
	if form != nil {
		f = *form
	}
	if err := f.Validate(); err != nil {
		return PlannerView{}, err
	}

	now := s.now()
	p := Planner{
		ID:        uuid.NewString(),
		Form:      f,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return PlannerView{}, fmt.Errorf("save planner: %w", err)
	}

	s.log.Info("nutrition planner created", map[string]any{
		"planner_id":  p.ID,
		"animal_type": string(f.AnimalType),
	})
	countPlan(f)
	return s.view(p)
}

func (s *Service) GetPlanner(ctx context.Context, id string) (PlannerView, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return PlannerView{}, err
	}
	return s.view(p)
}

// UpdateForm aplica el patch. Cambiar de animal limpia las comidas marcadas.
func (s *Service) UpdateForm(ctx context.Context, id string, patch FormPatch) (PlannerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx, id)
	if err != nil {
		return PlannerView{}, err
	}

	next := patch.apply(p.Form)
	if err := next.Validate(); err != nil {
		return PlannerView{}, err
	}
	if next.AnimalType != p.Form.AnimalType {
		p.Marked = nil
	}
	p.Form = next
	p.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, p); err != nil {
		return PlannerView{}, fmt.Errorf("save planner: %w", err)
	}
	countPlan(next)
	return s.view(p)
}

// ToggleFood marca/desmarca una comida del catálogo actual del planner.
func (s *Service) ToggleFood(ctx context.Context, id, name string) (PlannerView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return PlannerView{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx, id)
	if err != nil {
		return PlannerView{}, err
	}
	if !s.inCatalog(p.Form.AnimalType, name) {
		return PlannerView{}, fmt.Errorf("%w: %q", ErrUnknownFood, name)
	}

	marks := NewFoodMarks(p.Marked)
	marks.Toggle(name)
	p.Marked = marks.Names()
	p.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, p); err != nil {
		return PlannerView{}, fmt.Errorf("save planner: %w", err)
	}
	return s.view(p)
}

func (s *Service) DeletePlanner(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) load(ctx context.Context, id string) (Planner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Planner{}, ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Planner{}, ErrNotFound
		}
		return Planner{}, err
	}
	return p, nil
}

func (s *Service) inCatalog(a AnimalType, name string) bool {
	for _, f := range s.tables.catalog(a).Foods {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (s *Service) view(p Planner) (PlannerView, error) {
	plan, err := s.tables.Derive(p.Form)
	if err != nil {
		return PlannerView{}, err
	}
	marks := NewFoodMarks(p.Marked)
	if p.Marked == nil {
		p.Marked = []string{}
	}
	return PlannerView{
		Planner: p,
		Plan:    plan,
		Score:   marks.Score(len(plan.Foods)),
	}, nil
}
