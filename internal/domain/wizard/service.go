package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"pet-health-assessment/internal/domain/assessment"
	"pet-health-assessment/internal/platform/clock"
	"pet-health-assessment/internal/platform/logger"
	"pet-health-assessment/internal/platform/metrics"

	"github.com/google/uuid"
)

// Service maneja sesiones de wizard: controllers vivos en memoria + snapshot en el repo.
type Service struct {
	repo    Repository
	clock   clock.Clock
	timings Timings
	log     logger.Logger
	now     func() time.Time

	mu   sync.Mutex
	live map[string]*liveSession
}

type liveSession struct {
	ops       sync.Mutex // serializa check + acción + Save, también el Save del timer
	ctrl      *Controller
	createdAt time.Time

	// bajo Service.mu
	lastUsed  time.Time
	updatedAt time.Time
}

type ServiceOptions struct {
	Clock   clock.Clock   // nil => reloj real
	Timings *Timings      // nil => DefaultTimings
	Logger  logger.Logger // nil => no-op
}

func NewService(repo Repository, opts ServiceOptions) *Service {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real()
	}
	t := DefaultTimings()
	if opts.Timings != nil {
		t = *opts.Timings
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &Service{
		repo:    repo,
		clock:   clk,
		timings: t,
		log:     log.With(map[string]any{"module": "wizard"}),
		now:     clk.Now,
		live:    map[string]*liveSession{},
	}
}

func (s *Service) Create(ctx context.Context) (Session, error) {
	id := uuid.NewString()
	now := s.now()

	ls := &liveSession{createdAt: now, lastUsed: now, updatedAt: now}
	ls.ops.Lock()
	ls.ctrl = NewController(s.clock, s.timings, s.stepHook(id, ls))
	ls.ops.Unlock()

	sess := Session{ID: id, State: ls.ctrl.Snapshot(), CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Save(ctx, sess); err != nil {
		ls.ctrl.Dispose()
		return Session{}, fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.live[id] = ls
	s.mu.Unlock()
	metrics.WizardSessionsActive.Inc()

	s.log.Info("wizard session created", map[string]any{"session_id": id})
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	ls, err := s.controller(ctx, id)
	if err != nil {
		return Session{}, err
	}
	st := ls.ctrl.Snapshot()
	s.mu.Lock()
	updated := ls.updatedAt
	s.mu.Unlock()
	return Session{ID: id, State: st, CreatedAt: ls.createdAt, UpdatedAt: updated}, nil
}

func (s *Service) AttachImage(ctx context.Context, id string, ref ImageRef) (Session, error) {
	if strings.TrimSpace(ref.ID) == "" {
		ref.ID = uuid.NewString()
	}
	if ref.UploadedAt.IsZero() {
		ref.UploadedAt = s.now()
	}
	return s.apply(ctx, id, func(c *Controller) error { return c.AttachImage(ref) })
}

// Next avanza un paso. 1->2 exige imagen adjunta.
func (s *Service) Next(ctx context.Context, id string) (Session, error) {
	return s.apply(ctx, id, func(c *Controller) error {
		st := c.Snapshot()
		if st.Step == StepVisual && st.Image == nil {
			return ErrImageRequired
		}
		return c.Next()
	})
}

func (s *Service) Back(ctx context.Context, id string) (Session, error) {
	return s.apply(ctx, id, func(c *Controller) error { return c.Back() })
}

func (s *Service) SetMetrics(ctx context.Context, id string, m assessment.Metrics) (Session, error) {
	return s.apply(ctx, id, func(c *Controller) error { return c.SetMetrics(m) })
}

func (s *Service) ToggleObservation(ctx context.Context, id, label string) (Session, error) {
	return s.apply(ctx, id, func(c *Controller) error { return c.ToggleObservation(label) })
}

func (s *Service) Restart(ctx context.Context, id string) (Session, error) {
	return s.apply(ctx, id, func(c *Controller) error { return c.Restart() })
}

func (s *Service) Insight(ctx context.Context, id string) (string, error) {
	ls, err := s.controller(ctx, id)
	if err != nil {
		return "", err
	}
	return ls.ctrl.Insight(), nil
}

// Result solo está disponible en el paso 4.
func (s *Service) Result(ctx context.Context, id string) (assessment.Result, error) {
	ls, err := s.controller(ctx, id)
	if err != nil {
		return assessment.Result{}, err
	}
	if ls.ctrl.Snapshot().Step != StepResults {
		return assessment.Result{}, ErrResultNotReady
	}
	r := ls.ctrl.Result()
	metrics.AssessmentResults.WithLabelValues(string(r.Level)).Inc()
	return r, nil
}

// Close libera el controller y borra el snapshot.
func (s *Service) Close(ctx context.Context, id string) error {
	s.mu.Lock()
	ls, ok := s.live[id]
	delete(s.live, id)
	s.mu.Unlock()

	if ok {
		// espera un Save del timer en curso para no dejar un snapshot huérfano
		ls.ops.Lock()
		ls.ctrl.Dispose()
		ls.ops.Unlock()
		metrics.WizardSessionsActive.Dec()
	}

	err := s.repo.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		if ok {
			return nil
		}
		return err
	default:
		s.log.Error("delete session failed", map[string]any{"session_id": id, "err": err})
		return err
	}
}

// Shutdown descarta todos los controllers vivos (los snapshots quedan en el repo).
func (s *Service) Shutdown() {
	s.mu.Lock()
	all := s.live
	s.live = map[string]*liveSession{}
	s.mu.Unlock()

	for _, ls := range all {
		ls.ctrl.Dispose()
		metrics.WizardSessionsActive.Dec()
	}
}

// EvictIdle descarta controllers sin uso hace más de maxIdle. El snapshot queda en el
// repo, así que un request posterior lo restaura. Devuelve cuántos se descartaron.
func (s *Service) EvictIdle(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	var idle []*liveSession
	for id, ls := range s.live {
		if ls.lastUsed.Before(cutoff) {
			idle = append(idle, ls)
			delete(s.live, id)
		}
	}
	s.mu.Unlock()

	for _, ls := range idle {
		ls.ctrl.Dispose()
		metrics.WizardSessionsActive.Dec()
	}
	if len(idle) > 0 {
		s.log.Info("evicted idle wizard sessions", map[string]any{"count": len(idle)})
	}
	return len(idle)
}

// Expire borra las sesiones sin cambios hace más de ttl: descarta el controller vivo
// y el snapshot del repo. Es el mismo criterio que el TTL de Redis (cuenta desde el último Save).
func (s *Service) Expire(ctx context.Context, ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	var stale []*liveSession
	for id, ls := range s.live {
		if ls.updatedAt.Before(cutoff) {
			stale = append(stale, ls)
			delete(s.live, id)
		}
	}
	s.mu.Unlock()

	for _, ls := range stale {
		ls.ops.Lock()
		ls.ctrl.Dispose()
		ls.ops.Unlock()
		metrics.WizardSessionsActive.Dec()
	}

	n, err := s.repo.DeleteIdle(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("expire sessions: %w", err)
	}
	if n > 0 {
		s.log.Info("expired wizard sessions", map[string]any{"count": n})
	}
	return n, nil
}

func (s *Service) apply(ctx context.Context, id string, fn func(*Controller) error) (Session, error) {
	ls, err := s.controller(ctx, id)
	if err != nil {
		return Session{}, err
	}
	ls.ops.Lock()
	defer ls.ops.Unlock()

	if err := fn(ls.ctrl); err != nil {
		return Session{}, err
	}

	sess := Session{ID: id, State: ls.ctrl.Snapshot(), CreatedAt: ls.createdAt, UpdatedAt: s.now()}
	if err := s.repo.Save(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	s.touch(ls, sess.UpdatedAt)
	return sess, nil
}

func (s *Service) touch(ls *liveSession, at time.Time) {
	s.mu.Lock()
	ls.updatedAt = at
	s.mu.Unlock()
}

// controller devuelve el controller vivo o lo reconstruye desde el repo.
func (s *Service) controller(ctx context.Context, id string) (*liveSession, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	ls, ok := s.live[id]
	if ok {
		ls.lastUsed = s.now()
	}
	s.mu.Unlock()
	if ok {
		return ls, nil
	}

	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// otro request pudo haberlo restaurado mientras leíamos
	if ls, ok := s.live[id]; ok {
		return ls, nil
	}

	ls = &liveSession{createdAt: stored.CreatedAt, lastUsed: s.now(), updatedAt: stored.UpdatedAt}
	ls.ops.Lock()
	ls.ctrl = Restore(s.clock, s.timings, s.stepHook(id, ls), stored.State)
	ls.ops.Unlock()
	s.live[id] = ls
	metrics.WizardSessionsActive.Inc()

	s.log.Info("wizard session restored", map[string]any{"session_id": id, "step": int(stored.State.Step)})
	return ls, nil
}

func (s *Service) stepHook(id string, ls *liveSession) StepHook {
	return func(from, to Step, snap State) {
		metrics.WizardStepTransitions.WithLabelValues(strconv.Itoa(int(from)), strconv.Itoa(int(to))).Inc()
		s.log.Debug("wizard step changed", map[string]any{
			"session_id": id,
			"from":       from.String(),
			"to":         to.String(),
		})

		// solo el 3->4 llega desde un timer; el resto lo persiste apply()
		if from != StepProcessing || to != StepResults {
			return
		}

		ls.ops.Lock()
		defer ls.ops.Unlock()

		// un Restart/Close pudo ganarle al hook: se guarda el estado actual o nada
		s.mu.Lock()
		current := s.live[id] == ls
		s.mu.Unlock()
		cur := ls.ctrl.Snapshot()
		if !current || cur.Step != snap.Step {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		now := s.now()
		if err := s.repo.Save(ctx, Session{ID: id, State: cur, CreatedAt: ls.createdAt, UpdatedAt: now}); err != nil {
			s.log.Error("persist completed session failed", map[string]any{"session_id": id, "err": err})
			return
		}
		s.touch(ls, now)
	}
}
