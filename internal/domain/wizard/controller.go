package wizard

import (
	"strings"
	"sync"
	"time"

	"pet-health-assessment/internal/domain/assessment"
	"pet-health-assessment/internal/platform/clock"
)

// Timings del paso "procesando".
type Timings struct {
	ProgressInterval time.Duration
	ProgressStep     int
	StatusInterval   time.Duration
	GraceDelay       time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		ProgressInterval: 220 * time.Millisecond,
		ProgressStep:     5,
		StatusInterval:   2 * time.Second,
		GraceDelay:       450 * time.Millisecond,
	}
}

// StepHook se invoca fuera del lock del controller después de cada cambio de step,
// incluido el 3 -> 4 que dispara el timer.
type StepHook func(from, to Step, snapshot State)

type stepEvent struct {
	from, to Step
	snapshot State
}

// Controller es la máquina de estados de un wizard.
// Todas las mutaciones pasan por mu: los callbacks de timers corren en otras goroutines.
type Controller struct {
	mu      sync.Mutex
	clock   clock.Clock
	timings Timings
	onStep  StepHook

	state    State
	disposed bool

	// gen invalida callbacks viejos: cada entrada/salida de "procesando" la incrementa.
	gen           uint64
	statusTimer   clock.Stopper
	progressTimer clock.Stopper
	graceTimer    clock.Stopper
}

func NewController(clk clock.Clock, t Timings, onStep StepHook) *Controller {
	return Restore(clk, t, onStep, InitialState())
}

// Restore reconstruye un controller desde un snapshot. Si estaba procesando,
// vuelve a entrar al paso 3 desde cero (el progreso parcial no se conserva).
func Restore(clk clock.Clock, t Timings, onStep StepHook, st State) *Controller {
	if clk == nil {
		clk = clock.Real()
	}
	c := &Controller{
		clock:   clk,
		timings: t,
		onStep:  onStep,
		state:   st.clone(),
	}
	if c.state.Step == StepProcessing {
		c.mu.Lock()
		c.enterProcessingLocked()
		c.mu.Unlock()
	}
	return c
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Result deriva el resultado sobre las entradas actuales, sin importar el step.
func (c *Controller) Result() assessment.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return assessment.Derive(c.state.Metrics, c.state.Observations)
}

func (c *Controller) Insight() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return assessment.Insight(c.state.Metrics)
}

func (c *Controller) AttachImage(ref ImageRef) error {
	return c.mutate(func() (*stepEvent, error) {
		if c.state.Step != StepVisual {
			return nil, ErrInvalidTransition
		}
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(ref.ContentType)), "image/") {
			return nil, ErrNotAnImage
		}
		img := ref
		c.state.Image = &img
		return nil, nil
	})
}

// Next avanza 1->2 o 2->3. La presencia de imagen para 1->2 la valida quien llama.
// 3->4 no se puede forzar: lo hace el timer.
func (c *Controller) Next() error {
	return c.mutate(func() (*stepEvent, error) {
		switch c.state.Step {
		case StepVisual:
			return c.setStepLocked(StepBehavior), nil
		case StepBehavior:
			ev := c.setStepLocked(StepProcessing)
			c.enterProcessingLocked()
			ev.snapshot = c.state.clone()
			return ev, nil
		default:
			return nil, ErrInvalidTransition
		}
	})
}

func (c *Controller) Back() error {
	return c.mutate(func() (*stepEvent, error) {
		if c.state.Step != StepBehavior {
			return nil, ErrInvalidTransition
		}
		return c.setStepLocked(StepVisual), nil
	})
}

func (c *Controller) SetMetrics(m assessment.Metrics) error {
	return c.mutate(func() (*stepEvent, error) {
		if c.state.Step != StepBehavior {
			return nil, ErrInvalidTransition
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
		c.state.Metrics = m
		return nil, nil
	})
}

// ToggleObservation agrega o quita un síntoma del catálogo, preservando el orden de inserción.
func (c *Controller) ToggleObservation(label string) error {
	return c.mutate(func() (*stepEvent, error) {
		if c.state.Step != StepBehavior {
			return nil, ErrInvalidTransition
		}
		if !assessment.IsKnownObservation(label) {
			return nil, assessment.ErrUnknownObservation
		}
		for i, o := range c.state.Observations {
			if o == label {
				c.state.Observations = append(c.state.Observations[:i:i], c.state.Observations[i+1:]...)
				if len(c.state.Observations) == 0 {
					c.state.Observations = nil
				}
				return nil, nil
			}
		}
		c.state.Observations = append(c.state.Observations, label)
		return nil, nil
	})
}

// Restart vuelve todo a los defaults desde cualquier step.
func (c *Controller) Restart() error {
	return c.mutate(func() (*stepEvent, error) {
		c.exitProcessingLocked()
		from := c.state.Step
		c.state = InitialState()
		if from == StepVisual {
			return nil, nil
		}
		return &stepEvent{from: from, to: StepVisual, snapshot: c.state.clone()}, nil
	})
}

// Dispose cancela timers. Idempotente; el controller queda inerte.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exitProcessingLocked()
	c.disposed = true
}

func (c *Controller) mutate(fn func() (*stepEvent, error)) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrDisposed
	}
	ev, err := fn()
	c.mu.Unlock()

	if err != nil {
		return err
	}
	c.emit(ev)
	return nil
}

func (c *Controller) emit(ev *stepEvent) {
	if ev == nil || c.onStep == nil {
		return
	}
	c.onStep(ev.from, ev.to, ev.snapshot)
}

func (c *Controller) setStepLocked(to Step) *stepEvent {
	from := c.state.Step
	c.state.Step = to
	return &stepEvent{from: from, to: to, snapshot: c.state.clone()}
}
