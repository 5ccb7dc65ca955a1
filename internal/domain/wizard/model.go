package wizard

import (
	"errors"
	"time"

	"pet-health-assessment/internal/domain/assessment"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("session not found")
	ErrInvalidTransition = errors.New("invalid step transition")
	ErrImageRequired     = errors.New("an image is required before continuing")
	ErrNotAnImage        = errors.New("file must be an image")
	ErrResultNotReady    = errors.New("result not ready")
	ErrDisposed          = errors.New("controller disposed")
)

// Step del wizard: 1 visual -> 2 comportamiento -> 3 procesando -> 4 resultados -> (restart) 1.
type Step int

const (
	StepVisual     Step = 1
	StepBehavior   Step = 2
	StepProcessing Step = 3
	StepResults    Step = 4
)

func (s Step) String() string {
	switch s {
	case StepVisual:
		return "visual"
	case StepBehavior:
		return "behavior"
	case StepProcessing:
		return "processing"
	case StepResults:
		return "results"
	default:
		return "unknown"
	}
}

// ImageRef es un handle opaco de la imagen subida. Solo importa su presencia;
// los bytes no se guardan (preview y análisis quedan fuera).
type ImageRef struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type State struct {
	Step         Step               `json:"step"`
	Image        *ImageRef          `json:"image,omitempty"`
	Metrics      assessment.Metrics `json:"metrics"`
	Observations []string           `json:"observations"`
	Progress     int                `json:"progress"`
	StatusIndex  int                `json:"status_index"`
}

func InitialState() State {
	return State{
		Step:    StepVisual,
		Metrics: assessment.DefaultMetrics(),
	}
}

func (s State) clone() State {
	out := s
	if s.Image != nil {
		img := *s.Image
		out.Image = &img
	}
	if s.Observations != nil {
		out.Observations = append([]string(nil), s.Observations...)
	}
	return out
}

// Session es lo que se persiste: el último snapshot del controller.
type Session struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone copia el snapshot sin compartir slices ni punteros.
func (s Session) Clone() Session {
	s.State = s.State.clone()
	return s
}
