package assessment

import "errors"

var (
	ErrInvalidRange       = errors.New("metric out of range")
	ErrUnknownObservation = errors.New("unknown observation")
)

const (
	MinMetric = 1
	MaxMetric = 10

	MinScore = 8
	MaxScore = 96
)

// Level es el nivel de riesgo derivado del score.
// @Enum low, moderate, high
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// Metrics son los sliders de comportamiento (1..10 cada uno).
type Metrics struct {
	Energy   int `json:"energy"`
	Appetite int `json:"appetite"`
	Mood     int `json:"mood"`
}

func DefaultMetrics() Metrics {
	return Metrics{Energy: 6, Appetite: 6, Mood: 6}
}

func (m Metrics) Validate() error {
	for _, v := range []int{m.Energy, m.Appetite, m.Mood} {
		if v < MinMetric || v > MaxMetric {
			return ErrInvalidRange
		}
	}
	return nil
}

// Vet es una clínica cercana (lista fija).
type Vet struct {
	Name         string `json:"name"`
	Distance     string `json:"distance"`
	Availability string `json:"availability"`
}

// Result es inmutable por snapshot de entrada; se recalcula, nunca se muta.
type Result struct {
	Score        int      `json:"score"`
	Level        Level    `json:"level"`
	Summary      string   `json:"summary"`
	Observations []string `json:"observations"`
	Actions      []string `json:"actions"`
	Vets         []Vet    `json:"vets"`
}
