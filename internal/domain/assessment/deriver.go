package assessment

import "math"

const maxResultObservations = 4

// Derive calcula el resultado del assessment. Pura y determinística.
//
// El score se clampa a [8,96] ANTES de clasificar el nivel; los umbrales
// (34 / 67) están pensados sobre el rango clampado.
func Derive(m Metrics, observations []string) Result {
	riskRaw := float64((10-m.Energy)*3 + (10-m.Appetite)*3 + (10-m.Mood)*2 + len(observations)*2)
	score := clamp(int(math.Floor(riskRaw+0.5)), MinScore, MaxScore)
	level := LevelFor(score)

	obs := defaultObservations
	if len(observations) > 0 {
		obs = observations
		if len(obs) > maxResultObservations {
			obs = obs[:maxResultObservations]
		}
	}

	return Result{
		Score:        score,
		Level:        level,
		Summary:      summaries[level],
		Observations: append([]string(nil), obs...),
		Actions:      append([]string(nil), recommendedActions...),
		Vets:         append([]Vet(nil), nearbyVets...),
	}
}

func LevelFor(score int) Level {
	switch {
	case score < 34:
		return LevelLow
	case score < 67:
		return LevelModerate
	default:
		return LevelHigh
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
