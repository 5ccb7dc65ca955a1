package assessment

// Insight es el texto de contexto que acompaña a los sliders en el paso de comportamiento.
// Solo mira las métricas, no las observaciones.
func Insight(m Metrics) string {
	base := (10 - m.Energy) + (10 - m.Appetite) + (10 - m.Mood)
	switch {
	case base >= 20:
		return "AI context: Significant behavioral decline detected. Prioritize same-day veterinary review."
	case base >= 13:
		return "AI context: Moderate concern pattern. Monitor closely and consider a vet consultation within 24 hours."
	default:
		return "AI context: Mild behavioral changes. Continue monitoring with hydration and routine checks."
	}
}
