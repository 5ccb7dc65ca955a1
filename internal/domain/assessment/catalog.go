package assessment

// Textos fijos del wizard. No hay camino de mutación: los getters devuelven copias.

var symptomObservations = []string{
	"Frequent vomiting",
	"Loose stool",
	"Coughing episodes",
	"Excessive scratching",
	"Sudden appetite drop",
	"Drinking unusually more water",
}

var statusMessages = []string{
	"Synthesizing symptom vectors...",
	"Cross-referencing breed-specific patterns...",
	"Mapping behavior to clinical likelihood...",
	"Building actionable care recommendations...",
}

var photoTips = []string{
	"Use good natural or bright indoor lighting",
	"Keep the camera focused on the affected area",
	"Frame the full area with minimal blur",
}

var summaries = map[Level]string{
	LevelHigh:     "The model flags a high-risk cluster based on low vitality signals and symptom intensity. Prompt veterinary evaluation is recommended.",
	LevelModerate: "The model indicates moderate concern with mixed behavior changes. Monitor closely and consult a veterinarian if symptoms persist.",
	LevelLow:      "The model indicates low immediate risk. Continue watchful care and maintain hydration, appetite monitoring, and routine observation.",
}

var defaultObservations = []string{
	"Image quality acceptable for analysis",
	"No extreme emergency signature detected",
	"Behavior baseline partly stable",
}

var recommendedActions = []string{
	"Track hydration and appetite every 6-8 hours",
	"Recheck symptoms after rest and hydration support",
	"Schedule vet follow-up if no improvement in 24 hours",
}

var nearbyVets = []Vet{
	{Name: "CityCare Veterinary Clinic", Distance: "1.8 km", Availability: "Open now"},
	{Name: "Paws & Whiskers Animal Hospital", Distance: "3.1 km", Availability: "Available in 30 mins"},
	{Name: "Greenfield Pet Emergency", Distance: "4.2 km", Availability: "24/7 emergency"},
}

func SymptomObservations() []string { return append([]string(nil), symptomObservations...) }
func StatusMessages() []string      { return append([]string(nil), statusMessages...) }
func PhotoTips() []string           { return append([]string(nil), photoTips...) }

// StatusCount es N en el ciclo statusIndex = (i+1) mod N.
func StatusCount() int { return len(statusMessages) }

// StatusMessage devuelve el mensaje para un índice; fuera de rango cae al primero.
func StatusMessage(i int) string {
	if i < 0 || i >= len(statusMessages) {
		return statusMessages[0]
	}
	return statusMessages[i]
}

func IsKnownObservation(label string) bool {
	for _, s := range symptomObservations {
		if s == label {
			return true
		}
	}
	return false
}
