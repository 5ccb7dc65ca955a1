package nutrition

// FoodMarks es el set de comidas marcadas; conserva el orden en que se marcaron.
type FoodMarks struct {
	names []string
}

func NewFoodMarks(names []string) *FoodMarks {
	m := &FoodMarks{}
	for _, n := range names {
		if !m.Has(n) {
			m.names = append(m.names, n)
		}
	}
	return m
}

// Toggle marca o desmarca. Devuelve true si quedó marcada.
func (m *FoodMarks) Toggle(name string) bool {
	for i, n := range m.names {
		if n == name {
			m.names = append(m.names[:i:i], m.names[i+1:]...)
			return false
		}
	}
	m.names = append(m.names, name)
	return true
}

func (m *FoodMarks) Has(name string) bool {
	for _, n := range m.names {
		if n == name {
			return true
		}
	}
	return false
}

func (m *FoodMarks) Len() int { return len(m.names) }

func (m *FoodMarks) Reset() { m.names = nil }

func (m *FoodMarks) Names() []string {
	return append([]string{}, m.names...)
}

// Score es el % de comidas sugeridas ya marcadas. total<1 cuenta como 1.
func (m *FoodMarks) Score(total int) int {
	if total < 1 {
		total = 1
	}
	return roundHalfUp(float64(len(m.names)) / float64(total) * 100)
}
