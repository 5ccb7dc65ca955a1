package nutrition

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var tablesYAML []byte

type MacroProfile struct {
	Protein float64 `yaml:"protein"`
	Fats    float64 `yaml:"fats"`
	Carbs   float64 `yaml:"carbs"`
}

type animalCatalog struct {
	Foods     []Food   `yaml:"foods"`
	Nutrients []string `yaml:"nutrients"`
}

// Tables son los lookups fijos del deriver. Inmutables después de cargar.
type Tables struct {
	ActivityFactors map[ActivityLevel]float64    `yaml:"activity_factors"`
	GoalAdjustments map[Goal]float64             `yaml:"goal_adjustments"`
	MacroProfiles   map[Goal]MacroProfile        `yaml:"macro_profiles"`
	MealsPerDay     map[string]int               `yaml:"meals_per_day"`
	WaterMlPerKg    float64                      `yaml:"water_ml_per_kg"`
	FallbackAnimal  AnimalType                   `yaml:"fallback_animal"`
	Animals         map[AnimalType]animalCatalog `yaml:"animals"`
}

var defaultTables = mustLoadTables(tablesYAML)

// DefaultTables devuelve las tablas embebidas.
func DefaultTables() *Tables { return defaultTables }

// LoadTables parsea y valida un documento de tablas.
func LoadTables(doc []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(doc, &t); err != nil {
		return nil, fmt.Errorf("parse nutrition tables: %w", err)
	}
	if err := t.check(); err != nil {
		return nil, err
	}
	return &t, nil
}

func mustLoadTables(doc []byte) *Tables {
	t, err := LoadTables(doc)
	if err != nil {
		// tablas incompletas = error de configuración fatal
		panic(err)
	}
	return t
}

func (t *Tables) check() error {
	for _, a := range []ActivityLevel{ActivityLow, ActivityModerate, ActivityHigh} {
		if _, ok := t.ActivityFactors[a]; !ok {
			return fmt.Errorf("nutrition tables: missing activity factor %q", a)
		}
	}
	for _, g := range []Goal{GoalWeightLoss, GoalWeightGain, GoalMaintenance, GoalMuscleBuilding} {
		if _, ok := t.GoalAdjustments[g]; !ok {
			return fmt.Errorf("nutrition tables: missing goal adjustment %q", g)
		}
		if _, ok := t.MacroProfiles[g]; !ok {
			return fmt.Errorf("nutrition tables: missing macro profile %q", g)
		}
	}
	if _, ok := t.MealsPerDay["default"]; !ok {
		return fmt.Errorf("nutrition tables: missing default meals_per_day")
	}
	if t.WaterMlPerKg <= 0 {
		return fmt.Errorf("nutrition tables: water_ml_per_kg must be positive")
	}
	if _, ok := t.Animals[t.FallbackAnimal]; !ok {
		return fmt.Errorf("nutrition tables: fallback animal %q has no catalog", t.FallbackAnimal)
	}
	return nil
}

// catalog devuelve comidas y nutrientes del animal; si no existe, los del fallback.
func (t *Tables) catalog(a AnimalType) animalCatalog {
	if c, ok := t.Animals[a]; ok {
		return c
	}
	return t.Animals[t.FallbackAnimal]
}

func (t *Tables) mealsPerDay(a AnimalType) int {
	if n, ok := t.MealsPerDay[string(a)]; ok {
		return n
	}
	return t.MealsPerDay["default"]
}

// Foods devuelve una copia del catálogo de comidas para el animal.
func (t *Tables) Foods(a AnimalType) []Food {
	return append([]Food(nil), t.catalog(a).Foods...)
}
