package nutrition

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// DerivePlan calcula el plan con las tablas embebidas.
func DerivePlan(f Form) (Plan, error) {
	return defaultTables.Derive(f)
}

// Derive aplica la heurística de RER (70 * peso^0.75) ajustada por actividad y objetivo.
// No valida rangos (eso es Form.Validate); solo protege la división por semanas.
func (t *Tables) Derive(f Form) (Plan, error) {
	activity, ok := t.ActivityFactors[f.ActivityLevel]
	if !ok {
		return Plan{}, fmt.Errorf("%w: activity level %q", ErrUnknownCategory, f.ActivityLevel)
	}
	adjustment, ok := t.GoalAdjustments[f.FitnessGoal]
	if !ok {
		return Plan{}, fmt.Errorf("%w: fitness goal %q", ErrUnknownCategory, f.FitnessGoal)
	}
	profile := t.MacroProfiles[f.FitnessGoal]

	baseRER := 70 * math.Pow(f.CurrentWeight, 0.75)
	maintenance := baseRER * activity
	adjusted := maintenance * adjustment

	proteinGrams := adjusted * profile.Protein / kcalPerGramProtein
	fatGrams := adjusted * profile.Fats / kcalPerGramFat
	carbGrams := adjusted * profile.Carbs / kcalPerGramCarbs

	meals := t.mealsPerDay(f.AnimalType)

	weeks := f.DurationWeeks
	if weeks < MinDurationWeeks {
		weeks = MinDurationWeeks
	}
	weeklyDelta := 0.0
	if f.TargetWeight > 0 {
		weeklyDelta = round2((f.TargetWeight - f.CurrentWeight) / float64(weeks))
	}

	cat := t.catalog(f.AnimalType)

	return Plan{
		MaintenanceCalories: roundHalfUp(maintenance),
		TotalCalories:       roundHalfUp(adjusted),
		ProteinGrams:        roundHalfUp(proteinGrams),
		FatGrams:            roundHalfUp(fatGrams),
		CarbGrams:           roundHalfUp(carbGrams),
		MealsPerDay:         meals,
		WaterMl:             roundHalfUp(f.CurrentWeight * t.WaterMlPerKg),
		WeeklyDelta:         weeklyDelta,
		Foods:               append([]Food(nil), cat.Foods...),
		Nutrients:           append([]string(nil), cat.Nutrients...),
		Summary:             summary(f, roundHalfUp(adjusted), meals, roundHalfUp(proteinGrams)),
	}, nil
}

func summary(f Form, kcal, meals, protein int) string {
	return fmt.Sprintf(
		"For a %s-year-old %s with a %s goal, the plan targets %d kcal/day across %d feedings with a %dg protein focus.",
		strconv.FormatFloat(f.Age, 'f', -1, 64),
		strings.ToLower(string(f.AnimalType)),
		strings.ToLower(string(f.FitnessGoal)),
		kcal, meals, protein,
	)
}

// roundHalfUp redondea .5 hacia +inf (igual para negativos: -2.5 => -2).
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // evita -0
	}
	return r
}
