package nutrition

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidRange    = errors.New("value out of range")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownFood     = errors.New("food not in current catalog")
	ErrNotFound        = errors.New("planner not found")
)

// AnimalType de la mascota del plan.
// @Enum Dog, Cat, Rabbit, Bird
type AnimalType string

const (
	AnimalDog    AnimalType = "Dog"
	AnimalCat    AnimalType = "Cat"
	AnimalRabbit AnimalType = "Rabbit"
	AnimalBird   AnimalType = "Bird"
)

// ActivityLevel
// @Enum low, moderate, high
type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "low"
	ActivityModerate ActivityLevel = "moderate"
	ActivityHigh     ActivityLevel = "high"
)

// Goal es el objetivo de fitness.
// @Enum Weight Loss, Weight Gain, Maintenance, Muscle Building
type Goal string

const (
	GoalWeightLoss     Goal = "Weight Loss"
	GoalWeightGain     Goal = "Weight Gain"
	GoalMaintenance    Goal = "Maintenance"
	GoalMuscleBuilding Goal = "Muscle Building"
)

const (
	MinAge           = 0.5
	MinCurrentWeight = 0.5
	MinDurationWeeks = 1
	MaxDurationWeeks = 52
)

type Form struct {
	AnimalType    AnimalType    `json:"animal_type"`
	Age           float64       `json:"age"`
	CurrentWeight float64       `json:"current_weight"`
	TargetWeight  float64       `json:"target_weight"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	FitnessGoal   Goal          `json:"fitness_goal"`
	DurationWeeks int           `json:"duration_weeks"`
}

// DefaultForm es el formulario con el que arranca un planner nuevo.
func DefaultForm() Form {
	return Form{
		AnimalType:    AnimalDog,
		Age:           3,
		CurrentWeight: 20,
		TargetWeight:  18,
		ActivityLevel: ActivityModerate,
		FitnessGoal:   GoalWeightLoss,
		DurationWeeks: 8,
	}
}

// Validate rechaza en el borde lo que el deriver no valida (rangos y enums).
func (f Form) Validate() error {
	switch f.AnimalType {
	case AnimalDog, AnimalCat, AnimalRabbit, AnimalBird:
	default:
		return ErrUnknownCategory
	}
	switch f.ActivityLevel {
	case ActivityLow, ActivityModerate, ActivityHigh:
	default:
		return ErrUnknownCategory
	}
	switch f.FitnessGoal {
	case GoalWeightLoss, GoalWeightGain, GoalMaintenance, GoalMuscleBuilding:
	default:
		return ErrUnknownCategory
	}

	if f.Age < MinAge || f.CurrentWeight < MinCurrentWeight || f.TargetWeight < 0 {
		return ErrInvalidRange
	}
	if f.DurationWeeks < MinDurationWeeks || f.DurationWeeks > MaxDurationWeeks {
		return ErrInvalidRange
	}
	return nil
}

type Food struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type Plan struct {
	MaintenanceCalories int      `json:"maintenance_calories"`
	TotalCalories       int      `json:"total_calories"`
	ProteinGrams        int      `json:"protein_grams"`
	FatGrams            int      `json:"fat_grams"`
	CarbGrams           int      `json:"carb_grams"`
	MealsPerDay         int      `json:"meals_per_day"`
	WaterMl             int      `json:"water_ml"`
	WeeklyDelta         float64  `json:"weekly_delta"`
	Foods               []Food   `json:"foods"`
	Nutrients           []string `json:"nutrients"`
	Summary             string   `json:"summary"`
}

// Planner es la sesión del planificador: formulario + comidas marcadas.
type Planner struct {
	ID        string    `json:"id"`
	Form      Form      `json:"form"`
	Marked    []string  `json:"marked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
