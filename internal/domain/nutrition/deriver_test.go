package nutrition

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivePlan_DefaultForm(t *testing.T) {
	plan, err := DerivePlan(DefaultForm())
	require.NoError(t, err)

	// 70 * 20^0.75 = 662.02 ; *1.4 = 926.83 ; *0.85 = 787.80
	assert.Equal(t, 927, plan.MaintenanceCalories)
	assert.Equal(t, 788, plan.TotalCalories)
	assert.Equal(t, 69, plan.ProteinGrams)
	assert.Equal(t, 26, plan.FatGrams)
	assert.Equal(t, 69, plan.CarbGrams)
	assert.Equal(t, 2, plan.MealsPerDay)
	assert.Equal(t, 1100, plan.WaterMl)
	assert.Equal(t, -0.25, plan.WeeklyDelta)
	assert.Len(t, plan.Foods, 6)
	assert.Equal(t, []string{"Omega-3", "Calcium", "Vitamin D", "Zinc"}, plan.Nutrients)
	assert.Equal(t,
		"For a 3-year-old dog with a weight loss goal, the plan targets 788 kcal/day across 2 feedings with a 69g protein focus.",
		plan.Summary)
}

func TestDerivePlan_MaintenanceKeepsCalories(t *testing.T) {
	f := DefaultForm()
	f.FitnessGoal = GoalMaintenance

	plan, err := DerivePlan(f)
	require.NoError(t, err)
	assert.Equal(t, plan.MaintenanceCalories, plan.TotalCalories)
}

func TestDerivePlan_Table(t *testing.T) {
	tests := []struct {
		name string
		form Form
		want Plan
	}{
		{
			name: "cat low maintenance without target",
			form: Form{AnimalType: AnimalCat, Age: 2.5, CurrentWeight: 4, ActivityLevel: ActivityLow, FitnessGoal: GoalMaintenance, DurationWeeks: 4},
			want: Plan{MaintenanceCalories: 238, TotalCalories: 238, ProteinGrams: 18, FatGrams: 8, CarbGrams: 24, MealsPerDay: 3, WaterMl: 220, WeeklyDelta: 0},
		},
		{
			name: "rabbit high weight gain",
			form: Form{AnimalType: AnimalRabbit, Age: 1, CurrentWeight: 2, TargetWeight: 2.5, ActivityLevel: ActivityHigh, FitnessGoal: GoalWeightGain, DurationWeeks: 10},
			want: Plan{MaintenanceCalories: 200, TotalCalories: 230, ProteinGrams: 14, FatGrams: 6, CarbGrams: 29, MealsPerDay: 2, WaterMl: 110, WeeklyDelta: 0.05},
		},
		{
			name: "weekly delta rounds to two decimals",
			form: Form{AnimalType: AnimalDog, Age: 3, CurrentWeight: 20, TargetWeight: 19, ActivityLevel: ActivityModerate, FitnessGoal: GoalMaintenance, DurationWeeks: 3},
			want: Plan{MaintenanceCalories: 927, TotalCalories: 927, ProteinGrams: 70, FatGrams: 31, CarbGrams: 93, MealsPerDay: 2, WaterMl: 1100, WeeklyDelta: -0.33},
		},
	}

	ignore := cmp.FilterPath(func(p cmp.Path) bool {
		switch p.String() {
		case "Foods", "Nutrients", "Summary":
			return true
		}
		return false
	}, cmp.Ignore())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DerivePlan(tt.form)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got, ignore); diff != "" {
				t.Fatalf("plan mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDerivePlan_SummaryKeepsFractionalAge(t *testing.T) {
	f := Form{AnimalType: AnimalCat, Age: 2.5, CurrentWeight: 4, ActivityLevel: ActivityLow, FitnessGoal: GoalMaintenance, DurationWeeks: 4}
	plan, err := DerivePlan(f)
	require.NoError(t, err)
	assert.Equal(t,
		"For a 2.5-year-old cat with a maintenance goal, the plan targets 238 kcal/day across 3 feedings with a 18g protein focus.",
		plan.Summary)
}

func TestDerivePlan_DogAndBirdShareMealCount(t *testing.T) {
	for _, a := range []AnimalType{AnimalDog, AnimalBird, AnimalRabbit} {
		f := DefaultForm()
		f.AnimalType = a
		plan, err := DerivePlan(f)
		require.NoError(t, err)
		assert.Equal(t, 2, plan.MealsPerDay, string(a))
	}
}

func TestDerivePlan_ZeroWeeksCountsAsOne(t *testing.T) {
	f := DefaultForm()
	f.DurationWeeks = 0

	plan, err := DerivePlan(f)
	require.NoError(t, err)
	assert.Equal(t, -2.0, plan.WeeklyDelta)
}

func TestDerivePlan_UnknownAnimalFallsBackToDog(t *testing.T) {
	f := DefaultForm()
	f.AnimalType = "Hamster"

	plan, err := DerivePlan(f)
	require.NoError(t, err)
	assert.Equal(t, DefaultTables().Foods(AnimalDog), plan.Foods)
	assert.Equal(t, 2, plan.MealsPerDay)
}

func TestDerivePlan_UnknownCategory(t *testing.T) {
	f := DefaultForm()
	f.ActivityLevel = "extreme"
	_, err := DerivePlan(f)
	assert.True(t, errors.Is(err, ErrUnknownCategory))

	f = DefaultForm()
	f.FitnessGoal = "Bulking"
	_, err = DerivePlan(f)
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestDerivePlan_FoodsAreCopies(t *testing.T) {
	a, err := DerivePlan(DefaultForm())
	require.NoError(t, err)
	a.Foods[0].Name = "mutated"
	a.Nutrients[0] = "mutated"

	b, err := DerivePlan(DefaultForm())
	require.NoError(t, err)
	assert.Equal(t, "Lean chicken breast", b.Foods[0].Name)
	assert.Equal(t, "Omega-3", b.Nutrients[0])
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 3, roundHalfUp(2.5))
	assert.Equal(t, -2, roundHalfUp(-2.5))
	assert.Equal(t, 0, roundHalfUp(0.49))
	assert.Equal(t, 927, roundHalfUp(926.83))
}

func TestLoadTables_RejectsIncompleteDocument(t *testing.T) {
	doc := []byte(`
activity_factors: {low: 1.2, moderate: 1.4}
goal_adjustments: {Weight Loss: 0.85, Weight Gain: 1.15, Maintenance: 1, Muscle Building: 1.1}
meals_per_day: {default: 2}
water_ml_per_kg: 55
fallback_animal: Dog
animals:
  Dog: {foods: [], nutrients: []}
`)
	_, err := LoadTables(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "high")
}

func TestDefaultTables_EveryAnimalHasCatalog(t *testing.T) {
	tb := DefaultTables()
	for _, a := range []AnimalType{AnimalDog, AnimalCat, AnimalRabbit, AnimalBird} {
		c, ok := tb.Animals[a]
		require.True(t, ok, string(a))
		assert.Len(t, c.Foods, 6, string(a))
		assert.Len(t, c.Nutrients, 4, string(a))
	}
}

func TestFormValidate(t *testing.T) {
	ok := DefaultForm()
	require.NoError(t, ok.Validate())

	tests := []struct {
		name string
		mut  func(*Form)
		want error
	}{
		{"unknown animal", func(f *Form) { f.AnimalType = "Hamster" }, ErrUnknownCategory},
		{"unknown activity", func(f *Form) { f.ActivityLevel = "extreme" }, ErrUnknownCategory},
		{"unknown goal", func(f *Form) { f.FitnessGoal = "Bulking" }, ErrUnknownCategory},
		{"age too low", func(f *Form) { f.Age = 0.4 }, ErrInvalidRange},
		{"weight too low", func(f *Form) { f.CurrentWeight = 0.1 }, ErrInvalidRange},
		{"negative target", func(f *Form) { f.TargetWeight = -1 }, ErrInvalidRange},
		{"zero weeks", func(f *Form) { f.DurationWeeks = 0 }, ErrInvalidRange},
		{"too many weeks", func(f *Form) { f.DurationWeeks = 53 }, ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultForm()
			tt.mut(&f)
			assert.ErrorIs(t, f.Validate(), tt.want)
		})
	}
}
