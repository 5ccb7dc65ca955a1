package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"pet-health-assessment/internal/domain/nutrition"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type planFlags struct {
	animal   string
	age      float64
	weight   float64
	target   float64
	activity string
	goal     string
	weeks    int
	output   string
}

func newPlanCmd() *cobra.Command {
	def := nutrition.DefaultForm()
	f := planFlags{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Derive a nutrition plan locally",
		Long: `Derive a daily nutrition plan from the pet's profile.

Output formats:
  - text (default)
  - json
  - yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := nutrition.Form{
				AnimalType:    nutrition.AnimalType(f.animal),
				Age:           f.age,
				CurrentWeight: f.weight,
				TargetWeight:  f.target,
				ActivityLevel: nutrition.ActivityLevel(f.activity),
				FitnessGoal:   nutrition.Goal(f.goal),
				DurationWeeks: f.weeks,
			}
			if err := form.Validate(); err != nil {
				return fmt.Errorf("invalid plan input: %w", err)
			}
			plan, err := nutrition.DerivePlan(form)
			if err != nil {
				return err
			}
			return writePlan(cmd.OutOrStdout(), f.output, plan)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.animal, "animal", string(def.AnimalType), "animal type: Dog, Cat, Rabbit, Bird")
	fl.Float64Var(&f.age, "age", def.Age, "age in years (>= 0.5)")
	fl.Float64Var(&f.weight, "weight", def.CurrentWeight, "current weight in kg (>= 0.5)")
	fl.Float64Var(&f.target, "target", def.TargetWeight, "target weight in kg (0 = no target)")
	fl.StringVar(&f.activity, "activity", string(def.ActivityLevel), "activity level: low, moderate, high")
	fl.StringVar(&f.goal, "goal", string(def.FitnessGoal), `goal: "Weight Loss", "Weight Gain", "Maintenance", "Muscle Building"`)
	fl.IntVar(&f.weeks, "weeks", def.DurationWeeks, "plan duration in weeks [1,52]")
	fl.StringVarP(&f.output, "output", "o", "text", "output format: text, json, yaml")
	return cmd
}

func writePlan(w io.Writer, format string, p nutrition.Plan) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(planYAML(p)); err != nil {
			return err
		}
		return enc.Close()
	case "", "text":
		return writePlanText(w, p)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// planYAML mapea a snake_case; Plan solo tiene tags json.
func planYAML(p nutrition.Plan) map[string]any {
	foods := make([]string, 0, len(p.Foods))
	for _, f := range p.Foods {
		foods = append(foods, f.Name)
	}
	return map[string]any{
		"maintenance_calories": p.MaintenanceCalories,
		"total_calories":       p.TotalCalories,
		"protein_grams":        p.ProteinGrams,
		"fat_grams":            p.FatGrams,
		"carb_grams":           p.CarbGrams,
		"meals_per_day":        p.MealsPerDay,
		"water_ml":             p.WaterMl,
		"weekly_delta":         p.WeeklyDelta,
		"foods":                foods,
		"nutrients":            p.Nutrients,
		"summary":              p.Summary,
	}
}

func writePlanText(w io.Writer, p nutrition.Plan) error {
	var b strings.Builder
	fmt.Fprintln(&b, p.Summary)
	fmt.Fprintln(&b, strings.Repeat("─", 40))
	fmt.Fprintf(&b, "  %-14s %d kcal (maintenance %d)\n", "Calories:", p.TotalCalories, p.MaintenanceCalories)
	fmt.Fprintf(&b, "  %-14s P %dg / F %dg / C %dg\n", "Macros:", p.ProteinGrams, p.FatGrams, p.CarbGrams)
	fmt.Fprintf(&b, "  %-14s %d per day\n", "Feedings:", p.MealsPerDay)
	fmt.Fprintf(&b, "  %-14s %d ml\n", "Water:", p.WaterMl)
	fmt.Fprintf(&b, "  %-14s %+.2f kg/week\n", "Weight delta:", p.WeeklyDelta)
	fmt.Fprintln(&b, "  Foods:")
	for _, f := range p.Foods {
		fmt.Fprintf(&b, "    - %s (%s)\n", f.Name, f.Icon)
	}
	fmt.Fprintf(&b, "  Nutrients: %s\n", strings.Join(p.Nutrients, ", "))
	_, err := io.WriteString(w, b.String())
	return err
}
