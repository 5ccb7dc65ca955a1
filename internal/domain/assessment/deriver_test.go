package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive_ScoreAlwaysClamped(t *testing.T) {
	all := SymptomObservations()
	extra := append(append([]string{}, all...), all...) // sin tope en el multiplicador

	for e := MinMetric; e <= MaxMetric; e++ {
		for a := MinMetric; a <= MaxMetric; a++ {
			for m := MinMetric; m <= MaxMetric; m++ {
				for _, obs := range [][]string{nil, all[:1], all, extra} {
					r := Derive(Metrics{Energy: e, Appetite: a, Mood: m}, obs)
					require.GreaterOrEqual(t, r.Score, MinScore)
					require.LessOrEqual(t, r.Score, MaxScore)
					require.Equal(t, LevelFor(r.Score), r.Level)
				}
			}
		}
	}
}

func TestDerive_BestCase_IsLowAtFloor(t *testing.T) {
	r := Derive(Metrics{Energy: 10, Appetite: 10, Mood: 10}, nil)

	assert.Equal(t, 8, r.Score)
	assert.Equal(t, LevelLow, r.Level)
	assert.Equal(t, summaries[LevelLow], r.Summary)
	assert.Equal(t, defaultObservations, r.Observations)
}

func TestDerive_WorstMetricsWithSixObservations(t *testing.T) {
	// 27 + 27 + 18 + 12 = 84
	r := Derive(Metrics{Energy: 1, Appetite: 1, Mood: 1}, SymptomObservations())

	assert.Equal(t, 84, r.Score)
	assert.Equal(t, LevelHigh, r.Level)
	assert.Equal(t, SymptomObservations()[:4], r.Observations)
}

func TestDerive_ClampsAboveCeiling(t *testing.T) {
	obs := make([]string, 10)
	for i := range obs {
		obs[i] = "x"
	}
	// 72 + 20*2 = 112 => 96
	r := Derive(Metrics{Energy: 1, Appetite: 1, Mood: 1}, append(obs, obs...))
	assert.Equal(t, 96, r.Score)
	assert.Equal(t, LevelHigh, r.Level)
}

func TestDerive_LevelBoundaries(t *testing.T) {
	// default 6/6/6 => 12+12+8 = 32
	r := Derive(DefaultMetrics(), nil)
	assert.Equal(t, 32, r.Score)
	assert.Equal(t, LevelLow, r.Level)

	r = Derive(DefaultMetrics(), []string{"Loose stool"})
	assert.Equal(t, 34, r.Score)
	assert.Equal(t, LevelModerate, r.Level)
	assert.Equal(t, []string{"Loose stool"}, r.Observations)

	// 3/3/3 => 21+21+14 = 56
	r = Derive(Metrics{Energy: 3, Appetite: 3, Mood: 3}, SymptomObservations()[:5])
	assert.Equal(t, 66, r.Score)
	assert.Equal(t, LevelModerate, r.Level)

	r = Derive(Metrics{Energy: 3, Appetite: 3, Mood: 3}, SymptomObservations())
	assert.Equal(t, 68, r.Score)
	assert.Equal(t, LevelHigh, r.Level)
}

func TestDerive_ConstantsDoNotAlias(t *testing.T) {
	r := Derive(DefaultMetrics(), nil)
	r.Actions[0] = "mutated"
	r.Vets[0].Name = "mutated"
	r.Observations[0] = "mutated"

	again := Derive(DefaultMetrics(), nil)
	assert.Len(t, again.Actions, 3)
	assert.NotEqual(t, "mutated", again.Actions[0])
	assert.NotEqual(t, "mutated", again.Vets[0].Name)
	assert.NotEqual(t, "mutated", again.Observations[0])
}

func TestMetrics_Validate(t *testing.T) {
	assert.NoError(t, DefaultMetrics().Validate())
	assert.NoError(t, Metrics{Energy: 1, Appetite: 10, Mood: 5}.Validate())
	assert.ErrorIs(t, Metrics{Energy: 0, Appetite: 5, Mood: 5}.Validate(), ErrInvalidRange)
	assert.ErrorIs(t, Metrics{Energy: 5, Appetite: 11, Mood: 5}.Validate(), ErrInvalidRange)
}

func TestInsight(t *testing.T) {
	assert.Contains(t, Insight(Metrics{Energy: 1, Appetite: 3, Mood: 6}), "Significant") // 9+7+4 = 20
	assert.Contains(t, Insight(Metrics{Energy: 3, Appetite: 5, Mood: 9}), "Moderate")    // 7+5+1 = 13
	assert.Contains(t, Insight(DefaultMetrics()), "Mild")                                // 12
}

func TestCatalog(t *testing.T) {
	assert.Equal(t, 4, StatusCount())
	assert.Equal(t, statusMessages[0], StatusMessage(-1))
	assert.Equal(t, statusMessages[3], StatusMessage(3))
	assert.True(t, IsKnownObservation("Loose stool"))
	assert.False(t, IsKnownObservation("loose stool"))

	tips := PhotoTips()
	tips[0] = "mutated"
	assert.NotEqual(t, "mutated", PhotoTips()[0])
}
