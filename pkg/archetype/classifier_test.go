package archetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRules(t *testing.T) {
	c := NewRuleClassifier()

	tests := []struct {
		name     string
		metrics  Metrics
		expected string
	}{
		{
			name:     "high energy high valence",
			metrics:  Metrics{AvgEnergy: 0.7, AvgValence: 0.6},
			expected: "sunlit_groove_pilot",
		},
		{
			name:     "low energy broad taste",
			metrics:  Metrics{AvgEnergy: 0.4, AvgValence: 0.4, GenreDiversity: 0.7},
			expected: "dreamy_rhythm_alchemist",
		},
		{
			name:     "mainstream leaning",
			metrics:  Metrics{AvgEnergy: 0.5, AvgValence: 0.4, AvgPopularityNorm: 0.8},
			expected: "chart_savvy_conductor",
		},
		{
			name:     "fallback",
			metrics:  Metrics{AvgEnergy: 0.5, AvgValence: 0.4, AvgPopularityNorm: 0.5},
			expected: "midnight_side_streets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.metrics)
			assert.Equal(t, tt.expected, result.Id)
			assert.NotEmpty(t, result.Title)
			assert.NotEmpty(t, result.ShortDescription)
			assert.Contains(t, result.LongDescription, result.Title)
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := NewRuleClassifier()
	m := Metrics{
		AvgEnergy:         0.7,
		AvgValence:        0.6,
		AvgPopularityNorm: 0.5,
		GenreDiversity:    0.4,
		TopGenres:         []string{"pop", "rock"},
	}

	first := c.Classify(m)
	second := c.Classify(m)
	assert.Equal(t, first, second)
	assert.Contains(t, first.LongDescription, "pop, rock")
}

func TestEnergyBoundaryFallsThrough(t *testing.T) {
	c := NewRuleClassifier()

	// Just under both thresholds lands on the fallback
	result := c.Classify(Metrics{AvgEnergy: 0.64, AvgValence: 0.54, GenreDiversity: 0.59, AvgPopularityNorm: 0.69})
	assert.Equal(t, "midnight_side_streets", result.Id)
}
