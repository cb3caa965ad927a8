package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormStats(t *testing.T) {
	tests := []struct {
		name           string
		visits         int64
		submissions    int64
		submissionRate float64
		bounceRate     float64
	}{
		{"no visits", 0, 0, 0, 100},
		{"quarter converted", 200, 50, 25, 75},
		{"all converted", 10, 10, 100, 0},
		{"nothing converted", 40, 0, 0, 100},
		{"submissions above visits are not clamped", 10, 15, 150, -50},
		{"submissions without visits", 0, 7, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := NewFormStats(tt.visits, tt.submissions)

			assert.Equal(t, tt.visits, stats.Visits)
			assert.Equal(t, tt.submissions, stats.Submissions)
			assert.Equal(t, tt.submissionRate, stats.SubmissionRate)
			assert.Equal(t, tt.bounceRate, stats.BounceRate)
		})
	}
}

func TestNewFormStatsRatesSumToHundred(t *testing.T) {
	for visits := int64(0); visits <= 50; visits++ {
		for submissions := int64(0); submissions <= visits+5; submissions++ {
			stats := NewFormStats(visits, submissions)
			assert.InDelta(t, 100, stats.SubmissionRate+stats.BounceRate, 1e-9,
				"visits=%d submissions=%d", visits, submissions)
		}
	}
}

func TestFormStatsJSONShape(t *testing.T) {
	raw, err := json.Marshal(NewFormStats(200, 50))
	require.NoError(t, err)

	assert.JSONEq(t, `{"visits":200,"submissions":50,"submissionRate":25,"bounceRate":75}`, string(raw))
}
