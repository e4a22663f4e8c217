package planner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument(t *testing.T) {
	threshold := testThreshold(t)
	plan, err := NewPlan("Tuesday Tempo", threshold)
	require.NoError(t, err)

	zone, ok := GetZoneByNumber(4)
	require.True(t, ok)
	require.NoError(t, plan.AddSingleStep(NewInterval("Warm Up", 600, mustPercent(t, 60))))
	require.NoError(t, plan.AddSingleStep(NewInterval("Threshold", 300, TargetFromZone(zone))))

	doc := plan.Document()

	assert.Equal(t, "Tuesday Tempo", doc.Header.Name)
	assert.Equal(t, "1.0.0", doc.Header.Version)
	assert.Equal(t, 1, doc.Header.WorkoutTypeFamily)
	assert.Equal(t, 0, doc.Header.WorkoutTypeLocation)
	assert.Equal(t, threshold, doc.Header.ThresholdSpeed)

	require.Len(t, doc.Intervals, 2)
	warm := doc.Intervals[0]
	assert.Equal(t, "Warm Up", warm.Name)
	assert.Equal(t, "time", warm.ExitTriggerType)
	assert.Equal(t, 600, warm.ExitTriggerValue)
	assert.Equal(t, IntensityWarmup, warm.IntensityType)
	require.Len(t, warm.Targets, 1)
	assert.Equal(t, "threshold_speed", warm.Targets[0].Type)
	assert.InDelta(t, 0.58, warm.Targets[0].Low, 1e-12)
	assert.InDelta(t, 0.62, warm.Targets[0].High, 1e-12)

	work := doc.Intervals[1]
	assert.Equal(t, IntensityActive, work.IntensityType)
	assert.Equal(t, 0.91, work.Targets[0].Low)
	assert.Equal(t, 1.05, work.Targets[0].High)
}

func TestDocument_JSONKeys(t *testing.T) {
	// The cloud service depends on these exact key names.
	plan, err := NewPlan("Keys", testThreshold(t))
	require.NoError(t, err)
	require.NoError(t, plan.AddSingleStep(NewInterval("Steady", 60, mustPercent(t, 100))))

	raw, err := json.Marshal(plan.Document())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	header, ok := decoded["header"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"name", "version", "description", "workout_type_family", "workout_type_location", "threshold_speed"} {
		assert.Contains(t, header, key)
	}

	intervals, ok := decoded["intervals"].([]any)
	require.True(t, ok)
	require.Len(t, intervals, 1)
	interval := intervals[0].(map[string]any)
	for _, key := range []string{"name", "exit_trigger_type", "exit_trigger_value", "intensity_type", "targets"} {
		assert.Contains(t, interval, key)
	}
	target := interval["targets"].([]any)[0].(map[string]any)
	for _, key := range []string{"type", "low", "high"} {
		assert.Contains(t, target, key)
	}
	assert.Equal(t, "active", interval["intensity_type"])
}

func TestDocument_Deterministic(t *testing.T) {
	plan, err := NewPlan("Same", testThreshold(t))
	require.NoError(t, err)
	require.NoError(t, plan.AddRepeatSet(NewInterval("W", 30, mustPercent(t, 105)), NewInterval("R", 90, mustPercent(t, 65)), 3))

	first, err := json.Marshal(plan.Document())
	require.NoError(t, err)
	second, err := json.Marshal(plan.Document())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func mustPercent(t *testing.T, p int) TargetSpec {
	t.Helper()
	target, err := TargetFromPercent(p)
	require.NoError(t, err)
	return target
}
