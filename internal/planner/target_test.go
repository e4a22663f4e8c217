package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetFromZone(t *testing.T) {
	for _, zone := range AllZones {
		target := TargetFromZone(zone)
		assert.Equal(t, zone.Low, target.Low)
		assert.Equal(t, zone.High, target.High)
		assert.InDelta(t, (zone.Low+zone.High)/2, target.CenterFraction, 1e-12)
		assert.LessOrEqual(t, target.Low, target.CenterFraction)
		assert.LessOrEqual(t, target.CenterFraction, target.High)
		assert.Equal(t, zone.Name, target.Label)
	}
}

func TestZoneTable(t *testing.T) {
	// Zone 4 is the threshold band the plan examples are written against.
	zone, ok := GetZoneByNumber(4)
	require.True(t, ok)
	assert.Equal(t, 0.91, zone.Low)
	assert.Equal(t, 1.05, zone.High)

	byName, ok := GetZoneByName(zone.Name)
	require.True(t, ok)
	assert.Equal(t, zone, byName)

	_, ok = GetZoneByNumber(0)
	assert.False(t, ok)
	_, ok = GetZoneByNumber(len(AllZones) + 1)
	assert.False(t, ok)
	_, ok = GetZoneByName("Zone 9 - Imaginary")
	assert.False(t, ok)

	// Ordered and positive.
	for _, z := range AllZones {
		assert.Greater(t, z.Low, 0.0)
		assert.Greater(t, z.High, z.Low)
	}
}

func TestTargetFromPercent(t *testing.T) {
	target, err := TargetFromPercent(105)
	require.NoError(t, err)
	assert.InDelta(t, 1.05, target.CenterFraction, 1e-12)
	assert.InDelta(t, 1.03, target.Low, 1e-12)
	assert.InDelta(t, 1.07, target.High, 1e-12)
	assert.Equal(t, "105%", target.Label)

	target, err = TargetFromPercent(65)
	require.NoError(t, err)
	assert.InDelta(t, 0.63, target.Low, 1e-12)
	assert.InDelta(t, 0.67, target.High, 1e-12)
	assert.Equal(t, "65%", target.Label)

	// Bounds are inclusive.
	for _, p := range []int{MinCustomPercent, MaxCustomPercent} {
		_, err := TargetFromPercent(p)
		assert.NoError(t, err)
	}
	for _, p := range []int{MinCustomPercent - 1, MaxCustomPercent + 1, 0, -10} {
		_, err := TargetFromPercent(p)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestClassifyIntensity(t *testing.T) {
	assert.Equal(t, IntensityRecover, ClassifyIntensity(0.55, "Jog"))
	assert.Equal(t, IntensityWarmup, ClassifyIntensity(0.55, "Warm Up"))
	assert.Equal(t, IntensityActive, ClassifyIntensity(0.69, "Steady"))
	assert.Equal(t, IntensityActive, ClassifyIntensity(1.20, "Sprint"))

	// The warmup override only applies below the threshold, and the match is
	// case-sensitive.
	assert.Equal(t, IntensityActive, ClassifyIntensity(0.95, "Warm Up"))
	assert.Equal(t, IntensityRecover, ClassifyIntensity(0.55, "warm up"))

	// Cooldown is never assigned automatically.
	assert.Equal(t, IntensityRecover, ClassifyIntensity(0.55, "Cool Down"))
}
