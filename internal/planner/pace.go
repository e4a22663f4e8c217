package planner

import (
	"fmt"
	"math"
)

// MetersPerMile is the conversion constant used for every pace calculation.
// All arithmetic stays in float64; nothing is rounded until display.
const MetersPerMile = 1609.34

// PaceToSpeed converts a pace given as minutes and seconds per mile into a
// speed in meters per second.
func PaceToSpeed(minutes, seconds int) (float64, error) {
	if minutes < 0 || seconds < 0 || seconds >= 60 {
		return 0, fmt.Errorf("%w: pace %d:%02d is not a valid min:sec pace", ErrInvalidInput, minutes, seconds)
	}
	total := minutes*60 + seconds
	if total == 0 {
		return 0, fmt.Errorf("%w: pace cannot be zero seconds per mile", ErrInvalidInput)
	}
	return MetersPerMile / float64(total), nil
}

// SpeedToPace converts a threshold speed scaled by fraction back into a
// displayable min:sec per mile pace. Minutes are floored and the remainder is
// rounded to the nearest second (carrying into minutes when it rounds to 60).
func SpeedToPace(speedMps, fraction float64) (minutes, seconds int, err error) {
	target := speedMps * fraction
	if target <= 0 {
		return 0, 0, fmt.Errorf("%w: target speed %.4f m/s is not positive", ErrInvalidInput, target)
	}
	paceSeconds := MetersPerMile / target
	minutes = int(paceSeconds) / 60
	seconds = int(math.Round(paceSeconds - float64(minutes*60)))
	if seconds == 60 {
		minutes++
		seconds = 0
	}
	return minutes, seconds, nil
}

// FormatPace renders a pace as "m:ss/mi" for display.
func FormatPace(minutes, seconds int) string {
	return fmt.Sprintf("%d:%02d/mi", minutes, seconds)
}
