package planner

import (
	"fmt"
	"strings"
)

// TargetSpec is a resolved pace target: a center fraction of threshold speed
// plus the low/high band sent to the plan document. Low <= Center <= High.
type TargetSpec struct {
	CenterFraction float64 `json:"center_fraction"`
	Low            float64 `json:"low"`
	High           float64 `json:"high"`
	Label          string  `json:"label"`
}

// customPercentBand is the half-width of the band around a custom percent
// target (a custom 100% target becomes 0.98-1.02).
const customPercentBand = 0.02

// TargetFromZone resolves a target from a zone definition: the band is the
// zone itself and the center is its midpoint.
func TargetFromZone(zone ZoneDefinition) TargetSpec {
	return TargetSpec{
		CenterFraction: (zone.Low + zone.High) / 2,
		Low:            zone.Low,
		High:           zone.High,
		Label:          zone.Name,
	}
}

// TargetFromPercent resolves a target from a whole custom percentage of
// threshold speed in [MinCustomPercent, MaxCustomPercent].
func TargetFromPercent(percent int) (TargetSpec, error) {
	if percent < MinCustomPercent || percent > MaxCustomPercent {
		return TargetSpec{}, fmt.Errorf("%w: custom percent %d outside %d-%d",
			ErrInvalidInput, percent, MinCustomPercent, MaxCustomPercent)
	}
	center := float64(percent) / 100
	return TargetSpec{
		CenterFraction: center,
		Low:            center - customPercentBand,
		High:           center + customPercentBand,
		Label:          fmt.Sprintf("%d%%", percent),
	}, nil
}

// classifyThreshold is the center fraction below which an interval counts as
// recovery rather than active effort.
const classifyThreshold = 0.69

// ClassifyIntensity assigns an intensity type from the target center and the
// interval name. Anything at or above the threshold is "active" no matter how
// hard; below it is recovery, unless the name marks it as a warm up. Cooldown
// is never assigned here, only picked explicitly.
func ClassifyIntensity(centerFraction float64, name string) IntensityType {
	if centerFraction < classifyThreshold {
		if strings.Contains(name, "Warm") {
			return IntensityWarmup
		}
		return IntensityRecover
	}
	return IntensityActive
}
