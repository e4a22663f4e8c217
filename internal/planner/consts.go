package planner

// IntensityType labels an interval for the plan document. The wire values
// match what the Wahoo plan format expects.
type IntensityType string

const (
	IntensityWarmup   IntensityType = "wu"
	IntensityActive   IntensityType = "active"
	IntensityRecover  IntensityType = "recover"
	IntensityCooldown IntensityType = "cd" // never auto-assigned, selectable only
)

// ZoneDefinition is one named band of threshold speed. Low and High are
// fractions of the athlete's threshold speed, [Low, High).
type ZoneDefinition struct {
	Name string
	Low  float64
	High float64
}

// AllZones is the fixed, ordered pace zone table. Zones are non-overlapping
// by convention; the table is never mutated at runtime.
var AllZones = []ZoneDefinition{
	{Name: "Zone 1 - Recovery", Low: 0.50, High: 0.67},
	{Name: "Zone 2 - Endurance", Low: 0.67, High: 0.83},
	{Name: "Zone 3 - Tempo", Low: 0.83, High: 0.91},
	{Name: "Zone 4 - Threshold", Low: 0.91, High: 1.05},
	{Name: "Zone 5 - VO2 Max", Low: 1.05, High: 1.20},
	{Name: "Zone 6 - Anaerobic", Low: 1.20, High: 1.50},
}

// GetZoneByName returns the zone with the given name.
func GetZoneByName(name string) (ZoneDefinition, bool) {
	for _, z := range AllZones {
		if z.Name == name {
			return z, true
		}
	}
	return ZoneDefinition{}, false
}

// GetZoneByNumber returns the 1-based zone (e.g. 4 for "Zone 4 - Threshold").
func GetZoneByNumber(n int) (ZoneDefinition, bool) {
	if n < 1 || n > len(AllZones) {
		return ZoneDefinition{}, false
	}
	return AllZones[n-1], true
}

// Custom percent targets are whole percentages of threshold speed within
// [MinCustomPercent, MaxCustomPercent]; anything outside is not representable.
const (
	MinCustomPercent = 50
	MaxCustomPercent = 150
)

// StepTemplate describes one step of a builtin workout. Exactly one of Zone
// (1-based zone number) or Percent (custom percent of threshold) is set.
type StepTemplate struct {
	Name            string
	DurationSeconds int
	Zone            int
	Percent         int
}

// BlockTemplate is a repeatable group of step templates.
type BlockTemplate struct {
	Repeat int
	Steps  []StepTemplate
}

// WorkoutTemplate is a builtin workout expressed against the zone table, so
// it can be instantiated for any threshold pace.
type WorkoutTemplate struct {
	Name   string
	Blocks []BlockTemplate
}

// AllWorkoutTemplates is the builtin run workout catalogue.
var AllWorkoutTemplates = []WorkoutTemplate{
	{
		Name: "30 Min Endurance",
		Blocks: []BlockTemplate{
			{Repeat: 1, Steps: []StepTemplate{{Name: "Warm Up", DurationSeconds: 300, Zone: 1}}},
			{Repeat: 1, Steps: []StepTemplate{{Name: "Endurance", DurationSeconds: 1200, Zone: 2}}},
			{Repeat: 1, Steps: []StepTemplate{{Name: "Easy Finish", DurationSeconds: 300, Zone: 1}}},
		},
	},
	{
		Name: "Threshold 3x10",
		Blocks: []BlockTemplate{
			{Repeat: 1, Steps: []StepTemplate{{Name: "Warm Up", DurationSeconds: 600, Zone: 1}}},
			{Repeat: 3, Steps: []StepTemplate{
				{Name: "Threshold", DurationSeconds: 600, Zone: 4},
				{Name: "Float", DurationSeconds: 120, Zone: 1},
			}},
			{Repeat: 1, Steps: []StepTemplate{{Name: "Easy Finish", DurationSeconds: 300, Zone: 1}}},
		},
	},
	{
		Name: "VO2 Max 5x3",
		Blocks: []BlockTemplate{
			{Repeat: 1, Steps: []StepTemplate{{Name: "Warm Up", DurationSeconds: 600, Zone: 1}}},
			{Repeat: 5, Steps: []StepTemplate{
				{Name: "Hard", DurationSeconds: 180, Zone: 5},
				{Name: "Jog", DurationSeconds: 180, Zone: 1},
			}},
			{Repeat: 1, Steps: []StepTemplate{{Name: "Easy Finish", DurationSeconds: 300, Zone: 1}}},
		},
	},
	{
		Name: "Strides 8x30s",
		Blocks: []BlockTemplate{
			{Repeat: 1, Steps: []StepTemplate{{Name: "Warm Up", DurationSeconds: 600, Zone: 1}}},
			{Repeat: 8, Steps: []StepTemplate{
				{Name: "Stride", DurationSeconds: 30, Percent: 110},
				{Name: "Walk Back", DurationSeconds: 90, Percent: 55},
			}},
		},
	},
	{
		Name: "Easy 40",
		Blocks: []BlockTemplate{
			{Repeat: 1, Steps: []StepTemplate{{Name: "Easy Run", DurationSeconds: 2400, Zone: 2}}},
		},
	},
}

// GetWorkoutTemplateByName returns the builtin workout with the given name.
func GetWorkoutTemplateByName(name string) (WorkoutTemplate, bool) {
	for _, t := range AllWorkoutTemplates {
		if t.Name == name {
			return t, true
		}
	}
	return WorkoutTemplate{}, false
}
