package planner

// The plan document is the exact JSON shape the Wahoo cloud expects for a
// structured run. Field names and the header constants must not change.

// PlanDocument is the uploadable workout description.
type PlanDocument struct {
	Header    DocumentHeader     `json:"header"`
	Intervals []DocumentInterval `json:"intervals"`
}

// DocumentHeader carries plan metadata and the athlete's threshold speed.
type DocumentHeader struct {
	Name                string  `json:"name"`
	Version             string  `json:"version"`
	Description         string  `json:"description"`
	WorkoutTypeFamily   int     `json:"workout_type_family"`
	WorkoutTypeLocation int     `json:"workout_type_location"`
	ThresholdSpeed      float64 `json:"threshold_speed"`
}

// DocumentInterval is one flattened interval with its pace target band.
type DocumentInterval struct {
	Name             string           `json:"name"`
	ExitTriggerType  string           `json:"exit_trigger_type"`
	ExitTriggerValue int              `json:"exit_trigger_value"`
	IntensityType    IntensityType    `json:"intensity_type"`
	Targets          []DocumentTarget `json:"targets"`
}

// DocumentTarget is a low/high band expressed against a target type.
type DocumentTarget struct {
	Type string  `json:"type"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

const (
	documentVersion     = "1.0.0"
	documentDescription = "Created with Run Planner"
	workoutTypeFamily   = 1 // running
	workoutTypeLocation = 0 // indoor
	exitTriggerTime     = "time"
	targetTypeThreshold = "threshold_speed"
)

// Document serializes the plan into the external document format. The result
// is deterministic for a given plan state.
func (p *Plan) Document() PlanDocument {
	doc := PlanDocument{
		Header: DocumentHeader{
			Name:                p.Name,
			Version:             documentVersion,
			Description:         documentDescription,
			WorkoutTypeFamily:   workoutTypeFamily,
			WorkoutTypeLocation: workoutTypeLocation,
			ThresholdSpeed:      p.ThresholdSpeedMps,
		},
	}
	for _, iv := range p.Flatten() {
		doc.Intervals = append(doc.Intervals, DocumentInterval{
			Name:             iv.Name,
			ExitTriggerType:  exitTriggerTime,
			ExitTriggerValue: iv.DurationSeconds,
			IntensityType:    iv.Intensity,
			Targets: []DocumentTarget{
				{Type: targetTypeThreshold, Low: iv.Target.Low, High: iv.Target.High},
			},
		})
	}
	return doc
}
