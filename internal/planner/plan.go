package planner

import "fmt"

// Interval is a single named, timed segment with a resolved pace target.
// Intervals are plain values; copies never alias each other.
type Interval struct {
	Name            string        `json:"name"`
	DurationSeconds int           `json:"duration_seconds"`
	Intensity       IntensityType `json:"intensity_type"`
	Target          TargetSpec    `json:"target"`
}

// Block is a repeatable group of intervals. A single ad-hoc step is a block
// with RepeatCount 1; a repeat set (work/rest pairs) has RepeatCount >= 2.
type Block struct {
	RepeatCount int        `json:"repeat_count"`
	Intervals   []Interval `json:"intervals"`
}

// DurationSeconds returns one repetition's duration times the repeat count.
func (b Block) DurationSeconds() int {
	var once int
	for _, iv := range b.Intervals {
		once += iv.DurationSeconds
	}
	return b.RepeatCount * once
}

// Plan is the in-progress workout: an ordered sequence of blocks against a
// threshold speed. The plan exclusively owns its blocks and each block its
// intervals; mutation happens only through the methods below, and a failed
// operation leaves the plan unchanged.
type Plan struct {
	Name              string  `json:"name"`
	ThresholdSpeedMps float64 `json:"threshold_speed_mps"`
	Blocks            []Block `json:"blocks"`
}

// NewPlan creates an empty plan for the given threshold speed.
func NewPlan(name string, thresholdSpeedMps float64) (*Plan, error) {
	if thresholdSpeedMps <= 0 {
		return nil, fmt.Errorf("%w: threshold speed %.4f m/s is not positive", ErrInvalidInput, thresholdSpeedMps)
	}
	return &Plan{Name: name, ThresholdSpeedMps: thresholdSpeedMps}, nil
}

// NewInterval builds an interval, classifying its intensity from the target
// center and the interval name.
func NewInterval(name string, durationSeconds int, target TargetSpec) Interval {
	return Interval{
		Name:            name,
		DurationSeconds: durationSeconds,
		Intensity:       ClassifyIntensity(target.CenterFraction, name),
		Target:          target,
	}
}

// AddSingleStep appends the interval as its own block with repeat count 1.
func (p *Plan) AddSingleStep(interval Interval) error {
	if interval.DurationSeconds <= 0 {
		return fmt.Errorf("%w: step %q has duration %d s", ErrInvalidInput, interval.Name, interval.DurationSeconds)
	}
	p.Blocks = append(p.Blocks, Block{RepeatCount: 1, Intervals: []Interval{interval}})
	return nil
}

// AddRepeatSet appends a work/rest repeat block. Either side may be absent
// (zero duration) and is dropped; dropping both is an error. repeatCount must
// be at least 2 - a one-rep set is just a single step.
func (p *Plan) AddRepeatSet(work, rest Interval, repeatCount int) error {
	if repeatCount < 2 {
		return fmt.Errorf("%w: repeat count %d, want at least 2", ErrInvalidInput, repeatCount)
	}
	if work.DurationSeconds < 0 || rest.DurationSeconds < 0 {
		return fmt.Errorf("%w: repeat set has a negative duration", ErrInvalidInput)
	}
	var intervals []Interval
	if work.DurationSeconds > 0 {
		intervals = append(intervals, work)
	}
	if rest.DurationSeconds > 0 {
		intervals = append(intervals, rest)
	}
	if len(intervals) == 0 {
		return fmt.Errorf("%w: repeat set needs a work or rest interval", ErrInvalidInput)
	}
	p.Blocks = append(p.Blocks, Block{RepeatCount: repeatCount, Intervals: intervals})
	return nil
}

// MoveBlock swaps the block at index with its neighbor in the given
// direction (-1 up, +1 down). Moves that would leave the plan are a no-op,
// not an error.
func (p *Plan) MoveBlock(index, direction int) error {
	if direction != -1 && direction != 1 {
		return fmt.Errorf("%w: move direction %d, want -1 or +1", ErrInvalidInput, direction)
	}
	if index < 0 || index >= len(p.Blocks) {
		return nil
	}
	neighbor := index + direction
	if neighbor < 0 || neighbor >= len(p.Blocks) {
		return nil
	}
	p.Blocks[index], p.Blocks[neighbor] = p.Blocks[neighbor], p.Blocks[index]
	return nil
}

// DeleteBlock removes the block at index.
func (p *Plan) DeleteBlock(index int) error {
	if index < 0 || index >= len(p.Blocks) {
		return fmt.Errorf("%w: block %d of %d", ErrIndexOutOfRange, index, len(p.Blocks))
	}
	p.Blocks = append(p.Blocks[:index], p.Blocks[index+1:]...)
	return nil
}

// Flatten expands the blocks into the literal ordered interval sequence the
// plan document carries: each block contributes RepeatCount copies of its
// intervals, in order. The copies are independent values; mutating one
// expansion never shows up in another.
func (p *Plan) Flatten() []Interval {
	var out []Interval
	for _, block := range p.Blocks {
		for rep := 0; rep < block.RepeatCount; rep++ {
			out = append(out, block.Intervals...)
		}
	}
	return out
}

// TotalDurationSeconds sums every block's repeated duration.
func (p *Plan) TotalDurationSeconds() int {
	var total int
	for _, block := range p.Blocks {
		total += block.DurationSeconds()
	}
	return total
}

// Instantiate resolves the template's zone and percent steps against the
// given threshold speed and returns a ready plan.
func (t WorkoutTemplate) Instantiate(thresholdSpeedMps float64) (*Plan, error) {
	plan, err := NewPlan(t.Name, thresholdSpeedMps)
	if err != nil {
		return nil, err
	}
	for _, bt := range t.Blocks {
		if bt.Repeat < 1 {
			return nil, fmt.Errorf("%w: workout %q has a block with repeat %d", ErrInvalidInput, t.Name, bt.Repeat)
		}
		block := Block{RepeatCount: bt.Repeat}
		for _, st := range bt.Steps {
			var target TargetSpec
			if st.Zone != 0 {
				zone, ok := GetZoneByNumber(st.Zone)
				if !ok {
					return nil, fmt.Errorf("%w: workout %q step %q references zone %d", ErrInvalidInput, t.Name, st.Name, st.Zone)
				}
				target = TargetFromZone(zone)
			} else {
				target, err = TargetFromPercent(st.Percent)
				if err != nil {
					return nil, fmt.Errorf("workout %q step %q: %w", t.Name, st.Name, err)
				}
			}
			if st.DurationSeconds <= 0 {
				return nil, fmt.Errorf("%w: workout %q step %q has duration %d s", ErrInvalidInput, t.Name, st.Name, st.DurationSeconds)
			}
			block.Intervals = append(block.Intervals, NewInterval(st.Name, st.DurationSeconds, target))
		}
		plan.Blocks = append(plan.Blocks, block)
	}
	return plan, nil
}
