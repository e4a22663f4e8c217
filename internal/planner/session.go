package planner

import (
	"fmt"
	"log"
	"sync"

	"github.com/lowaak/run-planner/run-planner-app/internal/events"
)

// PlanSummary is the snapshot published to subscribers after every
// successful plan mutation.
type PlanSummary struct {
	Name                 string
	ThresholdSpeedMps    float64
	BlockCount           int
	IntervalCount        int
	TotalDurationSeconds int
}

// Session owns the in-progress plan and the cached cloud access token for
// one run of the application. All mutation goes through its methods; the
// shell that created the session subscribes to plan changes to re-render.
type Session struct {
	mu          sync.RWMutex
	plan        *Plan
	accessToken string
	planEvent   *events.Notifier[PlanSummary]
	logger      *log.Logger
}

// NewSession creates an empty session.
func NewSession(logger *log.Logger) *Session {
	if logger == nil {
		panic("Session: logger cannot be nil")
	}
	return &Session{
		planEvent: events.NewNotifier[PlanSummary](true),
		logger:    logger,
	}
}

// SubscribeToPlanChanges registers a callback invoked with a summary after
// every successful plan mutation. Returns a deregistration function.
func (s *Session) SubscribeToPlanChanges(fn func(PlanSummary)) func() {
	return s.planEvent.Subscribe(fn)
}

// StartPlan replaces any current plan with a fresh empty one.
func (s *Session) StartPlan(name string, thresholdSpeedMps float64) error {
	plan, err := NewPlan(name, thresholdSpeedMps)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.plan = plan
	summary := s.buildSummary()
	s.mu.Unlock()

	s.logger.Printf("Session: started plan %q (threshold %.4f m/s)", name, thresholdSpeedMps)
	s.planEvent.Publish(summary)
	return nil
}

// LoadPlan replaces the current plan with an already-built one, for example
// one loaded from the workout library or instantiated from a template.
func (s *Session) LoadPlan(plan *Plan) error {
	if plan == nil {
		return fmt.Errorf("%w: no plan to load", ErrInvalidInput)
	}
	if plan.ThresholdSpeedMps <= 0 {
		return fmt.Errorf("%w: plan %q has threshold %.4f m/s", ErrInvalidInput, plan.Name, plan.ThresholdSpeedMps)
	}
	s.mu.Lock()
	s.plan = plan
	summary := s.buildSummary()
	s.mu.Unlock()

	s.logger.Printf("Session: loaded plan %q (%d blocks)", plan.Name, len(plan.Blocks))
	s.planEvent.Publish(summary)
	return nil
}

// AddSingleStep appends the interval to the plan as a one-repeat block.
func (s *Session) AddSingleStep(interval Interval) error {
	return s.mutate("add step", func(p *Plan) error { return p.AddSingleStep(interval) })
}

// AddRepeatSet appends a work/rest repeat block to the plan.
func (s *Session) AddRepeatSet(work, rest Interval, repeatCount int) error {
	return s.mutate("add repeat set", func(p *Plan) error { return p.AddRepeatSet(work, rest, repeatCount) })
}

// MoveBlock swaps a block with its neighbor.
func (s *Session) MoveBlock(index, direction int) error {
	return s.mutate("move block", func(p *Plan) error { return p.MoveBlock(index, direction) })
}

// DeleteBlock removes a block.
func (s *Session) DeleteBlock(index int) error {
	return s.mutate("delete block", func(p *Plan) error { return p.DeleteBlock(index) })
}

// Plan returns a deep copy of the current plan, or nil if none was started.
// The copy keeps callers from mutating session state behind the lock.
func (s *Session) Plan() *Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.plan == nil {
		return nil
	}
	clone := &Plan{
		Name:              s.plan.Name,
		ThresholdSpeedMps: s.plan.ThresholdSpeedMps,
		Blocks:            make([]Block, len(s.plan.Blocks)),
	}
	for i, block := range s.plan.Blocks {
		clone.Blocks[i] = Block{
			RepeatCount: block.RepeatCount,
			Intervals:   append([]Interval(nil), block.Intervals...),
		}
	}
	return clone
}

// Document serializes the current plan into the uploadable document.
func (s *Session) Document() (PlanDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.plan == nil {
		return PlanDocument{}, fmt.Errorf("%w: no plan started", ErrInvalidInput)
	}
	return s.plan.Document(), nil
}

// TotalDurationSeconds returns the current plan's total duration, 0 if none.
func (s *Session) TotalDurationSeconds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.plan == nil {
		return 0
	}
	return s.plan.TotalDurationSeconds()
}

// SetAccessToken caches the cloud access token for this session.
func (s *Session) SetAccessToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

// AccessToken returns the cached cloud access token, empty if not logged in.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// mutate runs op against the plan under lock and publishes a summary on
// success. A failed op publishes nothing and leaves the plan untouched.
func (s *Session) mutate(what string, op func(*Plan) error) error {
	s.mu.Lock()
	if s.plan == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: no plan started", ErrInvalidInput)
	}
	if err := op(s.plan); err != nil {
		s.mu.Unlock()
		s.logger.Printf("Session: %s failed: %v", what, err)
		return err
	}
	summary := s.buildSummary()
	s.mu.Unlock()

	// Publish after releasing the lock so subscribers can call back in.
	s.planEvent.Publish(summary)
	return nil
}

// buildSummary computes the published snapshot. Callers hold mu.
func (s *Session) buildSummary() PlanSummary {
	return PlanSummary{
		Name:                 s.plan.Name,
		ThresholdSpeedMps:    s.plan.ThresholdSpeedMps,
		BlockCount:           len(s.plan.Blocks),
		IntervalCount:        len(s.plan.Flatten()),
		TotalDurationSeconds: s.plan.TotalDurationSeconds(),
	}
}
