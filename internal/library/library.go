// Package library stores workout documents as JSON files so a plan can be
// rebuilt in a later session.
package library

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lowaak/run-planner/run-planner-app/internal/planner"
)

// WorkoutDocument is the persisted shape: the block sequence plus the
// threshold pace it was built against, as the athlete entered it.
type WorkoutDocument struct {
	Name             string          `json:"name"`
	Blocks           []planner.Block `json:"blocks"`
	ThresholdMinutes int             `json:"threshold_minutes"`
	ThresholdSeconds int             `json:"threshold_seconds"`
	SavedAt          time.Time       `json:"saved_at"`
}

// Library reads and writes workout documents under a single directory.
type Library struct {
	dir    string
	logger *log.Logger
	now    func() time.Time
}

// NewLibrary creates a library rooted at dir. The directory is created on
// first save.
func NewLibrary(dir string, logger *log.Logger) *Library {
	if logger == nil {
		panic("Library: logger cannot be nil")
	}
	return &Library{dir: dir, logger: logger, now: time.Now}
}

// Save writes the plan to the library, overwriting a workout of the same
// name. The threshold speed is stored as the pace the athlete entered.
func (l *Library) Save(plan *planner.Plan) error {
	if plan == nil || plan.Name == "" {
		return fmt.Errorf("%w: nothing to save", planner.ErrInvalidInput)
	}
	minutes, seconds, err := planner.SpeedToPace(plan.ThresholdSpeedMps, 1.0)
	if err != nil {
		return err
	}
	doc := WorkoutDocument{
		Name:             plan.Name,
		Blocks:           plan.Blocks,
		ThresholdMinutes: minutes,
		ThresholdSeconds: seconds,
		SavedAt:          l.now().UTC(),
	}
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("create library dir: %w", err)
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal workout %q: %w", plan.Name, err)
	}
	path := l.pathFor(plan.Name)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write workout %q: %w", plan.Name, err)
	}
	l.logger.Printf("Library: saved %q to %s", plan.Name, path)
	return nil
}

// Load reads a saved workout and rebuilds the plan against its stored
// threshold pace.
func (l *Library) Load(name string) (*planner.Plan, error) {
	raw, err := os.ReadFile(l.pathFor(name))
	if err != nil {
		return nil, fmt.Errorf("read workout %q: %w", name, err)
	}
	return PlanFromJSON(raw)
}

// List returns the saved workout documents, sorted by name.
func (l *Library) List() ([]WorkoutDocument, error) {
	entries, err := os.ReadDir(l.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read library dir: %w", err)
	}
	var docs []WorkoutDocument
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(l.dir, entry.Name()))
		if err != nil {
			l.logger.Printf("Library: skipping %s: %v", entry.Name(), err)
			continue
		}
		var doc WorkoutDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			l.logger.Printf("Library: skipping %s: %v", entry.Name(), err)
			continue
		}
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

// Delete removes a saved workout.
func (l *Library) Delete(name string) error {
	path := l.pathFor(name)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete workout %q: %w", name, err)
	}
	l.logger.Printf("Library: deleted %q", name)
	return nil
}

// PlanFromJSON decodes a workout document and rebuilds its plan.
func PlanFromJSON(raw []byte) (*planner.Plan, error) {
	var doc WorkoutDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse workout document: %w", err)
	}
	return doc.Plan()
}

// Plan rebuilds the plan described by the document.
func (d WorkoutDocument) Plan() (*planner.Plan, error) {
	threshold, err := planner.PaceToSpeed(d.ThresholdMinutes, d.ThresholdSeconds)
	if err != nil {
		return nil, fmt.Errorf("workout %q threshold pace: %w", d.Name, err)
	}
	plan, err := planner.NewPlan(d.Name, threshold)
	if err != nil {
		return nil, err
	}
	plan.Blocks = append([]planner.Block(nil), d.Blocks...)
	return plan, nil
}

func (l *Library) pathFor(name string) string {
	return filepath.Join(l.dir, sanitizeFileName(name)+".json")
}

// sanitizeFileName maps a workout name to a safe file name.
func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "workout"
	}
	return b.String()
}
