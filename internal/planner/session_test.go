package planner

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(log.New(io.Discard, "", 0))
}

func TestNewSession_NilLoggerPanics(t *testing.T) {
	assert.Panics(t, func() { NewSession(nil) })
}

func TestSession_StartPlanPublishesSummary(t *testing.T) {
	s := testSession(t)

	var summaries []PlanSummary
	unsubscribe := s.SubscribeToPlanChanges(func(ps PlanSummary) { summaries = append(summaries, ps) })
	defer unsubscribe()

	require.NoError(t, s.StartPlan("Morning Run", testThreshold(t)))
	require.Len(t, summaries, 1)
	assert.Equal(t, "Morning Run", summaries[0].Name)
	assert.Equal(t, 0, summaries[0].BlockCount)

	require.NoError(t, s.AddSingleStep(testInterval(t, "Steady", 300, 100)))
	require.Len(t, summaries, 2)
	assert.Equal(t, 1, summaries[1].BlockCount)
	assert.Equal(t, 1, summaries[1].IntervalCount)
	assert.Equal(t, 300, summaries[1].TotalDurationSeconds)
}

func TestSession_StartPlanRejectsBadThreshold(t *testing.T) {
	s := testSession(t)
	assert.ErrorIs(t, s.StartPlan("Bad", 0), ErrInvalidInput)
	assert.Nil(t, s.Plan())
}

func TestSession_MutationsRequireAPlan(t *testing.T) {
	s := testSession(t)
	assert.ErrorIs(t, s.AddSingleStep(testInterval(t, "X", 60, 100)), ErrInvalidInput)
	assert.ErrorIs(t, s.MoveBlock(0, 1), ErrInvalidInput)
	assert.ErrorIs(t, s.DeleteBlock(0), ErrInvalidInput)
	_, err := s.Document()
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, s.TotalDurationSeconds())
}

func TestSession_FailedMutationPublishesNothing(t *testing.T) {
	s := testSession(t)
	require.NoError(t, s.StartPlan("Test", testThreshold(t)))

	var count int
	unsubscribe := s.SubscribeToPlanChanges(func(PlanSummary) { count++ })
	defer unsubscribe()
	count = 0 // ignore the replayed snapshot

	err := s.AddSingleStep(testInterval(t, "Broken", 0, 100))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, count)
	assert.Empty(t, s.Plan().Blocks)
}

func TestSession_PlanReturnsIndependentCopy(t *testing.T) {
	s := testSession(t)
	require.NoError(t, s.StartPlan("Test", testThreshold(t)))
	require.NoError(t, s.AddRepeatSet(testInterval(t, "W", 30, 105), testInterval(t, "R", 90, 65), 3))

	copy1 := s.Plan()
	copy1.Blocks[0].Intervals[0].DurationSeconds = 999
	copy1.Name = "Hijacked"

	copy2 := s.Plan()
	assert.Equal(t, "Test", copy2.Name)
	assert.Equal(t, 30, copy2.Blocks[0].Intervals[0].DurationSeconds)
}

func TestSession_LoadPlan(t *testing.T) {
	s := testSession(t)

	tmpl, ok := GetWorkoutTemplateByName("30 Min Endurance")
	require.True(t, ok)
	plan, err := tmpl.Instantiate(testThreshold(t))
	require.NoError(t, err)

	require.NoError(t, s.LoadPlan(plan))
	assert.Equal(t, plan.TotalDurationSeconds(), s.TotalDurationSeconds())

	assert.ErrorIs(t, s.LoadPlan(nil), ErrInvalidInput)
	assert.ErrorIs(t, s.LoadPlan(&Plan{Name: "Bad"}), ErrInvalidInput)
}

func TestSession_Document(t *testing.T) {
	s := testSession(t)
	require.NoError(t, s.StartPlan("Doc", testThreshold(t)))
	require.NoError(t, s.AddSingleStep(testInterval(t, "Steady", 120, 100)))

	doc, err := s.Document()
	require.NoError(t, err)
	assert.Equal(t, "Doc", doc.Header.Name)
	require.Len(t, doc.Intervals, 1)
	assert.Equal(t, 120, doc.Intervals[0].ExitTriggerValue)
}

func TestSession_AccessToken(t *testing.T) {
	s := testSession(t)
	assert.Empty(t, s.AccessToken())
	s.SetAccessToken("abc123")
	assert.Equal(t, "abc123", s.AccessToken())
}
