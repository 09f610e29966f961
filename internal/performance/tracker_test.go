package performance

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/abhisek/adaptix/internal/learner"
)

const epsilon = 0.0001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func response(correct bool, seconds float64) Response {
	return Response{
		Correct:      correct,
		ResponseTime: seconds,
		Difficulty:   learner.DifficultyEasy,
		Category:     "arithmetic",
		Operation:    learner.OpAddition,
	}
}

func TestStartSession_AlreadyActive(t *testing.T) {
	tr := NewTracker("u1", nil)
	if _, err := tr.StartSession(); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	_, err := tr.StartSession()
	if !errors.Is(err, ErrSessionAlreadyActive) {
		t.Errorf("second StartSession err = %v, want ErrSessionAlreadyActive", err)
	}
}

func TestRecordResponse_NoActiveSession(t *testing.T) {
	tr := NewTracker("u1", nil)
	if err := tr.RecordResponse(response(true, 5)); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("RecordResponse err = %v, want ErrNoActiveSession", err)
	}
	if _, err := tr.EndSession(context.Background()); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("EndSession err = %v, want ErrNoActiveSession", err)
	}
}

func TestStartSession_ZeroedCounters(t *testing.T) {
	tr := NewTracker("u1", nil)
	rec, err := tr.StartSession()
	if err != nil {
		t.Fatal(err)
	}
	if rec.TotalProblems != 0 || rec.ProblemsSolved != 0 {
		t.Errorf("counters not zeroed: %+v", rec)
	}
	if !math.IsInf(rec.FastestResponse, 1) {
		t.Errorf("FastestResponse = %v, want +Inf", rec.FastestResponse)
	}
}

// Five consecutive correct answers at 5s each: accuracy 1.0, and the
// min/avg/max collapse to the same value.
func TestFiveCorrectAnswers(t *testing.T) {
	tr := NewTracker("u1", nil)
	rec, _ := tr.StartSession()
	for i := 0; i < 5; i++ {
		if err := tr.RecordResponse(response(true, 5)); err != nil {
			t.Fatal(err)
		}
	}
	if !almostEqual(rec.AccuracyRate, 1.0) {
		t.Errorf("AccuracyRate = %f, want 1.0", rec.AccuracyRate)
	}
	if !almostEqual(rec.FastestResponse, 5) || !almostEqual(rec.SlowestResponse, 5) {
		t.Errorf("min/max = %f/%f, want 5/5", rec.FastestResponse, rec.SlowestResponse)
	}
	if !almostEqual(rec.AverageResponseTime, 5) {
		t.Errorf("AverageResponseTime = %f, want 5", rec.AverageResponseTime)
	}
	if !almostEqual(rec.FocusScore, 1) {
		t.Errorf("FocusScore = %f, want 1 (no variance)", rec.FocusScore)
	}
}

func TestResponseTimeOrdering(t *testing.T) {
	tr := NewTracker("u1", nil)
	rec, _ := tr.StartSession()
	times := []float64{7.5, 2.1, 14.0, 3.3, 9.9, 4.2}
	for i, secs := range times {
		if err := tr.RecordResponse(response(i%2 == 0, secs)); err != nil {
			t.Fatal(err)
		}
		if rec.FastestResponse > rec.AverageResponseTime || rec.AverageResponseTime > rec.SlowestResponse {
			t.Fatalf("ordering violated after %d responses: min=%f avg=%f max=%f",
				i+1, rec.FastestResponse, rec.AverageResponseTime, rec.SlowestResponse)
		}
		if rec.AccuracyRate < 0 || rec.AccuracyRate > 1 {
			t.Fatalf("AccuracyRate out of range: %f", rec.AccuracyRate)
		}
	}
}

func TestAccuracyIncrementalMean(t *testing.T) {
	tr := NewTracker("u1", nil)
	rec, _ := tr.StartSession()
	for _, c := range []bool{true, true, false, true} {
		tr.RecordResponse(response(c, 6))
	}
	if !almostEqual(rec.AccuracyRate, 0.75) {
		t.Errorf("AccuracyRate = %f, want 0.75", rec.AccuracyRate)
	}
	if rec.ProblemsSolved != 3 || rec.TotalProblems != 4 {
		t.Errorf("solved/total = %d/%d, want 3/4", rec.ProblemsSolved, rec.TotalProblems)
	}
}

func TestMistakePatternUpsert(t *testing.T) {
	tr := NewTracker("u1", nil)
	rec, _ := tr.StartSession()

	wrong := response(false, 10)
	tr.RecordResponse(wrong)
	if len(rec.MistakePatterns) != 1 {
		t.Fatalf("patterns = %d, want 1", len(rec.MistakePatterns))
	}
	first := rec.MistakePatterns[0]
	if first.Frequency != 1 || first.Trend != "new" {
		t.Errorf("first occurrence: %+v", first)
	}

	wrong.ResponseTime = 20
	tr.RecordResponse(wrong)
	if len(rec.MistakePatterns) != 1 {
		t.Fatalf("repeat created a new pattern, want update in place")
	}
	updated := rec.MistakePatterns[0]
	if updated.Frequency != 2 || updated.Trend != "recurring" {
		t.Errorf("updated pattern: %+v", updated)
	}
	if !almostEqual(updated.AverageTime, 15) {
		t.Errorf("AverageTime = %f, want 15 (mean of 10 and 20)", updated.AverageTime)
	}

	// A different operation opens a separate pattern.
	other := wrong
	other.Operation = learner.OpDivision
	tr.RecordResponse(other)
	if len(rec.MistakePatterns) != 2 {
		t.Errorf("patterns = %d, want 2", len(rec.MistakePatterns))
	}
}

func TestDifficultyAndCategorySets(t *testing.T) {
	tr := NewTracker("u1", nil)
	rec, _ := tr.StartSession()

	r := response(true, 5)
	tr.RecordResponse(r)
	tr.RecordResponse(r) // duplicate
	r.Difficulty = learner.DifficultyMedium
	r.Category = "fractions"
	tr.RecordResponse(r)

	if len(rec.DifficultyLevels) != 2 {
		t.Errorf("DifficultyLevels = %v, want 2 entries", rec.DifficultyLevels)
	}
	if len(rec.Categories) != 2 {
		t.Errorf("Categories = %v, want 2 entries", rec.Categories)
	}
}

type captureSaver struct {
	userID string
	rec    *SessionRecord
	err    error
}

func (c *captureSaver) AppendSession(_ context.Context, userID string, rec *SessionRecord) error {
	c.userID = userID
	c.rec = rec
	return c.err
}

func TestEndSession_FinalizesAndHandsOff(t *testing.T) {
	saver := &captureSaver{}
	tr := NewTracker("u1", saver)
	tr.StartSession()
	tr.RecordResponse(response(true, 5))

	rec, err := tr.EndSession(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rec.EndTime.IsZero() {
		t.Error("EndTime not stamped")
	}
	if saver.rec != rec || saver.userID != "u1" {
		t.Error("record not handed to store")
	}
	if tr.Live() != nil {
		t.Error("live slot not cleared")
	}
	// A new session can start immediately after.
	if _, err := tr.StartSession(); err != nil {
		t.Errorf("StartSession after end: %v", err)
	}
}

func TestEndSession_StoreFailureIsNonFatal(t *testing.T) {
	saver := &captureSaver{err: errors.New("disk full")}
	tr := NewTracker("u1", saver)
	tr.StartSession()

	rec, err := tr.EndSession(context.Background())
	if err != nil {
		t.Fatalf("EndSession should not surface store errors, got %v", err)
	}
	if rec == nil {
		t.Fatal("record not returned")
	}
}

func TestLearningVelocity_ImprovingSecondHalf(t *testing.T) {
	tr := NewTracker("u1", nil)
	rec, _ := tr.StartSession()
	// First half wrong, second half right: velocity must be positive.
	for _, c := range []bool{false, false, true, true} {
		tr.RecordResponse(response(c, 5))
	}
	if rec.LearningVelocity <= 0 {
		t.Errorf("LearningVelocity = %f, want > 0", rec.LearningVelocity)
	}

	// overall 0.5, second half 1.0 -> (1.0-0.5)*10 = 5
	if !almostEqual(rec.LearningVelocity, 5) {
		t.Errorf("LearningVelocity = %f, want 5", rec.LearningVelocity)
	}
}

func TestLearningVelocity_TooFewProblems(t *testing.T) {
	tr := NewTracker("u1", nil)
	rec, _ := tr.StartSession()
	tr.RecordResponse(response(false, 5))
	tr.RecordResponse(response(true, 5))
	if rec.LearningVelocity != 0 {
		t.Errorf("LearningVelocity = %f, want 0 below 3 problems", rec.LearningVelocity)
	}
}

func TestFocusScore_Bounds(t *testing.T) {
	tr := NewTracker("u1", nil)
	rec, _ := tr.StartSession()
	// Huge spread should floor at 0, never go negative.
	for _, secs := range []float64{1, 1, 60} {
		tr.RecordResponse(response(true, secs))
	}
	if rec.FocusScore < 0 || rec.FocusScore > 1 {
		t.Errorf("FocusScore = %f, want within [0,1]", rec.FocusScore)
	}
}

func TestConsistencyScore_AllCorrect(t *testing.T) {
	tr := NewTracker("u1", nil)
	rec, _ := tr.StartSession()
	for i := 0; i < 6; i++ {
		tr.RecordResponse(response(true, 5))
	}
	if !almostEqual(rec.ConsistencyScore, 1) {
		t.Errorf("ConsistencyScore = %f, want 1 for a perfect run", rec.ConsistencyScore)
	}
}

func TestSessionDuration(t *testing.T) {
	tr := NewTracker("u1", nil)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return base }
	tr.StartSession()
	tr.now = func() time.Time { return base.Add(12 * time.Minute) }
	rec, _ := tr.EndSession(context.Background())
	if rec.Duration() != 12*time.Minute {
		t.Errorf("Duration = %v, want 12m", rec.Duration())
	}
}
