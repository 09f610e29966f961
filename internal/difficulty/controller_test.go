package difficulty

import (
	"reflect"
	"testing"

	"github.com/abhisek/adaptix/internal/learner"
)

// Five correct answers in a row: success 1.0, streak 5, so the complexity
// rule table must land at 3 or above.
func TestFiveCorrectAnswers(t *testing.T) {
	c := NewController(learner.DifficultyEasy)
	for i := 0; i < 5; i++ {
		c.UpdatePerformance(true, 5, learner.DifficultyEasy)
	}
	if got := c.Streak(); got != 5 {
		t.Errorf("streak = %d, want 5", got)
	}
	m := c.Modifiers()
	if m.ComplexityLevel < 3 {
		t.Errorf("complexity = %d, want >= 3 for success 1.0 and streak 5", m.ComplexityLevel)
	}
	if m.RangeMultiplier != 1.5 {
		t.Errorf("rangeMultiplier = %f, want 1.5", m.RangeMultiplier)
	}
	if m.HintAvailability {
		t.Error("hints should be off for a strong run")
	}
	if !m.TimeBonus {
		t.Error("time bonus should be on: fast and accurate")
	}
}

// Three wrong answers in a row: streak resets and hints come back.
func TestThreeWrongAnswers(t *testing.T) {
	c := NewController(learner.DifficultyMedium)
	for i := 0; i < 3; i++ {
		c.UpdatePerformance(false, 20, learner.DifficultyMedium)
	}
	if got := c.Streak(); got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
	m := c.Modifiers()
	if !m.HintAvailability {
		t.Error("hints must be available when success rate < 0.6")
	}
	if m.RangeMultiplier != 0.7 {
		t.Errorf("rangeMultiplier = %f, want 0.7 for a failing run", m.RangeMultiplier)
	}
	if m.ComplexityLevel != 0 {
		t.Errorf("complexity = %d, want 0", m.ComplexityLevel)
	}
}

func TestStreakResetOnWrong(t *testing.T) {
	c := NewController(learner.DifficultyEasy)
	c.UpdatePerformance(true, 5, learner.DifficultyEasy)
	c.UpdatePerformance(true, 5, learner.DifficultyEasy)
	c.UpdatePerformance(false, 5, learner.DifficultyEasy)
	if got := c.Streak(); got != 0 {
		t.Errorf("streak = %d, want 0 after a wrong answer", got)
	}
}

func TestNoData_NeutralDefaults(t *testing.T) {
	c := NewController(learner.DifficultyEasy)
	m := c.Modifiers()
	if m.RangeMultiplier != 1.0 {
		t.Errorf("rangeMultiplier = %f, want 1.0 with no data", m.RangeMultiplier)
	}
	// success defaults to 0.5, which is < 0.6.
	if !m.HintAvailability {
		t.Error("hints should be available with no data")
	}
}

func TestLastFiveWindowEvicts(t *testing.T) {
	c := NewController(learner.DifficultyEasy)
	// Five wrong then five correct: the window must only see the correct ones.
	for i := 0; i < 5; i++ {
		c.UpdatePerformance(false, 10, learner.DifficultyEasy)
	}
	for i := 0; i < 5; i++ {
		c.UpdatePerformance(true, 10, learner.DifficultyEasy)
	}
	p := c.Performance()
	if len(p.LastFive) != 5 {
		t.Fatalf("window length = %d, want 5", len(p.LastFive))
	}
	for i, v := range p.LastFive {
		if !v {
			t.Errorf("window[%d] = false, want all true after eviction", i)
		}
	}
}

func TestModifiersIdempotent(t *testing.T) {
	c := NewController(learner.DifficultyMedium)
	c.UpdatePerformance(true, 8, learner.DifficultyMedium)
	c.UpdatePerformance(false, 12, learner.DifficultyMedium)
	first := c.Modifiers()
	second := c.Modifiers()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Modifiers not idempotent: %+v vs %+v", first, second)
	}
}

// Complexity must never decrease as the success rate rises with streak
// held fixed, nor as the streak rises with success held fixed.
func TestComplexityMonotonicity(t *testing.T) {
	complexityFor := func(success float64, streak int) int {
		c := NewController(learner.DifficultyMedium)
		c.perf.TotalAnswers = 100
		c.perf.CorrectAnswers = int(success * 100)
		c.perf.Streak = streak
		return c.Modifiers().ComplexityLevel
	}

	rates := []float64{0.1, 0.35, 0.65, 0.85, 0.95}
	streaks := []int{0, 2, 4, 6, 10}

	for _, streak := range streaks {
		prev := -1
		for _, rate := range rates {
			got := complexityFor(rate, streak)
			if got < prev {
				t.Errorf("complexity(%f, %d) = %d dropped below %d", rate, streak, got, prev)
			}
			prev = got
		}
	}
	for _, rate := range rates {
		prev := -1
		for _, streak := range streaks {
			got := complexityFor(rate, streak)
			if got < prev {
				t.Errorf("complexity(%f, %d) = %d dropped below %d", rate, streak, got, prev)
			}
			prev = got
		}
	}
}

func TestAverageTimeIncrementalMean(t *testing.T) {
	c := NewController(learner.DifficultyEasy)
	c.UpdatePerformance(true, 10, learner.DifficultyEasy)
	c.UpdatePerformance(true, 20, learner.DifficultyEasy)
	p := c.Performance()
	if p.AverageTime < 14.99 || p.AverageTime > 15.01 {
		t.Errorf("AverageTime = %f, want 15", p.AverageTime)
	}
}

func TestLevelTitles(t *testing.T) {
	if got := LevelTitle(4); got != "Maestro Matemático" {
		t.Errorf("LevelTitle(4) = %q", got)
	}
	if LevelTitle(-1) != LevelTitle(0) {
		t.Error("negative levels should clamp to the lowest title")
	}
	if LevelTitle(99) != LevelTitle(4) {
		t.Error("overflow levels should clamp to the highest title")
	}
}
