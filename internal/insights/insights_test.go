package insights

import (
	"testing"
	"time"

	"github.com/abhisek/adaptix/internal/learner"
	"github.com/abhisek/adaptix/internal/performance"
)

func session(category string, solved, total int, start time.Time, minutes int) *performance.SessionRecord {
	return &performance.SessionRecord{
		Categories:     []string{category},
		ProblemsSolved: solved,
		TotalProblems:  total,
		AccuracyRate:   float64(solved) / float64(total),
		StartTime:      start,
		EndTime:        start.Add(time.Duration(minutes) * time.Minute),
	}
}

var noon = time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC)

func TestGenerate_EmptyHistory(t *testing.T) {
	g := NewGenerator()
	if got := g.Generate(nil); len(got) != 0 {
		t.Errorf("Generate(nil) = %v, want none", got)
	}
}

func TestStrengthInsight(t *testing.T) {
	g := NewGenerator()
	sessions := []*performance.SessionRecord{
		session("multiplication", 9, 10, noon, 15),
		session("multiplication", 8, 10, noon, 15),
	}
	got := g.Generate(sessions)

	var strength *Insight
	for i := range got {
		if got[i].Type == TypeStrength {
			strength = &got[i]
		}
	}
	if strength == nil {
		t.Fatal("no strength insight for 85% category accuracy")
	}
	if strength.Confidence != 0.9 {
		t.Errorf("confidence = %f, want 0.9", strength.Confidence)
	}
	if len(strength.Categories) != 1 || strength.Categories[0] != "multiplication" {
		t.Errorf("categories = %v, want [multiplication]", strength.Categories)
	}
}

func TestWeaknessInsight(t *testing.T) {
	g := NewGenerator()
	sessions := []*performance.SessionRecord{
		session("division", 2, 10, noon, 15),
		session("division", 3, 10, noon, 15),
	}
	got := g.Generate(sessions)

	var weakness *Insight
	for i := range got {
		if got[i].Type == TypeWeakness {
			weakness = &got[i]
		}
	}
	if weakness == nil {
		t.Fatal("no weakness insight for 25% category accuracy")
	}
	if weakness.Confidence != 0.8 {
		t.Errorf("confidence = %f, want 0.8", weakness.Confidence)
	}
	if weakness.Priority != learner.PriorityHigh {
		t.Errorf("priority = %s, want high", weakness.Priority)
	}
	if len(weakness.SuggestedActions) == 0 {
		t.Error("weakness insight without suggested actions")
	}
}

func TestTimeOfDayInsight_GatedByConfidence(t *testing.T) {
	g := NewGenerator()
	morning := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// Mediocre morning accuracy (0.65) stays under the 0.7 gate.
	low := []*performance.SessionRecord{
		session("addition", 65, 100, morning, 15),
		session("addition", 65, 100, morning, 15),
	}
	for _, in := range g.Generate(low) {
		if in.Type == TypePattern {
			t.Fatalf("pattern insight emitted below confidence gate: %+v", in)
		}
	}

	// Strong mornings clear the gate and cap at 0.9.
	high := []*performance.SessionRecord{
		session("addition", 98, 100, morning, 15),
		session("addition", 97, 100, morning, 15),
	}
	var pattern *Insight
	for _, in := range g.Generate(high) {
		if in.Type == TypePattern {
			p := in
			pattern = &p
		}
	}
	if pattern == nil {
		t.Fatal("no pattern insight for strong mornings")
	}
	if pattern.Confidence > 0.9 {
		t.Errorf("confidence = %f, want capped at 0.9", pattern.Confidence)
	}
}

func TestSessionLengthInsight(t *testing.T) {
	g := NewGenerator()
	long := []*performance.SessionRecord{
		session("addition", 7, 10, noon, 50),
		session("addition", 6, 10, noon, 40),
	}
	var rec *Insight
	for _, in := range g.Generate(long) {
		if in.Type == TypeRecommendation {
			r := in
			rec = &r
		}
	}
	if rec == nil {
		t.Fatal("no recommendation for 45-minute average sessions")
	}
	if rec.Confidence != 0.7 {
		t.Errorf("confidence = %f, want 0.7", rec.Confidence)
	}
}

func TestGenerate_SortedByConfidence(t *testing.T) {
	g := NewGenerator()
	sessions := []*performance.SessionRecord{
		session("multiplication", 9, 10, noon, 50),
		session("division", 2, 10, noon, 40),
	}
	got := g.Generate(sessions)
	if len(got) < 2 {
		t.Fatalf("want multiple insights, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Confidence > got[i-1].Confidence {
			t.Errorf("insights not sorted by confidence: %f before %f",
				got[i-1].Confidence, got[i].Confidence)
		}
	}
}

func TestDaypartOf(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{6, "morning"}, {11, "morning"},
		{12, "afternoon"}, {17, "afternoon"},
		{19, "evening"}, {2, "evening"},
	}
	for _, tc := range cases {
		start := time.Date(2026, 3, 2, tc.hour, 0, 0, 0, time.UTC)
		if got := DaypartOf(start); got != tc.want {
			t.Errorf("DaypartOf(hour %d) = %s, want %s", tc.hour, got, tc.want)
		}
	}
}
