package personalization

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/adaptix/internal/learner"
	"github.com/abhisek/adaptix/internal/performance"
)

// richHistory triggers most recommendation sources: a weak category, a
// strong one, and overlong sessions.
func richHistory() fakeHistory {
	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	var sessions []*performance.SessionRecord
	for i := 0; i < 4; i++ {
		s := session(start.Add(time.Duration(i)*24*time.Hour), 40, 9, 10, "addition")
		sessions = append(sessions, s)
	}
	sessions = append(sessions, session(start.Add(100*time.Hour), 40, 3, 10, "division"))
	return sessions
}

func TestRecommendationsSortedByPriority(t *testing.T) {
	o := newTestOrchestrator(t, richHistory(), nil)

	recs := o.GenerateRecommendations(context.Background(), learner.AgeAdults)
	if len(recs) == 0 {
		t.Fatal("expected recommendations")
	}
	if len(recs) > maxRecommendations {
		t.Fatalf("got %d recommendations, cap is %d", len(recs), maxRecommendations)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Priority.Rank() > recs[i-1].Priority.Rank() {
			t.Errorf("priority order broken at %d: %q after %q", i, recs[i].Priority, recs[i-1].Priority)
		}
	}
}

func TestRecommendationsIncludeWeakCategory(t *testing.T) {
	o := newTestOrchestrator(t, richHistory(), nil)

	recs := o.GenerateRecommendations(context.Background(), learner.AgeAdults)
	found := false
	for _, r := range recs {
		if r.ID == "content-practice-division" {
			found = true
			if r.Priority != learner.PriorityHigh {
				t.Errorf("weak-category priority = %q, want high", r.Priority)
			}
			if r.Type != RecContent {
				t.Errorf("weak-category type = %q, want content", r.Type)
			}
		}
	}
	if !found {
		t.Error("no content recommendation for the weak category")
	}
}

func TestRecommendationsFilterDismissed(t *testing.T) {
	dismissed := fakeDismissed{"content-practice-division": true}
	o := newTestOrchestrator(t, richHistory(), dismissed)

	recs := o.GenerateRecommendations(context.Background(), learner.AgeAdults)
	for _, r := range recs {
		if r.ID == "content-practice-division" {
			t.Error("dismissed recommendation resurfaced")
		}
	}
}

func TestRecommendationsBracketSpecific(t *testing.T) {
	o := newTestOrchestrator(t, richHistory(), nil)
	ctx := context.Background()

	hasID := func(recs []Recommendation, id string) bool {
		for _, r := range recs {
			if r.ID == id {
				return true
			}
		}
		return false
	}

	if !hasID(o.GenerateRecommendations(ctx, learner.AgeKids), "ui-kids-visual") {
		t.Error("kids bracket missing its visual suggestion")
	}
	if !hasID(o.GenerateRecommendations(ctx, learner.AgeSeniors), "ui-seniors-readability") {
		t.Error("seniors bracket missing its readability suggestion")
	}
	if hasID(o.GenerateRecommendations(ctx, learner.AgeAdults), "ui-kids-visual") {
		t.Error("adults bracket got the kids suggestion")
	}
}

func TestRecommendationsTargetGroupStamped(t *testing.T) {
	o := newTestOrchestrator(t, richHistory(), nil)

	for _, r := range o.GenerateRecommendations(context.Background(), learner.AgeTeens) {
		if r.TargetAgeGroup != learner.AgeTeens {
			t.Errorf("recommendation %q targets %q, want teens", r.ID, r.TargetAgeGroup)
		}
	}
}
