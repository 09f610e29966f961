package personalization

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/adaptix/internal/learner"
)

// maxRecommendations caps how many recommendations one call returns.
const maxRecommendations = 8

// RecType groups recommendations by the surface they act on.
type RecType string

const (
	RecDifficulty RecType = "difficulty"
	RecTiming     RecType = "timing"
	RecContent    RecType = "content"
	RecUI         RecType = "ui"
	RecMotivation RecType = "motivation"
)

// Recommendation is one actionable suggestion. Ids are stable slugs so a
// dismissal persists across regenerations.
type Recommendation struct {
	ID             string           `json:"id"`
	Type           RecType          `json:"type"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Action         string           `json:"action"`
	ExpectedImpact string           `json:"expectedImpact"`
	Priority       learner.Priority `json:"priority"`
	TargetAgeGroup learner.AgeGroup `json:"targetAgeGroup"`
	Complexity     string           `json:"implementationComplexity"`
}

// GenerateRecommendations builds the current suggestion list for the
// bracket from the learner's metrics: at most eight, ordered by priority
// with dismissed ids filtered out.
func (o *Orchestrator) GenerateRecommendations(ctx context.Context, group learner.AgeGroup) []Recommendation {
	metrics := o.Metrics(ctx)
	recs := buildRecommendations(metrics, group)

	if o.dismissed != nil {
		dismissed := o.dismissed.Dismissed(ctx)
		kept := recs[:0]
		for _, r := range recs {
			if !dismissed[r.ID] {
				kept = append(kept, r)
			}
		}
		recs = kept
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() > recs[j].Priority.Rank()
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func buildRecommendations(m PersonalizedMetrics, group learner.AgeGroup) []Recommendation {
	var recs []Recommendation

	if m.BurnoutRisk > burnoutEngagementThreshold {
		recs = append(recs, Recommendation{
			ID:             "timing-take-breaks",
			Type:           RecTiming,
			Title:          "Time for a breather",
			Description:    "Recent sessions show signs of fatigue: accuracy and focus are slipping.",
			Action:         "Play shorter sessions with a day of rest in between.",
			ExpectedImpact: "Recovered focus and accuracy",
			Priority:       learner.PriorityHigh,
			TargetAgeGroup: group,
			Complexity:     "low",
		})
	}
	if m.EngagementLevel < lowEngagementThreshold {
		recs = append(recs, Recommendation{
			ID:             "motivation-fresh-start",
			Type:           RecMotivation,
			Title:          "Shake things up",
			Description:    "Play has been infrequent lately.",
			Action:         "Try a new category or a quick five-problem session to rebuild the habit.",
			ExpectedImpact: "Higher engagement",
			Priority:       learner.PriorityHigh,
			TargetAgeGroup: group,
			Complexity:     "low",
		})
	}
	if len(m.WeakestCategories) > 0 {
		recs = append(recs, Recommendation{
			ID:             "content-practice-" + m.WeakestCategories[0],
			Type:           RecContent,
			Title:          fmt.Sprintf("Focus on %s", m.WeakestCategories[0]),
			Description:    fmt.Sprintf("Accuracy lags in %s.", strings.Join(m.WeakestCategories, ", ")),
			Action:         fmt.Sprintf("Run a targeted practice session on %s.", m.WeakestCategories[0]),
			ExpectedImpact: "Closed skill gaps",
			Priority:       learner.PriorityHigh,
			TargetAgeGroup: group,
			Complexity:     "medium",
		})
	}
	if m.AverageSessionLength > longSessionMinutes {
		recs = append(recs, Recommendation{
			ID:             "timing-shorter-sessions",
			Type:           RecTiming,
			Title:          "Shorter sessions work better",
			Description:    fmt.Sprintf("Sessions average %.0f minutes; focus tends to fade past %d.", m.AverageSessionLength, int(longSessionMinutes)),
			Action:         "Aim for 15 to 20 minute sessions.",
			ExpectedImpact: "Steadier focus throughout a session",
			Priority:       learner.PriorityMedium,
			TargetAgeGroup: group,
			Complexity:     "low",
		})
	}
	if len(m.StrongestCategories) > 0 {
		recs = append(recs, Recommendation{
			ID:             "difficulty-step-up",
			Type:           RecDifficulty,
			Title:          "Ready for a challenge",
			Description:    fmt.Sprintf("Strong results in %s suggest room to stretch.", strings.Join(m.StrongestCategories, ", ")),
			Action:         fmt.Sprintf("Try %s problems at the next difficulty tier.", m.StrongestCategories[0]),
			ExpectedImpact: "Faster progression",
			Priority:       learner.PriorityMedium,
			TargetAgeGroup: group,
			Complexity:     "low",
		})
	}
	recs = append(recs, Recommendation{
		ID:             "timing-best-" + m.OptimalPlayTime,
		Type:           RecTiming,
		Title:          fmt.Sprintf("You shine in the %s", m.OptimalPlayTime),
		Description:    fmt.Sprintf("Accuracy peaks during %s sessions.", m.OptimalPlayTime),
		Action:         fmt.Sprintf("Schedule practice in the %s when you can.", m.OptimalPlayTime),
		ExpectedImpact: "Better results per session",
		Priority:       learner.PriorityLow,
		TargetAgeGroup: group,
		Complexity:     "low",
	})

	recs = append(recs, bracketRecommendations(group)...)
	return recs
}

// bracketRecommendations are the static per-bracket presentation
// suggestions.
func bracketRecommendations(group learner.AgeGroup) []Recommendation {
	switch group {
	case learner.AgeKids:
		return []Recommendation{{
			ID:             "ui-kids-visual",
			Type:           RecUI,
			Title:          "More pictures, fewer words",
			Description:    "Younger learners stay engaged longer with visual themes.",
			Action:         "Enable the illustrated problem themes.",
			ExpectedImpact: "Longer attention span",
			Priority:       learner.PriorityLow,
			TargetAgeGroup: group,
			Complexity:     "low",
		}}
	case learner.AgeSeniors:
		return []Recommendation{{
			ID:             "ui-seniors-readability",
			Type:           RecUI,
			Title:          "Easier on the eyes",
			Description:    "Larger text and higher contrast reduce strain over longer sessions.",
			Action:         "Increase the text size setting.",
			ExpectedImpact: "More comfortable play",
			Priority:       learner.PriorityLow,
			TargetAgeGroup: group,
			Complexity:     "low",
		}}
	default:
		return nil
	}
}
