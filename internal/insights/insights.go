// Package insights scans session history for notable patterns: category
// strengths and weaknesses, productive times of day, and session-length
// habits. Each emitter is a fixed-confidence rule in the style of a
// rule-based classifier; results are sorted by confidence.
package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/adaptix/internal/learner"
	"github.com/abhisek/adaptix/internal/performance"
)

// Type of an insight.
type Type string

const (
	TypeStrength       Type = "strength"
	TypeWeakness       Type = "weakness"
	TypePattern        Type = "pattern"
	TypeRecommendation Type = "recommendation"
)

const (
	// strengthThreshold is the per-category accuracy above which a
	// category counts as a strength.
	strengthThreshold = 0.8
	// weaknessThreshold is the per-category accuracy below which a
	// category counts as a weakness.
	weaknessThreshold = 0.6

	// patternMinConfidence gates the time-of-day insight; patternMaxConfidence
	// caps what it can claim.
	patternMinConfidence = 0.7
	patternMaxConfidence = 0.9

	// longSessionMinutes triggers the shorter-sessions recommendation.
	longSessionMinutes = 30.0

	strengthConfidence       = 0.9
	weaknessConfidence       = 0.8
	recommendationConfidence = 0.7
)

// Insight is a single observation about the learner's history.
type Insight struct {
	ID               string           `json:"id"`
	Type             Type             `json:"type"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Confidence       float64          `json:"confidence"`
	Priority         learner.Priority `json:"priority"`
	Categories       []string         `json:"categories,omitempty"`
	SuggestedActions []string         `json:"suggestedActions"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// Generator emits insights from session history.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a Generator.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Generate scans the sessions and returns all applicable insights sorted
// by descending confidence. An empty history yields no insights.
func (g *Generator) Generate(sessions []*performance.SessionRecord) []Insight {
	if len(sessions) == 0 {
		return nil
	}

	var out []Insight
	byCategory := CategoryAccuracy(sessions)

	if in, ok := g.strengthInsight(byCategory); ok {
		out = append(out, in)
	}
	if in, ok := g.weaknessInsight(byCategory); ok {
		out = append(out, in)
	}
	if in, ok := g.timeOfDayInsight(sessions); ok {
		out = append(out, in)
	}
	if in, ok := g.sessionLengthInsight(sessions); ok {
		out = append(out, in)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// CategoryAccuracy aggregates solved/total counts per category. A session's
// totals are attributed to every category it touched.
func CategoryAccuracy(sessions []*performance.SessionRecord) map[string]float64 {
	solved := map[string]int{}
	total := map[string]int{}
	for _, s := range sessions {
		for _, c := range s.Categories {
			solved[c] += s.ProblemsSolved
			total[c] += s.TotalProblems
		}
	}
	out := make(map[string]float64, len(total))
	for c, t := range total {
		if t > 0 {
			out[c] = float64(solved[c]) / float64(t)
		}
	}
	return out
}

func (g *Generator) strengthInsight(byCategory map[string]float64) (Insight, bool) {
	strong := categoriesOver(byCategory, strengthThreshold)
	if len(strong) == 0 {
		return Insight{}, false
	}
	return Insight{
		ID:          uuid.NewString(),
		Type:        TypeStrength,
		Title:       "Strong categories",
		Description: fmt.Sprintf("Accuracy above %.0f%% in: %s", strengthThreshold*100, strings.Join(strong, ", ")),
		Confidence:  strengthConfidence,
		Priority:    learner.PriorityMedium,
		Categories:  strong,
		SuggestedActions: []string{
			"Raise difficulty in these categories",
			"Use them as warm-ups before harder material",
		},
		CreatedAt: g.now(),
	}, true
}

func (g *Generator) weaknessInsight(byCategory map[string]float64) (Insight, bool) {
	weak := categoriesUnder(byCategory, weaknessThreshold)
	if len(weak) == 0 {
		return Insight{}, false
	}
	return Insight{
		ID:          uuid.NewString(),
		Type:        TypeWeakness,
		Title:       "Categories needing practice",
		Description: fmt.Sprintf("Accuracy below %.0f%% in: %s", weaknessThreshold*100, strings.Join(weak, ", ")),
		Confidence:  weaknessConfidence,
		Priority:    learner.PriorityHigh,
		Categories:  weak,
		SuggestedActions: []string{
			"Schedule targeted practice in these categories",
			"Lower difficulty until accuracy recovers",
			"Enable hints for these problem types",
		},
		CreatedAt: g.now(),
	}, true
}

// timeOfDayInsight finds the daypart with the best average accuracy.
// Emitted only when its confidence clears the gate.
func (g *Generator) timeOfDayInsight(sessions []*performance.SessionRecord) (Insight, bool) {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, s := range sessions {
		bucket := DaypartOf(s.StartTime)
		sums[bucket] += s.AccuracyRate
		counts[bucket]++
	}

	best, bestAvg := "", -1.0
	for bucket, sum := range sums {
		avg := sum / float64(counts[bucket])
		if avg > bestAvg {
			best, bestAvg = bucket, avg
		}
	}

	confidence := bestAvg
	if confidence > patternMaxConfidence {
		confidence = patternMaxConfidence
	}
	if best == "" || confidence <= patternMinConfidence {
		return Insight{}, false
	}
	return Insight{
		ID:          uuid.NewString(),
		Type:        TypePattern,
		Title:       "Best time of day",
		Description: fmt.Sprintf("Performance peaks in the %s (%.0f%% average accuracy)", best, bestAvg*100),
		Confidence:  confidence,
		Priority:    learner.PriorityLow,
		SuggestedActions: []string{
			fmt.Sprintf("Schedule practice sessions in the %s", best),
		},
		CreatedAt: g.now(),
	}, true
}

func (g *Generator) sessionLengthInsight(sessions []*performance.SessionRecord) (Insight, bool) {
	total := 0.0
	for _, s := range sessions {
		total += s.Duration().Minutes()
	}
	avg := total / float64(len(sessions))
	if avg <= longSessionMinutes {
		return Insight{}, false
	}
	return Insight{
		ID:          uuid.NewString(),
		Type:        TypeRecommendation,
		Title:       "Sessions run long",
		Description: fmt.Sprintf("Average session length is %.0f minutes; shorter sessions tend to hold focus better", avg),
		Confidence:  recommendationConfidence,
		Priority:    learner.PriorityMedium,
		SuggestedActions: []string{
			"Aim for sessions of 20-25 minutes",
			"Take a break when focus drops",
		},
		CreatedAt: g.now(),
	}, true
}

// DaypartOf buckets a session start into morning, afternoon, or evening.
func DaypartOf(start time.Time) string {
	h := start.Hour()
	switch {
	case h >= 5 && h < 12:
		return "morning"
	case h >= 12 && h < 18:
		return "afternoon"
	default:
		return "evening"
	}
}

func categoriesOver(byCategory map[string]float64, threshold float64) []string {
	var out []string
	for c, acc := range byCategory {
		if acc > threshold {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

func categoriesUnder(byCategory map[string]float64, threshold float64) []string {
	var out []string
	for c, acc := range byCategory {
		if acc < threshold {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
