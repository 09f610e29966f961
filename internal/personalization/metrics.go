// Package personalization composes the tracking, trend, insight, age, and
// template components into the learner-facing operations: adaptive problem
// generation, session sequencing, personalized metrics, and prioritized
// recommendations.
package personalization

import (
	"sort"

	"github.com/abhisek/adaptix/internal/insights"
	"github.com/abhisek/adaptix/internal/learner"
	"github.com/abhisek/adaptix/internal/performance"
	"github.com/abhisek/adaptix/internal/trends"
)

const (
	// metricsWindow bounds how many recent sessions feed the metrics.
	metricsWindow = 20

	// categoryListMax caps the strongest/weakest category lists.
	categoryListMax = 3

	// strongAccuracy and weakAccuracy bound which categories count as
	// strengths and weaknesses at all.
	strongAccuracy = 0.8
	weakAccuracy   = 0.6

	longSessionMinutes = 30.0
)

// PersonalizedMetrics is the learner profile snapshot. It is recomputed
// from the session window on every request, never mutated incrementally.
type PersonalizedMetrics struct {
	OptimalPlayTime      string             `json:"optimalPlayTime"`
	AverageSessionLength float64            `json:"averageSessionLength"` // minutes
	PreferredDifficulty  learner.Difficulty `json:"preferredDifficulty"`
	StrongestCategories  []string           `json:"strongestCategories"`
	WeakestCategories    []string           `json:"weakestCategories"`
	LearningStyle        string             `json:"learningStyle"`
	MotivationalFactors  []string           `json:"motivationalFactors"`
	BurnoutRisk          float64            `json:"burnoutRisk"`     // [0, 1]
	EngagementLevel      float64            `json:"engagementLevel"` // [0, 1]
}

// ComputeMetrics derives the current profile from session history.
// An empty history yields neutral defaults.
func ComputeMetrics(sessions []*performance.SessionRecord, history []trends.Trend) PersonalizedMetrics {
	m := PersonalizedMetrics{
		OptimalPlayTime:     "afternoon",
		PreferredDifficulty: learner.DifficultyEasy,
		LearningStyle:       "methodical",
		EngagementLevel:     0.5,
	}
	if len(sessions) == 0 {
		return m
	}
	window := sessions
	if len(window) > metricsWindow {
		window = window[len(window)-metricsWindow:]
	}

	m.OptimalPlayTime = bestDaypart(window)
	m.AverageSessionLength = averageSessionMinutes(window)
	m.PreferredDifficulty = dominantDifficulty(window)

	byCategory := insights.CategoryAccuracy(window)
	m.StrongestCategories = topCategories(byCategory, categoryListMax, false)
	m.WeakestCategories = topCategories(byCategory, categoryListMax, true)

	m.LearningStyle = learningStyle(window)
	m.BurnoutRisk = burnoutRisk(window, history)
	m.EngagementLevel = engagementLevel(window)
	m.MotivationalFactors = motivationalFactors(m, history)
	return m
}

// bestDaypart returns the daypart with the highest mean accuracy.
func bestDaypart(sessions []*performance.SessionRecord) string {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, s := range sessions {
		part := insights.DaypartOf(s.StartTime)
		sums[part] += s.AccuracyRate
		counts[part]++
	}
	best, bestAvg := "afternoon", -1.0
	for _, part := range []string{"morning", "afternoon", "evening"} {
		if counts[part] == 0 {
			continue
		}
		if avg := sums[part] / float64(counts[part]); avg > bestAvg {
			best, bestAvg = part, avg
		}
	}
	return best
}

func averageSessionMinutes(sessions []*performance.SessionRecord) float64 {
	var total float64
	for _, s := range sessions {
		total += s.Duration().Minutes()
	}
	return total / float64(len(sessions))
}

// dominantDifficulty is the tier seen most often across the window, with
// higher tiers winning ties.
func dominantDifficulty(sessions []*performance.SessionRecord) learner.Difficulty {
	counts := map[learner.Difficulty]int{}
	for _, s := range sessions {
		for _, d := range s.DifficultyLevels {
			counts[d]++
		}
	}
	best := learner.DifficultyEasy
	bestCount := 0
	for _, d := range learner.AllDifficulties() {
		if counts[d] >= bestCount && counts[d] > 0 {
			best, bestCount = d, counts[d]
		}
	}
	return best
}

// topCategories returns up to max category names ordered by accuracy,
// descending for strengths and ascending for weaknesses. Only categories
// past the respective threshold qualify.
func topCategories(byCategory map[string]float64, max int, worst bool) []string {
	names := make([]string, 0, len(byCategory))
	for name, acc := range byCategory {
		if worst && acc < weakAccuracy {
			names = append(names, name)
		} else if !worst && acc > strongAccuracy {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := byCategory[names[i]], byCategory[names[j]]
		if a == b {
			return names[i] < names[j]
		}
		if worst {
			return a < b
		}
		return a > b
	})
	if len(names) > max {
		names = names[:max]
	}
	return names
}

// learningStyle tags how the learner works through problems. It is a
// coarse heuristic over hint usage, pace, and category spread.
func learningStyle(sessions []*performance.SessionRecord) string {
	var hints, problems, speedSum, accSum float64
	maxCategories := 0
	for _, s := range sessions {
		hints += float64(s.TotalHintsUsed)
		problems += float64(s.TotalProblems)
		speedSum += s.AverageResponseTime
		accSum += s.AccuracyRate
		if len(s.Categories) > maxCategories {
			maxCategories = len(s.Categories)
		}
	}
	n := float64(len(sessions))
	switch {
	case problems > 0 && hints/problems > 0.5:
		return "guided"
	case speedSum/n < 8 && accSum/n > 0.7:
		return "independent"
	case maxCategories > 3:
		return "exploratory"
	default:
		return "methodical"
	}
}

// burnoutRisk combines declining accuracy and focus trends with long
// sessions and poor consistency. Clamped to [0, 1].
func burnoutRisk(sessions []*performance.SessionRecord, history []trends.Trend) float64 {
	risk := 0.0
	for _, t := range history {
		if t.Direction != trends.Declining {
			continue
		}
		switch t.Metric {
		case "accuracy", "focus":
			risk += 0.3
			if t.Significance == trends.SignificanceHigh {
				risk += 0.1
			}
		}
	}
	if averageSessionMinutes(sessions) > longSessionMinutes {
		risk += 0.2
	}
	var consistency float64
	for _, s := range sessions {
		consistency += s.ConsistencyScore
	}
	if consistency/float64(len(sessions)) < 0.5 {
		risk += 0.2
	}
	return clamp01(risk)
}

// engagementLevel blends recency-weighted play frequency with accuracy
// and focus over the window.
func engagementLevel(sessions []*performance.SessionRecord) float64 {
	frequency := float64(len(sessions)) / 7.0
	if frequency > 1 {
		frequency = 1
	}
	var accSum, focusSum float64
	for _, s := range sessions {
		accSum += s.AccuracyRate
		focusSum += s.FocusScore
	}
	n := float64(len(sessions))
	return clamp01(frequency*0.4 + accSum/n*0.3 + focusSum/n*0.3)
}

func motivationalFactors(m PersonalizedMetrics, history []trends.Trend) []string {
	var factors []string
	if len(m.StrongestCategories) > 0 {
		factors = append(factors, "achievement")
	}
	for _, t := range history {
		if t.Metric == "accuracy" && t.Direction == trends.Improving {
			factors = append(factors, "progress")
			break
		}
	}
	if len(m.WeakestCategories) > 0 {
		factors = append(factors, "encouragement")
	}
	if m.LearningStyle == "exploratory" {
		factors = append(factors, "variety")
	}
	if len(factors) == 0 {
		factors = append(factors, "curiosity")
	}
	return factors
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
