package personalization

import (
	"github.com/abhisek/adaptix/internal/insights"
	"github.com/abhisek/adaptix/internal/learner"
	"github.com/abhisek/adaptix/internal/performance"
	"github.com/abhisek/adaptix/internal/templates"
)

const (
	burnoutEngagementThreshold = 0.7
	lowEngagementThreshold     = 0.4
	strugglingAccuracy         = 0.6
	recentPerformanceWindow    = 5

	// seniorsBurnoutStepDown is the burnout level past which seniors get
	// one tier easier problems.
	seniorsBurnoutStepDown = 0.5
)

// ChooseStrategy picks the generation strategy by fixed precedence:
// burnout first, disengagement second, then targeted weakness work,
// then confidence rebuilding, and balanced as the default.
func ChooseStrategy(metrics PersonalizedMetrics, insightList []insights.Insight, sessions []*performance.SessionRecord, targetWeakness bool) templates.Strategy {
	switch {
	case metrics.BurnoutRisk > burnoutEngagementThreshold:
		return templates.StrategyEngagementFocused
	case metrics.EngagementLevel < lowEngagementThreshold:
		return templates.StrategyMotivationFocused
	case targetWeakness && hasHighPriorityWeakness(insightList):
		return templates.StrategyWeaknessTargeted
	case recentPerformance(sessions) < strugglingAccuracy && hasStrength(insightList):
		return templates.StrategyConfidenceBuilding
	default:
		return templates.StrategyBalanced
	}
}

func hasHighPriorityWeakness(list []insights.Insight) bool {
	for _, in := range list {
		if in.Type == insights.TypeWeakness && in.Priority == learner.PriorityHigh {
			return true
		}
	}
	return false
}

func hasStrength(list []insights.Insight) bool {
	for _, in := range list {
		if in.Type == insights.TypeStrength {
			return true
		}
	}
	return false
}

// recentPerformance is the mean accuracy of the last few sessions.
// Neutral 0.7 with no history so a fresh learner starts balanced.
func recentPerformance(sessions []*performance.SessionRecord) float64 {
	if len(sessions) == 0 {
		return 0.7
	}
	window := sessions
	if len(window) > recentPerformanceWindow {
		window = window[len(window)-recentPerformanceWindow:]
	}
	var sum float64
	for _, s := range window {
		sum += s.AccuracyRate
	}
	return sum / float64(len(window))
}

// DifficultyForComplexity maps the controller's 0-4 complexity level to
// a difficulty tier.
func DifficultyForComplexity(complexity int) learner.Difficulty {
	switch {
	case complexity <= 1:
		return learner.DifficultyEasy
	case complexity == 2:
		return learner.DifficultyMedium
	case complexity == 3:
		return learner.DifficultyHard
	default:
		return learner.DifficultyExpert
	}
}

// NarrowForAge applies the per-bracket difficulty ceilings: kids never
// see past medium, teens never past hard, and seniors drop one tier when
// burnout risk is elevated.
func NarrowForAge(diff learner.Difficulty, group learner.AgeGroup, burnoutRisk float64) learner.Difficulty {
	switch group {
	case learner.AgeKids:
		return diff.Cap(learner.DifficultyMedium)
	case learner.AgeTeens:
		return diff.Cap(learner.DifficultyHard)
	case learner.AgeSeniors:
		if burnoutRisk > seniorsBurnoutStepDown {
			return diff.StepDown()
		}
	}
	return diff
}

// focusCategory picks the category a strategy should lean into, or ""
// when any category will do.
func focusCategory(strategy templates.Strategy, metrics PersonalizedMetrics, requested string) string {
	switch strategy {
	case templates.StrategyWeaknessTargeted:
		if len(metrics.WeakestCategories) > 0 {
			return metrics.WeakestCategories[0]
		}
	case templates.StrategyConfidenceBuilding, templates.StrategyEngagementFocused:
		if len(metrics.StrongestCategories) > 0 {
			return metrics.StrongestCategories[0]
		}
	}
	return requested
}
