// Package templates holds the static problem-template catalog and the
// engine that renders templates into concrete problems: variable sampling,
// answer computation, distractor synthesis, hints, and load estimates.
package templates

import (
	"github.com/abhisek/adaptix/internal/learner"
)

// Strategy names the generation intent behind a problem. The orchestrator
// picks it; the engine uses it to tune support and gamification.
type Strategy string

const (
	StrategyBalanced           Strategy = "balanced"
	StrategyWeaknessTargeted   Strategy = "weakness-targeted"
	StrategyConfidenceBuilding Strategy = "confidence-building"
	StrategyEngagementFocused  Strategy = "engagement-focused"
	StrategyMotivationFocused  Strategy = "motivation-focused"
)

// VarRange is the sampling range for one template variable at one
// difficulty tier. Min and Max are inclusive.
type VarRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Decimals bool    `json:"decimals,omitempty"`
}

// AgeConfig is a template's per-age-bracket presentation settings.
type AgeConfig struct {
	Theme            string  `json:"theme"`
	MaxCognitiveLoad float64 `json:"maxCognitiveLoad"`
	Encouragement    string  `json:"encouragement"`
}

// ProblemTemplate is one parametrized problem. Templates are loaded once
// from the embedded catalog and never mutated at runtime.
type ProblemTemplate struct {
	ID        string            `json:"id"`
	Category  string            `json:"category"`
	Operation learner.Operation `json:"operation"`
	// Text is the question with {a}/{b} placeholders.
	Text string `json:"text"`
	// Ranges maps difficulty tier -> variable name -> sampling range.
	Ranges        map[learner.Difficulty]map[string]VarRange `json:"ranges"`
	Concepts      []string                                   `json:"concepts"`
	Prerequisites []string                                   `json:"prerequisites"`
	// Hints may reference {a}, {b}, and {answer}.
	Hints []string `json:"hints"`
	// Explanation is the worked-solution template.
	Explanation string                         `json:"explanation"`
	AgeConfigs  map[learner.AgeGroup]AgeConfig `json:"ageConfigs"`
}

// AdaptiveFactors record which live adjustments shaped a problem.
type AdaptiveFactors struct {
	Strategy        Strategy `json:"strategy"`
	HintsEnabled    bool     `json:"hintsEnabled"`
	TimeBonus       bool     `json:"timeBonus"`
	RangeMultiplier float64  `json:"rangeMultiplier"`
}

// Metadata is the descriptive envelope of a generated problem.
type Metadata struct {
	Concepts      []string         `json:"concepts"`
	CognitiveLoad float64          `json:"cognitiveLoad"`
	AgeGroup      learner.AgeGroup `json:"ageGroup"`
	Gamification  []string         `json:"gamification,omitempty"`
}

// GeneratedProblem is one rendered problem. Immutable once returned.
type GeneratedProblem struct {
	ID            string             `json:"id"`
	TemplateID    string             `json:"templateId"`
	Category      string             `json:"category"`
	Operation     learner.Operation  `json:"operation"`
	Difficulty    learner.Difficulty `json:"difficulty"`
	Question      string             `json:"question"`
	Options       []string           `json:"options"` // 4 unique, shuffled
	CorrectAnswer string             `json:"correctAnswer"`
	Explanation   string             `json:"explanation"`
	Hints         []string           `json:"hints,omitempty"`
	TimeEstimate  float64            `json:"timeEstimate"` // seconds
	Adaptive      AdaptiveFactors    `json:"adaptiveFactors"`
	Metadata      Metadata           `json:"metadata"`
}
