// Package learner defines the shared vocabulary of the personalization
// engine: age brackets, difficulty tiers, and problem operations. Other
// packages build on these types the way they would on a schema.
package learner

// AgeGroup is a behavioral age bracket inferred from play history.
type AgeGroup string

const (
	AgeKids    AgeGroup = "kids"
	AgeTeens   AgeGroup = "teens"
	AgeAdults  AgeGroup = "adults"
	AgeSeniors AgeGroup = "seniors"
)

// AllAgeGroups returns the brackets in classification order.
func AllAgeGroups() []AgeGroup {
	return []AgeGroup{AgeKids, AgeTeens, AgeAdults, AgeSeniors}
}

// DisplayName returns a human-readable label for the bracket.
func (g AgeGroup) DisplayName() string {
	switch g {
	case AgeKids:
		return "Kids"
	case AgeTeens:
		return "Teens"
	case AgeAdults:
		return "Adults"
	case AgeSeniors:
		return "Seniors"
	default:
		return string(g)
	}
}

// Difficulty is a problem difficulty tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// AllDifficulties returns the tiers from lowest to highest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert}
}

// Rank returns the tier's position from 0 (easy) to 3 (expert).
// Unknown tiers rank as medium.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyMedium:
		return 1
	case DifficultyHard:
		return 2
	case DifficultyExpert:
		return 3
	default:
		return 1
	}
}

// StepDown returns the next lower tier, or easy if already at the bottom.
func (d Difficulty) StepDown() Difficulty {
	tiers := AllDifficulties()
	r := d.Rank()
	if r <= 0 {
		return DifficultyEasy
	}
	return tiers[r-1]
}

// Cap returns d limited to at most max.
func (d Difficulty) Cap(max Difficulty) Difficulty {
	if d.Rank() > max.Rank() {
		return max
	}
	return d
}

// Operation is an arithmetic operation a problem template exercises.
type Operation string

const (
	OpAddition       Operation = "addition"
	OpSubtraction    Operation = "subtraction"
	OpMultiplication Operation = "multiplication"
	OpDivision       Operation = "division"
)

// Symbol returns the display symbol for the operation.
func (o Operation) Symbol() string {
	switch o {
	case OpAddition:
		return "+"
	case OpSubtraction:
		return "-"
	case OpMultiplication:
		return "×"
	case OpDivision:
		return "÷"
	default:
		return "?"
	}
}

// Priority is a coarse urgency level shared by insights and recommendations.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns the priority's position from 0 (low) to 2 (high).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}
