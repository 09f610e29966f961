package difficulty

// Modifiers are the live difficulty adjustments recomputed after every
// answer. Reading them has no side effects: two reads without an
// intervening update return identical values.
type Modifiers struct {
	// RangeMultiplier widens or narrows variable sampling ranges.
	RangeMultiplier float64 `json:"rangeMultiplier"`
	// ComplexityLevel is the 0-4 difficulty step.
	ComplexityLevel int `json:"complexityLevel"`
	// HintAvailability enables hints for struggling learners.
	HintAvailability bool `json:"hintAvailability"`
	// TimeBonus rewards fast, accurate play.
	TimeBonus bool `json:"timeBonus"`
}

// Modifiers computes the current adjustments from the live counter.
// Each rule table is first-match-wins in the order written.
func (c *Controller) Modifiers() Modifiers {
	success := c.successRate()
	recent := c.recentRate()
	streak := c.perf.Streak
	total := c.perf.TotalAnswers

	var rangeMult float64
	switch {
	case success > 0.8 && recent > 0.8 && streak > 3:
		rangeMult = 1.5
	case success < 0.4 && recent < 0.4:
		rangeMult = 0.7
	case streak > 5:
		rangeMult = 1.3
	case streak < 2 && total > 3:
		rangeMult = 0.8
	default:
		rangeMult = 1.0
	}

	var complexity int
	switch {
	case success > 0.9 && streak > 5:
		complexity = 4
	case success > 0.8 && streak > 3:
		complexity = 3
	case success > 0.6:
		complexity = 2
	case success > 0.3:
		complexity = 1
	default:
		complexity = 0
	}

	return Modifiers{
		RangeMultiplier:  rangeMult,
		ComplexityLevel:  complexity,
		HintAvailability: success < 0.6 || streak < 2,
		TimeBonus:        c.perf.AverageTime < 15 && success > 0.7,
	}
}

// levelTitles maps each complexity level to its display title.
var levelTitles = [5]string{
	"Explorador Curioso",
	"Aprendiz de Números",
	"Aventurero del Cálculo",
	"Experto en Operaciones",
	"Maestro Matemático",
}

// LevelTitle returns the display title for a complexity level.
// Out-of-range levels clamp to the nearest title.
func LevelTitle(complexity int) string {
	if complexity < 0 {
		complexity = 0
	}
	if complexity >= len(levelTitles) {
		complexity = len(levelTitles) - 1
	}
	return levelTitles[complexity]
}
