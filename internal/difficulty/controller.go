// Package difficulty adjusts problem difficulty in real time from a single
// live performance counter: streak, overall accuracy, a last-five window,
// and a rolling average response time.
package difficulty

import "github.com/abhisek/adaptix/internal/learner"

// recentWindow is the size of the last-results FIFO.
const recentWindow = 5

// Performance is the live counter the controller folds every answer into.
type Performance struct {
	Streak         int
	CorrectAnswers int
	TotalAnswers   int
	AverageTime    float64 // seconds, incremental mean
	LastFive       []bool  // FIFO, oldest first, max recentWindow
	CurrentLevel   learner.Difficulty
}

// Controller owns one learner's live performance counter. Construct one
// per learner and inject it; there is deliberately no package-level state.
type Controller struct {
	perf Performance
}

// NewController creates a Controller starting at the given level.
func NewController(level learner.Difficulty) *Controller {
	return &Controller{perf: Performance{CurrentLevel: level}}
}

// NewControllerFrom creates a Controller resuming from a prior counter,
// for planning ahead without touching the live one.
func NewControllerFrom(perf Performance) *Controller {
	perf.LastFive = append([]bool(nil), perf.LastFive...)
	return &Controller{perf: perf}
}

// Performance returns a copy of the live counter.
func (c *Controller) Performance() Performance {
	p := c.perf
	p.LastFive = append([]bool(nil), c.perf.LastFive...)
	return p
}

// Streak returns the current consecutive-correct count.
func (c *Controller) Streak() int {
	return c.perf.Streak
}

// UpdatePerformance folds one answer into the counter.
func (c *Controller) UpdatePerformance(correct bool, timeSpent float64, level learner.Difficulty) {
	p := &c.perf
	p.TotalAnswers++
	if correct {
		p.CorrectAnswers++
		p.Streak++
	} else {
		p.Streak = 0
	}

	p.LastFive = append(p.LastFive, correct)
	if len(p.LastFive) > recentWindow {
		p.LastFive = p.LastFive[len(p.LastFive)-recentWindow:]
	}

	n := float64(p.TotalAnswers)
	p.AverageTime = (p.AverageTime*(n-1) + timeSpent) / n
	p.CurrentLevel = level
}

// successRate is the overall correct fraction, neutral 0.5 with no data.
func (c *Controller) successRate() float64 {
	if c.perf.TotalAnswers == 0 {
		return 0.5
	}
	return float64(c.perf.CorrectAnswers) / float64(c.perf.TotalAnswers)
}

// recentRate is the correct fraction of the last-five window, neutral 0.5
// when empty.
func (c *Controller) recentRate() float64 {
	if len(c.perf.LastFive) == 0 {
		return 0.5
	}
	correct := 0
	for _, ok := range c.perf.LastFive {
		if ok {
			correct++
		}
	}
	return float64(correct) / float64(len(c.perf.LastFive))
}
