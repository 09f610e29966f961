// Package trends computes directional performance trends over a learner's
// session history by comparing a recent window against the one before it.
package trends

import (
	"math"

	"github.com/abhisek/adaptix/internal/performance"
)

// Direction of a metric trend.
type Direction string

const (
	Improving Direction = "improving"
	Stable    Direction = "stable"
	Declining Direction = "declining"
)

// Significance tier of a trend's magnitude.
type Significance string

const (
	SignificanceLow    Significance = "low"
	SignificanceMedium Significance = "medium"
	SignificanceHigh   Significance = "high"
)

const (
	// analysisWindow is how many trailing sessions feed the analysis.
	analysisWindow = 14
	// recentWindow is how many of those count as "recent".
	recentWindow = 7

	// stableBand is the |% change| below which a trend reads as stable.
	stableBand = 5.0
	// mediumThreshold and highThreshold split the significance tiers.
	mediumThreshold = 10.0
	highThreshold   = 25.0
)

// Trend describes how one metric moved between the older and recent
// session windows.
type Trend struct {
	Metric        string       `json:"metric"`
	Direction     Direction    `json:"direction"`
	ChangePercent float64      `json:"changePercent"`
	Significance  Significance `json:"significance"`
}

// Metric extracts a scalar from a session record.
type Metric struct {
	Name string
	// Inverted marks metrics where lower is better (response time); the
	// sign of the percent change is flipped so improving always means
	// positive change.
	Inverted bool
	Extract  func(*performance.SessionRecord) float64
}

// StandardMetrics returns the metrics reported by the engine, in display
// order.
func StandardMetrics() []Metric {
	return []Metric{
		{Name: "accuracy", Extract: func(r *performance.SessionRecord) float64 { return r.AccuracyRate }},
		{Name: "responseTime", Inverted: true, Extract: func(r *performance.SessionRecord) float64 { return r.AverageResponseTime }},
		{Name: "focus", Extract: func(r *performance.SessionRecord) float64 { return r.FocusScore }},
		{Name: "learningVelocity", Extract: func(r *performance.SessionRecord) float64 { return r.LearningVelocity }},
		{Name: "consistency", Extract: func(r *performance.SessionRecord) float64 { return r.ConsistencyScore }},
	}
}

// Analyzer computes trends over session history.
type Analyzer struct{}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// ComputeTrend computes the trend of one metric over the session history.
// Sessions must be ordered oldest first. Fewer than two sessions always
// reads as a stable, low-significance trend.
func (a *Analyzer) ComputeTrend(sessions []*performance.SessionRecord, metric Metric) Trend {
	t := Trend{Metric: metric.Name, Direction: Stable, Significance: SignificanceLow}
	if len(sessions) < 2 {
		return t
	}

	window := sessions
	if len(window) > analysisWindow {
		window = window[len(window)-analysisWindow:]
	}

	// Split into recent and older halves. With 8+ sessions the recent
	// window holds the last 7; below that the window splits in two so both
	// sides stay populated.
	split := len(window) - recentWindow
	if split < 1 {
		split = len(window) / 2
	}
	older := window[:split]
	recent := window[split:]

	olderAvg := average(older, metric.Extract)
	recentAvg := average(recent, metric.Extract)
	if olderAvg == 0 {
		return t
	}

	change := (recentAvg - olderAvg) / olderAvg * 100
	if metric.Inverted {
		change = -change
	}
	t.ChangePercent = change

	switch {
	case math.Abs(change) < stableBand:
		t.Direction = Stable
	case change > 0:
		t.Direction = Improving
	default:
		t.Direction = Declining
	}

	switch {
	case math.Abs(change) < mediumThreshold:
		t.Significance = SignificanceLow
	case math.Abs(change) < highThreshold:
		t.Significance = SignificanceMedium
	default:
		t.Significance = SignificanceHigh
	}
	return t
}

// ComputeAll computes trends for every standard metric.
func (a *Analyzer) ComputeAll(sessions []*performance.SessionRecord) []Trend {
	metrics := StandardMetrics()
	out := make([]Trend, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, a.ComputeTrend(sessions, m))
	}
	return out
}

func average(sessions []*performance.SessionRecord, extract func(*performance.SessionRecord) float64) float64 {
	if len(sessions) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range sessions {
		sum += extract(s)
	}
	return sum / float64(len(sessions))
}
