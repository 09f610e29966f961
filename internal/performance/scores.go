package performance

import "math"

const (
	// minVelocityProblems is the response count below which learning
	// velocity reads as zero (not enough signal).
	minVelocityProblems = 3

	// minFocusProblems is the response count below which focus reads as a
	// perfect 1 (no variance to measure).
	minFocusProblems = 3

	// minConsistencyProblems is the response count below which consistency
	// reads as a perfect 1.
	minConsistencyProblems = 5

	// velocityScale converts the second-half accuracy delta to the
	// velocity score.
	velocityScale = 10
)

// learningVelocity measures whether the learner got better as the session
// went on: accuracy of the second half of responses against the overall,
// scaled and floored at zero.
func learningVelocity(results []bool) float64 {
	n := len(results)
	if n < minVelocityProblems {
		return 0
	}
	overall := accuracyOf(results)
	second := accuracyOf(results[n/2:])
	return math.Max(0, (second-overall)*velocityScale)
}

// focusScore rates response-time steadiness: the spread between slowest
// and fastest relative to the average. Less variance scores higher.
func focusScore(r *SessionRecord) float64 {
	if r.TotalProblems < minFocusProblems {
		return 1
	}
	if r.AverageResponseTime <= 0 {
		return 1
	}
	spread := (r.SlowestResponse - r.FastestResponse) / r.AverageResponseTime
	return clamp(1-spread/3, 0, 1)
}

// consistencyScore checks whether correct answers are spread evenly
// through the session. Under a binomial model with the session's overall
// accuracy, the first half should hold close to its expected share of
// correct answers; deviation beyond one standard deviation is penalized.
func consistencyScore(results []bool, accuracy float64) float64 {
	n := len(results)
	if n < minConsistencyProblems {
		return 1
	}
	sigma := math.Sqrt(float64(n) * accuracy * (1 - accuracy))
	if sigma == 0 {
		return 1 // all correct or all wrong is perfectly consistent
	}
	half := results[:n/2]
	expected := accuracy * float64(len(half))
	actual := float64(correctCount(half))
	deviation := math.Abs(actual - expected)
	return clamp(1-deviation/sigma, 0, 1)
}

func accuracyOf(results []bool) float64 {
	if len(results) == 0 {
		return 0
	}
	return float64(correctCount(results)) / float64(len(results))
}

func correctCount(results []bool) int {
	c := 0
	for _, ok := range results {
		if ok {
			c++
		}
	}
	return c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
