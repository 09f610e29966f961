package performance

import (
	"time"

	"github.com/abhisek/adaptix/internal/learner"
)

// MistakePattern aggregates repeated wrong answers for one
// (category, operation) pair within a session. It is created on the first
// wrong answer of the pair and updated in place on repeats.
type MistakePattern struct {
	Category       string            `json:"category"`
	Operation      learner.Operation `json:"operation"`
	Frequency      int               `json:"frequency"`
	AverageTime    float64           `json:"averageTime"` // seconds
	LastOccurrence time.Time         `json:"lastOccurrence"`
	Trend          string            `json:"trend"` // "new", "recurring"
}

// SessionRecord holds the rolling statistics of one play session.
// It is mutable only while owned by a live Tracker; after EndSession it is
// finalized and must be treated as read-only.
type SessionRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`

	TotalProblems  int     `json:"totalProblems"`
	ProblemsSolved int     `json:"problemsSolved"`
	AccuracyRate   float64 `json:"accuracyRate"` // ProblemsSolved / TotalProblems

	// FastestResponse starts at +Inf so the first response always wins the min.
	FastestResponse     float64 `json:"fastestResponse"`
	SlowestResponse     float64 `json:"slowestResponse"`
	AverageResponseTime float64 `json:"averageResponseTime"`

	// DifficultyLevels and Categories are insertion-ordered sets.
	DifficultyLevels []learner.Difficulty `json:"difficultyLevels"`
	Categories       []string             `json:"categories"`

	MistakePatterns []MistakePattern `json:"mistakePatterns"`

	TotalHintsUsed int `json:"totalHintsUsed"`
	TotalRetries   int `json:"totalRetries"`

	// Derived scores, recomputed after every response.
	LearningVelocity float64 `json:"learningVelocity"` // >= 0, unbounded
	FocusScore       float64 `json:"focusScore"`       // [0, 1]
	ConsistencyScore float64 `json:"consistencyScore"` // [0, 1]
}

// Duration returns the session length, using the current time while live.
func (r *SessionRecord) Duration() time.Duration {
	end := r.EndTime
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(r.StartTime)
}

// HasCategory reports whether the session touched the given category.
func (r *SessionRecord) HasCategory(category string) bool {
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// findMistake returns the pattern matching the pair, or nil.
func (r *SessionRecord) findMistake(category string, op learner.Operation) *MistakePattern {
	for i := range r.MistakePatterns {
		if r.MistakePatterns[i].Category == category && r.MistakePatterns[i].Operation == op {
			return &r.MistakePatterns[i]
		}
	}
	return nil
}
