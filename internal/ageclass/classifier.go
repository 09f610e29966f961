// Package ageclass infers a learner's age bracket from behavioral
// indicators using a fixed weighted scoring table. It makes no demographic
// claims: the bracket only steers content presentation.
package ageclass

import (
	"context"
	"time"

	"github.com/abhisek/adaptix/internal/learner"
	"github.com/abhisek/adaptix/internal/logger"
	"github.com/abhisek/adaptix/internal/performance"
)

const (
	// minSessions is the history size below which classification falls
	// back to the default result.
	minSessions = 3

	// maxConfidence caps what the classifier will ever claim.
	maxConfidence = 0.95

	// defaultConfidence is the confidence of the fallback result.
	defaultConfidence = 0.5
)

// Result is a completed age-bracket detection. Persisted verbatim; a newer
// detection supersedes it wholesale, never field by field.
type Result struct {
	PredictedAgeGroup learner.AgeGroup     `json:"predictedAgeGroup"`
	Confidence        float64              `json:"confidence"`
	Reasoning         []string             `json:"reasoning"`
	Indicators        BehavioralIndicators `json:"indicators"`
	DetectedAt        time.Time            `json:"detectedAt"`
}

// Classify scores the session history against the weight table and returns
// the best-matching bracket. It is a pure function of its input.
// Fewer than three sessions yields the default adults result.
func Classify(sessions []*performance.SessionRecord) Result {
	now := time.Now()
	if len(sessions) < minSessions {
		return Result{
			PredictedAgeGroup: learner.AgeAdults,
			Confidence:        defaultConfidence,
			Reasoning:         defaultReasoning,
			DetectedAt:        now,
		}
	}

	ind := DeriveIndicators(sessions)

	scores := map[learner.AgeGroup]float64{}
	for _, dim := range weightTable {
		for group, w := range dim.eval(ind) {
			scores[group] += w
		}
	}

	var top, second learner.AgeGroup
	for _, g := range learner.AllAgeGroups() {
		if top == "" || scores[g] > scores[top] {
			second = top
			top = g
		} else if second == "" || scores[g] > scores[second] {
			second = g
		}
	}

	confidence := defaultConfidence
	if denom := scores[top] + scores[second]; denom > 0 {
		confidence = scores[top] / denom
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return Result{
		PredictedAgeGroup: top,
		Confidence:        confidence,
		Reasoning:         reasoningByGroup[top],
		Indicators:        ind,
		DetectedAt:        now,
	}
}

// ResultStore persists detection results.
type ResultStore interface {
	SaveAgeResult(ctx context.Context, result Result) error
}

// Detector wraps Classify with persistence of the latest result.
type Detector struct {
	store ResultStore
}

// NewDetector creates a Detector. store may be nil to skip persistence.
func NewDetector(store ResultStore) *Detector {
	return &Detector{store: store}
}

// Detect classifies the history and persists the result. Store failures
// are logged and do not affect the returned result.
func (d *Detector) Detect(ctx context.Context, sessions []*performance.SessionRecord) Result {
	result := Classify(sessions)
	if d.store != nil {
		if err := d.store.SaveAgeResult(ctx, result); err != nil {
			logger.FromContext(ctx).Warn("persist age detection: %v", err)
		}
	}
	return result
}
