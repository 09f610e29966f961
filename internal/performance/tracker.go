// Package performance owns the live play session: it ingests per-problem
// response events, maintains rolling statistics and mistake patterns, and
// finalizes sessions into immutable records handed to the session store.
package performance

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/adaptix/internal/learner"
	"github.com/abhisek/adaptix/internal/logger"
)

var (
	// ErrSessionAlreadyActive is returned by StartSession when a live
	// session exists. End it first.
	ErrSessionAlreadyActive = errors.New("performance: session already active")

	// ErrNoActiveSession is returned by RecordResponse and EndSession when
	// no session is live. Call StartSession first.
	ErrNoActiveSession = errors.New("performance: no active session")
)

// Response is a single per-problem response event.
type Response struct {
	Correct      bool
	ResponseTime float64 // seconds, > 0
	Difficulty   learner.Difficulty
	Category     string
	Operation    learner.Operation
	HintsUsed    int
	Retries      int
}

// SessionSaver persists finalized session records. Failures are treated as
// non-fatal by the tracker.
type SessionSaver interface {
	AppendSession(ctx context.Context, userID string, rec *SessionRecord) error
}

// Tracker owns at most one live session for a single user.
// It is not safe for concurrent use; the engine has a single caller.
type Tracker struct {
	userID string
	store  SessionSaver

	live    *SessionRecord
	results []bool // per-response correctness, in order, live session only
	now     func() time.Time
}

// NewTracker creates a Tracker for the given user. store may be nil, in
// which case finalized sessions are simply returned to the caller.
func NewTracker(userID string, store SessionSaver) *Tracker {
	return &Tracker{userID: userID, store: store, now: time.Now}
}

// Live returns the live session record, or nil if none is active.
// The returned record is owned by the tracker; callers must not mutate it.
func (t *Tracker) Live() *SessionRecord {
	return t.live
}

// StartSession allocates a fresh live session with zeroed counters.
func (t *Tracker) StartSession() (*SessionRecord, error) {
	if t.live != nil {
		return nil, ErrSessionAlreadyActive
	}
	t.live = &SessionRecord{
		ID:               uuid.NewString(),
		UserID:           t.userID,
		StartTime:        t.now(),
		FastestResponse:  math.Inf(1),
		FocusScore:       1,
		ConsistencyScore: 1,
	}
	t.results = nil
	return t.live, nil
}

// RecordResponse folds one response event into the live session's
// rolling statistics.
func (t *Tracker) RecordResponse(resp Response) error {
	r := t.live
	if r == nil {
		return ErrNoActiveSession
	}

	r.TotalProblems++
	if resp.Correct {
		r.ProblemsSolved++
	}
	t.results = append(t.results, resp.Correct)

	n := float64(r.TotalProblems)
	r.AverageResponseTime = (r.AverageResponseTime*(n-1) + resp.ResponseTime) / n
	if resp.ResponseTime < r.FastestResponse {
		r.FastestResponse = resp.ResponseTime
	}
	if resp.ResponseTime > r.SlowestResponse {
		r.SlowestResponse = resp.ResponseTime
	}
	r.AccuracyRate = float64(r.ProblemsSolved) / n

	appendDifficulty(r, resp.Difficulty)
	if resp.Category != "" && !r.HasCategory(resp.Category) {
		r.Categories = append(r.Categories, resp.Category)
	}

	r.TotalHintsUsed += resp.HintsUsed
	r.TotalRetries += resp.Retries

	if !resp.Correct {
		t.upsertMistake(resp)
	}

	r.LearningVelocity = learningVelocity(t.results)
	r.FocusScore = focusScore(r)
	r.ConsistencyScore = consistencyScore(t.results, r.AccuracyRate)
	return nil
}

// EndSession stamps the end time, hands the finalized record to the
// session store, and clears the live slot. Store failures are logged and
// do not fail the call.
func (t *Tracker) EndSession(ctx context.Context) (*SessionRecord, error) {
	r := t.live
	if r == nil {
		return nil, ErrNoActiveSession
	}
	r.EndTime = t.now()
	t.live = nil
	t.results = nil

	if t.store != nil {
		if err := t.store.AppendSession(ctx, t.userID, r); err != nil {
			logger.FromContext(ctx).Warn("persist session %s: %v", r.ID, err)
		}
	}
	return r, nil
}

// upsertMistake records a wrong answer against its (category, operation)
// pattern, creating the pattern on first occurrence.
func (t *Tracker) upsertMistake(resp Response) {
	r := t.live
	mp := r.findMistake(resp.Category, resp.Operation)
	if mp == nil {
		r.MistakePatterns = append(r.MistakePatterns, MistakePattern{
			Category:       resp.Category,
			Operation:      resp.Operation,
			Frequency:      1,
			AverageTime:    resp.ResponseTime,
			LastOccurrence: t.now(),
			Trend:          "new",
		})
		return
	}
	mp.Frequency++
	mp.AverageTime = (mp.AverageTime + resp.ResponseTime) / 2
	mp.LastOccurrence = t.now()
	mp.Trend = "recurring"
}

func appendDifficulty(r *SessionRecord, d learner.Difficulty) {
	for _, existing := range r.DifficultyLevels {
		if existing == d {
			return
		}
	}
	r.DifficultyLevels = append(r.DifficultyLevels, d)
}
