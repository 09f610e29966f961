package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/adaptix/internal/ageclass"
	"github.com/abhisek/adaptix/internal/learner"
	"github.com/abhisek/adaptix/internal/logger"
	"github.com/abhisek/adaptix/internal/performance"
)

const (
	ageResultKey       = "ageDetectionResult"
	recommendationsKey = "implementedRecommendations"
)

func sessionsKey(userID string) string { return fmt.Sprintf("performance_sessions_%s", userID) }
func progressKey(userID string) string { return fmt.Sprintf("progress_%s", userID) }

// SessionRepo persists per-user session history as a single JSON array.
type SessionRepo struct {
	kv KV
}

func NewSessionRepo(kv KV) *SessionRepo {
	return &SessionRepo{kv: kv}
}

// Load returns the stored session history for the user. A missing key or
// an undecodable value both read as empty history; decode failures are
// logged, never returned.
func (r *SessionRepo) Load(ctx context.Context, userID string) []*performance.SessionRecord {
	raw, ok, err := r.kv.Get(ctx, sessionsKey(userID))
	if err != nil {
		logger.FromContext(ctx).Warn("load sessions for %s: %v", userID, err)
		return nil
	}
	if !ok {
		return nil
	}
	sessions, err := UnmarshalSessions(raw)
	if err != nil {
		logger.FromContext(ctx).Warn("load sessions for %s: %v", userID, err)
		return nil
	}
	return sessions
}

// AppendSession adds a finished session to the user's history.
func (r *SessionRepo) AppendSession(ctx context.Context, userID string, record *performance.SessionRecord) error {
	sessions := r.Load(ctx, userID)
	sessions = append(sessions, record)
	raw, err := MarshalSessions(sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if err := r.kv.Set(ctx, sessionsKey(userID), raw); err != nil {
		return fmt.Errorf("store sessions for %s: %w", userID, err)
	}
	return nil
}

var _ performance.SessionSaver = (*SessionRepo)(nil)

// AgeResultRepo persists the latest age-bracket detection. A new save
// replaces the previous value outright.
type AgeResultRepo struct {
	kv KV
}

func NewAgeResultRepo(kv KV) *AgeResultRepo {
	return &AgeResultRepo{kv: kv}
}

func (r *AgeResultRepo) SaveAgeResult(ctx context.Context, result ageclass.Result) error {
	raw, err := marshalAgeResult(result)
	if err != nil {
		return fmt.Errorf("encode age result: %w", err)
	}
	if err := r.kv.Set(ctx, ageResultKey, raw); err != nil {
		return fmt.Errorf("store age result: %w", err)
	}
	return nil
}

// Latest returns the last persisted detection, or ok=false when none is
// stored or the stored value cannot be read.
func (r *AgeResultRepo) Latest(ctx context.Context) (ageclass.Result, bool) {
	raw, ok, err := r.kv.Get(ctx, ageResultKey)
	if err != nil {
		logger.FromContext(ctx).Warn("load age result: %v", err)
		return ageclass.Result{}, false
	}
	if !ok {
		return ageclass.Result{}, false
	}
	result, err := unmarshalAgeResult(raw)
	if err != nil {
		logger.FromContext(ctx).Warn("load age result: %v", err)
		return ageclass.Result{}, false
	}
	return result, true
}

var _ ageclass.ResultStore = (*AgeResultRepo)(nil)

// ProgressSnapshot is the per-user rollup kept alongside the session
// history for quick display without replaying every record.
type ProgressSnapshot struct {
	UserID        string             `json:"userId"`
	CurrentLevel  learner.Difficulty `json:"currentLevel"`
	TotalSessions int                `json:"totalSessions"`
	TotalProblems int                `json:"totalProblems"`
	LastPlayed    string             `json:"lastPlayed"`
}

// SetLastPlayed stores t in the snapshot's wire format.
func (p *ProgressSnapshot) SetLastPlayed(t time.Time) {
	p.LastPlayed = encodeTime(t)
}

// LastPlayedTime parses the stored timestamp. Zero on absence or a
// malformed value.
func (p *ProgressSnapshot) LastPlayedTime() time.Time {
	t, err := decodeTime(p.LastPlayed)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ProgressRepo persists the per-user progress rollup.
type ProgressRepo struct {
	kv KV
}

func NewProgressRepo(kv KV) *ProgressRepo {
	return &ProgressRepo{kv: kv}
}

func (r *ProgressRepo) Load(ctx context.Context, userID string) (ProgressSnapshot, bool) {
	raw, ok, err := r.kv.Get(ctx, progressKey(userID))
	if err != nil {
		logger.FromContext(ctx).Warn("load progress for %s: %v", userID, err)
		return ProgressSnapshot{}, false
	}
	if !ok {
		return ProgressSnapshot{}, false
	}
	var snap ProgressSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		logger.FromContext(ctx).Warn("load progress for %s: %v", userID, err)
		return ProgressSnapshot{}, false
	}
	return snap, true
}

func (r *ProgressRepo) Save(ctx context.Context, snap ProgressSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := r.kv.Set(ctx, progressKey(snap.UserID), raw); err != nil {
		return fmt.Errorf("store progress for %s: %w", snap.UserID, err)
	}
	return nil
}

// RecommendationRepo tracks recommendation ids the learner has dismissed
// or already acted on, so they are not surfaced again.
type RecommendationRepo struct {
	kv KV
}

func NewRecommendationRepo(kv KV) *RecommendationRepo {
	return &RecommendationRepo{kv: kv}
}

// Dismissed returns the set of recommendation ids to suppress.
func (r *RecommendationRepo) Dismissed(ctx context.Context) map[string]bool {
	raw, ok, err := r.kv.Get(ctx, recommendationsKey)
	if err != nil {
		logger.FromContext(ctx).Warn("load dismissed recommendations: %v", err)
		return nil
	}
	if !ok {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		logger.FromContext(ctx).Warn("load dismissed recommendations: %v", err)
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Dismiss records an id as handled. Re-dismissing is a no-op.
func (r *RecommendationRepo) Dismiss(ctx context.Context, id string) error {
	set := r.Dismissed(ctx)
	if set[id] {
		return nil
	}
	ids := make([]string, 0, len(set)+1)
	for existing := range set {
		ids = append(ids, existing)
	}
	ids = append(ids, id)
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode dismissed recommendations: %w", err)
	}
	if err := r.kv.Set(ctx, recommendationsKey, raw); err != nil {
		return fmt.Errorf("store dismissed recommendations: %w", err)
	}
	return nil
}
