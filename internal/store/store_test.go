package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptix/internal/ageclass"
	"github.com/abhisek/adaptix/internal/learner"
	"github.com/abhisek/adaptix/internal/performance"
)

func testSession(id string, start time.Time) *performance.SessionRecord {
	return &performance.SessionRecord{
		ID:                  id,
		UserID:              "u1",
		StartTime:           start,
		EndTime:             start.Add(12 * time.Minute),
		TotalProblems:       10,
		ProblemsSolved:      8,
		AccuracyRate:        0.8,
		FastestResponse:     3.2,
		SlowestResponse:     21.5,
		AverageResponseTime: 9.75,
		DifficultyLevels:    []learner.Difficulty{learner.DifficultyEasy, learner.DifficultyMedium},
		Categories:          []string{"addition", "subtraction"},
		MistakePatterns: []performance.MistakePattern{{
			Category:       "subtraction",
			Operation:      learner.OpSubtraction,
			Frequency:      2,
			AverageTime:    14.5,
			LastOccurrence: start.Add(5 * time.Minute),
			Trend:          "recurring",
		}},
		TotalHintsUsed:   3,
		TotalRetries:     1,
		LearningVelocity: 1.5,
		FocusScore:       0.8,
		ConsistencyScore: 0.9,
	}
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepo(NewMemoryKV())

	start := time.Date(2025, 3, 14, 16, 30, 12, 345000000, time.UTC)
	want := testSession("s-1", start)

	require.NoError(t, repo.AppendSession(ctx, "u1", want))

	got := repo.Load(ctx, "u1")
	require.Len(t, got, 1)
	require.Equal(t, want, got[0])
	require.True(t, got[0].StartTime.Equal(start))
	require.True(t, got[0].MistakePatterns[0].LastOccurrence.Equal(start.Add(5*time.Minute)))
}

func TestSessionAppendPreservesOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepo(NewMemoryKV())

	start := time.Date(2025, 3, 14, 16, 0, 0, 0, time.UTC)
	for i, id := range []string{"s-1", "s-2", "s-3"} {
		require.NoError(t, repo.AppendSession(ctx, "u1", testSession(id, start.Add(time.Duration(i)*time.Hour))))
	}

	got := repo.Load(ctx, "u1")
	require.Len(t, got, 3)
	require.Equal(t, "s-1", got[0].ID)
	require.Equal(t, "s-3", got[2].ID)
}

func TestEmptySessionInfinityRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepo(NewMemoryKV())

	rec := testSession("s-empty", time.Date(2025, 3, 14, 16, 0, 0, 0, time.UTC))
	rec.TotalProblems = 0
	rec.ProblemsSolved = 0
	rec.FastestResponse = math.Inf(1)
	rec.SlowestResponse = 0
	rec.MistakePatterns = nil

	require.NoError(t, repo.AppendSession(ctx, "u1", rec))

	got := repo.Load(ctx, "u1")
	require.Len(t, got, 1)
	require.True(t, math.IsInf(got[0].FastestResponse, 1))
}

func TestLoadMissingUserIsEmpty(t *testing.T) {
	repo := NewSessionRepo(NewMemoryKV())
	require.Empty(t, repo.Load(context.Background(), "nobody"))
}

func TestLoadCorruptValueIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, sessionsKey("u1"), []byte("{not json")))

	repo := NewSessionRepo(kv)
	require.Empty(t, repo.Load(ctx, "u1"))
}

func TestAgeResultRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewAgeResultRepo(NewMemoryKV())

	_, ok := repo.Latest(ctx)
	require.False(t, ok)

	want := ageclass.Result{
		PredictedAgeGroup: learner.AgeTeens,
		Confidence:        0.72,
		Reasoning:         []string{"Quick response times", "Short focused sessions"},
		Indicators: ageclass.BehavioralIndicators{
			AttentionSpan: 0.7,
			ResponseSpeed: 9.5,
			Navigation:    ageclass.NavDirect,
			HelpSeeking:   ageclass.HelpModerate,
			SessionLength: ageclass.SessionShort,
		},
		DetectedAt: time.Date(2025, 3, 14, 16, 30, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SaveAgeResult(ctx, want))

	got, ok := repo.Latest(ctx)
	require.True(t, ok)
	require.Equal(t, want, got)

	// A newer detection replaces the previous one wholesale.
	want.PredictedAgeGroup = learner.AgeAdults
	want.Reasoning = []string{"Balanced engagement patterns"}
	require.NoError(t, repo.SaveAgeResult(ctx, want))

	got, ok = repo.Latest(ctx)
	require.True(t, ok)
	require.Equal(t, learner.AgeAdults, got.PredictedAgeGroup)
	require.Equal(t, []string{"Balanced engagement patterns"}, got.Reasoning)
}

func TestProgressRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewProgressRepo(NewMemoryKV())

	_, ok := repo.Load(ctx, "u1")
	require.False(t, ok)

	snap := ProgressSnapshot{
		UserID:        "u1",
		CurrentLevel:  learner.DifficultyMedium,
		TotalSessions: 4,
		TotalProblems: 52,
	}
	played := time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)
	snap.SetLastPlayed(played)
	require.NoError(t, repo.Save(ctx, snap))

	got, ok := repo.Load(ctx, "u1")
	require.True(t, ok)
	require.Equal(t, snap, got)
	require.True(t, got.LastPlayedTime().Equal(played))
}

func TestRecommendationRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewRecommendationRepo(NewMemoryKV())

	require.Empty(t, repo.Dismissed(ctx))

	require.NoError(t, repo.Dismiss(ctx, "rec-1"))
	require.NoError(t, repo.Dismiss(ctx, "rec-2"))
	require.NoError(t, repo.Dismiss(ctx, "rec-1"))

	set := repo.Dismissed(ctx)
	require.Len(t, set, 2)
	require.True(t, set["rec-1"])
	require.True(t, set["rec-2"])
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "adaptix.db")
	st, err := Open(path)
	require.NoError(t, err)
	defer st.Close()

	_, ok, err := st.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, st.Set(ctx, "k", []byte(`{"a":1}`)))
	raw, ok, err := st.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"a":1}`, string(raw))

	// Overwrite replaces the value.
	require.NoError(t, st.Set(ctx, "k", []byte(`{"a":2}`)))
	raw, _, err = st.Get(ctx, "k")
	require.NoError(t, err)
	require.JSONEq(t, `{"a":2}`, string(raw))
}

func TestSQLiteBackedRepos(t *testing.T) {
	ctx := context.Background()

	st, err := Open(filepath.Join(t.TempDir(), "adaptix.db"))
	require.NoError(t, err)
	defer st.Close()

	repo := NewSessionRepo(st)
	want := testSession("s-1", time.Date(2025, 3, 14, 16, 30, 0, 0, time.UTC))
	require.NoError(t, repo.AppendSession(ctx, "u1", want))

	got := repo.Load(ctx, "u1")
	require.Len(t, got, 1)
	require.Equal(t, want, got[0])
}
