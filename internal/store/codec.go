package store

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/adaptix/internal/ageclass"
	"github.com/abhisek/adaptix/internal/learner"
	"github.com/abhisek/adaptix/internal/performance"
)

// Timestamps are serialized as ISO-8601 strings and parsed back
// explicitly; nothing in the store relies on implicit coercion.
const timeLayout = time.RFC3339Nano


func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

func decodeTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

type mistakeJSON struct {
	Category       string            `json:"category"`
	Operation      learner.Operation `json:"operation"`
	Frequency      int               `json:"frequency"`
	AverageTime    float64           `json:"averageTime"`
	LastOccurrence string            `json:"lastOccurrence"`
	Trend          string            `json:"trend"`
}

type sessionJSON struct {
	ID                  string               `json:"id"`
	UserID              string               `json:"userId"`
	StartTime           string               `json:"startTime"`
	EndTime             string               `json:"endTime"`
	TotalProblems       int                  `json:"totalProblems"`
	ProblemsSolved      int                  `json:"problemsSolved"`
	AccuracyRate        float64              `json:"accuracyRate"`
	FastestResponse     float64              `json:"fastestResponse"`
	SlowestResponse     float64              `json:"slowestResponse"`
	AverageResponseTime float64              `json:"averageResponseTime"`
	DifficultyLevels    []learner.Difficulty `json:"difficultyLevels"`
	Categories          []string             `json:"categories"`
	MistakePatterns     []mistakeJSON        `json:"mistakePatterns"`
	TotalHintsUsed      int                  `json:"totalHintsUsed"`
	TotalRetries        int                  `json:"totalRetries"`
	LearningVelocity    float64              `json:"learningVelocity"`
	FocusScore          float64              `json:"focusScore"`
	ConsistencyScore    float64              `json:"consistencyScore"`
}

func sessionToJSON(r *performance.SessionRecord) sessionJSON {
	// JSON has no infinity. A session with zero problems keeps its +Inf
	// fastest-response marker implicitly: the codec writes 0 and the
	// decoder restores +Inf from the problem count.
	fastest := r.FastestResponse
	if math.IsInf(fastest, 1) {
		fastest = 0
	}
	out := sessionJSON{
		ID:                  r.ID,
		UserID:              r.UserID,
		StartTime:           encodeTime(r.StartTime),
		EndTime:             encodeTime(r.EndTime),
		TotalProblems:       r.TotalProblems,
		ProblemsSolved:      r.ProblemsSolved,
		AccuracyRate:        r.AccuracyRate,
		FastestResponse:     fastest,
		SlowestResponse:     r.SlowestResponse,
		AverageResponseTime: r.AverageResponseTime,
		DifficultyLevels:    r.DifficultyLevels,
		Categories:          r.Categories,
		TotalHintsUsed:      r.TotalHintsUsed,
		TotalRetries:        r.TotalRetries,
		LearningVelocity:    r.LearningVelocity,
		FocusScore:          r.FocusScore,
		ConsistencyScore:    r.ConsistencyScore,
	}
	for _, mp := range r.MistakePatterns {
		out.MistakePatterns = append(out.MistakePatterns, mistakeJSON{
			Category:       mp.Category,
			Operation:      mp.Operation,
			Frequency:      mp.Frequency,
			AverageTime:    mp.AverageTime,
			LastOccurrence: encodeTime(mp.LastOccurrence),
			Trend:          mp.Trend,
		})
	}
	return out
}

func sessionFromJSON(sj sessionJSON) (*performance.SessionRecord, error) {
	start, err := decodeTime(sj.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := decodeTime(sj.EndTime)
	if err != nil {
		return nil, err
	}
	fastest := sj.FastestResponse
	if sj.TotalProblems == 0 {
		fastest = math.Inf(1)
	}
	r := &performance.SessionRecord{
		ID:                  sj.ID,
		UserID:              sj.UserID,
		StartTime:           start,
		EndTime:             end,
		TotalProblems:       sj.TotalProblems,
		ProblemsSolved:      sj.ProblemsSolved,
		AccuracyRate:        sj.AccuracyRate,
		FastestResponse:     fastest,
		SlowestResponse:     sj.SlowestResponse,
		AverageResponseTime: sj.AverageResponseTime,
		DifficultyLevels:    sj.DifficultyLevels,
		Categories:          sj.Categories,
		TotalHintsUsed:      sj.TotalHintsUsed,
		TotalRetries:        sj.TotalRetries,
		LearningVelocity:    sj.LearningVelocity,
		FocusScore:          sj.FocusScore,
		ConsistencyScore:    sj.ConsistencyScore,
	}
	for _, mj := range sj.MistakePatterns {
		last, err := decodeTime(mj.LastOccurrence)
		if err != nil {
			return nil, err
		}
		r.MistakePatterns = append(r.MistakePatterns, performance.MistakePattern{
			Category:       mj.Category,
			Operation:      mj.Operation,
			Frequency:      mj.Frequency,
			AverageTime:    mj.AverageTime,
			LastOccurrence: last,
			Trend:          mj.Trend,
		})
	}
	return r, nil
}

// MarshalSessions encodes session records for storage.
func MarshalSessions(records []*performance.SessionRecord) (json.RawMessage, error) {
	out := make([]sessionJSON, 0, len(records))
	for _, r := range records {
		out = append(out, sessionToJSON(r))
	}
	return json.Marshal(out)
}

// UnmarshalSessions decodes stored session records.
func UnmarshalSessions(raw json.RawMessage) ([]*performance.SessionRecord, error) {
	var rows []sessionJSON
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	out := make([]*performance.SessionRecord, 0, len(rows))
	for _, sj := range rows {
		r, err := sessionFromJSON(sj)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

type ageResultJSON struct {
	PredictedAgeGroup learner.AgeGroup              `json:"predictedAgeGroup"`
	Confidence        float64                       `json:"confidence"`
	Reasoning         []string                      `json:"reasoning"`
	Indicators        ageclass.BehavioralIndicators `json:"indicators"`
	DetectedAt        string                        `json:"detectedAt"`
}

func marshalAgeResult(r ageclass.Result) (json.RawMessage, error) {
	return json.Marshal(ageResultJSON{
		PredictedAgeGroup: r.PredictedAgeGroup,
		Confidence:        r.Confidence,
		Reasoning:         r.Reasoning,
		Indicators:        r.Indicators,
		DetectedAt:        encodeTime(r.DetectedAt),
	})
}

func unmarshalAgeResult(raw json.RawMessage) (ageclass.Result, error) {
	var rj ageResultJSON
	if err := json.Unmarshal(raw, &rj); err != nil {
		return ageclass.Result{}, fmt.Errorf("decode age result: %w", err)
	}
	detected, err := decodeTime(rj.DetectedAt)
	if err != nil {
		return ageclass.Result{}, err
	}
	return ageclass.Result{
		PredictedAgeGroup: rj.PredictedAgeGroup,
		Confidence:        rj.Confidence,
		Reasoning:         rj.Reasoning,
		Indicators:        rj.Indicators,
		DetectedAt:        detected,
	}, nil
}
