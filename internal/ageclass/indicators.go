package ageclass

import (
	"sort"

	"github.com/abhisek/adaptix/internal/performance"
)

// NavigationStyle describes how the learner moves through content.
type NavigationStyle string

const (
	NavDirect      NavigationStyle = "direct"
	NavExplorative NavigationStyle = "explorative"
	NavSystematic  NavigationStyle = "systematic"
)

// HelpSeeking describes how often the learner leans on support.
type HelpSeeking string

const (
	HelpFrequent HelpSeeking = "frequent"
	HelpModerate HelpSeeking = "moderate"
	HelpMinimal  HelpSeeking = "minimal"
)

// SessionLengthBucket buckets the mean session duration.
type SessionLengthBucket string

const (
	SessionShort  SessionLengthBucket = "short"
	SessionMedium SessionLengthBucket = "medium"
	SessionLong   SessionLengthBucket = "long"
)

const (
	shortSessionMinutes  = 10.0
	mediumSessionMinutes = 25.0

	directNavMinutes      = 15.0
	explorativeCategories = 3

	frequentHelpProblems = 5.0
	moderateHelpProblems = 15.0
)

// BehavioralIndicators are the derived summary statistics the classifier
// scores against. They are computed fresh from history, never persisted
// on their own.
type BehavioralIndicators struct {
	AttentionSpan   float64             `json:"attentionSpan"` // [0, 1], mean focus score
	ResponseSpeed   float64             `json:"responseSpeed"` // seconds, mean response time
	ErrorCategories []string            `json:"errorCategories"`
	Navigation      NavigationStyle     `json:"navigationStyle"`
	HelpSeeking     HelpSeeking         `json:"helpSeekingBehavior"`
	SessionLength   SessionLengthBucket `json:"sessionLength"`
}

// DeriveIndicators computes behavioral indicators from session history.
func DeriveIndicators(sessions []*performance.SessionRecord) BehavioralIndicators {
	n := float64(len(sessions))
	var focusSum, speedSum, minutesSum, problemsSum float64
	explorative := false
	for _, s := range sessions {
		focusSum += s.FocusScore
		speedSum += s.AverageResponseTime
		minutesSum += s.Duration().Minutes()
		problemsSum += float64(s.TotalProblems)
		if len(s.Categories) > explorativeCategories {
			explorative = true
		}
	}
	meanMinutes := minutesSum / n
	meanProblems := problemsSum / n

	ind := BehavioralIndicators{
		AttentionSpan:   focusSum / n,
		ResponseSpeed:   speedSum / n,
		ErrorCategories: recurringErrorCategories(sessions),
	}

	switch {
	case meanMinutes < shortSessionMinutes:
		ind.SessionLength = SessionShort
	case meanMinutes < mediumSessionMinutes:
		ind.SessionLength = SessionMedium
	default:
		ind.SessionLength = SessionLong
	}

	switch {
	case meanMinutes < directNavMinutes:
		ind.Navigation = NavDirect
	case explorative:
		ind.Navigation = NavExplorative
	default:
		ind.Navigation = NavSystematic
	}

	switch {
	case meanProblems < frequentHelpProblems:
		ind.HelpSeeking = HelpFrequent
	case meanProblems < moderateHelpProblems:
		ind.HelpSeeking = HelpModerate
	default:
		ind.HelpSeeking = HelpMinimal
	}

	return ind
}

// recurringErrorCategories returns categories whose mistake patterns show
// up in at least two different sessions.
func recurringErrorCategories(sessions []*performance.SessionRecord) []string {
	seenIn := map[string]int{}
	for _, s := range sessions {
		inSession := map[string]bool{}
		for _, mp := range s.MistakePatterns {
			inSession[mp.Category] = true
		}
		for c := range inSession {
			seenIn[c]++
		}
	}
	var out []string
	for c, count := range seenIn {
		if count >= 2 {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
