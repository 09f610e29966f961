package ageclass

import "github.com/abhisek/adaptix/internal/learner"

// contribution maps age brackets to the weight one indicator dimension
// adds to their scores.
type contribution map[learner.AgeGroup]float64

// dimension is one scored indicator dimension of the weight table.
type dimension struct {
	name string
	eval func(BehavioralIndicators) contribution
}

// weightTable is the fixed, hand-tuned scoring table. Six dimensions, each
// contributing to two or three brackets. The weights are a frozen heuristic:
// do not derive or tune them at runtime.
var weightTable = []dimension{
	{
		name: "attention span",
		eval: func(in BehavioralIndicators) contribution {
			switch {
			case in.AttentionSpan < 0.3:
				return contribution{learner.AgeKids: 0.8, learner.AgeTeens: 0.3}
			case in.AttentionSpan < 0.6:
				return contribution{learner.AgeTeens: 0.5, learner.AgeAdults: 0.3}
			default:
				return contribution{learner.AgeAdults: 0.6, learner.AgeSeniors: 0.4}
			}
		},
	},
	{
		name: "response speed",
		eval: func(in BehavioralIndicators) contribution {
			switch {
			case in.ResponseSpeed > 30:
				return contribution{learner.AgeKids: 0.6, learner.AgeSeniors: 0.7}
			case in.ResponseSpeed > 15:
				return contribution{learner.AgeKids: 0.3, learner.AgeAdults: 0.2, learner.AgeSeniors: 0.4}
			case in.ResponseSpeed < 8:
				return contribution{learner.AgeTeens: 0.7, learner.AgeAdults: 0.5}
			default:
				return contribution{learner.AgeTeens: 0.3, learner.AgeAdults: 0.4}
			}
		},
	},
	{
		name: "session length",
		eval: func(in BehavioralIndicators) contribution {
			switch in.SessionLength {
			case SessionShort:
				return contribution{learner.AgeKids: 0.7, learner.AgeTeens: 0.2}
			case SessionMedium:
				return contribution{learner.AgeTeens: 0.4, learner.AgeAdults: 0.5}
			default:
				return contribution{learner.AgeAdults: 0.4, learner.AgeSeniors: 0.6}
			}
		},
	},
	{
		name: "navigation style",
		eval: func(in BehavioralIndicators) contribution {
			switch in.Navigation {
			case NavExplorative:
				return contribution{learner.AgeKids: 0.5, learner.AgeTeens: 0.4}
			case NavDirect:
				return contribution{learner.AgeTeens: 0.3, learner.AgeAdults: 0.5}
			default:
				return contribution{learner.AgeAdults: 0.4, learner.AgeSeniors: 0.6}
			}
		},
	},
	{
		name: "help seeking",
		eval: func(in BehavioralIndicators) contribution {
			switch in.HelpSeeking {
			case HelpFrequent:
				return contribution{learner.AgeKids: 0.8, learner.AgeSeniors: 0.5}
			case HelpModerate:
				return contribution{learner.AgeTeens: 0.3, learner.AgeAdults: 0.4}
			default:
				return contribution{learner.AgeTeens: 0.5, learner.AgeAdults: 0.5}
			}
		},
	},
	{
		name: "error patterns",
		eval: func(in BehavioralIndicators) contribution {
			switch {
			case len(in.ErrorCategories) >= 3:
				return contribution{learner.AgeKids: 0.5, learner.AgeSeniors: 0.4}
			case len(in.ErrorCategories) >= 1:
				return contribution{learner.AgeTeens: 0.3, learner.AgeAdults: 0.3}
			default:
				return contribution{learner.AgeTeens: 0.2, learner.AgeAdults: 0.4}
			}
		},
	},
}

// reasoningByGroup is the canned reasoning attached to each prediction.
var reasoningByGroup = map[learner.AgeGroup][]string{
	learner.AgeKids: {
		"Short, high-energy sessions with frequent support requests",
		"Response times and error patterns typical of early learners",
	},
	learner.AgeTeens: {
		"Quick responses with moderate session commitment",
		"Exploration and pace consistent with adolescent play styles",
	},
	learner.AgeAdults: {
		"Steady attention span and balanced session lengths",
		"Deliberate pacing with few support requests",
	},
	learner.AgeSeniors: {
		"Longer, systematic sessions with unhurried responses",
		"Methodical navigation and consistent practice habits",
	},
}

// defaultReasoning is attached to the insufficient-history fallback.
var defaultReasoning = []string{
	"Not enough play history for behavioral classification",
	"Defaulting to the adults bracket at baseline confidence",
}
