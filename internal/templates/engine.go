package templates

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/adaptix/internal/learner"
)

const (
	// optionCount is the fixed size of the presented option set.
	optionCount = 4

	// baseTimeSeconds anchors the time estimate before multipliers.
	baseTimeSeconds = 15.0

	// maxIDRetries bounds regeneration when a problem id collides with
	// the previous one; after that the id is force-uniquified.
	maxIDRetries = 5

	// highSupportTimeFactor extends estimates when extra support is on.
	highSupportTimeFactor = 1.3
)

// timeMultipliers scales the base time estimate per difficulty tier.
var timeMultipliers = map[learner.Difficulty]float64{
	learner.DifficultyEasy:   0.7,
	learner.DifficultyMedium: 1.0,
	learner.DifficultyHard:   1.5,
	learner.DifficultyExpert: 2.0,
}

// difficultyLoads is the difficulty term of the cognitive-load formula.
var difficultyLoads = map[learner.Difficulty]float64{
	learner.DifficultyEasy:   0.3,
	learner.DifficultyMedium: 0.6,
	learner.DifficultyHard:   0.8,
	learner.DifficultyExpert: 1.0,
}

// distractorVariance scales random perturbation per difficulty tier.
var distractorVariance = map[learner.Difficulty]float64{
	learner.DifficultyEasy:   0.2,
	learner.DifficultyMedium: 0.5,
	learner.DifficultyHard:   0.8,
	learner.DifficultyExpert: 1.0,
}

// GenOptions tunes one generation call.
type GenOptions struct {
	Strategy Strategy
	AgeGroup learner.AgeGroup
	// HighSupport extends time estimates and always includes hints.
	HighSupport bool
	// HintsEnabled includes the template's hints in the problem.
	HintsEnabled bool
	// TimeBonus is carried through to the adaptive factors.
	TimeBonus bool
	// RangeMultiplier scales the sampled range width; 0 means 1.0.
	RangeMultiplier float64
}

// Engine renders templates into problems using an injected random source,
// so generation is deterministic under a seeded source.
type Engine struct {
	catalog *Catalog
	rng     *rand.Rand
	lastID  string
}

// NewEngine creates an Engine over the catalog. rng must not be nil.
func NewEngine(catalog *Catalog, rng *rand.Rand) *Engine {
	return &Engine{catalog: catalog, rng: rng}
}

// Catalog returns the engine's template catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Generate renders one problem from the template at the given difficulty.
// Consecutive calls avoid repeating the previous problem id: up to
// maxIDRetries resamples, then a forced unique suffix.
func (e *Engine) Generate(tpl *ProblemTemplate, diff learner.Difficulty, opts GenOptions) (*GeneratedProblem, error) {
	var p *GeneratedProblem
	var err error
	for attempt := 0; attempt <= maxIDRetries; attempt++ {
		p, err = e.generateOnce(tpl, diff, opts)
		if err != nil {
			return nil, err
		}
		if p.ID != e.lastID {
			e.lastID = p.ID
			return p, nil
		}
	}
	p.ID = fmt.Sprintf("%s_%s", p.ID, uuid.NewString()[:8])
	e.lastID = p.ID
	return p, nil
}

func (e *Engine) generateOnce(tpl *ProblemTemplate, diff learner.Difficulty, opts GenOptions) (*GeneratedProblem, error) {
	ranges, ok := tpl.Ranges[diff]
	if !ok {
		return nil, fmt.Errorf("template %q has no %s tier: %w", tpl.ID, diff, ErrNoMatchingTemplate)
	}

	vars, err := e.sampleVariables(ranges, opts.RangeMultiplier)
	if err != nil {
		return nil, fmt.Errorf("template %q: %v", tpl.ID, err)
	}

	// Keep subtraction results non-negative for presentation.
	if tpl.Operation == learner.OpSubtraction && vars["a"] < vars["b"] {
		vars["a"], vars["b"] = vars["b"], vars["a"]
	}

	answer, err := computeAnswer(tpl.Operation, vars["a"], vars["b"])
	if err != nil {
		return nil, fmt.Errorf("template %q: %v", tpl.ID, err)
	}
	answerStr := formatNumber(answer)

	subs := map[string]string{
		"a":      formatNumber(vars["a"]),
		"b":      formatNumber(vars["b"]),
		"answer": answerStr,
	}

	options := e.buildOptions(tpl.Operation, diff, vars["a"], vars["b"], answer)
	e.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	var hints []string
	if opts.HintsEnabled || opts.HighSupport {
		for _, h := range tpl.Hints {
			hints = append(hints, substitute(h, subs))
		}
	}

	rangeMult := opts.RangeMultiplier
	if rangeMult == 0 {
		rangeMult = 1.0
	}

	p := &GeneratedProblem{
		ID:            problemID(tpl.ID, vars),
		TemplateID:    tpl.ID,
		Category:      tpl.Category,
		Operation:     tpl.Operation,
		Difficulty:    diff,
		Question:      substitute(tpl.Text, subs),
		Options:       options,
		CorrectAnswer: answerStr,
		Explanation:   substitute(tpl.Explanation, subs),
		Hints:         hints,
		TimeEstimate:  TimeEstimate(diff, len(tpl.Concepts), opts.HighSupport),
		Adaptive: AdaptiveFactors{
			Strategy:        opts.Strategy,
			HintsEnabled:    opts.HintsEnabled || opts.HighSupport,
			TimeBonus:       opts.TimeBonus,
			RangeMultiplier: rangeMult,
		},
		Metadata: Metadata{
			Concepts:      tpl.Concepts,
			CognitiveLoad: CognitiveLoad(tpl, diff),
			AgeGroup:      opts.AgeGroup,
			Gamification:  gamificationFor(opts.Strategy),
		},
	}
	return p, nil
}

// sampleVariables samples each variable uniformly within its range,
// optionally widening the span by the range multiplier.
func (e *Engine) sampleVariables(ranges map[string]VarRange, mult float64) (map[string]float64, error) {
	if mult <= 0 {
		mult = 1.0
	}
	out := make(map[string]float64, len(ranges))
	for name, vr := range ranges {
		if vr.Max < vr.Min {
			return nil, fmt.Errorf("variable %q: inverted range [%v, %v]", name, vr.Min, vr.Max)
		}
		max := vr.Min + (vr.Max-vr.Min)*mult
		if vr.Decimals {
			out[name] = round2(vr.Min + e.rng.Float64()*(max-vr.Min))
			continue
		}
		lo, hi := int(math.Ceil(vr.Min)), int(math.Floor(max))
		if hi < lo {
			hi = lo
		}
		out[name] = float64(lo + e.rng.Intn(hi-lo+1))
	}
	return out, nil
}

// computeAnswer evaluates the operation. Division rounds to two decimals.
func computeAnswer(op learner.Operation, a, b float64) (float64, error) {
	switch op {
	case learner.OpAddition:
		return a + b, nil
	case learner.OpSubtraction:
		return a - b, nil
	case learner.OpMultiplication:
		return round2(a * b), nil
	case learner.OpDivision:
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return round2(a / b), nil
	default:
		return 0, fmt.Errorf("unknown operation %q", op)
	}
}

// buildOptions synthesizes distractors until the option set holds
// optionCount unique values including the correct answer.
func (e *Engine) buildOptions(op learner.Operation, diff learner.Difficulty, a, b, answer float64) []string {
	answerStr := formatNumber(answer)
	seen := map[string]bool{answerStr: true}
	options := []string{answerStr}

	variance := distractorVariance[diff]
	attempts := 0
	for len(options) < optionCount {
		var candidate float64
		if e.rng.Intn(2) == 0 {
			candidate = commonError(e.rng, op, a, b, answer)
		} else {
			candidate = perturb(e.rng, answer, variance)
		}
		attempts++
		s := formatNumber(candidate)
		if !seen[s] {
			seen[s] = true
			options = append(options, s)
			continue
		}
		// Random synthesis can stall on tiny answers; fall back to fixed
		// offsets to guarantee termination.
		if attempts > 25 {
			for delta := 1.0; len(options) < optionCount; delta++ {
				s := formatNumber(answer + delta)
				if !seen[s] {
					seen[s] = true
					options = append(options, s)
				}
			}
		}
	}
	return options
}

// TimeEstimate returns the expected solve time in seconds.
func TimeEstimate(diff learner.Difficulty, conceptCount int, highSupport bool) float64 {
	estimate := baseTimeSeconds * timeMultipliers[diff] * (float64(conceptCount)*0.2 + 0.8)
	if highSupport {
		estimate *= highSupportTimeFactor
	}
	return estimate
}

// CognitiveLoad scores a template's mental difficulty at a tier, capped
// at 1.0.
func CognitiveLoad(tpl *ProblemTemplate, diff learner.Difficulty) float64 {
	load := 0.5 +
		float64(len(tpl.Concepts))*0.1 +
		float64(len(tpl.Prerequisites))*0.05 +
		difficultyLoads[diff]
	return math.Min(load, 1.0)
}

// gamificationFor picks the motivational elements attached to a problem.
func gamificationFor(s Strategy) []string {
	switch s {
	case StrategyEngagementFocused:
		return []string{"surprise-bonus", "themed-art"}
	case StrategyMotivationFocused:
		return []string{"streak-meter", "progress-bar"}
	case StrategyConfidenceBuilding:
		return []string{"encouragement"}
	default:
		return nil
	}
}

// problemID derives a stable id from the template and its sampled values.
func problemID(templateID string, vars map[string]float64) string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(templateID)
	for _, name := range names {
		sb.WriteString("_")
		sb.WriteString(formatNumber(vars[name]))
	}
	return sb.String()
}

// substitute replaces {name} placeholders in a template string.
func substitute(text string, subs map[string]string) string {
	for name, value := range subs {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}

// formatNumber renders a value without trailing zeros: whole numbers show
// as integers, everything else with up to two decimals.
func formatNumber(v float64) string {
	rounded := round2(v)
	if rounded == math.Trunc(rounded) {
		return strconv.FormatFloat(rounded, 'f', 0, 64)
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
