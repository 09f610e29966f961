package personalization

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/abhisek/adaptix/internal/ageclass"
	"github.com/abhisek/adaptix/internal/difficulty"
	"github.com/abhisek/adaptix/internal/insights"
	"github.com/abhisek/adaptix/internal/learner"
	"github.com/abhisek/adaptix/internal/performance"
	"github.com/abhisek/adaptix/internal/templates"
	"github.com/abhisek/adaptix/internal/trends"
)

// seniorsTimeFactor extends time estimates for the seniors bracket.
const seniorsTimeFactor = 1.3

// Session sequences split into warm-up, target, and confidence phases.
const (
	warmupShare     = 0.3
	confidenceShare = 0.3
)

// HistorySource loads a user's finished sessions. Load failures surface
// as empty history, never as errors.
type HistorySource interface {
	Load(ctx context.Context, userID string) []*performance.SessionRecord
}

// DismissedSource lists recommendation ids the learner already handled.
type DismissedSource interface {
	Dismissed(ctx context.Context) map[string]bool
}

// Request describes one generation call.
type Request struct {
	// Category restricts generation to one category when set.
	Category string
	// TargetWeakness allows the weakness-targeted strategy.
	TargetWeakness bool
	// HighSupport requests extended time and guaranteed hints.
	HighSupport bool
}

// Orchestrator composes the engine components behind the learner-facing
// operations. Collaborators are injected; there are no package singletons.
type Orchestrator struct {
	userID     string
	history    HistorySource
	dismissed  DismissedSource
	detector   *ageclass.Detector
	controller *difficulty.Controller
	engine     *templates.Engine
	insights   *insights.Generator
	trends     *trends.Analyzer
	rng        *rand.Rand
}

// New creates an Orchestrator for one learner. dismissed may be nil, in
// which case no recommendations are filtered.
func New(userID string, history HistorySource, dismissed DismissedSource, detector *ageclass.Detector, controller *difficulty.Controller, engine *templates.Engine, rng *rand.Rand) *Orchestrator {
	return &Orchestrator{
		userID:     userID,
		history:    history,
		dismissed:  dismissed,
		detector:   detector,
		controller: controller,
		engine:     engine,
		insights:   insights.NewGenerator(),
		trends:     trends.NewAnalyzer(),
		rng:        rng,
	}
}

// Controller returns the live difficulty controller, for folding in
// answers as they arrive.
func (o *Orchestrator) Controller() *difficulty.Controller {
	return o.controller
}

// Insights generates the current insight list from stored history.
func (o *Orchestrator) Insights(ctx context.Context) []insights.Insight {
	return o.insights.Generate(o.history.Load(ctx, o.userID))
}

// Trends computes the standard performance trends from stored history.
func (o *Orchestrator) Trends(ctx context.Context) []trends.Trend {
	return o.trends.ComputeAll(o.history.Load(ctx, o.userID))
}

// Metrics recomputes the personalized profile from stored history.
func (o *Orchestrator) Metrics(ctx context.Context) PersonalizedMetrics {
	sessions := o.history.Load(ctx, o.userID)
	return ComputeMetrics(sessions, o.trends.ComputeAll(sessions))
}

// DetectAgeGroup runs age detection over stored history and persists the
// result.
func (o *Orchestrator) DetectAgeGroup(ctx context.Context) ageclass.Result {
	return o.detector.Detect(ctx, o.history.Load(ctx, o.userID))
}

// GenerateAdaptiveProblem produces one problem tuned to the learner's
// current state: strategy from metrics and insights, difficulty from the
// live controller narrowed by age bracket, template under the bracket's
// cognitive-load ceiling, and age-styled presentation.
func (o *Orchestrator) GenerateAdaptiveProblem(ctx context.Context, req Request) (*templates.GeneratedProblem, error) {
	sessions := o.history.Load(ctx, o.userID)
	return o.generate(ctx, req, sessions, o.controller)
}

func (o *Orchestrator) generate(ctx context.Context, req Request, sessions []*performance.SessionRecord, ctrl *difficulty.Controller) (*templates.GeneratedProblem, error) {
	trendList := o.trends.ComputeAll(sessions)
	metrics := ComputeMetrics(sessions, trendList)
	insightList := o.insights.Generate(sessions)
	age := o.detector.Detect(ctx, sessions)

	strategy := ChooseStrategy(metrics, insightList, sessions, req.TargetWeakness)
	return o.generateWithStrategy(req, strategy, metrics, age.PredictedAgeGroup, ctrl)
}

func (o *Orchestrator) generateWithStrategy(req Request, strategy templates.Strategy, metrics PersonalizedMetrics, group learner.AgeGroup, ctrl *difficulty.Controller) (*templates.GeneratedProblem, error) {
	mods := ctrl.Modifiers()
	diff := NarrowForAge(DifficultyForComplexity(mods.ComplexityLevel), group, metrics.BurnoutRisk)

	tpl, err := o.selectTemplate(strategy, focusCategory(strategy, metrics, req.Category), diff, group)
	if err != nil {
		return nil, err
	}

	p, err := o.engine.Generate(tpl, diff, templates.GenOptions{
		Strategy:        strategy,
		AgeGroup:        group,
		HighSupport:     req.HighSupport,
		HintsEnabled:    mods.HintAvailability,
		TimeBonus:       mods.TimeBonus,
		RangeMultiplier: mods.RangeMultiplier,
	})
	if err != nil {
		return nil, err
	}
	applyAgeStyle(p, tpl, group)
	return p, nil
}

// selectTemplate picks a template matching the focus category whose
// cognitive load fits the bracket's ceiling, widening the pool stepwise
// when nothing matches: first dropping the category, then the ceiling.
func (o *Orchestrator) selectTemplate(strategy templates.Strategy, category string, diff learner.Difficulty, group learner.AgeGroup) (*templates.ProblemTemplate, error) {
	underCeiling := func(tpl *templates.ProblemTemplate) bool {
		ceiling := 1.0
		if cfg, ok := tpl.AgeConfigs[group]; ok && cfg.MaxCognitiveLoad > 0 {
			ceiling = cfg.MaxCognitiveLoad
		}
		return templates.CognitiveLoad(tpl, diff) <= ceiling
	}

	if category != "" {
		pool, err := o.engine.Catalog().Filter(func(tpl *templates.ProblemTemplate) bool {
			return tpl.Category == category && underCeiling(tpl)
		})
		if err == nil {
			return pool[o.rng.Intn(len(pool))], nil
		}
	}
	pool, err := o.engine.Catalog().Filter(underCeiling)
	if err != nil {
		pool = o.engine.Catalog().All()
		if len(pool) == 0 {
			return nil, fmt.Errorf("select template: %w", templates.ErrNoMatchingTemplate)
		}
	}
	return pool[o.rng.Intn(len(pool))], nil
}

// applyAgeStyle layers the bracket's cosmetic presentation onto a
// generated problem: phrasing and encouragement for kids, a gentler pace
// for seniors. The math itself is untouched.
func applyAgeStyle(p *templates.GeneratedProblem, tpl *templates.ProblemTemplate, group learner.AgeGroup) {
	cfg, ok := tpl.AgeConfigs[group]

	switch group {
	case learner.AgeKids:
		if ok && cfg.Theme != "" {
			p.Question = fmt.Sprintf("[%s] %s", cfg.Theme, p.Question)
		}
		for i, h := range p.Hints {
			p.Hints[i] = "Let's figure it out: " + lowerFirst(h)
		}
		if ok && cfg.Encouragement != "" {
			p.Explanation = p.Explanation + " " + cfg.Encouragement
		}
	case learner.AgeSeniors:
		p.TimeEstimate *= seniorsTimeFactor
		p.Explanation = "Take your time. " + p.Explanation
	default:
		if ok && cfg.Encouragement != "" {
			p.Explanation = p.Explanation + " " + cfg.Encouragement
		}
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// GenerateSessionSequence plans an ordered set of problems: the first
// 30% reinforce strengths as a warm-up, the middle 40% target weaknesses
// when requested, and the final 30% rebuild confidence. Planning assumes
// correct answers, so the simulated streak ramps difficulty through the
// sequence without touching the live controller.
func (o *Orchestrator) GenerateSessionSequence(ctx context.Context, req Request, count int) ([]*templates.GeneratedProblem, error) {
	if count <= 0 {
		return nil, nil
	}
	sessions := o.history.Load(ctx, o.userID)
	trendList := o.trends.ComputeAll(sessions)
	metrics := ComputeMetrics(sessions, trendList)
	age := o.detector.Detect(ctx, sessions)

	warmup := int(float64(count) * warmupShare)
	confidence := int(float64(count) * confidenceShare)
	target := count - warmup - confidence

	sim := difficulty.NewControllerFrom(o.controller.Performance())
	out := make([]*templates.GeneratedProblem, 0, count)
	for i := 0; i < count; i++ {
		var strategy templates.Strategy
		switch {
		case i < warmup:
			strategy = templates.StrategyConfidenceBuilding
		case i < warmup+target && req.TargetWeakness:
			strategy = templates.StrategyWeaknessTargeted
		case i < warmup+target:
			strategy = templates.StrategyBalanced
		default:
			strategy = templates.StrategyConfidenceBuilding
		}

		p, err := o.generateWithStrategy(req, strategy, metrics, age.PredictedAgeGroup, sim)
		if err != nil {
			return nil, fmt.Errorf("sequence position %d: %w", i, err)
		}
		out = append(out, p)
		sim.UpdatePerformance(true, p.TimeEstimate, p.Difficulty)
	}
	return out, nil
}
